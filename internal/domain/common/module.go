package common

import (
	"net/http"

	"garden_feed/internal/pkg/config"
	"garden_feed/internal/pkg/registry"
	"garden_feed/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CommonModule 通用功能模块：静态文件、健康检查、指标
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100 // 最后初始化
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	cfg := config.GlobalConfig.Upload

	// 上传的图片作为静态文件回传
	ctx.Router.Static(cfg.PublicPrefix, cfg.Dir)

	ctx.Router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctx.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	db := ctx.DB
	metrics.RegisterStoreStats(func() metrics.StoreStats {
		s := db.Stats()
		return metrics.StoreStats{
			Users:    s.Users,
			Posts:    s.Posts,
			Comments: s.Comments,
			Likes:    s.Likes,
		}
	})

	return nil
}
