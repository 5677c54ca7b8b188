package feed

import (
	"garden_feed/internal/domain/feed/handler"
	"garden_feed/internal/domain/feed/repository"
	"garden_feed/internal/domain/feed/service"
	userrepo "garden_feed/internal/domain/user/repository"
	"garden_feed/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// FeedModule 动态模块
type FeedModule struct{}

func init() {
	registry.Register(&FeedModule{})
}

func (m *FeedModule) Name() string {
	return "feed"
}

func (m *FeedModule) Priority() int {
	return 10
}

func (m *FeedModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入（作者校验依赖用户仓库）
	fRepo := repository.NewFeedRepository(ctx.DB)
	fService := service.NewFeedService(fRepo, userrepo.NewUserRepository(ctx.DB))
	fHandler := handler.NewFeedHandler(fService, ctx.Uploader)

	// 2. 路由注册
	setupRoutes(ctx.Router, fHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.FeedHandler) {
	g := r.Group("/api/posts")
	{
		g.GET("", h.GetFeed)
		g.POST("", h.CreatePost)
		g.GET("/:id", h.GetPost)
		g.GET("/:id/comments", h.GetComments)
		g.POST("/:id/comments", h.AddComment)
		g.POST("/:id/like", h.ToggleLike)
		g.GET("/:id/like/:userId", h.GetLikeStatus)
	}
}
