package main

import (
	"garden_feed/internal/pkg/config"
	"garden_feed/internal/pkg/database"
	"garden_feed/internal/pkg/middleware"
	"garden_feed/internal/pkg/registry"
	"garden_feed/internal/pkg/uploader"
	"garden_feed/pkg/logger"

	// 各业务模块通过 init 自注册
	_ "garden_feed/internal/domain/common"
	_ "garden_feed/internal/domain/feed"
	_ "garden_feed/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.GlobalConfig

	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic("logger init failed: " + err.Error())
	}
	defer logger.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.QPS, cfg.RateLimit.Burst))
	r.Use(middleware.MetricsMiddleware())
	r.MaxMultipartMemory = 8 << 20

	db := database.NewMemDB()
	if cfg.App.SeedDemoData {
		database.Seed(db)
		logger.Log.Info("demo data seeded", zap.Int("users", db.Stats().Users), zap.Int("posts", db.Stats().Posts))
	}

	up, err := uploader.NewLocalUploader(cfg.Upload)
	if err != nil {
		logger.Log.Fatal("uploader init failed", zap.Error(err))
	}

	ctx := &registry.ModuleContext{
		DB:       db,
		Router:   r,
		Uploader: up,
	}
	if err := registry.InitModules(ctx); err != nil {
		logger.Log.Fatal("module init failed", zap.Error(err))
	}

	addr := ":" + cfg.Server.Port
	logger.Log.Info("server listening",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
	)
	if err := r.Run(addr); err != nil {
		logger.Log.Fatal("server exited", zap.Error(err))
	}
}
