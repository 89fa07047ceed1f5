package main

import (
	"context"
	"fmt"
	"log"

	"recipe-app-api/app/server/accounts"
	"recipe-app-api/app/server/apidocs"
	"recipe-app-api/app/server/handlers"
	"recipe-app-api/app/server/inits"
	"recipe-app-api/app/server/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.IsProd())
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}
	st := store.NewGorm(db)

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	} else if rdb == nil {
		l.Info("redis not configured, token cache disabled")
	}

	// 初始化图片存储
	images, err := inits.Storage(context.Background(), cfg)
	if err != nil {
		l.Fatal("error initializing image storage", zap.Error(err))
	}

	// 初始化账户管理
	m, err := accounts.NewManager(st)
	if err != nil {
		l.Fatal("error initializing account manager", zap.Error(err))
	}

	// 初始化启动数据
	if err = inits.InitData(context.Background(), cfg, st, m, l); err != nil {
		l.Fatal("error initializing data", zap.Error(err))
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, st, m, rdb, images, cfg.Media.MaxUploadSize)

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	// 绑定 echo 服务
	handlers.RegisterHandlers(e, handlerApp)

	// 本地存储的图片由 echo 直接提供
	if cfg.Media.Driver == "local" {
		e.Static(cfg.Media.URLPrefix, cfg.Media.Root)
	}

	// 添加 API 文档
	if !cfg.IsProd() {
		if specJSON, err := apidocs.JSON(); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(apidocs.Doc("/api", specJSON))
		}
	}

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
