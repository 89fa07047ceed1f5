package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"recipe-app-api/app/server/accounts"
	"recipe-app-api/app/server/inits"
	"recipe-app-api/app/server/store"

	"go.uber.org/zap"
)

const usage = `usage: manage <command> [flags]

commands:
  createsuperuser -email E -password P   create a staff superuser account
  deleteaccount -email E                 delete an account with everything it owns
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

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

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}
	st := store.NewGorm(db)

	// 初始化 Redis 连接，用于清理 token 缓存
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	m, err := accounts.NewManager(st)
	if err != nil {
		l.Fatal("error initializing account manager", zap.Error(err))
	}

	if err = run(context.Background(), newCommands(st, m, rdb, l), os.Args[1], os.Args[2:]); err != nil {
		l.Fatal("command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}
