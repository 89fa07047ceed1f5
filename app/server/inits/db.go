package inits

import (
	"context"
	"errors"
	"fmt"

	"recipe-app-api/app/server/accounts"
	"recipe-app-api/app/server/config"
	"recipe-app-api/app/server/store"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(conn string) (db *gorm.DB, err error) {
	// 打开连接，让 gorm 把唯一键冲突等错误转换成统一的错误类型
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{
		TranslateError: true,
	}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = store.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 返回
	return db, nil
}

// InitData 初始化启动数据：配置了超级用户但数据库里还没有时，创建它
func InitData(ctx context.Context, cfg *config.Config, st store.Accounts, m *accounts.Manager, l *zap.Logger) error {
	email := cfg.Bootstrap.SuperuserEmail
	if email == "" {
		return nil
	}

	if _, err := st.FindAccountByEmail(ctx, accounts.NormalizeEmail(email)); err == nil {
		// 已经存在
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to find superuser: %w", err)
	}

	account, err := m.CreatePrivilegedAccount(ctx, email, cfg.Bootstrap.SuperuserPassword)
	if err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	l.Info("superuser created", zap.Uint("id", account.ID), zap.String("email", account.Email))
	return nil
}
