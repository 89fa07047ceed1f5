package handlers

import (
	"recipe-app-api/app/server/accounts"
	"recipe-app-api/app/server/storage"
	"recipe-app-api/app/server/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	l        *zap.Logger        // 日志
	st       store.Store        // 数据库
	accounts *accounts.Manager  // 账户
	rdb      *redis.Client      // Redis ，为 nil 时不使用缓存
	images   storage.ImageStore // 图片存储

	maxUploadSize int64 // 上传图片大小上限（字节）
}

func NewApp(l *zap.Logger, st store.Store, m *accounts.Manager, rdb *redis.Client, images storage.ImageStore, maxUploadSize int64) *App {
	return &App{
		l:             l,
		st:            st,
		accounts:      m,
		rdb:           rdb,
		images:        images,
		maxUploadSize: maxUploadSize,
	}
}
