package inits

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"recipe-app-api/app/server/config"
	"recipe-app-api/app/server/constants"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// 环境变量名到配置路径的映射，不在表里的环境变量会被忽略
var envMappings = map[string]string{
	"MODE":       "system.mode",
	"LISTEN":     "system.listen",
	"DB_CONN":    "system.db_conn",
	"REDIS_CONN": "system.redis_conn",

	"MEDIA_DRIVER":     "media.driver",
	"MEDIA_ROOT":       "media.root",
	"MEDIA_URL_PREFIX": "media.url_prefix",
	"MAX_UPLOAD_SIZE":  "media.max_upload_size",

	"S3_REGION":            "media.s3.region",
	"S3_ENDPOINT":          "media.s3.endpoint",
	"S3_BUCKET":            "media.s3.bucket",
	"S3_ACCESS_KEY_ID":     "media.s3.access_key_id",
	"S3_SECRET_ACCESS_KEY": "media.s3.secret_access_key",
	"S3_PUBLIC_BASE_URL":   "media.s3.public_base_url",

	"SUPERUSER_EMAIL":    "bootstrap.superuser_email",
	"SUPERUSER_PASSWORD": "bootstrap.superuser_password",
}

func defaultConfig() config.Config {
	var cfg config.Config

	cfg.System.Listen = ":1323" // 默认监听地址

	cfg.Media.Driver = "local"
	cfg.Media.Root = constants.MediaRoot
	cfg.Media.URLPrefix = constants.MediaURLPrefix
	cfg.Media.MaxUploadSize = 10 << 20 // 10 MiB
	cfg.Media.S3.Region = "us-east-1"

	return cfg
}

func Config() (*config.Config, error) {
	// 有 .env 文件的话先加载进环境变量（不会覆盖已有的）
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	k := koanf.New(".")

	// 默认值
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(&defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 环境变量
	if err := k.Load(env.Provider("", ".", func(key string) string {
		return envMappings[strings.ToUpper(key)]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg config.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 检查必填项
	if cfg.System.DBConnectionString == "" {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	}

	switch cfg.Media.Driver {
	case "local":
	case "s3":
		if cfg.Media.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown MEDIA_DRIVER %q", cfg.Media.Driver)
	}

	if (cfg.Bootstrap.SuperuserEmail == "") != (cfg.Bootstrap.SuperuserPassword == "") {
		return nil, fmt.Errorf("SUPERUSER_EMAIL and SUPERUSER_PASSWORD should be set together")
	}

	return &cfg, nil
}
