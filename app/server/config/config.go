package config

import "strings"

type Config struct {
	System struct {
		Mode                  string `koanf:"mode"`       // 运行模式，以 p 开头视为生产环境
		Listen                string `koanf:"listen"`     // 监听地址
		DBConnectionString    string `koanf:"db_conn"`    // Postgres 数据库的连接字符串
		RedisConnectionString string `koanf:"redis_conn"` // Redis 数据库的连接字符串，为空则不使用缓存
	} `koanf:"system"`
	Media struct {
		Driver        string `koanf:"driver"`          // 图片存储方式： local 或 s3
		Root          string `koanf:"root"`            // 本地存储的根目录
		URLPrefix     string `koanf:"url_prefix"`      // 本地存储对外访问的路径前缀
		MaxUploadSize int64  `koanf:"max_upload_size"` // 上传图片的大小上限（字节）
		S3            struct {
			Region          string `koanf:"region"`
			Endpoint        string `koanf:"endpoint"` // 兼容 S3 的服务地址（例如 MinIO ），为空则使用 AWS
			Bucket          string `koanf:"bucket"`
			AccessKeyID     string `koanf:"access_key_id"`
			SecretAccessKey string `koanf:"secret_access_key"`
			PublicBaseURL   string `koanf:"public_base_url"` // 对外访问的地址前缀
		} `koanf:"s3"`
	} `koanf:"media"`
	Bootstrap struct {
		SuperuserEmail    string `koanf:"superuser_email"` // 启动时如果该账户不存在，则创建为超级用户
		SuperuserPassword string `koanf:"superuser_password"`
	} `koanf:"bootstrap"`
}

func (c *Config) IsProd() bool {
	return strings.HasPrefix(strings.ToLower(c.System.Mode), "p")
}
