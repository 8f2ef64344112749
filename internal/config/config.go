package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig 本地存储配置
// Backend 取值：file（默认，目录下每个 key 一个文件）、sqlite、redis
type StorageConfig struct {
	Backend    string
	DataDir    string
	SQLitePath string
	RedisAddr  string
}

// AuthConfig 密码门禁配置
// 整个应用只有一个硬编码密码，通过存储里的时间戳窗口判断是否仍然有效
type AuthConfig struct {
	Password      string
	WindowSeconds int
}

func (a AuthConfig) Window() time.Duration {
	if a.WindowSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(a.WindowSeconds) * time.Second
}

// SyncConfig 变更传播配置
type SyncConfig struct {
	// PollIntervalMS 轮询兜底通道的间隔（毫秒）
	PollIntervalMS int
}

func (s SyncConfig) PollInterval() time.Duration {
	if s.PollIntervalMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(s.PollIntervalMS) * time.Millisecond
}

// Config 应用总配置
type Config struct {
	Server ServerConfig
	// BaseURL 生成分享链接时使用的站点地址（origin）
	BaseURL string
	Storage StorageConfig
	Auth    AuthConfig
	Sync    SyncConfig
}

// DefaultConfig 默认配置，方便快速跑起来
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		BaseURL: "http://localhost:8080",
		Storage: StorageConfig{
			Backend:    "file",
			DataDir:    "./data",
			SQLitePath: "./data/chat.db",
			RedisAddr:  "127.0.0.1:6379",
		},
		Auth: AuthConfig{
			Password:      "admin123",
			WindowSeconds: 3600,
		},
		Sync: SyncConfig{
			PollIntervalMS: 2000,
		},
	}
}

// LoadConfig 从指定目录读取 config.yaml（可选），缺省字段回落到默认值
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		// 配置文件不存在时直接使用默认配置
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
