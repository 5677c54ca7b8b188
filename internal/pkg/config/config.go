package config

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	App       AppConfig       `mapstructure:"app"`
	Upload    UploadConfig    `mapstructure:"upload"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

type AppConfig struct {
	Env          string `mapstructure:"env"`
	Debug        bool   `mapstructure:"debug"`
	SeedDemoData bool   `mapstructure:"seed_demo_data"` // 启动时写入演示数据
}

type UploadConfig struct {
	Dir          string `mapstructure:"dir"`           // 本地存储目录
	MaxFileSize  int64  `mapstructure:"max_file_size"` // 字节
	PublicPrefix string `mapstructure:"public_prefix"` // 对外访问路径前缀
}

type RateLimitConfig struct {
	QPS   float64 `mapstructure:"qps"`
	Burst int     `mapstructure:"burst"`
}

var GlobalConfig Config

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if c.Upload.Dir == "" {
		return errors.New("upload directory is required")
	}
	if c.Upload.MaxFileSize <= 0 {
		return errors.New("upload max file size must be positive")
	}
	if c.Upload.PublicPrefix == "" || c.Upload.PublicPrefix[0] != '/' {
		return errors.New("upload public prefix must start with /")
	}
	return nil
}

// LoadConfig 加载配置
func LoadConfig() {
	// 获取环境变量，默认为dev
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	// 根据环境选择配置文件
	configName := "config"
	if env != "" && env != "dev" {
		configName = "config." + env
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.seed_demo_data", true)
	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("upload.max_file_size", 5*1024*1024)
	viper.SetDefault("upload.public_prefix", "/uploads")
	viper.SetDefault("rate_limit.qps", 100)
	viper.SetDefault("rate_limit.burst", 200)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	// 绑定环境变量
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	// 手动覆盖，以防 viper 无法正确解析环境变量
	if port := os.Getenv("PORT"); port != "" {
		GlobalConfig.Server.Port = port
	}
	if env != "" {
		GlobalConfig.App.Env = env
	}
	if GlobalConfig.App.Env == "production" {
		GlobalConfig.Server.Mode = "release"
		GlobalConfig.App.SeedDemoData = false
	}

	// 验证配置
	if err := GlobalConfig.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	log.Printf("Configuration loaded and validated successfully. Environment: %s", GlobalConfig.App.Env)
}
