package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Identity  IdentityConfig  `mapstructure:"identity"`
	Editor    EditorConfig    `mapstructure:"editor"`
	Tasks     TasksConfig     `mapstructure:"tasks"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release, test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// IdentityConfig 第三方身份服务配置
type IdentityConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	AnonKey   string        `mapstructure:"anon_key"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// EditorConfig 商品编辑会话配置
type EditorConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// TasksConfig 定时任务配置
type TasksConfig struct {
	AddressAuditEnabled bool   `mapstructure:"address_audit_enabled"`
	AddressAuditSpec    string `mapstructure:"address_audit_spec"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	AuthCooldown time.Duration `mapstructure:"auth_cooldown"`
}

// ==================== 加载 ====================

// Load 加载配置
// 优先级: 环境变量 (APP_ 前缀) > 配置文件 > 默认值
// path 为空时在当前目录和 ./config 下查找 config.yaml，找不到不报错
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验必填配置
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database.dsn 不能为空")
	}
	if c.Identity.JWTSecret == "" {
		return errors.New("identity.jwt_secret 不能为空")
	}
	if c.Editor.SessionTTL <= 0 {
		return errors.New("editor.session_ttl 必须大于 0")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("identity.base_url", "")
	v.SetDefault("identity.anon_key", "")
	v.SetDefault("identity.jwt_secret", "")
	v.SetDefault("identity.timeout", 10*time.Second)

	v.SetDefault("editor.session_ttl", 30*time.Minute)

	v.SetDefault("tasks.address_audit_enabled", true)
	// 每天凌晨 3 点
	v.SetDefault("tasks.address_audit_spec", "0 0 3 * * *")

	v.SetDefault("ratelimit.auth_cooldown", 2*time.Second)
}
