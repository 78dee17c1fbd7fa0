package config

import (
	"os"
	"strconv"
	"time"

	"pawn-backend/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		Env                string   `mapstructure:"env"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
		CorsCredentials    bool     `mapstructure:"cors_allow_credentials"`
		CorsMaxAge         int      `mapstructure:"cors_max_age"`
		MaxUploadMB        int64    `mapstructure:"max_upload_mb"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		MaxConns int32  `mapstructure:"max_conns"`
	} `mapstructure:"database"`

	Redis struct {
		Enabled  bool   `mapstructure:"enabled"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	StockSummary struct {
		DefaultPageLimit  int           `mapstructure:"default_page_limit"`
		DashboardCacheTTL time.Duration `mapstructure:"dashboard_cache_ttl"`
	} `mapstructure:"stock_summary"`

	Backup struct {
		R2Enabled   bool   `mapstructure:"r2_enabled"`
		R2Endpoint  string `mapstructure:"r2_endpoint"`
		R2AccessKey string `mapstructure:"r2_access_key"`
		R2SecretKey string `mapstructure:"r2_secret_key"`
		R2Bucket    string `mapstructure:"r2_bucket"`
		R2Region    string `mapstructure:"r2_region"`
		R2Prefix    string `mapstructure:"r2_prefix"`
	} `mapstructure:"backup"`
}

// IsProduction reports whether error responses must hide stack traces
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	v.AutomaticEnv()
	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		logger.Component("config").Info("No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Get().Fatalf("config unmarshal error: %v", err)
	}

	applyEnvOverrides(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Content-Type", "Authorization"})
	v.SetDefault("server.cors_allow_credentials", false)
	v.SetDefault("server.cors_max_age", 300)
	v.SetDefault("server.max_upload_mb", 20)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "pawn_db")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("log.level", "info")
	v.SetDefault("stock_summary.default_page_limit", 100)
	v.SetDefault("stock_summary.dashboard_cache_ttl", 2*time.Minute)
	v.SetDefault("backup.r2_region", "auto")
	v.SetDefault("backup.r2_prefix", "backups/")
}

func applyEnvOverrides(cfg *Config) {
	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	if host := os.Getenv("REDIS_SERVICE_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_SERVICE_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Redis.Port = n
		}
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Server.Env = env
	}

	// R2 credentials are never kept in the config file
	if key := os.Getenv("R2_ACCESS_KEY"); key != "" {
		cfg.Backup.R2AccessKey = key
	}
	if secret := os.Getenv("R2_SECRET_KEY"); secret != "" {
		cfg.Backup.R2SecretKey = secret
	}
}
