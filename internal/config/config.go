package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Kirana"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"kirana"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Shop struct {
		AllowOversell    bool   `envconfig:"SHOP_ALLOW_OVERSELL" default:"true"`
		AllowOverpayment bool   `envconfig:"SHOP_ALLOW_OVERPAYMENT" default:"true"`
		BillPrefix       string `envconfig:"SHOP_BILL_PREFIX" default:"BILL"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Redis struct {
		Addr     string        `envconfig:"REDIS_ADDR"`
		Password string        `envconfig:"REDIS_PASSWORD"`
		DB       int           `envconfig:"REDIS_DB" default:"0"`
		KeyTTL   time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	}

	Invoice struct {
		ChromeURL     string        `envconfig:"INVOICE_CHROME_URL"`
		RenderTimeout time.Duration `envconfig:"INVOICE_RENDER_TIMEOUT" default:"30s"`
		S3Bucket      string        `envconfig:"INVOICE_S3_BUCKET"`
		S3Endpoint    string        `envconfig:"INVOICE_S3_ENDPOINT"`
		S3Region      string        `envconfig:"INVOICE_S3_REGION" default:"us-east-1"`
		S3AccessKey   string        `envconfig:"INVOICE_S3_ACCESS_KEY"`
		S3SecretKey   string        `envconfig:"INVOICE_S3_SECRET_KEY"`
		S3PathStyle   bool          `envconfig:"INVOICE_S3_PATH_STYLE" default:"true"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.App.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
