package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Log    LogConfig
	CORS   CORSConfig
	Import ImportConfig
	S3     S3Config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ImportConfig holds NFe archive import settings.
type ImportConfig struct {
	// MaxUploadMB is the archive size ceiling; uploads above it are
	// rejected before any processing.
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
	// LineItems enables persistence of entregas_itens rows alongside
	// each imported delivery.
	LineItems bool `mapstructure:"line_items"`
}

// S3Config holds object storage settings for archive retention. An empty
// bucket disables retention entirely.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Load reads configuration from environment variables with the ENTREGAS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENTREGAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":3000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "entregas")
	v.SetDefault("db.password", "entregas_secret")
	v.SetDefault("db.name", "entregas_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "12h")
	v.SetDefault("jwt.issuer", "entregas")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (open, matching the current frontend deployment)
	v.SetDefault("cors.allowed_origins", "*")

	// Import defaults
	v.SetDefault("import.max_upload_mb", 50)
	v.SetDefault("import.line_items", true)

	// S3 defaults (retention disabled until a bucket is configured)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "ENTREGAS_SERVER_PORT",
		"server.read_timeout":  "ENTREGAS_SERVER_READ_TIMEOUT",
		"server.write_timeout": "ENTREGAS_SERVER_WRITE_TIMEOUT",
		"server.environment":   "ENTREGAS_SERVER_ENVIRONMENT",
		"db.host":              "ENTREGAS_DB_HOST",
		"db.port":              "ENTREGAS_DB_PORT",
		"db.user":              "ENTREGAS_DB_USER",
		"db.password":          "ENTREGAS_DB_PASSWORD",
		"db.name":              "ENTREGAS_DB_NAME",
		"db.sslmode":           "ENTREGAS_DB_SSLMODE",
		"db.max_open":          "ENTREGAS_DB_MAX_OPEN",
		"db.max_idle":          "ENTREGAS_DB_MAX_IDLE",
		"jwt.secret":           "ENTREGAS_JWT_SECRET",
		"jwt.access_expiry":    "ENTREGAS_JWT_ACCESS_EXPIRY",
		"jwt.issuer":           "ENTREGAS_JWT_ISSUER",
		"log.level":            "ENTREGAS_LOG_LEVEL",
		"log.format":           "ENTREGAS_LOG_FORMAT",
		"cors.allowed_origins": "ENTREGAS_CORS_ALLOWED_ORIGINS",
		"import.max_upload_mb": "ENTREGAS_IMPORT_MAX_UPLOAD_MB",
		"import.line_items":    "ENTREGAS_IMPORT_LINE_ITEMS",
		"s3.region":            "ENTREGAS_S3_REGION",
		"s3.bucket":            "ENTREGAS_S3_BUCKET",
		"s3.endpoint":          "ENTREGAS_S3_ENDPOINT",
		"s3.access_key":        "ENTREGAS_S3_ACCESS_KEY",
		"s3.secret_key":        "ENTREGAS_S3_SECRET_KEY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if ENTREGAS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ENTREGAS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Import = ImportConfig{
		MaxUploadMB: v.GetInt64("import.max_upload_mb"),
		LineItems:   v.GetBool("import.line_items"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}

	return cfg, nil
}
