package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port               int      `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	UploadDir          string   `mapstructure:"upload_dir"`
	ThumbDir           string   `mapstructure:"thumb_dir"`
	MaxFileSize        int64    `mapstructure:"max_file_size"`
	DatabaseURL        string   `mapstructure:"database_url"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
	RateLimitPerMinute int      `mapstructure:"rate_limit_per_minute"`

	Storage StorageConfig `mapstructure:"storage"`
	Chat    ChatConfig    `mapstructure:"chat"`
}

type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`
	S3Region    string `mapstructure:"s3_region"`
	S3UseSSL    bool   `mapstructure:"s3_use_ssl"`
}

type ChatConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Endpoint   string `mapstructure:"endpoint"`
	Model      string `mapstructure:"model"`
	MaxHistory int    `mapstructure:"max_history"`
}

// LoadConfig reads files/config.yaml when present; every key has a default
// and can be overridden through the environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile("files/config.yaml")

	v.SetDefault("port", 8080)
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("upload_dir", "files/uploads")
	v.SetDefault("thumb_dir", "files/thumbs")
	v.SetDefault("max_file_size", int64(50*1024*1024))
	v.SetDefault("database_url", "files/mediabox.db")
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("rate_limit_per_minute", 120)
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.s3_use_ssl", true)
	v.SetDefault("chat.endpoint", "https://api.openai.com/v1")
	v.SetDefault("chat.model", "gpt-3.5-turbo")
	v.SetDefault("chat.max_history", 12)

	bindings := map[string]string{
		"port":                  "PORT",
		"base_url":              "BASE_URL",
		"upload_dir":            "UPLOAD_DIR",
		"thumb_dir":             "THUMB_DIR",
		"max_file_size":         "MAX_FILE_SIZE",
		"database_url":          "DATABASE_URL",
		"allowed_origins":       "ALLOWED_ORIGINS",
		"rate_limit_per_minute": "RATE_LIMIT_PER_MINUTE",
		"storage.backend":       "STORAGE_BACKEND",
		"storage.s3_endpoint":   "S3_ENDPOINT",
		"storage.s3_bucket":     "S3_BUCKET",
		"storage.s3_access_key": "S3_ACCESS_KEY",
		"storage.s3_secret_key": "S3_SECRET_KEY",
		"storage.s3_region":     "S3_REGION",
		"storage.s3_use_ssl":    "S3_USE_SSL",
		"chat.api_key":          "OPENAI_API_KEY",
		"chat.endpoint":         "CHAT_ENDPOINT",
		"chat.model":            "CHAT_MODEL",
		"chat.max_history":      "CHAT_MAX_HISTORY",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}
