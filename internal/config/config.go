package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	DatabaseURL    string   `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32    `mapstructure:"DB_MIN_CONNS"`
	DBSchema       string   `mapstructure:"DB_SCHEMA"`
	StorageBackend string   `mapstructure:"STORAGE_BACKEND"`
	StorageBucket  string   `mapstructure:"STORAGE_BUCKET"`
	StorageRegion  string   `mapstructure:"STORAGE_REGION"`
	StoragePublic  bool     `mapstructure:"STORAGE_PUBLIC"`
	SignedURLTTL   int      `mapstructure:"SIGNED_URL_TTL_SECONDS"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	LettersDir     string   `mapstructure:"LETTERS_DIR"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_SCHEMA", "claims")
	v.SetDefault("STORAGE_BACKEND", "memory")
	v.SetDefault("STORAGE_REGION", "ap-southeast-2")
	v.SetDefault("SIGNED_URL_TTL_SECONDS", 900)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LETTERS_DIR", "./letters")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("DB_SCHEMA")
	v.BindEnv("STORAGE_BACKEND")
	v.BindEnv("STORAGE_BUCKET")
	v.BindEnv("STORAGE_REGION")
	v.BindEnv("STORAGE_PUBLIC")
	v.BindEnv("SIGNED_URL_TTL_SECONDS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("LETTERS_DIR")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: All requests are granted the registrar role. Do NOT use in production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. The S3 backend needs
// a bucket; a private bucket needs a positive signed-URL TTL.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "memory", "s3":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be \"memory\" or \"s3\", got %q", c.StorageBackend)
	}
	if c.StorageBackend == "s3" && c.StorageBucket == "" {
		return fmt.Errorf("STORAGE_BUCKET is required when STORAGE_BACKEND is \"s3\"")
	}
	if !c.StoragePublic && c.SignedURLTTL <= 0 {
		return fmt.Errorf("SIGNED_URL_TTL_SECONDS must be positive for a private bucket, got %d", c.SignedURLTTL)
	}
	if c.IsProduction() && c.StorageBackend == "memory" {
		return fmt.Errorf("STORAGE_BACKEND \"memory\" is not allowed in production")
	}
	return nil
}
