package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Env holds runtime configuration read from config.yaml and the environment.
type Env struct {
	AppAddr  string `mapstructure:"APP_ADDR"`
	GinMode  string `mapstructure:"GIN_MODE"`
	AppEnv   string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseDSN string `mapstructure:"DATABASE_DSN"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`
	DraftTTL  time.Duration `mapstructure:"DRAFT_TTL"`

	CloudinaryURL  string `mapstructure:"CLOUDINARY_URL"`
	UploadEndpoint string `mapstructure:"UPLOAD_ENDPOINT"`
	AvatarFolder   string `mapstructure:"AVATAR_FOLDER"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

var defaults = map[string]any{
	"APP_ADDR":              ":8080",
	"GIN_MODE":              "",
	"APP_ENV":               "development",
	"LOG_LEVEL":             "info",
	"DATABASE_DSN":          "root:@tcp(127.0.0.1:3306)/travel_portal?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
	"REDIS_ADDR":            "localhost:6379",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"JWT_SECRET":            "change-me",
	"TOKEN_TTL":             "24h",
	"DRAFT_TTL":             "2h",
	"CLOUDINARY_URL":        "",
	"UPLOAD_ENDPOINT":       "",
	"AVATAR_FOLDER":         "avatars",
	"CORS_ALLOWED_ORIGINS":  "http://localhost:3000,http://127.0.0.1:3000",
	"RATE_LIMIT_PER_MINUTE": 60,
}

// LoadEnv reads config.yaml from . or ./config when present, then lets
// environment variables override every key.
func LoadEnv() Env {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		log.Println("config.yaml tidak ditemukan, memakai environment saja")
	}

	var env Env
	if err := v.Unmarshal(&env); err != nil {
		log.Fatalf("Gagal membaca konfigurasi: %v", err)
	}
	env.AppAddr = strings.TrimSpace(env.AppAddr)
	if env.AppAddr == "" {
		env.AppAddr = ":8080"
	}
	return env
}

func (e Env) IsProduction() bool {
	return strings.EqualFold(e.AppEnv, "production")
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (e Env) AllowedOrigins() []string {
	out := []string{}
	for _, o := range strings.Split(e.CORSAllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
