package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Uploads  UploadsConfig
	Telegram TelegramConfig
	LogLevel string
	// Store selects the persistence backend: "postgres" or "memory".
	Store       string
	AutoMigrate bool
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type HTTPConfig struct {
	Addr        string
	CORSOrigins []string
}

type AuthConfig struct {
	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool
}

type UploadsConfig struct {
	Dir       string
	URLPrefix string
}

type TelegramConfig struct {
	Token       string // bot used to forward contact messages to the staff chat
	AdminChatID int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	chatID, _ := strconv.ParseInt(getEnv("TELEGRAM_ADMIN_CHAT_ID", "0"), 10, 64)
	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		ttl = 12 * time.Hour
	}

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "bar"),
		},
		HTTP: HTTPConfig{
			Addr:        getEnv("HTTP_ADDR", ":8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			SessionTTL:   ttl,
			CookieSecure: isTrue(getEnv("COOKIE_SECURE", "")),
		},
		Uploads: UploadsConfig{
			Dir:       getEnv("UPLOAD_DIR", "./uploads"),
			URLPrefix: getEnv("PUBLIC_UPLOAD_PREFIX", "/uploads"),
		},
		Telegram: TelegramConfig{
			Token:       getEnv("TELEGRAM_TOKEN", ""),
			AdminChatID: chatID,
		},
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Store:       strings.ToLower(getEnv("STORE", "postgres")),
		AutoMigrate: isTrue(getEnv("AUTO_MIGRATE", "")),
	}, nil
}

// ErrInsecureJWTSecret is returned by CheckSecret when session tokens could be forged.
var ErrInsecureJWTSecret = errors.New("JWT_SECRET is unset or a placeholder; set a long random value")

var placeholderSecrets = map[string]bool{"changeme": true, "secret": true}

const minJWTSecretLen = 16

// CheckSecret rejects signing secrets that are too short or a known placeholder.
func (a AuthConfig) CheckSecret() error {
	secret := strings.TrimSpace(a.JWTSecret)
	if len(secret) < minJWTSecretLen || placeholderSecrets[strings.ToLower(secret)] {
		return ErrInsecureJWTSecret
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func isTrue(v string) bool {
	v = strings.TrimSpace(v)
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
