package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
	AdminEmail   string

	BonDir string

	AdminUsername string
	AdminPassword string
}

func LoadEnv() Env {
	// .env is optional; deployments usually set variables directly.
	_ = godotenv.Load()

	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),

		DBUser: getenv("DB_USER", "root"),
		DBPass: getenv("DB_PASSWORD", ""),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "aeropark"),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		SMTPHost:     getenv("SMTP_HOST", "smtp.hostinger.com"),
		SMTPPort:     getenvInt("SMTP_PORT", 465),
		SMTPUser:     getenv("SMTP_MAIL", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		EmailFrom:    getenv("EMAIL_FROM", "info@matarpark.com"),
		AdminEmail:   getenv("ADMIN_EMAIL", ""),

		BonDir: getenv("BON_DIR", "storage/bons"),

		AdminUsername: getenv("ADMIN_USERNAME", ""),
		AdminPassword: getenv("ADMIN_PASSWORD", ""),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
