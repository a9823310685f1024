package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every tunable the application reads. It is built once in
// Load and passed by reference to the components that need it; nothing
// reads the environment after startup.
type Config struct {
	Port string
	Env  string // "test" makes email flows return raw tokens instead of sending

	ConfirmationSecret string
	AccessSecret       string
	RefreshSecret      string
	MemberInviteSecret string
	OwnerInviteSecret  string

	ConfirmationTTL time.Duration
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	InviteTTL       time.Duration

	CookieName string

	MinPasswordLength int
	MaxPasswordLength int

	MaxColumnsPerProject int
	MaxTasksPerProject   int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	CredentialsFile string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using OS environment")
	}

	cfg := &Config{
		Port: getEnv("PORT", "3000"),
		Env:  getEnv("APP_ENV", "development"),

		ConfirmationSecret: os.Getenv("JWT_CONFIRMATION_SECRET_KEY"),
		AccessSecret:       os.Getenv("JWT_SECRET_KEY"),
		RefreshSecret:      os.Getenv("JWT_REFRESH_SECRET_KEY"),
		MemberInviteSecret: os.Getenv("JWT_INVITE_MEMBER_SECRET_KEY"),
		OwnerInviteSecret:  os.Getenv("JWT_INVITE_OWNER_SECRET_KEY"),

		ConfirmationTTL: getEnvDuration("JWT_CONFIRMATION_EXPIRE_TIME", 24*time.Hour),
		AccessTTL:       getEnvDuration("JWT_EXPIRE_TIME", 5*time.Hour),
		RefreshTTL:      getEnvDuration("JWT_REFRESH_EXPIRE_TIME", 5*24*time.Hour),
		InviteTTL:       getEnvDuration("JWT_INVITE_EXPIRE_TIME", 24*time.Hour),

		CookieName: getEnv("JWT_COOKIE_NAME", "jwt"),

		MinPasswordLength: getEnvInt("MIN_PASSWORD_LENGTH", 8),
		MaxPasswordLength: getEnvInt("MAX_PASSWORD_LENGTH", 25),

		MaxColumnsPerProject: getEnvInt("MAX_COLUMN_NUMBER_PER_PROJECT", 12),
		MaxTasksPerProject:   getEnvInt("MAX_TASK_NUMBER_PER_PROJECT", 100),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		EmailFrom:    getEnv("EMAIL_FROM", os.Getenv("SMTP_USERNAME")),

		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	}

	for name, secret := range map[string]string{
		"JWT_CONFIRMATION_SECRET_KEY":  cfg.ConfirmationSecret,
		"JWT_SECRET_KEY":               cfg.AccessSecret,
		"JWT_REFRESH_SECRET_KEY":       cfg.RefreshSecret,
		"JWT_INVITE_MEMBER_SECRET_KEY": cfg.MemberInviteSecret,
		"JWT_INVITE_OWNER_SECRET_KEY":  cfg.OwnerInviteSecret,
	} {
		if secret == "" {
			return nil, fmt.Errorf("environment variable %s is not set", name)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// getEnvDuration reads a duration given in seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
