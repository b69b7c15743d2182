package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Mail     MailConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

type AuthConfig struct {
	TokenSecret string
	// AccessTokenHours is the signed token lifetime. SessionWindowMinutes is
	// the expiry reported to clients, kept short independently of the token.
	AccessTokenHours     int
	RefreshTokenHours    int
	SessionWindowMinutes int
	LockoutThreshold     int
	LockoutHours         int
}

type MailConfig struct {
	ResendAPIKey string
	FromAddress  string
	ToAddress    string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./familytree.db"),
		},
		Auth: AuthConfig{
			TokenSecret:          getEnv("TOKEN_SECRET", "default-secret-key"),
			AccessTokenHours:     getEnvAsInt("ACCESS_TOKEN_HOURS", 24),
			RefreshTokenHours:    getEnvAsInt("REFRESH_TOKEN_HOURS", 720),
			SessionWindowMinutes: getEnvAsInt("SESSION_WINDOW_MINUTES", 60),
			LockoutThreshold:     getEnvAsInt("LOCKOUT_THRESHOLD", 5),
			LockoutHours:         getEnvAsInt("LOCKOUT_HOURS", 24),
		},
		Mail: MailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromAddress:  getEnv("CONTACT_FROM", "onboarding@resend.dev"),
			ToAddress:    getEnv("CONTACT_TO", ""),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
