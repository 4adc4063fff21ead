package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds the configuration for the application.
type Config struct {
	Store          string
	DataPath       string
	DBPath         string
	CategoriesPath string
	LogLevel       string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	Port                   string
}

// NewFromEnv creates a new Config object from environment variables.
// Everything has a default except the Telegram settings, which only the
// bot needs (see RequireTelegram).
func NewFromEnv() (*Config, error) {
	store := strings.ToLower(getEnv("BABYMENU_STORE", StoreFile))
	if store != StoreFile && store != StoreSQLite {
		return nil, fmt.Errorf("BABYMENU_STORE environment variable must be %q or %q, got %q", StoreFile, StoreSQLite, store)
	}

	logLevel := strings.ToLower(getEnv("BABYMENU_LOG_LEVEL", "info"))
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("BABYMENU_LOG_LEVEL environment variable has unknown level %q", logLevel)
	}

	allowed, err := parseUserIDs(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS environment variable is invalid: %w", err)
	}

	port := getEnv("PORT", "8080")
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("PORT environment variable is not a number: %q", port)
	}

	return &Config{
		Store:                  store,
		DataPath:               getEnv("BABYMENU_DATA_PATH", "data/babymenu.json"),
		DBPath:                 getEnv("BABYMENU_DB_PATH", "data/babymenu.db"),
		CategoriesPath:         os.Getenv("BABYMENU_CATEGORIES_PATH"),
		LogLevel:               logLevel,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowed,
		Port:                   port,
	}, nil
}

// RequireTelegram checks the settings the bot cannot start without.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	if len(c.TelegramAllowedUserIDs) == 0 {
		return fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS environment variable not set")
	}
	return nil
}

// IsAllowed reports whether the Telegram user may use the bot.
func (c *Config) IsAllowed(userID int64) bool {
	for _, id := range c.TelegramAllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseUserIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad user id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
