package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DBPath        string
	HTTPAddr      string
	// FreezeRateAtCreation фиксирует ставку в смене при создании.
	FreezeRateAtCreation bool
	Workers              int
	QueueSize            int
	// AdminChatIDs — Telegram ID администраторов (ADMIN_CHAT_IDS через запятую).
	AdminChatIDs map[int64]bool
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{
		TelegramToken:        os.Getenv("TELEGRAM_TOKEN"),
		DBPath:               getEnv("DB_PATH", "payroll-bot.db"),
		HTTPAddr:             os.Getenv("HTTP_ADDR"),
		FreezeRateAtCreation: getEnvBool("FREEZE_RATE_AT_CREATION", false),
		Workers:              getEnvInt("WORKERS", 4),
		QueueSize:            getEnvInt("QUEUE_SIZE", 32),
	}
	admins, err := parseIDs(os.Getenv("ADMIN_CHAT_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.AdminChatIDs = admins
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TelegramToken == "" && c.HTTPAddr == "" {
		return ErrNoFrontend{}
	}
	if c.Workers <= 0 {
		return fmt.Errorf("WORKERS должно быть больше нуля")
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("QUEUE_SIZE не может быть отрицательным")
	}
	return nil
}

type ErrNoFrontend struct{}

func (e ErrNoFrontend) Error() string {
	return "не задан ни TELEGRAM_TOKEN, ни HTTP_ADDR"
}

func parseIDs(raw string) (map[int64]bool, error) {
	ids := make(map[int64]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_CHAT_IDS: некорректный ID %q", part)
		}
		ids[id] = true
	}
	return ids, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
