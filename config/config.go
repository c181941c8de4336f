package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config — структура для хранения конфигурации приложения
type Config struct {
	Env            string
	Port           string
	BotToken       string
	AdminID        int64
	PostgresDSN    string
	RedisAddr      string
	WebhookSecret  string
	SessionTTL     time.Duration
	OpenFDABaseURL string
	OpenFDAKey     string
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig загружает конфигурацию только один раз (singleton)
func LoadConfig() *Config {
	once.Do(func() {
		// Попробуем загрузить .env из разных мест
		envPaths := []string{".env", "../.env", "../../.env"}
		for _, path := range envPaths {
			if err := godotenv.Load(path); err == nil {
				break
			}
		}

		cfg = &Config{
			Env:            getEnv("APP_ENV", "development"),
			Port:           getEnv("PORT", "8080"),
			BotToken:       mustHave("BOT_TOKEN"),
			AdminID:        mustHaveInt64("ADMIN_ID"),
			PostgresDSN:    mustHave("POSTGRES_DSN"),
			RedisAddr:      getEnv("REDIS_ADDR", ""),
			WebhookSecret:  getEnv("WEBHOOK_SECRET", ""),
			SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
			OpenFDABaseURL: getEnv("OPENFDA_BASE_URL", ""),
			OpenFDAKey:     getEnv("OPENFDA_API_KEY", ""),
		}
	})
	return cfg
}

// getEnv — возвращает значение или дефолт
func getEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// mustHave — проверяет наличие обязательной переменной
func mustHave(key string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	log.Fatalf("❌ Обязательная переменная окружения %s не установлена", key)
	return ""
}

// mustHaveInt64 — обязательная числовая переменная (Telegram ID админа)
func mustHaveInt64(key string) int64 {
	raw := mustHave(key)
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("❌ Переменная %s должна быть числом, получено %q", key, raw)
	}
	return val
}

// getDuration — длительность из окружения, при ошибке разбора берём дефолт
func getDuration(key string, defaultVal time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warnf("⚠️ Неверный формат %s=%q, используется %s", key, raw, defaultVal)
		return defaultVal
	}
	return d
}
