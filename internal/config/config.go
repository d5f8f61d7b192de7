package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации сервера
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Database pool
	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Security Config
	EncryptionKey    string `env:"ENCRYPTION_KEY"`
	EnableEncryption bool   `env:"ENABLE_ENCRYPTION" envDefault:"true"`

	// Events Config
	EventTTL            time.Duration `env:"EVENT_TTL" envDefault:"1h"`
	ClusterRadiusMeters int           `env:"CLUSTER_RADIUS_METERS" envDefault:"50"`
	ExpiryInterval      time.Duration `env:"EXPIRY_INTERVAL" envDefault:"1m"`

	// Push Config: false - один экземпляр сервера без Redis-ретрансляции
	PushRedisRelay bool `env:"PUSH_REDIS_RELAY" envDefault:"true"`

	// Geocoder Config
	GeocoderURL     string        `env:"GEOCODER_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocoderTimeout time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"5s"`
	GeocoderRPS     float64       `env:"GEOCODER_RPS" envDefault:"1"`

	// Stats Config
	StatsTimeWindowMinutes int `env:"STATS_TIME_WINDOW_MINUTES" envDefault:"60"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// ClientConfig - конфигурация клиентского агента
type ClientConfig struct {
	ServerURL        string        `env:"SERVER_URL"`
	APIKey           string        `env:"API_KEY"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	EncryptionKey    string        `env:"ENCRYPTION_KEY"`
	EnableEncryption bool          `env:"ENABLE_ENCRYPTION" envDefault:"true"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	// Offline queue
	QueueDir      string        `env:"QUEUE_DIR" envDefault:"./data/queue"`
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"30s"`

	// Push channel
	PushBackoff time.Duration `env:"PUSH_BACKOFF" envDefault:"5s"`

	// Alerts
	MuteRadiusMeters float64  `env:"MUTE_RADIUS_METERS" envDefault:"0"`
	MutedStreets     []string `env:"MUTED_STREETS"`

	// Voice
	WakePhrases []string `env:"WAKE_PHRASES" envDefault:"hey road,report"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		DBMaxConns:             getEnvAsInt("DB_MAX_CONNS", 10),
		DBMaxConnLifetime:      getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		EncryptionKey:          os.Getenv("ENCRYPTION_KEY"),
		EnableEncryption:       getEnvAsBool("ENABLE_ENCRYPTION", true),
		EventTTL:               getEnvAsDuration("EVENT_TTL", time.Hour),
		ClusterRadiusMeters:    getEnvAsInt("CLUSTER_RADIUS_METERS", 50),
		ExpiryInterval:         getEnvAsDuration("EXPIRY_INTERVAL", time.Minute),
		PushRedisRelay:         getEnvAsBool("PUSH_REDIS_RELAY", true),
		GeocoderURL:            getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderTimeout:        getEnvAsDuration("GEOCODER_TIMEOUT", 5*time.Second),
		GeocoderRPS:            getEnvAsFloat("GEOCODER_RPS", 1),
		StatsTimeWindowMinutes: getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
		APIKeys:                getEnvAsList("API_KEYS", nil),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.EnableEncryption && cfg.EncryptionKey == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY environment variable is required when encryption is enabled")
	}

	return cfg, nil
}

// LoadClientConfig загружает конфигурацию клиента
func LoadClientConfig() (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &ClientConfig{
		ServerURL:        strings.TrimRight(os.Getenv("SERVER_URL"), "/"),
		APIKey:           os.Getenv("API_KEY"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		EncryptionKey:    os.Getenv("ENCRYPTION_KEY"),
		EnableEncryption: getEnvAsBool("ENABLE_ENCRYPTION", true),
		RequestTimeout:   getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		QueueDir:         getEnv("QUEUE_DIR", "./data/queue"),
		FlushInterval:    getEnvAsDuration("FLUSH_INTERVAL", 30*time.Second),
		PushBackoff:      getEnvAsDuration("PUSH_BACKOFF", 5*time.Second),
		MuteRadiusMeters: getEnvAsFloat("MUTE_RADIUS_METERS", 0),
		MutedStreets:     getEnvAsList("MUTED_STREETS", nil),
		WakePhrases:      getEnvAsList("WAKE_PHRASES", []string{"hey road", "report"}),
	}

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("SERVER_URL environment variable is required")
	}
	if cfg.EnableEncryption && cfg.EncryptionKey == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY environment variable is required when encryption is enabled")
	}

	return cfg, nil
}

func loadDotEnv() error {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
