package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
	ErrUnknownDriver    = errors.New("unknown store driver")
)

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	StoreDriver string
	AppURL      string
	CORSOrigins []string

	Mongo     MongoConfig
	MySQL     MySQLConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	SMTP      SMTPConfig
	Reset     ResetConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret string
	Expire time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type ResetConfig struct {
	TokenTTL time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load 读取 .env（若存在）与环境变量
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port:        getEnv("PORT", "3000"),
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		AppURL:      strings.TrimRight(getEnv("APP_URL", "http://localhost:5173"), "/"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
			Database: getEnv("MONGODB_DATABASE", "community"),
			Timeout:  getEnvDuration("MONGODB_TIMEOUT", 30*time.Second),
		},
		MySQL: MySQLConfig{
			DSN:             getEnv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/community?charset=utf8mb4&parseTime=True"),
			MaxOpenConns:    getEnvInt("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("MYSQL_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Expire: getEnvDuration("JWT_EXPIRE", 30*24*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "portal.changes"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "NoReply <no-reply@example.com>"),
		},
		Reset: ResetConfig{
			TokenTTL: getEnvDuration("RESET_TOKEN_TTL", 15*time.Minute),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
			Burst: getEnvInt("RATE_LIMIT_BURST", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}
	switch c.StoreDriver {
	case DriverMongo, DriverMySQL:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.StoreDriver)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// ParseDuration 在 time.ParseDuration 基础上支持按天计的 "30d"
func ParseDuration(value string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}
