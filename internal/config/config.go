package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// GetListEnv splits a comma separated variable, dropping empty items.
func GetListEnv(key string, defaultVal []string) []string {
	val := GetEnv(key, "")
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN returns the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=UTC"
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type MarketplaceConfig struct {
	Currency         string
	PlatformFeeRate  decimal.Decimal
	ExpirySchedule   string
	ProcedureTimeout time.Duration
}

// Config is the full runtime configuration of the server.
type Config struct {
	Port            string
	Env             string
	JWTSecret       string
	StripeSecretKey string
	CORSOrigins     string
	Database        DatabaseConfig
	Redis           RedisConfig
	Kafka           KafkaConfig
	Marketplace     MarketplaceConfig
}

// Load reads the configuration from the environment.
func Load() *Config {
	feeRate, err := decimal.NewFromString(GetEnv("PLATFORM_FEE_RATE", "0.5"))
	if err != nil || feeRate.IsNegative() || feeRate.GreaterThan(decimal.NewFromInt(1)) {
		log.Printf("invalid PLATFORM_FEE_RATE, using 0.5")
		feeRate = decimal.RequireFromString("0.5")
	}

	return &Config{
		Port:            GetEnv("PORT", "3000"),
		Env:             GetEnv("ENV", "development"),
		JWTSecret:       GetEnv("JWT_SECRET", ""),
		StripeSecretKey: GetEnv("STRIPE_SECRET_KEY", ""),
		CORSOrigins:     GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "propmarket"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
			TTL:      GetDurationEnv("CACHE_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: GetListEnv("KAFKA_BROKERS", nil),
			Topic:   GetEnv("KAFKA_TOPIC", "marketplace-events"),
		},
		Marketplace: MarketplaceConfig{
			Currency:         GetEnv("CURRENCY", "AED"),
			PlatformFeeRate:  feeRate,
			ExpirySchedule:   GetEnv("MARKETPLACE_EXPIRY_SCHEDULE", "@every 5m"),
			ProcedureTimeout: GetDurationEnv("PROCEDURE_TIMEOUT", 30*time.Second),
		},
	}
}
