package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	Port           string
	MongoURI       string
	MongoDB        string
	MongoColl      string
	PageCap        int
	RequestTimeout time.Duration
	LogLevel       string
	AllowedOrigin  string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	RabbitMQURI      string
	RabbitMQExchange string

	GeminiAPIKey string
	GeminiModel  string

	AWSRegion     string
	AWSBucketName string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using default values or system environment variables")
	}

	Port = getEnv("PORT", "8080")
	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/")
	MongoDB = getEnv("MONGO_DB", "musicprofile")
	MongoColl = getEnv("MONGO_COLLECTION", "profiles")
	PageCap = getEnvAsInt("PAGE_CAP", 100)
	RequestTimeout = getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second)
	LogLevel = getEnv("LOG_LEVEL", "info")
	AllowedOrigin = getEnv("ALLOWED_ORIGIN", "*")

	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	CacheTTL = getEnvAsDuration("CACHE_TTL", 5*time.Minute)

	RabbitMQURI = os.Getenv("RABBITMQ_URI")
	RabbitMQExchange = getEnv("RABBITMQ_EXCHANGE", "profile.events")

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	GeminiModel = getEnv("GEMINI_MODEL", "gemini-1.5-flash")

	AWSRegion = getEnv("AWS_REGION", "us-east-1")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil || i <= 0 {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid integer, using default")
		return defaultValue
	}
	return i
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", value).Msg("invalid duration, using default")
		return defaultValue
	}
	return d
}
