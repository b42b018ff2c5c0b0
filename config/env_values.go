package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Environment struct {
	// Server configs
	IsDocker bool
	Port     string

	// Auth configs
	JWTSecret                 string
	JWTExpirationMilliseconds int
	APIUser                   string
	APIPassword               string

	// Article store (PostgreSQL)
	PostgresDSN string

	// Query history store (MongoDB)
	MongoURI          string
	MongoDatabaseName string

	// Stats cache (Redis)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string

	// LLM configs
	DefaultLLMClient          string
	OpenAIAPIKey              string
	OpenAIModel               string
	OpenAIMaxCompletionTokens int
	OpenAITemperature         float64
	GeminiAPIKey              string
	GeminiModel               string
	GeminiMaxCompletionTokens int
	GeminiTemperature         float64
}

var Env Environment

// LoadEnv loads environment variables from .env file if present
// and validates required variables
func LoadEnv() error {
	// Check if running in Docker
	Env.IsDocker = os.Getenv("IS_DOCKER") == "true"

	// Load .env file only if not running in Docker
	if !Env.IsDocker {
		if err := godotenv.Load(); err != nil {
			fmt.Printf("Warning: .env file not found: %v\n", err)
		}
	}

	// Server configs
	Env.Port = getEnvWithDefault("PORT", "3000")

	// Auth configs
	Env.JWTSecret = getRequiredEnv("NEWSGRAPH_JWT_SECRET", "newsgraph_jwt_secret")
	Env.JWTExpirationMilliseconds = getIntEnvWithDefault("NEWSGRAPH_JWT_EXPIRATION_MILLISECONDS", 1000*60*60*24*10) // 10 days default
	Env.APIUser = getEnvWithDefault("NEWSGRAPH_API_USER", "admin")
	Env.APIPassword = getEnvWithDefault("NEWSGRAPH_API_PASSWORD", "admin")

	// Database configs
	Env.PostgresDSN = getRequiredEnv("NEWSGRAPH_POSTGRES_DSN", "host=localhost user=newsgraph password=newsgraph dbname=newsgraph port=5432 sslmode=disable")
	Env.MongoURI = getRequiredEnv("NEWSGRAPH_MONGODB_URI", "mongodb://localhost:27017/newsgraph")
	Env.MongoDatabaseName = getRequiredEnv("NEWSGRAPH_MONGODB_DB_NAME", "newsgraph")
	Env.RedisHost = getRequiredEnv("NEWSGRAPH_REDIS_HOST", "localhost")
	Env.RedisPort = getRequiredEnv("NEWSGRAPH_REDIS_PORT", "6379")
	Env.RedisUsername = getEnvWithDefault("NEWSGRAPH_REDIS_USERNAME", "")
	Env.RedisPassword = getEnvWithDefault("NEWSGRAPH_REDIS_PASSWORD", "")

	// LLM configs
	Env.DefaultLLMClient = getEnvWithDefault("NEWSGRAPH_DEFAULT_LLM_CLIENT", "openai")
	Env.OpenAIAPIKey = os.Getenv("NEWSGRAPH_OPENAI_API_KEY")
	Env.OpenAIModel = getEnvWithDefault("NEWSGRAPH_OPENAI_MODEL", "gpt-4o")
	Env.OpenAIMaxCompletionTokens = getIntEnvWithDefault("NEWSGRAPH_OPENAI_MAX_COMPLETION_TOKENS", 1024)
	Env.OpenAITemperature = getFloatEnvWithDefault("NEWSGRAPH_OPENAI_TEMPERATURE", 0)
	Env.GeminiAPIKey = os.Getenv("NEWSGRAPH_GEMINI_API_KEY")
	Env.GeminiModel = getEnvWithDefault("NEWSGRAPH_GEMINI_MODEL", "gemini-2.0-flash")
	Env.GeminiMaxCompletionTokens = getIntEnvWithDefault("NEWSGRAPH_GEMINI_MAX_COMPLETION_TOKENS", 1024)
	Env.GeminiTemperature = getFloatEnvWithDefault("NEWSGRAPH_GEMINI_TEMPERATURE", 0)

	return validateConfig()
}

// Helper functions to get environment variables with defaults and validation
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getRequiredEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	strValue := os.Getenv(key)
	if strValue == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strValue)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %d\n", key, defaultValue)
		return defaultValue
	}
	return value
}

func getFloatEnvWithDefault(key string, defaultValue float64) float64 {
	strValue := os.Getenv(key)
	if strValue == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %v\n", key, defaultValue)
		return defaultValue
	}
	return value
}

func validateConfig() error {
	if !isValidURI(Env.MongoURI) {
		return fmt.Errorf("invalid MONGODB_URI format: %s", Env.MongoURI)
	}

	if Env.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN must not be empty")
	}

	if Env.JWTExpirationMilliseconds <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MILLISECONDS must be positive, got: %d", Env.JWTExpirationMilliseconds)
	}

	return nil
}

func isValidURI(uri string) bool {
	return len(uri) > 10
}
