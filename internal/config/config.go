package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"alfredoptarigan/resume-reviewer/internal/logger"
)

var log = logger.New("config")

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Gemini     GeminiConfig
	Analysis   AnalysisConfig
	Extraction ExtractionConfig
	Cache      CacheConfig
	Reports    ReportsConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type AnalysisConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	CallTimeout    time.Duration
	MaxPromptChars int
}

type ExtractionConfig struct {
	MaxFileSize  int64
	PreviewChars int
}

// CacheConfig selects the extracted-text cache. An empty ValkeyAddr keeps the
// cache in process memory.
type CacheConfig struct {
	ValkeyAddr     string
	ValkeyPassword string
	TTL            time.Duration
	MaxEntries     int
}

// ReportsConfig enables archiving rendered reports to S3 when Bucket is set.
type ReportsConfig struct {
	Bucket      string
	EndpointURL string
	Region      string
	AccessKey   string
	SecretKey   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "3000"),
			Env:      getEnv("ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_reviewer"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Analysis: AnalysisConfig{
			MaxAttempts:    getEnvAsInt("ANALYSIS_MAX_ATTEMPTS", 3),
			InitialBackoff: getEnvAsDuration("ANALYSIS_INITIAL_BACKOFF", "1s"),
			MaxBackoff:     getEnvAsDuration("ANALYSIS_MAX_BACKOFF", "8s"),
			CallTimeout:    getEnvAsDuration("ANALYSIS_CALL_TIMEOUT", "45s"),
			MaxPromptChars: getEnvAsInt("ANALYSIS_MAX_PROMPT_CHARS", 20000),
		},
		Extraction: ExtractionConfig{
			MaxFileSize:  getEnvAsInt64("MAX_FILE_SIZE", 8388608),
			PreviewChars: getEnvAsInt("PREVIEW_CHARS", 600),
		},
		Cache: CacheConfig{
			ValkeyAddr:     getEnv("VALKEY_ADDR", ""),
			ValkeyPassword: getEnv("VALKEY_PASSWORD", ""),
			TTL:            getEnvAsDuration("CACHE_TTL", "1h"),
			MaxEntries:     getEnvAsInt("CACHE_MAX_ENTRIES", 256),
		},
		Reports: ReportsConfig{
			Bucket:      getEnv("S3_BUCKET", ""),
			EndpointURL: getEnv("S3_ENDPOINT", ""),
			Region:      getEnv("S3_REGION", "us-east-1"),
			AccessKey:   getEnv("S3_ACCESS_KEY", ""),
			SecretKey:   getEnv("S3_SECRET_KEY", ""),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
