package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Server Configuration
	ServerPort string

	// Database Configuration
	DatabasePath string
	SeedFile     string

	// Search Configuration
	SearchPageSize int
	SearchCacheTTL time.Duration

	// Bucket Configuration
	WeekWindowDays int
	WeekendDayCap  int
	WeekdayDayCap  int

	// Submission Configuration
	MaxDatesExternal int
	MaxDatesInternal int

	// Popularity Configuration
	ImagePopularityBonus    int
	FeaturedPopularityBonus int
	MaxExternalScore        int

	// Duplicate Detection Configuration
	SimilarityThreshold float64

	// Logging
	LogLevel string
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env values feed the same os.Getenv lookups; the file is optional.
	_ = godotenv.Load()

	AppConfig = &Config{
		ServerPort:              getEnv("PORT", "8080"),
		DatabasePath:            getEnv("DB_PATH", "events.db"),
		SeedFile:                getEnv("SEED_FILE", ""),
		SearchPageSize:          getEnvInt("SEARCH_PAGE_SIZE", 32),
		SearchCacheTTL:          time.Duration(getEnvInt("SEARCH_CACHE_TTL", 300)) * time.Second,
		WeekWindowDays:          getEnvInt("WEEK_WINDOW_DAYS", 7),
		WeekendDayCap:           getEnvInt("WEEKEND_DAY_CAP", 3),
		WeekdayDayCap:           getEnvInt("WEEKDAY_DAY_CAP", 1),
		MaxDatesExternal:        getEnvInt("MAX_DATES_EXTERNAL", 30),
		MaxDatesInternal:        getEnvInt("MAX_DATES_INTERNAL", 50),
		ImagePopularityBonus:    getEnvInt("IMAGE_POPULARITY_BONUS", 20),
		FeaturedPopularityBonus: getEnvInt("FEATURED_POPULARITY_BONUS", 5),
		MaxExternalScore:        getEnvInt("MAX_EXTERNAL_SCORE", 30),
		SimilarityThreshold:     getEnvFloat("SIMILARITY_THRESHOLD", 0.35),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
	}

	if level, err := logrus.ParseLevel(AppConfig.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.WithField("level", AppConfig.LogLevel).Warn("unknown LOG_LEVEL, staying on info")
	}

	return AppConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
