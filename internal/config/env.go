package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/ecovate/internal/flagx"
)

const envPrefix = "ECOVATE_"

// loadEnvFile loads the dotenv file named by -env, or ./.env when it exists.
// A missing default file is not an error; a missing explicit file panics.
func loadEnvFile() {
	path := flagx.EnvFileFlags()
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

// parseEnv overlays Config with ECOVATE_* environment variables.
func parseEnv(cfg *Config) {
	loadEnvFile()

	cfg.StoreDriver = getEnvString("STORE_DRIVER", cfg.StoreDriver)
	cfg.StoreDSN = getEnvString("STORE_DSN", cfg.StoreDSN)
	cfg.LogBackend = getEnvString("LOG_BACKEND", cfg.LogBackend)
	cfg.LogLevel = getEnvString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvString("LOG_FORMAT", cfg.LogFormat)
	cfg.SessionSecret = getEnvString("SESSION_SECRET", cfg.SessionSecret)
	cfg.SessionTTL = mustEnvDuration("SESSION_TTL", cfg.SessionTTL)
	cfg.LoginAttemptsPerMinute = getEnvInt("LOGIN_ATTEMPTS_PER_MINUTE", cfg.LoginAttemptsPerMinute)
	cfg.FactorsFile = getEnvString("FACTORS_FILE", cfg.FactorsFile)
	cfg.AssistantDelay = mustEnvDuration("ASSISTANT_DELAY", cfg.AssistantDelay)
	cfg.InvestDelay = mustEnvDuration("INVEST_DELAY", cfg.InvestDelay)
	cfg.S3Bucket = getEnvString("S3_BUCKET", cfg.S3Bucket)
	cfg.S3Region = getEnvString("S3_REGION", cfg.S3Region)
	cfg.S3BaseEndpoint = getEnvString("S3_BASE_ENDPOINT", cfg.S3BaseEndpoint)
	cfg.S3AccessKey = getEnvString("S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = getEnvString("S3_SECRET_KEY", cfg.S3SecretKey)
	cfg.BackupPrefix = getEnvString("BACKUP_PREFIX", cfg.BackupPrefix)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(envPrefix + key); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s%s: %q (%w)", envPrefix, key, value, err)
		}
		return d, nil
	}
	return defaultValue, nil
}

func mustEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := getEnvDuration(key, defaultValue)
	if err != nil {
		panic(err)
	}
	return d
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(envPrefix + key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
