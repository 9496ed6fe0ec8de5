package env

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppEnv string

const (
	EnvDevelopment AppEnv = "development"
	EnvProduction  AppEnv = "production"
)

// Init loads a .env file from the working directory when one exists.
// Variables already set in the process environment win.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
		return
	}
	log.Println("Environment variables loaded")
}

func GetString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			log.Printf("warning: env %s must be integer but got '%s', using fallback %d", key, val, fallback)
			return fallback
		}
		return i
	}
	return fallback
}

// GetDuration reads values like "90s" or "1m".
func GetDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("warning: env %s must be a duration but got '%s', using fallback %s", key, val, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func IsProduction() bool {
	return GetString("APP_ENV", string(EnvDevelopment)) == string(EnvProduction)
}
