package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// SetupEnv loads environment variables from the .env file when one exists.
func SetupEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

// Config returns the environment variable or defaults to empty string
func Config(key string) string {
	return os.Getenv(key)
}
