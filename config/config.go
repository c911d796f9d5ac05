package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config returns the value of a required environment variable, loading
// .env first when one is present. A missing value is fatal.
func Config(envVar string) string {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "No .env file loaded: %v\n", err)
	}

	envVarValue := os.Getenv(envVar)
	if envVarValue == "" {
		fmt.Fprintf(os.Stderr, "%s not set\n", envVar)
		os.Exit(1)
	}

	return envVarValue
}

// ConfigOr is like Config but falls back to a default instead of exiting.
func ConfigOr(envVar, fallback string) string {
	_ = godotenv.Load()

	if envVarValue := os.Getenv(envVar); envVarValue != "" {
		return envVarValue
	}

	return fallback
}
