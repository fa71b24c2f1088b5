package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backend selection for server mode.
const (
	StoreDynamo = "dynamo"
	StoreMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	Environment string
	Port        string

	// Offline selects the local DynamoDB endpoint instead of AWS.
	Offline        bool
	Region         string
	TableName      string
	DynamoEndpoint string

	// StoreBackend picks the product store implementation in server
	// mode: "dynamo" or "memory".
	StoreBackend string
}

// Load loads configuration from environment variables and an optional
// .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("IS_OFFLINE", false)
	viper.SetDefault("REGION", "us-east-1")
	viper.SetDefault("TABLE_NAME", "products")
	viper.SetDefault("DYNAMO_ENDPOINT", "http://localhost:8000")
	viper.SetDefault("STORE", StoreDynamo)

	config := &Config{
		Environment:    viper.GetString("ENVIRONMENT"),
		Port:           viper.GetString("PORT"),
		Offline:        viper.GetBool("IS_OFFLINE"),
		Region:         viper.GetString("REGION"),
		TableName:      viper.GetString("TABLE_NAME"),
		DynamoEndpoint: viper.GetString("DYNAMO_ENDPOINT"),
		StoreBackend:   viper.GetString("STORE"),
	}

	// Inside Lambda the runtime's own region wins unless REGION was set
	// explicitly.
	if rt := Runtime(); rt.Lambda && rt.Region != "" && os.Getenv("REGION") == "" {
		config.Region = rt.Region
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
