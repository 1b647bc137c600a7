package config

import (
	"github.com/spf13/viper"
)

// Config holds all process-level settings. Values come from environment
// variables, with sane defaults for local development.
type Config struct {
	AppPort     string
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	RabbitMQURL string // empty disables event publishing
}

// Load reads configuration from the environment via Viper.
func Load() Config {
	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "fakestore")
	viper.SetDefault("JWT_SECRET", "your_secret_key")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return Config{
		AppPort:     viper.GetString("APP_PORT"),
		MongoURI:    viper.GetString("MONGO_URI"),
		MongoDB:     viper.GetString("MONGO_DB"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}
}
