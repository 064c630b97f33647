package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		// MigrationsDir is the path to the migration files, relative to
		// the working directory.
		MigrationsDir string `mapstructure:"migrations_dir"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port      string `mapstructure:"port"`
		StaticDir string `mapstructure:"static_dir"`
	} `mapstructure:"server"`
	JWT struct {
		// SecretKey signs access tokens. The value in config.yml is a
		// development fallback; production must override it via the
		// SECRET_KEY environment variable.
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"jwt"`
	Weather struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"weather"`
	// CreateDemoUser seeds user@example.com / password123 at startup.
	CreateDemoUser bool `mapstructure:"create_demo_user"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()
	// Environment overrides for the two secrets the core consumes.
	viper.BindEnv("jwt.secret_key", "SECRET_KEY")
	viper.BindEnv("weather.api_key", "OPENWEATHER_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
