package config

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Units            string        `validate:"required"`
	SearchRadius     float64       `validate:"gt=0"`
	EligibleNodeType string        `validate:"required"`
	MatchWorkers     int           `validate:"min=1,max=1024"`
	DBPath           string        `validate:"required"`
	APIPort          int           `validate:"min=1,max=65535"`
	APITimeout       time.Duration `validate:"gt=0"`
}

func setDefaults() {
	viper.SetDefault("UNITS", "customary")
	viper.SetDefault("SEARCH_RADIUS", 10000.0)
	viper.SetDefault("ELIGIBLE_NODE_TYPE", "bus_service_node")
	viper.SetDefault("MATCH_WORKERS", 1)
	viper.SetDefault("DB_PATH", "access_links.db")
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")
}

// New reads config.yaml from the working directory if there is one; env variables override it.
func New() (*Config, error) {
	setDefaults()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var typeErr viper.ConfigFileNotFoundError
		if !errors.As(err, &typeErr) {
			return nil, err
		}
	}

	config := &Config{
		Units:            viper.GetString("UNITS"),
		SearchRadius:     viper.GetFloat64("SEARCH_RADIUS"),
		EligibleNodeType: viper.GetString("ELIGIBLE_NODE_TYPE"),
		MatchWorkers:     viper.GetInt("MATCH_WORKERS"),
		DBPath:           viper.GetString("DB_PATH"),
		APIPort:          viper.GetInt("API_PORT"),
		APITimeout:       viper.GetDuration("API_TIMEOUT"),
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, err
	}
	return config, nil
}
