package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"warn"`
	Seed       int64  `yaml:"seed" env:"TICTACTOE_SEED" env-default:"0"`
	HumanFirst bool   `yaml:"human-first" env:"TICTACTOE_HUMAN_FIRST"`
}

// defaultConfig holds defaults that env-default cannot express: cleanenv fills zero-valued
// fields from env-default after decoding the file, which would turn an explicit false into true.
func defaultConfig() *Config {
	return &Config{
		HumanFirst: true,
	}
}

// MustLoad - load configuration from the config.yml file, or from the environment alone when
// the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := defaultConfig()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}

		return config, nil
	}

	if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}
