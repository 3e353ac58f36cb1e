package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// History drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	History struct {
		Driver string `yaml:"driver"`
		Limit  int    `yaml:"limit"`
	} `yaml:"history"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Survey struct {
		Catalog string `yaml:"catalog"`
		InfoURL string `yaml:"info_url"`
	} `yaml:"survey"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads YAML config from path. An empty path yields Default().
func Load(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.History.Driver == "" {
		c.History.Driver = DriverSQLite
	}
	if c.History.Limit <= 0 {
		c.History.Limit = 5
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "scores.db"
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "osdi:history"
	}
}
