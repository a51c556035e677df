package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for ops-triage.
type Config struct {
	Logger   LoggerConfig   `yaml:"logger"`
	API      APIConfig      `yaml:"api"`
	Examples ExamplesConfig `yaml:"examples"`
	Rules    RulesConfig    `yaml:"rules"`
	History  HistoryConfig  `yaml:"history"`
}

type LoggerConfig struct {
	Level   string        `yaml:"level"`
	Console ConsoleLogCfg `yaml:"console"`
	NDJSON  NDJSONLogCfg  `yaml:"ndjson"`
}

type ConsoleLogCfg struct {
	Color bool `yaml:"color"`
}

type NDJSONLogCfg struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type APIConfig struct {
	Listen       string `yaml:"listen"`
	AuthToken    string `yaml:"auth_token"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

type ExamplesConfig struct {
	Dir string `yaml:"dir"`
}

type RulesConfig struct {
	Path string `yaml:"path"`
}

type HistoryConfig struct {
	Size int `yaml:"size"`
}

// LoadConfig reads and parses the config file, expanding ${ENV_VAR}
// references before unmarshalling.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.NDJSON.Enabled && c.Logger.NDJSON.Path == "" {
		c.Logger.NDJSON.Path = "./logs/triage.ndjson"
	}
	if c.API.Listen == "" {
		c.API.Listen = ":8080"
	}
	if c.API.MaxBodyBytes == 0 {
		c.API.MaxBodyBytes = 64 * 1024
	}
	if c.Examples.Dir == "" {
		c.Examples.Dir = "./examples/incidents"
	}
	if c.History.Size == 0 {
		c.History.Size = 200
	}
}
