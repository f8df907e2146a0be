package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Contract  ContractConfig  `yaml:"contract"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "http" or "stdio"
}

type AuthConfig struct {
	Enabled       bool   `yaml:"enabled"`
	DefaultCaller string `yaml:"default_caller"`
}

// ContractConfig holds instantiate-time settings.
type ContractConfig struct {
	// Admin overrides the instantiating caller as admin.
	Admin string `yaml:"admin"`
	// AddressPrefix enables bech32 validation of addresses with this prefix.
	AddressPrefix string `yaml:"address_prefix"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "peerconnect.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Auth: AuthConfig{
			Enabled:       true,
			DefaultCaller: "local",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PEERCONNECT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("PEERCONNECT_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PEERCONNECT_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PEERCONNECT_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("PEERCONNECT_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("PEERCONNECT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("PEERCONNECT_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := os.Getenv("PEERCONNECT_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if enabled := os.Getenv("PEERCONNECT_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PEERCONNECT_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if caller := os.Getenv("PEERCONNECT_DEFAULT_CALLER"); caller != "" {
		cfg.Auth.DefaultCaller = caller
	}
	if admin := os.Getenv("PEERCONNECT_ADMIN"); admin != "" {
		cfg.Contract.Admin = admin
	}
	if prefix := os.Getenv("PEERCONNECT_ADDRESS_PREFIX"); prefix != "" {
		cfg.Contract.AddressPrefix = prefix
	}
	if enabled := os.Getenv("PEERCONNECT_METRICS_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PEERCONNECT_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at startup.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "http", "stdio":
	default:
		return fmt.Errorf("invalid transport mode %q (want http or stdio)", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.DefaultCallerRequired() && c.Auth.DefaultCaller == "" {
		return fmt.Errorf("auth.default_caller is required when auth is disabled or transport is stdio")
	}
	return nil
}

// DefaultCallerRequired reports whether requests run as the default caller.
func (c Config) DefaultCallerRequired() bool {
	return !c.Auth.Enabled || c.Transport.Mode == "stdio"
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
