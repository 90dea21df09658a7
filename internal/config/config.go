package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	envconfig "github.com/wekeepgrowing/semo-payment-gateway/pkg/config"
	"github.com/wekeepgrowing/semo-payment-gateway/pkg/logger"
)

const (
	defaultConfigPath = "./configs/payment.yaml"
	envPrefix         = "PAYMENT"
)

type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
	Redis      RedisConfig      `yaml:"redis"`
	Log        logger.Config    `yaml:"log"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// envAliases are unprefixed variable names accepted next to PAYMENT_<KEY>
var envAliases = map[string][]string{
	"server.http.port":               {"PORT"},
	"database.url":                   {"DATABASE_URL"},
	"redis.addr":                     {"REDIS_ADDR"},
	"simulation.test_mode":           {"TEST_MODE"},
	"simulation.processing_delay_ms": {"TEST_PROCESSING_DELAY"},
	"simulation.payment_success":     {"TEST_PAYMENT_SUCCESS"},
}

// LoadConfig reads the YAML file at CONFIG_PATH (default ./configs/payment.yaml), fills
// defaults and applies environment overrides. A missing default file is not an error.
func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigPath
	}

	cfg := Default()

	// Ensure absolute path
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	env, err := envconfig.NewEnv(envPrefix, envAliases)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        "payment-gateway",
			Environment: "development",
			Version:     "dev",
		},
		Server: ServerConfig{
			HTTP: HTTPConfig{Host: "0.0.0.0", Port: 8000},
			GRPC: GRPCConfig{Host: "0.0.0.0", Port: 9000},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Name:            "payment_gateway",
			User:            "gateway_user",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
			LogLevel:        "warn",
			SlowThreshold:   200 * time.Millisecond,
		},
		Redis: RedisConfig{
			Addr:          "localhost:6379",
			OrderCacheTTL: 10 * time.Minute,
		},
		Log: logger.Config{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Simulation: SimulationConfig{
			ProcessingDelayMs: 1000,
		},
	}
}

func (c *Config) applyEnv(env envconfig.Config) error {
	setString := func(key string, dst *string) {
		if env.IsSet(key) {
			*dst = env.GetString(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if env.IsSet(key) {
			*dst = env.GetBool(key)
		}
	}
	setInt := func(key string, dst *int) error {
		if !env.IsSet(key) {
			return nil
		}
		v, err := strconv.Atoi(env.GetString(key))
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		*dst = v
		return nil
	}

	setString("service.environment", &c.Service.Environment)
	setBool("service.enable_test_endpoints", &c.Service.EnableTestEndpoints)

	setString("server.http.host", &c.Server.HTTP.Host)
	if err := setInt("server.http.port", &c.Server.HTTP.Port); err != nil {
		return err
	}
	if err := setInt("server.grpc.port", &c.Server.GRPC.Port); err != nil {
		return err
	}

	setString("database.url", &c.Database.URL)
	setString("database.host", &c.Database.Host)
	if err := setInt("database.port", &c.Database.Port); err != nil {
		return err
	}
	setString("database.name", &c.Database.Name)
	setString("database.user", &c.Database.User)
	setString("database.password", &c.Database.Password)
	setBool("database.seed_test_merchant", &c.Database.SeedTestMerchant)

	setBool("redis.enabled", &c.Redis.Enabled)
	setString("redis.addr", &c.Redis.Addr)
	setString("redis.password", &c.Redis.Password)

	setString("log.level", &c.Log.Level)
	setString("log.format", &c.Log.Format)

	// Simulation flags keep their historical parsing: test mode only for the exact
	// string "true", success unless the exact string "false", unparsable delay falls
	// back to the simulator default.
	if env.IsSet("simulation.test_mode") {
		c.Simulation.TestMode = env.GetString("simulation.test_mode") == "true"
	}
	if env.IsSet("simulation.processing_delay_ms") {
		delay, err := strconv.Atoi(env.GetString("simulation.processing_delay_ms"))
		if err != nil {
			delay = 0
		}
		c.Simulation.ProcessingDelayMs = delay
	}
	if env.IsSet("simulation.payment_success") {
		success := env.GetString("simulation.payment_success") != "false"
		c.Simulation.PaymentSuccess = &success
	}

	return nil
}
