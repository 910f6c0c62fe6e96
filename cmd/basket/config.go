// Config loading for the basket CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/basket/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyRedisAddr     = "redis_addr"
	cfgKeyRedisPrefix   = "redis_prefix"
	cfgKeySyncStrategy  = "sync_strategy"
	cfgKeyBatchSize     = "batch_size"
	cfgKeyBatchInterval = "batch_interval"
	cfgKeyLogLevel      = "log_level"
	cfgKeyLogFormat     = "log_format"

	envPrefix = "BASKET"
)

// envKeys are the config keys that may be overridden by BASKET_* variables.
// data_dir is resolved by the paths package with its own precedence.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyRedisAddr,
	cfgKeyRedisPrefix,
	cfgKeySyncStrategy,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Basket CLI configuration

# Backend selection: sqlite, file, redis, memory
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Redis backend address, URL or host:port
# redis_addr: localhost:6379
# redis_prefix: "basket:"

# When cart writes reach the backend: immediate, on_close, batch
sync_strategy: immediate
# batch_size: 10
# batch_interval: 5

log_level: warn
log_format: text
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySyncStrategy, types.SyncImmediate)
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyLogFormat, "text")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
