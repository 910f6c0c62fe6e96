package types

import "errors"

// Config holds backend selection and parameters for opening a KVStore and
// building a cart store on top of it.
type Config struct {
	Backend     string     `json:"backend" yaml:"backend"`
	DataDir     string     `json:"data_dir" yaml:"data_dir"`
	RedisAddr   string     `json:"redis_addr" yaml:"redis_addr"`
	RedisPrefix string     `json:"redis_prefix" yaml:"redis_prefix"`
	Sync        SyncConfig `json:"sync" yaml:"sync"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Sync strategies control when cart snapshots reach the backend.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
	SyncBatch     = "batch"
)

// Defaults applied by the SyncConfig getters.
const (
	DefaultBatchSize     = 10
	DefaultBatchInterval = 5
)

// SyncConfig selects the persistence strategy. Zero values mean defaults.
type SyncConfig struct {
	Strategy      string `json:"sync_strategy" yaml:"sync_strategy"`
	BatchSize     int    `json:"batch_size" yaml:"batch_size"`
	BatchInterval int    `json:"batch_interval" yaml:"batch_interval"` // seconds
}

// Config validation errors.
var (
	ErrBackendEmpty         = errors.New("backend must not be empty")
	ErrBackendUnknown       = errors.New("unknown backend")
	ErrRedisAddrEmpty       = errors.New("redis backend requires redis_addr")
	ErrSyncStrategyUnknown  = errors.New("unknown sync strategy")
	ErrBatchSizeInvalid     = errors.New("batch size must be positive")
	ErrBatchIntervalInvalid = errors.New("batch interval must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendFile:   true,
	BackendRedis:  true,
	BackendMemory: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend == BackendRedis && c.RedisAddr == "" {
		return ErrRedisAddrEmpty
	}
	return c.Sync.Validate()
}

// Validate checks the sync strategy and batch parameters.
func (s SyncConfig) Validate() error {
	switch s.Strategy {
	case "", SyncImmediate, SyncOnClose:
		return nil
	case SyncBatch:
	default:
		return ErrSyncStrategyUnknown
	}
	if s.BatchSize < 0 {
		return ErrBatchSizeInvalid
	}
	if s.BatchInterval < 0 {
		return ErrBatchIntervalInvalid
	}
	return nil
}

// GetSyncStrategy returns the configured strategy, defaulting to immediate.
func (s SyncConfig) GetSyncStrategy() string {
	if s.Strategy == "" {
		return SyncImmediate
	}
	return s.Strategy
}

// GetBatchSize returns the batch size, defaulting to DefaultBatchSize.
func (s SyncConfig) GetBatchSize() int {
	if s.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return s.BatchSize
}

// GetBatchInterval returns the batch interval in seconds, defaulting to
// DefaultBatchInterval.
func (s SyncConfig) GetBatchInterval() int {
	if s.BatchInterval <= 0 {
		return DefaultBatchInterval
	}
	return s.BatchInterval
}
