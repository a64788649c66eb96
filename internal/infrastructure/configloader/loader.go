package configloader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"portfolio_tracker/internal/domain/entity"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ChainConfig describes one supported chain: its CAIP-2 identifier, the
// node or indexer endpoint, and the public keys tracked on it.
type ChainConfig struct {
	ChainID         string   `yaml:"chainId"` // e.g. "eip155:1"
	Name            string   `yaml:"name"`
	RPCURL          string   `yaml:"rpcUrl"`          // EVM JSON-RPC endpoint
	IndexerURL      string   `yaml:"indexerUrl"`      // UTXO indexer (Blockbook-style) endpoint
	FallbackRPCURLs []string `yaml:"fallbackRpcUrls"` // tried in order when the primary fails
	PubKeys         []string `yaml:"pubKeys"`
}

// MarketDataConfig holds market-data API configuration.
type MarketDataConfig struct {
	BaseURL              string  `yaml:"baseUrl"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	CacheTTLMinutes      int     `yaml:"cacheTtlMinutes"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
	MaxAssetsPerRequest  int     `yaml:"maxAssetsPerRequest"`
}

// RegistryConfig holds asset registry configuration.
type RegistryConfig struct {
	Dir string `yaml:"dir"` // directory of per-chain asset YAML files
}

// ConnectivityConfig holds connectivity watcher configuration.
type ConnectivityConfig struct {
	ProbeURL        string `yaml:"probeUrl"`
	IntervalSeconds int    `yaml:"intervalSeconds"`
}

// PerformanceConfig holds concurrency and timeout configuration.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"max_concurrent_routines"`
	RPCCallTimeoutSeconds int `yaml:"rpc_call_timeout_seconds"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Logging      LoggingConfig      `yaml:"logging"`
	Chains       []ChainConfig      `yaml:"chains"`
	MarketData   MarketDataConfig   `yaml:"marketData"`
	Registry     RegistryConfig     `yaml:"registry"`
	Connectivity ConnectivityConfig `yaml:"connectivity"`
	Performance  PerformanceConfig  `yaml:"performance"`
}

// Load reads the YAML configuration file from the given path, unmarshals it
// and fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}
	if cfg.MarketData.RequestTimeoutMillis <= 0 {
		cfg.MarketData.RequestTimeoutMillis = 10000
	}
	if cfg.MarketData.CacheTTLMinutes <= 0 {
		cfg.MarketData.CacheTTLMinutes = 5
	}
	if cfg.MarketData.RequestsPerSecond <= 0 {
		cfg.MarketData.RequestsPerSecond = 5
	}
	if cfg.MarketData.MaxAssetsPerRequest <= 0 {
		cfg.MarketData.MaxAssetsPerRequest = 30
	}
	if cfg.Registry.Dir == "" {
		cfg.Registry.Dir = "config/assets"
	}
	if cfg.Connectivity.IntervalSeconds <= 0 {
		cfg.Connectivity.IntervalSeconds = 15
	}

	for i, chain := range cfg.Chains {
		if chain.ChainID == "" {
			return nil, fmt.Errorf("chains[%d]: chainId is required", i)
		}
		if _, err := entity.DecodeChainKind(entity.ChainID(chain.ChainID)); err != nil {
			return nil, fmt.Errorf("chains[%d] (%s): %w", i, chain.ChainID, err)
		}
	}

	return &cfg, nil
}

// TrackedKeys returns the configured (chain -> public keys) map consumed by
// the fetch orchestrator. Chains without keys are omitted.
func (c *Config) TrackedKeys() map[entity.ChainID][]string {
	keys := make(map[entity.ChainID][]string)
	for _, chain := range c.Chains {
		if len(chain.PubKeys) > 0 {
			keys[entity.ChainID(chain.ChainID)] = chain.PubKeys
		}
	}
	return keys
}

// ChainByID returns the configuration of one chain.
func (c *Config) ChainByID(chainID entity.ChainID) (ChainConfig, bool) {
	for _, chain := range c.Chains {
		if chain.ChainID == string(chainID) {
			return chain, true
		}
	}
	return ChainConfig{}, false
}
