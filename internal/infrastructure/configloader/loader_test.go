package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"portfolio_tracker/internal/domain/entity"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
logging:
  level: debug
chains:
  - chainId: "eip155:1"
    name: Ethereum
    rpcUrl: https://rpc.example.com
    fallbackRpcUrls:
      - https://rpc2.example.com
    pubKeys:
      - "0xabc"
  - chainId: "bip122:000000000019d6689c085ae165831e93"
    name: Bitcoin
    indexerUrl: https://blockbook.example.com
    pubKeys:
      - xpub1
marketData:
  baseUrl: https://prices.example.com
  requestsPerSecond: 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	if len(cfg.Chains) != 2 {
		t.Fatalf("chains = %d, want 2", len(cfg.Chains))
	}
	if cfg.Chains[0].FallbackRPCURLs[0] != "https://rpc2.example.com" {
		t.Errorf("fallback rpc = %q", cfg.Chains[0].FallbackRPCURLs[0])
	}
	if cfg.MarketData.RequestsPerSecond != 2 {
		t.Errorf("rps = %v", cfg.MarketData.RequestsPerSecond)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "chains: []\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Performance.MaxConcurrentRoutines != 10 {
		t.Errorf("default max routines = %d, want 10", cfg.Performance.MaxConcurrentRoutines)
	}
	if cfg.Performance.RPCCallTimeoutSeconds != 10 {
		t.Errorf("default rpc timeout = %d, want 10", cfg.Performance.RPCCallTimeoutSeconds)
	}
	if cfg.MarketData.CacheTTLMinutes != 5 {
		t.Errorf("default cache ttl = %d, want 5", cfg.MarketData.CacheTTLMinutes)
	}
	if cfg.MarketData.MaxAssetsPerRequest != 30 {
		t.Errorf("default batch size = %d, want 30", cfg.MarketData.MaxAssetsPerRequest)
	}
	if cfg.Registry.Dir != "config/assets" {
		t.Errorf("default registry dir = %q", cfg.Registry.Dir)
	}
	if cfg.Connectivity.IntervalSeconds != 15 {
		t.Errorf("default connectivity interval = %d, want 15", cfg.Connectivity.IntervalSeconds)
	}
}

func TestLoad_UnknownChainNamespaceRejected(t *testing.T) {
	_, err := Load(writeConfig(t, `
chains:
  - chainId: "cosmos:cosmoshub-4"
`))
	if !errors.Is(err, entity.ErrUnknownChainKind) {
		t.Errorf("err = %v, want ErrUnknownChainKind", err)
	}
}

func TestLoad_MissingChainIDRejected(t *testing.T) {
	_, err := Load(writeConfig(t, `
chains:
  - name: Nameless
`))
	if err == nil {
		t.Error("config with missing chainId accepted")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestTrackedKeys(t *testing.T) {
	cfg := &Config{Chains: []ChainConfig{
		{ChainID: "eip155:1", PubKeys: []string{"0xabc", "0xdef"}},
		{ChainID: "bip122:000000000019d6689c085ae165831e93"},
	}}

	keys := cfg.TrackedKeys()
	if len(keys) != 1 {
		t.Fatalf("tracked chains = %d, want 1 (keyless chains omitted)", len(keys))
	}
	if got := keys[entity.ChainID("eip155:1")]; len(got) != 2 {
		t.Errorf("tracked keys = %v", got)
	}
}

func TestChainByID(t *testing.T) {
	cfg := &Config{Chains: []ChainConfig{{ChainID: "eip155:1", Name: "Ethereum"}}}

	chain, ok := cfg.ChainByID("eip155:1")
	if !ok || chain.Name != "Ethereum" {
		t.Errorf("ChainByID = %+v, %v", chain, ok)
	}
	if _, ok := cfg.ChainByID("eip155:137"); ok {
		t.Error("unknown chain id found")
	}
}
