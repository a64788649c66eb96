package assetregistry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"portfolio_tracker/internal/domain/entity"
)

// Registry implements port.AssetRegistry. Metadata is loaded from a
// directory of per-chain YAML files; Ready is closed once every file has
// been processed, gating valuation on complete precision data.
type Registry struct {
	mu      sync.RWMutex
	byID    map[entity.AssetID]entity.AssetInfo
	byChain map[entity.ChainID][]entity.AssetInfo
	ready   chan struct{}
	log     *logrus.Logger
}

// assetFile is the on-disk shape of one chain's asset list.
type assetFile struct {
	ChainID string             `yaml:"chainId"`
	Assets  []entity.AssetInfo `yaml:"assets"`
}

// New creates an empty, not yet loaded registry.
func New(log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		byID:    make(map[entity.AssetID]entity.AssetInfo),
		byChain: make(map[entity.ChainID][]entity.AssetInfo),
		ready:   make(chan struct{}),
		log:     log,
	}
}

// LoadDir reads every .yaml/.yml file in dir and registers its assets,
// then closes the Ready channel. Files that fail to parse are logged and
// skipped; the registry still becomes ready with what it has.
func (r *Registry) LoadDir(dir string) error {
	defer close(r.ready)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read asset directory %s: %w", dir, err)
	}

	var loaded int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		n, err := r.loadFile(path)
		if err != nil {
			r.log.WithError(err).WithField("file", path).Warn("Skipping unparsable asset file")
			continue
		}
		loaded += n
	}

	r.log.WithFields(logrus.Fields{"dir": dir, "assets": loaded}).Info("Asset registry loaded")
	return nil
}

func (r *Registry) loadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	var file assetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("unmarshal %s: %w", path, err)
	}

	chainID := entity.ChainID(file.ChainID)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, asset := range file.Assets {
		if asset.ID == "" {
			r.log.WithField("file", path).Warn("Asset entry without assetId, skipping")
			continue
		}
		r.byID[asset.ID] = asset
		r.byChain[chainID] = append(r.byChain[chainID], asset)
	}
	return len(file.Assets), nil
}

// Get implements port.AssetRegistry.
func (r *Registry) Get(assetID entity.AssetID) (entity.AssetInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byID[assetID]
	return info, ok
}

// AssetsForChain implements port.AssetRegistry.
func (r *Registry) AssetsForChain(chainID entity.ChainID) []entity.AssetInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	assets := make([]entity.AssetInfo, len(r.byChain[chainID]))
	copy(assets, r.byChain[chainID])
	return assets
}

// Ready implements port.AssetRegistry.
func (r *Registry) Ready() <-chan struct{} {
	return r.ready
}
