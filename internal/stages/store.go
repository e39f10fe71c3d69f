// Package stages owns the stage catalog: loading and seeding it from
// storage, filtering it by mode, and the admin edits that re-persist it.
package stages

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/internal/assets"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// Store loads and saves the catalog as a single JSON blob under
// types.KeyStages.
type Store struct {
	storage types.Storage
	assets  assets.Resolver
	logger  *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithAssets sets the resolver used for default stage images.
func WithAssets(r assets.Resolver) StoreOption {
	return func(s *Store) { s.assets = r }
}

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a Store over storage.
func NewStore(storage types.Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		assets:  assets.NewResolver(""),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the first-run catalog for this store's asset base.
func (s *Store) Defaults() types.Catalog {
	return DefaultCatalog(s.assets)
}

// Load returns the persisted catalog. When nothing has been persisted yet it
// seeds storage with the default catalog and returns that. A blob that does
// not decode into a valid catalog returns an error wrapping
// ErrCatalogCorrupt; it is never silently replaced.
func (s *Store) Load() (types.Catalog, error) {
	data, err := s.storage.Get(types.KeyStages)
	if errors.Is(err, types.ErrKeyNotFound) {
		return s.seed()
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var c types.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCatalogCorrupt, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: catalog is null", types.ErrCatalogCorrupt)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCatalogCorrupt, err)
	}

	s.logger.Debug("catalog loaded", zap.Int("stages", len(c)))
	return c, nil
}

// Save overwrites the persisted catalog with c in a single write.
func (s *Store) Save(c types.Catalog) error {
	if c == nil {
		c = types.Catalog{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.storage.Set(types.KeyStages, data); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	s.logger.Debug("catalog saved", zap.Int("stages", len(c)))
	return nil
}

// Reset overwrites the persisted catalog with the defaults and returns them.
func (s *Store) Reset() (types.Catalog, error) {
	return s.seed()
}

func (s *Store) seed() (types.Catalog, error) {
	c := s.Defaults()
	if err := s.Save(c); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	s.logger.Info("seeded default catalog", zap.Int("stages", len(c)))
	return c, nil
}
