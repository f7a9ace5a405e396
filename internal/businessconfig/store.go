package businessconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/logger"
)

// Listener is notified after every configuration mutation. Listeners
// run synchronously in registration order while the store lock is held,
// so they must not call back into the store.
type Listener func(Configuration)

// Store is the single source of truth for the active configuration.
// Reads and writes go through it; the snapshotter only bridges restarts.
type Store struct {
	mu        sync.RWMutex
	current   Configuration
	snaps     Snapshotter
	logg      *logger.Logger
	listeners []Listener
}

// NewStore loads the persisted configuration, falling back to the
// default one when the snapshot is absent or unreadable. A corrupt
// snapshot is logged and discarded, never fatal.
func NewStore(ctx context.Context, snaps Snapshotter, logg *logger.Logger) (*Store, error) {
	if snaps == nil {
		return nil, fmt.Errorf("businessconfig: snapshotter is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("businessconfig: logger is required")
	}

	s := &Store{snaps: snaps, logg: logg}
	s.current = s.restore(ctx)
	return s, nil
}

func (s *Store) restore(ctx context.Context) Configuration {
	data, err := s.snaps.Load(ctx)
	if err != nil {
		s.logg.Error(ctx, "loading configuration snapshot", err)
		return DefaultConfiguration()
	}
	if data == nil {
		return DefaultConfiguration()
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.logg.Error(ctx, "discarding corrupt configuration snapshot", err)
		return DefaultConfiguration()
	}
	if cfg.BusinessType.ID == "" {
		s.logg.Warn(ctx, "configuration snapshot has no business type, using default")
		return DefaultConfiguration()
	}
	return cfg
}

// Subscribe registers a listener for configuration changes.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Get returns a deep copy of the active configuration.
func (s *Store) Get() Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Update applies a partial update. The new configuration always takes
// effect in memory; a snapshot failure comes back as a warning the
// caller can surface without rolling anything back.
func (s *Store) Update(ctx context.Context, patch Patch) (Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.apply(patch)
	return s.commit(ctx, next)
}

// ChangeBusinessType switches verticals. Branding colors, enabled
// features and currency follow the new type; business info and the
// rest of the tenant customizations are preserved.
func (s *Store) ChangeBusinessType(ctx context.Context, typeID string) (Configuration, error) {
	bt, err := LookupBusinessType(typeID)
	if err != nil {
		return Configuration{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.clone()
	next.BusinessType = bt
	next.Branding.PrimaryColor = bt.Color.Primary
	next.Branding.SecondaryColor = bt.Color.Secondary
	next.Branding.AccentColor = bt.Color.Accent
	next.EnabledFeatures = DefaultEnabledFeatures(bt)
	next.Locale.Currency = bt.Currency.Code
	return s.commit(ctx, next)
}

// Reset drops every customization and returns to the default
// configuration, clearing the snapshot as well.
func (s *Store) Reset(ctx context.Context) (Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.snaps.Clear(ctx); err != nil {
		s.logg.Error(ctx, "clearing configuration snapshot", err)
	}
	return s.commit(ctx, DefaultConfiguration())
}

// Export serializes the active configuration for backup or transfer.
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(s.current, "", "  ")
}

// Import replaces the active configuration wholesale. The payload must
// parse and carry a known business type.
func (s *Store) Import(ctx context.Context, data []byte) (Configuration, error) {
	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid configuration format")
	}
	if _, err := LookupBusinessType(cfg.BusinessType.ID); err != nil {
		return Configuration{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, cfg)
}

// Terminology returns the merged vocabulary for the active type.
func (s *Store) Terminology() Terminology {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Terminology()
}

// Categories returns the active category list.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Categories()
}

// IsFeatureEnabled reports whether the feature is on right now.
func (s *Store) IsFeatureEnabled(featureID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsFeatureEnabled(featureID)
}

// commit installs the new configuration, persists it best-effort and
// fans out to listeners. Callers must hold the write lock.
func (s *Store) commit(ctx context.Context, next Configuration) (Configuration, error) {
	s.current = next

	var warn error
	data, err := json.Marshal(next)
	if err == nil {
		err = s.snaps.Save(ctx, data)
	}
	if err != nil {
		s.logg.Error(ctx, "persisting configuration snapshot", err)
		warn = pkgerrors.Wrap(pkgerrors.CodePersistenceWarning, err, "configuration saved in memory only")
	}

	for _, fn := range s.listeners {
		fn(next.clone())
	}
	return next.clone(), warn
}
