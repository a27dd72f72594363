package cart

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/logger"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/metrics"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage"
)

// DefaultStorageKey is the base persistence key, one per session below it.
const DefaultStorageKey = "elex_cart"

// RegistryOptions configures the per-session store provider.
type RegistryOptions struct {
	KV         storage.KV
	StorageKey string
	Currency   string
	Locale     string
	Origin     func() string
	// IdleTTL evicts stores untouched for this long. Zero disables eviction.
	IdleTTL time.Duration
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
	Now     func() time.Time
}

type registryEntry struct {
	store    *Store
	lastUsed time.Time
}

// Registry owns one Store per shopper session. Evicted stores are reloaded from
// storage on next use; only the transient open flag is lost.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	opts    RegistryOptions
}

func NewRegistry(opts RegistryOptions) (*Registry, error) {
	if opts.KV == nil {
		return nil, errors.New("cart registry requires a storage backend")
	}
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		entries: make(map[string]*registryEntry),
		opts:    opts,
	}, nil
}

// StorageKey returns the persistence key for a session's cart.
func StorageKey(base, sessionID string) string {
	return base + ":" + sessionID
}

// Get returns the session's store, loading it from storage on first use.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Store, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errors.New("session id required")
	}

	if store := r.touch(sessionID); store != nil {
		return store, nil
	}

	store, err := NewStore(ctx, Options{
		Storage:  NewKVStorage(r.opts.KV, StorageKey(r.opts.StorageKey, sessionID)),
		Currency: r.opts.Currency,
		Locale:   r.opts.Locale,
		Origin:   r.opts.Origin,
		Logger:   r.opts.Logger,
		Metrics:  r.opts.Metrics,
	})
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request may have loaded the same session meanwhile.
	if entry, ok := r.entries[sessionID]; ok {
		entry.lastUsed = r.opts.Now()
		return entry.store, nil
	}
	r.entries[sessionID] = &registryEntry{store: store, lastUsed: r.opts.Now()}
	r.opts.Metrics.SetActiveStores(len(r.entries))
	return store, nil
}

func (r *Registry) touch(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[sessionID]
	if !ok {
		return nil
	}
	entry.lastUsed = r.opts.Now()
	return entry.store
}

// Sweep evicts stores idle since before now-IdleTTL. Stores with subscribers stay.
func (r *Registry) Sweep(now time.Time) int {
	if r.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-r.opts.IdleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, entry := range r.entries {
		if entry.lastUsed.After(cutoff) || entry.store.Listeners() > 0 {
			continue
		}
		delete(r.entries, id)
		evicted++
	}
	r.opts.Metrics.SetActiveStores(len(r.entries))
	return evicted
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || r.opts.IdleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(r.opts.Now()); n > 0 {
				r.opts.Logger.Debug(r.opts.Logger.WithField(ctx, "evicted", n), "cart.registry.sweep")
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
