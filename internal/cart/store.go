package cart

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/logger"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/metrics"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage"
)

const (
	DefaultCurrency = "SAR"
	DefaultLocale   = LocaleArabic
)

const (
	opAddItem      = "add_item"
	opDecreaseItem = "decrease_item"
	opSetQuantity  = "set_quantity"
	opRemoveItem   = "remove_item"
	opClearCart    = "clear_cart"
	opOpenCart     = "open_cart"
	opCloseCart    = "close_cart"
)

// Options configures a Store. Storage is required; everything else has a default.
type Options struct {
	Storage  Storage
	Currency string
	Locale   string
	// Origin supplies the site origin quoted in order messages.
	Origin  func() string
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
}

// Store is the single source of truth for one shopper's cart. Every mutation is saved
// to Storage before the lock is released, then listeners are notified in order.
type Store struct {
	mu     sync.Mutex
	items  []LineItem
	isOpen bool
	// seq numbers changes under mu; deliveries run strictly in seq order.
	seq uint64

	listenersMu  sync.Mutex
	listeners    map[int]func(Snapshot)
	nextListener int

	turnMu    sync.Mutex
	turn      *sync.Cond
	delivered uint64

	storage  Storage
	currency string
	locale   string
	origin   func() string
	logg     *logger.Logger
	metrics  *metrics.CartMetrics
}

// NewStore loads the persisted cart. Missing or unreadable data yields an empty cart.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if opts.Storage == nil {
		return nil, errors.New("cart storage required")
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	s := &Store{
		listeners: make(map[int]func(Snapshot)),
		storage:   opts.Storage,
		currency:  opts.Currency,
		locale:    NormalizeLocale(opts.Locale),
		origin:    opts.Origin,
		logg:      opts.Logger,
		metrics:   opts.Metrics,
	}
	s.turn = sync.NewCond(&s.turnMu)

	items, err := opts.Storage.Load(ctx)
	switch {
	case err == nil:
		s.items = items
	case errors.Is(err, storage.ErrNotFound):
	default:
		s.logg.WarnErr(ctx, "cart.load_failed", err)
		s.metrics.IncPersistenceFailure(metrics.KindLoad)
	}
	if s.items == nil {
		s.items = []LineItem{}
	}
	return s, nil
}

// AddItem increments an existing line or appends a new one with quantity 1. The name,
// price and image of an existing line are kept.
func (s *Store) AddItem(ctx context.Context, product ProductStub) {
	s.mutate(ctx, opAddItem, true, func() bool {
		if i := indexOf(s.items, product.ID); i >= 0 {
			s.items[i].Quantity++
			return true
		}
		s.items = append(s.items, LineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: 1,
			Image:    product.Image,
		}.clone())
		return true
	})
}

// DecreaseItem decrements a line, removing it when it reaches zero.
func (s *Store) DecreaseItem(ctx context.Context, id int64) {
	s.mutate(ctx, opDecreaseItem, true, func() bool {
		i := indexOf(s.items, id)
		if i < 0 {
			return false
		}
		s.items[i].Quantity--
		if s.items[i].Quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		return true
	})
}

// SetQuantity sets an existing line to ClampQuantity(quantity).
func (s *Store) SetQuantity(ctx context.Context, id int64, quantity float64) {
	qty := ClampQuantity(quantity)
	s.mutate(ctx, opSetQuantity, true, func() bool {
		i := indexOf(s.items, id)
		if i < 0 || s.items[i].Quantity == qty {
			return false
		}
		s.items[i].Quantity = qty
		return true
	})
}

// RemoveItem deletes a line regardless of its quantity.
func (s *Store) RemoveItem(ctx context.Context, id int64) {
	s.mutate(ctx, opRemoveItem, true, func() bool {
		i := indexOf(s.items, id)
		if i < 0 {
			return false
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	})
}

// ClearCart empties the cart. It always saves, even when already empty.
func (s *Store) ClearCart(ctx context.Context) {
	s.mutate(ctx, opClearCart, true, func() bool {
		s.items = []LineItem{}
		return true
	})
}

// OpenCart marks the cart drawer open. The flag is never persisted.
func (s *Store) OpenCart() {
	s.mutate(context.Background(), opOpenCart, false, func() bool {
		if s.isOpen {
			return false
		}
		s.isOpen = true
		return true
	})
}

// CloseCart marks the cart drawer closed.
func (s *Store) CloseCart() {
	s.mutate(context.Background(), opCloseCart, false, func() bool {
		if !s.isOpen {
			return false
		}
		s.isOpen = false
		return true
	})
}

// IsOpen reports whether the cart drawer is open.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

func (s *Store) ItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ItemsCount(s.items)
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.items)
}

func (s *Store) Currency() string {
	return s.currency
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every state change. Listeners run synchronously on the
// mutating goroutine, one change at a time in mutation order. They may read the store
// and unsubscribe, but a mutation from inside a listener never returns.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.listenersMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// Listeners reports how many subscribers are attached.
func (s *Store) Listeners() int {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	return len(s.listeners)
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items:      cloneItems(s.items),
		ItemsCount: ItemsCount(s.items),
		Total:      Total(s.items),
		Currency:   s.currency,
		IsOpen:     s.isOpen,
	}
}

func (s *Store) mutate(ctx context.Context, op string, persist bool, apply func() bool) {
	s.mu.Lock()
	if !apply() {
		s.mu.Unlock()
		return
	}
	if persist {
		s.save(ctx, cloneItems(s.items))
	}
	s.seq++
	seq := s.seq
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.metrics.IncOperation(op)
	s.deliver(seq, snap)
}

// deliver waits for every earlier change to be delivered, then calls the listeners
// with no store lock held.
func (s *Store) deliver(seq uint64, snap Snapshot) {
	s.turnMu.Lock()
	for s.delivered != seq-1 {
		s.turn.Wait()
	}
	s.turnMu.Unlock()

	defer func() {
		s.turnMu.Lock()
		s.delivered = seq
		s.turnMu.Unlock()
		s.turn.Broadcast()
	}()

	for _, fn := range s.orderedListeners() {
		fn(snap)
	}
}

// save swallows failures; in-memory state stays authoritative.
func (s *Store) save(ctx context.Context, items []LineItem) {
	if err := s.storage.Save(ctx, items); err != nil {
		s.logg.WarnErr(ctx, "cart.save_failed", err)
		s.metrics.IncPersistenceFailure(metrics.KindSave)
	}
}

func (s *Store) orderedListeners() []func(Snapshot) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	out := make([]func(Snapshot), 0, len(s.listeners))
	for _, id := range slices.Sorted(maps.Keys(s.listeners)) {
		out = append(out, s.listeners[id])
	}
	return out
}
