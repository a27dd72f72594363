package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

type fakeStorage struct {
	mu      sync.Mutex
	loaded  []LineItem
	loadErr error
	saveErr error
	saves   [][]LineItem
}

func (f *fakeStorage) Load(context.Context) ([]LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return cloneItems(f.loaded), nil
}

func (f *fakeStorage) Save(_ context.Context, items []LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, cloneItems(items))
	return f.saveErr
}

func (f *fakeStorage) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeStorage) lastSave() []LineItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saves) == 0 {
		return nil
	}
	return f.saves[len(f.saves)-1]
}

var errBoom = errors.New("boom")

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func strPtr(v string) *string {
	return &v
}

func newTestStore(t *testing.T, st *fakeStorage) *Store {
	t.Helper()
	if st == nil {
		st = &fakeStorage{}
	}
	store, err := NewStore(context.Background(), Options{Storage: st})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}
