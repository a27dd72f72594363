package cart

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAddItemTwiceMergesLine(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	led := ProductStub{ID: 1, Name: "LED Panel", Price: price("120")}
	store.AddItem(ctx, led)
	store.AddItem(ctx, led)

	items := store.Items()
	if len(items) != 1 || items[0].ID != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", items)
	}
	if store.ItemsCount() != 2 {
		t.Fatalf("expected itemsCount 2, got %d", store.ItemsCount())
	}
	if !store.Total().Equal(decimal.NewFromInt(240)) {
		t.Fatalf("expected total 240, got %s", store.Total())
	}
}

func TestDecreaseToZeroRemovesLine(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	led := ProductStub{ID: 1, Name: "LED Panel", Price: price("120")}
	store.AddItem(ctx, led)
	store.AddItem(ctx, led)
	store.DecreaseItem(ctx, 1)
	store.DecreaseItem(ctx, 1)

	if items := store.Items(); len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
	if store.ItemsCount() != 0 || !store.Total().IsZero() {
		t.Fatalf("expected zero count and total, got %d %s", store.ItemsCount(), store.Total())
	}
}

func TestMissingPriceCountsAsZero(t *testing.T) {
	store := newTestStore(t, nil)
	store.AddItem(context.Background(), ProductStub{ID: 2, Name: "Bulb"})

	if !store.Total().IsZero() {
		t.Fatalf("expected total 0, got %s", store.Total())
	}
	if store.ItemsCount() != 1 {
		t.Fatalf("expected itemsCount 1, got %d", store.ItemsCount())
	}
}

func TestRepeatedAddKeepsFirstMetadata(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	store.AddItem(ctx, ProductStub{ID: 7, Name: "Spot", Price: price("15"), Image: strPtr("a.png")})
	store.AddItem(ctx, ProductStub{ID: 7, Name: "Spot v2", Price: price("99"), Image: strPtr("b.png")})
	store.AddItem(ctx, ProductStub{ID: 7, Name: "Spot v3"})

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected a single line, got %d", len(items))
	}
	got := items[0]
	if got.Quantity != 3 || got.Name != "Spot" || !got.Price.Equal(decimal.NewFromInt(15)) || *got.Image != "a.png" {
		t.Fatalf("expected sticky first metadata, got %+v", got)
	}
}

func TestInsertionOrderIsPreserved(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	for _, id := range []int64{3, 1, 2} {
		store.AddItem(ctx, ProductStub{ID: id, Name: "p"})
	}
	store.AddItem(ctx, ProductStub{ID: 1, Name: "p"})
	store.SetQuantity(ctx, 3, 10)

	var ids []int64
	for _, item := range store.Items() {
		ids = append(ids, item.ID)
	}
	if len(ids) != 3 || ids[0] != 3 || ids[1] != 1 || ids[2] != 2 {
		t.Fatalf("unexpected order %v", ids)
	}
}

func TestSetQuantityClamps(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want int
	}{
		{"negative", -5, 1},
		{"above max", 5000, 999},
		{"fraction floors", 3.9, 3},
		{"below one floors to min", 0.5, 1},
		{"zero", 0, 1},
		{"nan", math.NaN(), 1},
		{"positive inf", math.Inf(1), 999},
		{"negative inf", math.Inf(-1), 1},
		{"max", 999, 999},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newTestStore(t, nil)
			ctx := context.Background()
			store.AddItem(ctx, ProductStub{ID: 1, Name: "A"})

			store.SetQuantity(ctx, 1, tc.in)

			if got := store.Items()[0].Quantity; got != tc.want {
				t.Fatalf("SetQuantity(%v): expected %d, got %d", tc.in, tc.want, got)
			}
		})
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	st := &fakeStorage{}
	store := newTestStore(t, st)
	ctx := context.Background()
	store.AddItem(ctx, ProductStub{ID: 1, Name: "A", Price: price("10")})
	saves := st.saveCount()

	store.DecreaseItem(ctx, 42)
	store.SetQuantity(ctx, 42, 5)
	store.RemoveItem(ctx, 42)

	if st.saveCount() != saves {
		t.Fatalf("expected no saves for unknown ids, got %d extra", st.saveCount()-saves)
	}
	if items := store.Items(); len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("cart changed on unknown id: %+v", items)
	}
}

func TestRemoveAndClear(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	store.AddItem(ctx, ProductStub{ID: 1, Name: "A", Price: price("10")})
	store.AddItem(ctx, ProductStub{ID: 2, Name: "B"})

	store.RemoveItem(ctx, 1)
	if items := store.Items(); len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("expected only line 2, got %+v", items)
	}

	store.ClearCart(ctx)
	if len(store.Items()) != 0 || store.ItemsCount() != 0 || !store.Total().IsZero() {
		t.Fatalf("expected empty cart after clear")
	}
}

func TestEveryMutationSavesAndNotifiesOnce(t *testing.T) {
	st := &fakeStorage{}
	store := newTestStore(t, st)
	ctx := context.Background()

	var snaps []Snapshot
	unsubscribe := store.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	store.AddItem(ctx, ProductStub{ID: 1, Name: "A", Price: price("10")})
	store.AddItem(ctx, ProductStub{ID: 1, Name: "A", Price: price("10")})
	store.SetQuantity(ctx, 1, 4)
	store.DecreaseItem(ctx, 1)
	store.RemoveItem(ctx, 1)
	store.ClearCart(ctx)

	if st.saveCount() != 6 {
		t.Fatalf("expected 6 saves, got %d", st.saveCount())
	}
	if len(snaps) != 6 {
		t.Fatalf("expected 6 notifications, got %d", len(snaps))
	}
	if snaps[2].ItemsCount != 4 || !snaps[2].Total.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("unexpected snapshot after set quantity: %+v", snaps[2])
	}
	if snaps[3].Items[0].Quantity != 3 {
		t.Fatalf("unexpected snapshot after decrease: %+v", snaps[3])
	}

	unsubscribe()
	unsubscribe()
	store.AddItem(ctx, ProductStub{ID: 9, Name: "Z"})
	if len(snaps) != 6 {
		t.Fatalf("expected no notification after unsubscribe")
	}
	if store.Listeners() != 0 {
		t.Fatalf("expected no listeners, got %d", store.Listeners())
	}
}

func TestOpenCloseNotifiesWithoutSaving(t *testing.T) {
	st := &fakeStorage{}
	store := newTestStore(t, st)

	var opened []bool
	store.Subscribe(func(s Snapshot) { opened = append(opened, s.IsOpen) })

	store.OpenCart()
	store.OpenCart()
	store.CloseCart()

	if st.saveCount() != 0 {
		t.Fatalf("open/close must not persist, got %d saves", st.saveCount())
	}
	if len(opened) != 2 || !opened[0] || opened[1] {
		t.Fatalf("unexpected open notifications %v", opened)
	}
	if store.IsOpen() {
		t.Fatal("expected closed cart")
	}
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	st := &fakeStorage{saveErr: errBoom}
	store := newTestStore(t, st)
	ctx := context.Background()

	store.AddItem(ctx, ProductStub{ID: 1, Name: "A", Price: price("5")})
	store.AddItem(ctx, ProductStub{ID: 1, Name: "A", Price: price("5")})

	if store.ItemsCount() != 2 {
		t.Fatalf("in-memory state must stay authoritative, got %d", store.ItemsCount())
	}
	if st.saveCount() != 2 {
		t.Fatalf("expected both saves attempted, got %d", st.saveCount())
	}
}

func TestLoadFailureYieldsEmptyCart(t *testing.T) {
	store := newTestStore(t, &fakeStorage{loadErr: ErrCorrupt})
	if len(store.Items()) != 0 {
		t.Fatalf("expected empty cart")
	}
}

func TestNewStoreLoadsPersistedItems(t *testing.T) {
	st := &fakeStorage{loaded: []LineItem{{ID: 4, Name: "Cable", Price: price("3.25"), Quantity: 4}}}
	store := newTestStore(t, st)

	if store.ItemsCount() != 4 || !store.Total().Equal(decimal.RequireFromString("13")) {
		t.Fatalf("unexpected loaded state %+v", store.Snapshot())
	}
	if store.Currency() != DefaultCurrency {
		t.Fatalf("expected default currency, got %q", store.Currency())
	}
}

func TestNewStoreRequiresStorage(t *testing.T) {
	if _, err := NewStore(context.Background(), Options{}); err == nil {
		t.Fatal("expected error without storage")
	}
}

func TestItemsReturnsACopy(t *testing.T) {
	store := newTestStore(t, nil)
	store.AddItem(context.Background(), ProductStub{ID: 1, Name: "A", Price: price("1")})

	items := store.Items()
	items[0].Quantity = 50
	*items[0].Price = decimal.NewFromInt(1000)

	if got := store.Items()[0]; got.Quantity != 1 || !got.Price.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("store state leaked through Items: %+v", got)
	}
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	st := &fakeStorage{}
	store := newTestStore(t, st)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.AddItem(ctx, ProductStub{ID: 1, Name: "A"})
		}()
	}
	wg.Wait()

	if store.ItemsCount() != 50 {
		t.Fatalf("expected 50 units, got %d", store.ItemsCount())
	}
	if last := st.lastSave(); len(last) != 1 || last[0].Quantity != 50 {
		t.Fatalf("last save must reflect final state, got %+v", last)
	}
}

func TestDerivedFields(t *testing.T) {
	items := []LineItem{
		{ID: 1, Name: "A", Price: price("10"), Quantity: 2},
		{ID: 2, Name: "B", Quantity: 1},
		{ID: 3, Name: "C", Price: price("0.5"), Quantity: 3},
	}
	if got := ItemsCount(items); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
	if got := Total(items); !got.Equal(decimal.RequireFromString("21.5")) {
		t.Fatalf("expected 21.5, got %s", got)
	}
	if !Total(nil).IsZero() {
		t.Fatalf("expected empty total 0")
	}
}

func waitDone(t *testing.T, what string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s did not return", what)
	}
}

func TestListenerMayUnsubscribeItself(t *testing.T) {
	store := newTestStore(t, nil)
	calls := 0
	var unsubscribe func()
	unsubscribe = store.Subscribe(func(Snapshot) {
		calls++
		unsubscribe()
	})

	waitDone(t, "AddItem", func() {
		store.AddItem(context.Background(), ProductStub{ID: 1, Name: "A"})
		store.AddItem(context.Background(), ProductStub{ID: 1, Name: "A"})
	})
	if calls != 1 {
		t.Fatalf("expected one notification before unsubscribing, got %d", calls)
	}
	if store.Listeners() != 0 {
		t.Fatalf("expected no listeners left, got %d", store.Listeners())
	}
}

func TestListenerReadsDuringConcurrentMutations(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	var mu sync.Mutex
	var counts []int
	store.Subscribe(func(snap Snapshot) {
		_ = store.ItemsCount()
		_ = store.Snapshot()
		mu.Lock()
		counts = append(counts, snap.ItemsCount)
		mu.Unlock()
	})

	const adds = 50
	waitDone(t, "concurrent AddItem", func() {
		var wg sync.WaitGroup
		for i := 0; i < adds; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				store.AddItem(ctx, ProductStub{ID: 1, Name: "A"})
			}()
		}
		wg.Wait()
	})

	mu.Lock()
	defer mu.Unlock()
	if len(counts) != adds {
		t.Fatalf("expected %d notifications, got %d", adds, len(counts))
	}
	for i, got := range counts {
		if got != i+1 {
			t.Fatalf("notifications out of mutation order: %v", counts)
		}
	}
}

func TestListenerPanicDoesNotStallLaterChanges(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	unsubscribe := store.Subscribe(func(Snapshot) { panic("listener") })

	func() {
		defer func() { _ = recover() }()
		store.AddItem(ctx, ProductStub{ID: 1, Name: "A"})
	}()
	unsubscribe()

	waitDone(t, "AddItem after panic", func() {
		store.AddItem(ctx, ProductStub{ID: 1, Name: "A"})
	})
	if store.ItemsCount() != 2 {
		t.Fatalf("expected 2 units, got %d", store.ItemsCount())
	}
}
