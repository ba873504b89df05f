package poller

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/neko-jpg/boutique-agent-extension/internal/catalog"
	"github.com/neko-jpg/boutique-agent-extension/internal/watchlist"
)

// fakeCatalog serves scripted quotes, or an error, per product id.
type fakeCatalog struct {
	prices map[string]int64
	errs   map[string]error
	calls  []string
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID string) (*catalog.Quote, error) {
	f.calls = append(f.calls, productID)
	if err, ok := f.errs[productID]; ok {
		return nil, err
	}
	price, ok := f.prices[productID]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &catalog.Quote{
		ProductID:   productID,
		Name:        "Product " + productID,
		Price:       price,
		RetrievedAt: time.Now(),
	}, nil
}

// fakeNotifier records alerts and can be told to fail.
type fakeNotifier struct {
	messages []string
	fail     bool
}

func (f *fakeNotifier) Notify(ctx context.Context, text string) error {
	if f.fail {
		return errors.New("webhook down")
	}
	f.messages = append(f.messages, text)
	return nil
}

func newTestPoller(repo watchlist.Repository, cat *fakeCatalog, not *fakeNotifier) *Poller {
	return New(repo, cat, not, time.Minute)
}

func TestFirstObservationNeverNotifies(t *testing.T) {
	ctx := context.Background()
	repo := watchlist.NewInMemoryRepository()
	repo.Add(ctx, "A")

	cat := &fakeCatalog{prices: map[string]int64{"A": 100}}
	not := &fakeNotifier{}

	newTestPoller(repo, cat, not).CheckOnce(ctx)

	if len(not.messages) != 0 {
		t.Fatalf("first observation must not notify, got %v", not.messages)
	}
	got, _ := repo.LastPrice(ctx, "A")
	if got == nil || *got != 100 {
		t.Fatalf("expected stored price 100, got %v", got)
	}
}

// TestDropScenario runs the 100 → 90 → 90 sequence: exactly one alert,
// fired on the strict drop only.
func TestDropScenario(t *testing.T) {
	ctx := context.Background()
	repo := watchlist.NewInMemoryRepository()
	repo.Add(ctx, "A")

	cat := &fakeCatalog{prices: map[string]int64{"A": 100}}
	not := &fakeNotifier{}
	p := newTestPoller(repo, cat, not)

	p.CheckOnce(ctx)
	if len(not.messages) != 0 {
		t.Fatalf("cycle 1: no alert expected, got %v", not.messages)
	}

	cat.prices["A"] = 90
	p.CheckOnce(ctx)
	if len(not.messages) != 1 {
		t.Fatalf("cycle 2: expected one alert, got %v", not.messages)
	}
	msg := not.messages[0]
	if !strings.Contains(msg, "$100") || !strings.Contains(msg, "$90") {
		t.Errorf("alert should reference old and new price, got %q", msg)
	}
	got, _ := repo.LastPrice(ctx, "A")
	if got == nil || *got != 90 {
		t.Fatalf("cycle 2: expected stored price 90, got %v", got)
	}

	// Same price again: not strictly less, no alert.
	p.CheckOnce(ctx)
	if len(not.messages) != 1 {
		t.Fatalf("cycle 3: expected no new alert, got %v", not.messages)
	}
	got, _ = repo.LastPrice(ctx, "A")
	if got == nil || *got != 90 {
		t.Fatalf("cycle 3: expected stored price 90, got %v", got)
	}
}

func TestPriceRiseUpdatesWithoutAlert(t *testing.T) {
	ctx := context.Background()
	repo := watchlist.NewInMemoryRepository()
	repo.Add(ctx, "A")
	repo.SetLastPrice(ctx, "A", 50)

	cat := &fakeCatalog{prices: map[string]int64{"A": 80}}
	not := &fakeNotifier{}

	newTestPoller(repo, cat, not).CheckOnce(ctx)

	if len(not.messages) != 0 {
		t.Fatalf("price rise must not notify, got %v", not.messages)
	}
	got, _ := repo.LastPrice(ctx, "A")
	if got == nil || *got != 80 {
		t.Fatalf("expected stored price 80, got %v", got)
	}
}

// TestFailedLookupIsIsolated verifies one broken product neither changes
// its own stored price nor stops the rest of the cycle.
func TestFailedLookupIsIsolated(t *testing.T) {
	ctx := context.Background()
	repo := watchlist.NewInMemoryRepository()
	repo.Add(ctx, "A")
	repo.Add(ctx, "C")
	repo.Add(ctx, "Z")
	repo.SetLastPrice(ctx, "C", 70)

	cat := &fakeCatalog{
		prices: map[string]int64{"A": 10, "Z": 20},
		errs:   map[string]error{"C": catalog.ErrUnavailable},
	}
	not := &fakeNotifier{}

	newTestPoller(repo, cat, not).CheckOnce(ctx)

	if len(cat.calls) != 3 {
		t.Fatalf("expected all three products polled, got %v", cat.calls)
	}

	// C keeps its pre-cycle price and reports no drop.
	got, _ := repo.LastPrice(ctx, "C")
	if got == nil || *got != 70 {
		t.Fatalf("failed lookup must not alter stored price, got %v", got)
	}
	if len(not.messages) != 0 {
		t.Fatalf("failed lookup must not notify, got %v", not.messages)
	}

	// The healthy products were still recorded.
	for id, want := range map[string]int64{"A": 10, "Z": 20} {
		got, _ := repo.LastPrice(ctx, id)
		if got == nil || *got != want {
			t.Errorf("product %s: expected price %d, got %v", id, want, got)
		}
	}
}

func TestNotificationFailureStillRecordsPrice(t *testing.T) {
	ctx := context.Background()
	repo := watchlist.NewInMemoryRepository()
	repo.Add(ctx, "A")
	repo.SetLastPrice(ctx, "A", 100)

	cat := &fakeCatalog{prices: map[string]int64{"A": 90}}
	not := &fakeNotifier{fail: true}

	newTestPoller(repo, cat, not).CheckOnce(ctx)

	got, _ := repo.LastPrice(ctx, "A")
	if got == nil || *got != 90 {
		t.Fatalf("price must be recorded even when delivery fails, got %v", got)
	}
}

func TestProductsAddedMidCycleWaitForNextCycle(t *testing.T) {
	ctx := context.Background()
	repo := watchlist.NewInMemoryRepository()
	repo.Add(ctx, "A")

	cat := &fakeCatalog{prices: map[string]int64{"A": 10, "B": 20}}
	not := &fakeNotifier{}
	p := newTestPoller(repo, cat, not)

	p.CheckOnce(ctx)
	repo.Add(ctx, "B")

	got, _ := repo.LastPrice(ctx, "B")
	if got != nil {
		t.Fatalf("B must not be observed before the next cycle, got %d", *got)
	}

	p.CheckOnce(ctx)
	got, _ = repo.LastPrice(ctx, "B")
	if got == nil || *got != 20 {
		t.Fatalf("expected B observed on next cycle, got %v", got)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := watchlist.NewInMemoryRepository()
	cat := &fakeCatalog{prices: map[string]int64{}}
	not := &fakeNotifier{}

	p := New(repo, cat, not, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}
