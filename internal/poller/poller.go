// Package poller runs the recurring price check over the watchlist.
package poller

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/neko-jpg/boutique-agent-extension/internal/catalog"
	"github.com/neko-jpg/boutique-agent-extension/internal/notify"
	"github.com/neko-jpg/boutique-agent-extension/internal/watchlist"
)

type Poller struct {
	repo     watchlist.Repository
	catalog  catalog.Client
	notifier notify.Notifier
	interval time.Duration
}

func New(repo watchlist.Repository, client catalog.Client, notifier notify.Notifier, interval time.Duration) *Poller {
	return &Poller{
		repo:     repo,
		catalog:  client,
		notifier: notifier,
		interval: interval,
	}
}

// Run executes one cycle immediately, then one per tick until ctx is
// cancelled. A cycle in progress always finishes; cancellation is only
// observed between ticks.
func (p *Poller) Run(ctx context.Context) {
	log.Printf("POLLER_STARTED interval=%s", p.interval)

	p.CheckOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("POLLER_STOPPED")
			return
		case <-ticker.C:
			p.CheckOnce(ctx)
		}
	}
}

// CheckOnce runs one poll cycle over a snapshot of the watchlist.
// Products added mid-cycle are picked up on the next cycle.
func (p *Poller) CheckOnce(ctx context.Context) {
	ids, err := p.repo.ProductIDs(ctx)
	if err != nil {
		log.Printf("POLL_SNAPSHOT_FAILED error=%v", err)
		return
	}

	log.Printf("POLL_CYCLE_START products=%d", len(ids))

	for _, id := range ids {
		p.checkProduct(ctx, id)
	}
}

// checkProduct handles a single product. Every failure is contained here
// so that one broken lookup never stops the rest of the cycle.
func (p *Poller) checkProduct(ctx context.Context, productID string) {
	quote, err := p.catalog.GetProduct(ctx, productID)
	if err != nil {
		log.Printf("POLL_LOOKUP_FAILED product=%s error=%v", productID, err)
		return
	}

	lastPrice, err := p.repo.LastPrice(ctx, productID)
	if err != nil {
		log.Printf("POLL_READ_FAILED product=%s error=%v", productID, err)
		return
	}

	log.Printf("POLL_CHECKED product=%s name=%q price=%d", productID, quote.Name, quote.Price)

	if lastPrice != nil && quote.Price < *lastPrice {
		msg := fmt.Sprintf(
			"PRICE DROP ALERT! %s (%s): was $%d, now $%d",
			quote.Name, productID, *lastPrice, quote.Price,
		)
		if err := p.notifier.Notify(ctx, msg); err != nil {
			// Delivery failure never blocks the price update.
			log.Printf("NOTIFY_FAILED product=%s error=%v", productID, err)
		} else {
			log.Printf("PRICE_DROP product=%s old=%d new=%d", productID, *lastPrice, quote.Price)
		}
	}

	if err := p.repo.SetLastPrice(ctx, productID, quote.Price); err != nil {
		log.Printf("POLL_WRITE_FAILED product=%s error=%v", productID, err)
	}
}
