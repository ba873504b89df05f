package watchlist

import "context"

// Repository defines the data-access contract for the watchlist.
// Service and the poller depend ONLY on this interface.
type Repository interface {
	// Add registers a product for watching. Adding an id that is already
	// watched is a no-op; the bool reports whether the id was newly added.
	Add(ctx context.Context, productID string) (bool, error)

	// ProductIDs returns a point-in-time snapshot of all watched ids,
	// safe to iterate after the call returns.
	ProductIDs(ctx context.Context) ([]string, error)

	// LastPrice returns the last observed price for a product, or nil
	// when no price has been recorded yet.
	LastPrice(ctx context.Context, productID string) (*int64, error)

	// SetLastPrice overwrites the last observed price unconditionally.
	SetLastPrice(ctx context.Context, productID string, price int64) error

	// Entries returns all watched products with their recorded prices.
	Entries(ctx context.Context) ([]Entry, error)
}
