package watchlist

// Entry is one watched product. LastPrice is nil until the first
// successful poll records a baseline, and holds whole USD afterwards.
type Entry struct {
	ProductID string `json:"product_id"`
	LastPrice *int64 `json:"last_price,omitempty"`
}
