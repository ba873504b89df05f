package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Typed failures for a price lookup. The poller matches on these with
// errors.Is to decide how to log a skipped product.
var (
	ErrNotFound    = errors.New("product not found")
	ErrUnavailable = errors.New("catalog reader unavailable")
	ErrMalformed   = errors.New("malformed catalog response")
)

// Quote is a fresh price observation for one product.
type Quote struct {
	ProductID   string
	Name        string
	Price       int64 // whole USD
	RetrievedAt time.Time
}

// Client looks up current product prices.
type Client interface {
	GetProduct(ctx context.Context, productID string) (*Quote, error)
}

// HTTPClient talks to the catalog-reader facade over HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// productResponse mirrors the facade's JSON shape. The price comes back as
// a protobuf Money rendering, with units as a string-encoded integer.
type productResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PriceUsd struct {
		Units string `json:"units"`
	} `json:"priceUsd"`
}

func (c *HTTPClient) GetProduct(ctx context.Context, productID string) (*Quote, error) {
	url := fmt.Sprintf("%s/products/%s", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, productID)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if body.Name == "" || body.PriceUsd.Units == "" {
		return nil, fmt.Errorf("%w: missing name or priceUsd.units", ErrMalformed)
	}

	price, err := strconv.ParseInt(body.PriceUsd.Units, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: price %q is not numeric", ErrMalformed, body.PriceUsd.Units)
	}

	return &Quote{
		ProductID:   productID,
		Name:        body.Name,
		Price:       price,
		RetrievedAt: time.Now().UTC(),
	}, nil
}
