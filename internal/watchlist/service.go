package watchlist

import (
	"context"
	"errors"
	"log"
)

var ErrEmptyProductID = errors.New("product id must not be empty")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Watch adds a product to the watchlist. The bool reports whether the
// product is newly watched; watching an already-watched product is not
// an error and never resets its recorded price.
func (s *Service) Watch(ctx context.Context, productID string) (bool, error) {
	if productID == "" {
		return false, ErrEmptyProductID
	}
	return s.repo.Add(ctx, productID)
}

// Seed registers the initial watchlist at startup.
func (s *Service) Seed(ctx context.Context, productIDs []string) error {
	for _, id := range productIDs {
		created, err := s.repo.Add(ctx, id)
		if err != nil {
			return err
		}
		if created {
			log.Printf("WATCHLIST_SEEDED product=%s", id)
		}
	}
	return nil
}

func (s *Service) Entries(ctx context.Context) ([]Entry, error) {
	return s.repo.Entries(ctx)
}
