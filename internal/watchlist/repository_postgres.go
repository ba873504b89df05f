package watchlist

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository persists the watchlist in Postgres.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, productID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO watch_entries (product_id)
		VALUES ($1)
		ON CONFLICT (product_id) DO NOTHING
	`, productID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) ProductIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT product_id FROM watch_entries ORDER BY product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresRepository) LastPrice(ctx context.Context, productID string) (*int64, error) {
	var price *int64
	err := r.db.QueryRow(ctx, `
		SELECT last_price FROM watch_entries WHERE product_id = $1
	`, productID).Scan(&price)
	if err != nil {
		// Absent rows behave like an unset price; the poller never
		// observes ids outside its snapshot anyway.
		return nil, nil
	}
	return price, nil
}

func (r *PostgresRepository) SetLastPrice(ctx context.Context, productID string, price int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE watch_entries
		SET last_price = $1, updated_at = CURRENT_TIMESTAMP
		WHERE product_id = $2
	`, price, productID)
	return err
}

func (r *PostgresRepository) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, last_price FROM watch_entries ORDER BY product_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ProductID, &e.LastPrice); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
