package watchlist

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	redisProductSetKey  = "watchlist:products"
	redisPriceKeyPrefix = "watchlist:price:"
)

// RedisRepository keeps the watchlist in Redis so that it survives agent
// restarts. Membership lives in a set, last prices in one key per product.
type RedisRepository struct {
	client *redis.Client
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisRepository(cfg RedisConfig) *RedisRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisRepository{client: rdb}
}

func (r *RedisRepository) Add(ctx context.Context, productID string) (bool, error) {
	added, err := r.client.SAdd(ctx, redisProductSetKey, productID).Result()
	if err != nil {
		return false, err
	}
	return added == 1, nil
}

func (r *RedisRepository) ProductIDs(ctx context.Context) ([]string, error) {
	return r.client.SMembers(ctx, redisProductSetKey).Result()
}

func (r *RedisRepository) LastPrice(ctx context.Context, productID string) (*int64, error) {
	val, err := r.client.Get(ctx, redisPriceKeyPrefix+productID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	price, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *RedisRepository) SetLastPrice(ctx context.Context, productID string, price int64) error {
	return r.client.Set(ctx, redisPriceKeyPrefix+productID, strconv.FormatInt(price, 10), 0).Err()
}

func (r *RedisRepository) Entries(ctx context.Context) ([]Entry, error) {
	ids, err := r.ProductIDs(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		price, err := r.LastPrice(ctx, id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{ProductID: id, LastPrice: price})
	}
	return entries, nil
}

// Ping verifies the Redis connection at startup.
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
