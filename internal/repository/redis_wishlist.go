package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisWishlist stores each user's wishlist as a sorted set scored by the
// time the listing was saved, so List keeps insertion order
type RedisWishlist struct {
	client *redis.Client
	prefix string
}

// NewRedisWishlist connects to Redis and verifies the connection
func NewRedisWishlist(address, password string, db int) (*RedisWishlist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisWishlist{client: client, prefix: "hostelhub:wishlist:"}, nil
}

func (w *RedisWishlist) key(userID string) string {
	return w.prefix + userID
}

// Add saves a listing for a user. Adding twice keeps the original position.
func (w *RedisWishlist) Add(ctx context.Context, userID, listingID string) error {
	err := w.client.ZAddNX(ctx, w.key(userID), redis.Z{
		Score:  float64(time.Now().UnixNano()),
		Member: listingID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

// Remove drops a listing from a user's wishlist
func (w *RedisWishlist) Remove(ctx context.Context, userID, listingID string) error {
	if err := w.client.ZRem(ctx, w.key(userID), listingID).Err(); err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}

// List returns a user's saved listing IDs, oldest first
func (w *RedisWishlist) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := w.client.ZRange(ctx, w.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	return ids, nil
}

// Close closes the Redis connection
func (w *RedisWishlist) Close() error {
	return w.client.Close()
}
