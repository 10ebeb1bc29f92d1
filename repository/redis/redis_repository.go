package redis

import (
	"context"
	"time"

	redisclient "github.com/farhanmaulid/commerce-inventory/cmd/redis"
)

const lowStockAlertsKey = "inventory:low_stock_alerts"

// Repository caches read-side inventory views. Entries are advisory: a
// cache miss or unavailable Redis falls through to the database.
type Repository interface {
	GetLowStockAlerts(ctx context.Context) (string, error)
	SetLowStockAlerts(ctx context.Context, payload string, ttl time.Duration) error
	DeleteLowStockAlerts(ctx context.Context) error
}

type redis struct {
}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

// GetLowStockAlerts returns the cached alert list, or empty string on miss.
func (r *redis) GetLowStockAlerts(ctx context.Context) (string, error) {
	client := redisclient.Get()
	if client == nil {
		return "", nil
	}
	val, err := client.Get(ctx, lowStockAlertsKey).Result()
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetLowStockAlerts stores the serialized alert list with time-to-live
func (r *redis) SetLowStockAlerts(ctx context.Context, payload string, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Set(ctx, lowStockAlertsKey, payload, ttl).Err()
}

// DeleteLowStockAlerts drops the cached list
func (r *redis) DeleteLowStockAlerts(ctx context.Context) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, lowStockAlertsKey).Err()
}
