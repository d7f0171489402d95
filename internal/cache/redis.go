package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ticketkinen/server/config"
	"github.com/ticketkinen/server/internal/domain"
)

const approvedKeyPrefix = "tickets:approved:page:"

// ListingCache keeps pages of the public approved-ticket listing in redis so
// the browse endpoint does not hit mongo on every request.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(cfg config.RedisConfig, ttl time.Duration) *ListingCache {
	return &ListingCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *ListingCache) GetApprovedPage(ctx context.Context, page int) (*domain.TicketPage, error) {
	data, err := c.client.Get(ctx, approvedKey(page)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var result domain.TicketPage
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *ListingCache) SetApprovedPage(ctx context.Context, page int, result *domain.TicketPage) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, approvedKey(page), data, c.ttl).Err()
}

// InvalidateApproved drops every cached listing page. Called after any ticket
// write that could change the approved set.
func (c *ListingCache) InvalidateApproved(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, approvedKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *ListingCache) Close() error {
	return c.client.Close()
}

func approvedKey(page int) string {
	return fmt.Sprintf("%s%d", approvedKeyPrefix, page)
}
