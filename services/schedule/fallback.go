package schedule

import (
	"context"
	"encoding/json"
	"fmt"

	"palco/models"
	"palco/utils"

	"github.com/go-redis/redis/v8"
)

// RedisFallbackCache keeps a JSON copy of each manager's ledger under
// blockedSlots:{managerId}.
type RedisFallbackCache struct {
	client *redis.Client
}

func NewRedisFallbackCache(client *redis.Client) FallbackCache {
	return &RedisFallbackCache{client: client}
}

func ledgerKey(managerID string) string {
	return fmt.Sprintf("%s%s", utils.BlockedSlotCachePrefix, managerID)
}

func (c *RedisFallbackCache) Store(ctx context.Context, managerID string, blocks []models.BlockedSlot) error {
	data, err := json.Marshal(blocks)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ledgerKey(managerID), data, utils.BlockedSlotCacheTTL).Err()
}

func (c *RedisFallbackCache) Load(ctx context.Context, managerID string) ([]models.BlockedSlot, error) {
	val, err := c.client.Get(ctx, ledgerKey(managerID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var blocks []models.BlockedSlot
	if err := json.Unmarshal([]byte(val), &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}
