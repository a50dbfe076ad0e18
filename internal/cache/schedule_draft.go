package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"glow/internal/domain"
)

type ScheduleDraftCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScheduleDraftCache(client *redis.Client, ttl time.Duration) *ScheduleDraftCache {
	return &ScheduleDraftCache{
		client: client,
		ttl:    ttl,
	}
}

func draftKey(providerID int64) string {
	return fmt.Sprintf("schedule:draft:%d", providerID)
}

func (c *ScheduleDraftCache) GetScheduleDraft(ctx context.Context, providerID int64) (*domain.WeekSchedule, error) {
	raw, err := c.client.Get(ctx, draftKey(providerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения черновика расписания: %w", err)
	}

	var week domain.WeekSchedule
	if err := json.Unmarshal(raw, &week); err != nil {
		return nil, fmt.Errorf("ошибка разбора черновика расписания: %w", err)
	}

	return &week, nil
}

func (c *ScheduleDraftCache) SaveScheduleDraft(ctx context.Context, providerID int64, week domain.WeekSchedule) error {
	raw, err := json.Marshal(week)
	if err != nil {
		return fmt.Errorf("ошибка сериализации черновика расписания: %w", err)
	}

	if err := c.client.Set(ctx, draftKey(providerID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения черновика расписания: %w", err)
	}

	return nil
}

func (c *ScheduleDraftCache) DeleteScheduleDraft(ctx context.Context, providerID int64) error {
	if err := c.client.Del(ctx, draftKey(providerID)).Err(); err != nil {
		return fmt.Errorf("ошибка удаления черновика расписания: %w", err)
	}

	return nil
}
