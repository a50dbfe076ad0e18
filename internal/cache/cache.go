package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"glow/config"
	"glow/internal/domain"
)

// DraftCache хранит несохранённые черновики недельного расписания мастеров.
// Кэш вспомогательный: его недоступность не должна блокировать работу сервиса.
type DraftCache interface {
	GetScheduleDraft(ctx context.Context, providerID int64) (*domain.WeekSchedule, error)
	SaveScheduleDraft(ctx context.Context, providerID int64, week domain.WeekSchedule) error
	DeleteScheduleDraft(ctx context.Context, providerID int64) error
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	return client, nil
}
