package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

const snoozeMinutesKey = "alarm:settings:snooze_minutes"

type settingsRepository struct {
	client *redis.Client
}

func NewSettingsRepository(client *redis.Client) domain.SettingsRepository {
	return &settingsRepository{
		client: client,
	}
}

func (r *settingsRepository) GetSnoozeMinutes(ctx context.Context) (int, error) {
	val, err := r.client.Get(ctx, snoozeMinutesKey).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrSettingNotFound
		}
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, ErrInvalidSettingData
		}
		return 0, err
	}

	return val, nil
}

func (r *settingsRepository) SetSnoozeMinutes(ctx context.Context, minutes int) error {
	return r.client.Set(ctx, snoozeMinutesKey, minutes, 0).Err()
}
