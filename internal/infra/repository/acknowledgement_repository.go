package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

const (
	ackKeyPrefix = "alarm:ack:"
	ackValue     = "1"
)

type acknowledgementRepository struct {
	client *redis.Client
}

func NewAcknowledgementRepository(client *redis.Client) domain.AcknowledgementRepository {
	return &acknowledgementRepository{
		client: client,
	}
}

func ackKey(reminderID int) string {
	return ackKeyPrefix + strconv.Itoa(reminderID)
}

func (r *acknowledgementRepository) IsAcknowledged(ctx context.Context, reminderID int) (bool, error) {
	val, err := r.client.Get(ctx, ackKey(reminderID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	return val == ackValue, nil
}

func (r *acknowledgementRepository) SetAcknowledged(ctx context.Context, reminderID int) error {
	return r.client.Set(ctx, ackKey(reminderID), ackValue, 0).Err()
}

func (r *acknowledgementRepository) ClearAcknowledged(ctx context.Context, reminderID int) error {
	return r.client.Del(ctx, ackKey(reminderID)).Err()
}
