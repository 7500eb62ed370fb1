package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

const (
	timerKeyPrefix = "alarm:timer:"

	// Registrations outlive their trigger so late deliveries still find them.
	timerRegistrationGrace = 24 * time.Hour
)

type registrationRecord struct {
	ReminderID    int                 `json:"reminder_id"`
	Class         string              `json:"class"`
	Token         string              `json:"token"`
	TaskName      string              `json:"task_name"`
	At            time.Time           `json:"at"`
	PeriodSeconds int64               `json:"period_seconds,omitempty"`
	Exact         bool                `json:"exact"`
	Payload       domain.AlarmPayload `json:"payload"`
}

// Both scripts compare the stored token before touching the key so a
// registration replaced in the meantime is left alone.
var (
	removeIfTokenScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then
  return 0
end
if cjson.decode(current).token ~= ARGV[1] then
  return 0
end
redis.call("DEL", KEYS[1])
return 1
`)

	replaceIfTokenScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then
  return 0
end
if cjson.decode(current).token ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)
)

type timerRegistryRepository struct {
	client *redis.Client
}

func NewTimerRegistryRepository(client *redis.Client) domain.TimerRegistryRepository {
	return &timerRegistryRepository{
		client: client,
	}
}

func registrationKey(key domain.TimerKey) string {
	return timerKeyPrefix + key.String()
}

func registrationTTL(reg *domain.TimerRegistration) time.Duration {
	ttl := time.Until(reg.At) + reg.Period + timerRegistrationGrace
	if ttl < timerRegistrationGrace {
		return timerRegistrationGrace
	}
	return ttl
}

func encodeRegistration(reg *domain.TimerRegistration) ([]byte, error) {
	if reg == nil {
		return nil, ErrInvalidRegistrationData
	}

	data, err := json.Marshal(registrationRecord{
		ReminderID:    reg.Key.ReminderID,
		Class:         string(reg.Key.Class),
		Token:         reg.Token,
		TaskName:      reg.TaskName,
		At:            reg.At,
		PeriodSeconds: int64(reg.Period / time.Second),
		Exact:         reg.Exact,
		Payload:       reg.Payload,
	})
	if err != nil {
		return nil, ErrInvalidRegistrationData
	}
	return data, nil
}

func decodeRegistration(data []byte) (*domain.TimerRegistration, error) {
	var record registrationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidRegistrationData
	}

	return &domain.TimerRegistration{
		Key: domain.TimerKey{
			ReminderID: record.ReminderID,
			Class:      domain.TimerClass(record.Class),
		},
		Token:    record.Token,
		TaskName: record.TaskName,
		At:       record.At,
		Period:   time.Duration(record.PeriodSeconds) * time.Second,
		Exact:    record.Exact,
		Payload:  record.Payload,
	}, nil
}

func (r *timerRegistryRepository) Swap(ctx context.Context, reg *domain.TimerRegistration) (*domain.TimerRegistration, error) {
	data, err := encodeRegistration(reg)
	if err != nil {
		return nil, err
	}

	prev, err := r.client.SetArgs(ctx, registrationKey(reg.Key), data, redis.SetArgs{
		Get: true,
		TTL: registrationTTL(reg),
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	previous, err := decodeRegistration([]byte(prev))
	if err != nil {
		// The slot now holds reg; an unreadable predecessor is simply dropped.
		return nil, nil
	}
	return previous, nil
}

func (r *timerRegistryRepository) Get(ctx context.Context, key domain.TimerKey) (*domain.TimerRegistration, error) {
	data, err := r.client.Get(ctx, registrationKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, err
	}

	return decodeRegistration(data)
}

func (r *timerRegistryRepository) Remove(ctx context.Context, key domain.TimerKey) (*domain.TimerRegistration, error) {
	data, err := r.client.GetDel(ctx, registrationKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	return decodeRegistration(data)
}

func (r *timerRegistryRepository) RemoveIfToken(ctx context.Context, key domain.TimerKey, token string) (bool, error) {
	removed, err := removeIfTokenScript.Run(ctx, r.client, []string{registrationKey(key)}, token).Int()
	if err != nil {
		return false, err
	}
	return removed == 1, nil
}

func (r *timerRegistryRepository) ReplaceIfToken(ctx context.Context, token string, reg *domain.TimerRegistration) (bool, error) {
	data, err := encodeRegistration(reg)
	if err != nil {
		return false, err
	}

	replaced, err := replaceIfTokenScript.Run(ctx, r.client,
		[]string{registrationKey(reg.Key)},
		token, data, registrationTTL(reg).Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return replaced == 1, nil
}

func (r *timerRegistryRepository) List(ctx context.Context) ([]*domain.TimerRegistration, error) {
	var regs []*domain.TimerRegistration

	iter := r.client.Scan(ctx, 0, timerKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		reg, err := decodeRegistration(data)
		if err != nil {
			continue
		}
		regs = append(regs, reg)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}
