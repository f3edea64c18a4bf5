package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

const ipLogKeyPrefix = "smsguide:ip_logs:"

// redisIPLogRepository keeps counters in one hash per address. Keys expire
// after ttl of inactivity, which must be at least the rate-limit window.
type redisIPLogRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIPLogRepository(client *redis.Client, ttl time.Duration) interfaces.IPLogRepository {
	return &redisIPLogRepository{client: client, ttl: ttl}
}

func ipLogKey(ip string) string {
	return ipLogKeyPrefix + ip
}

func (r *redisIPLogRepository) Get(ctx context.Context, ip string) (*models.IPLog, error) {
	return readIPLog(ctx, r.client, ip)
}

type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func readIPLog(ctx context.Context, c hashReader, ip string) (*models.IPLog, error) {
	vals, err := c.HGetAll(ctx, ipLogKey(ip)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read ip log: %w", err)
	}
	if len(vals) == 0 {
		return nil, interfaces.ErrNotFound
	}

	count, err := strconv.Atoi(vals["request_count"])
	if err != nil {
		return nil, fmt.Errorf("corrupt request_count for %s: %w", ip, err)
	}
	nanos, err := strconv.ParseInt(vals["last_request_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt last_request_at for %s: %w", ip, err)
	}

	return &models.IPLog{
		IPAddress:     ip,
		RequestCount:  count,
		LastRequestAt: time.Unix(0, nanos).UTC(),
	}, nil
}

func (r *redisIPLogRepository) Insert(ctx context.Context, l *models.IPLog) (bool, error) {
	key := ipLogKey(l.IPAddress)
	inserted := false

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			r.write(ctx, pipe, l)
			return nil
		})
		if err == nil {
			inserted = true
		}
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert ip log: %w", err)
	}
	return inserted, nil
}

func (r *redisIPLogRepository) CompareAndSwap(ctx context.Context, prev, next *models.IPLog) (bool, error) {
	key := ipLogKey(prev.IPAddress)
	swapped := false

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readIPLog(ctx, tx, prev.IPAddress)
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if current.RequestCount != prev.RequestCount || !current.LastRequestAt.Equal(prev.LastRequestAt) {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			r.write(ctx, pipe, next)
			return nil
		})
		if err == nil {
			swapped = true
		}
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to update ip log: %w", err)
	}
	return swapped, nil
}

func (r *redisIPLogRepository) write(ctx context.Context, pipe redis.Pipeliner, l *models.IPLog) {
	key := ipLogKey(l.IPAddress)
	pipe.HSet(ctx, key,
		"request_count", l.RequestCount,
		"last_request_at", l.LastRequestAt.UnixNano(),
	)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
}
