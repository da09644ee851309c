// Package idempotency guards the webhook pipeline against redeliveries of the
// same payment event. Payment gateways retry deliveries, and two concurrent
// deliveries of one transaction must not both confirm the order or dispatch
// the ticket email.
package idempotency

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Store interface {
	// AcquireProcessing takes the short-lived processing lock for the
	// transaction. It returns false when the transaction was already
	// processed or is currently in flight.
	AcquireProcessing(ctx context.Context, transactionID string) (bool, error)
	// ReleaseProcessing drops the processing lock without marking the
	// transaction processed, so a later delivery may retry.
	ReleaseProcessing(ctx context.Context, transactionID string) error
	// MarkProcessed writes the durable processed marker and drops the lock.
	MarkProcessed(ctx context.Context, transactionID string, outcome string) error
}

type redisStore struct {
	logger    *logrus.Logger
	client    *goredis.Client
	lockTTL   time.Duration
	markerTTL time.Duration
}

func NewRedisStore(logger *logrus.Logger, client *goredis.Client, lockTTL, markerTTL time.Duration) Store {
	return &redisStore{
		logger:    logger,
		client:    client,
		lockTTL:   lockTTL,
		markerTTL: markerTTL,
	}
}

func processingKey(transactionID string) string {
	return fmt.Sprintf("fulfillment:processing:%s", transactionID)
}

func processedKey(transactionID string) string {
	return fmt.Sprintf("fulfillment:processed:%s", transactionID)
}

// AcquireProcessing implements Store.
func (s *redisStore) AcquireProcessing(ctx context.Context, transactionID string) (bool, error) {
	processed, err := s.client.Exists(ctx, processedKey(transactionID)).Result()
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return false, err
	}

	if processed > 0 {
		return false, nil
	}

	acquired, err := s.client.SetNX(ctx, processingKey(transactionID), "1", s.lockTTL).Result()
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return false, err
	}

	return acquired, nil
}

// ReleaseProcessing implements Store.
func (s *redisStore) ReleaseProcessing(ctx context.Context, transactionID string) error {
	if err := s.client.Del(ctx, processingKey(transactionID)).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return err
	}

	return nil
}

// MarkProcessed implements Store.
func (s *redisStore) MarkProcessed(ctx context.Context, transactionID string, outcome string) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, processedKey(transactionID), outcome, s.markerTTL)
	pipe.Del(ctx, processingKey(transactionID))

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return err
	}

	return nil
}
