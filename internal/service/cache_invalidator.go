package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mykola-art/shopsTestTask/pkg/jobs"
)

const cacheInvalidationJob = "cache.invalidate"

// CacheInvalidator drops cached listings after writes. Patterns are handed to a
// background queue so a slow Redis never delays the write response; when the queue is
// stopped or full the pattern is invalidated inline.
type CacheInvalidator struct {
	cache  *CacheService
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewCacheInvalidator wires a queue whose handler deletes keys through cache.
func NewCacheInvalidator(cache *CacheService, cfg jobs.QueueConfig) *CacheInvalidator {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	inv := &CacheInvalidator{cache: cache, logger: cfg.Logger}
	inv.queue = jobs.NewQueue("cache-invalidation", inv.handle, cfg)
	return inv
}

// Start begins consuming invalidation jobs.
func (i *CacheInvalidator) Start(ctx context.Context) {
	i.queue.Start(ctx)
}

// Stop halts the workers. Later invalidations run inline.
func (i *CacheInvalidator) Stop() {
	i.queue.Stop()
}

// Invalidate schedules removal of every key matching patterns.
func (i *CacheInvalidator) Invalidate(ctx context.Context, patterns ...string) {
	if i == nil || !i.cache.Enabled() {
		return
	}
	for _, p := range patterns {
		job := jobs.Job{ID: uuid.NewString(), Type: cacheInvalidationJob, Payload: p}
		err := i.queue.TryEnqueue(job)
		if err == nil {
			continue
		}
		i.logger.Debug("invalidating cache inline", zap.String("pattern", p), zap.Error(err))
		// Errors are already logged by the cache service.
		_ = i.cache.Invalidate(ctx, p)
	}
}

func (i *CacheInvalidator) handle(ctx context.Context, job jobs.Job) error {
	p, ok := job.Payload.(string)
	if !ok {
		i.logger.Error("dropping malformed invalidation job", zap.String("job_id", job.ID), zap.Any("payload", job.Payload))
		return nil
	}
	if err := i.cache.Invalidate(ctx, p); err != nil {
		return fmt.Errorf("invalidate %s: %w", p, err)
	}
	return nil
}
