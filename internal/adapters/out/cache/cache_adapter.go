package cache

import (
	"context"
	"sync"
	"time"

	"github.com/clinibox/box-availability-service/internal/config"
	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/ports/out"
	lru "github.com/hashicorp/golang-lru/v2"
)

type availabilityCache struct {
	cache *lru.Cache[string, []domain.AvailabilityRecord]
}

type doctorsCache struct {
	doctors   []domain.Doctor
	timestamp time.Time
	ttl       time.Duration
}

type CacheAdapter struct {
	availabilityCache *availabilityCache
	doctorsCache      *doctorsCache
	mu                sync.RWMutex
	logger            out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruAvailability, err := lru.New[string, []domain.AvailabilityRecord](cfg.Cache.AvailabilitySize)
	if err != nil {
		logger.Error("cache.availability.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.AvailabilitySize,
		})
		return nil, err
	}

	return &CacheAdapter{
		availabilityCache: &availabilityCache{cache: lruAvailability},
		doctorsCache: &doctorsCache{
			ttl: time.Duration(cfg.Cache.DirectoryTTLMin) * time.Minute,
		},
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetAvailability(ctx context.Context, key string) ([]domain.AvailabilityRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records, exists := c.availabilityCache.cache.Get(key)
	if !exists {
		c.logger.Debug("cache.availability.get.miss", out.LogFields{
			"key": key,
		})
		return nil, false
	}

	c.logger.Debug("cache.availability.get.hit", out.LogFields{
		"key":          key,
		"recordsCount": len(records),
	})
	return records, true
}

func (c *CacheAdapter) StoreAvailability(ctx context.Context, key string, records []domain.AvailabilityRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.availabilityCache.cache.Add(key, records)
}

func (c *CacheAdapter) InvalidateAvailability(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.availabilityCache.cache.Purge()
	c.logger.Debug("cache.availability.purged", out.LogFields{})
}

// Caché del directorio de médicos

func (c *CacheAdapter) GetDoctors(ctx context.Context) ([]domain.Doctor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.doctorsCache.doctors == nil || time.Since(c.doctorsCache.timestamp) > c.doctorsCache.ttl {
		return nil, false
	}

	return c.doctorsCache.doctors, true
}

func (c *CacheAdapter) StoreDoctors(ctx context.Context, doctors []domain.Doctor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctorsCache.doctors = doctors
	c.doctorsCache.timestamp = time.Now()
}

func (c *CacheAdapter) InvalidateDoctors(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctorsCache.doctors = nil
	c.doctorsCache.timestamp = time.Time{}
}
