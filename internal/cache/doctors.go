// Package cache holds a Redis read-through cache for medical staff documents.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-api/internal/models"
)

type DoctorSource interface {
	FindDoctor(ctx context.Context, id int64) (*models.Doctor, error)
}

// DoctorCache serves FindDoctor from Redis and falls through to the source on
// a miss. Redis failures degrade to the source; they are logged, not returned.
type DoctorCache struct {
	redis  *redis.Client
	source DoctorSource
	ttl    time.Duration
	logger zerolog.Logger
}

func NewDoctorCache(client *redis.Client, source DoctorSource, ttl time.Duration, logger zerolog.Logger) *DoctorCache {
	return &DoctorCache{redis: client, source: source, ttl: ttl, logger: logger}
}

func (c *DoctorCache) key(id int64) string {
	return fmt.Sprintf("clinic:doctor:%d", id)
}

func (c *DoctorCache) FindDoctor(ctx context.Context, id int64) (*models.Doctor, error) {
	data, err := c.redis.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		var d models.Doctor
		if err := json.Unmarshal(data, &d); err == nil {
			return &d, nil
		}
		c.logger.Warn().Int64("doctor_id", id).Msg("discarding undecodable cached doctor")
	case !errors.Is(err, redis.Nil):
		c.logger.Warn().Err(err).Int64("doctor_id", id).Msg("doctor cache read failed")
	}

	d, err := c.source.FindDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Set(ctx, d)
	return d, nil
}

// Set stores d under its id.
func (c *DoctorCache) Set(ctx context.Context, d *models.Doctor) {
	data, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, c.key(d.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("doctor_id", d.ID).Msg("doctor cache write failed")
	}
}

func (c *DoctorCache) Invalidate(ctx context.Context, id int64) error {
	if err := c.redis.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache: invalidate doctor %d: %w", id, err)
	}
	return nil
}
