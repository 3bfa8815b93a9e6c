package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/veildiary/internal/logging"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "veildiary:mappings:"
	genKeyPrefix = "veildiary:mappings-gen:"

	// genTTL bounds how long a generation counter lives without writes. It
	// must exceed any plausible List duration.
	genTTL = 24 * time.Hour
)

// setIfCurrent writes ARGV[2] to KEYS[1] with a PX of ARGV[3] only when the
// generation in KEYS[2] (missing counts as 0) equals ARGV[1].
const setIfCurrent = `
local cur = redis.call('GET', KEYS[2]) or '0'
if cur ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1`

// bumpGeneration advances the generation and drops the cached list in one step.
const bumpGeneration = `
local gen = redis.call('INCR', KEYS[2])
redis.call('PEXPIRE', KEYS[2], ARGV[1])
redis.call('DEL', KEYS[1])
return gen`

// redisClient is the part of *redis.Client the cache needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// RedisMappingCache keeps each user's list as one JSON value next to a
// generation counter.
type RedisMappingCache struct {
	client redisClient
	ttl    time.Duration
	logger logging.Logger
}

func NewRedisMappingCache(client redisClient, ttl time.Duration, logger logging.Logger) *RedisMappingCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisMappingCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("module", "mapping-cache"),
	}
}

// Key returns the redis key holding userID's list.
func Key(userID string) string {
	return keyPrefix + userID
}

// GenKey returns the redis key holding userID's generation.
func GenKey(userID string) string {
	return genKeyPrefix + userID
}

func (c *RedisMappingCache) Get(ctx context.Context, userID string) ([]*models.Mapping, int64, bool) {
	gen, err := c.generation(ctx, userID)
	if err != nil {
		c.logger.Warn(ctx, "cache generation read failed", "user_id", userID, "error", err)
		// -1 never matches, so the following Set is skipped
		return nil, -1, false
	}

	raw, err := c.client.Get(ctx, Key(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn(ctx, "cache get failed", "user_id", userID, "error", err)
		}
		return nil, gen, false
	}

	ms := make([]*models.Mapping, 0)
	if err := json.Unmarshal(raw, &ms); err != nil {
		c.logger.Warn(ctx, "cache value corrupt", "user_id", userID, "error", err)
		if err := c.client.Del(ctx, Key(userID)).Err(); err != nil {
			c.logger.Warn(ctx, "cache drop failed", "user_id", userID, "error", err)
		}
		return nil, gen, false
	}
	return ms, gen, true
}

func (c *RedisMappingCache) generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.client.Get(ctx, GenKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisMappingCache) Set(ctx context.Context, userID string, gen int64, ms []*models.Mapping) {
	if gen < 0 {
		return
	}
	if ms == nil {
		ms = []*models.Mapping{}
	}
	raw, err := json.Marshal(ms)
	if err != nil {
		c.logger.Warn(ctx, "cache encode failed", "user_id", userID, "error", err)
		return
	}

	stored, err := c.client.Eval(ctx, setIfCurrent,
		[]string{Key(userID), GenKey(userID)},
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		c.logger.Warn(ctx, "cache set failed", "user_id", userID, "error", err)
		return
	}
	if stored == 0 {
		c.logger.Debug(ctx, "cache set skipped, list changed meanwhile", "user_id", userID, "generation", gen)
	}
}

func (c *RedisMappingCache) Invalidate(ctx context.Context, userID string) error {
	err := c.client.Eval(ctx, bumpGeneration,
		[]string{Key(userID), GenKey(userID)},
		genTTL.Milliseconds(),
	).Err()
	if err != nil {
		c.logger.Warn(ctx, "cache invalidate failed", "user_id", userID, "error", err)
	}
	return err
}
