package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/raushankrgupta/music-profile-api/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix  = "profile:"
	defaultTTL = 5 * time.Minute

	// tombstoneVersion outranks every real version, so a deleted profile
	// cannot be re-cached by a read that raced the delete.
	tombstoneVersion int64 = math.MaxInt64
)

var lookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "profile_cache_lookups_total",
		Help: "Profile cache lookups by result",
	},
	[]string{"result"}, // hit, miss, error
)

// setIfNewer stores {v, d} in the hash unless it already holds a higher
// version. KEYS[1] = key, ARGV = version, data, ttl in ms.
var setIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'v')
if cur and tonumber(cur) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'd', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// ProfileCache is a read-through cache for single-profile lookups.
// Entries are versioned by the profile's last write time, so a slow reader
// never replaces a newer entry. A nil *ProfileCache is valid and caches nothing.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache connects to Redis. An empty addr disables caching.
func NewProfileCache(ctx context.Context, addr, password string, ttl time.Duration) (*ProfileCache, error) {
	if addr == "" {
		log.Info().Msg("REDIS_ADDR is empty, profile cache is disabled")
		return nil, nil
	}

	if ttl <= 0 {
		ttl = defaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	log.Info().Str("addr", addr).Dur("ttl", ttl).Msg("Redis profile cache enabled")
	return &ProfileCache{client: client, ttl: ttl}, nil
}

func key(id string) string { return keyPrefix + id }

// version orders writes of the same profile.
func version(p *models.Profile) int64 {
	if p.UpdatedAt != nil {
		return p.UpdatedAt.UnixMilli()
	}
	return p.CreatedAt.UnixMilli()
}

// Get returns the cached profile, or false on a miss.
func (c *ProfileCache) Get(ctx context.Context, id string) (*models.Profile, bool) {
	if c == nil {
		return nil, false
	}

	val, err := c.client.HGet(ctx, key(id), "d").Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			lookups.WithLabelValues("miss").Inc()
		} else {
			lookups.WithLabelValues("error").Inc()
			log.Warn().Err(err).Str("profile_id", id).Msg("cache read failed")
		}
		return nil, false
	}
	// deleted profile
	if len(val) == 0 {
		lookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var p models.Profile
	if err := json.Unmarshal(val, &p); err != nil {
		lookups.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("profile_id", id).Msg("cache entry is corrupt")
		return nil, false
	}
	lookups.WithLabelValues("hit").Inc()
	return &p, true
}

// Set caches p unless a newer version of it is already cached.
func (c *ProfileCache) Set(ctx context.Context, p *models.Profile) {
	if c == nil || p == nil {
		return
	}

	b, err := json.Marshal(p)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode profile for cache")
		return
	}
	c.write(ctx, p.ID.Hex(), version(p), b)
}

// Invalidate marks a deleted profile so no later Set can bring it back
// before the entry expires.
func (c *ProfileCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	c.write(ctx, id, tombstoneVersion, nil)
}

func (c *ProfileCache) write(ctx context.Context, id string, v int64, data []byte) {
	err := setIfNewer.Run(ctx, c.client, []string{key(id)},
		strconv.FormatInt(v, 10), data, c.ttl.Milliseconds()).Err()
	if err != nil {
		log.Warn().Err(err).Str("profile_id", id).Msg("cache write failed")
	}
}

func (c *ProfileCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
