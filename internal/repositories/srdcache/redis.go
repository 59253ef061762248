package srdcache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/deck-forge/internal/entities/deck"
	"github.com/KirkDiggler/deck-forge/internal/errors"
	redisclient "github.com/KirkDiggler/deck-forge/internal/redis"
)

const (
	// Key pattern: srd:spell:{index}
	spellKeyPrefix = "srd:spell:"
	indexKey       = "srd:spells:index"

	errIndexEmpty = "spell index cannot be empty"
	errSpellNil   = "spell cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed SRD cache
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) GetIndex(ctx context.Context) ([]string, error) {
	raw, err := r.client.Get(ctx, indexKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("spell index not cached")
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get spell index from Redis")
	}

	var indexes []string
	if err := json.Unmarshal([]byte(raw), &indexes); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal spell index")
	}
	return indexes, nil
}

func (r *redisRepository) PutIndex(ctx context.Context, indexes []string) error {
	if len(indexes) == 0 {
		return errors.InvalidArgument("spell index list cannot be empty")
	}

	data, err := json.Marshal(indexes)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal spell index")
	}

	if err := r.client.Set(ctx, indexKey, data, r.ttl).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store spell index in Redis")
	}
	return nil
}

func (r *redisRepository) GetSpell(ctx context.Context, index string) (*deck.Spell, error) {
	if index == "" {
		return nil, errors.InvalidArgument(errIndexEmpty)
	}

	raw, err := r.client.Get(ctx, spellKeyPrefix+index).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("spell %s not cached", index)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get spell from Redis")
	}

	var spell deck.Spell
	if err := json.Unmarshal([]byte(raw), &spell); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeMalformedRecord, "cached spell %s is corrupt", index)
	}
	return &spell, nil
}

func (r *redisRepository) PutSpell(ctx context.Context, spell *deck.Spell) error {
	if spell == nil {
		return errors.InvalidArgument(errSpellNil)
	}
	if spell.Index == "" {
		return errors.InvalidArgument(errIndexEmpty)
	}

	data, err := json.Marshal(spell)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal spell %s", spell.Index)
	}

	if err := r.client.Set(ctx, spellKeyPrefix+spell.Index, data, r.ttl).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store spell in Redis")
	}
	return nil
}
