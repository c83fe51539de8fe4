// Package redis caches tagging results in redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"experimentallabor.de/gertag/types"
	"experimentallabor.de/gertag/utils"
	"github.com/bsm/redislock"
	"github.com/go-redis/redis/v8"
	"github.com/kelseyhightower/envconfig"
)

type DB int
type ReleaseLock func() error

type Client struct {
	client         redis.UniversalClient
	lockExpiration time.Duration
	ttl            time.Duration
}

type Config struct {
	LockExpirationSeconds   int     `envconfig:"GERTAG_REDIS_LOCK_EXPIRATION" default:"3"`
	TTLSeconds              int     `envconfig:"GERTAG_REDIS_TTL" default:"86400"`
	Host                    string  `envconfig:"GERTAG_REDIS_HOST" required:"true"`
	Port                    string  `envconfig:"GERTAG_REDIS_PORT" required:"true"`
	HASentinelPort          string  `envconfig:"GERTAG_REDIS_HA_SENTINEL_PORT" default:"26379"`
	HASentinelMasterName    string  `envconfig:"GERTAG_REDIS_HA_MASTER_NAME" default:"mymaster"`
	Password                string  `envconfig:"GERTAG_REDIS_AUTH_PASSWORD" default:""`
	AuthRequired            bool    `envconfig:"GERTAG_REDIS_AUTH_REQUIRED" default:"false"`
	HAMode                  bool    `envconfig:"GERTAG_REDIS_HA_MODE" default:"false"`
	HASentinelSocketTimeout float32 `envconfig:"GERTAG_REDIS_SOCKET_TIMEOUT" default:"0.5"`
}

func NewClient(db DB) (*Client, error) {
	cfg, err := readEnvironment()
	if err != nil {
		return nil, err
	}
	var client redis.UniversalClient
	if cfg.HAMode {
		client = CreateClusterClient(cfg, db)
	} else {
		client = CreateClient(cfg, db)
	}
	return NewClientFrom(client, cfg), nil
}

// NewClientFrom wraps an existing redis connection.
func NewClientFrom(client redis.UniversalClient, cfg *Config) *Client {
	return &Client{
		client:         client,
		lockExpiration: time.Duration(cfg.LockExpirationSeconds) * time.Second,
		ttl:            time.Duration(cfg.TTLSeconds) * time.Second,
	}
}

func CreateClusterClient(cfg *Config, db DB) *redis.ClusterClient {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.HASentinelPort)
	timeout := time.Duration(float64(cfg.HASentinelSocketTimeout) * float64(time.Second))
	options := redis.FailoverOptions{
		SentinelAddrs: []string{addr},
		ReadTimeout:   timeout,
		WriteTimeout:  timeout,
		MaxRetries:    6,
		DB:            int(db),
		MasterName:    cfg.HASentinelMasterName,
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewFailoverClusterClient(&options)
}

func CreateClient(cfg *Config, db DB) *redis.Client {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	options := redis.Options{
		Addr:       addr,
		MaxRetries: 6,
		DB:         int(db),
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewClient(&options)
}

// CacheKey identifies the tagging of a token sequence by a given model.
func CacheKey(modelID string, words []string) string {
	return fmt.Sprintf("tag:%s:%016x", modelID, utils.HashSequence(words))
}

// Get returns the cached tagging stored under key. The boolean is false on a
// cache miss.
func (client *Client) Get(ctx context.Context, key string) ([]types.TaggedToken, bool, error) {
	b, err := client.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var tagged []types.TaggedToken
	if err := json.Unmarshal(b, &tagged); err != nil {
		return nil, false, fmt.Errorf("cached value %s: %w", key, err)
	}
	return tagged, true, nil
}

func (client *Client) Set(ctx context.Context, key string, tagged []types.TaggedToken) error {
	b, err := json.Marshal(tagged)
	if err != nil {
		return err
	}
	return client.client.Set(ctx, key, b, client.ttl).Err()
}

// Lock obtains a lock on key, retrying for up to 20 seconds.
func (client *Client) Lock(ctx context.Context, key string) (ReleaseLock, error) {
	lockCl := redislock.New(client.client)
	str := redislock.LimitRetry(redislock.LinearBackoff(time.Second), 20)
	lockKey := fmt.Sprintf("lock:%s", key)
	lock, err := lockCl.Obtain(ctx, lockKey, client.lockExpiration, &redislock.Options{RetryStrategy: str})
	if err != nil {
		return nil, err
	}
	return func() error {
		return lock.Release(ctx)
	}, nil
}

func (client *Client) Close() error {
	return client.client.Close()
}

func readEnvironment() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	// envconfig accepts variables that are set but empty
	if cfg.Host == "" || cfg.Port == "" {
		return nil, errors.New("GERTAG_REDIS_HOST and GERTAG_REDIS_PORT must not be empty")
	}
	return &cfg, nil
}
