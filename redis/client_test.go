package redis

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	key := CacheKey("model-1", []string{"Der", "Hund"})
	require.True(t, strings.HasPrefix(key, "tag:model-1:"))
	require.Len(t, strings.TrimPrefix(key, "tag:model-1:"), 16)

	require.Equal(t, key, CacheKey("model-1", []string{"Der", "Hund"}))
	require.NotEqual(t, key, CacheKey("model-2", []string{"Der", "Hund"}))
	require.NotEqual(t, key, CacheKey("model-1", []string{"DerHund"}))
}

func TestReadEnvironment(t *testing.T) {
	t.Setenv("GERTAG_REDIS_HOST", "cache")
	t.Setenv("GERTAG_REDIS_PORT", "6379")
	t.Setenv("GERTAG_REDIS_TTL", "60")

	cfg, err := readEnvironment()
	require.NoError(t, err)
	require.Equal(t, "cache", cfg.Host)
	require.Equal(t, 3, cfg.LockExpirationSeconds)

	client := NewClientFrom(CreateClient(cfg, 0), cfg)
	defer client.Close()
	require.Equal(t, time.Minute, client.ttl)
	require.Equal(t, 3*time.Second, client.lockExpiration)
}

func TestReadEnvironmentRequiresHost(t *testing.T) {
	t.Setenv("GERTAG_REDIS_HOST", "")
	t.Setenv("GERTAG_REDIS_PORT", "6379")
	_, err := readEnvironment()
	require.Error(t, err)

	require.NoError(t, os.Unsetenv("GERTAG_REDIS_HOST"))
	_, err = readEnvironment()
	require.Error(t, err)

	t.Setenv("GERTAG_REDIS_HOST", "cache")
	t.Setenv("GERTAG_REDIS_PORT", "")
	_, err = readEnvironment()
	require.Error(t, err)
}
