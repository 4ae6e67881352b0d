package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanlang/stock-api/pkg/config"
)

func TestNewClient_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, err := New(cfg)
	require.NoError(t, err)
	assert.False(t, client.Enabled())
	assert.NoError(t, client.Close())
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(Disabled(), KeyPrefix)
	limit := VendorRateLimit("VCI", 5)

	// When Redis is disabled, all requests should be allowed
	d, err := limiter.Allow(context.Background(), limit)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, limit.Limit, d.Remaining)
	assert.Zero(t, d.RetryAfter)
	assert.Equal(t, "vci", limit.Key)
	assert.NoError(t, limiter.Wait(context.Background(), limit))
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(Disabled(), KeyPrefix)
	ctx := context.Background()

	var result string
	found, err := cache.Get(ctx, "key", &result)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	assert.NoError(t, cache.Delete(ctx, "key"))
}

func TestGetOrSet_Disabled(t *testing.T) {
	cache := NewCache(Disabled(), KeyPrefix)
	calls := 0

	fn := func() ([]int, error) {
		calls++
		return []int{1, 2}, nil
	}

	got, err := GetOrSet(context.Background(), cache, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	_, err = GetOrSet(context.Background(), cache, "k", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "disabled cache must call through every time")

	boom := errors.New("boom")
	_, err = GetOrSet(context.Background(), cache, "k", time.Minute, func() ([]int, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestVendorRateLimit(t *testing.T) {
	limit := VendorRateLimit("TCBS", 0)
	assert.Equal(t, "tcbs", limit.Key)
	assert.Equal(t, 1, limit.Limit)
	assert.Equal(t, time.Second, limit.Window)
}

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"QuoteKey", QuoteKey("VCI", []string{"FPT", "VNM"}), "quote:VCI:FPT,VNM"},
		{"HistoryKey", HistoryKey("TCBS", "VNM", "2024-01-01", "2024-03-31", "1D"), "history:TCBS:VNM:2024-01-01:2024-03-31:1D"},
		{"CompanyKey", CompanyKey("VCI", "FPT"), "company:VCI:FPT"},
		{"ListingKey", ListingKey("VCI"), "listing:VCI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}
