package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestCacheDisabledIsNoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	SetCached(ctx, StockSummaryDashboard, []byte("x"), time.Minute)
	_, ok := GetCached(ctx, StockSummaryDashboard)
	assert.False(t, ok)
	assert.False(t, IsHealthy())

	InvalidateStockSummaryCaches(ctx)
}

func TestSetAndGetCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	SetCached(ctx, StockSummaryDashboard, []byte(`{"totalLoans":3}`), time.Minute)

	data, ok := GetCached(ctx, StockSummaryDashboard)
	require.True(t, ok)
	assert.JSONEq(t, `{"totalLoans":3}`, string(data))

	mr.FastForward(2 * time.Minute)
	_, ok = GetCached(ctx, StockSummaryDashboard)
	assert.False(t, ok, "entry should expire after its TTL")
}

func TestInvalidateStockSummaryCaches(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	SetCached(ctx, StockSummaryDashboard, []byte("a"), time.Minute)
	SetCached(ctx, "stock_summary:other", []byte("b"), time.Minute)
	SetCached(ctx, "customers:list", []byte("c"), time.Minute)

	InvalidateStockSummaryCaches(ctx)

	assert.False(t, mr.Exists(StockSummaryDashboard))
	assert.False(t, mr.Exists("stock_summary:other"))
	assert.True(t, mr.Exists("customers:list"))
}

func TestInvalidateSettingCachesAlsoClearsStockSummary(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	SetCached(ctx, DateOverrideKey, []byte("2024-01-01"), time.Minute)
	SetCached(ctx, StockSummaryDashboard, []byte("a"), time.Minute)

	InvalidateSettingCaches(ctx)

	assert.False(t, mr.Exists(DateOverrideKey))
	assert.False(t, mr.Exists(StockSummaryDashboard))
}

func TestIsHealthy(t *testing.T) {
	setupMiniredis(t)
	assert.True(t, IsHealthy())
}
