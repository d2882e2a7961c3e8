package data

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesintel/sales_radar/internal/biz"
	"github.com/salesintel/sales_radar/pkg/model"
)

func newTestCache(t *testing.T, now func() time.Time) (*reportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	if now == nil {
		now = time.Now
	}
	return newReportCacheWithClock(rdb, log.DefaultLogger, now), mr
}

func sampleReport(url string, ts int64) *model.Report {
	return &model.Report{
		ID:        "r-1",
		URL:       url,
		Timestamp: ts,
		CompanyProfile: model.CompanyProfile{Name: "Acme Corp", Summary: "summary"},
		Industries: []model.Industry{
			{Name: "Healthcare", MatchScore: 92},
		},
		Competition: model.Competition{
			Competitors: []model.Competitor{
				{Name: "Us", Type: "Category Leader"},
				{Name: "Globex", Type: "Advantage"},
			},
		},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, nil)
	ctx := context.Background()

	r := sampleReport("https://example.com/product", time.Now().UnixMilli())
	require.NoError(t, c.Save(ctx, r))

	got, err := c.Load(ctx, "https://example.com/product")
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t, nil)

	_, err := c.Load(context.Background(), "https://nowhere.example")
	assert.ErrorIs(t, err, biz.ErrCacheMiss)
}

func TestCacheExpiryBoundary(t *testing.T) {
	now := time.Now()
	c, mr := newTestCache(t, func() time.Time { return now })
	ctx := context.Background()

	ttl := 30 * 24 * time.Hour

	// One millisecond past the window: treated as absent and evicted.
	expired := sampleReport("https://old.example", now.Add(-ttl-time.Millisecond).UnixMilli())
	require.NoError(t, c.Save(ctx, expired))

	_, err := c.Load(ctx, "https://old.example")
	assert.ErrorIs(t, err, biz.ErrCacheMiss)
	assert.False(t, mr.Exists(cacheKey("https://old.example")), "expired entry must be evicted on load")

	// One millisecond inside the window: still served.
	fresh := sampleReport("https://fresh.example", now.Add(-ttl+time.Millisecond).UnixMilli())
	require.NoError(t, c.Save(ctx, fresh))

	got, err := c.Load(ctx, "https://fresh.example")
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, got.ID)
}

func TestCacheKeyIsolation(t *testing.T) {
	c, _ := newTestCache(t, nil)
	ctx := context.Background()

	a := sampleReport("https://a.example", time.Now().UnixMilli())
	require.NoError(t, c.Save(ctx, a))

	_, err := c.Load(ctx, "https://b.example")
	assert.ErrorIs(t, err, biz.ErrCacheMiss, "save for A must not be visible to load for B")
}

func TestCacheKeyWhitespaceNormalization(t *testing.T) {
	c, _ := newTestCache(t, nil)
	ctx := context.Background()

	r := sampleReport("  https://example.com/padded  ", time.Now().UnixMilli())
	require.NoError(t, c.Save(ctx, r))

	got, err := c.Load(ctx, "https://example.com/padded")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	got, err = c.Load(ctx, "   https://example.com/padded")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestCacheKeyFormat(t *testing.T) {
	assert.Equal(t, "report_v4_https%3A%2F%2Fexample.com", cacheKey(" https://example.com "))
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t, nil)

	require.NoError(t, mr.Set(cacheKey("https://bad.example"), "{not json"))

	_, err := c.Load(context.Background(), "https://bad.example")
	assert.ErrorIs(t, err, biz.ErrCacheMiss)
}

func TestCacheOverwrite(t *testing.T) {
	c, _ := newTestCache(t, nil)
	ctx := context.Background()

	first := sampleReport("https://example.com", time.Now().UnixMilli())
	second := sampleReport("https://example.com", time.Now().UnixMilli())
	second.ID = "r-2"

	require.NoError(t, c.Save(ctx, first))
	require.NoError(t, c.Save(ctx, second))

	got, err := c.Load(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "r-2", got.ID)
}

func TestCacheZeroTimestampIsMiss(t *testing.T) {
	c, _ := newTestCache(t, nil)
	ctx := context.Background()

	r := sampleReport("https://zero.example", 0)
	require.NoError(t, c.Save(ctx, r))

	_, err := c.Load(ctx, "https://zero.example")
	assert.ErrorIs(t, err, biz.ErrCacheMiss)
}
