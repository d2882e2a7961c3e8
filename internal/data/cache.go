package data

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/salesintel/sales_radar/internal/biz"
	"github.com/salesintel/sales_radar/pkg/model"
)

// cacheFormatVersion tags every key. Bumping it orphans all prior entries,
// which is the whole migration story: old-versioned keys become unreachable
// and are never purged.
const cacheFormatVersion = "v4"

// reportTTL is the fixed validity window, measured from report.timestamp at
// load time only. There is no background sweep and no store-level expiry;
// entries for URLs that are never queried again leak by design.
const reportTTL = 30 * 24 * time.Hour

type reportCache struct {
	rdb *redis.Client
	log *log.Helper
	now func() time.Time
}

func NewReportCache(data *Data, logger log.Logger) biz.ReportCache {
	return &reportCache{
		rdb: data.rdb,
		log: log.NewHelper(logger),
		now: time.Now,
	}
}

// newReportCacheWithClock is the test seam for expiry-boundary cases.
func newReportCacheWithClock(rdb *redis.Client, logger log.Logger, now func() time.Time) *reportCache {
	return &reportCache{rdb: rdb, log: log.NewHelper(logger), now: now}
}

// cacheKey derives the storage key from a raw URL: trim, percent-encode,
// prefix with the format version. Encoding keeps the key byte-safe and
// injective, so distinct URLs can never collide after normalization.
func cacheKey(rawURL string) string {
	return "report_" + cacheFormatVersion + "_" + url.QueryEscape(strings.TrimSpace(rawURL))
}

func (c *reportCache) Save(ctx context.Context, r *model.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	key := cacheKey(r.URL)
	if err := c.rdb.Set(ctx, key, payload, 0).Err(); err != nil {
		return err
	}
	c.log.Debugf("report saved under key %s", key)
	return nil
}

func (c *reportCache) Load(ctx context.Context, rawURL string) (*model.Report, error) {
	key := cacheKey(rawURL)

	stored, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, biz.ErrCacheMiss
	}
	if err != nil {
		c.log.Warnf("failed to read cached report %s: %v", key, err)
		return nil, biz.ErrCacheMiss
	}

	var r model.Report
	if err := json.Unmarshal([]byte(stored), &r); err != nil {
		// Corrupt entry, indistinguishable from absence for the caller.
		c.log.Warnf("discarding unparseable cache entry %s: %v", key, err)
		return nil, biz.ErrCacheMiss
	}

	age := c.now().UnixMilli() - r.Timestamp
	if r.Timestamp == 0 || age >= reportTTL.Milliseconds() {
		c.log.Infof("cached report for %s expired, evicting", rawURL)
		if err := c.rdb.Del(ctx, key).Err(); err != nil {
			c.log.Warnf("failed to evict expired entry %s: %v", key, err)
		}
		return nil, biz.ErrCacheMiss
	}

	return &r, nil
}
