package biz

import (
	"context"
	"errors"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesintel/sales_radar/pkg/model"
)

type fakeCache struct {
	store    map[string]*model.Report
	saves    int
	failSave bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]*model.Report{}}
}

func (c *fakeCache) Save(ctx context.Context, r *model.Report) error {
	c.saves++
	if c.failSave {
		return errors.New("redis down")
	}
	c.store[r.URL] = r
	return nil
}

func (c *fakeCache) Load(ctx context.Context, url string) (*model.Report, error) {
	r, ok := c.store[url]
	if !ok {
		return nil, ErrCacheMiss
	}
	return r, nil
}

type fakeArchive struct {
	records []*model.Report
}

func (a *fakeArchive) Record(ctx context.Context, r *model.Report) error {
	a.records = append(a.records, r)
	return nil
}

func (a *fakeArchive) List(ctx context.Context, limit int) ([]*ArchiveEntry, error) {
	var out []*ArchiveEntry
	for _, r := range a.records {
		out = append(out, &ArchiveEntry{ID: r.ID, URL: r.URL})
	}
	return out, nil
}

type fakeGenerator struct {
	calls  int
	report *model.Report
	err    error
}

func (g *fakeGenerator) Generate(ctx context.Context, url, marketSize string) (*model.Report, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	r := *g.report
	r.URL = url
	r.MarketSize = marketSize
	return &r, nil
}

func testReport(id, url string) *model.Report {
	r := &model.Report{ID: id, URL: url, Timestamp: 1756700000000}
	r.CompanyProfile.Name = "Acme"
	return r
}

func newTestUseCase(cache *fakeCache, archive *fakeArchive, gen *fakeGenerator) *ReportUseCase {
	return NewReportUseCase(NewReportSession(), cache, archive, gen, log.DefaultLogger)
}

func TestSetCurrentWritesThrough(t *testing.T) {
	cache := newFakeCache()
	uc := newTestUseCase(cache, &fakeArchive{}, &fakeGenerator{})

	r := testReport("r1", "https://acme.example")
	uc.SetCurrent(context.Background(), r)

	assert.Same(t, r, uc.Current())
	assert.Same(t, r, cache.store["https://acme.example"])
}

func TestSetCurrentSwallowsCacheFailure(t *testing.T) {
	cache := newFakeCache()
	cache.failSave = true
	uc := newTestUseCase(cache, &fakeArchive{}, &fakeGenerator{})

	r := testReport("r1", "https://acme.example")
	uc.SetCurrent(context.Background(), r)

	// The session update stands even though the write failed.
	assert.Same(t, r, uc.Current())
}

func TestLoadActivatesSessionWithoutSaveBack(t *testing.T) {
	cache := newFakeCache()
	r := testReport("r1", "https://acme.example")
	cache.store[r.URL] = r
	uc := newTestUseCase(cache, &fakeArchive{}, &fakeGenerator{})

	got, err := uc.Load(context.Background(), r.URL)
	require.NoError(t, err)
	assert.Same(t, r, got)
	assert.Same(t, r, uc.Current())
	assert.Zero(t, cache.saves)
}

func TestLoadMiss(t *testing.T) {
	uc := newTestUseCase(newFakeCache(), &fakeArchive{}, &fakeGenerator{})

	_, err := uc.Load(context.Background(), "https://nothing.example")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, uc.Current())
}

func TestGenerateServesCacheHit(t *testing.T) {
	cache := newFakeCache()
	cached := testReport("r1", "https://acme.example")
	cache.store[cached.URL] = cached
	gen := &fakeGenerator{report: testReport("r2", "")}
	uc := newTestUseCase(cache, &fakeArchive{}, gen)

	got, err := uc.Generate(context.Background(), cached.URL, "")
	require.NoError(t, err)
	assert.Same(t, cached, got)
	assert.Zero(t, gen.calls)
}

func TestGenerateStoresAndArchives(t *testing.T) {
	cache := newFakeCache()
	archive := &fakeArchive{}
	gen := &fakeGenerator{report: testReport("r1", "")}
	uc := newTestUseCase(cache, archive, gen)

	got, err := uc.Generate(context.Background(), "https://acme.example", "Enterprise")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "Enterprise", got.MarketSize)
	assert.Same(t, got, uc.Current())
	assert.Same(t, got, cache.store["https://acme.example"])
	require.Len(t, archive.records, 1)
	assert.Same(t, got, archive.records[0])
}

func TestGenerateClearsLoadingOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	uc := newTestUseCase(newFakeCache(), &fakeArchive{}, gen)

	_, err := uc.Generate(context.Background(), "https://acme.example", "")
	assert.Error(t, err)
	assert.False(t, uc.IsLoading())
	assert.Nil(t, uc.Current())
}

func TestLastWriteWins(t *testing.T) {
	cache := newFakeCache()
	uc := newTestUseCase(cache, &fakeArchive{}, &fakeGenerator{})

	r1 := testReport("r1", "https://acme.example")
	r2 := testReport("r2", "https://acme.example")
	uc.SetCurrent(context.Background(), r1)
	uc.SetCurrent(context.Background(), r2)

	assert.Same(t, r2, uc.Current())
	assert.Same(t, r2, cache.store["https://acme.example"])
}
