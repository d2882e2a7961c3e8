package biz

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/salesintel/sales_radar/pkg/model"
)

// ErrCacheMiss is returned by ReportCache.Load for absent, expired and
// unparseable entries alike; callers cannot and should not distinguish.
var ErrCacheMiss = errors.New("report cache miss")

// ReportCache is durable, TTL-bounded storage of reports keyed by their
// source URL.
type ReportCache interface {
	// Save overwrites any prior entry for the same URL. Implementations are
	// best-effort: callers may ignore the returned error.
	Save(ctx context.Context, r *model.Report) error
	// Load returns the cached report for the URL, evicting it first when it
	// has outlived its TTL. Misses of any kind return ErrCacheMiss.
	Load(ctx context.Context, url string) (*model.Report, error)
}

// ReportArchive records a summary row per generated report for the history
// listing. Like the cache, writes are best-effort.
type ReportArchive interface {
	Record(ctx context.Context, r *model.Report) error
	List(ctx context.Context, limit int) ([]*ArchiveEntry, error)
}

type ArchiveEntry struct {
	ID        string
	URL       string
	Company   string
	Timestamp int64
}

// Generator produces a new report for a URL via the external model call.
type Generator interface {
	Generate(ctx context.Context, url, marketSize string) (*model.Report, error)
}

// ReportUseCase orchestrates the session slot, the cache and the generation
// engine. In-memory session state is the source of truth for the running
// process; cache and archive writes beside it never fail a request.
type ReportUseCase struct {
	session *ReportSession
	cache   ReportCache
	archive ReportArchive
	gen     Generator
	log     *log.Helper
}

func NewReportUseCase(session *ReportSession, cache ReportCache, archive ReportArchive, gen Generator, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{
		session: session,
		cache:   cache,
		archive: archive,
		gen:     gen,
		log:     log.NewHelper(logger),
	}
}

// Current returns the report held by the session, or nil.
func (uc *ReportUseCase) Current() *model.Report {
	return uc.session.Current()
}

func (uc *ReportUseCase) IsLoading() bool {
	return uc.session.IsLoading()
}

// SetCurrent installs the report as the session's current entry and writes
// it through to the cache. A failed cache write is logged and swallowed;
// the session update already happened and stands.
func (uc *ReportUseCase) SetCurrent(ctx context.Context, r *model.Report) {
	uc.session.Set(r)
	if err := uc.cache.Save(ctx, r); err != nil {
		uc.log.Warnf("failed to persist report for %s: %v", r.URL, err)
	}
}

// Load looks the URL up in the cache. A hit installs the loaded report as
// the current session entry as a side effect; it is not written back to the
// cache. Any kind of miss returns ErrCacheMiss.
func (uc *ReportUseCase) Load(ctx context.Context, url string) (*model.Report, error) {
	r, err := uc.cache.Load(ctx, url)
	if err != nil {
		return nil, err
	}
	uc.session.Set(r)
	return r, nil
}

// Generate serves a report for the URL: cache hit when a non-expired entry
// exists, otherwise a fresh generation call. The loading flag brackets the
// whole operation and is cleared on every exit path. Concurrent calls are
// not deduplicated; whichever resolves last owns the session and the cache.
func (uc *ReportUseCase) Generate(ctx context.Context, url, marketSize string) (*model.Report, error) {
	uc.session.SetLoading(true)
	defer uc.session.SetLoading(false)

	if r, err := uc.Load(ctx, url); err == nil {
		uc.log.Infof("serving cached report for %s", url)
		return r, nil
	}

	r, err := uc.gen.Generate(ctx, url, marketSize)
	if err != nil {
		return nil, err
	}

	uc.SetCurrent(ctx, r)
	if uc.archive != nil {
		if err := uc.archive.Record(ctx, r); err != nil {
			uc.log.Warnf("failed to archive report for %s: %v", url, err)
		}
	}
	return r, nil
}

// Recent lists archived report summaries, newest first.
func (uc *ReportUseCase) Recent(ctx context.Context, limit int) ([]*ArchiveEntry, error) {
	if uc.archive == nil {
		return nil, nil
	}
	return uc.archive.List(ctx, limit)
}
