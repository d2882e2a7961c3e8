package biz

import (
	"sync"

	"github.com/salesintel/sales_radar/pkg/model"
)

// ReportSession is the single authoritative slot for the report currently
// being displayed, shared by every view for the process lifetime. The slot
// is replaced wholesale, never mutated in place; concurrent replacement is
// last-write-wins.
type ReportSession struct {
	mu      sync.RWMutex
	current *model.Report
	loading bool
}

func NewReportSession() *ReportSession {
	return &ReportSession{}
}

// Current returns the active report, or nil when none has been loaded or
// generated yet.
func (s *ReportSession) Current() *model.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the slot unconditionally. Persistence is the use case's
// concern, not the session's.
func (s *ReportSession) Set(r *model.Report) {
	s.mu.Lock()
	s.current = r
	s.mu.Unlock()
}

// SetLoading sets the generation-in-progress flag. The flag is independent
// state: callers must clear it on every exit path, typically via defer.
func (s *ReportSession) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *ReportSession) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
