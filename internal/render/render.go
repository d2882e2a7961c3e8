// Package render projects the report model into the HTML views. Every page
// is a read-only projection; no renderer mutates the report.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/salesintel/sales_radar/internal/biz"
	"github.com/salesintel/sales_radar/pkg/model"
	"github.com/salesintel/sales_radar/pkg/research"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"fmtDate": func(ms int64) string {
			return time.UnixMilli(ms).Format("2006-01-02 15:04")
		},
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page bundles what every view template receives.
type Page struct {
	Title   string
	Active  string
	Report  *model.Report
	Loading bool

	// Per-page payloads; only the relevant one is set.
	Industry      *model.Industry
	IndustryIndex int
	CompA         string
	CompB         string
	Recent        []*biz.ArchiveEntry
	Assets        []*biz.Asset
	Query         string
	Answer        *research.Answer
	GeneratedAt   string
	Error         string
}

// RenderPage executes the named page template into a buffer first so a
// template fault produces an error, not a half-written response.
func (r *Renderer) RenderPage(name string, p *Page) ([]byte, error) {
	if p.Report != nil {
		p.CompA, p.CompB = p.Report.Competition.CompetitorHeaders()
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, p); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
