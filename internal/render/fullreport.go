package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/salesintel/sales_radar/pkg/model"
)

// fullReportData is the long-form document's template payload. Competitor
// headers come from the single model-level derivation, the same one the
// competition view uses.
type fullReportData struct {
	Report      *model.Report
	CompA       string
	CompB       string
	GeneratedAt string
}

// FullReport assembles the complete report into one standalone, print-ready
// HTML document: cover page, executive summary, industries, personas,
// competition and technical deep dive, in that order. Page-break hints sit
// between the major sections; atomic blocks (one industry, one persona)
// carry break-avoidance hints so the paginator never splits them. The
// output is self-contained so the PDF renderer needs no external assets.
func (r *Renderer) FullReport(report *model.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to render")
	}

	compA, compB := report.Competition.CompetitorHeaders()
	data := &fullReportData{
		Report:      report,
		CompA:       compA,
		CompB:       compB,
		GeneratedAt: time.Now().Format("January 2, 2006"),
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "fullreport", data); err != nil {
		return nil, fmt.Errorf("render full report: %w", err)
	}
	return buf.Bytes(), nil
}
