package export

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/salesintel/sales_radar/internal/conf"
	"github.com/salesintel/sales_radar/internal/render"
	"github.com/salesintel/sales_radar/pkg/model"
)

var (
	// ErrNoReport means there is nothing to export yet.
	ErrNoReport = errors.New("no report loaded")
	// ErrEmptyDocument means the long-form renderer produced no content.
	ErrEmptyDocument = errors.New("rendered document is empty")
	// ErrRendererUnavailable means the wkhtmltopdf binary could not be found.
	ErrRendererUnavailable = errors.New("pdf renderer unavailable")
)

const (
	defaultMarginInches = 0.5
	defaultDpi          = 192
)

// Exporter turns the current report into a saved PDF file. Validation and
// renderer setup happen synchronously so the caller gets a real error for
// the three refusal cases; the actual conversion and file write run in a
// background goroutine whose completion nobody tracks.
type Exporter struct {
	cfg *conf.Export
	rnd *render.Renderer
	log *log.Helper
}

func NewExporter(cfg *conf.Export, rnd *render.Renderer, logger log.Logger) *Exporter {
	if cfg == nil {
		cfg = &conf.Export{}
	}
	return &Exporter{
		cfg: cfg,
		rnd: rnd,
		log: log.NewHelper(logger),
	}
}

// Filename derives the output filename from the company name: runs of
// whitespace collapse to a single underscore and the fixed suffix is
// appended. An unnamed company falls back to "Company".
func Filename(r *model.Report) string {
	name := "Company"
	if r != nil {
		if fields := strings.Fields(r.CompanyProfile.Name); len(fields) > 0 {
			name = strings.Join(fields, "_")
		}
	}
	return name + "_Full_Report.pdf"
}

// Export renders the long-form document and schedules the PDF write. It
// returns the filename the background save will use, or one of the three
// refusal errors without starting any work.
func (e *Exporter) Export(report *model.Report) (string, error) {
	if report == nil {
		return "", ErrNoReport
	}

	doc, err := e.rnd.FullReport(report)
	if err != nil {
		return "", err
	}
	if len(bytes.TrimSpace(doc)) == 0 {
		return "", ErrEmptyDocument
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		e.log.Warnf("wkhtmltopdf not found: %v", err)
		return "", ErrRendererUnavailable
	}

	margin := e.cfg.MarginInches
	if margin <= 0 {
		margin = defaultMarginInches
	}
	dpi := int(e.cfg.Dpi)
	if dpi <= 0 {
		dpi = defaultDpi
	}

	// wkhtmltopdf takes margins in millimetres.
	mm := uint(math.Round(margin * 25.4))
	pdfg.MarginTop.Set(mm)
	pdfg.MarginBottom.Set(mm)
	pdfg.MarginLeft.Set(mm)
	pdfg.MarginRight.Set(mm)
	pdfg.Dpi.Set(uint(dpi))
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(doc))
	page.EnableLocalFileAccess.Set(false)
	pdfg.AddPage(page)

	filename := Filename(report)
	outPath := filepath.Join(e.cfg.OutputDir, filename)

	go func() {
		if e.cfg.OutputDir != "" {
			if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
				e.log.Errorf("create export dir %s: %v", e.cfg.OutputDir, err)
				return
			}
		}
		if err := pdfg.Create(); err != nil {
			e.log.Errorf("render pdf %s: %v", filename, err)
			return
		}
		if err := pdfg.WriteFile(outPath); err != nil {
			e.log.Errorf("write pdf %s: %v", outPath, err)
			return
		}
		e.log.Infof("exported %s", outPath)
	}()

	return filename, nil
}
