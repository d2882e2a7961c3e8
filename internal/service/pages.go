package service

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/salesintel/sales_radar/internal/render"
	"github.com/salesintel/sales_radar/pkg/model"
)

const researchTimeout = 60 * time.Second

// renderPage writes a fully rendered view, or a 500 when the template
// breaks. Rendering is buffered so a failure never leaks a partial page.
func (s *IntelService) renderPage(w http.ResponseWriter, name string, p *render.Page) {
	out, err := s.rnd.RenderPage(name, p)
	if err != nil {
		s.log.Errorf("render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}

// guard enforces the navigation rule: report-dependent views without a
// current report bounce back to the input page.
func (s *IntelService) guard(w http.ResponseWriter, r *http.Request) *model.Report {
	report := s.ucReport.Current()
	if report == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil
	}
	return report
}

// Home serves the input page. Any path the router did not match also lands
// here via the catch-all and is redirected to the root.
func (s *IntelService) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	recent, err := s.ucReport.Recent(r.Context(), recentReportLimit)
	if err != nil {
		s.log.Warnf("list recent reports: %v", err)
	}
	s.renderPage(w, "input", &render.Page{
		Title:   "New Report",
		Active:  "input",
		Report:  s.ucReport.Current(),
		Loading: s.ucReport.IsLoading(),
		Recent:  recent,
		Error:   r.URL.Query().Get("error"),
	})
}

func (s *IntelService) Overview(w http.ResponseWriter, r *http.Request) {
	report := s.guard(w, r)
	if report == nil {
		return
	}
	s.renderPage(w, "overview", &render.Page{
		Title: "Overview", Active: "overview", Report: report,
	})
}

func (s *IntelService) Industries(w http.ResponseWriter, r *http.Request) {
	report := s.guard(w, r)
	if report == nil {
		return
	}
	s.renderPage(w, "industries", &render.Page{
		Title: "Target Industries", Active: "industries", Report: report,
	})
}

// IndustryDetail resolves the positional industry index from the path.
// Non-numeric, negative and out-of-range indexes behave exactly like the
// missing-report case: a redirect to the input page.
func (s *IntelService) IndustryDetail(w http.ResponseWriter, r *http.Request) {
	report := s.guard(w, r)
	if report == nil {
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/industries/")
	idx, err := strconv.Atoi(raw)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	industry := report.Industry(idx)
	if industry == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	s.renderPage(w, "industry", &render.Page{
		Title:         industry.Name,
		Active:        "industries",
		Report:        report,
		Industry:      industry,
		IndustryIndex: idx,
	})
}

func (s *IntelService) Personas(w http.ResponseWriter, r *http.Request) {
	report := s.guard(w, r)
	if report == nil {
		return
	}
	s.renderPage(w, "personas", &render.Page{
		Title: "Buyer Personas", Active: "personas", Report: report,
	})
}

func (s *IntelService) ContentStrategy(w http.ResponseWriter, r *http.Request) {
	report := s.guard(w, r)
	if report == nil {
		return
	}
	s.renderPage(w, "content_strategy", &render.Page{
		Title: "Content Strategy", Active: "content-strategy", Report: report,
	})
}

func (s *IntelService) Technical(w http.ResponseWriter, r *http.Request) {
	report := s.guard(w, r)
	if report == nil {
		return
	}
	s.renderPage(w, "technical", &render.Page{
		Title: "Technical Deep Dive", Active: "technical", Report: report,
	})
}

func (s *IntelService) Competition(w http.ResponseWriter, r *http.Request) {
	report := s.guard(w, r)
	if report == nil {
		return
	}
	s.renderPage(w, "competition", &render.Page{
		Title: "Competition", Active: "competition", Report: report,
	})
}

func (s *IntelService) ContentHub(w http.ResponseWriter, r *http.Request) {
	assets, err := s.ucContent.List(r.Context())
	if err != nil {
		s.log.Warnf("list assets: %v", err)
	}
	s.renderPage(w, "content_hub", &render.Page{
		Title:  "Content Hub",
		Active: "content-hub",
		Report: s.ucReport.Current(),
		Assets: assets,
		Error:  r.URL.Query().Get("error"),
	})
}

func (s *IntelService) LiveAssistant(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "live_assistant", &render.Page{
		Title:  "Live Assistant",
		Active: "live-assistant",
		Report: s.ucReport.Current(),
	})
}

// MarketResearch renders the research page and, when a query is present,
// runs it through the agent. Agent failures become a visible message on the
// page rather than an error response.
func (s *IntelService) MarketResearch(w http.ResponseWriter, r *http.Request) {
	p := &render.Page{
		Title:  "Market Research",
		Active: "market-research",
		Report: s.ucReport.Current(),
	}

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		p.Query = q
		ctx, cancel := context.WithTimeout(r.Context(), researchTimeout)
		defer cancel()
		answer, err := s.agent.Ask(ctx, q)
		if err != nil {
			s.log.Warnf("research query failed: %v", err)
			p.Error = "Sorry, I encountered an error trying to research that topic."
		} else {
			p.Answer = answer
		}
	}

	s.renderPage(w, "market_research", p)
}

func (s *IntelService) CompanyProfile(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "company_profile", &render.Page{
		Title:  "Company Profile",
		Active: "company-profile",
		Report: s.ucReport.Current(),
		Error:  r.URL.Query().Get("error"),
	})
}

func (s *IntelService) UserProfile(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "user_profile", &render.Page{
		Title:  "User Profile",
		Active: "user-profile",
		Report: s.ucReport.Current(),
		Error:  r.URL.Query().Get("error"),
	})
}
