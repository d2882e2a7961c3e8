package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesintel/sales_radar/pkg/model"
)

func sampleReport() *model.Report {
	r := &model.Report{
		ID:        "r-1",
		URL:       "https://acme.example",
		Timestamp: 1756700000000,
	}
	r.CompanyProfile.Name = "Acme Cloud"
	r.CompanyProfile.Summary = "Acme sells cloud things."
	r.Overview.SolutionOverview = "A platform for selling clouds."
	r.Overview.IdealCustomerProfile = model.IdealCustomerProfile{
		Size: "Mid-market", Industry: "SaaS", PainPoints: "Slow pipelines",
	}
	r.Overview.Differentiators = []model.IconItem{
		{Icon: "bolt", Title: "Fast", Desc: "Very fast."},
	}
	r.Industries = []model.Industry{
		{Name: "Healthcare", MatchScore: 91, ImpactText: "Big impact",
			PainPoints: []model.IconItem{{Title: "Compliance", Desc: "HIPAA load"}},
			JobTitles:  []model.JobTitle{{Title: "CIO", Desc: "Owns budget"}}},
		{Name: "Finance", MatchScore: 76, ImpactText: "Medium impact"},
	}
	r.Personas.Titles = []model.PersonaTitle{
		{Title: "VP Sales", Type: "Economic Buyer",
			PainPoints: []string{"Quota pressure"},
			Objections: []string{"Too expensive"},
			Responses:  []string{"ROI in one quarter"}},
	}
	r.Competition.Competitors = []model.Competitor{
		{Name: model.SelfCompetitorName, Type: model.SelfCompetitorType, Description: "That's us"},
		{Name: "Rivalio", Type: "Challenger", Description: "Close rival"},
		{Name: "BigCorp", Type: "Incumbent", Description: "Legacy giant"},
	}
	r.Competition.Differentiation = []model.DifferentiationRow{
		{Feature: "Setup time", Us: "Minutes", CompA: "Days", CompB: "Weeks"},
	}
	r.Technical.Architecture = model.Architecture{
		DiagramDescription: "Three-tier", DataFlow: "Ingest then score",
		Infrastructure: []string{"Kubernetes", "Postgres"},
	}
	r.Technical.Security = model.Security{
		Compliance: []string{"SOC2"}, Encryption: "AES-256", AccessControl: "RBAC",
	}
	r.Technical.DeepFeatures = []model.TechnicalFeature{
		{Title: "Scoring", TechnicalDetail: "Gradient model", BusinessValue: "Better targeting"},
	}
	r.Technical.Implementation = model.Implementation{
		TimeToValue: "2 weeks", Requirements: []string{"SSO"},
	}
	r.Technical.Integrations = model.Integrations{
		Categories:      []model.IntegrationCategory{{Name: "CRM", Tools: []string{"Salesforce"}}},
		APICapabilities: "REST and webhooks",
	}
	return r
}

func TestRenderPageFillsCompetitorHeaders(t *testing.T) {
	rnd, err := New()
	require.NoError(t, err)

	p := &Page{Title: "Competition", Active: "competition", Report: sampleReport()}
	out, err := rnd.RenderPage("competition", p)
	require.NoError(t, err)

	assert.Equal(t, "Rivalio", p.CompA)
	assert.Equal(t, "BigCorp", p.CompB)
	html := string(out)
	assert.Contains(t, html, "Rivalio")
	assert.Contains(t, html, "BigCorp")
	// The self entry renders under the company name, never "Us".
	assert.Contains(t, html, "Acme Cloud")
}

func TestRenderPageHeaderFallbacks(t *testing.T) {
	rnd, err := New()
	require.NoError(t, err)

	r := sampleReport()
	r.Competition.Competitors = r.Competition.Competitors[:2]
	p := &Page{Title: "Competition", Active: "competition", Report: r}
	_, err = rnd.RenderPage("competition", p)
	require.NoError(t, err)

	assert.Equal(t, "Rivalio", p.CompA)
	assert.Equal(t, model.FallbackCompetitorB, p.CompB)
}

func TestRenderAllPages(t *testing.T) {
	rnd, err := New()
	require.NoError(t, err)

	r := sampleReport()
	pages := []string{
		"input", "overview", "industries", "personas", "competition",
		"technical", "content_strategy", "content_hub", "live_assistant",
		"market_research", "company_profile", "user_profile",
	}
	for _, name := range pages {
		p := &Page{Title: name, Active: name, Report: r}
		if name == "industry" {
			p.Industry = r.Industry(0)
		}
		out, err := rnd.RenderPage(name, p)
		require.NoError(t, err, name)
		assert.NotEmpty(t, out, name)
	}
}

func TestRenderIndustryDetail(t *testing.T) {
	rnd, err := New()
	require.NoError(t, err)

	r := sampleReport()
	p := &Page{Title: "Healthcare", Active: "industries", Report: r,
		Industry: r.Industry(0), IndustryIndex: 0}
	out, err := rnd.RenderPage("industry", p)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Healthcare")
	assert.Contains(t, html, "Compliance")
	assert.Contains(t, html, "CIO")
}

func TestFullReportContainsAllSections(t *testing.T) {
	rnd, err := New()
	require.NoError(t, err)

	out, err := rnd.FullReport(sampleReport())
	require.NoError(t, err)
	html := string(out)

	for _, want := range []string{
		"Sales Intelligence Report",
		"Executive Summary",
		"Target Industries",
		"Buyer Personas",
		"Competitive Landscape",
		"Technical Deep Dive",
		"full-report-print-container",
	} {
		assert.Contains(t, html, want)
	}
	// Major sections carry page-break hints; atomic blocks avoid splitting.
	assert.Contains(t, html, "page-break-after: always")
	assert.Contains(t, html, "page-break-inside: avoid")
	// Sections appear in document order.
	assert.Less(t,
		strings.Index(html, "Executive Summary"),
		strings.Index(html, "Target Industries"))
	assert.Less(t,
		strings.Index(html, "Buyer Personas"),
		strings.Index(html, "Competitive Landscape"))
}

func TestFullReportNilReport(t *testing.T) {
	rnd, err := New()
	require.NoError(t, err)

	_, err = rnd.FullReport(nil)
	assert.Error(t, err)
}
