package server

import (
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/salesintel/sales_radar/internal/conf"
	"github.com/salesintel/sales_radar/internal/service"
)

// NewHTTPServer builds the HTTP server: HTML views on clean URLs, form and
// SSE endpoints under /api, and a JSON API group. The catch-all prefix
// route is registered last so every unknown path redirects to the input
// page.
func NewHTTPServer(c *conf.Server, s *service.IntelService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	// HTML views.
	srv.HandleFunc("/", s.Home)
	srv.HandleFunc("/overview", s.Overview)
	srv.HandleFunc("/industries", s.Industries)
	srv.HandleFunc("/industries/{id}", s.IndustryDetail)
	srv.HandleFunc("/personas/title", s.Personas)
	srv.HandleFunc("/content-strategy", s.ContentStrategy)
	srv.HandleFunc("/technical", s.Technical)
	srv.HandleFunc("/competition", s.Competition)
	srv.HandleFunc("/content-hub", s.ContentHub)
	srv.HandleFunc("/live-assistant", s.LiveAssistant)
	srv.HandleFunc("/market-research", s.MarketResearch)
	srv.HandleFunc("/company-profile", s.CompanyProfile)
	srv.HandleFunc("/user-profile", s.UserProfile)

	// Form and streaming endpoints the views talk to.
	srv.HandleFunc("/api/reports", s.CreateReport)
	srv.HandleFunc("/api/reports/export", s.ExportReport)
	srv.HandleFunc("/api/assets", s.AddAsset)
	srv.HandleFunc("/api/register", s.Register)
	srv.HandleFunc("/api/login", s.Login)
	srv.HandleFunc("/api/profile", s.UpdateProfile)
	srv.HandleFunc("/api/assistant/stream", s.AssistantStream)
	srv.HandleFunc("/api/assistant/stop", s.AssistantStop)

	// JSON API.
	api := srv.Route("/api/v1")
	api.GET("/reports/current", s.CurrentReport)
	api.GET("/reports/recent", s.RecentReports)
	api.GET("/research", s.Research)

	// Unknown paths land on the input page.
	srv.HandlePrefix("/", nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.Redirect(w, r, "/", nethttp.StatusFound)
	}))

	return srv
}
