package service

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// redirectWithError bounces the browser back with a user-visible message in
// the query string.
func redirectWithError(w http.ResponseWriter, r *http.Request, target, msg string) {
	http.Redirect(w, r, target+"?error="+url.QueryEscape(msg), http.StatusFound)
}

func backOr(r *http.Request, fallback string) string {
	if ref := r.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return fallback
}

// CreateReport handles the input form: generate (or load from cache) the
// report for the submitted URL, then move the browser to the overview. The
// request blocks for the duration of the generation call.
func (s *IntelService) CreateReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/", "invalid form submission")
		return
	}
	target := strings.TrimSpace(r.FormValue("url"))
	if target == "" {
		redirectWithError(w, r, "/", "Please enter a solution URL.")
		return
	}
	marketSize := strings.TrimSpace(r.FormValue("marketSize"))

	if _, err := s.ucReport.Generate(r.Context(), target, marketSize); err != nil {
		s.log.Errorf("report generation failed for %s: %v", target, err)
		redirectWithError(w, r, "/", "Report generation failed. Please try again.")
		return
	}
	http.Redirect(w, r, "/overview", http.StatusFound)
}

// ExportReport starts the asynchronous PDF export of the current report.
// The three refusal conditions come back as a visible message; a started
// export redirects immediately without waiting for the file.
func (s *IntelService) ExportReport(w http.ResponseWriter, r *http.Request) {
	back := backOr(r, "/overview")
	filename, err := s.exporter.Export(s.ucReport.Current())
	if err != nil {
		redirectWithError(w, r, back, "Export unavailable: "+err.Error())
		return
	}
	s.log.Infof("export started: %s", filename)
	http.Redirect(w, r, back, http.StatusFound)
}

func (s *IntelService) AddAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/content-hub", "invalid form submission")
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	link := strings.TrimSpace(r.FormValue("url"))
	if link == "" {
		redirectWithError(w, r, "/content-hub", "An asset URL is required.")
		return
	}
	if name == "" {
		name = link
	}
	if err := s.ucContent.Add(r.Context(), name, link, "url"); err != nil {
		s.log.Errorf("add asset: %v", err)
		redirectWithError(w, r, "/content-hub", "Could not save the asset.")
		return
	}
	http.Redirect(w, r, "/content-hub", http.StatusFound)
}

func (s *IntelService) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/user-profile", "invalid form submission")
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		redirectWithError(w, r, "/user-profile", "Username and password are required.")
		return
	}
	if err := s.ucUser.Register(r.Context(), username, password); err != nil {
		s.log.Errorf("register %s: %v", username, err)
		redirectWithError(w, r, "/user-profile", "Registration failed.")
		return
	}
	http.Redirect(w, r, "/user-profile", http.StatusFound)
}

// Login signs the user in and stores the session cookies. A failed login
// registers the account on the fly when the username is unknown, then
// retries, which keeps the single-user flow friction free.
func (s *IntelService) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/user-profile", "invalid form submission")
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		redirectWithError(w, r, "/user-profile", "Username and password are required.")
		return
	}

	token, err := s.ucUser.Login(r.Context(), username, password)
	if err != nil && errors.IsNotFound(err) {
		if regErr := s.ucUser.Register(r.Context(), username, password); regErr == nil {
			token, err = s.ucUser.Login(r.Context(), username, password)
		}
	}
	if err != nil {
		redirectWithError(w, r, "/user-profile", "Sign-in failed. Check your credentials.")
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "session_user", Value: username, Path: "/", HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: "token", Value: token, Path: "/", HttpOnly: true})
	http.Redirect(w, r, "/user-profile", http.StatusFound)
}

// UpdateProfile saves company details and persona for the signed-in user.
// Both the company-profile and the user-profile forms post here; absent
// fields keep their previous values empty rather than being merged.
func (s *IntelService) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	back := backOr(r, "/user-profile")
	username := currentUsername(r)
	if username == "" {
		redirectWithError(w, r, back, "Sign in to save your profile.")
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, back, "invalid form submission")
		return
	}
	err := s.ucUser.UpdateProfile(r.Context(), username,
		strings.TrimSpace(r.FormValue("company")),
		strings.TrimSpace(r.FormValue("companyUrl")),
		strings.TrimSpace(r.FormValue("persona")),
	)
	if err != nil {
		s.log.Errorf("update profile for %s: %v", username, err)
		redirectWithError(w, r, back, "Could not save the profile.")
		return
	}
	http.Redirect(w, r, back, http.StatusFound)
}

// AssistantStream answers one utterance over SSE, reusing the process-wide
// live session so the conversation keeps its history across requests.
func (s *IntelService) AssistantStream(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sess := s.liveSession(s.personaFor(r.Context(), r))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	err := sess.Send(r.Context(), q, func(chunk string) error {
		for _, line := range strings.Split(chunk, "\n") {
			fmt.Fprintf(w, "data: %s\n", line)
		}
		fmt.Fprint(w, "\n")
		flusher.Flush()
		return nil
	})
	if err != nil {
		s.log.Warnf("assistant stream: %v", err)
		fmt.Fprint(w, "event: error\ndata: assistant unavailable\n\n")
		flusher.Flush()
		return
	}
	fmt.Fprint(w, "event: done\ndata: \n\n")
	flusher.Flush()
}

// AssistantStop tears the live session down; any in-flight stream is
// cancelled mid-utterance.
func (s *IntelService) AssistantStop(w http.ResponseWriter, r *http.Request) {
	s.closeLiveSession()
	w.WriteHeader(http.StatusNoContent)
}

// CurrentReport returns the session's report as JSON.
func (s *IntelService) CurrentReport(ctx khttp.Context) error {
	report := s.ucReport.Current()
	if report == nil {
		return errors.NotFound("REPORT_NOT_FOUND", "no report loaded")
	}
	return ctx.Result(http.StatusOK, report)
}

// RecentReports lists archived report summaries as JSON.
func (s *IntelService) RecentReports(ctx khttp.Context) error {
	recent, err := s.ucReport.Recent(ctx, recentReportLimit)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, recent)
}

// Research answers a one-shot research query as JSON.
func (s *IntelService) Research(ctx khttp.Context) error {
	q := strings.TrimSpace(ctx.Query().Get("q"))
	if q == "" {
		return errors.BadRequest("MISSING_QUERY", "q parameter is required")
	}
	answer, err := s.agent.Ask(ctx, q)
	if err != nil {
		return errors.InternalServer("RESEARCH_FAILED", err.Error())
	}
	return ctx.Result(http.StatusOK, answer)
}
