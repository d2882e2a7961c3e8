// Package service exposes the report pipeline over HTTP: server-rendered
// HTML views, form endpoints the views post to, and a small JSON API.
package service

import (
	"context"
	"net/http"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/salesintel/sales_radar/internal/biz"
	"github.com/salesintel/sales_radar/internal/export"
	"github.com/salesintel/sales_radar/internal/render"
	"github.com/salesintel/sales_radar/pkg/assistant"
	"github.com/salesintel/sales_radar/pkg/research"
)

const recentReportLimit = 10

type IntelService struct {
	ucReport  *biz.ReportUseCase
	ucUser    *biz.UserUseCase
	ucContent *biz.ContentUseCase
	rnd       *render.Renderer
	exporter  *export.Exporter
	agent     *research.Agent
	chatModel model.BaseChatModel

	// One live assistant session per process, opened lazily on the first
	// stream request and torn down by the stop endpoint.
	mu   sync.Mutex
	live *assistant.Session

	log *log.Helper
}

func NewIntelService(
	ucReport *biz.ReportUseCase,
	ucUser *biz.UserUseCase,
	ucContent *biz.ContentUseCase,
	rnd *render.Renderer,
	exporter *export.Exporter,
	agent *research.Agent,
	chatModel model.BaseChatModel,
	logger log.Logger,
) *IntelService {
	return &IntelService{
		ucReport:  ucReport,
		ucUser:    ucUser,
		ucContent: ucContent,
		rnd:       rnd,
		exporter:  exporter,
		agent:     agent,
		chatModel: chatModel,
		log:       log.NewHelper(logger),
	}
}

// liveSession returns the open assistant session, creating one on demand.
// The persona is only consulted when a new session is opened; an already
// running conversation keeps its original framing.
func (s *IntelService) liveSession(persona string) *assistant.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		s.live = assistant.Open(s.chatModel, persona)
	}
	return s.live
}

func (s *IntelService) closeLiveSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live != nil {
		s.live.Close()
		s.live = nil
	}
}

// currentUsername reads the signed-in username from the session cookie, or
// returns "" for anonymous requests.
func currentUsername(r *http.Request) string {
	c, err := r.Cookie("session_user")
	if err != nil {
		return ""
	}
	return c.Value
}

// personaFor resolves the assistant persona for the request's user. Missing
// users and lookup failures degrade to the default persona.
func (s *IntelService) personaFor(ctx context.Context, r *http.Request) string {
	username := currentUsername(r)
	if username == "" {
		return ""
	}
	u, err := s.ucUser.GetProfile(ctx, username)
	if err != nil {
		return ""
	}
	return u.Persona
}
