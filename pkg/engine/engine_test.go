package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/salesintel/sales_radar/pkg/config"
)

// scriptedModel replays a fixed sequence of replies and errors.
type scriptedModel struct {
	replies []string
	errs    []error
	calls   int
}

func (m *scriptedModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	reply := ""
	if i < len(m.replies) {
		reply = m.replies[i]
	}
	return &schema.Message{Role: schema.Assistant, Content: reply}, nil
}

func (m *scriptedModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func testEngine(m model.BaseChatModel) *Engine {
	return &Engine{
		cfg:       &config.Config{},
		chatModel: m,
		limiter:   rate.NewLimiter(rate.Inf, 1),
	}
}

const validPayload = `{
	"companyProfile": {"name": "Acme Cloud", "summary": "Sells clouds."},
	"overview": {"solutionOverview": "Cloud sales platform."},
	"industries": [{"name": "Healthcare", "matchScore": 90}],
	"personas": {"titles": [{"title": "VP Sales", "type": "Economic Buyer"}]},
	"competition": {"competitors": [{"name": "Us", "type": "Category Leader"}]},
	"technical": {"architecture": {"dataFlow": "ingest then score"}}
}`

func TestGenerateStructuredDecodesPayload(t *testing.T) {
	m := &scriptedModel{replies: []string{validPayload}}
	e := testEngine(m)

	payload, err := e.generateStructured(context.Background(), "https://acme.example", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Acme Cloud", payload.CompanyProfile.Name)
	assert.Len(t, payload.Industries, 1)
	assert.Equal(t, 1, m.calls)
}

func TestGenerateStructuredStripsMarkdownFences(t *testing.T) {
	m := &scriptedModel{replies: []string{"```json\n" + validPayload + "\n```"}}
	e := testEngine(m)

	payload, err := e.generateStructured(context.Background(), "https://acme.example", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Acme Cloud", payload.CompanyProfile.Name)
}

func TestGenerateStructuredRetriesOnBadJSON(t *testing.T) {
	m := &scriptedModel{replies: []string{"not json at all", validPayload}}
	e := testEngine(m)

	payload, err := e.generateStructured(context.Background(), "https://acme.example", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, m.calls)
	assert.Equal(t, "Acme Cloud", payload.CompanyProfile.Name)
}

func TestGenerateStructuredFailsFastOnOtherErrors(t *testing.T) {
	m := &scriptedModel{errs: []error{errors.New("401 unauthorized")}}
	e := testEngine(m)

	_, err := e.generateStructured(context.Background(), "https://acme.example", "", "", "")
	assert.Error(t, err)
	assert.Equal(t, 1, m.calls)
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("  {\"a\":1}  "))
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, isRateLimited(errors.New("status 429")))
	assert.True(t, isRateLimited(errors.New("Too Many Requests")))
	assert.False(t, isRateLimited(errors.New("connection refused")))
}

func TestOrGeneral(t *testing.T) {
	assert.Equal(t, "General", orGeneral(""))
	assert.Equal(t, "Enterprise", orGeneral("Enterprise"))
}
