package research

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesintel/sales_radar/pkg/search"
)

type fixedModel struct {
	reply    string
	lastUser string
}

func (m *fixedModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.lastUser = in[len(in)-1].Content
	return &schema.Message{Role: schema.Assistant, Content: m.reply}, nil
}

func (m *fixedModel) Stream(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, in, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

type fixedSearcher struct {
	results []search.Result
}

func (s *fixedSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	return &search.Response{Results: s.results}, nil
}

func TestAskGroundsAnswerInSearchResults(t *testing.T) {
	m := &fixedModel{reply: "Fintech is growing fast."}
	s := &fixedSearcher{results: []search.Result{
		{Title: "Fintech 2026", URL: "https://a.example", Content: "growth stats"},
		{Title: "Market sizing", URL: "https://b.example", Content: "numbers"},
	}}
	agent := NewAgent(m, s)

	answer, err := agent.Ask(context.Background(), "fintech trends")
	require.NoError(t, err)
	assert.Equal(t, "Fintech is growing fast.", answer.Text)
	require.Len(t, answer.Sources, 2)
	assert.Equal(t, "https://a.example", answer.Sources[0].URI)
	assert.Equal(t, "Fintech 2026", answer.Sources[0].Title)
	// The snippets are fed to the model alongside the question.
	assert.Contains(t, m.lastUser, "fintech trends")
	assert.Contains(t, m.lastUser, "growth stats")
}

func TestAskWithoutSearcher(t *testing.T) {
	m := &fixedModel{reply: "An ungrounded answer."}
	agent := NewAgent(m, nil)

	answer, err := agent.Ask(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "An ungrounded answer.", answer.Text)
	assert.Empty(t, answer.Sources)
}

func TestAskEmptyReplyFallsBack(t *testing.T) {
	agent := NewAgent(&fixedModel{reply: "   "}, nil)

	answer, err := agent.Ask(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "I couldn't find any information on that.", answer.Text)
}
