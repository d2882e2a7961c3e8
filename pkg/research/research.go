// Package research implements the search-grounded market research agent: a
// thin pass-through that runs a web search and lets the chat model answer
// from the results.
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/salesintel/sales_radar/pkg/search"
)

const maxSources = 5

// Source is a grounding reference surfaced alongside the answer.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Answer is one agent reply.
type Answer struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
}

type Agent struct {
	chatModel model.BaseChatModel
	searcher  search.Searcher
}

// NewAgent builds the agent. The searcher may be nil, in which case answers
// are ungrounded and carry no sources.
func NewAgent(chatModel model.BaseChatModel, searcher search.Searcher) *Agent {
	return &Agent{chatModel: chatModel, searcher: searcher}
}

// Ask runs one query. Single-shot: no conversation memory, no retry.
func (a *Agent) Ask(ctx context.Context, query string) (*Answer, error) {
	var (
		sources []Source
		ground  strings.Builder
	)

	if a.searcher != nil {
		resp, err := a.searcher.Search(ctx, &search.Request{
			Query:      query,
			Topic:      "general",
			MaxResults: maxSources,
		})
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}
		for i, r := range resp.Results {
			if i >= maxSources {
				break
			}
			fmt.Fprintf(&ground, "Source %d (%s): %s\n%s\n\n", i+1, r.Title, r.URL, r.Content)
			sources = append(sources, Source{URI: r.URL, Title: r.Title})
		}
	}

	system := "You are a market research assistant. Answer concisely from the provided web sources; say so when the sources do not cover the question."
	user := query
	if ground.Len() > 0 {
		user = fmt.Sprintf("%s\n\nWeb sources:\n%s", query, ground.String())
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	resp, err := a.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		text = "I couldn't find any information on that."
	}

	return &Answer{Text: text, Sources: sources}, nil
}
