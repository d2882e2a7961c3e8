// Package engine produces sales intelligence reports for a solution URL by
// combining page extraction, optional web search grounding and a structured
// LLM call.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	readability "github.com/go-shiori/go-readability"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/salesintel/sales_radar/pkg/config"
	"github.com/salesintel/sales_radar/pkg/logger"
	dm "github.com/salesintel/sales_radar/pkg/model"
	"github.com/salesintel/sales_radar/pkg/search"
	"github.com/salesintel/sales_radar/pkg/search/factory"
)

const (
	maxPageContext    = 6000
	maxSearchSnippets = 5
)

// Engine generates reports through an OpenAI-compatible chat model.
type Engine struct {
	cfg       *config.Config
	chatModel model.BaseChatModel
	searcher  search.Searcher
	limiter   *rate.Limiter
}

// NewEngine wires the chat model, the rate limiter and (when configured)
// the search client. A missing search configuration is not an error: the
// engine then grounds the prompt on the page content alone.
func NewEngine(cfg *config.Config) (*Engine, error) {
	ctx := context.Background()

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("chat model init failed: %w", err)
	}

	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	burst := cfg.Concurrency.QPS
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(limit, burst)

	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		logger.Log.Warnf("search grounding disabled: %v", err)
		searcher = nil
	}

	return &Engine{
		cfg:       cfg,
		chatModel: chatModel,
		searcher:  searcher,
		limiter:   limiter,
	}, nil
}

// ChatModel exposes the underlying chat model so other collaborators (the
// research agent, the live assistant) can share one client and one quota.
func (e *Engine) ChatModel() model.BaseChatModel {
	return e.chatModel
}

// Searcher exposes the configured search client, or nil when grounding is
// disabled.
func (e *Engine) Searcher() search.Searcher {
	return e.searcher
}

// Generate produces a complete report for the URL. The call is fire-and-await:
// no dedup of concurrent requests for the same URL and no cancellation beyond
// ctx. Retries apply only to rate-limit rejections from the model.
func (e *Engine) Generate(ctx context.Context, url, marketSize string) (*dm.Report, error) {
	logger.Log.Infof("generating report for %s (market size: %s)", url, orGeneral(marketSize))

	pageText := e.fetchPageContext(url)
	searchContext := e.fetchSearchContext(ctx, url)

	payload, err := e.generateStructured(ctx, url, marketSize, pageText, searchContext)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &dm.Report{
		ID:              uuid.NewString(),
		URL:             url,
		MarketSize:      marketSize,
		Timestamp:       now.UnixMilli(),
		CompanyProfile:  payload.CompanyProfile,
		Overview:        payload.Overview,
		Industries:      payload.Industries,
		Personas:        payload.Personas,
		Competition:     payload.Competition,
		Technical:       payload.Technical,
		ContentStrategy: dm.ContentStrategy{},
	}
	// The model never supplies a logo; the field stays a placeholder.
	report.CompanyProfile.LogoURL = ""

	logger.Log.Infof("report %s generated for %s", report.ID, url)
	return report, nil
}

// reportPayload is the model's output shape: the report minus the metadata
// the engine stamps itself.
type reportPayload struct {
	CompanyProfile dm.CompanyProfile    `json:"companyProfile"`
	Overview       dm.Overview          `json:"overview"`
	Industries     []dm.Industry        `json:"industries"`
	Personas       dm.Personas          `json:"personas"`
	Competition    dm.Competition       `json:"competition"`
	Technical      dm.TechnicalAnalysis `json:"technical"`
}

func (e *Engine) generateStructured(ctx context.Context, url, marketSize, pageText, searchContext string) (*reportPayload, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target Solution URL: %s\n", url)
	fmt.Fprintf(&sb, "Target Market Size: %s\n", orGeneral(marketSize))
	if pageText != "" {
		fmt.Fprintf(&sb, "\nExtracted page content:\n%s\n", pageText)
	}
	if searchContext != "" {
		fmt.Fprintf(&sb, "\nWeb research snippets:\n%s\n", searchContext)
	}

	maxRetries := 3
	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		messages := []*schema.Message{
			{Role: schema.System, Content: systemPrompt},
			{Role: schema.User, Content: sb.String()},
		}

		resp, err := e.chatModel.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) {
				lastErr = err
				if i < maxRetries {
					time.Sleep(baseDelay * time.Duration(1<<i))
					continue
				}
			}
			return nil, err
		}

		var payload reportPayload
		if err := json.Unmarshal([]byte(cleanJSON(resp.Content)), &payload); err != nil {
			lastErr = err
			if i < maxRetries {
				continue
			}
			return nil, fmt.Errorf("json unmarshal: %w", err)
		}
		return &payload, nil
	}
	return nil, lastErr
}

// fetchPageContext extracts the readable text of the target page. Failures
// degrade to an empty context rather than failing the generation.
func (e *Engine) fetchPageContext(url string) string {
	article, err := readability.FromURL(url, 30*time.Second)
	if err != nil {
		logger.Log.Warnf("failed to extract page content for %s: %v", url, err)
		return ""
	}
	text := article.TextContent
	if len(text) > maxPageContext {
		text = text[:maxPageContext]
	}
	return text
}

func (e *Engine) fetchSearchContext(ctx context.Context, url string) string {
	if e.searcher == nil {
		return ""
	}

	resp, err := e.searcher.Search(ctx, &search.Request{
		Query:      url + " reviews competitors pricing",
		Topic:      "general",
		MaxResults: maxSearchSnippets,
	})
	if err != nil {
		logger.Log.Warnf("search grounding failed for %s: %v", url, err)
		return ""
	}

	var sb strings.Builder
	for i, item := range resp.Results {
		if i >= maxSearchSnippets {
			break
		}
		fmt.Fprintf(&sb, "- %s: %s\n", item.Title, item.Content)
	}
	return sb.String()
}

// cleanJSON strips the markdown fences some models wrap around structured
// output despite instructions.
func cleanJSON(content string) string {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func isRateLimited(err error) bool {
	return strings.Contains(err.Error(), "429") ||
		strings.Contains(strings.ToLower(err.Error()), "too many requests")
}

func orGeneral(marketSize string) string {
	if marketSize == "" {
		return "General"
	}
	return marketSize
}
