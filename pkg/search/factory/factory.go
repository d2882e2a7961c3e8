package factory

import (
	"fmt"

	"github.com/salesintel/sales_radar/pkg/config"
	"github.com/salesintel/sales_radar/pkg/search"
	"github.com/salesintel/sales_radar/pkg/searxng"
	"github.com/salesintel/sales_radar/pkg/tavily"
)

// NewSearcher builds the configured search client. An empty provider falls
// back to tavily when a key is present.
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	provider := cfg.Search.Provider
	if provider == "" {
		if cfg.Search.Tavily.APIKey != "" {
			provider = "tavily"
		} else {
			return nil, fmt.Errorf("search provider not configured")
		}
	}

	switch provider {
	case "tavily":
		if cfg.Search.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Search.Tavily.APIKey), nil

	case "searxng":
		if cfg.Search.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
