package search

import "context"

// Searcher is the common interface over web search providers.
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

type Request struct {
	Query             string
	Topic             string // "news" or "general"
	MaxResults        int
	IncludeRawContent bool
	StartDate         string // Format: YYYY-MM-DD
	EndDate           string // Format: YYYY-MM-DD
}

type Response struct {
	Results []Result
}

type Result struct {
	Title         string
	URL           string
	Content       string
	RawContent    string
	Score         float64
	PublishedDate string
}
