package tools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	SearchToolName = "web_search"

	// DefaultSerperURL is the Serper Google search endpoint
	DefaultSerperURL = "https://google.serper.dev/search"

	defaultSearchResults = 5
	maxErrorBodyChars    = 200
)

// SearchTool runs web searches through Serper
type SearchTool struct {
	APIKey     string
	BaseURL    string
	MaxResults int
	Client     *http.Client
}

type serperRequest struct {
	Q string `json:"q"`
}

type serperResponse struct {
	AnswerBox *struct {
		Title   string `json:"title"`
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
	} `json:"answerBox"`
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

func NewSearchTool(apiKey string) *SearchTool {
	return &SearchTool{
		APIKey:     apiKey,
		BaseURL:    DefaultSerperURL,
		MaxResults: defaultSearchResults,
		Client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *SearchTool) Name() string { return SearchToolName }
func (t *SearchTool) Description() string {
	return "Search the internet for recent information. Returns titles, links and snippets of the top results."
}
func (t *SearchTool) Parameters() map[string]string {
	return map[string]string{"query": "Search query"}
}

func (t *SearchTool) Call(ctx context.Context, call ToolCall) ToolResult {
	query, ok := call.StringArg("query")
	if !ok {
		return ToolResult{Error: fmt.Errorf("missing argument: query")}
	}
	out, err := t.Search(ctx, query)
	if err != nil {
		return ToolResult{Error: err}
	}
	return ToolResult{Output: out}
}

// Search returns the top results for query formatted as text
func (t *SearchTool) Search(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(serperRequest{Q: query})
	if err != nil {
		return "", fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("X-API-KEY", t.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > maxErrorBodyChars {
			snippet = snippet[:maxErrorBodyChars]
		}
		return "", fmt.Errorf("search API error %d: %s", resp.StatusCode, snippet)
	}

	var data serperResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("failed to parse search response: %w", err)
	}
	return formatSearchResults(query, data, t.MaxResults), nil
}

func formatSearchResults(query string, data serperResponse, limit int) string {
	if limit <= 0 {
		limit = defaultSearchResults
	}

	var sb strings.Builder
	if ab := data.AnswerBox; ab != nil {
		answer := ab.Answer
		if answer == "" {
			answer = ab.Snippet
		}
		if answer != "" {
			sb.WriteString(fmt.Sprintf("Answer: %s\n---\n", answer))
		}
	}

	for i, r := range data.Organic {
		if i >= limit {
			break
		}
		sb.WriteString(fmt.Sprintf("Title: %s\nLink: %s\nSnippet: %s\n---\n", r.Title, r.Link, r.Snippet))
	}

	if sb.Len() == 0 {
		return fmt.Sprintf("No search results found for: %s", query)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
