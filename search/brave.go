// Package search provides a Brave Web Search client used to enrich
// research prompts with real-world context.
//
// Information Hiding:
// - HTTP transport and authentication headers hidden
// - Response envelope decoding hidden behind Result
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const braveSearchURL = "https://api.search.brave.com/res/v1/web/search"

// Result is a single web search hit.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Client queries the Brave Web Search API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a search client with the given API key.
func NewClient(apiKey string, timeoutSecs uint64) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: braveSearchURL,
		client: &http.Client{
			Timeout: time.Duration(timeoutSecs) * time.Second,
		},
	}
}

// WithBaseURL overrides the API endpoint (used in tests).
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// braveResponse mirrors the subset of the Brave response envelope we use.
type braveResponse struct {
	Web struct {
		Results []Result `json:"results"`
	} `json:"web"`
}

// Search runs a web search and returns up to count results.
func (c *Client) Search(ctx context.Context, query string, count int) ([]Result, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if count <= 0 {
		count = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))
	params.Set("safesearch", "moderate")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned %s", resp.Status)
	}

	var envelope braveResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := envelope.Web.Results
	if len(results) > count {
		results = results[:count]
	}
	return results, nil
}

// FormatResults renders results as a text block for prompt inclusion.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n   %s\n   %s\n", i+1, r.Title, r.URL, r.Description)
	}
	return b.String()
}
