// LLMClient - Simple wrapper around providers.

package llm

import (
	"context"
)

// Client wraps a Provider with a simple interface.
type Client struct {
	provider Provider
}

// NewClient creates a new LLM client from a provider.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// Complete sends a chat completion request and returns just the content.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	response, err := c.provider.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

// CompleteWithUsage sends a chat completion request and returns content with token usage.
func (c *Client) CompleteWithUsage(ctx context.Context, messages []ChatMessage) (string, *TokenUsage, error) {
	response, err := c.provider.Complete(ctx, messages)
	if err != nil {
		return "", nil, err
	}
	return response.Content, response.Usage, nil
}

// StreamComplete streams a chat completion.
func (c *Client) StreamComplete(ctx context.Context, messages []ChatMessage, chunks chan<- string) (*TokenUsage, error) {
	return c.provider.StreamComplete(ctx, messages, chunks)
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}
