// Package genai generates structured process breakdowns for capability
// queries by prompting an Azure OpenAI chat-completion deployment. A Client
// owns one lazily-constructed connection bound to the configuration bundle
// in force at first use; rotating credentials mid-process requires a fresh
// Client, never an implicit re-authentication.
package genai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"

	"github.com/capmap-hq/capmap/secrets"
	"github.com/capmap-hq/capmap/tokens"
)

// Sampling parameters for breakdown generation. Low temperature and a high
// frequency penalty keep the output close to the few-shot schema.
const (
	genTemperature      = 0.2
	genMaxTokens        = 600
	genTopP             = 0.9
	genFrequencyPenalty = 0.8
)

// Result is the outcome of one generation call.
type Result struct {
	// Content is the generated breakdown with surrounding whitespace trimmed.
	Content string `json:"content"`
	// ContextTokens counts the rendered context-section block only; see the
	// note on workspaceContent.
	ContextTokens int `json:"context_tokens"`
	// ResponseTokens counts the generated content.
	ResponseTokens int `json:"response_tokens"`
	// FullContext is the system prompt and user message as sent, joined by
	// a newline.
	FullContext string `json:"full_context"`
}

// Client generates capability breakdowns. Construct one per configuration
// lifetime and inject it where needed; it is safe for concurrent use.
type Client struct {
	resolver    *secrets.Resolver
	countTokens func(string) int
	extraOpts   []option.RequestOption

	connOnce sync.Once
	conn     openai.Client
	bundle   secrets.Bundle
	connErr  error
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTokenCounter replaces the token accounting function (default:
// tokens.Count).
func WithTokenCounter(fn func(string) int) ClientOption {
	return func(c *Client) { c.countTokens = fn }
}

// WithRequestOptions appends SDK request options to the connection. Tests
// use this to point the client at a mock server.
func WithRequestOptions(opts ...option.RequestOption) ClientOption {
	return func(c *Client) { c.extraOpts = append(c.extraOpts, opts...) }
}

// NewClient creates a Client that resolves its configuration through the
// given resolver on first use.
func NewClient(resolver *secrets.Resolver, opts ...ClientOption) *Client {
	c := &Client{
		resolver:    resolver,
		countTokens: tokens.Count,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// connect resolves configuration and builds the connection exactly once.
// This is the single point where an incomplete bundle becomes a hard
// failure; the error, like the connection, is terminal for this Client.
func (c *Client) connect(ctx context.Context) (openai.Client, secrets.Bundle, error) {
	c.connOnce.Do(func() {
		c.bundle = c.resolver.Resolve(ctx)
		if missing := c.bundle.Missing(); len(missing) > 0 {
			c.connErr = &ConfigError{Missing: missing}
			return
		}
		opts := []option.RequestOption{
			azure.WithEndpoint(c.bundle.APIBase, c.bundle.APIVersion),
			azure.WithAPIKey(c.bundle.APIKey),
		}
		opts = append(opts, c.extraOpts...)
		c.conn = openai.NewClient(opts...)
	})
	return c.conn, c.bundle, c.connErr
}

// Generate asks the deployment for a process breakdown of the given
// capability query. Optional context sections feed input-token accounting.
// It fails with *ConfigError when the configuration is incomplete and with
// *GenerationError when the API call fails; neither is retried.
func (c *Client) Generate(ctx context.Context, prompt string, contextSections ...string) (*Result, error) {
	conn, bundle, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	workspace := workspaceContent(contextSections)
	userMessage := prompt

	completion, err := conn.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:            bundle.Deployment,
		Temperature:      openai.Float(genTemperature),
		MaxTokens:        openai.Int(genMaxTokens),
		TopP:             openai.Float(genTopP),
		FrequencyPenalty: openai.Float(genFrequencyPenalty),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
	})
	if err != nil {
		slog.Error("chat completion failed", "deployment", bundle.Deployment, "error", err)
		return nil, &GenerationError{Err: err}
	}
	if len(completion.Choices) == 0 {
		err := errors.New("no choices returned")
		slog.Error("chat completion failed", "deployment", bundle.Deployment, "error", err)
		return nil, &GenerationError{Err: err}
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	res := &Result{
		Content:        content,
		ContextTokens:  c.countTokens(workspace),
		ResponseTokens: c.countTokens(content),
		FullContext:    systemPrompt + "\n" + userMessage,
	}
	slog.Info("generated capability breakdown",
		"context_tokens", res.ContextTokens, "response_tokens", res.ResponseTokens)
	return res, nil
}
