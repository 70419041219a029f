package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicClient implements ChatClient on the Anthropic Messages API.
type anthropicClient struct {
	cfg      LLMConfig
	client   anthropic.Client
	observer Observer
}

// NewAnthropicClient creates a ChatClient backed by a hosted Claude model.
// cfg.Endpoint, when set, overrides the API base URL.
func NewAnthropicClient(cfg LLMConfig, observer Observer) ChatClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	return &anthropicClient{
		cfg:      cfg,
		client:   anthropic.NewClient(opts...),
		observer: observer,
	}
}

func (c *anthropicClient) Stream(ctx context.Context, req ChatRequest, onChunk func(string)) (*ChatResponse, error) {
	start := time.Now()

	temp, maxTok := c.cfg.generationParams(req)
	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		Messages:    toAnthropicMessages(req.Messages),
		MaxTokens:   int64(maxTok),
		Temperature: anthropic.Float(temp),
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	resp := &ChatResponse{Model: c.cfg.Model}
	var text strings.Builder

	stream := c.client.Messages.NewStreaming(ctx, params)
	for stream.Next() {
		event := stream.Current()
		delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		td, ok := delta.Delta.AsAny().(anthropic.TextDelta)
		if !ok || td.Text == "" {
			continue
		}
		text.WriteString(td.Text)
		resp.Chunks++
		if onChunk != nil {
			onChunk(td.Text)
		}
	}
	streamErr := stream.Err()
	_ = stream.Close()

	resp.Text = text.String()
	resp.LatencyMs = time.Since(start).Milliseconds()

	var err error
	switch {
	case streamErr != nil:
		err = c.classify(ctx, streamErr)
	case strings.TrimSpace(resp.Text) == "":
		err = ErrEmptyReply
	}

	event := LLMCallEvent{
		Task:      req.Task,
		Provider:  ProviderAnthropic,
		Model:     c.cfg.Model,
		LatencyMs: resp.LatencyMs,
		Chunks:    resp.Chunks,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	c.observer.OnCallComplete(event)
	return resp, err
}

func (c *anthropicClient) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized,
			apiErr.StatusCode == http.StatusForbidden,
			apiErr.StatusCode == http.StatusTooManyRequests,
			apiErr.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: status %d", ErrUnavailable, apiErr.StatusCode)
		}
		return fmt.Errorf("anthropic request failed: status %d: %w", apiErr.StatusCode, err)
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("anthropic stream: %w", err)
}

// Available reports whether an API key is configured. The hosted API is
// not probed to avoid spending a request.
func (c *anthropicClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}

// toAnthropicMessages maps the transcript onto user/assistant params,
// merging consecutive same-role entries since the API requires alternation.
func toAnthropicMessages(msgs []ChatMessage) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(msgs))
	var lastRole string
	for _, m := range msgs {
		if m.Content == "" {
			continue
		}
		role := RoleUser
		if m.Role == RoleAssistant {
			role = RoleAssistant
		}
		if role == lastRole {
			prev := &out[len(out)-1]
			prev.Content = append(prev.Content, anthropic.NewTextBlock(m.Content))
			continue
		}
		if role == RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		} else {
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
		lastRole = role
	}
	return out
}
