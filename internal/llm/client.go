package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/dayframe/internal/domain"
)

// Chat roles accepted by ChatMessage.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one transcript entry sent to the model.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatRequest holds the parameters for a streamed chat call.
type ChatRequest struct {
	Task         TaskType
	SystemPrompt string
	Messages     []ChatMessage
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// ChatResponse holds the concatenated reply of a streamed chat call.
type ChatResponse struct {
	Text      string
	Model     string
	LatencyMs int64
	Chunks    int
}

// ChatClient provides access to a language model for streamed chat.
type ChatClient interface {
	// Stream sends the request and calls onChunk for every text fragment
	// as it arrives. The returned response carries the full reply.
	Stream(ctx context.Context, req ChatRequest, onChunk func(chunk string)) (*ChatResponse, error)

	// Available checks whether the backing model is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the ChatClient selected by cfg.Provider. It returns nil
// when the LLM is disabled so callers fall back to canned replies.
func NewClient(cfg LLMConfig, observer Observer) (ChatClient, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Provider {
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrUnavailable)
		}
		return NewAnthropicClient(cfg, observer), nil
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrUnavailable, cfg.Provider)
	}
}

// ollamaClient implements ChatClient using the Ollama HTTP API.
type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient creates a ChatClient that talks to a local Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer) ChatClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// ollamaChatRequest is the JSON body sent to POST /api/chat.
type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  ollamaOptions       `json:"options,omitempty"`
}

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaChatChunk is one NDJSON line of a streamed /api/chat response.
type ollamaChatChunk struct {
	Model   string            `json:"model"`
	Message ollamaChatMessage `json:"message"`
	Done    bool              `json:"done"`
	Error   string            `json:"error,omitempty"`
}

func (c *ollamaClient) Stream(ctx context.Context, req ChatRequest, onChunk func(string)) (*ChatResponse, error) {
	start := time.Now()

	temp, maxTok := c.cfg.generationParams(req)
	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	body := ollamaChatRequest{
		Model:    c.cfg.Model,
		Messages: make([]ollamaChatMessage, 0, len(req.Messages)+1),
		Stream:   true,
		Options: ollamaOptions{
			Temperature: temp,
			NumPredict:  maxTok,
		},
	}
	if req.SystemPrompt != "" {
		body.Messages = append(body.Messages, ollamaChatMessage{Role: "system", Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, ollamaChatMessage{Role: m.Role, Content: m.Content})
	}

	var (
		resp    *ChatResponse
		lastErr error
	)
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		resp, lastErr = c.doStream(ctx, body, onChunk)
		if lastErr == nil {
			break
		}
		// A partially delivered reply cannot be replayed.
		if ctx.Err() != nil || (resp != nil && resp.Chunks > 0) {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	event := LLMCallEvent{
		Task:      req.Task,
		Provider:  ProviderOllama,
		Model:     c.cfg.Model,
		LatencyMs: latency,
	}
	if resp != nil {
		event.Chunks = resp.Chunks
	}

	if lastErr == nil {
		resp.LatencyMs = latency
		event.Success = true
		c.observer.OnCallComplete(event)
		return resp, nil
	}

	err := c.classify(ctx, lastErr, attempts)
	event.ErrorCode = errorCode(err)
	c.observer.OnCallComplete(event)
	return resp, err
}

func (c *ollamaClient) classify(ctx context.Context, err error, attempts int) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	case errors.Is(err, ErrEmptyReply):
		return err
	case isConnectionError(err):
		return ErrOllamaUnavailable
	case attempts > 1:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	default:
		return err
	}
}

func (c *ollamaClient) doStream(ctx context.Context, body ollamaChatRequest, onChunk func(string)) (*ChatResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/api/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		return nil, fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	resp := &ChatResponse{Model: c.cfg.Model}
	var text strings.Builder
	dec := json.NewDecoder(httpResp.Body)
	for {
		var chunk ollamaChatChunk
		if err := dec.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			resp.Text = text.String()
			return resp, fmt.Errorf("decoding stream: %w", err)
		}
		if chunk.Error != "" {
			resp.Text = text.String()
			return resp, fmt.Errorf("ollama stream error: %s", chunk.Error)
		}
		if chunk.Model != "" {
			resp.Model = chunk.Model
		}
		if piece := chunk.Message.Content; piece != "" {
			text.WriteString(piece)
			resp.Chunks++
			if onChunk != nil {
				onChunk(piece)
			}
		}
		if chunk.Done {
			break
		}
	}

	resp.Text = text.String()
	if strings.TrimSpace(resp.Text) == "" {
		return resp, ErrEmptyReply
	}
	return resp, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := c.cfg.Endpoint + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// generationParams resolves temperature and token limit for a request.
func (c LLMConfig) generationParams(req ChatRequest) (float64, int) {
	taskCfg := c.Tasks[req.Task]
	return domain.Float64FromPtrWithDefault(taskCfg.Temperature, req.Temperature),
		domain.IntFromPtrWithDefault(taskCfg.MaxTokens, req.MaxTokens)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrOllamaUnavailable), errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyReply):
		return "EMPTY_REPLY"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}
