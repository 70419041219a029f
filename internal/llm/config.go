package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskCheckin covers the structured morning and evening flows.
	TaskCheckin TaskType = "checkin"
	// TaskChat covers ad-hoc conversations and challenge introductions.
	TaskChat TaskType = "chat"
)

// Provider selects the chat backend.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderAnthropic Provider = "anthropic"
)

// DefaultAnthropicModel is used when the anthropic provider is selected
// without an explicit model.
const DefaultAnthropicModel = "claude-sonnet-4-5"

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled       bool
	LogCalls      bool
	Provider      Provider
	Endpoint      string
	Model         string
	APIKey        string
	TimeoutMs     int
	MaxRetries    int
	ContextTokens int
	Tasks         map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default; the engine answers from fallback copy.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:       false,
		LogCalls:      false,
		Provider:      ProviderOllama,
		Endpoint:      "http://localhost:11434",
		Model:         "llama3.2",
		TimeoutMs:     30000,
		MaxRetries:    0,
		ContextTokens: 6000,
		Tasks: map[TaskType]TaskConfig{
			TaskCheckin: {Temperature: 0.4, MaxTokens: 600},
			TaskChat:    {Temperature: 0.6, MaxTokens: 800},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("DAYFRAME_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DAYFRAME_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DAYFRAME_LLM_PROVIDER"); v != "" {
		switch p := Provider(strings.ToLower(strings.TrimSpace(v))); p {
		case ProviderOllama, ProviderAnthropic:
			cfg.Provider = p
		}
	}
	if v := os.Getenv("DAYFRAME_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	} else if cfg.Provider == ProviderAnthropic {
		cfg.Endpoint = ""
	}
	modelSet := false
	if v := os.Getenv("DAYFRAME_LLM_MODEL"); v != "" {
		cfg.Model = v
		modelSet = true
	}
	if cfg.Provider == ProviderAnthropic && !modelSet {
		cfg.Model = DefaultAnthropicModel
	}
	cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	if v := os.Getenv("DAYFRAME_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("DAYFRAME_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("DAYFRAME_LLM_CONTEXT_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ContextTokens = n
		}
	}
	if v := os.Getenv("DAYFRAME_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			for task, tc := range cfg.Tasks {
				tc.MaxTokens = n
				cfg.Tasks[task] = tc
			}
		}
	}
	if v := os.Getenv("DAYFRAME_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			for task, tc := range cfg.Tasks {
				tc.Temperature = f
				cfg.Tasks[task] = tc
			}
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskCheckin, "DAYFRAME_LLM_CHECKIN_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskChat, "DAYFRAME_LLM_CHAT_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
