// Package llm is the language model backend. It speaks to a local
// Ollama server or to an OpenAI-compatible API. Building the engine
// probes the provider, so an unreachable server surfaces as a failed
// backend load rather than as a later request error.
package llm

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/YuminosukeSato/lazyml/core/lazy"
	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"github.com/ollama/ollama/api"
	openai "github.com/sashabaranov/go-openai"
)

// ImportPath is the builder key this backend registers under.
const ImportPath = "github.com/YuminosukeSato/lazyml/backends/llm"

// Provider names.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config selects the provider and model.
type Config struct {
	Provider     string
	Model        string
	APIBase      string
	APIKey       string
	ProbeTimeout time.Duration
}

// DefaultConfig targets a local Ollama server.
func DefaultConfig() Config {
	return Config{
		Provider:     ProviderOllama,
		Model:        "llama3",
		APIBase:      "http://localhost:11434",
		ProbeTimeout: 5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Provider == "" {
		c.Provider = def.Provider
	}
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.APIBase == "" && c.Provider == ProviderOllama {
		c.APIBase = def.APIBase
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = def.ProbeTimeout
	}
	return c
}

var (
	cfgMu sync.Mutex
	cfg   = DefaultConfig()
)

// Configure sets the provider settings the next built engine uses.
func Configure(c Config) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfg = c.withDefaults()
}

func init() {
	lazy.RegisterBuilder(ImportPath, func() (any, error) {
		cfgMu.Lock()
		c := cfg
		cfgMu.Unlock()
		return BuildEngine(c)
	})
}

// generator is the provider-specific request path.
type generator interface {
	generate(ctx context.Context, system, prompt string) (string, error)
}

// Engine is a connected language model client.
type Engine struct {
	provider string
	model    string
	version  string
	gen      generator
}

// BuildEngine connects to the configured provider. For Ollama the
// server's version endpoint is probed within the configured timeout.
func BuildEngine(c Config) (*Engine, error) {
	c = c.withDefaults()

	switch c.Provider {
	case ProviderOllama:
		return buildOllama(c)
	case ProviderOpenAI:
		return buildOpenAI(c)
	default:
		return nil, errors.NewValueError("llm.BuildEngine", "unknown provider: "+c.Provider)
	}
}

func buildOllama(c Config) (*Engine, error) {
	base, err := url.Parse(c.APIBase)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ollama base URL")
	}

	client := api.NewClient(base, http.DefaultClient)

	ctx, cancel := context.WithTimeout(context.Background(), c.ProbeTimeout)
	defer cancel()
	version, err := client.Version(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "ollama server unreachable")
	}

	return &Engine{
		provider: ProviderOllama,
		model:    c.Model,
		version:  "ollama " + version,
		gen:      &ollamaGenerator{client: client, model: c.Model},
	}, nil
}

func buildOpenAI(c Config) (*Engine, error) {
	if c.APIKey == "" {
		return nil, errors.NewValueError("llm.BuildEngine", "openai provider requires an API key")
	}

	clientCfg := openai.DefaultConfig(c.APIKey)
	if c.APIBase != "" {
		clientCfg.BaseURL = c.APIBase
	}

	return &Engine{
		provider: ProviderOpenAI,
		model:    c.Model,
		version:  "openai " + c.Model,
		gen:      &openaiGenerator{client: openai.NewClientWithConfig(clientCfg), model: c.Model},
	}, nil
}

// Version implements lazy.Versioner.
func (e *Engine) Version() string { return e.version }

// Provider returns the configured provider name.
func (e *Engine) Provider() string { return e.provider }

// Model returns the configured model name.
func (e *Engine) Model() string { return e.model }

// Generate sends a prompt and returns the full completion.
func (e *Engine) Generate(ctx context.Context, prompt string) (string, error) {
	return e.GenerateWithSystem(ctx, "", prompt)
}

// GenerateWithSystem sends a prompt with a system instruction.
func (e *Engine) GenerateWithSystem(ctx context.Context, system, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.NewValueError("llm.Generate", "empty prompt")
	}
	return e.gen.generate(ctx, system, prompt)
}

type ollamaGenerator struct {
	client *api.Client
	model  string
}

func (g *ollamaGenerator) generate(ctx context.Context, system, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		System: system,
		Stream: &stream,
	}

	var sb strings.Builder
	err := g.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "ollama generate failed")
	}
	return sb.String(), nil
}

type openaiGenerator struct {
	client *openai.Client
	model  string
}

func (g *openaiGenerator) generate(ctx context.Context, system, prompt string) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
	})
	if err != nil {
		return "", errors.Wrap(err, "openai request failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.Newf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
