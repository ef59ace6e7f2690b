// Package insight turns a mood rating into a short supportive note from an LLM.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/xolan/mood/internal/completion"
)

const (
	DefaultModel        = "gpt-3.5-turbo"
	DefaultSystemPrompt = "You are a helpful and empathetic mood assistant."
	DefaultMaxTokens    = 150
	DefaultTemperature  = 0.7
)

const promptTemplate = `The user has logged their mood as %d/10 and described it as: "%s".

Based on this information, provide a thoughtful insight about their mood,
possible causes, and a helpful suggestion to improve their wellbeing.
Keep the response concise (max 4 sentences) and supportive.`

// Messages surfaced to callers of the HTTP proxy
const (
	MsgInputRequired = "Scale and description are required"
	MsgFailed        = "Failed to get AI insight"
)

// ErrInsightRequest is matched by every RequestError via errors.Is
var ErrInsightRequest = errors.New("insight request failed")

// RequestError reports why an insight could not be produced.
// Status follows HTTP semantics: 400 for bad input, 500 for upstream failures.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool {
	return target == ErrInsightRequest
}

// Insighter produces an insight for a mood rating and description.
type Insighter interface {
	Insight(ctx context.Context, scale int, description string) (string, error)
}

// Options configures the completion request sent for every insight.
type Options struct {
	Model        string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}

// DefaultOptions returns the request settings of the original proxy.
func DefaultOptions() Options {
	return Options{
		Model:        DefaultModel,
		SystemPrompt: DefaultSystemPrompt,
		MaxTokens:    DefaultMaxTokens,
		Temperature:  DefaultTemperature,
	}
}

// Client asks a completion provider directly.
type Client struct {
	completer completion.Completer
	opts      Options
	logger    *slog.Logger
}

// NewClient creates a Client. Zero-valued options fall back to the defaults.
func NewClient(c completion.Completer, opts Options, logger *slog.Logger) *Client {
	def := DefaultOptions()
	if opts.Model == "" {
		opts.Model = def.Model
	}
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = def.SystemPrompt
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = def.MaxTokens
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{completer: c, opts: opts, logger: logger}
}

// BuildPrompt renders the user prompt. Values are embedded as given.
func BuildPrompt(scale int, description string) string {
	return fmt.Sprintf(promptTemplate, scale, description)
}

// CheckInput rejects a missing scale or description the way the proxy does.
func CheckInput(scale int, description string) error {
	if scale == 0 || description == "" {
		return &RequestError{Status: http.StatusBadRequest, Message: MsgInputRequired}
	}
	return nil
}

// Insight requests one completion and returns the trimmed text of its first choice.
func (c *Client) Insight(ctx context.Context, scale int, description string) (string, error) {
	if err := CheckInput(scale, description); err != nil {
		return "", err
	}

	resp, err := c.completer.Complete(ctx, completion.Request{
		Model: c.opts.Model,
		Messages: []completion.Message{
			{Role: completion.RoleSystem, Content: c.opts.SystemPrompt},
			{Role: completion.RoleUser, Content: BuildPrompt(scale, description)},
		},
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if err != nil {
		c.logger.Error("insight completion failed", slog.String("model", c.opts.Model), slog.String("error", err.Error()))
		return "", &RequestError{Status: http.StatusInternalServerError, Message: MsgFailed, Err: err}
	}

	text, err := resp.Text()
	if err != nil {
		return "", &RequestError{Status: http.StatusInternalServerError, Message: MsgFailed, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &RequestError{Status: http.StatusInternalServerError, Message: MsgFailed, Err: errors.New("empty completion")}
	}
	return text, nil
}
