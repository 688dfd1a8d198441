// Package assistant answers game questions through a chat-completion
// provider and maps provider failures onto user-facing errors.
package assistant

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/llm"
)

// DefaultSystemPrompt is used when Ask is called without one.
const DefaultSystemPrompt = "You are a helpful Path of Exile expert assistant. Provide clear, accurate, and helpful advice about PoE items, builds, and game mechanics."

// Options tunes completions.
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
	// KeyEnvVar names the variable the API key is read from; it only
	// shapes the not-configured message.
	KeyEnvVar string
}

// Gateway sends prompts to the provider. Calls are spaced by the scheduler
// it was built with; the scheduler is shared by every caller of the
// gateway.
type Gateway struct {
	provider llm.Provider
	opts     Options
	logger   *zap.Logger
}

// NewGateway returns a gateway. A nil provider means no API key is
// configured: every Ask fails with KindNotConfigured without waiting. A nil
// scheduler disables spacing.
func NewGateway(provider llm.Provider, scheduler *llm.Scheduler, opts Options, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 1000
	}
	if provider != nil && scheduler != nil {
		provider = llm.NewSpacedProvider(provider, scheduler)
	}
	return &Gateway{provider: provider, opts: opts, logger: logger}
}

// Configured reports whether a provider is available.
func (g *Gateway) Configured() bool { return g.provider != nil }

// Ask sends prompt with systemPrompt (DefaultSystemPrompt when empty) and
// returns the first choice's text. Every failure is an *Error. No retries.
func (g *Gateway) Ask(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if g.provider == nil {
		return "", notConfigured(g.opts.KeyEnvVar)
	}
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	start := time.Now()
	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Model: g.opts.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	})
	if err != nil {
		aerr := classify(ctx, err)
		g.logger.Warn("assistant request failed",
			zap.String("provider", g.provider.Name()),
			zap.String("kind", string(aerr.Kind)),
			zap.Int("status", aerr.Status),
			zap.Error(err),
		)
		return "", aerr
	}

	g.logger.Info("assistant request completed",
		zap.String("provider", g.provider.Name()),
		zap.String("model", resp.Model),
		zap.Int("input_tokens", resp.InputTokens),
		zap.Int("output_tokens", resp.OutputTokens),
		zap.Float64("est_cost_usd", llm.EstimateCost(g.opts.Model, resp.InputTokens, resp.OutputTokens)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if strings.TrimSpace(resp.Content) == "" {
		return MsgNoResponse, nil
	}
	return resp.Content, nil
}
