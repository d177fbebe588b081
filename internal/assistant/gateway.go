// Package assistant forwards inventory questions to a hosted language
// model and keeps the per-session chat history.
package assistant

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"techtrack-api/internal/models"
)

// Analyst answers a question about an inventory snapshot. Every call
// resolves to display-ready text; failures are folded into the reply.
type Analyst interface {
	Query(ctx context.Context, snapshot []models.Asset, text string) string
}

// Query outcomes reported to a Recorder
const (
	OutcomeSuccess    = "success"
	OutcomeEmpty      = "empty"
	OutcomeMissingKey = "missing_key"
	OutcomeFailed     = "failed"
)

// Recorder observes the outcome of each query
type Recorder interface {
	ObserveAssistantQuery(outcome string)
}

// Options configures a Gateway
type Options struct {
	Temperature float64
	IncludeCost bool
	Logger      *zap.Logger
	Recorder    Recorder
}

// Gateway is the Analyst backed by the Gemini API
type Gateway struct {
	client      *Client
	temperature float64
	includeCost bool
	logger      *zap.Logger
	recorder    Recorder
}

// NewGateway wraps client. A nil logger discards diagnostics.
func NewGateway(client *Client, opts Options) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		client:      client,
		temperature: opts.Temperature,
		includeCost: opts.IncludeCost,
		logger:      logger,
		recorder:    opts.Recorder,
	}
}

// Query sends text with the serialized snapshot as system instruction.
// It never returns an error: a missing key, an empty answer and any
// transport or service failure each map to a fixed reply.
func (g *Gateway) Query(ctx context.Context, snapshot []models.Asset, text string) string {
	if !g.client.IsConfigured() {
		g.observe(OutcomeMissingKey)
		return MissingKeyReply
	}

	instruction, err := SystemInstruction(Snapshot(snapshot, g.includeCost))
	if err != nil {
		g.logger.Error("build assistant prompt", zap.Error(err))
		g.observe(OutcomeFailed)
		return FailureReply
	}

	reply, err := g.client.Generate(ctx, GenerateRequest{
		SystemInstruction: &Content{Parts: []Part{{Text: instruction}}},
		Contents:          []Content{{Role: "user", Parts: []Part{{Text: text}}}},
		GenerationConfig:  GenerationConfig{Temperature: g.temperature},
	})
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			g.observe(OutcomeMissingKey)
			return MissingKeyReply
		}
		g.logger.Error("gemini request failed",
			zap.String("model", g.client.Model()),
			zap.Int("assets", len(snapshot)),
			zap.Error(err),
		)
		g.observe(OutcomeFailed)
		return FailureReply
	}

	if reply == "" {
		g.observe(OutcomeEmpty)
		return EmptyReply
	}
	g.observe(OutcomeSuccess)
	return reply
}

func (g *Gateway) observe(outcome string) {
	if g.recorder != nil {
		g.recorder.ObserveAssistantQuery(outcome)
	}
}
