package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"memexplainer/internal/domain"
	"memexplainer/internal/ports"
)

// PipelineDeps wires all driven adapters into the research pipeline.
type PipelineDeps struct {
	Source    ports.MemeSource
	Curator   ports.Curator
	Explainer ports.Explainer
	Logger    *slog.Logger
}

// Pipeline is the fixed three-stage research workflow:
// Fetch -> Curate -> Explain. No branching, no retries, no state kept
// between invocations; each run threads a fresh PipelineState.
type Pipeline struct {
	source    ports.MemeSource
	curator   ports.Curator
	explainer ports.Explainer
	logger    *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:    deps.Source,
		curator:   deps.Curator,
		explainer: deps.Explainer,
		logger:    deps.Logger,
	}
}

// Run executes one full pipeline invocation. A source lookup that resolves
// zero candidates degrades to a no-results raw text so the curator still
// receives a string; every other stage error propagates to the caller, which
// owns presenting it as a user-facing failure.
func (p *Pipeline) Run(ctx context.Context, topic string, register domain.Register) (domain.PipelineState, error) {
	if _, err := domain.ParseRegister(string(register)); err != nil {
		return domain.PipelineState{}, err
	}

	state := domain.PipelineState{Topic: topic, Register: register}

	p.debug("fetch stage", "topic", topic)
	report, err := p.source.Research(ctx, topic)
	switch {
	case errors.Is(err, domain.ErrNoResults):
		state.RawData = fmt.Sprintf("No results found on Know Your Meme for '%s'.", topic)
	case err != nil:
		return domain.PipelineState{}, fmt.Errorf("fetch stage: %w", err)
	default:
		state.RawData = report.Text
	}

	p.debug("curate stage", "topic", topic, "raw_chars", len(state.RawData))
	curated, err := p.curator.Curate(ctx, topic, state.RawData)
	if err != nil {
		return domain.PipelineState{}, fmt.Errorf("curate stage: %w", err)
	}
	state.Curated = curated
	state.Sources = curated.Sources

	p.debug("explain stage", "topic", topic, "register", register)
	explanation, err := p.explainer.Explain(ctx, curated, topic, register)
	if err != nil {
		return domain.PipelineState{}, fmt.Errorf("explain stage: %w", err)
	}
	state.Explanation = explanation

	return state, nil
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
