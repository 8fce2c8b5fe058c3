package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
)

// Engine runs one diagnosis end to end: anchor, prompt, a single LLM
// round-trip, parse, complete. It holds no per-request state and is safe
// for concurrent use.
type Engine struct {
	caller LLMCaller
	cfg    ScoringConfig
}

func NewEngine(caller LLMCaller, cfg ScoringConfig) *Engine {
	return &Engine{caller: caller, cfg: cfg}
}

// Diagnose produces the completed result for one submitted profile.
// Transport and parse failures propagate to the caller; anything the
// model merely left incomplete is repaired by the completer instead.
func (e *Engine) Diagnose(ctx context.Context, p BusinessProfile) (DiagnosisResult, error) {
	anchor := ComputeAnchor(p, e.cfg)
	prompt := BuildPrompt(p, anchor)

	raw, err := e.caller.GenerateJSON(ctx, prompt)
	if err != nil {
		return DiagnosisResult{}, fmt.Errorf("diagnosis transport failure: %w", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		return DiagnosisResult{}, fmt.Errorf("diagnosis response parse: %w", err)
	}

	// The anchor is recomputed here by the completer path on purpose:
	// both sides of the round-trip must agree on baseline and variance.
	return CompleteResult(parsed, p, ComputeAnchor(p, e.cfg), e.cfg), nil
}
