package diagnosis

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeCaller struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCaller) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestEngineDiagnoseCompletesAndClamps(t *testing.T) {
	// Model overshoots wildly and forgets most fields; the completer
	// pulls the score back into the band and fills the gaps.
	caller := &fakeCaller{response: "```json\n{\"potentialTransformationScore\": 999, \"executiveSummary\": \"Resumo gerado pelo modelo.\"}\n```"}
	engine := NewEngine(caller, DefaultScoringConfig())

	p := appointmentProfile()
	result, err := engine.Diagnose(context.Background(), p)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	// Band tops out at 91+22=113, hard range at 100, display ceiling at 96.
	if result.PotentialTransformationScore != 96 {
		t.Fatalf("score = %d, want 96", result.PotentialTransformationScore)
	}
	if result.ExecutiveSummary != "Resumo gerado pelo modelo." {
		t.Fatalf("model summary not preserved: %q", result.ExecutiveSummary)
	}
	if len(result.Solutions) != 3 {
		t.Fatalf("solutions = %d, want padded 3", len(result.Solutions))
	}
	if len(caller.prompts) != 1 {
		t.Fatalf("made %d LLM calls, want exactly 1", len(caller.prompts))
	}
	if !strings.Contains(caller.prompts[0], "baselineScore=91") {
		t.Fatal("prompt not anchored on the deterministic baseline")
	}
}

func TestEngineDiagnoseTransportErrorPropagates(t *testing.T) {
	caller := &fakeCaller{err: errors.New("status 503")}
	engine := NewEngine(caller, DefaultScoringConfig())
	if _, err := engine.Diagnose(context.Background(), BusinessProfile{}); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestEngineDiagnoseParseErrorPropagates(t *testing.T) {
	caller := &fakeCaller{response: "definitely not json"}
	engine := NewEngine(caller, DefaultScoringConfig())
	if _, err := engine.Diagnose(context.Background(), BusinessProfile{}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct{ in, want string }{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  ```json\n{\"a\":1}\n```  ", "{\"a\":1}"},
	}
	for _, tc := range cases {
		if got := stripCodeFences(tc.in); got != tc.want {
			t.Fatalf("stripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
