package diagnosis

import (
	"math"
	"strconv"
	"strings"
)

const (
	minSolutions = 3
	maxSolutions = 4
	minBenefits  = 3
)

// asString reads a raw JSON value as a trimmed string, "" when the value
// is absent or not a string.
func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// asNumber reads a raw JSON value as a float, NaN when it cannot be read
// as one. Numeric strings are accepted because models occasionally quote
// the score.
func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// completeSolution fills every missing or invalid field of one raw
// solution entry from the defaults table. Benefits the model did provide
// are kept and only topped up to the minimum.
func completeSolution(raw map[string]any) Solution {
	s := Solution{
		Title:               nonEmpty(asString(raw["title"]), SolutionDefaults.Title),
		Description:         nonEmpty(asString(raw["description"]), SolutionDefaults.Description),
		Impact:              asString(raw["impact"]),
		ImplementationTime:  nonEmpty(asString(raw["implementationTime"]), SolutionDefaults.ImplementationTime),
		ExpectedROI:         nonEmpty(asString(raw["expectedROI"]), SolutionDefaults.ExpectedROI),
		DetailedExplanation: nonEmpty(asString(raw["detailedExplanation"]), SolutionDefaults.DetailedExplanation),
	}
	if !ValidImpact(s.Impact) {
		s.Impact = SolutionDefaults.Impact
	}

	if items, ok := raw["benefits"].([]any); ok {
		for _, item := range items {
			if b := asString(item); b != "" {
				s.Benefits = append(s.Benefits, b)
			}
		}
	}
	for _, fallback := range SolutionDefaults.Benefits {
		if len(s.Benefits) >= minBenefits {
			break
		}
		if !containsFold(s.Benefits, fallback) {
			s.Benefits = append(s.Benefits, fallback)
		}
	}
	return s
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

// clampScore applies the per-request band around the baseline, the hard
// [0,100] range, and finally the configured display clamp. A score the
// model omitted or mangled falls back to the baseline itself.
func clampScore(raw any, anchor ScoreAnchor, cfg ScoringConfig) int {
	score := asNumber(raw)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		score = float64(anchor.Baseline)
	}
	n := int(math.Round(score))
	n = clampInt(n, anchor.Baseline-anchor.AllowedVariance, anchor.Baseline+anchor.AllowedVariance)
	n = clampInt(n, 0, 100)
	return clampInt(n, cfg.DisplayFloor, cfg.DisplayCeiling)
}

// CompleteResult turns whatever JSON object the model produced into a
// schema-complete DiagnosisResult. It never fails: missing or invalid
// fields are substituted from the defaults table, the score is re-clamped
// around the deterministic baseline, and the solutions list is padded to
// 3 and truncated to 4 fully populated entries. Applying it to its own
// output is a no-op.
func CompleteResult(raw map[string]any, p BusinessProfile, anchor ScoreAnchor, cfg ScoringConfig) DiagnosisResult {
	if raw == nil {
		raw = map[string]any{}
	}

	result := DiagnosisResult{
		PotentialTransformationScore: clampScore(raw["potentialTransformationScore"], anchor, cfg),
		PotentialEconomy:             nonEmpty(asString(raw["potentialEconomy"]), ResultDefaults["potentialEconomy"]),
		TimeRecovered:                nonEmpty(asString(raw["timeRecovered"]), ResultDefaults["timeRecovered"]),
		ProductivityGain:             nonEmpty(asString(raw["productivityGain"]), ResultDefaults["productivityGain"]),
		ImplementationTimeframe:      nonEmpty(asString(raw["implementationTimeframe"]), ResultDefaults["implementationTimeframe"]),
		ExecutiveSummary:             nonEmpty(asString(raw["executiveSummary"]), defaultExecutiveSummary(p.CompanyName)),
	}

	rawSolutions, _ := raw["solutions"].([]any)
	for _, entry := range rawSolutions {
		obj, _ := entry.(map[string]any)
		if obj == nil {
			obj = map[string]any{}
		}
		result.Solutions = append(result.Solutions, completeSolution(obj))
	}
	for len(result.Solutions) < minSolutions {
		result.Solutions = append(result.Solutions, completeSolution(map[string]any{}))
	}
	if len(result.Solutions) > maxSolutions {
		result.Solutions = result.Solutions[:maxSolutions]
	}
	return result
}
