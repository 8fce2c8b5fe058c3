package diagnosis

import "math"

// ScoringConfig parameterizes the two observed deployment profiles: a
// fixed ±10 variance band and an opportunity-scaled ±[10,30] band, plus
// the UI-facing display clamp applied after scoring. The zero value is
// not usable; construct with DefaultScoringConfig or FixedScoringConfig.
type ScoringConfig struct {
	Variance       VarianceStrategy
	DisplayFloor   int
	DisplayCeiling int
}

// VarianceStrategy sizes the band the model may move the final score
// within, around the deterministic baseline.
type VarianceStrategy func(opportunityIndex float64) int

// FixedVariance always allows the same absolute deviation.
func FixedVariance(n int) VarianceStrategy {
	return func(float64) int { return n }
}

// OpportunityScaledVariance widens the band with bottleneck severity:
// round(10 + 20*idx), so 10 for a frictionless business up to 30 for one
// drowning in manual work.
func OpportunityScaledVariance() VarianceStrategy {
	return func(idx float64) int { return int(math.Round(10 + 20*idx)) }
}

// DefaultScoringConfig is the production profile: opportunity-scaled
// variance with the realistic display clamp the UI expects.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Variance:       OpportunityScaledVariance(),
		DisplayFloor:   50,
		DisplayCeiling: 96,
	}
}

// FixedScoringConfig is the simpler profile: ±10 around the baseline and
// no extra display clamp beyond [0,100].
func FixedScoringConfig() ScoringConfig {
	return ScoringConfig{
		Variance:       FixedVariance(10),
		DisplayFloor:   0,
		DisplayCeiling: 100,
	}
}

func clamp(n, min, max float64) float64 {
	return math.Max(min, math.Min(max, n))
}

func clampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// num reads an optional KPI for arithmetic: absent or non-finite counts
// as zero, it never panics.
func num(p *float64) float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0
	}
	return *p
}

// ComputeBaseline derives the deterministic AI-transformation baseline
// in [0,100] from the profile's KPIs. Every business starts neutral at
// 50; each KPI term is clamped to its own sub-range before summing so no
// single metric can dominate, then common friction factors are added on
// top. Pure and order-independent.
func ComputeBaseline(p BusinessProfile) int {
	score := 50.0

	switch p.BusinessType {
	case BusinessAppointmentServices:
		appts := num(p.MonthlyAppointments)
		noShow := num(p.NoShowRate) * 100
		ticket := num(p.TicketPrice)
		// Higher volume and ticket mean more at stake; higher no-show
		// means more room for automation to recover.
		score += clamp(appts/10, 0, 20)
		score += clamp((noShow-5)/2, 0, 15)
		score += clamp(ticket/100, 0, 10)
	case BusinessQuoteServices:
		quotes := num(p.MonthlyQuotes)
		conv := num(p.QuoteConversionRate) * 100
		deal := num(p.AvgDealValue)
		score += clamp(quotes/5, 0, 15)
		score += clamp((50-conv)/3, 0, 15) // the lower the conversion, the bigger the upside
		score += clamp(deal/2000, 0, 10)
	case BusinessRecurringServices:
		subs := num(p.ActiveSubscribers)
		churn := num(p.MonthlyChurnRate) * 100
		fee := num(p.AvgSubscriptionFee)
		score += clamp(subs/50, 0, 15)
		score += clamp((churn-2)*2, 0, 20)
		score += clamp(fee/50, 0, 10)
	case BusinessProducts:
		weeklyLost := num(p.WeeklyLostSalesLocal)
		aov := num(p.AvgOrderValueLocal)
		score += clamp(weeklyLost*(aov/100), 0, 20)
		switch p.RepetitiveQuestionsLocal {
		case RepetitiveConstant:
			score += 15
		case RepetitiveSometimes:
			score += 8
		default:
			score += 2
		}
	}

	switch p.ManualCommHours {
	case CommHoursOver3:
		score += 12
	case CommHours1To3:
		score += 6
	case CommHoursUnder1:
		score += 2
	}
	if p.OffHoursResponse == OffHoursNone || p.OffHoursResponse == OffHoursManualNextDay {
		score += 10
	}
	if p.ReviewRequestProcess == ProcessInactive || p.ClientReengagementProcess == ProcessInactive {
		score += 6
	}

	return clampInt(int(math.Round(score)), 0, 100)
}

// ComputeOpportunityIndex measures bottleneck severity in [0,1] over the
// same dimensions as the baseline, each normalized to its own 0..1
// scale. It only sizes the allowed variance; it never moves the baseline
// itself.
func ComputeOpportunityIndex(p BusinessProfile) float64 {
	var pts, max float64

	switch p.BusinessType {
	case BusinessAppointmentServices:
		noShow := num(p.NoShowRate) * 100
		pts += clamp((noShow-5)/25, 0, 1)
		max++
		pts += clamp(num(p.MonthlyAppointments)/200, 0, 1)
		max++
	case BusinessQuoteServices:
		conv := num(p.QuoteConversionRate) * 100
		pts += clamp((60-conv)/40, 0, 1)
		max++
		pts += clamp(num(p.AvgDealValue)/10000, 0, 1)
		max++
		pts += clamp(num(p.MonthlyQuotes)/100, 0, 1)
		max++
	case BusinessRecurringServices:
		churn := num(p.MonthlyChurnRate) * 100
		pts += clamp((churn-2)/10, 0, 1)
		max++
		pts += clamp(num(p.AvgSubscriptionFee)/200, 0, 1)
		max++
		pts += clamp(num(p.ActiveSubscribers)/2000, 0, 1)
		max++
	case BusinessProducts:
		pts += clamp(num(p.WeeklyLostSalesLocal)*num(p.AvgOrderValueLocal)/10000, 0, 1)
		max++
		switch p.RepetitiveQuestionsLocal {
		case RepetitiveConstant:
			pts += 1
		case RepetitiveSometimes:
			pts += 0.5
		}
		max++
	}

	switch p.ManualCommHours {
	case CommHoursOver3:
		pts += 1
	case CommHours1To3:
		pts += 0.6
	default:
		pts += 0.2
	}
	max++
	if p.OffHoursResponse == OffHoursNone || p.OffHoursResponse == OffHoursManualNextDay {
		pts += 1
	}
	max++
	if p.ReviewRequestProcess == ProcessInactive {
		pts += 0.6
	}
	if p.ClientReengagementProcess == ProcessInactive {
		pts += 0.6
	}
	max += 1.2

	if max <= 0 {
		return 0
	}
	return clamp(pts/max, 0, 1)
}

// ComputeAnchor derives the per-request anchor. It is invoked twice per
// diagnosis (prompt construction and response clamping) and, being pure,
// produces identical values both times.
func ComputeAnchor(p BusinessProfile, cfg ScoringConfig) ScoreAnchor {
	idx := ComputeOpportunityIndex(p)
	return ScoreAnchor{
		Baseline:         ComputeBaseline(p),
		OpportunityIndex: idx,
		AllowedVariance:  cfg.Variance(idx),
	}
}
