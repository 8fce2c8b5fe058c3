package diagnosis

// BusinessType selects which KPI block of a BusinessProfile is active.
// Fields belonging to other business types are ignored, never read.
type BusinessType string

const (
	BusinessAppointmentServices BusinessType = "appointment_services"
	BusinessQuoteServices       BusinessType = "quote_services"
	BusinessRecurringServices   BusinessType = "recurring_services"
	BusinessProducts            BusinessType = "products"
)

// Process-status enums collected by the conversational form. They arrive
// as plain strings on the wire; unrecognized values fall through to the
// "N/A" formatting branch and contribute nothing to the score.
type (
	ManualCommHours     string
	OffHoursResponse    string
	ProcessStatus       string
	EngagementProcess   string
	RepetitiveQuestions string
	OrderProcess        string
	PromotionComms      string
)

const (
	CommHoursOver3  ManualCommHours = ">3"
	CommHours1To3   ManualCommHours = "1-3"
	CommHoursUnder1 ManualCommHours = "<1"

	// "undefined" is the wire literal the form sends when the business has
	// no off-hours process at all. True absence is the empty string.
	OffHoursNone          OffHoursResponse = "undefined"
	OffHoursManualNextDay OffHoursResponse = "manual_next_day"
	OffHoursAutomated     OffHoursResponse = "automated"

	ProcessManualInconsistent ProcessStatus = "manual_inconsistent"
	ProcessAutomated          ProcessStatus = "automated"
	ProcessInactive           ProcessStatus = "inactive"

	EngagementManualInconsistent EngagementProcess = "manual_inconsistent"
	EngagementBasicAutomation    EngagementProcess = "basic_automation"
	EngagementInactive           EngagementProcess = "inactive"

	RepetitiveConstant  RepetitiveQuestions = "constant"
	RepetitiveSometimes RepetitiveQuestions = "sometimes"
	RepetitiveRarely    RepetitiveQuestions = "rarely"

	OrderManualChaotic   OrderProcess = "manual_chaotic"
	OrderManualOrganized OrderProcess = "manual_organized"
	OrderNone            OrderProcess = "no_orders"

	PromotionManualBroadcast PromotionComms = "manual_broadcast"
	PromotionSocialMediaOnly PromotionComms = "social_media_only"
	PromotionInactive        PromotionComms = "inactive"
)

// MainBottleneckSkip is the sentinel the form stores when the visitor
// declined to describe their main bottleneck.
const MainBottleneckSkip = "skip"

// BusinessProfile is the sparse record collected by the conversational
// form, frozen at submission. Numeric KPIs are pointers so that a
// measured zero is distinguishable from "never asked": nil formats as
// N/A, zero is a legitimate value.
type BusinessProfile struct {
	UserName     string       `json:"userName,omitempty"`
	CompanyName  string       `json:"companyName,omitempty"`
	Email        string       `json:"email,omitempty"`
	BusinessType BusinessType `json:"businessType,omitempty"`

	// appointment_services
	MonthlyAppointments *float64 `json:"monthlyAppointments,omitempty"`
	NoShowRate          *float64 `json:"noShowRate,omitempty"` // fraction, 0.2 = 20%
	TicketPrice         *float64 `json:"ticketPrice,omitempty"`

	// quote_services
	MonthlyQuotes       *float64 `json:"monthlyQuotes,omitempty"`
	QuoteConversionRate *float64 `json:"quoteConversionRate,omitempty"` // fraction
	AvgDealValue        *float64 `json:"avgDealValue,omitempty"`

	// recurring_services
	ActiveSubscribers       *float64          `json:"activeSubscribers,omitempty"`
	MonthlyChurnRate        *float64          `json:"monthlyChurnRate,omitempty"` // fraction
	AvgSubscriptionFee      *float64          `json:"avgSubscriptionFee,omitempty"`
	MemberEngagementProcess EngagementProcess `json:"memberEngagementProcess,omitempty"`

	// products (local business)
	AvgOrderValueLocal       *float64            `json:"avgOrderValueLocal,omitempty"`
	WeeklyLostSalesLocal     *float64            `json:"weeklyLostSalesLocal,omitempty"`
	RepetitiveQuestionsLocal RepetitiveQuestions `json:"repetitiveQuestionsLocal,omitempty"`
	LocalOrderProcess        OrderProcess        `json:"localOrderProcess,omitempty"`
	PromotionCommunication   PromotionComms      `json:"promotionCommunication,omitempty"`

	// common
	ManualCommHours           ManualCommHours  `json:"manualCommHours,omitempty"`
	OffHoursResponse          OffHoursResponse `json:"offHoursResponse,omitempty"`
	ReviewRequestProcess      ProcessStatus    `json:"reviewRequestProcess,omitempty"`
	ClientReengagementProcess ProcessStatus    `json:"clientReengagementProcess,omitempty"`
	MainBottleneck            string           `json:"mainBottleneck,omitempty"`
}

// Impact levels a solution may carry. The literals are part of the LLM
// schema contract and must stay byte-identical to the prompt's enum.
const (
	ImpactAlto  = "Alto"
	ImpactMedio = "Médio"
	ImpactBaixo = "Baixo"
)

// ValidImpact reports whether v is one of the three contract literals.
func ValidImpact(v string) bool {
	return v == ImpactAlto || v == ImpactMedio || v == ImpactBaixo
}

// Solution is one recommended AI intervention. After completion every
// string field is non-empty and Benefits has at least three items.
type Solution struct {
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Impact              string   `json:"impact"`
	ImplementationTime  string   `json:"implementationTime"`
	ExpectedROI         string   `json:"expectedROI"`
	Benefits            []string `json:"benefits"`
	DetailedExplanation string   `json:"detailedExplanation"`
}

// DiagnosisResult is the immutable output contract consumed by the
// results screen and the PDF report. Solutions always holds 3 or 4
// fully populated entries after completion.
type DiagnosisResult struct {
	PotentialTransformationScore int        `json:"potentialTransformationScore"`
	PotentialEconomy             string     `json:"potentialEconomy"`
	TimeRecovered                string     `json:"timeRecovered"`
	ProductivityGain             string     `json:"productivityGain"`
	ImplementationTimeframe      string     `json:"implementationTimeframe"`
	ExecutiveSummary             string     `json:"executiveSummary"`
	Solutions                    []Solution `json:"solutions"`
}

// ScoreAnchor is the ephemeral numeric anchor computed fresh per
// request: once to seed the prompt and once to clamp the response. Both
// computations must agree, which holds because the scoring functions are
// pure.
type ScoreAnchor struct {
	Baseline         int
	OpportunityIndex float64
	AllowedVariance  int
}
