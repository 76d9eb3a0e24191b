// Package types holds the records the parsing pipelines produce. Every record
// is owned by the single request that produced it; nothing here is shared or
// mutated after return.
package types

// ActivityType classifies one logged business activity.
type ActivityType string

const (
	ActivityMeeting    ActivityType = "meeting"
	ActivityCall       ActivityType = "call"
	ActivityEmail      ActivityType = "email"
	ActivityWork       ActivityType = "work"
	ActivityAdmin      ActivityType = "admin"
	ActivityNetworking ActivityType = "networking"
	ActivityOther      ActivityType = "other"
)

var activityTypes = map[ActivityType]bool{
	ActivityMeeting: true, ActivityCall: true, ActivityEmail: true,
	ActivityWork: true, ActivityAdmin: true, ActivityNetworking: true,
	ActivityOther: true,
}

func (t ActivityType) Valid() bool { return activityTypes[t] }

// BusinessType classifies the user's practice in the onboarding profile.
type BusinessType string

const (
	BusinessConsultant          BusinessType = "consultant"
	BusinessFractionalExecutive BusinessType = "fractional_executive"
	BusinessAdvisor             BusinessType = "advisor"
	BusinessAgency              BusinessType = "agency"
	BusinessFreelancer          BusinessType = "freelancer"
	BusinessOther               BusinessType = "other"
)

var businessTypes = map[BusinessType]bool{
	BusinessConsultant: true, BusinessFractionalExecutive: true,
	BusinessAdvisor: true, BusinessAgency: true, BusinessFreelancer: true,
	BusinessOther: true,
}

func (t BusinessType) Valid() bool { return businessTypes[t] }

// ClientEngagementType classifies how a client pays.
type ClientEngagementType string

const (
	EngagementRetainer ClientEngagementType = "retainer"
	EngagementProject  ClientEngagementType = "project"
	EngagementAdvisory ClientEngagementType = "advisory"
)

var engagementTypes = map[ClientEngagementType]bool{
	EngagementRetainer: true, EngagementProject: true, EngagementAdvisory: true,
}

func (t ClientEngagementType) Valid() bool { return engagementTypes[t] }

// KnownEntity is a context hint (an existing client name) the caller supplies
// for the extraction prompt. Never persisted here.
type KnownEntity struct {
	Name string `json:"name"`
}

// ActivityRecord is the voice-log pipeline output. Every field except Summary
// and Confidence is nil when the source text does not clearly state it; the
// extractor never fabricates a value for an unstated fact.
type ActivityRecord struct {
	ActivityType    ActivityType `json:"activity_type"`
	ClientName      *string      `json:"client_name"`
	DurationMinutes *float64     `json:"duration_minutes"`
	Revenue         *float64     `json:"revenue"`
	Summary         string       `json:"summary"`
	Notes           *string      `json:"notes"`
	Confidence      float64      `json:"confidence"`
}

// OnboardingClient is one client mentioned in an onboarding introduction.
type OnboardingClient struct {
	Name         string               `json:"name"`
	Type         ClientEngagementType `json:"type"`
	MonthlyValue *float64             `json:"monthly_value"`
}

type WorkPatterns struct {
	TypicalStartTime *string  `json:"typical_start_time"`
	TypicalEndTime   *string  `json:"typical_end_time"`
	BusyDays         []string `json:"busy_days"`
}

// OnboardingProfile is the onboarding pipeline output.
type OnboardingProfile struct {
	Clients        []OnboardingClient `json:"clients"`
	RevenueTarget  *float64           `json:"revenue_target"`
	WorkPatterns   WorkPatterns       `json:"work_patterns"`
	BusinessType   BusinessType       `json:"business_type"`
	TargetMarket   string             `json:"target_market"`
	MainChallenges []string           `json:"main_challenges"`
}

// ActivityResult is the voice-log pipeline envelope.
type ActivityResult struct {
	Parsed        ActivityRecord `json:"parsed"`
	RawTranscript string         `json:"raw_transcript"`
}

// OnboardingResult is the onboarding pipeline envelope.
type OnboardingResult struct {
	Parsed        OnboardingProfile `json:"parsed"`
	RawTranscript string            `json:"raw_transcript"`
}
