package extractor

import (
	"fmt"
	"strings"

	"voicelog-go/internal/types"
)

// Schema selects which structured record the extraction targets.
type Schema string

const (
	SchemaActivity   Schema = "activity"
	SchemaOnboarding Schema = "onboarding"
)

const activityPromptTemplate = `You are an AI assistant that parses voice activity logs for a portfolio entrepreneur.
Extract structured information from the transcript about business activities.

Known clients: %s

Return a JSON object with:
- activity_type: one of "meeting", "call", "email", "work", "admin", "networking", "other"
- client_name: the client mentioned (or null if none/personal)
- duration_minutes: estimated duration if mentioned (or null)
- revenue: any revenue/payment mentioned as number (or null)
- summary: a brief 1-2 sentence summary of the activity
- notes: any additional details mentioned
- confidence: your confidence in the parsing (0-1)

Be conservative - if unsure, use null rather than guessing.`

const onboardingPrompt = `You are an AI assistant helping set up a portfolio management app for a fractional executive or consultant.
Parse the user's voice introduction to extract key information about their work.

Return a JSON object with:
- clients: array of objects with { name: string, type: string (retainer/project/advisory), monthly_value: number | null }
- revenue_target: monthly revenue target as number (or null if not mentioned)
- work_patterns: object with { typical_start_time: string | null, typical_end_time: string | null, busy_days: string[] }
- business_type: one of "consultant", "fractional_executive", "advisor", "agency", "freelancer", "other"
- target_market: brief description of their target market
- main_challenges: array of 1-3 main challenges they mentioned

Be conservative - extract only what's clearly stated. Use null for uncertain values.
For clients, include any companies, projects, or engagements mentioned.`

// BuildPrompt returns the system prompt for the given schema. Pure: the same
// inputs always produce the same text. Known entities only affect the
// activity prompt; the onboarding prompt has no context parameters.
func BuildPrompt(schema Schema, known []types.KnownEntity) string {
	switch schema {
	case SchemaOnboarding:
		return onboardingPrompt
	default:
		return fmt.Sprintf(activityPromptTemplate, knownClientList(known))
	}
}

func knownClientList(known []types.KnownEntity) string {
	names := make([]string, 0, len(known))
	for _, k := range known {
		if k.Name != "" {
			names = append(names, k.Name)
		}
	}
	if len(names) == 0 {
		return "None specified yet"
	}
	return strings.Join(names, ", ")
}
