package extractor

import (
	"encoding/json"

	"voicelog-go/internal/fault"
	"voicelog-go/internal/types"
)

// maxChallenges caps main_challenges no matter how many the model returns.
const maxChallenges = 3

// ValidateActivity checks a raw extraction against the activity schema.
// Required fields (activity_type, summary, confidence) must be present and
// well-typed; an out-of-enum activity_type is a malformed response, never
// passed through. Optional fields coerce to null on absence or type mismatch.
func ValidateActivity(raw json.RawMessage) (types.ActivityRecord, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return types.ActivityRecord{}, fault.Malformedf(err, "activity extraction is not a JSON object")
	}

	at, ok := asString(obj["activity_type"])
	if !ok {
		return types.ActivityRecord{}, fault.Malformedf(nil, "activity_type missing from extraction")
	}
	activityType := types.ActivityType(at)
	if !activityType.Valid() {
		return types.ActivityRecord{}, fault.Malformedf(nil, "activity_type %q is not a permitted value", at)
	}

	summary, ok := asString(obj["summary"])
	if !ok {
		return types.ActivityRecord{}, fault.Malformedf(nil, "summary missing from extraction")
	}

	confidence, ok := asNumber(obj["confidence"])
	if !ok {
		return types.ActivityRecord{}, fault.Malformedf(nil, "confidence missing from extraction")
	}
	confidence = clamp01(confidence)

	return types.ActivityRecord{
		ActivityType:    activityType,
		ClientName:      optString(obj["client_name"]),
		DurationMinutes: optNumber(obj["duration_minutes"]),
		Revenue:         optNumber(obj["revenue"]),
		Summary:         summary,
		Notes:           optString(obj["notes"]),
		Confidence:      confidence,
	}, nil
}

// ValidateOnboarding checks a raw extraction against the onboarding schema.
// business_type is the one hard enum: absent or out-of-enum fails. Everything
// else degrades to null/empty per the conservative-extraction policy, and
// main_challenges is truncated to the cap regardless of what the model sent.
func ValidateOnboarding(raw json.RawMessage) (types.OnboardingProfile, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return types.OnboardingProfile{}, fault.Malformedf(err, "onboarding extraction is not a JSON object")
	}

	bt, ok := asString(obj["business_type"])
	if !ok {
		return types.OnboardingProfile{}, fault.Malformedf(nil, "business_type missing from extraction")
	}
	businessType := types.BusinessType(bt)
	if !businessType.Valid() {
		return types.OnboardingProfile{}, fault.Malformedf(nil, "business_type %q is not a permitted value", bt)
	}

	clients, err := validateClients(obj["clients"])
	if err != nil {
		return types.OnboardingProfile{}, err
	}

	profile := types.OnboardingProfile{
		Clients:       clients,
		RevenueTarget: optNumber(obj["revenue_target"]),
		BusinessType:  businessType,
	}
	if tm, ok := asString(obj["target_market"]); ok {
		profile.TargetMarket = tm
	}
	if wp, ok := obj["work_patterns"].(map[string]any); ok {
		profile.WorkPatterns = types.WorkPatterns{
			TypicalStartTime: optString(wp["typical_start_time"]),
			TypicalEndTime:   optString(wp["typical_end_time"]),
			BusyDays:         stringSet(wp["busy_days"]),
		}
	}

	challenges := stringList(obj["main_challenges"])
	if len(challenges) > maxChallenges {
		challenges = challenges[:maxChallenges]
	}
	profile.MainChallenges = challenges

	return profile, nil
}

func validateClients(v any) ([]types.OnboardingClient, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, nil
	}
	out := make([]types.OnboardingClient, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, ok := asString(entry["name"])
		if !ok || name == "" {
			continue
		}
		client := types.OnboardingClient{
			Name:         name,
			MonthlyValue: optNumber(entry["monthly_value"]),
		}
		if t, ok := asString(entry["type"]); ok && t != "" {
			ct := types.ClientEngagementType(t)
			if !ct.Valid() {
				return nil, fault.Malformedf(nil, "client type %q is not a permitted value", t)
			}
			client.Type = ct
		}
		out = append(out, client)
	}
	return out, nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func optString(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}

func optNumber(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stringSet is stringList minus duplicates, first occurrence wins.
func stringSet(v any) []string {
	list := stringList(v)
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, s := range list {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
