package extractor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicelog-go/internal/fault"
	"voicelog-go/internal/types"
)

func TestValidateActivityFullRecord(t *testing.T) {
	raw := json.RawMessage(`{
		"activity_type": "call",
		"client_name": "Acme Corp",
		"duration_minutes": 30,
		"revenue": 500,
		"summary": "Call with Acme Corp, paid.",
		"notes": "follow up next week",
		"confidence": 0.9
	}`)
	rec, err := ValidateActivity(raw)
	require.NoError(t, err)
	assert.Equal(t, types.ActivityCall, rec.ActivityType)
	require.NotNil(t, rec.ClientName)
	assert.Equal(t, "Acme Corp", *rec.ClientName)
	require.NotNil(t, rec.DurationMinutes)
	assert.Equal(t, 30.0, *rec.DurationMinutes)
	require.NotNil(t, rec.Revenue)
	assert.Equal(t, 500.0, *rec.Revenue)
	assert.Equal(t, 0.9, rec.Confidence)
}

func TestValidateActivityConservativeNulls(t *testing.T) {
	// nothing stated: optional fields must come back nil, not zero
	raw := json.RawMessage(`{
		"activity_type": "email",
		"client_name": null,
		"summary": "Catching up on emails.",
		"confidence": 0.8
	}`)
	rec, err := ValidateActivity(raw)
	require.NoError(t, err)
	assert.Nil(t, rec.ClientName)
	assert.Nil(t, rec.DurationMinutes)
	assert.Nil(t, rec.Revenue)
	assert.Nil(t, rec.Notes)
}

func TestValidateActivityMismatchedOptionalCoercesToNull(t *testing.T) {
	// duration as prose is a type mismatch, not a format error
	raw := json.RawMessage(`{
		"activity_type": "meeting",
		"duration_minutes": "about half an hour",
		"revenue": "unknown",
		"summary": "Weekly sync.",
		"confidence": 0.7
	}`)
	rec, err := ValidateActivity(raw)
	require.NoError(t, err)
	assert.Nil(t, rec.DurationMinutes)
	assert.Nil(t, rec.Revenue)
}

func TestValidateActivityRejectsOutOfEnum(t *testing.T) {
	raw := json.RawMessage(`{"activity_type": "vacation", "summary": "x", "confidence": 0.5}`)
	_, err := ValidateActivity(raw)
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.MalformedUpstreamResponse))
}

func TestValidateActivityRejectsMissingRequired(t *testing.T) {
	for _, raw := range []string{
		`{"summary": "x", "confidence": 0.5}`,
		`{"activity_type": "call", "confidence": 0.5}`,
		`{"activity_type": "call", "summary": "x"}`,
	} {
		_, err := ValidateActivity(json.RawMessage(raw))
		require.Error(t, err, raw)
		assert.True(t, fault.Is(err, fault.MalformedUpstreamResponse), raw)
	}
}

func TestValidateActivityClampsConfidence(t *testing.T) {
	rec, err := ValidateActivity(json.RawMessage(`{"activity_type": "work", "summary": "x", "confidence": 1.4}`))
	require.NoError(t, err)
	assert.Equal(t, 1.0, rec.Confidence)

	rec, err = ValidateActivity(json.RawMessage(`{"activity_type": "work", "summary": "x", "confidence": -0.1}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.Confidence)
}

func TestValidateOnboardingProfile(t *testing.T) {
	raw := json.RawMessage(`{
		"clients": [
			{"name": "Acme", "type": "retainer", "monthly_value": 5000},
			{"name": "Globex", "type": "project", "monthly_value": null}
		],
		"revenue_target": null,
		"work_patterns": {"typical_start_time": "09:00", "typical_end_time": null, "busy_days": ["Mon", "Tue", "Mon"]},
		"business_type": "consultant",
		"target_market": "B2B SaaS startups",
		"main_challenges": ["pipeline", "pricing"]
	}`)
	profile, err := ValidateOnboarding(raw)
	require.NoError(t, err)
	require.Len(t, profile.Clients, 2)
	assert.Equal(t, types.EngagementRetainer, profile.Clients[0].Type)
	assert.Nil(t, profile.Clients[1].MonthlyValue)
	assert.Nil(t, profile.RevenueTarget)
	assert.Equal(t, []string{"Mon", "Tue"}, profile.WorkPatterns.BusyDays, "busy_days is a set")
	assert.Nil(t, profile.WorkPatterns.TypicalEndTime)
	assert.Equal(t, types.BusinessConsultant, profile.BusinessType)
}

func TestValidateOnboardingCapsChallenges(t *testing.T) {
	raw := json.RawMessage(`{
		"business_type": "freelancer",
		"main_challenges": ["a", "b", "c", "d", "e"]
	}`)
	profile, err := ValidateOnboarding(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, profile.MainChallenges)
}

func TestValidateOnboardingRejectsOutOfEnum(t *testing.T) {
	_, err := ValidateOnboarding(json.RawMessage(`{"business_type": "astronaut"}`))
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.MalformedUpstreamResponse))

	_, err = ValidateOnboarding(json.RawMessage(`{
		"business_type": "advisor",
		"clients": [{"name": "Acme", "type": "equity"}]
	}`))
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.MalformedUpstreamResponse))
}

func TestValidateOnboardingSkipsNamelessClients(t *testing.T) {
	raw := json.RawMessage(`{
		"business_type": "agency",
		"clients": [{"name": ""}, {"type": "project"}, {"name": "Initech", "type": "advisory"}]
	}`)
	profile, err := ValidateOnboarding(raw)
	require.NoError(t, err)
	require.Len(t, profile.Clients, 1)
	assert.Equal(t, "Initech", profile.Clients[0].Name)
}
