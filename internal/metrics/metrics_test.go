package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voicelog-go/internal/types"
)

func ptr[T any](v T) *T { return &v }

func sampleActivities() []LoggedActivity {
	return []LoggedActivity{
		{
			ActivityRecord: types.ActivityRecord{
				ActivityType: types.ActivityCall, ClientName: ptr("Acme Corp"),
				DurationMinutes: ptr(30.0), Revenue: ptr(500.0),
				Summary: "Call with Acme", Confidence: 0.9,
			},
			Date: "2026-08-24",
		},
		{
			ActivityRecord: types.ActivityRecord{
				ActivityType: types.ActivityEmail,
				Summary:      "Email catch-up", Confidence: 0.8,
			},
			Date: "2026-08-25",
		},
		{
			ActivityRecord: types.ActivityRecord{
				ActivityType: types.ActivityCall, ClientName: ptr("Acme Corp"),
				DurationMinutes: ptr(45.0), Revenue: ptr(250.0),
				Summary: "Follow-up call", Confidence: 0.85,
			},
			Date: "2026-08-26",
		},
	}
}

func TestAggregate(t *testing.T) {
	s := Aggregate(sampleActivities())
	assert.Equal(t, 3, s.TotalActivities)
	assert.Equal(t, 750.0, s.TotalRevenue)
	assert.Equal(t, 75.0, s.TotalMinutes)
	assert.Equal(t, 2, s.ByActivityType["call"])
	assert.Equal(t, 1, s.ByActivityType["email"])
	assert.Equal(t, 750.0, s.RevenueByClient["Acme Corp"])
	assert.Equal(t, 75.0, s.MinutesByClient["Acme Corp"])
}

func TestInsightPicksTopRevenueClient(t *testing.T) {
	card := Insight(Aggregate(sampleActivities()))
	assert.Contains(t, card.Insight, "Acme Corp")
}

func TestInsightFallsBackToActivityType(t *testing.T) {
	acts := []LoggedActivity{
		{ActivityRecord: types.ActivityRecord{ActivityType: types.ActivityAdmin, Summary: "invoices", Confidence: 1}},
		{ActivityRecord: types.ActivityRecord{ActivityType: types.ActivityAdmin, Summary: "bookkeeping", Confidence: 1}},
	}
	card := Insight(Aggregate(acts))
	assert.Contains(t, card.Insight, "admin")
}

func TestInsightEmpty(t *testing.T) {
	card := Insight(Aggregate(nil))
	assert.Contains(t, card.Insight, "No activities")
}
