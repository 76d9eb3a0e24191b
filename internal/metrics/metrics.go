// Package metrics aggregates logged activities into the summary figures the
// export workbook and the advisor context use.
package metrics

import (
	"fmt"

	"voicelog-go/internal/types"
)

// LoggedActivity is an activity record plus the day it was logged on, the
// shape callers persist and send back for export.
type LoggedActivity struct {
	types.ActivityRecord
	Date string `json:"date,omitempty"`
}

type Summary struct {
	TotalActivities int                `json:"total_activities"`
	TotalRevenue    float64            `json:"total_revenue"`
	TotalMinutes    float64            `json:"total_minutes"`
	ByActivityType  map[string]int     `json:"by_activity_type"`
	RevenueByClient map[string]float64 `json:"revenue_by_client"`
	MinutesByClient map[string]float64 `json:"minutes_by_client"`
}

// InsightCard is a one-line takeaway derived from the summary.
type InsightCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
}

func Aggregate(activities []LoggedActivity) Summary {
	s := Summary{
		ByActivityType:  map[string]int{},
		RevenueByClient: map[string]float64{},
		MinutesByClient: map[string]float64{},
	}
	for _, a := range activities {
		s.TotalActivities++
		s.ByActivityType[string(a.ActivityType)]++
		if a.Revenue != nil {
			s.TotalRevenue += *a.Revenue
		}
		if a.DurationMinutes != nil {
			s.TotalMinutes += *a.DurationMinutes
		}
		if a.ClientName != nil {
			if a.Revenue != nil {
				s.RevenueByClient[*a.ClientName] += *a.Revenue
			}
			if a.DurationMinutes != nil {
				s.MinutesByClient[*a.ClientName] += *a.DurationMinutes
			}
		}
	}
	return s
}

// Insight picks the strongest pattern in the summary: the client bringing the
// most revenue, falling back to the dominant activity type.
func Insight(s Summary) InsightCard {
	topClient := ""
	topRevenue := 0.0
	for name, rev := range s.RevenueByClient {
		if rev > topRevenue {
			topRevenue = rev
			topClient = name
		}
	}
	if topClient != "" {
		return InsightCard{
			Insight: fmt.Sprintf("%s drives the most revenue (%.0f)", topClient, topRevenue),
			Action:  "Protect time for this client before filling the week with admin",
		}
	}

	topType := ""
	topCount := 0
	for t, n := range s.ByActivityType {
		if n > topCount {
			topCount = n
			topType = t
		}
	}
	if topType != "" {
		return InsightCard{
			Insight: fmt.Sprintf("Most logged activity is %q (%d entries)", topType, topCount),
			Action:  "Check whether this time block maps to a paying engagement",
		}
	}
	return InsightCard{
		Insight: "No activities logged yet",
		Action:  "Log a few days of work to get usable numbers",
	}
}
