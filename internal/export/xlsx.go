// Package export builds the downloadable activity workbook, the offline
// stand-in for the dashboard's spreadsheet sync.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"voicelog-go/internal/metrics"
)

const (
	activitySheet = "Activity Log"
	summarySheet  = "Summary"
)

var activityHeader = []string{
	"Date", "Activity Type", "Client", "Duration (min)", "Revenue", "Summary", "Notes", "Confidence",
}

// Workbook writes an xlsx with one row per logged activity and a summary
// sheet, streamed to w.
func Workbook(activities []metrics.LoggedActivity, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", activitySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(activitySheet, "A1", &activityHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, a := range activities {
		row := []any{
			a.Date,
			string(a.ActivityType),
			deref(a.ClientName),
			derefNum(a.DurationMinutes),
			derefNum(a.Revenue),
			a.Summary,
			deref(a.Notes),
			a.Confidence,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(activitySheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := writeSummary(f, metrics.Aggregate(activities)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, s metrics.Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	card := metrics.Insight(s)
	rows := [][]any{
		{"Total activities", s.TotalActivities},
		{"Total revenue", s.TotalRevenue},
		{"Total minutes", s.TotalMinutes},
		{"Insight", card.Insight},
		{"Suggested action", card.Action},
	}
	for t, n := range s.ByActivityType {
		rows = append(rows, []any{"Activities: " + t, n})
	}
	for name, rev := range s.RevenueByClient {
		rows = append(rows, []any{"Revenue: " + name, rev})
	}
	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("summary row %d: %w", i, err)
		}
	}
	return nil
}

func deref(s *string) any {
	if s == nil {
		return ""
	}
	return *s
}

func derefNum(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}
