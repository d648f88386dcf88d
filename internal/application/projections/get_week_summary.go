package projections

import (
	"context"
	"time"

	"celltrack/internal/domain/week"
)

// GetWeekSummaryQuery carries query parameters.
type GetWeekSummaryQuery struct {
	EventID string
}

// GetWeekSummaryDeps holds dependencies for GetWeekSummary.
type GetWeekSummaryDeps struct {
	WeekStore CaptureWeekStore
}

// QueryGetWeekSummary summarizes the most recently completed week for an
// event: attendance count, headcount, and the decision breakdown. All
// numbers are zero when no completed week exists.
func QueryGetWeekSummary(ctx context.Context, query GetWeekSummaryQuery, deps GetWeekSummaryDeps) (week.Summary, error) {
	records, err := deps.WeekStore.ListByEvent(ctx, query.EventID)
	if err != nil {
		return week.Summary{}, err
	}
	return week.Summarize(latestComplete(records)), nil
}

// SummarizeDocument summarizes a raw attendance document in either of its
// historical shapes (flat record or map of weeks). Used when reading data
// captured by the legacy system rather than this store.
func SummarizeDocument(data []byte) (week.Summary, error) {
	history, err := week.ParseHistory(data)
	if err != nil {
		return week.Summary{}, err
	}
	snapshot, ok := history.LatestComplete()
	if !ok {
		return week.Summary{}, nil
	}
	rec := snapshot.Record("", time.Time{})
	return week.Summarize(&rec), nil
}
