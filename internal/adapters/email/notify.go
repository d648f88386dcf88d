package email

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"

	"celltrack/internal/domain/event"
	"celltrack/internal/domain/week"
)

// WeekNotifier emails the capturing leader a summary after a week save.
// Satisfies the orchestrators' notifier interface.
type WeekNotifier struct {
	sender Sender
	md     goldmark.Markdown
}

// NewWeekNotifier creates a WeekNotifier on top of any Sender.
func NewWeekNotifier(sender Sender) *WeekNotifier {
	return &WeekNotifier{
		sender: sender,
		md:     goldmark.New(),
	}
}

// WeekSaved composes and sends the post-save summary to the event's leader.
// PRE: ev.LeaderEmail is non-empty
// POST: Email is queued for delivery
func (n *WeekNotifier) WeekSaved(ctx context.Context, ev event.Event, rec week.Record, summary week.Summary) error {
	body, err := n.compose(ev, rec, summary)
	if err != nil {
		return fmt.Errorf("compose week summary: %w", err)
	}

	_, err = n.sender.Send(ctx, SendRequest{
		To:      []string{ev.LeaderEmail},
		Subject: fmt.Sprintf("%s attendance saved for %s", ev.Name, rec.WeekID),
		HTML:    body,
	})
	if err != nil {
		return err
	}

	slog.Info("week_summary_sent", "event_id", ev.ID, "week_id", rec.WeekID, "to", ev.LeaderEmail)
	return nil
}

// compose renders the summary markdown to HTML.
func (n *WeekNotifier) compose(ev event.Event, rec week.Record, summary week.Summary) (string, error) {
	var md strings.Builder
	greeting := ev.LeaderName
	if greeting == "" {
		greeting = "there"
	}

	fmt.Fprintf(&md, "## %s: %s\n\n", ev.Name, rec.WeekID)
	fmt.Fprintf(&md, "Hi %s,\n\n", greeting)

	switch rec.Status {
	case week.StatusDidNotMeet:
		md.WriteString("This week was recorded as **did not meet**.\n")
	case week.StatusComplete:
		fmt.Fprintf(&md, "Attendance was captured for **%d** people", summary.LastAttendanceCount)
		if rec.TotalHeadcount > 0 {
			fmt.Fprintf(&md, " with a total headcount of **%d**", rec.TotalHeadcount)
		}
		md.WriteString(".\n\n")
		if summary.FirstTimeCount > 0 {
			fmt.Fprintf(&md, "- First-time decisions: **%d**\n", summary.FirstTimeCount)
		}
		if summary.RecommitmentCount > 0 {
			fmt.Fprintf(&md, "- Re-commitments: **%d**\n", summary.RecommitmentCount)
		}
	default:
		md.WriteString("The week was saved but is still **incomplete**.\n")
	}

	var html bytes.Buffer
	if err := n.md.Convert([]byte(md.String()), &html); err != nil {
		return "", err
	}
	return html.String(), nil
}
