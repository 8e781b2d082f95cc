package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/raceops/race-weekend-api/internal/core/ports"
)

// LogNotifier delivers reminders to the process log. Swap for email/SMS by
// providing another ports.ReminderNotifier.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, reminder ports.ReminderInput) error {
	n.log.Info().
		Str("task_id", reminder.TaskID).
		Str("title", reminder.Title).
		Str("assignee_id", reminder.AssigneeID).
		Msg("task reminder sent")
	return nil
}
