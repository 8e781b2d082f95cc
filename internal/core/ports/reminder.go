package ports

import "context"

// ReminderInput is the DTO passed from the transport layer to the reminder
// dispatcher.
type ReminderInput struct {
	TaskID     string
	Title      string
	AssigneeID string
}

// ReminderNotifier delivers a reminder for a task.
type ReminderNotifier interface {
	Notify(ctx context.Context, reminder ReminderInput) error
}
