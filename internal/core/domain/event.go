package domain

import "time"

// Event is a race weekend on the team calendar. Events own the checklist
// tasks prepared for them.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TrackName string    `json:"track_name"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	EventDate time.Time `json:"event_date"`
	CreatedAt time.Time `json:"created_at"`
}
