package models

import "time"

// SlotChangedEvent is published after the remote store confirmed a create or delete.
type SlotChangedEvent struct {
	ID             string    `json:"id"`
	PractitionerID string    `json:"practitionerId"`
	Action         string    `json:"action"`
	SlotID         string    `json:"slotId,omitempty"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	OccurredAt     time.Time `json:"occurredAt"`
}
