package models

import "time"

type ToggleAudit struct {
	ID             string    `json:"id" bson:"_id"`
	RequestID      string    `json:"requestId" bson:"request_id"`
	PractitionerID string    `json:"practitionerId" bson:"practitioner_id"`
	Action         string    `json:"action" bson:"action"`
	SlotID         string    `json:"slotId,omitempty" bson:"slot_id,omitempty"`
	StartTime      time.Time `json:"startTime" bson:"start_time"`
	EndTime        time.Time `json:"endTime" bson:"end_time"`
	Message        string    `json:"message,omitempty" bson:"message,omitempty"`
	OccurredAt     time.Time `json:"occurredAt" bson:"occurred_at"`
}
