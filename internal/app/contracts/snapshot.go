package contracts

import (
	"availability-service/internal/app/models"
	"context"
)

// SlotSnapshotStore keeps the last confirmed remote slot list per practitioner.
// Entries expire; a missing entry is reported with ok false and a nil error.
type SlotSnapshotStore interface {
	Get(ctx context.Context, practitionerID string) (slots []models.RemoteSlot, ok bool, err error)
	Replace(ctx context.Context, practitionerID string, slots []models.RemoteSlot) error
	Invalidate(ctx context.Context, practitionerID string) error
	PractitionerIDs(ctx context.Context) ([]string, error)
}
