package contracts

import (
	"availability-service/internal/app/models"
	"availability-service/internal/pkg/dto/requests"
	"context"
)

// SlotRemoteClient talks to the remote store owning persisted availability.
// accessToken is the practitioner's bearer token forwarded as is.
type SlotRemoteClient interface {
	ListSlots(ctx context.Context, accessToken string) ([]models.RemoteSlot, error)
	CreateSlot(ctx context.Context, accessToken string, request *requests.RemoteSlotCreate) (*models.RemoteSlot, error)
	DeleteSlot(ctx context.Context, accessToken, slotID string) error
}
