package contracts

import (
	"availability-service/internal/app/models"
	"context"
)

type SlotEventPublisher interface {
	PublishSlotChanged(ctx context.Context, event *models.SlotChangedEvent) error
}
