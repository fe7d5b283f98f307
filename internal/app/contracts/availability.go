package contracts

import (
	"availability-service/internal/app/models"
	"availability-service/internal/pkg/dto/requests"
	"availability-service/internal/pkg/dto/responses"
	"context"
)

type AvailabilityUsecase interface {
	GetSlotTemplate(ctx context.Context) (*responses.SlotTemplate, error)
	GetWeekSchedule(ctx context.Context, weekOffset int, expandedDays []int) (*responses.WeekSchedule, error)
	ToggleSlot(ctx context.Context, request *requests.ToggleSlot) (*responses.ToggleSlot, error)
	RefreshSlots(ctx context.Context) (*responses.RefreshSlots, error)
	ExportWeekSchedule(ctx context.Context, weekOffset int) (*responses.ExportWeekSchedule, error)
	ListAudits(ctx context.Context, limit int) ([]models.ToggleAudit, error)
}
