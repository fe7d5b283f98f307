package contracts

import (
	"availability-service/internal/app/models"
	"context"
)

type AuditRepository interface {
	InsertAudit(ctx context.Context, audit *models.ToggleAudit) error
	FindRecentByPractitionerID(ctx context.Context, practitionerID string, limit int) ([]models.ToggleAudit, error)
}
