package responses

import (
	"availability-service/internal/app/models"
	"time"
)

type SlotTemplate struct {
	Timezone              string   `json:"timezone"`
	SlotDurationInMinutes int      `json:"slotDurationInMinutes"`
	CollapsedSlotCount    int      `json:"collapsedSlotCount"`
	Times                 []string `json:"times"`
}

type WeekSchedule struct {
	WeekOffset int              `json:"weekOffset"`
	WeekStart  time.Time        `json:"weekStart"`
	Days       []models.DayView `json:"days"`
}

type ToggleSlot struct {
	Action string             `json:"action"`
	Slot   *models.RemoteSlot `json:"slot,omitempty"`
}

type ExportWeekSchedule struct {
	ObjectName   string `json:"objectName"`
	PresignedURL string `json:"presignedUrl"`
}

type RefreshSlots struct {
	SlotCount int `json:"slotCount"`
}
