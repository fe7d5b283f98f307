package requests

// RemoteSlotCreate is the body accepted by the remote slot store. Instants are
// UTC ISO-8601 strings with millisecond precision.
type RemoteSlotCreate struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  int    `json:"duration"`
}

type ToggleSlot struct {
	WeekOffset int `json:"weekOffset" validate:"gte=-520,lte=520"`
	DayIndex   int `json:"dayIndex" validate:"gte=0,lte=6"`
	SlotIndex  int `json:"slotIndex" validate:"gte=0"`
}
