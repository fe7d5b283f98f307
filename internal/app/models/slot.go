package models

import "time"

// RemoteSlot is an availability record persisted by the remote slot store.
type RemoteSlot struct {
	ID        string    `json:"id" bson:"id"`
	StartTime time.Time `json:"startTime" bson:"start_time"`
	EndTime   time.Time `json:"endTime" bson:"end_time"`
	IsBooked  bool      `json:"isBooked" bson:"is_booked"`
	Duration  int       `json:"duration" bson:"duration"`
}

// TimeSlotView is one candidate interval of a day in the week grid. Nonexistent
// marks a wall-clock time skipped by a forward clock change.
type TimeSlotView struct {
	Time        string    `json:"time"`
	Available   bool      `json:"available"`
	Exists      bool      `json:"exists"`
	Booked      bool      `json:"booked"`
	SlotID      string    `json:"slotId,omitempty"`
	IsPast      bool      `json:"isPast"`
	Loading     bool      `json:"loading"`
	Nonexistent bool      `json:"nonexistent,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// DaySchedule is one calendar day of the visible week.
type DaySchedule struct {
	Weekday    string         `json:"weekday"`
	DayOfMonth int            `json:"dayOfMonth"`
	Month      int            `json:"month"`
	Year       int            `json:"year"`
	Date       time.Time      `json:"date"`
	IsPast     bool           `json:"isPast"`
	Slots      []TimeSlotView `json:"slots"`
}

// DayView is a DaySchedule after the expansion state has been applied.
type DayView struct {
	DaySchedule
	Expanded    bool `json:"expanded"`
	CanExpand   bool `json:"canExpand"`
	HiddenSlots int  `json:"hiddenSlots"`
}
