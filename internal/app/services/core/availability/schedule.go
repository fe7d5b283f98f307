package availability

import (
	"availability-service/internal/app/models"
	"availability-service/internal/pkg/constvars"
	"errors"
	"time"
)

var (
	errSlotPositionOutOfRange   = errors.New("slot position out of range")
	errSlotSkippedByClockChange = errors.New("slot falls in a clock change gap")
)

// Engine turns a week offset, the remote slot snapshot and the current instant
// into the week grid. It holds no mutable state.
type Engine struct {
	loc          *time.Location
	template     *Template
	slotDuration time.Duration
}

func NewEngine(loc *time.Location, template *Template, slotDurationInMinutes int) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		loc:          loc,
		template:     template,
		slotDuration: time.Duration(slotDurationInMinutes) * time.Minute,
	}
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

func (e *Engine) Template() *Template {
	return e.template
}

func (e *Engine) SlotDuration() time.Duration {
	return e.slotDuration
}

// WeekStart returns local midnight of the Monday of the week containing now,
// shifted by weekOffset weeks.
func (e *Engine) WeekStart(now time.Time, weekOffset int) time.Time {
	local := now.In(e.loc)
	sinceMonday := (int(local.Weekday()) + 6) % constvars.DaysPerWeek
	y, m, d := local.Date()
	return time.Date(y, m, d-sinceMonday+weekOffset*constvars.DaysPerWeek, 0, 0, 0, 0, e.loc)
}

// DayAt returns local midnight of the dayIndex-th day (0 = Monday) of the week.
func (e *Engine) DayAt(now time.Time, weekOffset, dayIndex int) time.Time {
	monday := e.WeekStart(now, weekOffset)
	y, m, d := monday.Date()
	return time.Date(y, m, d+dayIndex, 0, 0, 0, 0, e.loc)
}

// SlotStart is the absolute instant of template entry slotIndex on day.
func (e *Engine) SlotStart(day time.Time, slotIndex int) time.Time {
	c := e.template.clocks[slotIndex]
	return atClock(day, c.H, c.M, e.loc)
}

// SlotExists reports whether the wall clock of template entry slotIndex occurs
// on day. Entries skipped by a forward clock change do not.
func (e *Engine) SlotExists(day time.Time, slotIndex int) bool {
	c := e.template.clocks[slotIndex]
	start := atClock(day, c.H, c.M, e.loc)
	return start.Hour() == c.H && start.Minute() == c.M
}

// SlotAt resolves a grid position to its day and interval.
func (e *Engine) SlotAt(now time.Time, weekOffset, dayIndex, slotIndex int) (day, start, end time.Time, err error) {
	if dayIndex < 0 || dayIndex >= constvars.DaysPerWeek || slotIndex < 0 || slotIndex >= e.template.Len() {
		return time.Time{}, time.Time{}, time.Time{}, errSlotPositionOutOfRange
	}
	day = e.DayAt(now, weekOffset, dayIndex)
	if !e.SlotExists(day, slotIndex) {
		return day, time.Time{}, time.Time{}, errSlotSkippedByClockChange
	}
	start = e.SlotStart(day, slotIndex)
	return day, start, start.Add(e.slotDuration), nil
}

// ComputeSchedule builds the 7 days of the week weekOffset weeks away from the
// week containing now. Remote slots are matched by start instant at millisecond
// precision; slots outside the week simply never match. Entries skipped by a
// forward clock change are kept for alignment but never match or become available.
func (e *Engine) ComputeSchedule(weekOffset int, remoteSlots []models.RemoteSlot, now time.Time) []models.DaySchedule {
	byStart := indexByStart(remoteSlots)
	days := make([]models.DaySchedule, 0, constvars.DaysPerWeek)

	for dayIndex := 0; dayIndex < constvars.DaysPerWeek; dayIndex++ {
		day := e.DayAt(now, weekOffset, dayIndex)
		pastDay := IsPastDay(day, now, e.loc)

		slots := make([]models.TimeSlotView, 0, e.template.Len())
		for slotIndex, label := range e.template.Times {
			start := e.SlotStart(day, slotIndex)
			view := models.TimeSlotView{
				Time:      label,
				Available: true,
				StartTime: start,
				EndTime:   start.Add(e.slotDuration),
				IsPast:    pastDay || IsPastSlot(start, now),
			}
			if !e.SlotExists(day, slotIndex) {
				view.Available = false
				view.Nonexistent = true
			} else if match, ok := byStart[start.UnixMilli()]; ok {
				view.Exists = true
				view.Booked = match.IsBooked
				view.Available = !match.IsBooked
				view.SlotID = match.ID
			}
			slots = append(slots, view)
		}

		y, m, d := day.Date()
		days = append(days, models.DaySchedule{
			Weekday:    day.Weekday().String()[:3],
			DayOfMonth: d,
			Month:      int(m),
			Year:       y,
			Date:       day,
			IsPast:     pastDay,
			Slots:      slots,
		})
	}
	return days
}

// IsPastDay reports whether local midnight of day is strictly before local midnight of now.
func IsPastDay(day, now time.Time, loc *time.Location) bool {
	return startOfDay(day, loc).Before(startOfDay(now, loc))
}

// IsPastSlot reports whether the slot instant is strictly before now.
func IsPastSlot(slotStart, now time.Time) bool {
	return slotStart.Before(now)
}

// FindSlot returns the remote slot starting at start, if any.
func FindSlot(remoteSlots []models.RemoteSlot, start time.Time) (models.RemoteSlot, bool) {
	target := start.UnixMilli()
	for _, s := range remoteSlots {
		if s.StartTime.UnixMilli() == target {
			return s, true
		}
	}
	return models.RemoteSlot{}, false
}

// indexByStart keeps the first slot seen for a given start.
func indexByStart(remoteSlots []models.RemoteSlot) map[int64]models.RemoteSlot {
	out := make(map[int64]models.RemoteSlot, len(remoteSlots))
	for _, s := range remoteSlots {
		key := s.StartTime.UnixMilli()
		if _, seen := out[key]; !seen {
			out[key] = s
		}
	}
	return out
}

// atClock returns the time on day at hour:minute in loc. Hour 24 rolls to the next day.
func atClock(day time.Time, h, m int, loc *time.Location) time.Time {
	d := day.In(loc)
	y, mo, dd := d.Date()
	return time.Date(y, mo, dd, h, m, 0, 0, loc)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return atClock(t, 0, 0, loc)
}
