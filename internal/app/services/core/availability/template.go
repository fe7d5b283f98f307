package availability

import (
	"availability-service/internal/pkg/exceptions"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// BuildTemplate generates a start time every stepMinutes from dayStart (inclusive)
// to dayEnd (exclusive). Both bounds use HH:MM and dayEnd may be 24:00.
func BuildTemplate(dayStart, dayEnd string, stepMinutes int) (*Template, error) {
	start, ok := parseClock(dayStart, false)
	if !ok {
		return nil, exceptions.ErrInvalidSlotTemplate(nil, dayStart)
	}
	end, ok := parseClock(dayEnd, true)
	if !ok {
		return nil, exceptions.ErrInvalidSlotTemplate(nil, dayEnd)
	}
	if stepMinutes <= 0 || !validWindow(start, end) {
		return nil, exceptions.ErrInvalidTemplateWindow(fmt.Errorf("step %d minutes", stepMinutes), dayStart, dayEnd)
	}

	t := &Template{}
	for m := start.minutes(); m < end.minutes(); m += stepMinutes {
		c := clock{H: m / 60, M: m % 60}
		t.clocks = append(t.clocks, c)
		t.Times = append(t.Times, formatClock(c))
	}
	return t, nil
}

// ParseTemplate accepts an explicit list of HH:MM entries. Entries must be strictly increasing.
func ParseTemplate(times []string) (*Template, error) {
	if len(times) == 0 {
		return nil, exceptions.ErrInvalidSlotTemplate(fmt.Errorf("empty template"), "")
	}
	t := &Template{}
	for i, raw := range times {
		c, ok := parseClock(raw, false)
		if !ok {
			return nil, exceptions.ErrInvalidSlotTemplate(nil, raw)
		}
		if i > 0 && !validWindow(t.clocks[i-1], c) {
			return nil, exceptions.ErrInvalidSlotTemplate(fmt.Errorf("entries out of order"), raw)
		}
		t.clocks = append(t.clocks, c)
		t.Times = append(t.Times, formatClock(c))
	}
	return t, nil
}

// parseClock accepts "H:MM", "HH:MM" and "HH.MM".
func parseClock(s string, allowEndOfDay bool) (clock, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return clock{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || m < 0 || m > 59 || h < 0 {
		return clock{}, false
	}
	if allowEndOfDay && h == 24 && m == 0 {
		return clock{H: 24}, true
	}
	if h > 23 {
		return clock{}, false
	}
	return clock{H: h, M: m}, true
}

func validWindow(a, b clock) bool {
	return a.minutes() < b.minutes() && b.minutes() <= minutesPerDay
}

func formatClock(c clock) string {
	return fmt.Sprintf("%02d:%02d", c.H, c.M)
}
