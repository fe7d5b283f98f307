package availability

// clock holds a local wall time (hour and minute). 24:00 is only valid as a window end.
type clock struct {
	H int
	M int
}

func (c clock) minutes() int {
	return c.H*60 + c.M
}

// Template is the fixed ordered list of daily start times every day of the grid is built from.
type Template struct {
	Times  []string
	clocks []clock
}

// Len returns the number of slots per day.
func (t *Template) Len() int {
	return len(t.clocks)
}
