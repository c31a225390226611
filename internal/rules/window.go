package rules

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock offset from midnight.
type TimeOfDay time.Duration

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
}

// Of returns the time-of-day component of t in t's own location.
func Of(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond()))
}

func (d TimeOfDay) String() string {
	dur := time.Duration(d)
	h := dur / time.Hour
	m := (dur % time.Hour) / time.Minute
	if s := (dur % time.Minute) / time.Second; s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Window is an inclusive intraday trading session.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// AllDay covers every instant of a calendar day.
var AllDay = Window{Start: 0, End: TimeOfDay(24*time.Hour - 1)}

// NewWindow parses start and end and rejects inverted sessions.
func NewWindow(start, end string) (Window, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Window{}, err
	}
	if e < s {
		return Window{}, fmt.Errorf("session end %s before start %s", end, start)
	}
	return Window{Start: s, End: e}, nil
}

// MustWindow is NewWindow for literals; it panics on bad input.
func MustWindow(start, end string) Window {
	w, err := NewWindow(start, end)
	if err != nil {
		panic(err)
	}
	return w
}

// Contains reports whether the time of day of t lies in [Start, End].
// The calendar date is ignored.
func (w Window) Contains(t time.Time) bool {
	tod := Of(t)
	return w.Start <= tod && tod <= w.End
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}
