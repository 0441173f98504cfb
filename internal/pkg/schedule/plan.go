// Package schedule evaluates marking times against a weekly attendance plan:
// the days a worker is expected, the entry and exit times and the window in
// which a marking is accepted.
package schedule

import (
	"errors"
	"time"
)

type Status string

const (
	StatusOnTime        Status = "on_time"
	StatusLate          Status = "late"
	StatusOutsideWindow Status = "outside_window"
)

var (
	ErrNoDays           = errors.New("at least one day is required")
	ErrEntryTime        = errors.New("entry time is out of range")
	ErrExitTime         = errors.New("exit time is out of range")
	ErrEntryEqualsExit  = errors.New("entry and exit times must differ")
	ErrIncompleteWindow = errors.New("window start and end must be given together")
	ErrWindowOutOfRange = errors.New("window time is out of range")
	ErrWindowZeroLength = errors.New("window start and end must differ")
)

// Plan is the weekly schedule of an assignment. WindowStart and WindowEnd are
// optional; when absent the window is derived from Entry and Exit.
type Plan struct {
	Days        DaySet
	Entry       ClockTime
	Exit        ClockTime
	WindowStart *ClockTime
	WindowEnd   *ClockTime
}

type Evaluation struct {
	InDay    bool
	InWindow bool
	Status   Status
}

func (p Plan) Validate() error {
	if !p.Days.IsValid() {
		return ErrNoDays
	}
	if !p.Entry.IsValid() {
		return ErrEntryTime
	}
	if !p.Exit.IsValid() {
		return ErrExitTime
	}
	if p.Entry == p.Exit {
		return ErrEntryEqualsExit
	}
	if (p.WindowStart == nil) != (p.WindowEnd == nil) {
		return ErrIncompleteWindow
	}
	if p.WindowStart != nil {
		if !p.WindowStart.IsValid() || !p.WindowEnd.IsValid() {
			return ErrWindowOutOfRange
		}
		if *p.WindowStart == *p.WindowEnd {
			return ErrWindowZeroLength
		}
	}
	return nil
}

// span is a marking window in seconds relative to the midnight that starts
// the shift day. Start may be negative and end may pass secondsPerDay; entry
// is placed inside the same frame.
type span struct {
	start, end, entry int64
}

func (sp span) contains(x int64) bool {
	return x >= sp.start && x <= sp.end
}

// span unwraps the window of p. An Exit before Entry ends the next day, and so
// does an explicit window whose end precedes its start.
func (p Plan) span(grace time.Duration) span {
	g := int64(grace / time.Second)
	entry := int64(p.Entry)

	if p.WindowStart != nil && p.WindowEnd != nil {
		sp := span{start: int64(*p.WindowStart), end: int64(*p.WindowEnd), entry: entry}
		if sp.end < sp.start {
			sp.end += secondsPerDay
			if sp.entry < sp.start {
				sp.entry += secondsPerDay
			}
		}
		return sp
	}

	exit := int64(p.Exit)
	if exit < entry {
		exit += secondsPerDay
	}
	return span{start: entry - g, end: exit + g, entry: entry}
}

// Evaluate classifies t against the plan. t must already be in the location
// the plan's clock times refer to.
//
// A marking belongs to the shift of the day it falls on, or of the previous
// day when that shift runs past midnight, or of the next day when the window
// opens before midnight. The day check applies to the shift's day.
func (p Plan) Evaluate(t time.Time, grace time.Duration) Evaluation {
	if grace < 0 {
		grace = 0
	}

	sp := p.span(grace)
	tod := int64(ClockTimeOf(t))
	weekday := t.Weekday()

	for _, shift := range []int{0, -1, 1} {
		x := tod - int64(shift)*secondsPerDay
		if !sp.contains(x) {
			continue
		}
		if !p.Days.Has(addDays(weekday, shift)) {
			continue
		}

		ev := Evaluation{InDay: true, InWindow: true, Status: StatusLate}
		if x <= sp.entry+int64(grace/time.Second) {
			ev.Status = StatusOnTime
		}
		return ev
	}

	return Evaluation{InDay: p.Days.Has(weekday), Status: StatusOutsideWindow}
}

func addDays(w time.Weekday, n int) time.Weekday {
	return time.Weekday(((int(w)+n)%7 + 7) % 7)
}
