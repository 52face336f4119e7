package availability

import (
	"fmt"
	"time"
)

// Evaluator answers open/closed questions for zoned weekly schedules. It holds no
// mutable state and is safe for concurrent use.
type Evaluator struct {
	conv *Converter
}

// NewEvaluator wraps a converter.
func NewEvaluator(conv *Converter) *Evaluator {
	return &Evaluator{conv: conv}
}

// Converter returns the underlying converter.
func (e *Evaluator) Converter() *Converter {
	return e.conv
}

// IsOpenAt converts at into the schedule's zone and reports whether it falls inside that
// day's interval.
func (e *Evaluator) IsOpenAt(s ZonedSchedule, at Civil) (bool, error) {
	if !at.Time.Valid() {
		return false, fmt.Errorf("%w: %s", ErrInvalidTimeOfDay, at.Time)
	}
	local, err := e.conv.Convert(at, s.Zone)
	if err != nil {
		return false, err
	}
	iv, ok := s.Schedule.IntervalFor(local.Day)
	return ok && iv.Contains(local.Time), nil
}

// IsOpenDuring reports whether the whole window [from, to) on day in zone is contained in
// a single interval of the schedule. Each endpoint is converted on its own; a window that
// lands on two different schedule days is never contained, since intervals do not cross
// midnight.
func (e *Evaluator) IsOpenDuring(s ZonedSchedule, day Weekday, from, to TimeOfDay, zone string) (bool, error) {
	if err := (Interval{From: from, To: to}).Validate(); err != nil {
		return false, err
	}
	start, end, err := e.window(day, from, to, zone, s.Zone)
	if err != nil {
		return false, err
	}
	if start.Day != end.Day {
		return false, nil
	}
	iv, ok := s.Schedule.IntervalFor(start.Day)
	return ok && iv.Covers(start.Time, end.Time), nil
}

// IsOpenOn reports whether the schedule is open at any moment of day as observed in zone.
// Once converted the query day usually covers one or two schedule days, but a 23 or 25
// hour day combined with a half-hour offset difference can touch three; every piece is
// checked.
func (e *Evaluator) IsOpenOn(s ZonedSchedule, day Weekday, zone string) (bool, error) {
	start, end, err := e.window(day, Midnight, EndOfDay, zone, s.Zone)
	if err != nil {
		return false, err
	}
	span := (int(end.Day) - int(start.Day) + 7) % 7
	for i := 0; i <= span; i++ {
		from, to := Midnight, EndOfDay
		if i == 0 {
			from = start.Time
		}
		if i == span {
			to = end.Time
		}
		if iv, ok := s.Schedule.IntervalFor(start.Day.Add(i)); ok && iv.Overlaps(from, to) {
			return true, nil
		}
	}
	return false, nil
}

// IsOpenNow reports whether the schedule is open at the absolute instant now. No
// reference week is involved.
func (e *Evaluator) IsOpenNow(s ZonedSchedule, now time.Time) (bool, error) {
	loc, err := e.conv.zones.Load(s.Zone)
	if err != nil {
		return false, err
	}
	local := CivilAt(now, loc)
	iv, ok := s.Schedule.IntervalFor(local.Day)
	return ok && iv.Contains(local.Time), nil
}

// window converts [from, to) on day from one zone into another. The end is exclusive, so
// a converted end of 00:00 is read as 24:00 of the previous day. The two endpoints are
// converted independently, so the result covers as many schedule days as the source
// day's real length requires: up to three for a 25 hour day.
func (e *Evaluator) window(day Weekday, from, to TimeOfDay, fromZone, toZone string) (Civil, Civil, error) {
	start, err := e.conv.Convert(Civil{Day: day, Time: from, Zone: fromZone}, toZone)
	if err != nil {
		return Civil{}, Civil{}, err
	}
	end, err := e.conv.Convert(Civil{Day: day, Time: to, Zone: fromZone}, toZone)
	if err != nil {
		return Civil{}, Civil{}, err
	}
	if end.Time == Midnight {
		end.Day = end.Day.Add(-1)
		end.Time = EndOfDay
	}
	return start, end, nil
}
