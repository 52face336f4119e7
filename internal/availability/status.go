package availability

import (
	"fmt"
	"time"
)

// State is the coarse open/closed state shown to customers.
type State string

const (
	StateOpen        State = "open"
	StateClosed      State = "closed"
	StateClosedToday State = "closed_today"
)

// Status is the state of a schedule at an instant. Detail is the time until the next
// change on the same day, floored to whole hours, and nil once the day's interval has
// ended. The next day is deliberately not consulted.
type Status struct {
	State  State
	Detail *time.Duration
}

// Hours returns Detail in whole hours, or -1 when there is no detail.
func (s Status) Hours() int {
	if s.Detail == nil {
		return -1
	}
	return int(*s.Detail / time.Hour)
}

// Narrate renders the status the way listings display it.
func (s Status) Narrate() string {
	switch {
	case s.State == StateClosedToday:
		return "Closed today"
	case s.Detail == nil:
		return "Closed now"
	case s.State == StateOpen:
		return "Closes in " + hoursPhrase(s.Hours())
	default:
		return "Opens in " + hoursPhrase(s.Hours())
	}
}

func hoursPhrase(n int) string {
	switch n {
	case 0:
		return "less than an hour"
	case 1:
		return "1 hour"
	default:
		return fmt.Sprintf("%d hours", n)
	}
}

// DescribeStatus derives the status of s at now, using today's interval in the
// schedule's own zone.
func (e *Evaluator) DescribeStatus(s ZonedSchedule, now time.Time) (Status, error) {
	loc, err := e.conv.zones.Load(s.Zone)
	if err != nil {
		return Status{}, err
	}
	local := now.In(loc)
	iv, ok := s.Schedule.IntervalFor(FromStd(local.Weekday()))
	if !ok {
		return Status{State: StateClosedToday}, nil
	}
	opens := iv.From.On(local)
	closes := iv.To.On(local)
	switch {
	case now.Before(opens):
		d := opens.Sub(now).Truncate(time.Hour)
		return Status{State: StateClosed, Detail: &d}, nil
	case now.Before(closes):
		d := closes.Sub(now).Truncate(time.Hour)
		return Status{State: StateOpen, Detail: &d}, nil
	default:
		return Status{State: StateClosed}, nil
	}
}

// LocalClock formats now as "Monday - 15:04" in zone.
func (e *Evaluator) LocalClock(zone string, now time.Time) (string, error) {
	loc, err := e.conv.zones.Load(zone)
	if err != nil {
		return "", err
	}
	local := CivilAt(now, loc)
	return local.Day.String() + " - " + local.Time.String(), nil
}

// DayHours is one open day of a schedule, shown both in the schedule's zone and in a
// viewer's zone.
type DayHours struct {
	Day        Weekday  `json:"day"`
	Interval   Interval `json:"interval"`
	Zone       string   `json:"zone"`
	ZoneAbbr   string   `json:"zone_abbr"`
	ViewerFrom Civil    `json:"viewer_from"`
	ViewerTo   Civil    `json:"viewer_to"`
	ViewerAbbr string   `json:"viewer_abbr"`
}

// HoursIn lists every open day of s converted into viewerZone, anchored to the reference
// week of the schedule's zone.
func (e *Evaluator) HoursIn(s ZonedSchedule, viewerZone string) ([]DayHours, error) {
	ownLoc, err := e.conv.zones.Load(s.Zone)
	if err != nil {
		return nil, err
	}
	viewerLoc, err := e.conv.zones.Load(viewerZone)
	if err != nil {
		return nil, err
	}
	days := s.Schedule.OpenDays()
	out := make([]DayHours, 0, len(days))
	for _, day := range days {
		iv, _ := s.Schedule.IntervalFor(day)
		opens, err := e.conv.Instant(Civil{Day: day, Time: iv.From, Zone: s.Zone})
		if err != nil {
			return nil, err
		}
		closes, err := e.conv.Instant(Civil{Day: day, Time: iv.To, Zone: s.Zone})
		if err != nil {
			return nil, err
		}
		ownAbbr, _ := opens.In(ownLoc).Zone()
		viewerAbbr, _ := opens.In(viewerLoc).Zone()
		from := CivilAt(opens, viewerLoc)
		from.Zone = CanonicalZone(viewerZone)
		to := CivilAt(closes, viewerLoc)
		to.Zone = from.Zone
		out = append(out, DayHours{
			Day:        day,
			Interval:   iv,
			Zone:       CanonicalZone(s.Zone),
			ZoneAbbr:   ownAbbr,
			ViewerFrom: from,
			ViewerTo:   to,
			ViewerAbbr: viewerAbbr,
		})
	}
	return out, nil
}
