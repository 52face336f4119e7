package availability

import (
	"encoding/json"
	"fmt"
)

// Interval is an opening window [From, To) on a single calendar day in the owning
// schedule's zone. Overnight spans must be split, see WeeklySchedule.WithOvernight.
type Interval struct {
	From TimeOfDay `json:"from"`
	To   TimeOfDay `json:"to"`
}

// NewInterval validates and returns an interval.
func NewInterval(from, to TimeOfDay) (Interval, error) {
	iv := Interval{From: from, To: to}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// MustInterval parses "HH:mm" bounds and panics on error. Intended for tests and fixtures.
func MustInterval(from, to string) Interval {
	iv, err := NewInterval(MustTimeOfDay(from), MustTimeOfDay(to))
	if err != nil {
		panic(err)
	}
	return iv
}

// Validate checks both bounds and requires From < To.
func (iv Interval) Validate() error {
	if !iv.From.Valid() {
		return fmt.Errorf("%w: from %s", ErrInvalidTimeOfDay, iv.From)
	}
	if iv.To < Midnight || iv.To > EndOfDay {
		return fmt.Errorf("%w: to %s", ErrInvalidTimeOfDay, iv.To)
	}
	if iv.From == iv.To {
		return fmt.Errorf("%w: %s-%s", ErrEmptyInterval, iv.From, iv.To)
	}
	if iv.From > iv.To {
		return fmt.Errorf("%w: %s-%s crosses midnight", ErrInvalidInterval, iv.From, iv.To)
	}
	return nil
}

// Contains reports whether t lies in [From, To).
func (iv Interval) Contains(t TimeOfDay) bool {
	return iv.From <= t && t < iv.To
}

// Covers reports whether the window [from, to) lies entirely inside the interval.
func (iv Interval) Covers(from, to TimeOfDay) bool {
	return iv.From <= from && iv.To >= to
}

// Overlaps reports whether [from, to) shares at least one minute with the interval.
func (iv Interval) Overlaps(from, to TimeOfDay) bool {
	return iv.From < to && from < iv.To
}

func (iv Interval) String() string {
	return iv.From.String() + "-" + iv.To.String()
}

// UnmarshalJSON decodes {"from": "HH:mm", "to": "HH:mm"} and validates the result.
func (iv *Interval) UnmarshalJSON(data []byte) error {
	var raw struct {
		From TimeOfDay `json:"from"`
		To   TimeOfDay `json:"to"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewInterval(raw.From, raw.To)
	if err != nil {
		return err
	}
	*iv = parsed
	return nil
}

// WeeklySchedule maps each weekday to at most one opening interval. The zero value is a
// schedule that is closed every day. Values are immutable once built; Set and
// WithOvernight return modified copies.
type WeeklySchedule struct {
	days [7]*Interval
}

// NewWeeklySchedule builds a schedule, validating every interval.
func NewWeeklySchedule(days map[Weekday]Interval) (WeeklySchedule, error) {
	var s WeeklySchedule
	for day, iv := range days {
		next, err := s.Set(day, iv)
		if err != nil {
			return WeeklySchedule{}, err
		}
		s = next
	}
	return s, nil
}

// IntervalFor returns the interval for day; ok is false when the day is closed.
func (s WeeklySchedule) IntervalFor(day Weekday) (Interval, bool) {
	if !day.Valid() || s.days[day] == nil {
		return Interval{}, false
	}
	return *s.days[day], true
}

// Set returns a copy of s with day's interval replaced.
func (s WeeklySchedule) Set(day Weekday, iv Interval) (WeeklySchedule, error) {
	if !day.Valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(day))
	}
	if err := iv.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", day, err)
	}
	copied := iv
	s.days[day] = &copied
	return s, nil
}

// Close returns a copy of s with day closed.
func (s WeeklySchedule) Close(day Weekday) WeeklySchedule {
	if day.Valid() {
		s.days[day] = nil
	}
	return s
}

// WithOvernight splits a span that starts on day and ends after midnight into
// day: from-24:00 and the following day: 00:00-to. It refuses to overwrite an interval
// that is already set on either day.
func (s WeeklySchedule) WithOvernight(day Weekday, from, to TimeOfDay) (WeeklySchedule, error) {
	if to >= from {
		return s, fmt.Errorf("%w: %s-%s does not cross midnight", ErrInvalidInterval, from, to)
	}
	next := day.Add(1)
	if _, taken := s.IntervalFor(day); taken {
		return s, fmt.Errorf("%w: %s already has an interval", ErrInvalidInterval, day)
	}
	if _, taken := s.IntervalFor(next); taken && to > Midnight {
		return s, fmt.Errorf("%w: %s already has an interval", ErrInvalidInterval, next)
	}
	out, err := s.Set(day, Interval{From: from, To: EndOfDay})
	if err != nil {
		return s, err
	}
	if to == Midnight {
		return out, nil
	}
	return out.Set(next, Interval{From: Midnight, To: to})
}

// OpenDays returns the days that have an interval, in canonical order.
func (s WeeklySchedule) OpenDays() []Weekday {
	var out []Weekday
	for _, day := range DaysOfWeek {
		if s.days[day] != nil {
			out = append(out, day)
		}
	}
	return out
}

// IsClosedAllWeek reports whether no day has an interval.
func (s WeeklySchedule) IsClosedAllWeek() bool {
	return len(s.OpenDays()) == 0
}

// Map returns the schedule as a plain map, convenient for presentation code.
func (s WeeklySchedule) Map() map[Weekday]Interval {
	out := make(map[Weekday]Interval, 7)
	for _, day := range s.OpenDays() {
		out[day] = *s.days[day]
	}
	return out
}

// MarshalJSON encodes the schedule as {"Monday": {"from": "09:00", "to": "17:00"}, ...}.
func (s WeeklySchedule) MarshalJSON() ([]byte, error) {
	out := make(map[string]Interval, 7)
	for _, day := range s.OpenDays() {
		out[day.String()] = *s.days[day]
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes and validates the day-name keyed form. Null entries and entries
// with empty bounds are treated as closed days, matching what the admin UI submits.
func (s *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var raw map[string]*struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out WeeklySchedule
	var seen [7]bool
	for key, entry := range raw {
		day, err := ParseWeekday(key)
		if err != nil {
			return err
		}
		if seen[day] {
			return fmt.Errorf("%w: %s listed twice", ErrInvalidInterval, day)
		}
		seen[day] = true
		if entry == nil || (entry.From == "" && entry.To == "") {
			continue
		}
		from, err := ParseTimeOfDay(entry.From)
		if err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
		to, err := ParseBoundary(entry.To)
		if err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
		if out, err = out.Set(day, Interval{From: from, To: to}); err != nil {
			return err
		}
	}
	*s = out
	return nil
}

// ZonedSchedule is a weekly schedule bound to the IANA zone that gives its intervals
// their wall-clock meaning. The two never travel separately.
type ZonedSchedule struct {
	Schedule WeeklySchedule
	Zone     string
}

// Zoned binds s to zone.
func (s WeeklySchedule) Zoned(zone string) ZonedSchedule {
	return ZonedSchedule{Schedule: s, Zone: zone}
}
