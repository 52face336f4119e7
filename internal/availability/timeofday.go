package availability

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time with minute precision, stored as minutes since midnight.
type TimeOfDay int

const (
	// Midnight is 00:00.
	Midnight TimeOfDay = 0
	// EndOfDay is the "24:00" sentinel, valid only as an interval end.
	EndOfDay TimeOfDay = 24 * 60
)

// NewTimeOfDay builds a TimeOfDay from hour and minute, rejecting values outside [00:00, 24:00).
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeOfDay, hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustTimeOfDay parses an "HH:mm" literal and panics on error. Intended for tests and constants.
func MustTimeOfDay(raw string) TimeOfDay {
	t, err := ParseBoundary(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// ClockOf returns the wall-clock time of t in its own location, truncated to the minute.
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// ParseTimeOfDay parses a zero-padded "HH:mm" instant in [00:00, 24:00).
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	t, err := ParseBoundary(raw)
	if err != nil {
		return 0, err
	}
	if t == EndOfDay {
		return 0, fmt.Errorf("%w: %q is only valid as an interval end", ErrInvalidTimeOfDay, raw)
	}
	return t, nil
}

// ParseBoundary parses "HH:mm" and additionally accepts "24:00" as EndOfDay.
func ParseBoundary(raw string) (TimeOfDay, error) {
	s := strings.TrimSpace(raw)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, raw)
	}
	if hour == 24 && minute == 0 {
		return EndOfDay, nil
	}
	return NewTimeOfDay(hour, minute)
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Valid reports whether t is an instant inside the day.
func (t TimeOfDay) Valid() bool { return t >= Midnight && t < EndOfDay }

// String formats t as "HH:mm".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On returns the instant at t on the calendar date of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, int(t), 0, 0, day.Location())
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	if t < Midnight || t > EndOfDay {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidTimeOfDay, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. "24:00" is accepted here; interval
// validation decides where it is legal.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseBoundary(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON encodes t as an "HH:mm" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON decodes an "HH:mm" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeOfDay, string(data))
	}
	return t.UnmarshalText([]byte(raw))
}
