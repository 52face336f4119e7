package availability

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday is a day of the week in Monday-first order. All rollover arithmetic is done
// modulo 7 on this ordinal.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysOfWeek lists every weekday in canonical order.
var DaysOfWeek = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Valid reports whether d is one of the seven days.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the canonical English day name.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Add shifts the day by n days, wrapping across the week boundary.
func (d Weekday) Add(n int) Weekday {
	return Weekday(((int(d)+n)%7 + 7) % 7)
}

// Std converts to the standard library representation.
func (d Weekday) Std() time.Weekday {
	return time.Weekday((int(d) + 1) % 7)
}

// FromStd converts a time.Weekday (Sunday=0) into the Monday-first ordinal.
func FromStd(wd time.Weekday) Weekday {
	return Weekday((int(wd) + 6) % 7)
}

// ParseWeekday accepts full day names or three-letter abbreviations, case-insensitively.
func ParseWeekday(raw string) (Weekday, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) >= 3 {
		for i, name := range weekdayNames {
			lower := strings.ToLower(name)
			if s == lower || s == lower[:3] {
				return Weekday(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, raw)
}

// MarshalText implements encoding.TextMarshaler so weekdays can key JSON objects.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(d))
	}
	return []byte(weekdayNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON encodes the weekday as its day name.
func (d Weekday) MarshalJSON() ([]byte, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON decodes a day name.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidWeekday, string(data))
	}
	return d.UnmarshalText([]byte(raw))
}
