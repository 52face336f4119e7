package availability

import (
	"fmt"
	"time"
)

// Civil is a weekday and wall-clock time as read in Zone. Every conversion result
// carries its own zone so chained conversions never reuse a stale one.
type Civil struct {
	Day  Weekday   `json:"day"`
	Time TimeOfDay `json:"time"`
	Zone string    `json:"zone"`
}

func (c Civil) String() string {
	return fmt.Sprintf("%s %s %s", c.Day, c.Time, c.Zone)
}

// CivilAt reads the weekday and wall clock of an absolute instant in loc.
func CivilAt(at time.Time, loc *time.Location) Civil {
	local := at.In(loc)
	return Civil{Day: FromStd(local.Weekday()), Time: ClockOf(local), Zone: loc.String()}
}

// Converter moves weekday+time pairs between zones.
//
// A weekly (day, time) pair has no date, so it is anchored to a reference week: the
// Monday-starting week that contains the clock reading, as observed in the source zone.
// Offsets are then taken from the zone rules for that concrete date, which makes DST
// handling explicit. Results can differ by an hour between reference weeks that straddle
// a DST change; pin the clock with FixedWeek for reproducible output.
type Converter struct {
	zones ZoneDB
	clock func() time.Time
}

// NewConverter builds a converter. A nil clock means time.Now.
func NewConverter(zones ZoneDB, clock func() time.Time) *Converter {
	if clock == nil {
		clock = time.Now
	}
	return &Converter{zones: zones, clock: clock}
}

// FixedWeek returns a clock that always reads t, pinning the reference week to the week
// containing t.
func FixedWeek(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Zones exposes the zone database the converter resolves against.
func (c *Converter) Zones() ZoneDB {
	return c.zones
}

// Now reads the converter's clock.
func (c *Converter) Now() time.Time {
	return c.clock()
}

// Instant anchors civil to the reference week and returns the absolute instant.
// A Time of EndOfDay denotes the following midnight.
func (c *Converter) Instant(civil Civil) (time.Time, error) {
	if !civil.Day.Valid() {
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(civil.Day))
	}
	if civil.Time < Midnight || civil.Time > EndOfDay {
		return time.Time{}, fmt.Errorf("%w: %d minutes", ErrInvalidTimeOfDay, int(civil.Time))
	}
	loc, err := c.zones.Load(civil.Zone)
	if err != nil {
		return time.Time{}, err
	}
	monday := weekStart(c.clock().In(loc))
	return civil.Time.On(monday.AddDate(0, 0, int(civil.Day))), nil
}

// Convert returns the weekday and wall clock in toZone of the instant civil denotes.
// The day may move by one in either direction, including across the week boundary.
func (c *Converter) Convert(civil Civil, toZone string) (Civil, error) {
	at, err := c.Instant(civil)
	if err != nil {
		return Civil{}, err
	}
	loc, err := c.zones.Load(toZone)
	if err != nil {
		return Civil{}, err
	}
	out := CivilAt(at, loc)
	out.Zone = CanonicalZone(toZone)
	return out, nil
}

// weekStart returns local midnight of the Monday on or before t, in t's location.
func weekStart(t time.Time) time.Time {
	offset := int(FromStd(t.Weekday()))
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}
