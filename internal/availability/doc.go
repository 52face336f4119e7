// Package availability models recurring weekly opening hours and evaluates them across
// time zones.
//
// A WeeklySchedule holds at most one [from, to) interval per weekday and only has meaning
// together with its IANA zone (ZonedSchedule). Queries arrive as weekday + wall-clock
// values in the caller's own zone; the Converter anchors them to a concrete reference
// week, converts the resulting instant and re-derives weekday and time in the schedule's
// zone, so day rollovers (Sunday 23:30 in Chicago is Monday 00:30 in New York) are
// handled by the zone rules rather than by offset arithmetic.
//
// Everything in the package is pure and safe for concurrent use. The zone database is
// injected through ZoneDB so tests can run against a frozen rule set.
package availability
