package availability

import "fmt"

// Query is a caller's local perspective: a zone plus optional day, point in time or
// time range, all read as wall-clock values in Timezone.
type Query struct {
	Timezone string
	Day      *Weekday
	At       *TimeOfDay
	From     *TimeOfDay
	To       *TimeOfDay
}

// IsZero reports whether the query carries no day or time constraint.
func (q Query) IsZero() bool {
	return q.Day == nil && q.At == nil && q.From == nil && q.To == nil
}

type matchMode int

const (
	matchAll matchMode = iota
	matchDay
	matchPoint
	matchRange
)

// Matcher is a validated query ready to be applied to many schedules.
type Matcher struct {
	ev   *Evaluator
	q    Query
	mode matchMode
}

// Compile validates q. A day or time constraint without a timezone, a time without a
// day, a half-open range, or a point mixed with a range fail with
// ErrInsufficientFilterContext instead of being approximated.
func (e *Evaluator) Compile(q Query) (*Matcher, error) {
	if q.IsZero() {
		return &Matcher{ev: e, q: q, mode: matchAll}, nil
	}
	if q.Timezone == "" {
		return nil, fmt.Errorf("%w: a timezone is required to filter by day or time", ErrInsufficientFilterContext)
	}
	if _, err := e.conv.zones.Load(q.Timezone); err != nil {
		return nil, err
	}
	if q.Day == nil {
		return nil, fmt.Errorf("%w: a day is required to filter by time", ErrInsufficientFilterContext)
	}
	if !q.Day.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(*q.Day))
	}
	hasRange := q.From != nil || q.To != nil
	switch {
	case q.At != nil && hasRange:
		return nil, fmt.Errorf("%w: use either a time or a time range", ErrInsufficientFilterContext)
	case q.At != nil:
		if !q.At.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTimeOfDay, *q.At)
		}
		return &Matcher{ev: e, q: q, mode: matchPoint}, nil
	case hasRange:
		if q.From == nil || q.To == nil {
			return nil, fmt.Errorf("%w: both from and to are required", ErrInsufficientFilterContext)
		}
		if err := (Interval{From: *q.From, To: *q.To}).Validate(); err != nil {
			return nil, err
		}
		return &Matcher{ev: e, q: q, mode: matchRange}, nil
	default:
		return &Matcher{ev: e, q: q, mode: matchDay}, nil
	}
}

// Query returns the compiled query.
func (m *Matcher) Query() Query {
	return m.q
}

// Match applies the query to one schedule.
func (m *Matcher) Match(s ZonedSchedule) (bool, error) {
	switch m.mode {
	case matchDay:
		return m.ev.IsOpenOn(s, *m.q.Day, m.q.Timezone)
	case matchPoint:
		return m.ev.IsOpenAt(s, Civil{Day: *m.q.Day, Time: *m.q.At, Zone: m.q.Timezone})
	case matchRange:
		return m.ev.IsOpenDuring(s, *m.q.Day, *m.q.From, *m.q.To, m.q.Timezone)
	default:
		return true, nil
	}
}

// Filter keeps the items whose schedule matches. The first evaluation error aborts the
// whole filter; an entity with a broken schedule is never silently dropped or kept.
func Filter[T any](m *Matcher, items []T, schedule func(T) ZonedSchedule) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		ok, err := m.Match(schedule(item))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}
