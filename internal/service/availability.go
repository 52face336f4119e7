package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
	"github.com/Mykola-art/shopsTestTask/internal/models"
	appErrors "github.com/Mykola-art/shopsTestTask/pkg/errors"
)

// minParallelBatch is the list length below which filtering stays on the caller's
// goroutine.
const minParallelBatch = 64

// AvailabilityOptions tunes how services evaluate schedules.
type AvailabilityOptions struct {
	// Workers bounds the goroutines used to filter one listing.
	Workers int
	// DefaultTimezone is the viewer zone when a request names none.
	DefaultTimezone string
}

func (o AvailabilityOptions) normalize() AvailabilityOptions {
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.DefaultTimezone == "" {
		o.DefaultTimezone = "UTC"
	}
	return o
}

// availabilityError maps core sentinel errors onto API errors.
func availabilityError(err error) error {
	if err == nil {
		return nil
	}
	var target *appErrors.Error
	switch {
	case errors.Is(err, availability.ErrInvalidTimezone):
		target = appErrors.ErrInvalidTimezone
	case errors.Is(err, availability.ErrInsufficientFilterContext):
		target = appErrors.ErrInsufficientFilterContext
	case errors.Is(err, availability.ErrEmptyInterval), errors.Is(err, availability.ErrInvalidInterval):
		target = appErrors.ErrInvalidInterval
	case errors.Is(err, availability.ErrInvalidWeekday), errors.Is(err, availability.ErrInvalidTimeOfDay):
		target = appErrors.ErrValidation
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to evaluate availability")
	}
	return appErrors.Wrap(err, target.Code, target.Status, err.Error())
}

type schedulePredicate func(availability.ZonedSchedule) (bool, error)

// filterBySchedule keeps the items accepted by match, preserving input order. Large
// inputs are split into at most workers contiguous chunks evaluated concurrently; the
// first error cancels the remaining chunks and fails the whole call.
func filterBySchedule[T any](ctx context.Context, items []T, schedule func(T) availability.ZonedSchedule, match schedulePredicate, workers int) ([]T, error) {
	if workers <= 1 || len(items) < minParallelBatch {
		return filterChunk(ctx, items, schedule, match)
	}

	chunk := (len(items) + workers - 1) / workers
	results := make([][]T, 0, workers)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(items); lo += chunk {
		idx := len(results)
		results = append(results, nil)
		part := items[lo:min(lo+chunk, len(items))]
		g.Go(func() error {
			kept, err := filterChunk(gctx, part, schedule, match)
			if err != nil {
				return err
			}
			results[idx] = kept
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for _, kept := range results {
		out = append(out, kept...)
	}
	return out, nil
}

func filterChunk[T any](ctx context.Context, items []T, schedule func(T) availability.ZonedSchedule, match schedulePredicate) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := match(schedule(item))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// counted wraps match so every evaluation is recorded under kind.
func counted(metrics *MetricsService, kind string, match schedulePredicate) schedulePredicate {
	return func(s availability.ZonedSchedule) (bool, error) {
		ok, err := match(s)
		metrics.ObserveAvailability(kind, ok, err)
		return ok, err
	}
}

// activePredicate answers "open at the requested moment". Without a clock the current
// instant is evaluated directly. With one, the clock is read on today's weekday in
// timezone and converted through the reference week.
func activePredicate(ev *availability.Evaluator, timezone, clock string, now time.Time) (schedulePredicate, error) {
	if clock == "" {
		return func(s availability.ZonedSchedule) (bool, error) {
			return ev.IsOpenNow(s, now)
		}, nil
	}
	at, err := availability.ParseTimeOfDay(clock)
	if err != nil {
		return nil, availabilityError(err)
	}
	loc, err := ev.Converter().Zones().Load(timezone)
	if err != nil {
		return nil, availabilityError(err)
	}
	day := availability.FromStd(now.In(loc).Weekday())
	m, err := ev.Compile(availability.Query{Timezone: timezone, Day: &day, At: &at})
	if err != nil {
		return nil, availabilityError(err)
	}
	return m.Match, nil
}

// paginate slices one page out of items.
func paginate[T any](items []T, page, size int) ([]T, *models.Pagination) {
	p := models.NewPagination(page, size, len(items))
	lo := (p.Page - 1) * p.PageSize
	if lo >= len(items) {
		return []T{}, p
	}
	return items[lo:min(lo+p.PageSize, len(items))], p
}

// normalizePage applies the default and maximum page size.
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = models.DefaultPageSize
	}
	if size > models.MaxPageSize {
		size = models.MaxPageSize
	}
	return page, size
}
