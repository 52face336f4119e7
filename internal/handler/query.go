package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
	appErrors "github.com/Mykola-art/shopsTestTask/pkg/errors"
)

// TimezoneHeader lets clients send their zone once instead of on every query string.
const TimezoneHeader = "X-Timezone"

// timezoneParam prefers the timezone query parameter over the header.
func timezoneParam(c *gin.Context) string {
	if tz := strings.TrimSpace(c.Query("timezone")); tz != "" {
		return tz
	}
	return strings.TrimSpace(c.GetHeader(TimezoneHeader))
}

// parseAvailabilityQuery reads timezone, day, time, from and to. Whether the combination
// is usable is decided by the service; here only the individual values are parsed.
func parseAvailabilityQuery(c *gin.Context) (availability.Query, error) {
	q := availability.Query{Timezone: timezoneParam(c)}
	if raw := c.Query("day"); raw != "" {
		day, err := availability.ParseWeekday(raw)
		if err != nil {
			return q, appErrors.Clone(appErrors.ErrValidation, "invalid day parameter")
		}
		q.Day = &day
	}
	var err error
	if q.At, err = clockParam(c, "time", availability.ParseTimeOfDay); err != nil {
		return q, err
	}
	if q.From, err = clockParam(c, "from", availability.ParseTimeOfDay); err != nil {
		return q, err
	}
	if q.To, err = clockParam(c, "to", availability.ParseBoundary); err != nil {
		return q, err
	}
	if q.IsZero() {
		// A lone timezone constrains nothing.
		q.Timezone = ""
	}
	return q, nil
}

func clockParam(c *gin.Context, key string, parse func(string) (availability.TimeOfDay, error)) (*availability.TimeOfDay, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := parse(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid "+key+" parameter, expected HH:mm")
	}
	return &t, nil
}

func parseQueryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}

func parseQueryFloat(c *gin.Context, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid "+key+" parameter")
	}
	return &val, nil
}

func parseQueryBool(c *gin.Context, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid "+key+" parameter")
	}
	return &val, nil
}
