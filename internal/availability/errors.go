package availability

import "errors"

// Sentinel errors returned by the availability core. Callers match them with errors.Is;
// the service layer maps them onto typed HTTP errors.
var (
	ErrInvalidTimezone           = errors.New("invalid timezone")
	ErrInvalidWeekday            = errors.New("invalid weekday")
	ErrInvalidTimeOfDay          = errors.New("invalid time of day")
	ErrEmptyInterval             = errors.New("empty interval")
	ErrInvalidInterval           = errors.New("invalid interval")
	ErrInsufficientFilterContext = errors.New("insufficient filter context")
)
