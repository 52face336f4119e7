package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/Mykola-art/shopsTestTask/internal/availability"
)

// OperatingHours persists a weekly schedule as JSONB in the
// {"Monday": {"from": "10:00", "to": "16:00"}} form. A NULL column is a schedule that is
// closed every day.
type OperatingHours struct {
	availability.WeeklySchedule
}

// Value marshals the schedule for persistence.
func (h OperatingHours) Value() (driver.Value, error) {
	data, err := json.Marshal(h.WeeklySchedule)
	if err != nil {
		return nil, fmt.Errorf("marshal operating hours: %w", err)
	}
	return data, nil
}

// Scan decodes and validates a JSONB payload.
func (h *OperatingHours) Scan(value interface{}) error {
	if value == nil {
		*h = OperatingHours{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for OperatingHours", value)
	}
	if len(data) == 0 || string(data) == "null" {
		*h = OperatingHours{}
		return nil
	}
	var schedule availability.WeeklySchedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return fmt.Errorf("unmarshal operating hours: %w", err)
	}
	h.WeeklySchedule = schedule
	return nil
}
