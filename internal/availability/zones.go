package availability

import (
	"fmt"
	"strings"
	"time"
)

// ZoneDB resolves IANA zone identifiers. Implementations must be safe for concurrent
// reads; the rule set is treated as read-only after construction.
type ZoneDB interface {
	Load(name string) (*time.Location, error)
}

// legacyAliases maps identifiers still reported by some browsers onto their current
// canonical names.
var legacyAliases = map[string]string{
	"Europe/Kiev":   "Europe/Kyiv",
	"Asia/Calcutta": "Asia/Kolkata",
	"Asia/Saigon":   "Asia/Ho_Chi_Minh",
	"Asia/Katmandu": "Asia/Kathmandu",
}

// CanonicalZone trims the identifier and rewrites known legacy aliases.
func CanonicalZone(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := legacyAliases[name]; ok {
		return canonical
	}
	return name
}

// SystemZones resolves zones against a snapshot of the Go time zone database taken at
// construction time. Zones not in the snapshot are still looked up, so a deployment can
// omit the preload list entirely.
type SystemZones struct {
	preloaded map[string]*time.Location
}

// NewSystemZones preloads the named zones. Unknown names fail fast.
func NewSystemZones(preload ...string) (*SystemZones, error) {
	z := &SystemZones{preloaded: make(map[string]*time.Location, len(preload))}
	for _, name := range preload {
		loc, err := loadLocation(name)
		if err != nil {
			return nil, err
		}
		z.preloaded[loc.String()] = loc
	}
	return z, nil
}

// Load resolves name, rejecting empty and local identifiers.
func (z *SystemZones) Load(name string) (*time.Location, error) {
	canonical := CanonicalZone(name)
	if z != nil {
		if loc, ok := z.preloaded[canonical]; ok {
			return loc, nil
		}
	}
	return loadLocation(canonical)
}

func loadLocation(name string) (*time.Location, error) {
	canonical := CanonicalZone(name)
	// time.LoadLocation maps "" to UTC and "Local" to the host zone; neither is an IANA id.
	if canonical == "" || canonical == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	loc, err := time.LoadLocation(canonical)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// FixedZones is a frozen zone table, mainly for tests that must not depend on the host
// tz database or on future rule changes.
type FixedZones map[string]*time.Location

// Load returns the registered location or ErrInvalidTimezone.
func (f FixedZones) Load(name string) (*time.Location, error) {
	if loc, ok := f[CanonicalZone(name)]; ok {
		return loc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
}

// ValidTimezone reports whether db resolves name.
func ValidTimezone(db ZoneDB, name string) bool {
	_, err := db.Load(name)
	return err == nil
}
