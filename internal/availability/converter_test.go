package availability

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 2024-01-10 12:00 UTC: the reference week is Monday 2024-01-08 .. Sunday
// 2024-01-14 in every zone used below, and none of them changes offset that week.
var referenceClock = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	zones, err := NewSystemZones("America/New_York", "Europe/London", "America/Chicago")
	require.NoError(t, err)
	return NewConverter(zones, FixedWeek(referenceClock))
}

func civil(day Weekday, clock, zone string) Civil {
	return Civil{Day: day, Time: MustTimeOfDay(clock), Zone: zone}
}

func TestConverterCrossZoneSameDay(t *testing.T) {
	conv := newTestConverter(t)

	got, err := conv.Convert(civil(Monday, "23:00", "Europe/London"), "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, civil(Monday, "18:00", "America/New_York"), got)
}

func TestConverterDayRollover(t *testing.T) {
	conv := newTestConverter(t)

	cases := []struct {
		name string
		in   Civil
		to   string
		want Civil
	}{
		{"london tuesday early is new york monday", civil(Tuesday, "02:00", "Europe/London"), "America/New_York", civil(Monday, "21:00", "America/New_York")},
		{"chicago sunday late is new york monday", civil(Sunday, "23:30", "America/Chicago"), "America/New_York", civil(Monday, "00:30", "America/New_York")},
		{"new york monday early is chicago sunday", civil(Monday, "00:30", "America/New_York"), "America/Chicago", civil(Sunday, "23:30", "America/Chicago")},
		{"auckland monday morning is utc sunday", civil(Monday, "05:00", "Pacific/Auckland"), "UTC", civil(Sunday, "16:00", "UTC")},
		{"kathmandu quarter hour offset", civil(Friday, "00:10", "Asia/Kathmandu"), "UTC", civil(Thursday, "18:25", "UTC")},
		{"same zone is identity", civil(Saturday, "12:34", "Europe/London"), "Europe/London", civil(Saturday, "12:34", "Europe/London")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := conv.Convert(tc.in, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConverterRoundTrip(t *testing.T) {
	conv := newTestConverter(t)
	pairs := [][2]string{
		{"Europe/London", "America/New_York"},
		{"America/Chicago", "America/New_York"},
		{"Asia/Tokyo", "America/Los_Angeles"},
		{"Europe/Kyiv", "Pacific/Auckland"},
		{"Pacific/Kiritimati", "Pacific/Pago_Pago"},
		{"Asia/Kathmandu", "UTC"},
	}
	for _, pair := range pairs {
		for _, day := range DaysOfWeek {
			for minute := 0; minute < int(EndOfDay); minute += 47 {
				in := Civil{Day: day, Time: TimeOfDay(minute), Zone: pair[0]}
				there, err := conv.Convert(in, pair[1])
				require.NoError(t, err)
				back, err := conv.Convert(there, pair[0])
				require.NoError(t, err)
				require.Equal(t, in, back, "via %s", there)
			}
		}
	}
}

func TestConverterUsesOffsetOfReferenceDate(t *testing.T) {
	zones, err := NewSystemZones()
	require.NoError(t, err)
	// Week of Monday 2024-03-04; New York springs forward on Sunday 2024-03-10,
	// London only on 2024-03-31.
	conv := NewConverter(zones, FixedWeek(time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)))

	monday, err := conv.Convert(civil(Monday, "12:00", "America/New_York"), "Europe/London")
	require.NoError(t, err)
	assert.Equal(t, civil(Monday, "17:00", "Europe/London"), monday)

	sunday, err := conv.Convert(civil(Sunday, "12:00", "America/New_York"), "Europe/London")
	require.NoError(t, err)
	assert.Equal(t, civil(Sunday, "16:00", "Europe/London"), sunday)
}

func TestConverterEndOfDayIsFollowingMidnight(t *testing.T) {
	conv := newTestConverter(t)

	got, err := conv.Convert(Civil{Day: Sunday, Time: EndOfDay, Zone: "UTC"}, "UTC")
	require.NoError(t, err)
	assert.Equal(t, civil(Monday, "00:00", "UTC"), got)
}

func TestConverterInvalidTimezone(t *testing.T) {
	conv := newTestConverter(t)

	_, err := conv.Convert(civil(Monday, "10:00", "Mars/Olympus_Mons"), "UTC")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = conv.Convert(civil(Monday, "10:00", "UTC"), "Not/AZone")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = conv.Convert(civil(Monday, "10:00", ""), "UTC")
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = conv.Convert(civil(Monday, "10:00", "Local"), "UTC")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestConverterResolvesLegacyAliases(t *testing.T) {
	conv := newTestConverter(t)

	got, err := conv.Convert(civil(Monday, "12:00", "Europe/Kiev"), "UTC")
	require.NoError(t, err)
	assert.Equal(t, civil(Monday, "10:00", "UTC"), got)

	tagged, err := conv.Convert(civil(Monday, "10:00", "UTC"), "Europe/Kiev")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Kyiv", tagged.Zone)
}

func TestFixedZones(t *testing.T) {
	zones := FixedZones{
		"Test/Plus3":  time.FixedZone("P3", 3*3600),
		"Test/Minus4": time.FixedZone("M4", -4*3600),
	}
	conv := NewConverter(zones, FixedWeek(referenceClock))

	got, err := conv.Convert(civil(Sunday, "22:00", "Test/Minus4"), "Test/Plus3")
	require.NoError(t, err)
	assert.Equal(t, civil(Monday, "05:00", "Test/Plus3"), got)

	_, err = conv.Convert(civil(Sunday, "22:00", "Europe/London"), "Test/Plus3")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestNewSystemZonesRejectsUnknownPreload(t *testing.T) {
	_, err := NewSystemZones("Europe/London", "Nowhere/Special")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}
