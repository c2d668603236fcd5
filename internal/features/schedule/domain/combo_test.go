package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// date builds a midnight timestamp for the given day.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseCombo(t *testing.T) {
	c, err := ParseCombo("2-4-6")
	require.NoError(t, err)
	assert.Equal(t, ComboMonWedFri, c)

	c, err = ParseCombo("3-5-7")
	require.NoError(t, err)
	assert.Equal(t, ComboTueThuSat, c)

	_, err = ParseCombo("1-3-5")
	assert.ErrorIs(t, err, ErrInvalidCombo)

	_, err = ParseCombo("")
	assert.ErrorIs(t, err, ErrInvalidCombo)
}

func TestCombo_Weekdays(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, ComboMonWedFri.Weekdays())
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}, ComboTueThuSat.Weekdays())

	assert.Equal(t, time.Monday, ComboMonWedFri.Anchor())
	assert.Equal(t, time.Tuesday, ComboTueThuSat.Anchor())
}

// TestNextValidDate_AdvancesToAnchor checks that a Thursday reference with
// "2-4-6" lands on the following Monday, four days later.
func TestNextValidDate_AdvancesToAnchor(t *testing.T) {
	thursday := date(2026, time.September, 3)
	require.Equal(t, time.Thursday, thursday.Weekday())

	next := NextValidDate(ComboMonWedFri, thursday)

	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, date(2026, time.September, 7), next)
	assert.True(t, next.After(thursday))
}

// TestNextValidDate_SameDay checks that a Tuesday reference with "3-5-7" is
// returned unchanged.
func TestNextValidDate_SameDay(t *testing.T) {
	tuesday := date(2026, time.September, 1)
	require.Equal(t, time.Tuesday, tuesday.Weekday())

	next := NextValidDate(ComboTueThuSat, tuesday)

	assert.Equal(t, tuesday, next)
}

// TestNextValidDate_AllReferenceDays sweeps a full week for both combos: the
// result always falls on the anchor weekday and is never before the reference.
func TestNextValidDate_AllReferenceDays(t *testing.T) {
	start := date(2026, time.August, 30) // a Sunday
	require.Equal(t, time.Sunday, start.Weekday())

	for _, combo := range []Combo{ComboMonWedFri, ComboTueThuSat} {
		for i := 0; i < 7; i++ {
			from := start.AddDate(0, 0, i)
			next := NextValidDate(combo, from)

			assert.Equal(t, combo.Anchor(), next.Weekday(), "combo %s from %s", combo, from.Weekday())
			assert.False(t, next.Before(from))
			if from.Weekday() != combo.Anchor() {
				assert.True(t, next.After(from))
			}
		}
	}
}

// TestIsValidDeliveryDay checks membership against the full weekday set.
func TestIsValidDeliveryDay(t *testing.T) {
	start := date(2026, time.August, 30) // a Sunday

	expected := map[Combo]map[time.Weekday]bool{
		ComboMonWedFri: {time.Monday: true, time.Wednesday: true, time.Friday: true},
		ComboTueThuSat: {time.Tuesday: true, time.Thursday: true, time.Saturday: true},
	}

	for combo, days := range expected {
		for i := 0; i < 7; i++ {
			d := start.AddDate(0, 0, i)
			assert.Equal(t, days[d.Weekday()], IsValidDeliveryDay(combo, d),
				"combo %s day %s", combo, d.Weekday())
		}
	}
}
