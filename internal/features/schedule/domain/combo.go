package domain

import (
	"errors"
	"time"
)

// Combo represents a recurring-delivery weekday pattern. The storefront
// offers exactly two: "2-4-6" (Monday, Wednesday, Friday) and "3-5-7"
// (Tuesday, Thursday, Saturday). The combo is chosen at checkout and is
// immutable for the life of an order.
type Combo string

const (
	// ComboMonWedFri delivers on Monday, Wednesday and Friday.
	ComboMonWedFri Combo = "2-4-6"
	// ComboTueThuSat delivers on Tuesday, Thursday and Saturday.
	ComboTueThuSat Combo = "3-5-7"
)

// ErrInvalidCombo is returned when a combo value is not one of the two legal
// patterns.
var ErrInvalidCombo = errors.New("invalid delivery combo")

// ParseCombo validates a raw combo value.
func ParseCombo(s string) (Combo, error) {
	c := Combo(s)
	if !c.Valid() {
		return "", ErrInvalidCombo
	}
	return c, nil
}

// Valid reports whether the combo is one of the two legal patterns.
func (c Combo) Valid() bool {
	return c == ComboMonWedFri || c == ComboTueThuSat
}

// Anchor returns the weekday the subscription cycle starts on: Monday for
// "2-4-6", Tuesday for "3-5-7".
func (c Combo) Anchor() time.Weekday {
	if c == ComboTueThuSat {
		return time.Tuesday
	}
	return time.Monday
}

// Weekdays returns the full delivery-day set for the combo.
func (c Combo) Weekdays() []time.Weekday {
	if c == ComboTueThuSat {
		return []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}
	}
	return []time.Weekday{time.Monday, time.Wednesday, time.Friday}
}

// Contains reports whether the given weekday belongs to the combo's
// delivery-day set.
func (c Combo) Contains(day time.Weekday) bool {
	for _, d := range c.Weekdays() {
		if d == day {
			return true
		}
	}
	return false
}

// NextValidDate returns the default start date for a subscription: from
// itself when it already falls on the combo's anchor weekday, otherwise the
// next occurrence of the anchor weekday.
func NextValidDate(c Combo, from time.Time) time.Time {
	anchor := c.Anchor()
	if from.Weekday() == anchor {
		return from
	}

	days := (7 + int(anchor) - int(from.Weekday())) % 7
	next := from.AddDate(0, 0, days)
	if !next.After(from) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// IsValidDeliveryDay reports whether a user-picked date falls on one of the
// combo's delivery weekdays.
func IsValidDeliveryDay(c Combo, date time.Time) bool {
	return c.Contains(date.Weekday())
}
