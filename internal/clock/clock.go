// Package clock abstracts the wall clock so date-anchored queries can be tested deterministically.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System reads the process wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time { return time.Time(f) }

// Date is a convenience for building a Fixed clock at midnight UTC.
func Date(year int, month time.Month, day int) Fixed {
	return Fixed(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
