package domain

import "time"

// Day is a convenience constructor for a UTC-midnight date. All trading,
// expiry and earnings dates in the system are stored this way.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Midnight truncates a timestamp to its UTC date.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative when
// b precedes a). Both arguments are expected to be UTC midnights.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
