package utils

import "time"

// AgeAt returns the age in whole years at the reference time. A zero birth
// date yields 0, and the result is never negative.
func AgeAt(birthDate, at time.Time) int {
	if birthDate.IsZero() {
		return 0
	}

	age := at.Year() - birthDate.Year()

	// Birthday not reached yet this year
	if at.Month() < birthDate.Month() ||
		(at.Month() == birthDate.Month() && at.Day() < birthDate.Day()) {
		age--
	}

	if age < 0 {
		return 0
	}
	return age
}

// Age returns the current age in whole years for a birth date.
func Age(birthDate time.Time) int {
	return AgeAt(birthDate, time.Now())
}

// BirthDateWindow translates an inclusive age range into a birth-date
// interval: a person aged in [minAge, maxAge] at the reference time was born
// after `from` (exclusive lower bound, zero when maxAge < 0) and on or
// before `to` (zero when minAge < 0). Pass -1 to leave a bound open.
func BirthDateWindow(minAge, maxAge int, at time.Time) (from, to time.Time) {
	if maxAge >= 0 {
		// Older than maxAge means born on or before this instant.
		from = at.AddDate(-(maxAge + 1), 0, 0)
	}
	if minAge >= 0 {
		to = at.AddDate(-minAge, 0, 0)
	}
	return from, to
}
