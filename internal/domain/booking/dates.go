package booking

import (
	"time"
)

// DateLayout is the only accepted calendar date format. Dates are stored and
// compared as strings in this layout, without timezone handling.
const DateLayout = "2006-01-02"

func ValidDate(date string) bool {
	if len(date) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

func ValidateDates(dates []string) error {
	for _, d := range dates {
		if !ValidDate(d) {
			return InvalidDate(d)
		}
	}
	return nil
}

// EventStart is midnight UTC of the booked date.
func EventStart(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// MergeDates returns current with every date in add appended once, keeping
// first-seen order.
func MergeDates(current, add []string) []string {
	seen := make(map[string]struct{}, len(current)+len(add))
	out := make([]string, 0, len(current)+len(add))
	for _, list := range [][]string{current, add} {
		for _, d := range list {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// RemoveDates drops every date in remove from current.
func RemoveDates(current, remove []string) []string {
	drop := make(map[string]struct{}, len(remove))
	for _, d := range remove {
		drop[d] = struct{}{}
	}
	out := make([]string, 0, len(current))
	for _, d := range current {
		if _, ok := drop[d]; !ok {
			out = append(out, d)
		}
	}
	return out
}
