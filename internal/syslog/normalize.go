package syslog

import (
	"fmt"
	"time"
)

const (
	normalizeLayout = "Jan _2 15:04:05 2006"

	// Year-less timestamps landing further than this in the future are
	// assumed to be December logs read in January and get last year.
	rolloverWindow = 180 * 24 * time.Hour
)

// NormalizeTimestamp converts a year-less syslog timestamp such as
// "Nov 13 12:34:56" into an absolute UTC instant, inferring the year
// from now. The token is treated as already expressed in UTC; no
// source-local-timezone conversion is attempted (a known simplification
// inherited from the collector's contract).
//
// A candidate more than 180 days ahead of now is re-derived with the
// previous year; exactly 180 days ahead is accepted as is. Tokens that
// do not form a real date in the inferred year (Feb 29 outside a leap
// year) yield an error, which ingestion records as "no normalized
// timestamp" rather than a failure.
func NormalizeTimestamp(text string, now time.Time) (time.Time, error) {
	now = now.UTC()

	candidate, err := parseWithYear(text, now.Year())
	if err != nil {
		return time.Time{}, err
	}

	if candidate.Sub(now) > rolloverWindow {
		candidate, err = parseWithYear(text, now.Year()-1)
		if err != nil {
			return time.Time{}, err
		}
	}

	return candidate, nil
}

func parseWithYear(text string, year int) (time.Time, error) {
	return time.ParseInLocation(normalizeLayout, fmt.Sprintf("%s %d", text, year), time.UTC)
}
