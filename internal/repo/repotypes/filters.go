package repotypes

import "time"

// LogFilter carries the validated, already-absolute query constraints.
// Zero values mean "no constraint"; time bounds are inclusive.
type LogFilter struct {
	Host   string
	Search string
	Since  time.Time
	Until  time.Time
	Limit  int
}
