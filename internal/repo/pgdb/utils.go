package pgdb

import (
	"time"

	"github.com/seimple/seimple/internal/domain"
	"github.com/seimple/seimple/internal/repo/repotypes"

	sq "github.com/Masterminds/squirrel"
)

// effectiveTime coalesces the normalized syslog timestamp with the
// collector receipt time; both columns hold fixed-layout UTC text, so
// text comparison is chronological comparison.
const effectiveTime = "COALESCE(ts_utc, received_at)"

const defaultLimit = 100

// BuildLogQueryFilters turns the optional filter fields into conjunctive
// squirrel clauses plus the row ceiling. Absent fields add no clause.
func BuildLogQueryFilters(filter repotypes.LogFilter) ([]sq.Sqlizer, uint64) {
	conds := []sq.Sqlizer{}

	if filter.Host != "" {
		conds = append(conds, sq.Eq{"host": filter.Host})
	}

	if filter.Search != "" {
		conds = append(conds, sq.ILike{"msg": "%" + filter.Search + "%"})
	}

	if !filter.Since.IsZero() {
		conds = append(conds, sq.GtOrEq{effectiveTime: formatUTC(filter.Since)})
	}

	if !filter.Until.IsZero() {
		conds = append(conds, sq.LtOrEq{effectiveTime: formatUTC(filter.Until)})
	}

	limit := uint64(defaultLimit)
	if filter.Limit > 0 {
		limit = uint64(filter.Limit)
	}

	return conds, limit
}

func formatUTC(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(domain.TimeLayout)
}
