package domain

import "time"

// TimeLayout is the canonical rendering of every stored instant: UTC,
// second precision, literal Z suffix. Timestamps live in plain text
// columns, so a single fixed-width layout keeps lexicographic order
// equal to chronological order.
const TimeLayout = "2006-01-02T15:04:05Z07:00"

type LogRecord struct {
	ID            int64      `json:"id"`
	ReceivedAt    time.Time  `json:"received_at"`
	Priority      *int       `json:"pri"`
	TimestampText *string    `json:"ts_text"`
	TimestampUTC  *time.Time `json:"ts_utc"`
	Host          string     `json:"host"`
	Message       string     `json:"msg"`
}

// EffectiveTime is the instant used for filtering and ordering: the
// normalized syslog timestamp when one was extracted, otherwise the
// moment the collector received the datagram.
func (r *LogRecord) EffectiveTime() time.Time {
	if r.TimestampUTC != nil {
		return *r.TimestampUTC
	}
	return r.ReceivedAt
}

// Datagram is the result of the lenient syslog line parse. An empty
// TimestampText means no timestamp-shaped token was found; Host and
// Message are always populated.
type Datagram struct {
	Priority      *int
	TimestampText string
	Host          string
	Message       string
}
