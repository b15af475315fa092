package syslog

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/seimple/seimple/internal/domain"
)

// Lenient RFC3164-ish grammar: optional <PRI>, a "Mon  2 15:04:05"
// timestamp token, an optional hostname token, then the message
// (including embedded newlines).
var lineRegexp = regexp.MustCompile(`(?s)^(?:<(\d+)>)?(\w{3}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2})\s+([\w.\-]+)?\s*(.*)$`)

// ParseDatagram extracts priority, timestamp text, host and message from
// a raw datagram payload. It never fails: a payload that does not match
// the grammar degrades to host = origin, message = whole payload. Invalid
// byte sequences are replaced, never fatal.
func ParseDatagram(data []byte, origin string) domain.Datagram {
	text := decodeReplace(bytes.TrimSpace(data))

	dg := domain.Datagram{
		Host:    origin,
		Message: text,
	}

	m := lineRegexp.FindStringSubmatch(text)
	if m == nil {
		return dg
	}

	if m[1] != "" {
		if pri, err := strconv.Atoi(m[1]); err == nil {
			dg.Priority = &pri
		}
	}

	dg.TimestampText = m[2]
	if m[3] != "" {
		dg.Host = m[3]
	}
	dg.Message = m[4]

	return dg
}

// decodeReplace substitutes every invalid byte with U+FFFD instead of
// failing ingestion.
func decodeReplace(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	var b strings.Builder
	b.Grow(len(data))
	for _, r := range string(data) {
		b.WriteRune(r)
	}
	return b.String()
}

// DetectStructured reports whether the trimmed message is an
// object-shaped JSON block and, if so, returns the decoded fields.
// Purely a forward-compatible enrichment hook: decode failures are
// ignored and nothing about the stored record depends on the result.
func DetectStructured(message string) (map[string]any, bool) {
	trimmed := strings.TrimSpace(message)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return nil, false
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return nil, false
	}
	return fields, true
}
