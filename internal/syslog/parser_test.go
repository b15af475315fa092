package syslog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seimple/seimple/internal/domain"
	"github.com/seimple/seimple/internal/syslog"
)

func intPtr(v int) *int { return &v }

func TestParseDatagram(t *testing.T) {
	const origin = "10.0.0.1"

	testCases := []struct {
		name string
		data []byte
		want domain.Datagram
	}{
		{
			name: "full line with priority",
			data: []byte("<34>Nov 13 12:34:56 myhost su: 'su root' failed"),
			want: domain.Datagram{
				Priority:      intPtr(34),
				TimestampText: "Nov 13 12:34:56",
				Host:          "myhost",
				Message:       "su: 'su root' failed",
			},
		},
		{
			name: "no priority",
			data: []byte("Nov 13 12:34:56 web-01 disk full"),
			want: domain.Datagram{
				TimestampText: "Nov 13 12:34:56",
				Host:          "web-01",
				Message:       "disk full",
			},
		},
		{
			name: "single digit day",
			data: []byte("<13>Jan  3 01:02:03 db.internal started"),
			want: domain.Datagram{
				Priority:      intPtr(13),
				TimestampText: "Jan  3 01:02:03",
				Host:          "db.internal",
				Message:       "started",
			},
		},
		{
			name: "multiline message",
			data: []byte("Nov 13 12:34:56 app-1 line one\nline two"),
			want: domain.Datagram{
				TimestampText: "Nov 13 12:34:56",
				Host:          "app-1",
				Message:       "line one\nline two",
			},
		},
		{
			name: "timestamp and host only",
			data: []byte("Nov 13 12:34:56 lonely-host "),
			want: domain.Datagram{
				TimestampText: "Nov 13 12:34:56",
				Host:          "lonely-host",
				Message:       "",
			},
		},
		{
			name: "non-conforming line falls back entirely",
			data: []byte("plain text without any structure"),
			want: domain.Datagram{
				Host:    origin,
				Message: "plain text without any structure",
			},
		},
		{
			name: "empty datagram",
			data: []byte(""),
			want: domain.Datagram{
				Host:    origin,
				Message: "",
			},
		},
		{
			name: "whitespace only",
			data: []byte("   \n\t  "),
			want: domain.Datagram{
				Host:    origin,
				Message: "",
			},
		},
		{
			name: "invalid utf8 is replaced, not fatal",
			data: []byte{0xff, 0xfe, 0xfd},
			want: domain.Datagram{
				Host:    origin,
				Message: "���",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := syslog.ParseDatagram(tc.data, origin)
			assert.Equal(t, tc.want, got)

			// The contract: host and message are never absent.
			assert.NotEmpty(t, got.Host)
		})
	}
}

func TestParseDatagram_GreedyHostToken(t *testing.T) {
	// A word-shaped token right after the timestamp is taken as the
	// host even when the sender meant it as the first message word.
	got := syslog.ParseDatagram([]byte("Nov 13 12:34:56 hello world"), "10.0.0.1")

	assert.Equal(t, "hello", got.Host)
	assert.Equal(t, "world", got.Message)
}

func TestDetectStructured(t *testing.T) {
	testCases := []struct {
		name    string
		message string
		wantOK  bool
		want    map[string]any
	}{
		{
			name:    "json object",
			message: `{"event":"login","user":"root"}`,
			wantOK:  true,
			want:    map[string]any{"event": "login", "user": "root"},
		},
		{
			name:    "json object with surrounding whitespace",
			message: "  {\"a\":1}\n",
			wantOK:  true,
			want:    map[string]any{"a": float64(1)},
		},
		{
			name:    "braces but not json",
			message: "{not json at all}",
			wantOK:  false,
		},
		{
			name:    "plain text",
			message: "ERROR disk full",
			wantOK:  false,
		},
		{
			name:    "json array is not object-shaped",
			message: `["a","b"]`,
			wantOK:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := syslog.DetectStructured(tc.message)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
