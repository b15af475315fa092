package httpv1

import (
	"github.com/seimple/seimple/internal/domain"
)

type logResponse struct {
	ID         int64   `json:"id"`
	ReceivedAt string  `json:"received_at"`
	Pri        *int    `json:"pri"`
	TsText     *string `json:"ts_text"`
	TsUTC      *string `json:"ts_utc"`
	Host       string  `json:"host"`
	Msg        string  `json:"msg"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func ToLogResponse(rec *domain.LogRecord) logResponse {
	resp := logResponse{
		ID:         rec.ID,
		ReceivedAt: rec.ReceivedAt.Format(domain.TimeLayout),
		Pri:        rec.Priority,
		TsText:     rec.TimestampText,
		Host:       rec.Host,
		Msg:        rec.Message,
	}
	if rec.TimestampUTC != nil {
		formatted := rec.TimestampUTC.Format(domain.TimeLayout)
		resp.TsUTC = &formatted
	}
	return resp
}

func ToLogsResponse(logs []domain.LogRecord) []logResponse {
	resp := make([]logResponse, 0, len(logs))
	for i := range logs {
		resp = append(resp, ToLogResponse(&logs[i]))
	}
	return resp
}
