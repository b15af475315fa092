package service

import (
	"context"
	"time"

	"github.com/araddon/dateparse"
	log "github.com/sirupsen/logrus"

	"github.com/seimple/seimple/internal/domain"
	"github.com/seimple/seimple/internal/metrics"
	"github.com/seimple/seimple/internal/repo"
	"github.com/seimple/seimple/internal/repo/repotypes"
	"github.com/seimple/seimple/internal/syslog"
	errorsUtils "github.com/seimple/seimple/pkg/errors"
)

const (
	defaultQueryLimit = 100
	maxQueryLimit     = 1000
)

type LogService struct {
	logRepo   repo.Log
	counters  *metrics.Counters
	forwarder Forwarder
	now       func() time.Time
}

func NewLogService(lr repo.Log, cnt *metrics.Counters, fwd Forwarder, now func() time.Time) *LogService {
	return &LogService{
		logRepo:   lr,
		counters:  cnt,
		forwarder: fwd,
		now:       now,
	}
}

// Ingest runs the write path for one datagram: lenient parse, timestamp
// normalization, durable insert. Malformed payloads degrade to defaults
// and are still stored; only a storage failure is an error.
func (s *LogService) Ingest(ctx context.Context, data []byte, origin string) (*domain.LogRecord, error) {
	receivedAt := s.now().UTC().Truncate(time.Second)

	dg := syslog.ParseDatagram(data, origin)
	s.counters.DatagramsReceived.Inc(parsedLabel(&dg))

	rec := &domain.LogRecord{
		ReceivedAt: receivedAt,
		Priority:   dg.Priority,
		Host:       dg.Host,
		Message:    dg.Message,
	}

	if dg.TimestampText != "" {
		tsText := dg.TimestampText
		rec.TimestampText = &tsText
		if ts, err := syslog.NormalizeTimestamp(tsText, receivedAt); err == nil {
			rec.TimestampUTC = &ts
		}
	}

	if fields, ok := syslog.DetectStructured(rec.Message); ok {
		// Enrichment hook only; the stored columns do not change.
		log.Debugf("Structured message detected: %d fields", len(fields))
	}

	id, err := s.logRepo.StoreLog(ctx, rec)
	if err != nil {
		s.counters.RecordsStored.Inc("error")
		log.Errorf("Store insert failed: %v", err)
		return nil, errorsUtils.WrapPathErr(ErrCannotStoreLog)
	}
	rec.ID = id
	s.counters.RecordsStored.Inc("ok")

	if s.forwarder != nil {
		if err := s.forwarder.Forward(ctx, rec); err != nil {
			s.counters.RecordsForwarded.Inc("error")
		} else {
			s.counters.RecordsForwarded.Inc("ok")
		}
	}

	return rec, nil
}

// Query validates the raw parameters and executes the filtered read.
// Invalid limits and unparsable time bounds are caller errors, reported
// before the store is touched.
func (s *LogService) Query(ctx context.Context, params QueryParams) ([]domain.LogRecord, error) {
	filter := repotypes.LogFilter{
		Host:   params.Host,
		Search: params.Search,
		Limit:  defaultQueryLimit,
	}

	if params.Limit != nil {
		if *params.Limit <= 0 || *params.Limit > maxQueryLimit {
			return nil, ErrInvalidLimit
		}
		filter.Limit = *params.Limit
	}

	var err error
	if filter.Since, err = parseTimeBound(params.Since); err != nil {
		return nil, err
	}
	if filter.Until, err = parseTimeBound(params.Until); err != nil {
		return nil, err
	}

	logs, err := s.logRepo.GetLogs(ctx, filter)
	if err != nil {
		log.Errorf("Store query failed: %v", err)
		return nil, errorsUtils.WrapPathErr(ErrCannotQueryLogs)
	}

	return logs, nil
}

func (s *LogService) Ping(ctx context.Context) error {
	return s.logRepo.Ping(ctx)
}

// parseTimeBound accepts flexible date-time text; a bound without
// explicit zone information is read as UTC.
func parseTimeBound(text string) (time.Time, error) {
	if text == "" {
		return time.Time{}, nil
	}

	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidTimeBound
	}
	return t.UTC(), nil
}

func parsedLabel(dg *domain.Datagram) string {
	if dg.TimestampText != "" {
		return "true"
	}
	return "false"
}
