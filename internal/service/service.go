package service

import (
	"context"
	"time"

	"github.com/seimple/seimple/internal/domain"
	"github.com/seimple/seimple/internal/metrics"
	"github.com/seimple/seimple/internal/repo"
)

// QueryParams are the raw, independently-optional read filters as they
// arrive from the transport layer. Limit is nil when the caller supplied
// none; an explicit out-of-range value is rejected, never clamped.
type QueryParams struct {
	Host   string
	Search string
	Since  string
	Until  string
	Limit  *int
}

type Log interface {
	Ingest(ctx context.Context, data []byte, origin string) (*domain.LogRecord, error)
	Query(ctx context.Context, params QueryParams) ([]domain.LogRecord, error)
	Ping(ctx context.Context) error
}

// Forwarder publishes a stored record to an external broker. A nil
// forwarder disables forwarding.
type Forwarder interface {
	Forward(ctx context.Context, rec *domain.LogRecord) error
}

type Services struct {
	Log Log
}

type ServicesDependencies struct {
	Repos     *repo.Repositories
	Counters  *metrics.Counters
	Forwarder Forwarder
	Now       func() time.Time
}

func NewServices(deps ServicesDependencies) *Services {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Services{
		Log: NewLogService(deps.Repos.Log, deps.Counters, deps.Forwarder, now),
	}
}
