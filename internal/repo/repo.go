package repo

import (
	"context"

	"github.com/seimple/seimple/internal/domain"
	"github.com/seimple/seimple/internal/repo/pgdb"
	"github.com/seimple/seimple/internal/repo/repotypes"
	"github.com/seimple/seimple/pkg/postgres"
)

type Log interface {
	StoreLog(ctx context.Context, rec *domain.LogRecord) (int64, error)
	GetLogs(ctx context.Context, filter repotypes.LogFilter) ([]domain.LogRecord, error)
	Ping(ctx context.Context) error
}

type Repositories struct {
	Log
}

func NewRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Log: pgdb.NewLogRepo(pg),
	}
}
