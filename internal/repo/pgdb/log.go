package pgdb

import (
	"context"
	"time"

	"github.com/seimple/seimple/internal/domain"
	"github.com/seimple/seimple/internal/repo/repotypes"
	errorsUtils "github.com/seimple/seimple/pkg/errors"
	"github.com/seimple/seimple/pkg/postgres"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type LogRepo struct {
	*postgres.Postgres
}

func NewLogRepo(pg *postgres.Postgres) *LogRepo {
	return &LogRepo{pg}
}

// logRow mirrors the fixed column contract: instants are stored as UTC
// ISO-8601 text with a Z suffix, nullable columns as pointers.
type logRow struct {
	ID         int64   `db:"id"`
	ReceivedAt string  `db:"received_at"`
	Pri        *int    `db:"pri"`
	TsText     *string `db:"ts_text"`
	TsUTC      *string `db:"ts_utc"`
	Host       *string `db:"host"`
	Msg        *string `db:"msg"`
}

func (r *LogRepo) StoreLog(ctx context.Context, rec *domain.LogRecord) (int64, error) {
	var tsUTC *string
	if rec.TimestampUTC != nil {
		formatted := formatUTC(*rec.TimestampUTC)
		tsUTC = &formatted
	}

	sql, args, _ := r.Builder.
		Insert("logs").
		Columns("received_at", "pri", "ts_text", "ts_utc", "host", "msg").
		Values(formatUTC(rec.ReceivedAt), rec.Priority, rec.TimestampText, tsUTC, rec.Host, rec.Message).
		Suffix("RETURNING id").
		ToSql()

	var id int64
	err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return id, nil
}

func (r *LogRepo) GetLogs(ctx context.Context, filter repotypes.LogFilter) ([]domain.LogRecord, error) {
	conds, limit := BuildLogQueryFilters(filter)

	query := r.Builder.
		Select("id", "received_at", "pri", "ts_text", "ts_utc", "host", "msg").
		From("logs").
		OrderBy(effectiveTime + " DESC").
		Limit(limit)

	if len(conds) > 0 {
		query = query.Where(sq.And(conds))
	}

	sql, args, _ := query.ToSql()
	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	stored, err := pgx.CollectRows(rows, pgx.RowToStructByName[logRow])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	logs := make([]domain.LogRecord, 0, len(stored))
	for i := range stored {
		rec, err := toDomain(&stored[i])
		if err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		logs = append(logs, rec)
	}

	return logs, nil
}

func (r *LogRepo) Ping(ctx context.Context) error {
	if err := r.Pool.Ping(ctx); err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

func toDomain(row *logRow) (domain.LogRecord, error) {
	receivedAt, err := time.Parse(domain.TimeLayout, row.ReceivedAt)
	if err != nil {
		return domain.LogRecord{}, err
	}

	rec := domain.LogRecord{
		ID:            row.ID,
		ReceivedAt:    receivedAt,
		Priority:      row.Pri,
		TimestampText: row.TsText,
	}

	if row.TsUTC != nil {
		ts, err := time.Parse(domain.TimeLayout, *row.TsUTC)
		if err != nil {
			return domain.LogRecord{}, err
		}
		rec.TimestampUTC = &ts
	}

	if row.Host != nil {
		rec.Host = *row.Host
	}
	if row.Msg != nil {
		rec.Message = *row.Msg
	}

	return rec, nil
}
