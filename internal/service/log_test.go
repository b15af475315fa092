package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/seimple/seimple/internal/domain"
	"github.com/seimple/seimple/internal/metrics"
	repository_mock "github.com/seimple/seimple/internal/mocks/repository"
	service_mock "github.com/seimple/seimple/internal/mocks/service"
	"github.com/seimple/seimple/internal/repo/repotypes"
	"github.com/seimple/seimple/internal/service"
)

func intPtr(v int) *int { return &v }

func fixedNow() time.Time {
	return time.Date(2025, time.November, 20, 10, 0, 0, 0, time.UTC)
}

func newLogService(t *testing.T, repo *repository_mock.MockLog, fwd service.Forwarder) service.Log {
	t.Helper()
	return service.NewLogService(repo, metrics.NewTestCounters(), fwd, fixedNow)
}

func TestLogService_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("syslog line is parsed and normalized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().
			StoreLog(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *domain.LogRecord) (int64, error) {
				assert.Equal(t, fixedNow(), rec.ReceivedAt)
				require.NotNil(t, rec.Priority)
				assert.Equal(t, 13, *rec.Priority)
				require.NotNil(t, rec.TimestampText)
				assert.Equal(t, "Nov 13 12:34:56", *rec.TimestampText)
				require.NotNil(t, rec.TimestampUTC)
				assert.Equal(t, time.Date(2025, time.November, 13, 12, 34, 56, 0, time.UTC), *rec.TimestampUTC)
				assert.Equal(t, "web-01", rec.Host)
				assert.Equal(t, "disk full", rec.Message)
				return 42, nil
			})

		svc := newLogService(t, mockRepo, nil)

		rec, err := svc.Ingest(ctx, []byte("<13>Nov 13 12:34:56 web-01 disk full"), "10.0.0.1")

		require.NoError(t, err)
		assert.Equal(t, int64(42), rec.ID)
	})

	t.Run("non-conforming datagram degrades to defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().
			StoreLog(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *domain.LogRecord) (int64, error) {
				assert.Nil(t, rec.Priority)
				assert.Nil(t, rec.TimestampText)
				assert.Nil(t, rec.TimestampUTC)
				assert.Equal(t, "10.0.0.1", rec.Host)
				assert.Equal(t, "hello world", rec.Message)
				return 1, nil
			})

		svc := newLogService(t, mockRepo, nil)

		rec, err := svc.Ingest(ctx, []byte("hello world"), "10.0.0.1")

		require.NoError(t, err)
		assert.Equal(t, fixedNow(), rec.EffectiveTime())
	})

	t.Run("unparsable timestamp keeps raw text only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().
			StoreLog(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *domain.LogRecord) (int64, error) {
				require.NotNil(t, rec.TimestampText)
				assert.Equal(t, "Feb 29 12:00:00", *rec.TimestampText)
				assert.Nil(t, rec.TimestampUTC)
				return 2, nil
			})

		svc := newLogService(t, mockRepo, nil)

		// 2025 is not a leap year, so normalization fails but the raw
		// text survives.
		_, err := svc.Ingest(ctx, []byte("Feb 29 12:00:00 host-a boom"), "10.0.0.1")

		require.NoError(t, err)
	})

	t.Run("storage failure is surfaced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().
			StoreLog(ctx, gomock.Any()).
			Return(int64(0), errors.New("db down"))

		svc := newLogService(t, mockRepo, nil)

		_, err := svc.Ingest(ctx, []byte("anything"), "10.0.0.1")

		assert.ErrorIs(t, err, service.ErrCannotStoreLog)
	})

	t.Run("forwarder receives the stored record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().
			StoreLog(ctx, gomock.Any()).
			Return(int64(7), nil)

		mockFwd := service_mock.NewMockForwarder(ctrl)
		mockFwd.EXPECT().
			Forward(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, rec *domain.LogRecord) error {
				assert.Equal(t, int64(7), rec.ID)
				return nil
			})

		svc := newLogService(t, mockRepo, mockFwd)

		_, err := svc.Ingest(ctx, []byte("msg"), "10.0.0.1")

		require.NoError(t, err)
	})

	t.Run("forwarder failure does not fail ingestion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := repository_mock.NewMockLog(ctrl)
		mockRepo.EXPECT().
			StoreLog(ctx, gomock.Any()).
			Return(int64(8), nil)

		mockFwd := service_mock.NewMockForwarder(ctrl)
		mockFwd.EXPECT().
			Forward(ctx, gomock.Any()).
			Return(errors.New("broker unreachable"))

		svc := newLogService(t, mockRepo, mockFwd)

		rec, err := svc.Ingest(ctx, []byte("msg"), "10.0.0.1")

		require.NoError(t, err)
		assert.Equal(t, int64(8), rec.ID)
	})
}

func TestLogService_Query(t *testing.T) {
	ctx := context.Background()

	sampleLogs := []domain.LogRecord{
		{ID: 2, ReceivedAt: fixedNow(), Host: "web-01", Message: "ERROR disk full"},
		{ID: 1, ReceivedAt: fixedNow().Add(-time.Hour), Host: "web-01", Message: "info ok"},
	}

	testCases := []struct {
		name         string
		params       service.QueryParams
		mockBehavior func(r *repository_mock.MockLog)
		want         []domain.LogRecord
		wantErr      error
	}{
		{
			name:   "no parameters uses default limit",
			params: service.QueryParams{},
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().
					GetLogs(ctx, repotypes.LogFilter{Limit: 100}).
					Return(sampleLogs, nil)
			},
			want: sampleLogs,
		},
		{
			name:   "limit zero is rejected, not clamped",
			params: service.QueryParams{Limit: intPtr(0)},
			mockBehavior: func(r *repository_mock.MockLog) {
				// The store must never be touched.
			},
			wantErr: service.ErrInvalidLimit,
		},
		{
			name:         "limit above the ceiling is rejected",
			params:       service.QueryParams{Limit: intPtr(1001)},
			mockBehavior: func(r *repository_mock.MockLog) {},
			wantErr:      service.ErrInvalidLimit,
		},
		{
			name:   "limit at the ceiling is accepted",
			params: service.QueryParams{Limit: intPtr(1000)},
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().
					GetLogs(ctx, repotypes.LogFilter{Limit: 1000}).
					Return(sampleLogs, nil)
			},
			want: sampleLogs,
		},
		{
			name:         "unparsable since is a caller error",
			params:       service.QueryParams{Since: "not-a-date"},
			mockBehavior: func(r *repository_mock.MockLog) {},
			wantErr:      service.ErrInvalidTimeBound,
		},
		{
			name:         "unparsable until is a caller error",
			params:       service.QueryParams{Until: "tomorrow-ish"},
			mockBehavior: func(r *repository_mock.MockLog) {},
			wantErr:      service.ErrInvalidTimeBound,
		},
		{
			name:   "naive bound is read as UTC",
			params: service.QueryParams{Since: "2025-11-11 00:00:00"},
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().
					GetLogs(ctx, repotypes.LogFilter{
						Since: time.Date(2025, time.November, 11, 0, 0, 0, 0, time.UTC),
						Limit: 100,
					}).
					Return(sampleLogs, nil)
			},
			want: sampleLogs,
		},
		{
			name:   "all filters pass through",
			params: service.QueryParams{Host: "web-01", Search: "error", Since: "2025-11-11T00:00:00Z", Limit: intPtr(10)},
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().
					GetLogs(ctx, repotypes.LogFilter{
						Host:   "web-01",
						Search: "error",
						Since:  time.Date(2025, time.November, 11, 0, 0, 0, 0, time.UTC),
						Limit:  10,
					}).
					Return(sampleLogs[:1], nil)
			},
			want: sampleLogs[:1],
		},
		{
			name:   "storage failure is a server error",
			params: service.QueryParams{},
			mockBehavior: func(r *repository_mock.MockLog) {
				r.EXPECT().
					GetLogs(ctx, repotypes.LogFilter{Limit: 100}).
					Return(nil, errors.New("db down"))
			},
			wantErr: service.ErrCannotQueryLogs,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := repository_mock.NewMockLog(ctrl)
			tc.mockBehavior(mockRepo)

			svc := newLogService(t, mockRepo, nil)

			got, err := svc.Query(ctx, tc.params)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
