// Package service runs the upload pipeline: decode a spreadsheet, resolve
// the weekday tabs, normalize each day and aggregate the week.
package service

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/okian/chargesense/internal/adapters/reader"
	"github.com/okian/chargesense/internal/domain/aggregate"
	"github.com/okian/chargesense/internal/domain/daysheet"
	"github.com/okian/chargesense/internal/domain/model"
	"github.com/okian/chargesense/internal/domain/tabs"
	"github.com/okian/chargesense/internal/domain/types"
	"github.com/okian/chargesense/pkg/logger"
	"github.com/okian/chargesense/pkg/metrics"
)

// Service summarizes weekly attendance spreadsheets. It holds no per-upload
// state, so one Service may serve concurrent uploads.
type Service struct {
	logger logger.Logger

	accepted    atomic.Int64
	rejected    atomic.Int64
	rowsEmitted atomic.Int64
	rowsDropped atomic.Int64
	startedAt   time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service.
func New(opts ...Option) *Service {
	s := &Service{startedAt: time.Now()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("pipeline")
	}
	return s
}

// Summarize decodes the upload named filename and returns the weekly summary.
//
// Errors are *reader.UnsupportedFileTypeError, *reader.FileReadError,
// *tabs.MissingTabsError or the context error. Nothing partial is returned
// on failure.
func (s *Service) Summarize(ctx context.Context, filename string, r io.Reader) (types.Summary, error) {
	start := time.Now()
	counted := &countingReader{r: r}

	summary, emitted, err := s.run(ctx, filename, counted)

	elapsed := time.Since(start)
	outcome := outcomeOf(err)
	metrics.RecordUpload(outcome, counted.n, float64(elapsed.Microseconds())/1000)

	if err != nil {
		s.rejected.Add(1)
		s.logger.Warn(ctx, "upload rejected",
			logger.String("filename", filename),
			logger.String("outcome", outcome),
			logger.Int64("bytes", counted.n),
			logger.Error(err),
		)
		return types.Summary{}, err
	}

	s.accepted.Add(1)
	s.logger.Info(ctx, "upload summarized",
		logger.String("filename", filename),
		logger.Int64("bytes", counted.n),
		logger.Int("segments", emitted),
		logger.Duration("elapsed", elapsed),
	)
	return summary, nil
}

func (s *Service) run(ctx context.Context, filename string, r io.Reader) (types.Summary, int, error) {
	wb, err := reader.Read(filename, r)
	if err != nil {
		return types.Summary{}, 0, err
	}
	s.logger.Debug(ctx, "workbook decoded",
		logger.String("filename", filename),
		logger.Int("tabs", len(wb)),
	)

	resolved, err := tabs.Resolve(wb)
	if err != nil {
		var missing *tabs.MissingTabsError
		if errors.As(err, &missing) {
			for _, day := range missing.Missing {
				metrics.RecordMissingTab(string(day))
			}
		}
		return types.Summary{}, 0, err
	}

	days := make([]model.DayResult, 0, len(resolved))
	dropped := 0
	for _, res := range resolved {
		if err := ctx.Err(); err != nil {
			return types.Summary{}, 0, err
		}
		day := daysheet.Process(res.Day, res.Sheet)
		s.logger.Debug(ctx, "day processed",
			logger.String("day", string(res.Day)),
			logger.String("tab", res.Tab),
			logger.Int("rows", len(day.Rows)),
			logger.Int("dropped", day.Dropped),
			logger.Float64("total", day.TotalCharge),
		)
		dropped += day.Dropped
		days = append(days, day)
	}

	summary := aggregate.Summarize(days)
	emitted := len(summary.CustomerSegments)

	s.rowsEmitted.Add(int64(emitted))
	s.rowsDropped.Add(int64(dropped))
	metrics.RecordRows(emitted, dropped)

	return summary, emitted, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"uploadsAccepted": s.accepted.Load(),
		"uploadsRejected": s.rejected.Load(),
		"rowsEmitted":     s.rowsEmitted.Load(),
		"rowsDropped":     s.rowsDropped.Load(),
		"uptimeSeconds":   int64(time.Since(s.startedAt).Seconds()),
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, reader.ErrUnsupportedFileType):
		return metrics.OutcomeUnsupportedType
	case errors.Is(err, reader.ErrFileRead):
		return metrics.OutcomeReadFailed
	case errors.Is(err, tabs.ErrMissingTabs):
		return metrics.OutcomeMissingTabs
	default:
		return metrics.OutcomeError
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
