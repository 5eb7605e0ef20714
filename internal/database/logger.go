package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// filteredLogger adapts gorm's logging to zerolog and drops queries that
// match any of the ignored substrings (the scheduler's polling query).
type filteredLogger struct {
	log             zerolog.Logger
	slowThreshold   time.Duration
	ignoredPatterns []string
}

func newFilteredLogger(log zerolog.Logger, ignoredPatterns ...string) *filteredLogger {
	return &filteredLogger{
		log:             log.With().Str("component", "gorm").Logger(),
		slowThreshold:   time.Second,
		ignoredPatterns: ignoredPatterns,
	}
}

func (l *filteredLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *filteredLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log.Info().Msgf(msg, args...)
}

func (l *filteredLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log.Warn().Msgf(msg, args...)
}

func (l *filteredLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log.Error().Msgf(msg, args...)
}

func (l *filteredLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	for _, pattern := range l.ignoredPatterns {
		if strings.Contains(sql, pattern) {
			return
		}
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query failed")
	case elapsed > l.slowThreshold:
		l.log.Warn().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("slow query")
	default:
		l.log.Debug().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query")
	}
}
