package scheduler

import (
	"context"
	"sync"
	"time"

	"smartbiz/internal/models"

	"github.com/rs/zerolog"
)

// DefaultInterval is the poll cadence when none is configured.
const DefaultInterval = 10 * time.Second

// ReminderStore is the slice of the persistent store the worker needs.
type ReminderStore interface {
	FindDue(now time.Time) ([]models.Reminder, error)
	UpdateStatus(id uint, status models.ReminderStatus) error
	Reschedule(id uint, next time.Time) error
}

// Dispatcher delivers one message and reports whether the gateway
// accepted it.
type Dispatcher interface {
	Send(ctx context.Context, recipientID, message string) bool
}

// Worker is the background loop that scans for due reminders and
// dispatches them. One instance per deployment: there is no cross-instance
// claim on due rows, so running several workers against the same store can
// double-send.
type Worker struct {
	store      ReminderStore
	dispatcher Dispatcher
	interval   time.Duration
	log        zerolog.Logger
	wg         sync.WaitGroup
}

func NewWorker(store ReminderStore, dispatcher Dispatcher, interval time.Duration, log zerolog.Logger) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{
		store:      store,
		dispatcher: dispatcher,
		interval:   interval,
		log:        log.With().Str("component", "scheduler").Logger(),
	}
}

// Start launches the poll loop. Cancelling ctx stops it.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop blocks until the loop has exited, including any in-flight tick.
func (w *Worker) Stop() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info().Dur("interval", w.interval).Msg("scheduler started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			w.tick(ctx, time.Now().UTC())
		}
	}
}

// tick runs one scan-and-dispatch cycle. A store failure here only skips
// this cycle; the next tick scans again.
func (w *Worker) tick(ctx context.Context, now time.Time) {
	due, err := w.store.FindDue(now)
	if err != nil {
		w.log.Error().Err(err).Msg("due scan failed")
		return
	}

	for _, reminder := range due {
		w.process(ctx, reminder)
	}
}

// process handles a single due row. A panic or error on one row must not
// stop the rest of the batch.
func (w *Worker) process(ctx context.Context, r models.Reminder) {
	defer func() {
		if p := recover(); p != nil {
			w.log.Error().Interface("panic", p).Uint("id", r.ID).Msg("reminder processing panicked")
		}
	}()

	// A cancelled context means shutdown, not a gateway failure. The row
	// stays scheduled so the next startup's tick retries it.
	if ctx.Err() != nil {
		return
	}

	ok := w.dispatcher.Send(ctx, r.RecipientID, r.Message)
	if !ok && ctx.Err() != nil {
		w.log.Info().Uint("id", r.ID).Msg("dispatch interrupted by shutdown, row stays scheduled")
		return
	}

	switch {
	case ok && r.RepeatKind.IsNone():
		if err := w.store.UpdateStatus(r.ID, models.StatusSent); err != nil {
			w.log.Error().Err(err).Uint("id", r.ID).Msg("failed to mark reminder sent")
			return
		}
		w.log.Info().Uint("id", r.ID).Str("recipient_id", r.RecipientID).Msg("reminder sent")

	case ok:
		next := r.NextSendTime()
		if err := w.store.Reschedule(r.ID, next); err != nil {
			w.log.Error().Err(err).Uint("id", r.ID).Msg("failed to reschedule reminder")
			return
		}
		w.log.Info().
			Uint("id", r.ID).
			Str("recipient_id", r.RecipientID).
			Time("next_send_time", next).
			Msg("recurring reminder sent")

	case r.RepeatKind.IsNone():
		if err := w.store.UpdateStatus(r.ID, models.StatusFailed); err != nil {
			w.log.Error().Err(err).Uint("id", r.ID).Msg("failed to mark reminder failed")
			return
		}
		w.log.Warn().Uint("id", r.ID).Str("recipient_id", r.RecipientID).Msg("reminder dispatch failed")

	default:
		// Recurring rows keep their original send_time on failure, so they
		// stay due and are retried on the very next tick until a send
		// succeeds or the row is cancelled.
		w.log.Warn().
			Uint("id", r.ID).
			Str("recipient_id", r.RecipientID).
			Msg("recurring dispatch failed, will retry next tick")
	}
}
