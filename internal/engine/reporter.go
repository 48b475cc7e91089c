package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/duel-arcade/internal/core"
)

// OutcomeSink persists a finished round. storage.Store.Sink returns one.
type OutcomeSink interface {
	SaveOutcome(ctx context.Context, o core.Outcome) error
}

// Reporter is the persistence bridge handed to games. RecordOutcome returns
// immediately; the write happens on its own goroutine and failures are logged.
type Reporter struct {
	sink    OutcomeSink
	logger  *log.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewReporter wraps sink. A nil sink makes every report a no-op.
// A nil logger discards warnings.
func NewReporter(sink OutcomeSink, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reporter{
		sink:    sink,
		logger:  logger.WithPrefix("outcomes"),
		timeout: 5 * time.Second,
	}
}

// RecordOutcome implements core.OutcomeRecorder.
func (r *Reporter) RecordOutcome(o core.Outcome) {
	if r == nil || r.sink == nil {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("outcome sink panicked", "game", o.GameID, "panic", p)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.sink.SaveOutcome(ctx, o); err != nil {
			r.logger.Warn("could not record outcome", "game", o.GameID, "winner", int(o.Winner), "error", err)
			return
		}
		r.logger.Debug("outcome recorded", "game", o.GameID, "winner", int(o.Winner), "score1", o.Score1, "score2", o.Score2)
	}()
}

// Flush waits for in-flight writes. Hosts call it before closing the store.
func (r *Reporter) Flush() {
	if r == nil {
		return
	}
	r.wg.Wait()
}

var _ core.OutcomeRecorder = (*Reporter)(nil)
