// Package submit holds the flat submission record produced by a valid pass
// and the Submitter seam it is handed to. The shipped submitter only logs the
// record; delivering it to a remote endpoint is left to callers.
package submit

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// ErrSubmitFailed marks a failure reported by a Submitter.
var ErrSubmitFailed = errors.New("submit: delivery failed")

// Submitter receives the record of a valid submission.
type Submitter interface {
	Submit(ctx context.Context, rec Record) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, rec Record) error

func (fn SubmitterFunc) Submit(ctx context.Context, rec Record) error {
	return fn(ctx, rec)
}

// LogSubmitter writes the record to a structured logger.
type LogSubmitter struct {
	logger *log.Logger
}

// NewLogSubmitter returns a submitter logging to logger, or discarding when
// logger is nil.
func NewLogSubmitter(logger *log.Logger) *LogSubmitter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &LogSubmitter{logger: logger}
}

func (s *LogSubmitter) Submit(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := rec.MarshalJSON()
	if err != nil {
		return errors.Join(ErrSubmitFailed, err)
	}
	s.logger.Info("form data",
		"id", rec.ID,
		"submitted_at", rec.SubmittedAt,
		"keys", len(rec.Entries),
		"body", string(body),
	)
	return nil
}
