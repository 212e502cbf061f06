package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/example/holdbot/internal/application/usecases"
	"github.com/example/holdbot/internal/domain/catalog"
	"github.com/example/holdbot/internal/domain/session"
)

var tracer = otel.Tracer("holdbot/runner")

// DefaultPause is the wait between two book checks.
const DefaultPause = 25 * time.Second

type Checker interface {
	Execute(ctx context.Context, target catalog.BookTarget) catalog.Outcome
}

type SessionProvider interface {
	Execute(ctx context.Context) (session.Blob, error)
}

// Runner makes one serial pass over a list of books.
type Runner struct {
	Session  SessionProvider
	Browser  catalog.Browser
	Checker  Checker
	Notifier catalog.Notifier

	Pause time.Duration
	Sleep usecases.SleepFunc

	Log *slog.Logger
}

type Summary struct {
	Total     int
	Successes int
	Outcomes  []catalog.Outcome
}

func (s Summary) Failures() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.ErrorDetail != "" {
			n++
		}
	}
	return n
}

// Run ensures a session exists, starts the browser and checks every target
// in order. Per-book failures are part of the Summary; the returned error is
// always a catalog.ErrBatch error.
func (r *Runner) Run(ctx context.Context, targets []catalog.BookTarget) (sum Summary, err error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	log := r.logger()

	defer func() {
		if rec := recover(); rec != nil {
			err = catalog.FromPanic(catalog.ErrBatch, "", rec)
		}
		span.SetAttributes(attribute.Int("books.total", sum.Total), attribute.Int("books.succeeded", sum.Successes))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "batch failed")
		}
	}()

	sum.Total = len(targets)

	blob, err := r.Session.Execute(ctx)
	if err != nil {
		return sum, catalog.NewError(catalog.ErrBatch, "", fmt.Errorf("session: %w", err))
	}
	if len(targets) == 0 {
		log.Info("no books configured")
		return sum, nil
	}

	if err := r.Browser.Start(ctx, blob.Cookies); err != nil {
		return sum, catalog.NewError(catalog.ErrBatch, "", fmt.Errorf("start browser: %w", err))
	}
	defer func() {
		if cerr := r.Browser.Close(); cerr != nil {
			log.Warn("failed to close browser", "err", cerr)
		}
	}()

	sleep := r.Sleep
	if sleep == nil {
		sleep = usecases.Sleep
	}

	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			return sum, catalog.NewError(catalog.ErrBatch, "", fmt.Errorf("stopped before book %d of %d: %w", i+1, len(targets), err))
		}
		log.Info("processing book", "index", i+1, "total", len(targets), "url", t.URL)

		out := r.Checker.Execute(ctx, t)
		sum.Outcomes = append(sum.Outcomes, out)
		if out.Succeeded {
			sum.Successes++
		}

		if i < len(targets)-1 {
			if err := sleep(ctx, r.Pause); err != nil {
				return sum, catalog.NewError(catalog.ErrBatch, "", fmt.Errorf("pause after book %d: %w", i+1, err))
			}
		}
	}

	log.Info("summary", "succeeded", sum.Successes, "total", sum.Total, "failed", sum.Failures())
	return sum, nil
}

// RunAndReport is Run with the batch error logged and sent to the operator
// once. The error is still returned so callers can decide the exit status.
func (r *Runner) RunAndReport(ctx context.Context, targets []catalog.BookTarget) (Summary, error) {
	sum, err := r.Run(ctx, targets)
	if err != nil {
		Report(ctx, r.Notifier, r.logger(), err)
	}
	return sum, err
}

// Report logs a batch-level error and sends one error alert for it.
func Report(ctx context.Context, n catalog.Notifier, log *slog.Logger, err error) {
	if log == nil {
		log = slog.Default()
	}
	log.Error("error in main execution", "err", err)
	log.Debug("stack trace", "stack", catalog.StackOf(err))
	if n == nil {
		return
	}
	// the run context may already be cancelled; the alert still has to go out.
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if nerr := n.NotifyError(nctx, err.Error(), catalog.StackOf(err)); nerr != nil {
		log.Warn("failed to send error notification", "err", nerr)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}
