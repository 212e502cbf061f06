package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/example/holdbot/internal/domain/catalog"
)

var tracer = otel.Tracer("holdbot/usecases")

// CheckBook runs one book through load, classification and action. It never
// returns an error: every failure is folded into the Outcome and reported
// through the Notifier.
type CheckBook struct {
	Browser  catalog.Browser
	Notifier catalog.Notifier
	Load     LoadPage

	Rules       []catalog.Rule
	Title       catalog.Locator
	ClickSettle time.Duration
	Sleep       SleepFunc

	Log *slog.Logger
}

func (u CheckBook) Execute(ctx context.Context, target catalog.BookTarget) (out catalog.Outcome) {
	ctx, span := tracer.Start(ctx, "CheckBook", trace.WithAttributes(attribute.String("book.url", target.URL)))
	defer span.End()

	log := u.logger().With("url", target.URL)
	out = catalog.Outcome{URL: target.URL, BookTitle: catalog.UnknownTitle}

	defer func() {
		if r := recover(); r != nil {
			out = u.fail(ctx, log, out, catalog.FromPanic(catalog.ErrAction, target.URL, r))
		}
		span.SetAttributes(
			attribute.String("book.state", string(out.State)),
			attribute.Bool("book.succeeded", out.Succeeded),
		)
	}()

	page, err := u.Browser.NewPage(ctx)
	if err != nil {
		return u.fail(ctx, log, out, catalog.NewError(catalog.ErrNavigation, target.URL, fmt.Errorf("open page: %w", err)))
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Warn("failed to close page", "err", err)
		}
	}()

	log.Info("navigating to book page")
	if err := u.Load.Execute(ctx, page, target.URL); err != nil {
		return u.fail(ctx, log, out, err)
	}

	c := catalog.ClassifyPage(ctx, page, u.title(), u.rules())
	out.BookTitle = c.Title
	out.State = c.State
	log = log.With("title", c.Title)
	log.Debug("page classified", "state", c.State)

	switch c.State {
	case catalog.StateAlreadyOwned:
		log.Info("book already in library, skipping")
		return out
	case catalog.StateUnavailable:
		log.Info("no hold or borrow control visible, book not available")
		return out
	case catalog.StateClassificationError:
		return u.fail(ctx, log, out, c.Err)
	}

	action, _ := c.State.Action()
	if c.Control == nil {
		return u.fail(ctx, log, out, catalog.NewError(catalog.ErrAction, target.URL, fmt.Errorf("no control for state %s", c.State)))
	}

	log.Info("control available, clicking", "control", c.Control.Name)
	if err := page.Click(ctx, *c.Control); err != nil {
		return u.fail(ctx, log, out, catalog.NewError(catalog.ErrAction, target.URL, fmt.Errorf("click %s: %w", c.Control.Name, err)))
	}
	if err := u.sleep()(ctx, u.ClickSettle); err != nil {
		return u.fail(ctx, log, out, catalog.NewError(catalog.ErrAction, target.URL, fmt.Errorf("settle after click: %w", err)))
	}

	out.Succeeded = true
	out.Action = action
	log.Info("request placed", "action", action)

	if err := u.Notifier.NotifySuccess(ctx, action, c.Title); err != nil {
		log.Warn("failed to send success notification", "err", err)
	}
	return out
}

func (u CheckBook) fail(ctx context.Context, log *slog.Logger, out catalog.Outcome, err error) catalog.Outcome {
	var cerr *catalog.Error
	if errors.As(err, &cerr) && cerr.URL == "" {
		cerr.URL = out.URL
	}
	if out.State == "" {
		out.State = catalog.StateClassificationError
	}
	out.Succeeded = false
	out.Action = ""
	out.ErrorDetail = err.Error()

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, "book check failed")

	log.Error("error while processing book", "err", err)
	if nerr := u.Notifier.NotifyError(ctx, err.Error(), catalog.StackOf(err)); nerr != nil {
		log.Warn("failed to send error notification", "err", nerr)
	}
	return out
}

func (u CheckBook) rules() []catalog.Rule {
	if len(u.Rules) == 0 {
		return catalog.DefaultRules
	}
	return u.Rules
}

func (u CheckBook) title() catalog.Locator {
	if u.Title.Query == "" {
		return catalog.TitleLocator
	}
	return u.Title
}

func (u CheckBook) sleep() SleepFunc {
	if u.Sleep == nil {
		return Sleep
	}
	return u.Sleep
}

func (u CheckBook) logger() *slog.Logger {
	if u.Log == nil {
		return slog.Default()
	}
	return u.Log
}
