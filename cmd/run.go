package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/holdbot/internal/application/runner"
	"github.com/example/holdbot/internal/application/usecases"
	"github.com/example/holdbot/internal/config"
	"github.com/example/holdbot/internal/domain/catalog"
	"github.com/example/holdbot/internal/infrastructure/browser"
	"github.com/example/holdbot/internal/telemetry"
)

func newRunCmd() *cobra.Command {
	var noTable bool

	c := &cobra.Command{
		Use:   "run",
		Short: "Check every configured book once and place a hold or borrow where possible",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if err := cfg.RequireRun(); err != nil {
				return err
			}

			ctx := cmd.Context()
			log := slog.Default().With("run", uuid.NewString())

			shutdown, err := telemetry.Setup(ctx, "holdbot")
			if err != nil {
				log.Warn("tracing disabled", "err", err)
			} else {
				defer func() {
					if err := shutdown(context.WithoutCancel(ctx)); err != nil {
						log.Warn("failed to flush traces", "err", err)
					}
				}()
			}

			notifier := emailNotifier(cfg, log)
			out := cmd.OutOrStdout()

			store, closeStore, err := openSessionStore(ctx, cfg)
			if err != nil {
				runner.Report(ctx, notifier, log, catalog.NewError(catalog.ErrBatch, "", err))
				return nil
			}
			defer closeStore()

			engine := browser.New(browserOptions(cfg), log)
			r := &runner.Runner{
				Session: usecases.EnsureSession{
					Store:     store,
					Bootstrap: loginBootstrapper(cmd, cfg, log),
					Log:       log,
				},
				Browser: engine,
				Checker: usecases.CheckBook{
					Browser:     engine,
					Notifier:    notifier,
					Load:        usecases.LoadPage{Policy: cfg.Settle},
					ClickSettle: cfg.ClickSettle,
					Log:         log,
				},
				Notifier: notifier,
				Pause:    cfg.BookPause,
				Log:      log,
			}
			log.Info("starting run", "books", len(cfg.Books))
			sum, _ := r.RunAndReport(ctx, cfg.Books)

			fmt.Fprintf(out, "Successfully processed %d out of %d books\n", sum.Successes, sum.Total)
			if !noTable && len(sum.Outcomes) > 0 {
				renderSummary(out, sum)
			}
			// batch errors have been reported; the run itself still ends cleanly
			return nil
		},
	}
	c.Flags().BoolVar(&noTable, "no-table", false, "do not print the per-book summary table")
	return c
}
