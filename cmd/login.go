package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/example/holdbot/internal/application/usecases"
	"github.com/example/holdbot/internal/config"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in by hand in a browser window and save the session artifact",
		Long: `login opens BOOTSTRAP_URL in a visible browser and waits for you to log in
and press ENTER. The browser cookies are then sealed with SESSION_SECRET and
saved, replacing any session artifact already stored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if err := cfg.RequireLogin(); err != nil {
				return err
			}

			ctx := cmd.Context()
			log := slog.Default()
			store, closeStore, err := openSessionStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			u := usecases.EnsureSession{
				Store:     store,
				Bootstrap: loginBootstrapper(cmd, cfg, log),
				Log:       log,
			}
			b, err := u.Refresh(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d cookies from %s\n", len(b.Cookies), b.Origin)
			return nil
		},
	}
}
