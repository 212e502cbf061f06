package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/example/holdbot/internal/config"
	"github.com/example/holdbot/internal/db"
	"github.com/example/holdbot/internal/domain/session"
	"github.com/example/holdbot/internal/infrastructure/browser"
	"github.com/example/holdbot/internal/infrastructure/notify"
	infsession "github.com/example/holdbot/internal/infrastructure/session"
	"github.com/example/holdbot/internal/migrate"
)

// openSessionStore picks the Postgres store when SESSION_DATABASE_URL is set
// and the file store otherwise. The returned func releases the store.
func openSessionStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	codec, err := infsession.NewCodec(cfg.SessionSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("session codec: %w", err)
	}
	if cfg.SessionDatabaseURL == "" {
		return infsession.NewFileStore(cfg.SessionFile, codec), func() {}, nil
	}

	d, err := db.Open(ctx, cfg.SessionDatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open session database: %w", err)
	}
	if err := d.Ping(ctx); err != nil {
		d.Close()
		return nil, nil, fmt.Errorf("ping session database: %w", err)
	}
	if _, err := migrate.Up(ctx, d); err != nil {
		d.Close()
		return nil, nil, fmt.Errorf("migrate session database: %w", err)
	}
	return infsession.NewPostgresStore(d, cfg.SessionName, codec), d.Close, nil
}

func browserOptions(cfg config.Config) browser.Options {
	return browser.Options{
		Headless:  cfg.Headless,
		NoSandbox: cfg.NoSandbox,
		UserAgent: cfg.UserAgent,
		ExecPath:  cfg.ChromePath,
	}
}

func loginBootstrapper(cmd *cobra.Command, cfg config.Config, log *slog.Logger) browser.Login {
	return browser.Login{
		Options: browserOptions(cfg),
		URL:     cfg.BootstrapURL,
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		Log:     log,
	}
}

func emailNotifier(cfg config.Config, log *slog.Logger) *notify.Email {
	return notify.NewEmail(notify.SMTPConfig{
		Server:   cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Sender:   cfg.EmailSender,
		Password: cfg.EmailPassword,
		Receiver: cfg.EmailReceiver,
	}, log)
}
