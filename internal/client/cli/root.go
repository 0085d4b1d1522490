package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"userapp/internal/client/api"
	"userapp/internal/client/config"
	"userapp/internal/client/storage"
	"userapp/internal/client/store"
)

// NewRootCommand builds the client command. Flags override cfg, which
// already holds defaults and environment values.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "userapp-client",
		Short:         "Terminal client for the users service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

			st, err := storage.Open(ctx, cfg.StateDB, cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("open client state: %w", err)
			}
			defer func() {
				if err := st.Close(); err != nil {
					logger.Warn("failed to close client state", "error", err)
				}
			}()

			client := api.NewClient(cfg.APIURL, cfg.Timeout)
			s := store.New(ctx, client, st, logger)

			NewApp(s, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
			return nil
		},
	}

	cfg.BindFlags(cmd)
	return cmd
}
