package cli

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"optionscout/internal/server"
)

// addServerCommands registers the serve command.
func addServerCommands(rootCmd *cobra.Command, app *App) {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(app.Pipeline, app.Store, cfg, app.Logger)
			err := srv.ListenAndServe(ctx)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}
	serveCmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
