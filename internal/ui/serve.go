package ui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve free times over a read-only JSON API",
		Long: `Start the JSON API.

Routes:
  GET /healthz
  GET /api/professionals/:id/free?date=YYYY-MM-DD&duration=1h
  GET /api/professionals/:id/week?date=YYYY-MM-DD&duration=1h
  GET /api/professionals/:id/week/export?date=YYYY-MM-DD&duration=1h`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if addr == "" {
				addr = a.config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !a.debug {
				gin.SetMode(gin.ReleaseMode)
			}

			// Request logs use the configured level.
			logger, err := a.serverLogger()
			if err != nil {
				return err
			}
			h := server.NewHandler(a.service(), logger)
			return server.Run(ctx, addr, h)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
