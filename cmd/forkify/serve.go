package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"philcali.me/forkify/internal/routes/local"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the page over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		a, stop, err := startApp(ctx)
		if err != nil {
			return err
		}
		defer stop()
		if addr != "" {
			cfg.Server.Addr = addr
		}
		server := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: local.NewHandler(a.Router, log),
		}
		go func() {
			<-ctx.Done()
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdown)
		}()
		log.Info("serving forkify on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	rootCmd.AddCommand(serveCmd)
}
