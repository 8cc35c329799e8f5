package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phenrril/bildy-admin/internal/app"
	"github.com/phenrril/bildy-admin/internal/config"
)

func serveCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Arranca el panel web",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), config.Load(v))
		},
	}
	cmd.Flags().String("port", v.GetString(config.KeyPort), "Puerto HTTP")
	cmd.Flags().String("dsn", v.GetString(config.KeyDSN), "DSN de PostgreSQL para el registro de actividad (opcional)")
	_ = v.BindPFlag(config.KeyPort, cmd.Flags().Lookup("port"))
	_ = v.BindPFlag(config.KeyDSN, cmd.Flags().Lookup("dsn"))
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	db, err := app.OpenDB(cfg)
	if err != nil {
		return err
	}
	application, err := app.NewApp(cfg, db)
	if err != nil {
		return err
	}
	if err := application.Migrate(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}
	server := &http.Server{
		Handler:           application.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", ln.Addr().String()).Str("api", cfg.APIURL).Bool("activity", db != nil).Msg("listening")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case err := <-errc:
		return err
	case <-quit:
	case <-ctx.Done():
	}

	zlog.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(sctx)
}
