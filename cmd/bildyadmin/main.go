package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phenrril/bildy-admin/internal/config"
)

func main() {
	v := config.New()
	setupLogger(config.Load(v))

	if err := rootCommand(v).Execute(); err != nil {
		zlog.Error().Err(err).Msg("bildyadmin")
		os.Exit(1)
	}
}

func rootCommand(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "bildyadmin",
		Short:         "Panel de administración para la API de Bildy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("api-url", v.GetString(config.KeyAPIURL), "URL base de la API de Bildy")
	root.PersistentFlags().String("login-path", v.GetString(config.KeyLoginPath), "Ruta del endpoint de login")
	root.PersistentFlags().Duration("timeout", v.GetDuration(config.KeyTimeout), "Tiempo máximo por petición (0 = sin límite)")
	_ = v.BindPFlag(config.KeyAPIURL, root.PersistentFlags().Lookup("api-url"))
	_ = v.BindPFlag(config.KeyLoginPath, root.PersistentFlags().Lookup("login-path"))
	_ = v.BindPFlag(config.KeyTimeout, root.PersistentFlags().Lookup("timeout"))

	root.AddCommand(serveCommand(v), exportCommand(v))
	return root
}

// setupLogger writes human-readable output while developing and JSON
// elsewhere.
func setupLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsDev() {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zlog.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
