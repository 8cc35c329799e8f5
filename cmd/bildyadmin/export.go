package main

import (
	"context"
	"fmt"
	"io"
	"os"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phenrril/bildy-admin/internal/adapters/bildy"
	"github.com/phenrril/bildy-admin/internal/adapters/export"
	"github.com/phenrril/bildy-admin/internal/config"
	"github.com/phenrril/bildy-admin/internal/domain"
	"github.com/phenrril/bildy-admin/internal/usecase"
)

const (
	keyEmail    = "bildy_email"
	keyPassword = "bildy_password"
)

type exportOpts struct {
	query string
	out   string
}

func exportCommand(v *viper.Viper) *cobra.Command {
	var o exportOpts
	cmd := &cobra.Command{
		Use:       "export clients|deliverynotes",
		Short:     "Exporta un listado a Excel",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"clients", "deliverynotes"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), config.Load(v), v.GetString(keyEmail), v.GetString(keyPassword), args[0], o)
		},
	}
	cmd.Flags().StringVarP(&o.query, "query", "q", "", "Filtro de búsqueda")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Fichero de salida (por defecto <listado>.xlsx, - para stdout)")
	cmd.Flags().String("email", "", "Email de la cuenta (o BILDY_EMAIL)")
	cmd.Flags().String("password", "", "Contraseña (o BILDY_PASSWORD)")
	_ = v.BindPFlag(keyEmail, cmd.Flags().Lookup("email"))
	_ = v.BindPFlag(keyPassword, cmd.Flags().Lookup("password"))
	return cmd
}

func runExport(ctx context.Context, cfg config.Config, email, password, kind string, o exportOpts) error {
	api := bildy.New(cfg.APIURL, bildy.WithLoginPath(cfg.LoginPath), bildy.WithTimeout(cfg.Timeout))
	auth := &usecase.AuthUC{Auth: api}
	sess, err := auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %s: %w", domain.UserMessage(err, "no se pudo iniciar sesión"), err)
	}

	var write func(io.Writer) error
	switch kind {
	case "clients":
		uc := &usecase.ClientUC{Clients: api, Projects: api}
		page, err := uc.ListPage(ctx, sess, o.query, "")
		if err != nil {
			return err
		}
		write = func(w io.Writer) error { return export.Clients(w, page.View.Items()) }
	case "deliverynotes":
		uc := &usecase.DeliveryNoteUC{Clients: api, Projects: api, Notes: api}
		page, err := uc.ListPage(ctx, sess, o.query)
		if err != nil {
			return err
		}
		write = func(w io.Writer) error { return export.DeliveryNotes(w, page) }
	default:
		return fmt.Errorf("listado desconocido %q", kind)
	}

	out := o.out
	if out == "" {
		out = kind + ".xlsx"
	}
	if out == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	zlog.Info().Str("file", out).Str("list", kind).Msg("exported")
	return nil
}
