package app

import (
	"html/template"
	"io/fs"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/bildy-admin/internal/adapters/bildy"
	"github.com/phenrril/bildy-admin/internal/adapters/httpserver"
	pgrepo "github.com/phenrril/bildy-admin/internal/adapters/repo/postgres"
	"github.com/phenrril/bildy-admin/internal/config"
	"github.com/phenrril/bildy-admin/internal/usecase"
	"github.com/phenrril/bildy-admin/internal/views"
)

type App struct {
	Cfg  config.Config
	DB   *gorm.DB
	API  *bildy.Client
	Tmpl *template.Template

	AuthUC    *usecase.AuthUC
	ClientUC  *usecase.ClientUC
	ProjectUC *usecase.ProjectUC
	NoteUC    *usecase.DeliveryNoteUC
	Activity  *usecase.ActivityLog
}

// NewApp wires the use cases around one Resource Client. db may be nil, in
// which case the activity log is disabled.
func NewApp(cfg config.Config, db *gorm.DB) (*App, error) {
	api := bildy.New(cfg.APIURL,
		bildy.WithLoginPath(cfg.LoginPath),
		bildy.WithTimeout(cfg.Timeout),
	)

	activity := &usecase.ActivityLog{}
	if db != nil {
		activity.Repo = pgrepo.NewActivityRepo(db)
	}

	a := &App{Cfg: cfg, DB: db, API: api, Activity: activity}
	a.AuthUC = &usecase.AuthUC{Auth: api}
	a.ClientUC = &usecase.ClientUC{Clients: api, Projects: api, Activity: activity}
	a.ProjectUC = &usecase.ProjectUC{Clients: api, Projects: api, Notes: api, Activity: activity}
	a.NoteUC = &usecase.DeliveryNoteUC{Clients: api, Projects: api, Notes: api, Activity: activity}

	// templates are read from disk while developing so edits show on reload
	var fsys fs.FS = views.FS
	if cfg.IsDev() {
		if _, err := os.Stat("internal/views"); err == nil {
			fsys = os.DirFS("internal/views")
		}
	}
	tmpl, err := views.Parse(fsys)
	if err != nil {
		return nil, err
	}
	a.Tmpl = tmpl
	return a, nil
}

// OpenDB connects to the activity store when a DSN is configured. It returns
// nil without error when none is.
func OpenDB(cfg config.Config) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, nil
	}
	gcfg := &gorm.Config{}
	if cfg.IsProd() {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	return gorm.Open(postgres.Open(cfg.DSN), gcfg)
}

func (a *App) Migrate() error {
	if a.DB == nil {
		return nil
	}
	return pgrepo.Migrate(a.DB)
}

func (a *App) HTTPHandler() http.Handler {
	if a.Cfg.SessionKey == "" && a.Cfg.IsProd() {
		log.Warn().Msg("SESSION_KEY vacío: las cookies de sesión usan una clave de desarrollo")
	}
	return httpserver.New(a.Tmpl, httpserver.Deps{
		Auth:          a.AuthUC,
		Clients:       a.ClientUC,
		Projects:      a.ProjectUC,
		Notes:         a.NoteUC,
		Activity:      a.Activity,
		SessionKey:    a.Cfg.SessionKey,
		SecureCookies: a.Cfg.IsProd(),
	})
}
