package views

import (
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/phenrril/bildy-admin/internal/domain"
)

//go:embed *.html
var FS embed.FS

func Funcs() template.FuncMap {
	return template.FuncMap{
		"actionLabel": func(a domain.ActivityAction) string {
			switch a {
			case domain.ActionCreate:
				return "Creado"
			case domain.ActionUpdate:
				return "Actualizado"
			case domain.ActionDelete:
				return "Eliminado"
			case domain.ActionPrint:
				return "Descargado"
			}
			return string(a)
		},
		"entityLabel": func(e string) string {
			switch e {
			case "client":
				return "Cliente"
			case "project":
				return "Proyecto"
			case "deliverynote":
				return "Albarán"
			}
			return e
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("02/01/2006 15:04")
		},
	}
}

// Parse builds the page set from fsys, the embedded FS in production or
// the source directory while developing.
func Parse(fsys fs.FS) (*template.Template, error) {
	return template.New("layout").Funcs(Funcs()).ParseFS(fsys, "*.html")
}
