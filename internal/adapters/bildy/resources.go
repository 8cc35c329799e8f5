package bildy

import (
	"context"
	"net/http"
	"net/url"

	"github.com/phenrril/bildy-admin/internal/domain"
)

func idPath(prefix, id string) string { return prefix + url.PathEscape(id) }

func (c *Client) ListClients(ctx context.Context, s domain.Session) ([]domain.Client, error) {
	b, err := c.do(ctx, s, call{op: "list clients", method: http.MethodGet, path: "/api/client", defaultMsg: "Error al obtener los clientes"})
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Client]("list clients", b)
}

func (c *Client) GetClient(ctx context.Context, s domain.Session, id string) (*domain.Client, error) {
	b, err := c.do(ctx, s, call{op: "get client", method: http.MethodGet, path: idPath("/api/client/", id), defaultMsg: "Error al obtener el cliente"})
	if err != nil {
		return nil, err
	}
	cl, err := decodeOne[domain.Client]("get client", b)
	if err == nil && cl == nil {
		err = &domain.APIError{Op: "get client", Status: http.StatusNotFound, Message: "Cliente no encontrado"}
	}
	return cl, err
}

func (c *Client) CreateClient(ctx context.Context, s domain.Session, cl domain.Client) (*domain.Client, error) {
	cl.ID = ""
	b, err := c.do(ctx, s, call{op: "create client", method: http.MethodPost, path: "/api/client", body: cl, defaultMsg: "Error al crear el cliente"})
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Client]("create client", b)
}

func (c *Client) UpdateClient(ctx context.Context, s domain.Session, id string, cl domain.Client) (*domain.Client, error) {
	cl.ID = ""
	b, err := c.do(ctx, s, call{op: "update client", method: http.MethodPut, path: idPath("/api/client/", id), body: cl, defaultMsg: "Error al actualizar el cliente"})
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Client]("update client", b)
}

func (c *Client) DeleteClient(ctx context.Context, s domain.Session, id string) error {
	_, err := c.do(ctx, s, call{op: "delete client", method: http.MethodDelete, path: idPath("/api/client/", id), defaultMsg: "Error al eliminar el cliente"})
	return err
}

func (c *Client) ListProjects(ctx context.Context, s domain.Session) ([]domain.Project, error) {
	b, err := c.do(ctx, s, call{op: "list projects", method: http.MethodGet, path: "/api/project", defaultMsg: "Error al obtener los proyectos"})
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Project]("list projects", b)
}

func (c *Client) GetProject(ctx context.Context, s domain.Session, id string) (*domain.Project, error) {
	b, err := c.do(ctx, s, call{op: "get project", method: http.MethodGet, path: idPath("/api/project/one/", id), defaultMsg: "Error al obtener el proyecto"})
	if err != nil {
		return nil, err
	}
	p, err := decodeOne[domain.Project]("get project", b)
	if err == nil && p == nil {
		err = &domain.APIError{Op: "get project", Status: http.StatusNotFound, Message: "Proyecto no encontrado"}
	}
	return p, err
}

func (c *Client) CreateProject(ctx context.Context, s domain.Session, p domain.Project) (*domain.Project, error) {
	p.ID = ""
	b, err := c.do(ctx, s, call{op: "create project", method: http.MethodPost, path: "/api/project", body: p, defaultMsg: "Error al crear el proyecto"})
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Project]("create project", b)
}

func (c *Client) UpdateProject(ctx context.Context, s domain.Session, id string, p domain.Project) (*domain.Project, error) {
	p.ID = ""
	b, err := c.do(ctx, s, call{op: "update project", method: http.MethodPut, path: idPath("/api/project/", id), body: p, defaultMsg: "Error al actualizar el proyecto"})
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Project]("update project", b)
}

func (c *Client) DeleteProject(ctx context.Context, s domain.Session, id string) error {
	_, err := c.do(ctx, s, call{op: "delete project", method: http.MethodDelete, path: idPath("/api/project/", id), defaultMsg: "Error al eliminar el proyecto"})
	return err
}

func (c *Client) ListDeliveryNotes(ctx context.Context, s domain.Session) ([]domain.DeliveryNote, error) {
	b, err := c.do(ctx, s, call{op: "list delivery notes", method: http.MethodGet, path: "/api/deliverynote", defaultMsg: "Error al obtener los albaranes"})
	if err != nil {
		return nil, err
	}
	return decode[[]domain.DeliveryNote]("list delivery notes", b)
}

func (c *Client) CreateDeliveryNote(ctx context.Context, s domain.Session, n domain.DeliveryNote) (*domain.DeliveryNote, error) {
	n.ID = ""
	b, err := c.do(ctx, s, call{op: "create delivery note", method: http.MethodPost, path: "/api/deliverynote", body: n, defaultMsg: "Error al crear el albarán"})
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.DeliveryNote]("create delivery note", b)
}

func (c *Client) DeleteDeliveryNote(ctx context.Context, s domain.Session, id string) error {
	_, err := c.do(ctx, s, call{op: "delete delivery note", method: http.MethodDelete, path: idPath("/api/deliverynote/", id), defaultMsg: "Error al eliminar el albarán"})
	return err
}

// DeliveryNotePDF returns the server-rendered PDF bytes as is.
func (c *Client) DeliveryNotePDF(ctx context.Context, s domain.Session, id string) ([]byte, error) {
	return c.do(ctx, s, call{op: "delivery note pdf", method: http.MethodGet, path: idPath("/api/deliverynote/pdf/", id), accept: "application/pdf", defaultMsg: "Error al descargar el albarán"})
}
