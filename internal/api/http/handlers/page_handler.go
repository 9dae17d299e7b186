package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/poskit/pos-gateway/internal/auth"
	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is a back-office screen served behind the edge guard.
type Page struct {
	Path  string
	Title string
}

// Pages lists the screens rendered by the gateway. Paths use Fiber syntax.
var Pages = []Page{
	{Path: "/dashboard", Title: "Dashboard"},
	{Path: "/pos", Title: "POS"},
	{Path: "/orders", Title: "Órdenes"},
	{Path: "/kitchen", Title: "Cocina"},
	{Path: "/tables", Title: "Mesas"},
	{Path: "/billing", Title: "Cobros"},
	{Path: "/catalog", Title: "Catálogo"},
	{Path: "/products", Title: "Productos"},
	{Path: "/products/:id", Title: "Producto"},
	{Path: "/categories", Title: "Categorías"},
	{Path: "/reports", Title: "Reportes"},
	{Path: "/settings", Title: "Ajustes"},
}

type shellView struct {
	AppName  string
	Title    string
	Path     string
	Active   string
	Email    string
	Role     domain.Role
	Sections []auth.NavSection
}

type simpleView struct {
	AppName string
	Home    string
}

// PageHandler renders the HTML shell of every screen.
type PageHandler struct {
	appName   string
	templates *template.Template
	cookies   *session.Cookies
}

// NewPageHandler parses the embedded templates.
func NewPageHandler(appName string, cookies *session.Cookies) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{appName: appName, templates: tmpl, cookies: cookies}, nil
}

// Root sends the caller to the first screen their role may open.
func (h *PageHandler) Root(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return c.Redirect(auth.LoginPath, fiber.StatusTemporaryRedirect)
	}
	return c.Redirect(auth.HomePath(identity.Role), fiber.StatusTemporaryRedirect)
}

// Login renders the sign-in form.
func (h *PageHandler) Login(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "login", simpleView{AppName: h.appName})
}

// Unauthorized renders the access denied page.
func (h *PageHandler) Unauthorized(c *fiber.Ctx) error {
	home := auth.LoginPath
	if identity, ok := auth.DecodeToken(h.cookies.Access(c)); ok && identity.Role != "" {
		home = auth.HomePath(identity.Role)
	}
	return h.render(c, fiber.StatusForbidden, "unauthorized", simpleView{AppName: h.appName, Home: home})
}

// Screen returns a handler rendering page inside the navigation shell.
func (h *PageHandler) Screen(page Page) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFromContext(c)
		if !ok {
			return c.Redirect(auth.LoginPath, fiber.StatusTemporaryRedirect)
		}
		return h.render(c, fiber.StatusOK, "shell", shellView{
			AppName:  h.appName,
			Title:    page.Title,
			Path:     c.Path(),
			Active:   activeHref(c.Path(), identity.Role),
			Email:    identity.Email,
			Role:     identity.Role,
			Sections: auth.NavForRole(identity.Role),
		})
	}
}

// activeHref is the nav entry the current path belongs to.
func activeHref(path string, role domain.Role) string {
	for _, section := range auth.NavForRole(role) {
		for _, item := range section.Items {
			if path == item.Href || strings.HasPrefix(path, item.Href+"/") {
				return item.Href
			}
		}
	}
	return ""
}

func (h *PageHandler) render(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(status).Send(buf.Bytes())
}
