package auth

import (
	"slices"
	"strings"

	"github.com/poskit/pos-gateway/internal/domain"
)

// NavIcon identifies the icon rendered next to a navigation entry.
type NavIcon string

const (
	IconDashboard  NavIcon = "dashboard"
	IconPOS        NavIcon = "pos"
	IconOrders     NavIcon = "orders"
	IconKitchen    NavIcon = "kitchen"
	IconCatalog    NavIcon = "catalog"
	IconProducts   NavIcon = "products"
	IconCategories NavIcon = "categories"
	IconReports    NavIcon = "reports"
	IconSettings   NavIcon = "settings"
)

// NavItem is a navigation link and the roles allowed to open it.
type NavItem struct {
	Label string        `json:"label"`
	Href  string        `json:"href"`
	Icon  NavIcon       `json:"icon"`
	Roles []domain.Role `json:"roles"`
}

// NavSection groups navigation links under a title.
type NavSection struct {
	Title string    `json:"title"`
	Items []NavItem `json:"items"`
}

var (
	allRoles     = []domain.Role{domain.RoleAdmin, domain.RoleCashier, domain.RoleKitchen}
	adminCashier = []domain.Role{domain.RoleAdmin, domain.RoleCashier}
	adminKitchen = []domain.Role{domain.RoleAdmin, domain.RoleKitchen}
	adminOnly    = []domain.Role{domain.RoleAdmin}
)

// navSections is the static policy table. Order matters: the first matching
// entry decides access.
var navSections = []NavSection{
	{
		Title: "Operación",
		Items: []NavItem{
			{Label: "Dashboard", Href: "/dashboard", Icon: IconDashboard, Roles: allRoles},
			{Label: "POS", Href: "/pos", Icon: IconPOS, Roles: adminCashier},
			{Label: "Órdenes", Href: "/orders", Icon: IconOrders, Roles: allRoles},
			{Label: "Cocina", Href: "/kitchen", Icon: IconKitchen, Roles: adminKitchen},
		},
	},
	{
		Title: "Catálogo",
		Items: []NavItem{
			{Label: "Catálogo", Href: "/catalog", Icon: IconCatalog, Roles: adminOnly},
			{Label: "Productos", Href: "/products", Icon: IconProducts, Roles: adminOnly},
			{Label: "Categorías", Href: "/categories", Icon: IconCategories, Roles: adminOnly},
		},
	},
	{
		Title: "Administración",
		Items: []NavItem{
			{Label: "Reportes", Href: "/reports", Icon: IconReports, Roles: adminCashier},
			{Label: "Ajustes", Href: "/settings", Icon: IconSettings, Roles: adminOnly},
		},
	},
}

// NavSections returns a copy of the whole navigation table.
func NavSections() []NavSection {
	out := make([]NavSection, len(navSections))
	for i, section := range navSections {
		out[i] = NavSection{Title: section.Title, Items: slices.Clone(section.Items)}
	}
	return out
}

func pathMatches(path, href string) bool {
	return path == href || strings.HasPrefix(path, href+"/")
}

// CanAccessPath reports whether role may open path. Paths without a table
// entry are open to every role.
func CanAccessPath(path string, role domain.Role) bool {
	for _, section := range navSections {
		for _, item := range section.Items {
			if pathMatches(path, item.Href) {
				return slices.Contains(item.Roles, role)
			}
		}
	}
	return true
}

// NavForRole filters the table down to the links role may see, dropping
// sections left empty.
func NavForRole(role domain.Role) []NavSection {
	out := make([]NavSection, 0, len(navSections))
	for _, section := range navSections {
		items := make([]NavItem, 0, len(section.Items))
		for _, item := range section.Items {
			if slices.Contains(item.Roles, role) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, NavSection{Title: section.Title, Items: items})
	}
	return out
}

// HomePath is the first page role is allowed to open.
func HomePath(role domain.Role) string {
	for _, section := range NavForRole(role) {
		return section.Items[0].Href
	}
	return "/unauthorized"
}
