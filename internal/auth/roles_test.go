package auth

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poskit/pos-gateway/internal/domain"
)

func TestCanAccessPath_MatchesTableEntries(t *testing.T) {
	tests := []struct {
		path    string
		role    domain.Role
		allowed bool
	}{
		{"/dashboard", domain.RoleKitchen, true},
		{"/pos", domain.RoleCashier, true},
		{"/pos", domain.RoleKitchen, false},
		{"/kitchen", domain.RoleKitchen, true},
		{"/kitchen", domain.RoleCashier, false},
		{"/products", domain.RoleKitchen, false},
		{"/products", domain.RoleAdmin, true},
		{"/products/12", domain.RoleCashier, false},
		{"/products/12", domain.RoleAdmin, true},
		{"/reports", domain.RoleCashier, true},
		{"/settings", domain.RoleCashier, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanAccessPath(tt.path, tt.role))
		})
	}
}

func TestCanAccessPath_IffRoleInEntrySet(t *testing.T) {
	for _, section := range NavSections() {
		for _, item := range section.Items {
			for _, role := range domain.Roles {
				want := slices.Contains(item.Roles, role)
				assert.Equal(t, want, CanAccessPath(item.Href, role), "%s %s", item.Href, role)
				assert.Equal(t, want, CanAccessPath(item.Href+"/sub/page", role), "%s/sub %s", item.Href, role)
			}
		}
	}
}

func TestCanAccessPath_PrefixNeedsSeparator(t *testing.T) {
	// "/posters" is not under "/pos" and has no entry of its own.
	assert.True(t, CanAccessPath("/posters", domain.RoleKitchen))
}

func TestCanAccessPath_FailOpenForUnlistedPaths(t *testing.T) {
	for _, role := range append(slices.Clone(domain.Roles), domain.Role("WAITER"), "") {
		assert.True(t, CanAccessPath("/", role))
		assert.True(t, CanAccessPath("/billing", role))
		assert.True(t, CanAccessPath("/tables/3", role))
	}
}

func TestNavForRole_NeverReturnsEmptySections(t *testing.T) {
	for _, role := range append(slices.Clone(domain.Roles), domain.Role("WAITER")) {
		for _, section := range NavForRole(role) {
			assert.NotEmpty(t, section.Items, "role %s section %s", role, section.Title)
		}
	}
}

func TestNavForRole_Kitchen(t *testing.T) {
	sections := NavForRole(domain.RoleKitchen)
	assert.Len(t, sections, 1)
	assert.Equal(t, "Operación", sections[0].Title)

	var hrefs []string
	for _, item := range sections[0].Items {
		hrefs = append(hrefs, item.Href)
	}
	assert.Equal(t, []string{"/dashboard", "/orders", "/kitchen"}, hrefs)
}

func TestNavForRole_AdminSeesEverything(t *testing.T) {
	assert.Equal(t, NavSections(), NavForRole(domain.RoleAdmin))
}

func TestNavForRole_UnknownRoleSeesNothing(t *testing.T) {
	assert.Empty(t, NavForRole(domain.Role("WAITER")))
	assert.Equal(t, "/unauthorized", HomePath(domain.Role("WAITER")))
	assert.Equal(t, "/dashboard", HomePath(domain.RoleKitchen))
}

func TestNavSections_ReturnsCopy(t *testing.T) {
	sections := NavSections()
	sections[0].Items[0].Href = "/hacked"
	assert.True(t, CanAccessPath("/dashboard", domain.RoleKitchen))
	assert.Equal(t, "/dashboard", NavSections()[0].Items[0].Href)
}
