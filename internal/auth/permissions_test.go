package auth

import (
	"testing"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPermissionSetNoRolesDeniesEverything(t *testing.T) {
	set := NewPermissionSet(nil)

	for _, p := range AllPermissions() {
		assert.False(t, set.Has(p), "empty set must deny %s", p)
	}
}

func TestPermissionSetUnionAcrossRoles(t *testing.T) {
	set := NewPermissionSet([]domain.Role{
		{Name: "Content Manager", Permissions: []string{"CONTENT", "REELS"}},
		{Name: "User Manager", Permissions: []string{"USERS", "SUBSCRIBERS"}},
	})

	assert.True(t, set.Has(PermContent))
	assert.True(t, set.Has(PermReels))
	assert.True(t, set.Has(PermUsers))
	assert.True(t, set.Has(PermSubscribers))
	assert.False(t, set.Has(PermLeagues))
	assert.False(t, set.Has(PermRoles))
	assert.False(t, set.Has(PermNotification))
	assert.False(t, set.IsUniversal())
}

func TestPermissionSetAllShortCircuits(t *testing.T) {
	set := NewPermissionSet([]domain.Role{
		{Name: "Viewer", Permissions: []string{"CONTENT"}},
		{Name: "Admin", Permissions: []string{"ALL"}},
	})

	assert.True(t, set.IsUniversal())
	for _, p := range AllPermissions() {
		assert.True(t, set.Has(p), "universal set must grant %s", p)
	}
}

func TestPermissionSetRoleWithoutTags(t *testing.T) {
	set := NewPermissionSet([]domain.Role{{Name: "Empty"}})
	assert.False(t, set.Has(PermContent))
}

func TestValidPermission(t *testing.T) {
	for _, p := range AllPermissions() {
		assert.True(t, ValidPermission(string(p)))
	}
	assert.False(t, ValidPermission("ODDS"))
	assert.False(t, ValidPermission("content"))
	assert.False(t, ValidPermission(""))
}
