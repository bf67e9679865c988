package auth

import "github.com/gambit/admin-api/internal/domain"

// Permission is one of the closed set of capability tags gating resource
// categories. The set is not user-extensible.
type Permission string

const (
	PermContent      Permission = "CONTENT"
	PermNotification Permission = "NOTIFICATION"
	PermLeagues      Permission = "LEAGUES"
	PermReels        Permission = "REELS"
	PermUsers        Permission = "USERS"
	PermSubscribers  Permission = "SUBSCRIBERS"
	PermRoles        Permission = "ROLES"
	PermAll          Permission = "ALL"
)

// AllPermissions returns every assignable permission tag.
func AllPermissions() []Permission {
	return []Permission{
		PermContent, PermNotification, PermLeagues, PermReels,
		PermUsers, PermSubscribers, PermRoles, PermAll,
	}
}

// ValidPermission reports whether s names a known permission tag.
func ValidPermission(s string) bool {
	for _, p := range AllPermissions() {
		if string(p) == s {
			return true
		}
	}
	return false
}

// PermissionSet is an admin's effective permissions: the union of the tags of
// all assigned roles, or universal if any role carries ALL.
type PermissionSet struct {
	all  bool
	tags map[Permission]struct{}
}

// NewPermissionSet computes the effective set for the given roles.
func NewPermissionSet(roles []domain.Role) PermissionSet {
	set := PermissionSet{tags: make(map[Permission]struct{})}
	for _, role := range roles {
		for _, tag := range role.Permissions {
			if Permission(tag) == PermAll {
				set.all = true
				return set
			}
			set.tags[Permission(tag)] = struct{}{}
		}
	}
	return set
}

// Has reports whether the set grants the given tag.
func (s PermissionSet) Has(p Permission) bool {
	if s.all {
		return true
	}
	_, ok := s.tags[p]
	return ok
}

// IsUniversal reports whether the set short-circuited on ALL.
func (s PermissionSet) IsUniversal() bool { return s.all }
