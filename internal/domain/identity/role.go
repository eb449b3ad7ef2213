package identity

import "strings"

// RoleKind is the enumerated role type used by the authorization gates.
type RoleKind string

const (
	RoleAdmin  RoleKind = "admin"
	RoleLead   RoleKind = "lead"
	RoleMember RoleKind = "member"
)

// Role is the caller's role as delivered by the identity provider. Name and
// Type are the provider's free-text labels; Kind is resolved from them once
// when the caller is translated at the boundary.
type Role struct {
	Name string
	Type string
	Kind RoleKind
}

// adminLabels are the accepted administrator designations, matched after
// normalization. The localized label survives from the previous deployment's
// role catalog.
var adminLabels = []string{"admin", "superadmin", "суперадмин"}

// leadLabels are the accepted department-lead designations.
var leadLabels = []string{"lead", "руководитель"}

// ResolveKind maps the provider's free-text role name/type onto a RoleKind.
// Matching is case-insensitive and ignores whitespace, underscores, and
// hyphens, so "Super Admin", "super_admin", and "superadmin" all resolve to
// RoleAdmin. Anything unrecognized is a plain member.
func ResolveKind(name, typ string) RoleKind {
	n := normalizeLabel(name)
	t := normalizeLabel(typ)

	for _, label := range adminLabels {
		if strings.Contains(n, label) || strings.Contains(t, label) {
			return RoleAdmin
		}
	}
	for _, label := range leadLabels {
		if strings.Contains(n, label) || strings.Contains(t, label) {
			return RoleLead
		}
	}
	return RoleMember
}

func normalizeLabel(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '_', '-':
			return -1
		}
		return r
	}, s)
}
