package user

import (
	"github.com/nnmc-digital/projectboard/internal/domain/identity"
)

// ToDomainCaller converts a provider MeDTO to a domain Caller. The role kind
// is resolved from the provider's free-text labels here, once, so that
// authorization gates downstream only ever see the enumerated kind.
func ToDomainCaller(dto *MeDTO) *identity.Caller {
	var role identity.Role
	if dto.Role != nil {
		role = identity.Role{
			Name: dto.Role.Name,
			Type: dto.Role.Type,
			Kind: identity.ResolveKind(dto.Role.Name, dto.Role.Type),
		}
	} else {
		// A profile without a role relation is still authenticated, just
		// unprivileged.
		role = identity.Role{Kind: identity.RoleMember}
	}

	caller := &identity.Caller{
		UserID:   dto.ID,
		Username: dto.Username,
		Role:     role,
	}
	if dto.Department != nil {
		deptID := dto.Department.ID
		caller.DepartmentID = &deptID
	}
	return caller
}
