package ports

import (
	"context"

	"github.com/nnmc-digital/projectboard/internal/domain/identity"
)

// IdentityClient defines the client port for the external identity
// provider. Implemented by the identity ACL adapter; called by the auth
// middleware once per authenticated request.
type IdentityClient interface {
	// ResolveCaller exchanges a bearer token for the caller's identity,
	// including the role kind resolved at this boundary and the caller's
	// department. Returns domain.ErrUnauthenticated for tokens the provider
	// rejects and domain.ErrUnavailable when the provider cannot be reached.
	ResolveCaller(ctx context.Context, token string) (*identity.Caller, error)
}
