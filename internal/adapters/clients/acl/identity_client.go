package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/nnmc-digital/projectboard/internal/adapters/clients/acl/user"
	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/identity"
	"github.com/nnmc-digital/projectboard/internal/platform/httpclient"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// IdentityClient resolves bearer tokens against the external identity
// provider. It implements ports.IdentityClient.
type IdentityClient struct {
	req    *Requester
	logger *slog.Logger
}

var _ ports.IdentityClient = (*IdentityClient)(nil)

// NewIdentityClient creates an IdentityClient backed by the given HTTP
// client.
func NewIdentityClient(client *httpclient.Client, logger *slog.Logger) *IdentityClient {
	return &IdentityClient{
		req:    NewRequester(client, logger),
		logger: logger,
	}
}

// mePath is the provider's authenticated-profile endpoint with the role and
// department relations populated.
var mePath = func() string {
	q := url.Values{}
	q.Set("populate[0]", "role")
	q.Set("populate[1]", "department")
	return "/api/users/me?" + q.Encode()
}()

// ResolveCaller exchanges a bearer token for the caller's identity. The
// provider validates the token; a rejected token surfaces as
// domain.ErrUnauthenticated and an unreachable provider as
// domain.ErrUnavailable.
func (c *IdentityClient) ResolveCaller(ctx context.Context, token string) (*identity.Caller, error) {
	var dto user.MeDTO
	if err := c.req.Get(ctx, mePath, token, http.StatusOK, &dto); err != nil {
		return nil, fmt.Errorf("resolving caller: %w", err)
	}

	if dto.Blocked {
		c.logger.WarnContext(ctx, "blocked user presented a valid token",
			slog.Int64("user_id", dto.ID),
		)
		return nil, fmt.Errorf("user account is blocked: %w", domain.ErrUnauthenticated)
	}

	return user.ToDomainCaller(&dto), nil
}
