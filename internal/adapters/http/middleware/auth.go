package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nnmc-digital/projectboard/internal/adapters/http/dto"
	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/identity"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Auth returns middleware that resolves the request caller from a Bearer
// token. Requests without an Authorization header proceed anonymously;
// whether an anonymous caller may perform an operation is decided by the
// authorization policy, not here.
//
// Tokens are first checked locally (HMAC signature and expiry) so that
// garbage never reaches the identity provider, then exchanged for the
// caller's profile through the IdentityClient. The resolved caller is
// stored in the request context via identity.WithCaller.
func Auth(secret string, client ports.IdentityClient, logger *slog.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				dto.WriteErrorResponse(w, r, fmt.Errorf(
					"malformed Authorization header: %w", domain.ErrUnauthenticated))
				return
			}

			if err := verifySignature(token, key); err != nil {
				logger.DebugContext(r.Context(), "rejected bearer token",
					slog.String("error", err.Error()),
				)
				dto.WriteErrorResponse(w, r, fmt.Errorf(
					"invalid token: %w", domain.ErrUnauthenticated))
				return
			}

			caller, err := client.ResolveCaller(r.Context(), token)
			if err != nil {
				dto.WriteErrorResponse(w, r, err)
				return
			}

			ctx := identity.WithCaller(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifySignature checks the token's HMAC signature and registered claims
// (expiry, not-before). Claims content is not interpreted here; the
// identity provider remains the source of truth for who the caller is.
func verifySignature(token string, key []byte) error {
	_, err := jwt.Parse(token,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	return err
}
