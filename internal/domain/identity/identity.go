// Package identity defines the caller identity consumed from the external
// identity provider: who is acting, what role kind they hold, and which
// department they belong to. Role kinds are resolved once at the identity
// boundary; the authorization gates only ever see the enumerated kind.
package identity

import "context"

// Caller is the authenticated identity attached to a request. A nil *Caller
// means the request is anonymous.
type Caller struct {
	UserID       int64
	Username     string
	Role         Role
	DepartmentID *int64
}

// IsAdmin reports whether the caller holds the administrator role kind.
// Nil-safe: an anonymous caller is never an administrator.
func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role.Kind == RoleAdmin
}

// UserRef is a lightweight reference to a user record owned by the identity
// provider, surfaced on included relations (e.g. meeting authors).
type UserRef struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// callerKey is the unexported context key for the request caller.
type callerKey struct{}

// WithCaller returns a new context carrying the given caller.
func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext extracts the caller from the context, or nil when the
// request is anonymous.
func CallerFromContext(ctx context.Context) *Caller {
	if c, ok := ctx.Value(callerKey{}).(*Caller); ok {
		return c
	}
	return nil
}
