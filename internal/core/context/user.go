// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Roles known to the API. The reporting endpoints only distinguish
// admin from everyone else.
const (
	RoleAdmin = "admin"
	RoleUser  = "usuario"
)

// BranchAll is the sentinel stored in sucursal_registro for users
// allowed to query every branch.
const BranchAll = "TODAS"

// UserContext contains authenticated user information.
type UserContext struct {
	UserID   int64
	Username string
	Role     string
	// Branch is the user's assigned branch (sucursal_registro),
	// or BranchAll when unrestricted.
	Branch string
}

// IsAdmin reports whether the user holds the admin role.
func (u *UserContext) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// BranchRestricted reports whether results must be limited to the
// user's own branch.
func (u *UserContext) BranchRestricted() bool {
	if u == nil {
		return false
	}
	return u.Role != RoleAdmin && u.Branch != BranchAll
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or zero.
func GetUserID(ctx context.Context) int64 {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return 0
}
