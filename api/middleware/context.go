package middleware

import (
	"context"

	"github.com/google/uuid"

	pkgAuth "github.com/campusmart/storefront/pkg/auth"
	"github.com/campusmart/storefront/pkg/enums"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxRole     contextKey = "actor_role"
	ctxAccessID contextKey = "access_id"
	ctxCartID   contextKey = "cart_id"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// AccessIDFromContext returns the jti of the verified access token.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// CartIDFromContext returns the cart id bound by CartToken.
func CartIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCartID).(string); ok {
		return v
	}
	return ""
}

// IdentityFromContext rebuilds the caller identity seeded by Auth. A missing
// or malformed user id yields the zero identity.
func IdentityFromContext(ctx context.Context) pkgAuth.Identity {
	userID, err := uuid.Parse(UserIDFromContext(ctx))
	if err != nil {
		return pkgAuth.Identity{}
	}
	return pkgAuth.Identity{UserID: userID, Role: enums.Role(RoleFromContext(ctx))}
}

// WithIdentity injects an authenticated caller into the context.
func WithIdentity(ctx context.Context, identity pkgAuth.Identity, accessID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, identity.UserID.String())
	ctx = context.WithValue(ctx, ctxRole, string(identity.Role))
	return context.WithValue(ctx, ctxAccessID, accessID)
}

// WithCartID injects the resolved cart id into the context.
func WithCartID(ctx context.Context, cartID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartID, cartID)
}
