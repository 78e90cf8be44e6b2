package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/bookmart/internal/domain"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session"

type identityKey struct{}

// IdentityFrom returns the authenticated caller stored by the session middleware.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

// mustIdentity is used by handlers behind authenticate; a missing identity is
// reported as unauthenticated rather than a panic.
func mustIdentity(ctx context.Context) (domain.Identity, error) {
	id, ok := IdentityFrom(ctx)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

// sessionToken reads a bearer token, falling back to the session cookie.
func sessionToken(ctx huma.Context) string {
	if h := ctx.Header("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := huma.ReadCookie(ctx, SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// authenticate resolves the session token and stores the caller's identity
// in the request context. Requests without a valid session get 401.
func authenticate(api huma.API, resolver domain.IdentityResolver) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := sessionToken(ctx)
		if token == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			return
		}

		identity, err := resolver.Resolve(ctx.Context(), token)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			return
		}

		next(huma.WithValue(ctx, identityKey{}, identity))
	}
}

// requireRole rejects callers whose account role differs from role with 403.
// It must run after authenticate.
func requireRole(api huma.API, role domain.Role) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		identity, ok := IdentityFrom(ctx.Context())
		if !ok {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			return
		}
		if identity.Role != role {
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "only "+string(role)+" accounts may do this")
			return
		}
		next(ctx)
	}
}

// guard returns the middleware chain and OpenAPI security for an operation.
// An empty role admits any authenticated caller.
func guard(api huma.API, d Deps, role domain.Role) (huma.Middlewares, []map[string][]string) {
	mws := huma.Middlewares{authenticate(api, d.Identities)}
	if role != "" {
		mws = append(mws, requireRole(api, role))
	}
	return mws, []map[string][]string{{"bearer": {}}, {"session": {}}}
}

func sessionCookie(token string, expires time.Time, secure bool) http.Cookie {
	return http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredSessionCookie(secure bool) http.Cookie {
	c := sessionCookie("", time.Unix(0, 0), secure)
	c.MaxAge = -1
	return c
}
