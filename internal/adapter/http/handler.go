package http

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/bookmart/internal/app"
	"github.com/neomorfeo/bookmart/internal/domain"
)

// Deps holds everything the API handlers call into.
type Deps struct {
	Auth       *app.AuthService
	Catalog    *app.CatalogService
	Orders     *app.OrderService
	Identities domain.IdentityResolver
	// SecureCookies marks the session cookie Secure. Disable only for plain-HTTP development.
	SecureCookies bool
}

// APIConfig returns the huma configuration with the session security schemes declared.
func APIConfig(title, version string) huma.Config {
	cfg := huma.DefaultConfig(title, version)
	if cfg.Components.SecuritySchemes == nil {
		cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	cfg.Components.SecuritySchemes["bearer"] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
	}
	cfg.Components.SecuritySchemes["session"] = &huma.SecurityScheme{
		Type: "apiKey",
		In:   "cookie",
		Name: SessionCookie,
	}
	return cfg
}

// Register adds all marketplace API routes to the Huma API.
func Register(api huma.API, d Deps) {
	registerAccounts(api, d)
	registerBooks(api, d)
	registerOrders(api, d)
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, domain.ErrImageChanged):
		return huma.Error409Conflict(err.Error())
	}

	var unauthErr *domain.UnauthorizedError
	if errors.As(err, &unauthErr) {
		return huma.Error403Forbidden(unauthErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error409Conflict(trErr.Error())
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return huma.Error400BadRequest(valErr.Error())
	}

	var userErr *domain.UserConflictError
	if errors.As(err, &userErr) {
		return huma.Error409Conflict(userErr.Error())
	}

	slog.ErrorContext(ctx, "request failed", "error", err)
	return huma.Error500InternalServerError("internal server error")
}
