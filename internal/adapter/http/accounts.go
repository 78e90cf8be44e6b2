package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/bookmart/internal/app"
	"github.com/neomorfeo/bookmart/internal/domain"
)

// --- Register ---

type RegisterInput struct {
	Body struct {
		Username  string `json:"username" minLength:"1" maxLength:"50" doc:"Unique login name"`
		Email     string `json:"email" format:"email" maxLength:"255" doc:"Unique email address"`
		FirstName string `json:"first_name,omitempty" maxLength:"100"`
		LastName  string `json:"last_name,omitempty" maxLength:"100"`
		Password  string `json:"password" maxLength:"72" doc:"At least 6 characters"`
		Role      string `json:"role" enum:"seller,buyer" doc:"Account side, fixed at registration"`
	}
}

type UserOutput struct {
	Body UserResponse
}

// --- Login ---

type LoginInput struct {
	Body struct {
		Username string `json:"username" minLength:"1"`
		Password string `json:"password" minLength:"1"`
	}
}

type LoginOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Token     string       `json:"token" doc:"Session token, also set as the session cookie"`
		ExpiresAt string       `json:"expires_at" doc:"Token expiry (RFC 3339)"`
		User      UserResponse `json:"user"`
	}
}

// --- Logout ---

type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
}

func registerAccounts(api huma.API, d Deps) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/register",
		Summary:       "Create an account",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *RegisterInput) (*UserOutput, error) {
		user, err := d.Auth.Register(ctx, app.Registration{
			Username:  input.Body.Username,
			Email:     input.Body.Email,
			FirstName: input.Body.FirstName,
			LastName:  input.Body.LastName,
			Password:  input.Body.Password,
			Role:      domain.Role(input.Body.Role),
		})
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &UserOutput{Body: toUserResponse(user)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Open a session",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		user, session, err := d.Auth.Login(ctx, input.Body.Username, input.Body.Password)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}

		out := &LoginOutput{SetCookie: sessionCookie(session.Token, session.ExpiresAt, d.SecureCookies)}
		out.Body.Token = session.Token
		out.Body.ExpiresAt = session.ExpiresAt.UTC().Format(time.RFC3339)
		out.Body.User = toUserResponse(user)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/logout",
		Summary:       "Clear the session cookie",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusNoContent,
	}, func(_ context.Context, _ *struct{}) (*LogoutOutput, error) {
		return &LogoutOutput{SetCookie: expiredSessionCookie(d.SecureCookies)}, nil
	})

	mws, security := guard(api, d, "")
	huma.Register(api, huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Get the current account",
		Tags:        []string{"Auth"},
		Middlewares: mws,
		Security:    security,
	}, func(ctx context.Context, _ *struct{}) (*UserOutput, error) {
		identity, err := mustIdentity(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		user, err := d.Auth.Me(ctx, identity)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &UserOutput{Body: toUserResponse(user)}, nil
	})
}
