// Package middleware contains HTTP middlewares for the API server.
package middleware

import (
	"net/http"
	"strings"

	deliverycontext "sliceco/internal/delivery/context"
	"sliceco/internal/delivery/http/response"
	"sliceco/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware authenticates requests carrying an opaque session token.
type AuthMiddleware struct {
	sessionUC usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessionUC usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessionUC: sessionUC}
}

// Authenticate resolves the bearer token against the session store and puts
// the owning user id on the context. Tokens arrive either as a standard
// Authorization bearer header or a bare "token" header; both name the same
// opaque id.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenID := extractToken(c.Request())
		if tokenID == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authentication token is missing")
		}

		token, err := m.sessionUC.Validate(c.Request().Context(), tokenID)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		deliverycontext.SetUserID(c, token.UserID)

		return next(c)
	}
}

func extractToken(req *http.Request) string {
	if authHeader := req.Header.Get("Authorization"); authHeader != "" {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			return token
		}
	}

	return req.Header.Get("token")
}
