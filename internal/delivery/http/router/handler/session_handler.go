package handler

import (
	"log/slog"
	"net/http"
	"time"

	"sliceco/internal/delivery/http/response"
	"sliceco/internal/domain/entity"
	"sliceco/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// issueTokenRequest is the payload for opening a session.
type issueTokenRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// tokenResponse is the outward view of a session token.
type tokenResponse struct {
	TokenID   string    `json:"tokenId"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expires"`
}

func newTokenResponse(token *entity.Token) tokenResponse {
	return tokenResponse{
		TokenID:   token.ID,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
	}
}

// SessionHandler holds dependencies for session-related handlers.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{uc: uc, logger: logger}
}

// Issue handles the login request and mints a session token.
func (h *SessionHandler) Issue(c echo.Context) error {
	var req issueTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	token, err := h.uc.Issue(c.Request().Context(), req.UserID, req.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newTokenResponse(token), "Session opened successfully")
}

// Renew extends an unexpired token's lifetime.
func (h *SessionHandler) Renew(c echo.Context) error {
	token, err := h.uc.Renew(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTokenResponse(token), "Session renewed successfully")
}

// Revoke deletes the token, ending the session.
func (h *SessionHandler) Revoke(c echo.Context) error {
	if err := h.uc.Revoke(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Session closed successfully")
}
