package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/accountsys/accounts-api/internal/api/metrics"
	"github.com/accountsys/accounts-api/internal/api/middleware"
	"github.com/accountsys/accounts-api/internal/core/domain"
	"github.com/accountsys/accounts-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// Signup registers a new account and returns it with a bearer token.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	res, err := h.authService.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "internal server error"
		switch err {
		case domain.ErrUserExists, domain.ErrEmailTaken:
			status, msg = http.StatusConflict, err.Error()
		case domain.ErrInvalidInput:
			status, msg = http.StatusBadRequest, err.Error()
		}
		return c.JSON(status, map[string]string{"error": msg})
	}

	metrics.SignupsTotal.Inc()

	return c.JSON(http.StatusCreated, authResponse{
		User:    toUserResponse(res.User),
		Token:   res.Token,
		Message: "user created successfully",
	})
}

// Login authenticates by email and password. On success the token is
// returned in the body and mirrored into the auth cookie, expiring with the
// token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		status := http.StatusInternalServerError
		msg := "internal server error"
		switch err {
		case domain.ErrInvalidCredentials:
			status, msg = http.StatusUnauthorized, err.Error()
		case domain.ErrUserNotFound:
			status, msg = http.StatusNotFound, err.Error()
		case domain.ErrInvalidInput:
			status, msg = http.StatusBadRequest, err.Error()
		}
		return c.JSON(status, map[string]string{"error": msg})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	middleware.SetAuthCookie(c, res.Token, res.ExpiresAt)

	return c.JSON(http.StatusOK, authResponse{
		User:    toUserResponse(res.User),
		Token:   res.Token,
		Message: "login successful",
	})
}

// Logout clears the auth cookie. The bearer token itself stays valid until
// expiry; there is no server-side revocation.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearAuthCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logout successful"})
}
