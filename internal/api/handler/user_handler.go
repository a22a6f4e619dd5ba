package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accountsys/accounts-api/internal/core/domain"
	"github.com/accountsys/accounts-api/internal/core/ports"
)

// UserHandler handles the account CRUD routes behind the auth gate.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// userError maps domain errors to HTTP responses shared by the user routes.
func userError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrUserExists):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
	}
	return err
}

// UpdateProfile lets the authenticated account update its own
// username/email/password. Role is not accepted here.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/user/userprofile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), actorID, ports.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return userError(c, err)
	}

	return c.JSON(http.StatusOK, messageResponse{
		Message: "user updated successfully",
		User:    toUserResponse(user),
	})
}

// List returns all accounts. Password hashes are excluded by projection.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/user/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return userError(c, err)
	}

	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// GetSingle returns the public projection of one account: id, username and
// email only.
//
// @Summary      Get a public account profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  publicUserResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/user/singleuser/{id} [get]
func (h *UserHandler) GetSingle(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return userError(c, err)
	}

	return c.JSON(http.StatusOK, publicUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// Delete removes an account. Accounts may delete themselves; deleting
// another account requires the admin role.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/user/deleteuser/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actorID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if id != actorID && role != domain.RoleAdmin {
		return userError(c, domain.ErrForbidden)
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return userError(c, err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted successfully"})
}

// AdminUpdate renames another account's username/email. Admin-only
// (enforced by the RequireRole middleware on the route).
//
// @Summary      Update an account (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminUpdateRequest  true  "Account fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/user/updateuser [put]
func (h *UserHandler) AdminUpdate(c echo.Context) error {
	var req adminUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if _, err := h.users.AdminUpdate(c.Request().Context(), ports.AdminUpdateInput{
		ID:       req.ID,
		Username: req.Username,
		Email:    req.Email,
	}); err != nil {
		return userError(c, err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "user updated successfully"})
}

// Add creates an account with an explicit role. Admin-only (enforced by the
// RequireRole middleware on the route); the only path that can mint an
// admin.
//
// @Summary      Create an account (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addUserRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/user/add [post]
func (h *UserHandler) Add(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return userError(c, err)
	}

	return c.JSON(http.StatusCreated, messageResponse{
		Message: "user created successfully",
		User:    toUserResponse(user),
	})
}
