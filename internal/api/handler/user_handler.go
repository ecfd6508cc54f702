package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nocturnal/nocturnal-api/internal/core/domain"
	"github.com/nocturnal/nocturnal-api/internal/core/ports"
)

// UserHandler serves the public user lookups and the admin user endpoints.
type UserHandler struct {
	service ports.UserService
}

// NewUserHandler creates a UserHandler backed by the given service.
func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetByUsername handles GET /users/:username.
//
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Exact username"
// @Success      200       {object}  userResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /users/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.service.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Me handles GET /users/@me. There is no session model yet.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Failure      501  {object}  errorResponse
// @Router       /users/@me [get]
func (h *UserHandler) Me(c echo.Context) error {
	return domain.ErrNotImplemented
}

// Create handles POST /admin/users.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username:    req.Username,
		Displayname: req.Displayname,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// GetByID handles GET /admin/users/:id.
//
// @Summary      Get a user by id
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ObjectID (hex)"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /admin/users/:id. Deleting an unknown id is not an error.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ObjectID (hex)"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	n, err := h.service.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{DeletedCount: n})
}
