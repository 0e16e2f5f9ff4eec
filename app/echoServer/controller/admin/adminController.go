package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/arnold254/Kitabuzone/model"
	adminsvc "github.com/arnold254/Kitabuzone/service/admin"
	authsvc "github.com/arnold254/Kitabuzone/service/auth"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc  adminsvc.Service
	Auth authsvc.Service
	V    *validator.Validate
	Log  *slog.Logger
}

type createUserReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=customer admin"`
}

type userStatusReq struct {
	Status string `json:"status" validate:"required,oneof=Active Suspended"`
}

// GET /v1/admin/dashboard
func (h *Controller) Dashboard(c echo.Context) error {
	stats, err := h.Svc.Dashboard(c.Request().Context())
	if err != nil {
		h.Log.Error("dashboard stats", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, stats)
}

// GET /v1/admin/users?search=&page=&per_page=
func (h *Controller) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	out, err := h.Svc.ListUsers(c.Request().Context(), c.QueryParam("search"), page, perPage)
	if err != nil {
		h.Log.Error("list users", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/admin/users
func (h *Controller) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleCustomer
	}

	u, err := h.Auth.CreateUser(c.Request().Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrEmailTaken:
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already exists"})
		case authsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("admin create user", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully", "user": u})
}

// PATCH /v1/admin/users/:id/status
func (h *Controller) SetUserStatus(c echo.Context) error {
	var req userStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	err := h.Svc.SetUserStatus(c.Request().Context(), c.Param("id"), model.UserStatus(req.Status))
	if err != nil {
		if adminsvc.Code(err) == adminsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("set user status", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "status updated"})
}

// DELETE /v1/admin/users/:id
func (h *Controller) DeleteUser(c echo.Context) error {
	if err := h.Svc.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		if adminsvc.Code(err) == adminsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("delete user", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}

// GET /v1/admin/logs
func (h *Controller) Logs(c echo.Context) error {
	rows, err := h.Svc.ActivityLogs(c.Request().Context())
	if err != nil {
		h.Log.Error("activity logs", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /v1/admin/logActions
func (h *Controller) LogActions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.LogActions())
}
