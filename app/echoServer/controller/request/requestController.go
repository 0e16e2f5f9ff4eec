package request

import (
	"log/slog"
	"net/http"

	"github.com/arnold254/Kitabuzone/model"
	rs "github.com/arnold254/Kitabuzone/service/request"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func actorOf(c echo.Context) rs.Actor {
	uid, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	return rs.Actor{ID: uid, Role: model.Role(role)}
}

// POST /v1/pendingRequests
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Svc.Create(c.Request().Context(), actorOf(c), req)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case rs.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("request create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Request submitted", "id": out.ID})
}

// GET /v1/pendingRequests
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context(), actorOf(c))
	if err != nil {
		h.Log.Error("request list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, listResp{Data: rows, Count: len(rows)})
}

// PATCH /v1/pendingRequests/:id
func (h *Controller) UpdateStatus(c echo.Context) error {
	var req model.UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	out, err := h.Svc.SetStatus(c.Request().Context(), actorOf(c), c.Param("id"), req.Status)
	if err != nil {
		return h.transitionError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// PATCH /v1/pendingRequests/confirm/:id
func (h *Controller) ConfirmBorrow(c echo.Context) error {
	out, err := h.Svc.ConfirmBorrow(c.Request().Context(), actorOf(c), c.Param("id"))
	if err != nil {
		return h.transitionError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// PATCH /v1/pendingRequests  (admin bulk decision)
func (h *Controller) UpdateStatusBatch(c echo.Context) error {
	var req model.BatchStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	if err := h.Svc.SetStatusBatch(c.Request().Context(), actorOf(c), req.IDs, req.Status); err != nil {
		return h.transitionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "batch applied", "count": len(req.IDs)})
}

func (h *Controller) transitionError(c echo.Context, err error) error {
	switch rs.Code(err) {
	case rs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "request not found"})
	case rs.ErrInvalidTransition:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	case rs.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": "request changed concurrently"})
	case rs.ErrForbidden, rs.ErrNotOwner:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case rs.ErrBadInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
	default:
		h.Log.Error("request transition", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
