package order

import (
	"log/slog"
	"net/http"

	ordersvc "github.com/arnold254/Kitabuzone/service/order"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ordersvc.Service
	Log *slog.Logger
}

// POST /v1/shoppingCart/checkout
func (h *Controller) Checkout(c echo.Context) error {
	uid, _ := c.Get("user_id").(string)

	out, err := h.Svc.Checkout(c.Request().Context(), uid)
	if err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrCartEmpty:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "cart empty"})
		case ordersvc.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"message": "cart changed concurrently"})
		default:
			h.Log.Error("checkout", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Order created", "order": out})
}

// GET /v1/orders/my
func (h *Controller) MyOrders(c echo.Context) error {
	uid, _ := c.Get("user_id").(string)
	rows, err := h.Svc.MyOrders(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my orders", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/orders/vieworders  (admin)
func (h *Controller) ViewOrders(c echo.Context) error {
	rows, err := h.Svc.AllOrders(c.Request().Context())
	if err != nil {
		h.Log.Error("view orders", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
