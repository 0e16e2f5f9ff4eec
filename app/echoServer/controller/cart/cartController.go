package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/arnold254/Kitabuzone/notify"
	cartsvc "github.com/arnold254/Kitabuzone/service/cart"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc cartsvc.Service
	Hub *notify.Hub
	Log *slog.Logger
}

// GET /v1/borrowingCart
func (h *Controller) BorrowingCart(c echo.Context) error {
	uid, _ := c.Get("user_id").(string)
	rows, err := h.Svc.BorrowingCart(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("borrowing cart", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cart": rows, "count": len(rows)})
}

// GET /v1/shoppingCart
func (h *Controller) ShoppingCart(c echo.Context) error {
	uid, _ := c.Get("user_id").(string)
	rows, err := h.Svc.ShoppingCart(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("shopping cart", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cart": rows, "count": len(rows)})
}

// GET /v1/events/approvals  (SSE)
//
// Streams approval signals so open cart and order views can refetch
// instead of polling. Events carry no data beyond the request id and
// its owner; clients re-derive their own views.
func (h *Controller) ApprovalEvents(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	events, cancel := h.Hub.Subscribe()
	defer cancel()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: new-approval\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
