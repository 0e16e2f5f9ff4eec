package book

import (
	"log/slog"
	"net/http"

	"github.com/arnold254/Kitabuzone/model"
	booksvc "github.com/arnold254/Kitabuzone/service/book"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) bindBook(c echo.Context) (*model.Book, error) {
	var req BookReq
	if err := c.Bind(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Language:    req.Language,
		Description: req.Description,
		Price:       req.Price,
		Cover:       req.Cover,
		Location:    model.BookLocation(req.Location),
		Available:   available,
	}, nil
}

// POST /v1/books  (admin)
// @Summary  Create book
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    payload  body  BookReq  true  "Book payload"
// @Success  201  {object}  model.Book
// @Router   /v1/books [post]
func (h *Controller) Create(c echo.Context) error {
	b, errResp := h.bindBook(c)
	if b == nil {
		return errResp
	}
	uid, _ := c.Get("user_id").(string)
	b.UploadedBy = &uid

	if err := h.Svc.Create(c.Request().Context(), b); err != nil {
		if booksvc.Code(err) == booksvc.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		}
		h.Log.Error("book create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, b)
}

// PUT /v1/books/:id  (admin)
func (h *Controller) Update(c echo.Context) error {
	b, errResp := h.bindBook(c)
	if b == nil {
		return errResp
	}
	b.ID = c.Param("id")

	if err := h.Svc.Update(c.Request().Context(), b); err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		case booksvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		default:
			h.Log.Error("book update error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /v1/books/:id  (admin)
func (h *Controller) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("book delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book deleted"})
}

// GET /v1/books?location=Store|Library
// @Summary  List books
// @Tags     books
// @Produce  json
// @Param    location  query  string  false  "Filter by location"
// @Success  200  {object}  map[string]any
// @Router   /v1/books [get]
func (h *Controller) List(c echo.Context) error {
	loc := model.BookLocation(c.QueryParam("location"))
	rows, err := h.Svc.List(c.Request().Context(), loc)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid location"})
		}
		h.Log.Error("book list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	row, err := h.Svc.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("book detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}
