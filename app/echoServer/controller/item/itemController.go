package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ilya-noize/RentHub-sub001/app/echoServer/httperr"
	"github.com/ilya-noize/RentHub-sub001/model"
	commentsvc "github.com/ilya-noize/RentHub-sub001/service/comment"
	itemsvc "github.com/ilya-noize/RentHub-sub001/service/item"
	"github.com/ilya-noize/RentHub-sub001/util/paging"
)

type Controller struct {
	Svc      itemsvc.Service
	Comments commentsvc.Service
	V        *validator.Validate
	Log      *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	var req model.CreateItemReq
	if err := c.Bind(&req); err != nil {
		h.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		h.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error"})
	}

	it, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req model.UpdateItemReq
	if err := c.Bind(&req); err != nil {
		h.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	it, err := h.Svc.Update(c.Request().Context(), uid, id, req)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:id
func (h *Controller) Get(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, d)
}

// GET /items?from&size — the owner's items with booking summaries.
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	from, size, err := paging.Parse(c.QueryParam("from"), c.QueryParam("size"))
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	items, err := h.Svc.ListByOwner(c.Request().Context(), uid, from, size)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /items/search?text&from&size
func (h *Controller) Search(c echo.Context) error {
	from, size, err := paging.Parse(c.QueryParam("from"), c.QueryParam("size"))
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /items/:id/comment
func (h *Controller) Comment(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req model.CreateCommentReq
	if err := c.Bind(&req); err != nil {
		h.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		h.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error"})
	}

	cm, err := h.Comments.Create(c.Request().Context(), uid, id, req)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, cm)
}
