package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ilya-noize/RentHub-sub001/app/echoServer/httperr"
	"github.com/ilya-noize/RentHub-sub001/model"
	requestsvc "github.com/ilya-noize/RentHub-sub001/service/request"
	"github.com/ilya-noize/RentHub-sub001/util/paging"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	var req model.CreateRequestReq
	if err := c.Bind(&req); err != nil {
		h.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		h.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error"})
	}

	r, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// GET /requests — own requests, newest first.
func (h *Controller) GetOwn(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	views, err := h.Svc.GetOwn(c.Request().Context(), uid)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /requests/all?from&size — other users' requests.
func (h *Controller) GetAll(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	from, size, err := paging.Parse(c.QueryParam("from"), c.QueryParam("size"))
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	views, err := h.Svc.GetAll(c.Request().Context(), uid, from, size)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /requests/:id
func (h *Controller) Get(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	view, err := h.Svc.GetByID(c.Request().Context(), uid, id)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, view)
}
