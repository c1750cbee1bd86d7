package booking

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ilya-noize/RentHub-sub001/app/echoServer/httperr"
	"github.com/ilya-noize/RentHub-sub001/model"
	bookingsvc "github.com/ilya-noize/RentHub-sub001/service/booking"
	"github.com/ilya-noize/RentHub-sub001/util/paging"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	var req model.CreateBookingReq
	if err := c.Bind(&req); err != nil {
		h.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		h.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error"})
	}

	v, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// PATCH /bookings/:id?approved=bool
func (h *Controller) Decide(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid approved value"})
	}

	v, err := h.Svc.Decide(c.Request().Context(), uid, id, approved)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, v)
}

// GET /bookings/:id
func (h *Controller) Get(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, v)
}

// GET /bookings?state&from&size — the booker's own reservations.
func (h *Controller) ListForBooker(c echo.Context) error {
	return h.list(c, h.Svc.ListForBooker)
}

// GET /bookings/owner?state&from&size — bookings of the owner's items.
func (h *Controller) ListForOwner(c echo.Context) error {
	return h.list(c, h.Svc.ListForOwner)
}

type listFn func(ctx context.Context, userID int64, state string, from, size int) ([]model.BookingView, error)

func (h *Controller) list(c echo.Context, fetch listFn) error {
	uid, _ := c.Get("user_id").(int64)
	from, size, err := paging.Parse(c.QueryParam("from"), c.QueryParam("size"))
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	views, err := fetch(c.Request().Context(), uid, c.QueryParam("state"), from, size)
	if err != nil {
		return httperr.Write(c, h.Log, err)
	}
	if views == nil {
		views = []model.BookingView{}
	}
	return c.JSON(http.StatusOK, views)
}
