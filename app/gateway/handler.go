package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ilya-noize/RentHub-sub001/model"
	"github.com/ilya-noize/RentHub-sub001/util/paging"
)

type Handler struct {
	Client *Client
	V      *validator.Validate
	Log    *slog.Logger
	Now    func() time.Time
}

// Proxy forwards a request that needs no body validation.
func (h *Handler) Proxy(c echo.Context) error {
	return h.forward(c, nil)
}

// CreateUser validates the registration payload, then forwards.
func (h *Handler) CreateUser(c echo.Context) error {
	var req model.CreateUserReq
	body, ok := h.bind(c, &req)
	if !ok {
		return nil
	}
	return h.forward(c, body)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	var req model.UpdateUserReq
	body, ok := h.bind(c, &req)
	if !ok {
		return nil
	}
	return h.forward(c, body)
}

func (h *Handler) CreateItem(c echo.Context) error {
	var req model.CreateItemReq
	body, ok := h.bind(c, &req)
	if !ok {
		return nil
	}
	return h.forward(c, body)
}

func (h *Handler) CreateComment(c echo.Context) error {
	var req model.CreateCommentReq
	body, ok := h.bind(c, &req)
	if !ok {
		return nil
	}
	return h.forward(c, body)
}

func (h *Handler) CreateRequest(c echo.Context) error {
	var req model.CreateRequestReq
	body, ok := h.bind(c, &req)
	if !ok {
		return nil
	}
	return h.forward(c, body)
}

// CreateBooking additionally guards the time window so malformed
// reservations never reach the server.
func (h *Handler) CreateBooking(c echo.Context) error {
	var req model.CreateBookingReq
	body, ok := h.bind(c, &req)
	if !ok {
		return nil
	}
	now := h.Now()
	if !req.Start.Before(req.End) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking start must be before its end"})
	}
	if req.Start.Before(now) || req.End.Before(now) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking period must not be in the past"})
	}
	return h.forward(c, body)
}

func (h *Handler) DecideBooking(c echo.Context) error {
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid approved value"})
	}
	return h.forward(c, nil)
}

// ListBookings checks the state enum and page window for both booker
// and owner listings.
func (h *Handler) ListBookings(c echo.Context) error {
	if _, ok := model.ParseBookingFilter(c.QueryParam("state")); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unknown state: " + c.QueryParam("state")})
	}
	return h.Paged(c)
}

// Paged validates from/size, then forwards.
func (h *Handler) Paged(c echo.Context) error {
	if _, _, err := paging.Parse(c.QueryParam("from"), c.QueryParam("size")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return h.forward(c, nil)
}

// bind buffers the body, validates its shape and hands the raw bytes
// back for forwarding. On failure the 400 response is already written
// and ok is false.
func (h *Handler) bind(c echo.Context, req any) (body []byte, ok bool) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		return nil, false
	}
	if err := json.Unmarshal(body, req); err != nil {
		h.Log.Warn("bind failed", "path", c.Path(), "err", err)
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		return nil, false
	}
	if err := h.V.Struct(req); err != nil {
		h.Log.Warn("validation failed", "path", c.Path(), "err", err)
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error"})
		return nil, false
	}
	return body, true
}

func (h *Handler) forward(c echo.Context, body []byte) error {
	if err := h.Client.Forward(c, body); err != nil {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		h.Log.Error("forward failed", "err", err, "req_id", rid, "path", c.Path())
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "shareit server unavailable"})
	}
	return nil
}
