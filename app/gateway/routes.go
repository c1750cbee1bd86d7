package gateway

import (
	"github.com/labstack/echo/v4"

	"github.com/ilya-noize/RentHub-sub001/app/echoServer"
)

func Register(e *echo.Echo, h *Handler) {
	e.POST("/users", h.CreateUser)
	e.PATCH("/users/:id", h.UpdateUser)
	e.GET("/users/:id", h.Proxy)
	e.GET("/users", h.Proxy)
	e.DELETE("/users/:id", h.Proxy)

	items := e.Group("/items", echoServer.SharerID())
	items.POST("", h.CreateItem)
	items.PATCH("/:id", h.Proxy)
	items.GET("/search", h.Paged)
	items.GET("/:id", h.Proxy)
	items.GET("", h.Paged)
	items.POST("/:id/comment", h.CreateComment)

	bookings := e.Group("/bookings", echoServer.SharerID())
	bookings.POST("", h.CreateBooking)
	bookings.PATCH("/:id", h.DecideBooking)
	bookings.GET("/owner", h.ListBookings)
	bookings.GET("/:id", h.Proxy)
	bookings.GET("", h.ListBookings)

	requests := e.Group("/requests", echoServer.SharerID())
	requests.POST("", h.CreateRequest)
	requests.GET("/all", h.Paged)
	requests.GET("/:id", h.Proxy)
	requests.GET("", h.Proxy)
}
