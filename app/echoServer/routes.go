package echoServer

import (
	"github.com/labstack/echo/v4"

	bookingctrl "github.com/ilya-noize/RentHub-sub001/app/echoServer/controller/booking"
	itemctrl "github.com/ilya-noize/RentHub-sub001/app/echoServer/controller/item"
	requestctrl "github.com/ilya-noize/RentHub-sub001/app/echoServer/controller/request"
	userctrl "github.com/ilya-noize/RentHub-sub001/app/echoServer/controller/user"
)

type C struct {
	User    *userctrl.Controller
	Item    *itemctrl.Controller
	Booking *bookingctrl.Controller
	Request *requestctrl.Controller
}

func Register(e *echo.Echo, c C) {
	// Users: no acting-user header, identity is the path parameter.
	e.POST("/users", c.User.Create)
	e.PATCH("/users/:id", c.User.Update)
	e.GET("/users/:id", c.User.Get)
	e.GET("/users", c.User.List)
	e.DELETE("/users/:id", c.User.Delete)

	// Everything below acts on behalf of X-Sharer-User-Id.
	items := e.Group("/items", SharerID())
	items.POST("", c.Item.Create)
	items.PATCH("/:id", c.Item.Update)
	items.GET("/search", c.Item.Search)
	items.GET("/:id", c.Item.Get)
	items.GET("", c.Item.List)
	items.POST("/:id/comment", c.Item.Comment)

	bookings := e.Group("/bookings", SharerID())
	bookings.POST("", c.Booking.Create)
	bookings.PATCH("/:id", c.Booking.Decide)
	bookings.GET("/owner", c.Booking.ListForOwner)
	bookings.GET("/:id", c.Booking.Get)
	bookings.GET("", c.Booking.ListForBooker)

	requests := e.Group("/requests", SharerID())
	requests.POST("", c.Request.Create)
	requests.GET("/all", c.Request.GetAll)
	requests.GET("/:id", c.Request.Get)
	requests.GET("", c.Request.GetOwn)
}
