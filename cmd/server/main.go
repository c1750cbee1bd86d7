// ShareIt server: business logic and persistence behind the gateway.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ilya-noize/RentHub-sub001/app/echoServer"
	bookingctrl "github.com/ilya-noize/RentHub-sub001/app/echoServer/controller/booking"
	itemctrl "github.com/ilya-noize/RentHub-sub001/app/echoServer/controller/item"
	requestctrl "github.com/ilya-noize/RentHub-sub001/app/echoServer/controller/request"
	userctrl "github.com/ilya-noize/RentHub-sub001/app/echoServer/controller/user"
	"github.com/ilya-noize/RentHub-sub001/app/echoServer/httperr"
	"github.com/ilya-noize/RentHub-sub001/app/echoServer/validation"
	"github.com/ilya-noize/RentHub-sub001/config"
	"github.com/ilya-noize/RentHub-sub001/metrics"
	bookingrepo "github.com/ilya-noize/RentHub-sub001/repository/booking"
	commentrepo "github.com/ilya-noize/RentHub-sub001/repository/comment"
	itemrepo "github.com/ilya-noize/RentHub-sub001/repository/item"
	requestrepo "github.com/ilya-noize/RentHub-sub001/repository/request"
	userrepo "github.com/ilya-noize/RentHub-sub001/repository/user"
	bookingsvc "github.com/ilya-noize/RentHub-sub001/service/booking"
	commentsvc "github.com/ilya-noize/RentHub-sub001/service/comment"
	itemsvc "github.com/ilya-noize/RentHub-sub001/service/item"
	requestsvc "github.com/ilya-noize/RentHub-sub001/service/request"
	usersvc "github.com/ilya-noize/RentHub-sub001/service/user"
	"github.com/ilya-noize/RentHub-sub001/util/database"
)

func main() {

	cfg := config.LoadServer()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB with migrations applied
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	now := time.Now

	// repos
	ur := userrepo.New(db)
	ir := itemrepo.New(db)
	br := bookingrepo.New(db)
	rr := requestrepo.New(db)
	cr := commentrepo.New(db)

	// services
	us := usersvc.New(db, ur)
	is := itemsvc.New(db, ir, ur, rr, br, cr, now)
	bs := bookingsvc.New(db, br, ir, ur, now)
	rs := requestsvc.New(rr, ir, ur, now)
	cs := commentsvc.New(db, cr, br, ir, ur, now)

	// controllers
	v := validator.New()
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	itemC := &itemctrl.Controller{Svc: is, Comments: cs, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httperr.Handler
	e.Validator = validation.New()

	m := metrics.New()
	echoServer.RegisterMiddlewares(e, m)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	echoServer.Register(e, echoServer.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting shareit server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
