// ShareIt gateway: validates client requests and forwards them to the server.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ilya-noize/RentHub-sub001/app/echoServer"
	"github.com/ilya-noize/RentHub-sub001/app/echoServer/httperr"
	"github.com/ilya-noize/RentHub-sub001/app/echoServer/validation"
	"github.com/ilya-noize/RentHub-sub001/app/gateway"
	"github.com/ilya-noize/RentHub-sub001/config"
)

func main() {

	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	h := &gateway.Handler{
		Client: gateway.NewClient(cfg.ServerURL),
		V:      validator.New(),
		Log:    log,
		Now:    time.Now,
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httperr.Handler
	e.Validator = validation.New()
	echoServer.RegisterMiddlewares(e, nil)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	gateway.Register(e, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting shareit gateway", "port", port, "server_url", cfg.ServerURL, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
