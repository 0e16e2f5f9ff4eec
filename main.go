// Package main Kitabuzone API.
//
// @title           Kitabuzone API
// @version         1.0
// @description     Book store/library platform: catalog, borrow/purchase request lifecycle, carts, orders, admin.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/arnold254/Kitabuzone/app/echoServer"
	admctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/admin"
	authctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/auth"
	bookctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/book"
	cartctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/cart"
	orderctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/order"
	reqctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/request"
	"github.com/arnold254/Kitabuzone/app/echoServer/validation"
	"github.com/arnold254/Kitabuzone/config"
	"github.com/arnold254/Kitabuzone/db"
	"github.com/arnold254/Kitabuzone/notify"
	activityrepo "github.com/arnold254/Kitabuzone/repository/activity"
	adminrepo "github.com/arnold254/Kitabuzone/repository/admin"
	authrepo "github.com/arnold254/Kitabuzone/repository/auth"
	bookrepo "github.com/arnold254/Kitabuzone/repository/book"
	orderrepo "github.com/arnold254/Kitabuzone/repository/order"
	reqrepo "github.com/arnold254/Kitabuzone/repository/request"
	adminsvc "github.com/arnold254/Kitabuzone/service/admin"
	authsvc "github.com/arnold254/Kitabuzone/service/auth"
	booksvc "github.com/arnold254/Kitabuzone/service/book"
	cartsvc "github.com/arnold254/Kitabuzone/service/cart"
	ordersvc "github.com/arnold254/Kitabuzone/service/order"
	reqsvc "github.com/arnold254/Kitabuzone/service/request"
	"github.com/arnold254/Kitabuzone/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB
	sqlDB, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := database.Migrate(sqlDB, db.Migrations, "migrations"); err != nil {
		log.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	// approval fan-out
	hub := notify.NewHub()

	// repos
	ar := authrepo.New(sqlDB)
	br := bookrepo.New(sqlDB)
	rr := reqrepo.New(sqlDB)
	or := orderrepo.New(sqlDB)
	lr := activityrepo.New(sqlDB)
	adr := adminrepo.New(sqlDB)

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	bs := booksvc.New(br)
	rs := reqsvc.New(sqlDB, rr, br, lr, hub, log)
	cs := cartsvc.New(rr)
	ors := ordersvc.New(sqlDB, or, rr)
	ads := adminsvc.New(adr, lr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log, Dev: cfg.Env == "dev"}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	reqC := &reqctrl.Controller{Svc: rs, V: v, Log: log}
	cartC := &cartctrl.Controller{Svc: cs, Hub: hub, Log: log}
	orderC := &orderctrl.Controller{Svc: ors, Log: log}
	adminC := &admctrl.Controller{Svc: ads, Auth: as, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Book:    bookC,
		Request: reqC,
		Cart:    cartC,
		Order:   orderC,
		Admin:   adminC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
