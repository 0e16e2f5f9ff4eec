package echoServer

import (
	"net/http"

	admctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/admin"
	authctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/auth"
	bookctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/book"
	cartctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/cart"
	orderctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/order"
	reqctrl "github.com/arnold254/Kitabuzone/app/echoServer/controller/request"
	"github.com/arnold254/Kitabuzone/app/echoServer/jwtx"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth    *authctrl.Controller
	Book    *bookctrl.Controller
	Request *reqctrl.Controller
	Cart    *cartctrl.Controller
	Order   *orderctrl.Controller
	Admin   *admctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)
	pub.POST("/auth/request-password-reset", c.Auth.RequestPasswordReset)
	pub.POST("/auth/reset-password/:token", c.Auth.ResetPassword)

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "header:Authorization:Bearer ",
	}))
	// user_id + role extraction from verified claims
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sub, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			role, _ := jwtx.RoleFromContext(ctx)

			ctx.Set("user_id", sub)
			ctx.Set("role", role)
			return next(ctx)
		}
	})

	// Books
	auth.GET("/books", c.Book.List)
	auth.GET("/books/:id", c.Book.Detail)

	// Requests (borrow/purchase lifecycle)
	auth.POST("/pendingRequests", c.Request.Create)
	auth.GET("/pendingRequests", c.Request.List)
	auth.PATCH("/pendingRequests", c.Request.UpdateStatusBatch)
	auth.PATCH("/pendingRequests/:id", c.Request.UpdateStatus)
	auth.PATCH("/pendingRequests/confirm/:id", c.Request.ConfirmBorrow)

	// Cart projections + approval stream
	auth.GET("/borrowingCart", c.Cart.BorrowingCart)
	auth.GET("/shoppingCart", c.Cart.ShoppingCart)
	auth.GET("/events/approvals", c.Cart.ApprovalEvents)

	// Orders
	auth.POST("/shoppingCart/checkout", c.Order.Checkout)
	auth.GET("/orders/my", c.Order.MyOrders)

	// Admin endpoints
	adm := auth.Group("", AdminOnly())
	adm.POST("/books", c.Book.Create)
	adm.PUT("/books/:id", c.Book.Update)
	adm.DELETE("/books/:id", c.Book.Delete)
	adm.GET("/orders/vieworders", c.Order.ViewOrders)
	adm.GET("/admin/dashboard", c.Admin.Dashboard)
	adm.GET("/admin/users", c.Admin.ListUsers)
	adm.POST("/admin/users", c.Admin.CreateUser)
	adm.PATCH("/admin/users/:id/status", c.Admin.SetUserStatus)
	adm.DELETE("/admin/users/:id", c.Admin.DeleteUser)
	adm.GET("/admin/logs", c.Admin.Logs)
	adm.GET("/admin/logActions", c.Admin.LogActions)
}
