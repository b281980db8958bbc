// Package router wires the HTTP surface: public auth and room browsing,
// the session-guarded dashboard API, and the role-fenced reception, client
// and admin groups.  The role fences are advisory routing for the
// dashboards; every backend service re-authorizes its own calls.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/hoteldesk/front-gateway/internal/config"
	"github.com/hoteldesk/front-gateway/internal/handler"
	"github.com/hoteldesk/front-gateway/internal/middleware"
	"github.com/hoteldesk/front-gateway/internal/model"
	"github.com/hoteldesk/front-gateway/internal/session"
)

// Deps carries everything the routes need.
type Deps struct {
	Cfg          config.Config
	Store        session.Store
	Redis        *redis.Client
	Auth         *handler.AuthHandler
	Rooms        *handler.RoomsHandler
	Reservations *handler.ReservationsHandler
	Billing      *handler.BillingHandler
	Users        *handler.UsersHandler
}

// RegisterRoutes attaches all routes and middleware to the Echo instance.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), d.Redis))

	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Readiness(d.Redis))

	v1 := e.Group("/v1")

	// Public: the login flow and the room browser.
	v1.POST("/auth/login", d.Auth.Login)
	v1.POST("/auth/register", d.Auth.Register)
	v1.POST("/auth/forgot-password", d.Auth.ForgotPassword)
	v1.POST("/auth/validate-reset-token", d.Auth.ValidateResetToken)
	v1.POST("/auth/reset-password", d.Auth.ResetPassword)

	browse := v1.Group("/rooms", middleware.ResponseCache(config.LoadCacheConfig(), d.Redis))
	browse.GET("", d.Rooms.Browse)
	browse.GET("/search", d.Rooms.Search)
	browse.GET("/:id", d.Rooms.Get)

	// Everything below requires a gateway session.
	authed := v1.Group("", middleware.SessionAuth(d.Cfg.JWTSecret, d.Store))
	authed.POST("/auth/logout", d.Auth.Logout)
	authed.GET("/me", d.Auth.Me)
	authed.PUT("/me", d.Auth.UpdateMe)
	authed.PUT("/me/password", d.Auth.ChangePassword)

	// Reception desk: bookings, clients, money.  Admins can do everything
	// the desk can.
	desk := authed.Group("", middleware.RequireRole(model.RoleReceptionist, model.RoleAdmin))
	desk.GET("/clients", d.Users.Clients)
	desk.GET("/reservations", d.Reservations.List)
	desk.POST("/reservations", d.Reservations.Create)
	desk.GET("/reservations/:id", d.Reservations.Get)
	desk.POST("/reservations/:id/cancel", d.Reservations.Cancel)
	desk.POST("/reservations/:id/complete", d.Reservations.Complete)
	desk.GET("/reservations/:id/payments", d.Billing.PaymentsForReservation)
	desk.GET("/reservations/:id/invoice", d.Billing.InvoiceForReservation)
	desk.POST("/payments/stripe/intent", d.Billing.CreateStripeIntent)
	desk.POST("/payments/stripe/confirm", d.Billing.ConfirmStripe)
	desk.POST("/payments/cash", d.Billing.PayCash)
	desk.GET("/invoices/:id", d.Billing.Invoice)
	desk.GET("/invoices/:id/pdf", d.Billing.InvoicePDF)
	desk.PUT("/invoices/:id/pay", d.Billing.PayInvoice)
	desk.GET("/manage/rooms", d.Rooms.List)

	// Client dashboard: own bookings only.
	mine := authed.Group("/my", middleware.RequireRole(model.RoleClient))
	mine.GET("/reservations", d.Reservations.ListMine)
	mine.POST("/reservations", d.Reservations.CreateMine)

	// Admin: accounts and room inventory.
	admin := authed.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/admin/users", d.Users.AdminUsers)
	admin.POST("/rooms", d.Rooms.Create)
	admin.PUT("/rooms/:id", d.Rooms.Update)
	admin.DELETE("/rooms/:id", d.Rooms.Delete)
	admin.PUT("/rooms/:id/status", d.Rooms.SetStatus)
}
