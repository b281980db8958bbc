package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/hoteldesk/front-gateway/internal/client"
	"github.com/hoteldesk/front-gateway/internal/config"
	"github.com/hoteldesk/front-gateway/internal/handler"
	"github.com/hoteldesk/front-gateway/internal/router"
	"github.com/hoteldesk/front-gateway/internal/session"
)

func main() {
	// .env is a local-development convenience; in containers the variables
	// arrive from the orchestrator and the file is absent.
	_ = godotenv.Load()

	cfg := config.Load()

	rdb := config.NewRedisClient()
	var store session.Store
	if rdb != nil {
		store = session.NewRedisStore(rdb, "session", cfg.SessionTTL)
	} else {
		log.Println("sessions: redis unavailable, using in-memory store (sessions do not survive restarts)")
		store = session.NewMemoryStore()
	}

	clients := client.NewSet(cfg, store, client.LogNavigator)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, router.Deps{
		Cfg:          cfg,
		Store:        store,
		Redis:        rdb,
		Auth:         handler.NewAuthHandler(cfg, store, clients.Users),
		Rooms:        handler.NewRoomsHandler(clients.Rooms),
		Reservations: handler.NewReservationsHandler(clients),
		Billing:      handler.NewBillingHandler(clients.Billing),
		Users:        handler.NewUsersHandler(clients.Users),
	})

	addr := ":" + cfg.Port
	log.Printf("front-gateway listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
