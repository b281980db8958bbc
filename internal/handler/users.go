package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hoteldesk/front-gateway/internal/client"
	"github.com/hoteldesk/front-gateway/internal/model"
)

// UsersHandler serves the account listings: every account for the admin
// dashboard, CLIENT accounts for the reception desk's booking form.
type UsersHandler struct {
	Users *client.Users
}

func NewUsersHandler(users *client.Users) *UsersHandler {
	return &UsersHandler{Users: users}
}

// AdminUsers lists all accounts (admin).
func (h *UsersHandler) AdminUsers(c echo.Context) error {
	users, err := h.Users.AdminUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Clients lists client accounts (reception).  A read failure degrades to
// an empty list so the booking form still renders.
func (h *UsersHandler) Clients(c echo.Context) error {
	clients, err := h.Users.Clients(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"clients": []model.User{},
			"error":   "client list temporarily unavailable",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"clients": clients})
}
