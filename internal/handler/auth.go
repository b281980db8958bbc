package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hoteldesk/front-gateway/internal/client"
	"github.com/hoteldesk/front-gateway/internal/config"
	"github.com/hoteldesk/front-gateway/internal/middleware"
	"github.com/hoteldesk/front-gateway/internal/model"
	"github.com/hoteldesk/front-gateway/internal/session"
	"github.com/hoteldesk/front-gateway/internal/utils"
)

// AuthHandler bundles dependencies for the sign-in flows.  It proxies the
// users service and owns the gateway session lifecycle: created on login,
// overwritten on refresh, cleared on logout.
type AuthHandler struct {
	Cfg   config.Config
	Store session.Store
	Users *client.Users
}

func NewAuthHandler(cfg config.Config, store session.Store, users *client.Users) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Store: store, Users: users}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type registerReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}
type authResp struct {
	User    model.User `json:"user"`
	Token   string     `json:"token"`
	Expires time.Time  `json:"expires"`
	Home    string     `json:"home"`
}

// openSession stores a fresh session for the upstream token and answers
// with the gateway session token.
func (h *AuthHandler) openSession(c echo.Context, res client.LoginResult) error {
	sess := session.Session{
		ID:        uuid.NewString(),
		AuthToken: res.Token,
		Profile:   session.ProfileFromUser(res.User),
	}
	if err := h.Store.Set(c.Request().Context(), sess); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session save failed"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, sess.ID, sess.Profile.Role, h.Cfg.SessionTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, authResp{
		User:    res.User,
		Token:   tok.Token,
		Expires: tok.Exp,
		Home:    model.HomePath(res.User.Role),
	})
}

// Login: exchange credentials at the users service and open a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	res, err := h.Users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return h.openSession(c, res)
}

// Register: create a CLIENT account and open a session right away.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	res, err := h.Users.Register(c.Request().Context(), client.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	if res.Token == "" {
		// Some deployments require a fresh login after registering.
		return c.JSON(http.StatusCreated, echo.Map{"user": res.User})
	}
	return h.openSession(c, res)
}

// Logout clears the session and drops the cookie.  Always succeeds from
// the browser's point of view.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess, ok := middleware.CurrentSession(c); ok {
		_ = h.Store.Clear(c.Request().Context(), sess.ID)
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

// Me returns the live profile from the users service and refreshes the
// cached copy so role changes propagate.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.Users.Me(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	if sess, ok := middleware.CurrentSession(c); ok {
		sess.Profile = session.ProfileFromUser(user)
		_ = h.Store.Set(c.Request().Context(), sess)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe edits the profile and refreshes the cached copy.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	user, err := h.Users.UpdateMe(c.Request().Context(), client.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return respondError(c, err)
	}
	if sess, ok := middleware.CurrentSession(c); ok {
		sess.Profile = session.ProfileFromUser(user)
		_ = h.Store.Set(c.Request().Context(), sess)
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword rotates the signed-in account's password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req struct {
		Current string `json:"current_password"`
		Next    string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil || req.Current == "" || req.Next == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current_password/new_password required"})
	}
	if err := h.Users.ChangePassword(c.Request().Context(), req.Current, req.Next); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword starts the reset flow.  The answer does not reveal
// whether the email exists.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}
	if err := h.Users.ForgotPassword(c.Request().Context(), strings.TrimSpace(req.Email)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "if the email exists, a reset code has been sent"})
}

// ValidateResetToken checks a reset code before showing the new-password
// form.
func (h *AuthHandler) ValidateResetToken(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/token required"})
	}
	if err := h.Users.ValidateResetToken(c.Request().Context(), req.Email, req.Token); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true})
}

// ResetPassword completes the reset flow.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Token    string `json:"token"`
		Password string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Token == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/token/new_password required"})
	}
	if err := h.Users.ResetPassword(c.Request().Context(), req.Email, req.Token, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}
