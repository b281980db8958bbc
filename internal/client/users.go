// Package client holds the typed bindings to the four backend services.
// Each binding wraps one httpx.Client and translates between the service's
// wire conventions (French field names, snake_case or camelCase depending
// on the service) and the gateway's internal model.
package client

import (
	"context"
	"encoding/json"

	"github.com/hoteldesk/front-gateway/internal/httpx"
	"github.com/hoteldesk/front-gateway/internal/model"
)

// PublicAuthPaths are the users-service endpoints that may legitimately
// answer 401 during the login flow itself.  They are wired into the client
// as its unauthorized allow-list so a rejected login never loops back to
// the login view.
var PublicAuthPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/forgot-password",
	"/auth/validate-reset-token",
	"/auth/reset-password",
	"/auth/send-password",
}

// Users is the binding to the users/auth service.  All requests ride the
// session's bearer token; a 401 outside PublicAuthPaths clears the session.
type Users struct {
	api *httpx.Client
}

// NewUsers wraps an already-configured httpx client.
func NewUsers(api *httpx.Client) *Users { return &Users{api: api} }

// userWire is the users service's account shape.
type userWire struct {
	ID        int64  `json:"id"`
	FirstName string `json:"prenom"`
	LastName  string `json:"nom"`
	Email     string `json:"email"`
	Phone     string `json:"telephone"`
	Role      string `json:"role"`
}

func (w userWire) toModel() model.User {
	return model.User{
		ID:        w.ID,
		FirstName: w.FirstName,
		LastName:  w.LastName,
		Email:     w.Email,
		Phone:     w.Phone,
		Role:      w.Role,
	}
}

// LoginResult is a successful authentication: the account plus the bearer
// token the session will carry for subsequent upstream calls.
type LoginResult struct {
	User  model.User
	Token string
}

// Login exchanges credentials for a token.  The service expects the
// password under its French field name.
func (u *Users) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "motDePasse": password}
	raw, err := u.api.Do(ctx, "POST", "/auth/login", nil, body)
	if err != nil {
		return LoginResult{}, err
	}
	var resp struct {
		User  userWire `json:"user"`
		Token string   `json:"token"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: resp.User.toModel(), Token: resp.Token}, nil
}

// Registration is the sign-up payload.  The users service forces the role
// of public registrations to CLIENT regardless of what is sent.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// Register creates an account and returns it together with its first
// token, mirroring Login.
func (u *Users) Register(ctx context.Context, reg Registration) (LoginResult, error) {
	body := map[string]string{
		"prenom":     reg.FirstName,
		"nom":        reg.LastName,
		"email":      reg.Email,
		"telephone":  reg.Phone,
		"motDePasse": reg.Password,
	}
	raw, err := u.api.Do(ctx, "POST", "/auth/register", nil, body)
	if err != nil {
		return LoginResult{}, err
	}
	var resp struct {
		User  userWire `json:"user"`
		Token string   `json:"token"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: resp.User.toModel(), Token: resp.Token}, nil
}

// Me fetches the account behind the session token.
func (u *Users) Me(ctx context.Context) (model.User, error) {
	raw, err := u.api.Do(ctx, "GET", "/auth/me", nil, nil)
	if err != nil {
		return model.User{}, err
	}
	var w userWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return model.User{}, err
	}
	return w.toModel(), nil
}

// ProfileUpdate carries the editable profile fields.  Empty strings are
// omitted so the service keeps the current value.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// UpdateMe edits the signed-in account and returns the updated record.
func (u *Users) UpdateMe(ctx context.Context, upd ProfileUpdate) (model.User, error) {
	body := map[string]string{}
	if upd.FirstName != "" {
		body["prenom"] = upd.FirstName
	}
	if upd.LastName != "" {
		body["nom"] = upd.LastName
	}
	if upd.Email != "" {
		body["email"] = upd.Email
	}
	if upd.Phone != "" {
		body["telephone"] = upd.Phone
	}
	raw, err := u.api.Do(ctx, "PUT", "/auth/me", nil, body)
	if err != nil {
		return model.User{}, err
	}
	var w userWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return model.User{}, err
	}
	return w.toModel(), nil
}

// ChangePassword rotates the signed-in account's password.
func (u *Users) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"ancienMotDePasse": current, "nouveauMotDePasse": next}
	_, err := u.api.Do(ctx, "PUT", "/auth/change-password", nil, body)
	return err
}

// ForgotPassword starts the reset flow.  The service answers 200 even for
// unknown emails so enumeration is not possible; any error here is real.
func (u *Users) ForgotPassword(ctx context.Context, email string) error {
	_, err := u.api.Do(ctx, "POST", "/auth/forgot-password", nil, map[string]string{"email": email})
	return err
}

// ValidateResetToken checks a reset code before the new password form is
// shown.
func (u *Users) ValidateResetToken(ctx context.Context, email, token string) error {
	body := map[string]string{"email": email, "token": token}
	_, err := u.api.Do(ctx, "POST", "/auth/validate-reset-token", nil, body)
	return err
}

// ResetPassword completes the reset flow.
func (u *Users) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	body := map[string]string{"email": email, "token": token, "nouveauMotDePasse": newPassword}
	_, err := u.api.Do(ctx, "POST", "/auth/reset-password", nil, body)
	return err
}

// AdminUsers lists every account.  Admin only; the service enforces it.
func (u *Users) AdminUsers(ctx context.Context) ([]model.User, error) {
	raw, err := u.api.Do(ctx, "GET", "/admin/users", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeUsers(raw)
}

// Clients lists CLIENT accounts for the reception desk.  The service
// already filters by role but inconsistently, so the result is filtered
// again here.
func (u *Users) Clients(ctx context.Context) ([]model.User, error) {
	raw, err := u.api.Do(ctx, "GET", "/auth/clients", nil, nil)
	if err != nil {
		return nil, err
	}
	users, err := decodeUsers(raw)
	if err != nil {
		return nil, err
	}
	clients := users[:0]
	for _, usr := range users {
		if usr.Role == model.RoleClient {
			clients = append(clients, usr)
		}
	}
	return clients, nil
}

func decodeUsers(raw json.RawMessage) ([]model.User, error) {
	wires, err := httpx.DecodeList[userWire](raw, "users")
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(wires))
	for _, w := range wires {
		users = append(users, w.toModel())
	}
	return users, nil
}
