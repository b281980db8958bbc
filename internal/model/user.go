package model

// Role names as issued by the users service.  The set is closed; anything
// else is treated as unknown and falls back to the login view when routing.
const (
	RoleAdmin        = "ADMIN"
	RoleReceptionist = "RECEPTIONNISTE"
	RoleClient       = "CLIENT"
)

// HomePath maps a role to its dashboard entry point.  Unknown roles go back
// to the login view.  This mapping is advisory client-side routing only;
// every backend service re-validates authorization on its own.
func HomePath(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin"
	case RoleReceptionist:
		return "/reception"
	case RoleClient:
		return "/client"
	default:
		return "/login"
	}
}

// User is a person record as consumed from the users service.  The
// reservations service keeps its own non-synchronized client table keyed by
// a different identifier; reconcile.Clients bridges the two.
//
// Fields:
//  ID        – users-service identifier.
//  FirstName – given name.
//  LastName  – family name.
//  Email     – unique email, the stable cross-service key for clients.
//  Phone     – optional phone number.
//  Role      – one of the role constants above.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

// DisplayName joins the name parts the way the dashboards show them.
func (u User) DisplayName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
