package reconcile

import (
	"context"
	"log"

	"github.com/hoteldesk/front-gateway/internal/client"
	"github.com/hoteldesk/front-gateway/internal/model"
)

// ClientMirror is the slice of the reservations-service client the client
// reconciler needs.  *client.Reservations satisfies it.
type ClientMirror interface {
	FindClientByEmail(ctx context.Context, email string) (client.MirrorClient, error)
	CreateClient(ctx context.Context, u model.User) (client.MirrorClient, error)
}

// Clients locates-or-creates clients in the reservations service.  Email is
// the lookup key; the users service and the reservations service share no
// identifier space.
type Clients struct {
	mirror ClientMirror
}

// NewClients builds a client reconciler over the given mirror.
func NewClients(mirror ClientMirror) *Clients { return &Clients{mirror: mirror} }

// Ensure resolves the reservations-service identifier for a users-service
// account.  Same contract as Rooms.Ensure: one lookup, at most one create,
// FellBack keeps the users-service id so the reservation write can surface
// the service's own rejection.
func (c *Clients) Ensure(ctx context.Context, u model.User) Result {
	if u.Email != "" {
		if found, err := c.mirror.FindClientByEmail(ctx, u.Email); err == nil && found.ID != 0 {
			return Result{Outcome: Found, ID: found.ID}
		}
	}

	created, err := c.mirror.CreateClient(ctx, u)
	if err != nil {
		log.Printf("reconcile: client %q not mirrored, keeping id %d: %v", u.Email, u.ID, err)
		return Result{Outcome: FellBack, ID: u.ID, Err: err}
	}
	id := created.ID
	if id == 0 {
		id = u.ID
	}
	return Result{Outcome: Created, ID: id}
}
