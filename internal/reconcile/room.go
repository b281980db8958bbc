package reconcile

import (
	"context"
	"log"

	"github.com/hoteldesk/front-gateway/internal/model"
)

// RoomMirror is the slice of the reservations-service client the room
// reconciler needs.  *client.Reservations satisfies it.
type RoomMirror interface {
	FindRoomByNumber(ctx context.Context, number string) (model.Room, error)
	FindRoom(ctx context.Context, id int64) (model.Room, error)
	CreateRoom(ctx context.Context, room model.Room) (model.Room, error)
}

// Rooms locates-or-creates rooms in the reservations service.
type Rooms struct {
	mirror RoomMirror
}

// NewRooms builds a room reconciler over the given mirror.
func NewRooms(mirror RoomMirror) *Rooms { return &Rooms{mirror: mirror} }

// Ensure resolves the reservations-service identifier for a room known to
// the rooms service.  Lookup goes by number first (the only stable
// cross-service key), then by the rooms-service id.  A miss triggers
// exactly one creation attempt with the status forced to free.  When
// creation fails too, the original identifier is returned under FellBack so
// the reservation write can still proceed.  Runs synchronously; callers
// invoke it immediately before submitting the reservation.
func (r *Rooms) Ensure(ctx context.Context, room model.Room) Result {
	if room.Number != "" {
		if found, err := r.mirror.FindRoomByNumber(ctx, room.Number); err == nil && found.ID != 0 {
			return Result{Outcome: Found, ID: found.ID}
		}
	}
	if room.ID != 0 {
		if found, err := r.mirror.FindRoom(ctx, room.ID); err == nil && found.ID != 0 {
			return Result{Outcome: Found, ID: found.ID}
		}
	}

	created, err := r.mirror.CreateRoom(ctx, room)
	if err != nil {
		log.Printf("reconcile: room %q not mirrored, keeping id %d: %v", room.Number, room.ID, err)
		return Result{Outcome: FellBack, ID: room.ID, Err: err}
	}
	id := created.ID
	if id == 0 {
		// Some deployments echo the record without its key.
		id = room.ID
	}
	return Result{Outcome: Created, ID: id}
}
