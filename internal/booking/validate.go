package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/hoteldesk/front-gateway/internal/model"
)

// ErrEndNotAfterStart rejects date pairs with checkout on or before
// check-in.
var ErrEndNotAfterStart = errors.New("end date must be after start date")

// ErrStartInPast rejects stays beginning before today.
var ErrStartInPast = errors.New("start date must be today or later")

// RoomUnavailableError aborts a submission whose room is no longer free at
// refetch time.  The observed status is part of the message so the
// operator sees exactly why the room dropped out.
type RoomUnavailableError struct {
	Number string
	Status model.RoomStatus
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf("room %s is not available (current status: %s)", e.Number, e.Status)
}

// CapacityExceededError rejects a guest count above the room's capacity.
type CapacityExceededError struct {
	Guests   int
	Capacity int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("guest count (%d) exceeds the room capacity (%d)", e.Guests, e.Capacity)
}

// CheckDates validates the stay window against today (midnight, local).
func CheckDates(start, end, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if start.Before(today) {
		return ErrStartInPast
	}
	if !end.After(start) {
		return ErrEndNotAfterStart
	}
	return nil
}

// CheckRoom validates a freshly refetched room against the submission: the
// room must still be free and must hold the guest count.  Callers must pass
// the refetched record, not the one the room was selected from; the status
// may have changed in between.
func CheckRoom(room model.Room, guests int) error {
	if !room.Status.Bookable() {
		return &RoomUnavailableError{Number: room.Number, Status: room.Status}
	}
	if guests > 0 && room.Capacity > 0 && guests > room.Capacity {
		return &CapacityExceededError{Guests: guests, Capacity: room.Capacity}
	}
	return nil
}
