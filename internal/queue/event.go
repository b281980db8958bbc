// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published after a reservation is accepted by
// the reservations service.  It carries enough for downstream consumers
// (notifications, reporting) to act without calling the services back.
type ReservationConfirmedEvent struct {
	ReservationID int64   `json:"reservation_id"`
	ClientID      int64   `json:"client_id"`
	ClientEmail   string  `json:"client_email"`
	RoomID        int64   `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Nights        int     `json:"nights"`
	TotalAmount   float64 `json:"total_amount"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
