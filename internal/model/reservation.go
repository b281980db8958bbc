package model

import "time"

// ReservationStatus is the lifecycle state of a reservation as owned by the
// reservations service.  The service speaks French on the wire
// (EN_ATTENTE, CONFIRMEE, ANNULEE, TERMINEE); the client layer translates
// to these values at the boundary so the rest of the gateway never sees
// the wire literals.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
)

// Reservation is a booking record as consumed from the reservations
// service.  ClientID and RoomID are identifiers in that service's own
// database, which is independent from the users and rooms services; the
// reconcile package bridges the gap before a reservation is submitted.
//
// Fields:
//  ID          – reservations-service identifier.
//  ClientID    – client identifier local to the reservations service.
//  RoomID      – room identifier local to the reservations service.
//  StartDate   – first night of the stay.
//  EndDate     – checkout date (exclusive).
//  Guests      – number of guests, 0 when not supplied.
//  TotalAmount – total stay cost as computed at booking time.
//  Remarks     – free-text note attached by the operator.
//  Status      – lifecycle state, already translated.
//  CreatedAt   – when the reservation was recorded.
type Reservation struct {
	ID          int64             `json:"id"`
	ClientID    int64             `json:"client_id"`
	RoomID      int64             `json:"room_id"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	Guests      int               `json:"guests,omitempty"`
	TotalAmount float64           `json:"total_amount"`
	Remarks     string            `json:"remarks,omitempty"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewReservation carries the fields the gateway sends when creating a
// reservation.  Identifiers must already be reservations-service-local;
// callers obtain them through the reconcile package.
type NewReservation struct {
	ClientID    int64     // reservations-service client id
	RoomID      int64     // reservations-service room id
	StartDate   time.Time // first night
	EndDate     time.Time // checkout date
	Guests      int       // 0 = unspecified
	TotalAmount float64   // quoted stay cost
	Remarks     string    // optional operator note
}
