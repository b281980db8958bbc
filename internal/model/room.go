package model

// RoomStatus is the closed set of states the rooms service reports for a
// room.  The wire values are the rooms service's own French snake_case
// strings; they are carried verbatim because the reservations service
// expects the same literals when rooms are mirrored into it.
type RoomStatus string

const (
	RoomFree         RoomStatus = "libre"        // available for booking
	RoomOccupied     RoomStatus = "occupee"      // currently occupied
	RoomMaintenance  RoomStatus = "maintenance"  // temporarily unavailable
	RoomOutOfService RoomStatus = "hors_service" // withdrawn from inventory
)

// Bookable reports whether a room in this status may be referenced by a new
// reservation.  Only free rooms qualify; the submission flow re-checks this
// against a fresh fetch right before writing.
func (s RoomStatus) Bookable() bool { return s == RoomFree }

// Room is a room record as consumed from the rooms service.  The gateway
// does not own rooms; the reservations service keeps its own independent
// copy keyed by its own identifier, so two Room values describing the same
// physical room may carry different IDs depending on which service produced
// them.
//
// Fields:
//  ID          – identifier in the producing service.
//  Number      – human-facing room number, the stable cross-service key.
//  Type        – room category (simple, double, suite, ...).
//  NightlyRate – price per night.
//  Capacity    – maximum number of guests.
//  Beds        – number of beds.
//  Floor       – floor the room is on.
//  Area        – surface in square meters.
//  View        – what the room looks out on.
//  Description – free-text description.
//  PhotoURL    – optional photo location.
//  Status      – last observed status; stale by nature.
type Room struct {
	ID          int64      `json:"id"`
	Number      string     `json:"number"`
	Type        string     `json:"type"`
	NightlyRate float64    `json:"nightly_rate"`
	Capacity    int        `json:"capacity"`
	Beds        int        `json:"beds"`
	Floor       int        `json:"floor"`
	Area        float64    `json:"area"`
	View        string     `json:"view"`
	Description string     `json:"description"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	Status      RoomStatus `json:"status"`
}

// RoomFilter narrows a room listing.  Zero values mean "no constraint".
type RoomFilter struct {
	Status   RoomStatus // exact status match
	Type     string     // exact type match
	Capacity int        // minimum capacity
	PriceMin float64    // lower bound on nightly rate
	PriceMax float64    // upper bound on nightly rate
	Page     int        // 1-based page, 0 = first
	PerPage  int        // page size, 0 = service default
}
