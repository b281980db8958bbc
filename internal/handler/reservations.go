package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hoteldesk/front-gateway/internal/booking"
	"github.com/hoteldesk/front-gateway/internal/client"
	"github.com/hoteldesk/front-gateway/internal/httpx"
	"github.com/hoteldesk/front-gateway/internal/middleware"
	"github.com/hoteldesk/front-gateway/internal/model"
	"github.com/hoteldesk/front-gateway/internal/queue"
	"github.com/hoteldesk/front-gateway/internal/reconcile"
	queue_publisher "github.com/hoteldesk/front-gateway/internal/service"
)

const stayDateLayout = "2006-01-02"

// ReservationsHandler owns the booking flow.  Creating a reservation is an
// orchestration across three services: the room is refetched and
// re-checked, the stay is priced, the client and room are reconciled into
// the reservations service's private tables, and only then is the
// reservation written.  Every post-write step (room status, event publish)
// is best-effort and reported, never fatal.
type ReservationsHandler struct {
	Rooms        *client.Rooms
	Reservations *client.Reservations
	Users        *client.Users
	ClientSync   *reconcile.Clients
	RoomSync     *reconcile.Rooms
}

func NewReservationsHandler(set *client.Set) *ReservationsHandler {
	return &ReservationsHandler{
		Rooms:        set.Rooms,
		Reservations: set.Reservations,
		Users:        set.Users,
		ClientSync:   reconcile.NewClients(set.Reservations),
		RoomSync:     reconcile.NewRooms(set.Reservations),
	}
}

// ----- DTOs -----

type createReservationReq struct {
	ClientID    int64  `json:"client_id"`    // users-service id, reception flow
	ClientEmail string `json:"client_email"` // alternative client key
	RoomID      int64  `json:"room_id"`      // rooms-service id
	RoomNumber  string `json:"room_number"`  // alternative room key
	StartDate   string `json:"start_date"`   // YYYY-MM-DD
	EndDate     string `json:"end_date"`     // YYYY-MM-DD
	Guests      int    `json:"guests"`
	Remarks     string `json:"remarks"`
}

type createReservationResp struct {
	Reservation model.Reservation `json:"reservation"`
	Quote       booking.Quote     `json:"quote"`
	ClientSync  string            `json:"client_sync"`
	RoomSync    string            `json:"room_sync"`
	Warnings    []string          `json:"warnings,omitempty"`
}

// List returns reservations for the reception dashboard, optionally
// filtered by the reservations service's own client id.
func (h *ReservationsHandler) List(c echo.Context) error {
	var clientID int64
	if v := c.QueryParam("client_id"); v != "" {
		clientID, _ = strconv.ParseInt(v, 10, 64)
	}
	reservations, err := h.Reservations.List(c.Request().Context(), clientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": reservations})
}

// Get returns one reservation.
func (h *ReservationsHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Reservations.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ListMine returns the signed-in client's own reservations.  The session
// email is the bridge: the reservations service knows nothing about
// users-service identifiers, so the client's mirrored record is located by
// email first.  A client who never booked has no mirror and gets an empty
// list, not an error.
func (h *ReservationsHandler) ListMine(c echo.Context) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	ctx := c.Request().Context()
	mirror, err := h.Reservations.FindClientByEmail(ctx, sess.Profile.Email)
	if err != nil || mirror.ID == 0 {
		if err != nil && !httpx.IsNotFound(err) {
			log.Printf("reservations: mirror lookup for %q failed: %v", sess.Profile.Email, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"reservations": []model.Reservation{}})
	}
	reservations, err := h.Reservations.List(ctx, mirror.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": reservations})
}

// Create books a room on behalf of a client (reception/admin flow).
func (h *ReservationsHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ClientID == 0 && req.ClientEmail == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client_id or client_email required"})
	}
	guest, err := h.resolveClient(c.Request().Context(), req.ClientID, req.ClientEmail)
	if err != nil {
		return respondError(c, err)
	}
	if guest.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no such client account"})
	}
	return h.book(c, guest, req)
}

// CreateMine books a room for the signed-in client.
func (h *ReservationsHandler) CreateMine(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	guest, err := h.Users.Me(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return h.book(c, guest, req)
}

// book runs the shared submission flow once the guest account is resolved.
func (h *ReservationsHandler) book(c echo.Context, guest model.User, req createReservationReq) error {
	ctx := c.Request().Context()

	start, err := time.Parse(stayDateLayout, req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := time.Parse(stayDateLayout, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}
	if err := booking.CheckDates(start, end, time.Now()); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.RoomID == 0 && req.RoomNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id or room_number required"})
	}

	// Refetch the room right before writing; the browse listing the caller
	// picked from can be arbitrarily stale.
	room, err := h.fetchRoom(ctx, req.RoomID, req.RoomNumber)
	if err != nil {
		return respondError(c, err)
	}
	if err := booking.CheckRoom(room, req.Guests); err != nil {
		return respondBookingError(c, err)
	}

	quote := booking.QuoteStay(room.NightlyRate, start, end)
	if !quote.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stay must cover at least one night"})
	}

	clientRes := h.ClientSync.Ensure(ctx, guest)
	roomRes := h.RoomSync.Ensure(ctx, room)

	created, err := h.Reservations.Create(ctx, model.NewReservation{
		ClientID:    clientRes.ID,
		RoomID:      roomRes.ID,
		StartDate:   start,
		EndDate:     end,
		Guests:      req.Guests,
		TotalAmount: quote.Total,
		Remarks:     req.Remarks,
	})
	if err != nil {
		return respondError(c, err)
	}

	var warnings []string
	// The rooms service is the status authority; flip the room to occupied
	// so it drops out of the browse listing.  A failure here leaves a
	// valid reservation behind, so it is reported, not fatal.
	if err := h.Rooms.SetStatus(ctx, room.ID, model.RoomOccupied); err != nil {
		log.Printf("reservations: room %d status update failed: %v", room.ID, err)
		warnings = append(warnings, "reservation saved but the room status could not be updated; set it manually")
	}
	if err := queue_publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
		ReservationID: created.ID,
		ClientID:      clientRes.ID,
		ClientEmail:   guest.Email,
		RoomID:        roomRes.ID,
		RoomNumber:    room.Number,
		StartDate:     start.Format(stayDateLayout),
		EndDate:       end.Format(stayDateLayout),
		Nights:        quote.Nights,
		TotalAmount:   quote.Total,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		// Publisher already logged the details.
		warnings = append(warnings, "confirmation event not published")
	}

	return c.JSON(http.StatusCreated, createReservationResp{
		Reservation: created,
		Quote:       quote,
		ClientSync:  clientRes.Outcome.String(),
		RoomSync:    roomRes.Outcome.String(),
		Warnings:    warnings,
	})
}

// Cancel voids a reservation.
func (h *ReservationsHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.Cancel(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": model.ReservationCancelled})
}

// Complete closes a checked-out reservation.
func (h *ReservationsHandler) Complete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.Complete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": model.ReservationCompleted})
}

// resolveClient finds the users-service account the reception desk is
// booking for, by id or email.
func (h *ReservationsHandler) resolveClient(ctx context.Context, id int64, email string) (model.User, error) {
	accounts, err := h.Users.Clients(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range accounts {
		if (id != 0 && u.ID == id) || (email != "" && u.Email == email) {
			return u, nil
		}
	}
	return model.User{}, nil
}

// fetchRoom loads the room by whichever key the caller supplied.
func (h *ReservationsHandler) fetchRoom(ctx context.Context, id int64, number string) (model.Room, error) {
	if id != 0 {
		return h.Rooms.Get(ctx, id)
	}
	return h.Rooms.GetByNumber(ctx, number)
}

// respondBookingError maps the pre-submission check failures.  A room that
// lost its availability between selection and submission is a conflict; a
// guest count over capacity is the caller's input.
func respondBookingError(c echo.Context, err error) error {
	var unavailable *booking.RoomUnavailableError
	if errors.As(err, &unavailable) {
		return c.JSON(http.StatusConflict, echo.Map{"error": unavailable.Error()})
	}
	var capacity *booking.CapacityExceededError
	if errors.As(err, &capacity) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": capacity.Error()})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}
