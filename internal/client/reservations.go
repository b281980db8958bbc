package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hoteldesk/front-gateway/internal/httpx"
	"github.com/hoteldesk/front-gateway/internal/model"
)

// Reservations is the binding to the reservations service.  The service
// authenticates with a fixed Basic pair (service credentials, not
// user-derived, so a 401 here never clears the session) and speaks
// camelCase French on the wire.  It keeps private copies of clients and
// rooms keyed by its own identifiers; the mirror methods at the bottom
// exist for the reconcile package.
type Reservations struct {
	api *httpx.Client
}

// NewReservations wraps an already-configured httpx client.
func NewReservations(api *httpx.Client) *Reservations { return &Reservations{api: api} }

const (
	wireDateLayout     = "2006-01-02"
	wireDateTimeLayout = "2006-01-02T15:04:05"
)

// parseWireDate accepts both the bare LocalDate and the LocalDateTime forms
// the service emits depending on the field.
func parseWireDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(wireDateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(wireDateTimeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// Reservation status translation between the wire literals and the model.
var reservationStatusFromWire = map[string]model.ReservationStatus{
	"EN_ATTENTE": model.ReservationPending,
	"CONFIRMEE":  model.ReservationConfirmed,
	"ANNULEE":    model.ReservationCancelled,
	"TERMINEE":   model.ReservationCompleted,
}

func translateReservationStatus(wire string) model.ReservationStatus {
	if s, ok := reservationStatusFromWire[strings.ToUpper(wire)]; ok {
		return s
	}
	// Unknown literal: keep it visible instead of guessing.
	return model.ReservationStatus(wire)
}

// reservationWire is the service's response shape, facture fields included.
type reservationWire struct {
	ID          int64   `json:"idReservation"`
	ClientID    int64   `json:"idClient"`
	RoomID      int64   `json:"idChambre"`
	StartDate   string  `json:"dateDebut"`
	EndDate     string  `json:"dateFin"`
	Guests      int     `json:"nombrePersonnes"`
	Remarks     string  `json:"remarques"`
	Status      string  `json:"statut"`
	CreatedAt   string  `json:"dateCreation"`
	TotalAmount float64 `json:"montantTotal"`
}

func (w reservationWire) toModel() model.Reservation {
	return model.Reservation{
		ID:          w.ID,
		ClientID:    w.ClientID,
		RoomID:      w.RoomID,
		StartDate:   parseWireDate(w.StartDate),
		EndDate:     parseWireDate(w.EndDate),
		Guests:      w.Guests,
		TotalAmount: w.TotalAmount,
		Remarks:     w.Remarks,
		Status:      translateReservationStatus(w.Status),
		CreatedAt:   parseWireDate(w.CreatedAt),
	}
}

// List fetches reservations, optionally restricted to one client (by the
// reservations service's own client id).
func (r *Reservations) List(ctx context.Context, clientID int64) ([]model.Reservation, error) {
	var query url.Values
	if clientID > 0 {
		query = url.Values{"idClient": []string{strconv.FormatInt(clientID, 10)}}
	}
	raw, err := r.api.Do(ctx, "GET", "/reservations", query, nil)
	if err != nil {
		return nil, err
	}
	wires, err := httpx.DecodeList[reservationWire](raw, "reservations")
	if err != nil {
		return nil, err
	}
	out := make([]model.Reservation, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toModel())
	}
	return out, nil
}

// Get fetches one reservation.
func (r *Reservations) Get(ctx context.Context, id int64) (model.Reservation, error) {
	raw, err := r.api.Do(ctx, "GET", fmt.Sprintf("/reservations/%d", id), nil, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	var w reservationWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return model.Reservation{}, err
	}
	return w.toModel(), nil
}

// Create submits a reservation.  Identifiers must already be local to the
// reservations service; run the reconcile package first.
func (r *Reservations) Create(ctx context.Context, res model.NewReservation) (model.Reservation, error) {
	body := map[string]any{
		"idClient":     res.ClientID,
		"idChambre":    res.RoomID,
		"dateDebut":    res.StartDate.Format(wireDateLayout),
		"dateFin":      res.EndDate.Format(wireDateLayout),
		"montantTotal": res.TotalAmount,
	}
	if res.Guests > 0 {
		body["nombrePersonnes"] = res.Guests
	}
	if res.Remarks != "" {
		body["remarques"] = res.Remarks
	}
	raw, err := r.api.Do(ctx, "POST", "/reservations", nil, body)
	if err != nil {
		return model.Reservation{}, err
	}
	var w reservationWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return model.Reservation{}, err
	}
	return w.toModel(), nil
}

// Cancel marks a reservation cancelled.
func (r *Reservations) Cancel(ctx context.Context, id int64) error {
	_, err := r.api.Do(ctx, "POST", fmt.Sprintf("/reservations/%d/annuler", id), nil, nil)
	return err
}

// Complete marks a checked-out reservation finished.
func (r *Reservations) Complete(ctx context.Context, id int64) error {
	_, err := r.api.Do(ctx, "POST", fmt.Sprintf("/reservations/%d/terminer", id), nil, nil)
	return err
}

// ---- client mirror (the service's private copy of clients) ----

// mirrorClientWire is the reservations service's client shape.
type mirrorClientWire struct {
	ID        int64  `json:"id"`
	FirstName string `json:"prenom"`
	LastName  string `json:"nom"`
	Email     string `json:"email"`
	Phone     string `json:"telephone"`
}

// MirrorClient is a client record local to the reservations service.
type MirrorClient struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (w mirrorClientWire) toMirror() MirrorClient {
	return MirrorClient{ID: w.ID, FirstName: w.FirstName, LastName: w.LastName, Email: w.Email, Phone: w.Phone}
}

// ListClients returns the service's own client table.
func (r *Reservations) ListClients(ctx context.Context) ([]MirrorClient, error) {
	raw, err := r.api.Do(ctx, "GET", "/clients", nil, nil)
	if err != nil {
		return nil, err
	}
	wires, err := httpx.DecodeList[mirrorClientWire](raw, "clients")
	if err != nil {
		return nil, err
	}
	out := make([]MirrorClient, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toMirror())
	}
	return out, nil
}

// FindClientByEmail looks a mirrored client up by email, the only key both
// services agree on.
func (r *Reservations) FindClientByEmail(ctx context.Context, email string) (MirrorClient, error) {
	raw, err := r.api.Do(ctx, "GET", "/clients/email/"+url.PathEscape(email), nil, nil)
	if err != nil {
		return MirrorClient{}, err
	}
	var w mirrorClientWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return MirrorClient{}, err
	}
	return w.toMirror(), nil
}

// CreateClient mirrors a users-service account into the reservations
// service and returns the local record.
func (r *Reservations) CreateClient(ctx context.Context, u model.User) (MirrorClient, error) {
	body := map[string]any{
		"email":  u.Email,
		"nom":    u.LastName,
		"prenom": u.FirstName,
	}
	if u.Phone != "" {
		body["telephone"] = u.Phone
	}
	raw, err := r.api.Do(ctx, "POST", "/clients", nil, body)
	if err != nil {
		return MirrorClient{}, err
	}
	var w mirrorClientWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return MirrorClient{}, err
	}
	return w.toMirror(), nil
}

// ---- room mirror (the service's private copy of rooms) ----

// mirrorRoomWire is the reservations service's camelCase room shape, as
// opposed to the rooms service's snake_case one.
type mirrorRoomWire struct {
	ID          int64           `json:"id"`
	IDChambre   int64           `json:"id_chambre"`
	Number      json.RawMessage `json:"numero"`
	Type        string          `json:"type"`
	NightlyRate float64         `json:"prixParNuit"`
	Capacity    int             `json:"capacitePersonne"`
	Beds        int             `json:"nbLits"`
	Floor       int             `json:"etage"`
	Area        float64         `json:"superficie"`
	View        string          `json:"vue"`
	Description string          `json:"description"`
	Status      string          `json:"statut"`
}

func (w mirrorRoomWire) toModel() model.Room {
	id := w.ID
	if id == 0 {
		id = w.IDChambre
	}
	return model.Room{
		ID:          id,
		Number:      flexString(w.Number),
		Type:        w.Type,
		NightlyRate: w.NightlyRate,
		Capacity:    w.Capacity,
		Beds:        w.Beds,
		Floor:       w.Floor,
		Area:        w.Area,
		View:        w.View,
		Description: w.Description,
		Status:      model.RoomStatus(w.Status),
	}
}

// FindRoomByNumber looks a mirrored room up by number, the preferred key.
func (r *Reservations) FindRoomByNumber(ctx context.Context, number string) (model.Room, error) {
	raw, err := r.api.Do(ctx, "GET", "/chambres/numero/"+url.PathEscape(number), nil, nil)
	if err != nil {
		return model.Room{}, err
	}
	return decodeMirrorRoom(raw)
}

// FindRoom looks a mirrored room up by the rooms-service identifier, the
// fallback key when the number is unknown.
func (r *Reservations) FindRoom(ctx context.Context, id int64) (model.Room, error) {
	raw, err := r.api.Do(ctx, "GET", fmt.Sprintf("/chambres/%d", id), nil, nil)
	if err != nil {
		return model.Room{}, err
	}
	return decodeMirrorRoom(raw)
}

// CreateRoom mirrors a rooms-service room into the reservations service.
// The copy always starts free: its status there only matters to that
// service's own bookkeeping.
func (r *Reservations) CreateRoom(ctx context.Context, room model.Room) (model.Room, error) {
	body := map[string]any{
		"id":               room.ID,
		"numero":           room.Number,
		"type":             room.Type,
		"prixParNuit":      room.NightlyRate,
		"capacitePersonne": room.Capacity,
		"nbLits":           room.Beds,
		"superficie":       room.Area,
		"etage":            room.Floor,
		"vue":              room.View,
		"description":      room.Description,
		"statut":           string(model.RoomFree),
	}
	raw, err := r.api.Do(ctx, "POST", "/chambres", nil, body)
	if err != nil {
		return model.Room{}, err
	}
	return decodeMirrorRoom(raw)
}

func decodeMirrorRoom(raw json.RawMessage) (model.Room, error) {
	var w mirrorRoomWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return model.Room{}, err
	}
	return w.toModel(), nil
}
