package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hoteldesk/front-gateway/internal/httpx"
	"github.com/hoteldesk/front-gateway/internal/model"
)

// Rooms is the binding to the rooms service.  The service speaks snake_case
// French on the wire ("chambres") and wraps lists in a paginated
// {success, data: {data: [...]}} envelope; both are flattened here.
type Rooms struct {
	api *httpx.Client
}

// NewRooms wraps an already-configured httpx client.
func NewRooms(api *httpx.Client) *Rooms { return &Rooms{api: api} }

// roomWire is the rooms service's record shape.  The primary key arrives as
// id_chambre from the rooms service itself but as plain id when the same
// record is echoed back by the reservations service's mirror; both are
// accepted and id_chambre wins.
type roomWire struct {
	ID          int64           `json:"id"`
	IDChambre   int64           `json:"id_chambre"`
	Number      json.RawMessage `json:"numero"` // string or number depending on the producer
	Type        string          `json:"type"`
	NightlyRate float64         `json:"prix_par_nuit"`
	Capacity    int             `json:"capacite_personne"`
	Beds        int             `json:"nb_lits"`
	Floor       int             `json:"etage"`
	Area        float64         `json:"superficie"`
	View        string          `json:"vue"`
	Description string          `json:"description"`
	PhotoURL    string          `json:"photo_url"`
	Status      string          `json:"statut"`
}

func (w roomWire) toModel() model.Room {
	id := w.IDChambre
	if id == 0 {
		id = w.ID
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
		PhotoURL:    w.PhotoURL,
		Status:      model.RoomStatus(w.Status),
	}
}

// flexString renders a JSON scalar that may be quoted or bare as a string.
func flexString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// roomPayload is the outbound shape for create/update.
func roomPayload(r model.Room) map[string]any {
	return map[string]any{
		"numero":            r.Number,
		"type":              r.Type,
		"prix_par_nuit":     r.NightlyRate,
		"capacite_personne": r.Capacity,
		"nb_lits":           r.Beds,
		"etage":             r.Floor,
		"superficie":        r.Area,
		"vue":               r.View,
		"description":       r.Description,
		"photo_url":         r.PhotoURL,
		"statut":            string(r.Status),
	}
}

// List fetches rooms matching the filter.
func (r *Rooms) List(ctx context.Context, filter model.RoomFilter) ([]model.Room, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("statut", string(filter.Status))
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	if filter.Capacity > 0 {
		query.Set("capacite", strconv.Itoa(filter.Capacity))
	}
	if filter.PriceMin > 0 {
		query.Set("prix_min", strconv.FormatFloat(filter.PriceMin, 'f', -1, 64))
	}
	if filter.PriceMax > 0 {
		query.Set("prix_max", strconv.FormatFloat(filter.PriceMax, 'f', -1, 64))
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(filter.PerPage))
	}
	raw, err := r.api.Do(ctx, "GET", "/chambres", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeRooms(raw)
}

// Get fetches one room by its rooms-service identifier.
func (r *Rooms) Get(ctx context.Context, id int64) (model.Room, error) {
	raw, err := r.api.Do(ctx, "GET", fmt.Sprintf("/chambres/%d", id), nil, nil)
	if err != nil {
		return model.Room{}, err
	}
	return decodeRoom(raw)
}

// GetByNumber fetches one room by its human-facing number.
func (r *Rooms) GetByNumber(ctx context.Context, number string) (model.Room, error) {
	raw, err := r.api.Do(ctx, "GET", "/chambres/numero/"+url.PathEscape(number), nil, nil)
	if err != nil {
		return model.Room{}, err
	}
	return decodeRoom(raw)
}

// Search finds free rooms for a date range and optional constraints.
func (r *Rooms) Search(ctx context.Context, checkIn, checkOut string, capacity int) ([]model.Room, error) {
	query := url.Values{}
	if checkIn != "" {
		query.Set("date_debut", checkIn)
	}
	if checkOut != "" {
		query.Set("date_fin", checkOut)
	}
	if capacity > 0 {
		query.Set("capacite", strconv.Itoa(capacity))
	}
	raw, err := r.api.Do(ctx, "GET", "/chambres/search", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeRooms(raw)
}

// Create adds a room.  Admin only; the service enforces it.
func (r *Rooms) Create(ctx context.Context, room model.Room) (model.Room, error) {
	raw, err := r.api.Do(ctx, "POST", "/chambres", nil, roomPayload(room))
	if err != nil {
		return model.Room{}, err
	}
	return decodeRoom(raw)
}

// Update edits a room.
func (r *Rooms) Update(ctx context.Context, id int64, room model.Room) (model.Room, error) {
	raw, err := r.api.Do(ctx, "PUT", fmt.Sprintf("/chambres/%d", id), nil, roomPayload(room))
	if err != nil {
		return model.Room{}, err
	}
	return decodeRoom(raw)
}

// Delete removes a room.
func (r *Rooms) Delete(ctx context.Context, id int64) error {
	_, err := r.api.Do(ctx, "DELETE", fmt.Sprintf("/chambres/%d", id), nil, nil)
	return err
}

// SetStatus transitions a room's status, e.g. to occupee after a booking.
func (r *Rooms) SetStatus(ctx context.Context, id int64, status model.RoomStatus) error {
	body := map[string]string{"statut": string(status)}
	_, err := r.api.Do(ctx, "PUT", fmt.Sprintf("/chambres/%d/statut", id), nil, body)
	return err
}

func decodeRoom(raw json.RawMessage) (model.Room, error) {
	var w roomWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return model.Room{}, err
	}
	return w.toModel(), nil
}

func decodeRooms(raw json.RawMessage) ([]model.Room, error) {
	wires, err := httpx.DecodeList[roomWire](raw, "chambres")
	if err != nil {
		return nil, err
	}
	rooms := make([]model.Room, 0, len(wires))
	for _, w := range wires {
		rooms = append(rooms, w.toModel())
	}
	return rooms, nil
}
