package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hoteldesk/front-gateway/internal/client"
	"github.com/hoteldesk/front-gateway/internal/model"
)

// RoomsHandler serves the room browser (public) and room management
// (admin).  Everything is proxied to the rooms service; the handler's own
// job is filter parsing and degradation on read failures.
type RoomsHandler struct {
	Rooms *client.Rooms
}

func NewRoomsHandler(rooms *client.Rooms) *RoomsHandler {
	return &RoomsHandler{Rooms: rooms}
}

func parseRoomFilter(c echo.Context) model.RoomFilter {
	f := model.RoomFilter{
		Status: model.RoomStatus(c.QueryParam("status")),
		Type:   c.QueryParam("type"),
	}
	if v, err := strconv.Atoi(c.QueryParam("capacity")); err == nil {
		f.Capacity = v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("price_min"), 64); err == nil {
		f.PriceMin = v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("price_max"), 64); err == nil {
		f.PriceMax = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		f.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("per_page")); err == nil {
		f.PerPage = v
	}
	return f
}

// Browse is the public room browser: free rooms only, regardless of the
// requested filter.  A read failure degrades to an empty list with an
// error banner instead of a failed page.
func (h *RoomsHandler) Browse(c echo.Context) error {
	filter := parseRoomFilter(c)
	filter.Status = model.RoomFree
	rooms, err := h.Rooms.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"rooms": []model.Room{},
			"error": "room list temporarily unavailable",
		})
	}
	// The listing can lag behind status changes; filter again on the
	// fetched records.
	free := rooms[:0]
	for _, r := range rooms {
		if r.Status.Bookable() {
			free = append(free, r)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": free})
}

// List is the management listing with the full filter surface.
func (h *RoomsHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context(), parseRoomFilter(c))
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"rooms": []model.Room{},
			"error": "room list temporarily unavailable",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// Get returns one room.
func (h *RoomsHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Search finds free rooms for a stay window.
func (h *RoomsHandler) Search(c echo.Context) error {
	capacity, _ := strconv.Atoi(c.QueryParam("capacity"))
	rooms, err := h.Rooms.Search(c.Request().Context(), c.QueryParam("check_in"), c.QueryParam("check_out"), capacity)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"rooms": []model.Room{},
			"error": "room search temporarily unavailable",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

type roomReq struct {
	Number      string  `json:"number"`
	Type        string  `json:"type"`
	NightlyRate float64 `json:"nightly_rate"`
	Capacity    int     `json:"capacity"`
	Beds        int     `json:"beds"`
	Floor       int     `json:"floor"`
	Area        float64 `json:"area"`
	View        string  `json:"view"`
	Description string  `json:"description"`
	PhotoURL    string  `json:"photo_url"`
	Status      string  `json:"status"`
}

func (r roomReq) toModel() model.Room {
	status := model.RoomStatus(r.Status)
	if status == "" {
		status = model.RoomFree
	}
	return model.Room{
		Number:      r.Number,
		Type:        r.Type,
		NightlyRate: r.NightlyRate,
		Capacity:    r.Capacity,
		Beds:        r.Beds,
		Floor:       r.Floor,
		Area:        r.Area,
		View:        r.View,
		Description: r.Description,
		PhotoURL:    r.PhotoURL,
		Status:      status,
	}
}

// Create adds a room (admin).
func (h *RoomsHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Number == "" || req.NightlyRate <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number and nightly_rate required"})
	}
	room, err := h.Rooms.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// Update edits a room (admin).
func (h *RoomsHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	room, err := h.Rooms.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Delete removes a room (admin).
func (h *RoomsHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetStatus transitions a room's status (admin/reception).
func (h *RoomsHandler) SetStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}
	switch model.RoomStatus(req.Status) {
	case model.RoomFree, model.RoomOccupied, model.RoomMaintenance, model.RoomOutOfService:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	if err := h.Rooms.SetStatus(c.Request().Context(), id, model.RoomStatus(req.Status)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
