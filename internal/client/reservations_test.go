package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/front-gateway/internal/httpx"
	"github.com/hoteldesk/front-gateway/internal/model"
)

func reservationsClient(t *testing.T, h http.HandlerFunc) *Reservations {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewReservations(httpx.New(httpx.ClientConfig{
		Name:        "reservations",
		BaseURL:     srv.URL,
		Credentials: httpx.BasicAuth("svc", "secret"),
	}))
}

func TestReservationsListTranslatesWire(t *testing.T) {
	var gotAuth, gotQuery string
	res := reservationsClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[
			{"idReservation": 11, "idClient": 3, "idChambre": 5,
			 "dateDebut": "2025-11-01", "dateFin": "2025-11-04",
			 "nombrePersonnes": 2, "montantTotal": 1500, "statut": "CONFIRMEE",
			 "dateCreation": "2025-10-20T09:15:00"}
		]`))
	})

	got, err := res.List(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, int64(11), r.ID)
	assert.Equal(t, int64(3), r.ClientID)
	assert.Equal(t, int64(5), r.RoomID)
	assert.Equal(t, model.ReservationConfirmed, r.Status)
	assert.Equal(t, 1500.0, r.TotalAmount)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), r.StartDate)
	assert.Equal(t, time.Date(2025, 10, 20, 9, 15, 0, 0, time.UTC), r.CreatedAt)

	assert.Contains(t, gotAuth, "Basic ")
	assert.Equal(t, "idClient=3", gotQuery)
}

func TestReservationStatusTranslation(t *testing.T) {
	assert.Equal(t, model.ReservationPending, translateReservationStatus("EN_ATTENTE"))
	assert.Equal(t, model.ReservationConfirmed, translateReservationStatus("confirmee"))
	assert.Equal(t, model.ReservationCancelled, translateReservationStatus("ANNULEE"))
	assert.Equal(t, model.ReservationCompleted, translateReservationStatus("TERMINEE"))
	// Unknown literals pass through rather than being guessed at.
	assert.Equal(t, model.ReservationStatus("ARCHIVEE"), translateReservationStatus("ARCHIVEE"))
}

func TestReservationsCreateSendsCamelCase(t *testing.T) {
	var body map[string]any
	res := reservationsClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/reservations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"idReservation": 12, "statut": "EN_ATTENTE",
			"dateDebut": "2025-11-01", "dateFin": "2025-11-04"}`))
	})

	created, err := res.Create(context.Background(), model.NewReservation{
		ClientID:    3,
		RoomID:      5,
		StartDate:   time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC),
		Guests:      2,
		TotalAmount: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), created.ID)
	assert.Equal(t, model.ReservationPending, created.Status)

	assert.Equal(t, 3.0, body["idClient"])
	assert.Equal(t, 5.0, body["idChambre"])
	assert.Equal(t, "2025-11-01", body["dateDebut"])
	assert.Equal(t, "2025-11-04", body["dateFin"])
	assert.Equal(t, 1500.0, body["montantTotal"])
	assert.Equal(t, 2.0, body["nombrePersonnes"])
	_, hasRemarks := body["remarques"]
	assert.False(t, hasRemarks, "empty optional fields stay off the wire")
}

func TestReservationsLifecycleEndpoints(t *testing.T) {
	var paths []string
	res := reservationsClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, res.Cancel(context.Background(), 12))
	require.NoError(t, res.Complete(context.Background(), 12))
	assert.Equal(t, []string{
		"POST /reservations/12/annuler",
		"POST /reservations/12/terminer",
	}, paths)
}

func TestFindClientByEmailEscapesPath(t *testing.T) {
	res := reservationsClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients/email/ana@example.com", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 31, "prenom": "Ana", "nom": "Diaz", "email": "ana@example.com"}`))
	})

	c, err := res.FindClientByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(31), c.ID)
	assert.Equal(t, "Ana", c.FirstName)
}

func TestCreateRoomMirrorForcesFreeStatus(t *testing.T) {
	var body map[string]any
	res := reservationsClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 77, "numero": "204"}`))
	})

	created, err := res.CreateRoom(context.Background(), model.Room{
		ID:     7,
		Number: "204",
		Status: model.RoomOccupied, // the source status never travels
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), created.ID)
	assert.Equal(t, "libre", body["statut"])
	assert.Equal(t, "204", body["numero"])
}

func TestParseWireDateForms(t *testing.T) {
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), parseWireDate("2025-11-01"))
	assert.Equal(t, time.Date(2025, 11, 1, 9, 30, 0, 0, time.UTC), parseWireDate("2025-11-01T09:30:00"))
	assert.True(t, parseWireDate("").IsZero())
	assert.True(t, parseWireDate("junk").IsZero())
}
