package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/front-gateway/internal/httpx"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, respondError(c, err))
	return rec
}

func TestRespondErrorSessionExpired(t *testing.T) {
	rec := respond(t, httpx.ErrSessionExpired)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRespondErrorValidation(t *testing.T) {
	rec := respond(t, &httpx.ValidationError{
		Message: "invalid",
		Fields:  map[string][]string{"numero": {"obligatoire"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "numero")
	assert.Contains(t, rec.Body.String(), "obligatoire")
}

func TestRespondErrorNetwork(t *testing.T) {
	rec := respond(t, &httpx.NetworkError{URL: "http://rooms", Err: http.ErrServerClosed})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "retry")
	assert.NotContains(t, rec.Body.String(), "http://rooms", "internal URLs stay out of responses")
}

func TestRespondErrorUpstreamStatusPassthrough(t *testing.T) {
	rec := respond(t, &httpx.HTTPError{Status: http.StatusConflict, Body: []byte(`{"message":"deja reservee"}`)})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "deja reservee")
}

func TestRespondErrorExplainsMissingMirrorClient(t *testing.T) {
	rec := respond(t, &httpx.HTTPError{Status: http.StatusNotFound, Body: []byte(`{"message":"Client introuvable"}`)})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "re-submit")
	assert.Contains(t, rec.Body.String(), "Client introuvable", "the upstream wording stays visible")
}
