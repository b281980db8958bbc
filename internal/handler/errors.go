package handler

import (
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/hoteldesk/front-gateway/internal/httpx"
)

// respondError translates the service-client error taxonomy into a
// response.  Mutating handlers call it for every failure; nothing is
// swallowed.
//
//	session expired      -> 303 to the login view
//	validation (422)     -> 422 with the field->messages map for inline display
//	network/timeout      -> 502 with a generic retry prompt
//	other upstream >=400 -> same status, message extracted from the body
func respondError(c echo.Context, err error) error {
	if errors.Is(err, httpx.ErrSessionExpired) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	var verr *httpx.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": verr.Message,
			"errors":  verr.Fields,
		})
	}

	var nerr *httpx.NetworkError
	if errors.As(err, &nerr) {
		log.Printf("handler: upstream unreachable: %v", nerr)
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error": "service unreachable, please retry",
		})
	}

	var herr *httpx.HTTPError
	if errors.As(err, &herr) {
		return c.JSON(herr.Status, echo.Map{"error": explain(herr.Message())})
	}

	log.Printf("handler: unexpected error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// Cross-service identifier mismatches come back as free-text messages from
// the reservations service.  They are pattern-matched and rewritten into
// something an operator can act on instead of a bare foreign-key error.
var clientMissingPattern = regexp.MustCompile(`(?i)client.*(introuvable|not found|n'existe pas)`)

func explain(msg string) string {
	if clientMissingPattern.MatchString(msg) {
		return "the selected client does not exist in the reservations service, which keeps " +
			"its own client records; re-submit so the client is mirrored, or contact an " +
			"administrator to synchronize clients (upstream said: " + msg + ")"
	}
	return msg
}
