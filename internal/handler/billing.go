package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hoteldesk/front-gateway/internal/client"
)

// BillingHandler proxies payments and invoices.  The billing service runs
// the money flows itself (Stripe intents, cash records, invoice state); the
// gateway only validates input and passes results through.
type BillingHandler struct {
	Billing *client.Billing
}

func NewBillingHandler(billing *client.Billing) *BillingHandler {
	return &BillingHandler{Billing: billing}
}

type paymentReq struct {
	ReservationID int64   `json:"reservation_id"`
	InvoiceID     int64   `json:"invoice_id"`
	Amount        float64 `json:"amount"`
}

func (r paymentReq) check() string {
	if r.ReservationID == 0 && r.InvoiceID == 0 {
		return "reservation_id or invoice_id required"
	}
	if r.Amount <= 0 {
		return "amount must be positive"
	}
	return ""
}

// CreateStripeIntent opens a card payment.
func (h *BillingHandler) CreateStripeIntent(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	intent, err := h.Billing.CreateStripeIntent(c.Request().Context(), req.ReservationID, req.InvoiceID, req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, intent)
}

// ConfirmStripe finalizes a card payment after the card step succeeded.
func (h *BillingHandler) ConfirmStripe(c echo.Context) error {
	var req struct {
		PaymentIntentID string `json:"payment_intent_id"`
	}
	if err := c.Bind(&req); err != nil || req.PaymentIntentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_intent_id required"})
	}
	payment, err := h.Billing.ConfirmStripe(c.Request().Context(), req.PaymentIntentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// PayCash records a desk payment.
func (h *BillingHandler) PayCash(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.check(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	payment, err := h.Billing.PayCash(c.Request().Context(), req.ReservationID, req.InvoiceID, req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

// PaymentsForReservation lists a reservation's payment history.
func (h *BillingHandler) PaymentsForReservation(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	payments, err := h.Billing.PaymentsForReservation(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": payments})
}

// Invoice returns one invoice.
func (h *BillingHandler) Invoice(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}
	inv, err := h.Billing.Invoice(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

// InvoiceForReservation returns a reservation's invoice.
func (h *BillingHandler) InvoiceForReservation(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	inv, err := h.Billing.InvoiceForReservation(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

// InvoicePDF streams the rendered invoice.  This is the one endpoint that
// rides the session cookie rather than an Authorization header: the
// dashboard opens it as a plain download link.
func (h *BillingHandler) InvoicePDF(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}
	blob, contentType, err := h.Billing.InvoicePDF(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="facture-`+strconv.FormatInt(id, 10)+`.pdf"`)
	return c.Blob(http.StatusOK, contentType, blob)
}

// PayInvoice marks an invoice paid after an out-of-band settlement.
func (h *BillingHandler) PayInvoice(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}
	if err := h.Billing.MarkInvoicePaid(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
