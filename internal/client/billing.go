package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hoteldesk/front-gateway/internal/httpx"
	"github.com/hoteldesk/front-gateway/internal/model"
)

// Billing is the binding to the billing/payment service.  It carries a
// long-lived bearer token from configuration (the service does not issue
// per-user tokens) and never touches the session on failure.
type Billing struct {
	api *httpx.Client
}

// NewBilling wraps an already-configured httpx client.
func NewBilling(api *httpx.Client) *Billing { return &Billing{api: api} }

// Payment is a recorded payment attempt as the billing service reports it.
type Payment struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id"`
	InvoiceID     int64     `json:"invoice_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	Reference     string    `json:"reference,omitempty"`
	PaidAt        time.Time `json:"paid_at,omitzero"`
	ErrorMessage  string    `json:"error_message,omitempty"`
}

// paymentWire is the billing service's camelCase payment shape.
type paymentWire struct {
	ID                   int64   `json:"id"`
	IDReservation        int64   `json:"idReservation"`
	IDFacture            int64   `json:"idFacture"`
	Montant              float64 `json:"montant"`
	Methode              string  `json:"methode"`
	Statut               string  `json:"statut"`
	ReferenceTransaction string  `json:"referenceTransaction"`
	DatePaiement         string  `json:"datePaiement"`
	MessageErreur        string  `json:"messageErreur"`
}

func (w paymentWire) toModel() Payment {
	return Payment{
		ID:            w.ID,
		ReservationID: w.IDReservation,
		InvoiceID:     w.IDFacture,
		Amount:        w.Montant,
		Method:        w.Methode,
		Status:        w.Statut,
		Reference:     w.ReferenceTransaction,
		PaidAt:        parseWireDate(w.DatePaiement),
		ErrorMessage:  w.MessageErreur,
	}
}

// PaymentIntent is the Stripe handle the dashboard needs to collect a card
// payment in the browser.
type PaymentIntent struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// CreateStripeIntent opens a Stripe payment for a reservation's invoice.
func (b *Billing) CreateStripeIntent(ctx context.Context, reservationID, invoiceID int64, amount float64) (PaymentIntent, error) {
	body := map[string]any{
		"idReservation": reservationID,
		"idFacture":     invoiceID,
		"montant":       amount,
		"methode":       "STRIPE",
	}
	raw, err := b.api.Do(ctx, "POST", "/paiements/stripe/create-intent", nil, body)
	if err != nil {
		return PaymentIntent{}, err
	}
	var resp struct {
		ClientSecret    string `json:"clientSecret"`
		PaymentIntentID string `json:"paymentIntentId"`
	}
	if err := json.Unmarshal(httpx.Object(raw), &resp); err != nil {
		return PaymentIntent{}, err
	}
	return PaymentIntent{ClientSecret: resp.ClientSecret, PaymentIntentID: resp.PaymentIntentID}, nil
}

// ConfirmStripe finalizes a Stripe payment after the browser collected it.
func (b *Billing) ConfirmStripe(ctx context.Context, paymentIntentID string) (Payment, error) {
	body := map[string]string{"paymentIntentId": paymentIntentID}
	raw, err := b.api.Do(ctx, "POST", "/paiements/stripe/confirm", nil, body)
	if err != nil {
		return Payment{}, err
	}
	return decodePayment(raw)
}

// PayCash records an on-site cash payment.
func (b *Billing) PayCash(ctx context.Context, reservationID, invoiceID int64, amount float64) (Payment, error) {
	body := map[string]any{
		"idReservation": reservationID,
		"idFacture":     invoiceID,
		"montant":       amount,
		"methode":       "SUR_PLACE",
	}
	raw, err := b.api.Do(ctx, "POST", "/paiements/sur-place", nil, body)
	if err != nil {
		return Payment{}, err
	}
	return decodePayment(raw)
}

// PaymentsForReservation lists payment attempts for one reservation.
func (b *Billing) PaymentsForReservation(ctx context.Context, reservationID int64) ([]Payment, error) {
	raw, err := b.api.Do(ctx, "GET", fmt.Sprintf("/paiements/reservation/%d", reservationID), nil, nil)
	if err != nil {
		return nil, err
	}
	wires, err := httpx.DecodeList[paymentWire](raw, "paiements")
	if err != nil {
		return nil, err
	}
	out := make([]Payment, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toModel())
	}
	return out, nil
}

// Invoice status translation.
var invoiceStatusFromWire = map[string]model.InvoiceStatus{
	"EMISE":   model.InvoiceIssued,
	"PAYEE":   model.InvoicePaid,
	"ANNULEE": model.InvoiceCancelled,
}

// invoiceWire is the billing service's camelCase invoice shape.
type invoiceWire struct {
	ID            int64   `json:"idFacture"`
	IDReservation int64   `json:"idReservation"`
	MontantTotal  float64 `json:"montantTotal"`
	DateEmission  string  `json:"dateEmission"`
	Etat          string  `json:"etat"`
}

func (w invoiceWire) toModel() model.Invoice {
	status, ok := invoiceStatusFromWire[strings.ToUpper(w.Etat)]
	if !ok {
		status = model.InvoiceStatus(w.Etat)
	}
	return model.Invoice{
		ID:            w.ID,
		ReservationID: w.IDReservation,
		TotalAmount:   w.MontantTotal,
		EmissionDate:  parseWireDate(w.DateEmission),
		Status:        status,
	}
}

// Invoice fetches one invoice.
func (b *Billing) Invoice(ctx context.Context, id int64) (model.Invoice, error) {
	raw, err := b.api.Do(ctx, "GET", fmt.Sprintf("/factures/%d", id), nil, nil)
	if err != nil {
		return model.Invoice{}, err
	}
	var w invoiceWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return model.Invoice{}, err
	}
	return w.toModel(), nil
}

// InvoiceForReservation fetches the invoice belonging to a reservation.
func (b *Billing) InvoiceForReservation(ctx context.Context, reservationID int64) (model.Invoice, error) {
	raw, err := b.api.Do(ctx, "GET", fmt.Sprintf("/factures/reservation/%d", reservationID), nil, nil)
	if err != nil {
		return model.Invoice{}, err
	}
	var w invoiceWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return model.Invoice{}, err
	}
	return w.toModel(), nil
}

// InvoicePDF fetches the rendered invoice for download.  The body is
// passed through untouched along with its content type.
func (b *Billing) InvoicePDF(ctx context.Context, id int64) ([]byte, string, error) {
	return b.api.DoBytes(ctx, "GET", fmt.Sprintf("/factures/%d/pdf", id), nil)
}

// MarkInvoicePaid settles an invoice after payment completed.
func (b *Billing) MarkInvoicePaid(ctx context.Context, id int64) error {
	_, err := b.api.Do(ctx, "PUT", fmt.Sprintf("/factures/%d/payer", id), nil, nil)
	return err
}

func decodePayment(raw json.RawMessage) (Payment, error) {
	var w paymentWire
	if err := json.Unmarshal(httpx.Object(raw), &w); err != nil {
		return Payment{}, err
	}
	return w.toModel(), nil
}
