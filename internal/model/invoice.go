package model

import "time"

// InvoiceStatus is the billing service's invoice lifecycle.  Wire literals
// are French (EMISE, PAYEE, ANNULEE) and translated at the client boundary.
type InvoiceStatus string

const (
	InvoiceIssued    InvoiceStatus = "ISSUED"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is a billing record as consumed from the billing service.  It is
// attached to exactly one reservation.
//
// Fields:
//  ID            – billing-service identifier.
//  ReservationID – reservation the invoice belongs to.
//  TotalAmount   – amount due.
//  EmissionDate  – when the invoice was issued.
//  Status        – lifecycle state, already translated.
type Invoice struct {
	ID            int64         `json:"id"`
	ReservationID int64         `json:"reservation_id"`
	TotalAmount   float64       `json:"total_amount"`
	EmissionDate  time.Time     `json:"emission_date"`
	Status        InvoiceStatus `json:"status"`
}
