// Package reconcile bridges the identifier gap between the services that
// own an entity and the reservations service, which keeps its own private
// copies of rooms and clients under its own keys.  Before a reservation
// referencing either can be created there, the referenced record must be
// located in the mirror or created in it.  Reconciliation is best-effort:
// when even creation fails the original identifier is used as a last
// resort and the eventual server-side rejection is surfaced verbatim, never
// masked.
package reconcile

// Outcome distinguishes degraded success from true success so callers and
// tests can tell the three paths apart.
type Outcome int

const (
	// Found means the mirror already had the record.
	Found Outcome = iota
	// Created means the record was missing and was mirrored now.
	Created
	// FellBack means lookup and creation both failed; the originating
	// service's identifier is used verbatim and the write may be rejected
	// server-side.
	FellBack
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Created:
		return "created"
	case FellBack:
		return "fell_back"
	default:
		return "unknown"
	}
}

// Result is the identifier to put in the reservation payload plus how it
// was obtained.  Err is only set on FellBack and records why creation
// failed; it is informational, not fatal.
type Result struct {
	Outcome Outcome
	ID      int64
	Err     error
}
