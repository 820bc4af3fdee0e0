package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether money was given out or taken in.
type Direction string

const (
	// DirectionLend is money given out, expected to be received back.
	DirectionLend Direction = "lend"

	// DirectionBorrow is money taken in, expected to be paid back.
	DirectionBorrow Direction = "borrow"
)

// IsValid checks if the direction is a known value.
func (d Direction) IsValid() bool {
	return d == DirectionLend || d == DirectionBorrow
}

// NotebookEntry represents a single lend-or-borrow record between the user
// and a named counterparty. Entries are immutable except for the
// settled/settledDate pair and are deleted rather than edited.
//
// The JSON tags define the persisted wire format of the per-user notebook
// collection; SettledDate is present if and only if Settled is true.
type NotebookEntry struct {
	ID               string          `json:"id"`
	Direction        Direction       `json:"type"`
	CounterpartyName string          `json:"personName"`
	Amount           decimal.Decimal `json:"amount"`
	Note             string          `json:"note,omitempty"`
	OpenedDate       time.Time       `json:"date"`
	Settled          bool            `json:"settled"`
	SettledDate      *time.Time      `json:"settledDate,omitempty"`
}

// MarkSettled marks the entry as settled at the given time.
func (e *NotebookEntry) MarkSettled(at time.Time) {
	e.Settled = true
	e.SettledDate = &at
}

// MarkPending returns the entry to the pending state.
func (e *NotebookEntry) MarkPending() {
	e.Settled = false
	e.SettledDate = nil
}

// ToggleSettled flips the settlement state. Transitioning to settled stamps
// the settlement date; transitioning back clears it.
func (e *NotebookEntry) ToggleSettled(now time.Time) {
	if e.Settled {
		e.MarkPending()
		return
	}
	e.MarkSettled(now)
}
