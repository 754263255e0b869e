// Package events defines the outbound event contract (spec.md §4.E/§6):
// a closed set of three event structs (Accept, Reject, BookTop) behind a
// one-method Event interface, each serialized to a header-less CSV row.
// The channel carries Event interface values and the writer calls
// Record() through the interface.
package events

import "strconv"

// Event is satisfied by every outbound record. Record returns the CSV
// row, label first.
type Event interface {
	Record() []string
}

// Accept is emitted when an operation succeeds: a Create that matched or
// rested, or a Cancel that found its order.
type Accept struct {
	UserID      uint64
	UserOrderID uint64
}

func (a Accept) Record() []string {
	return []string{"A", strconv.FormatUint(a.UserID, 10), strconv.FormatUint(a.UserOrderID, 10)}
}

// Reject is emitted when the Engine refuses an operation before any
// matching is attempted (see SPEC_FULL.md §9 Q1).
type Reject struct {
	UserID      uint64
	UserOrderID uint64
}

func (r Reject) Record() []string {
	return []string{"R", strconv.FormatUint(r.UserID, 10), strconv.FormatUint(r.UserOrderID, 10)}
}

// BookTop reports one side's priority head after a Create that rested.
// Side is "B", "S", or "-" for an empty book, in which case Price and
// Quantity are both 0.
type BookTop struct {
	Side     string
	Price    uint64
	Quantity uint64
}

func (b BookTop) Record() []string {
	return []string{"B", b.Side, strconv.FormatUint(b.Price, 10), strconv.FormatUint(b.Quantity, 10)}
}

// EmptyBookTop is the neutral placeholder emitted when neither side has
// a resting order.
func EmptyBookTop() BookTop {
	return BookTop{Side: "-"}
}
