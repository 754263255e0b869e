// Package common holds the domain types shared by the book, matcher and
// engine packages: the order record, its side/status enums and the
// monotonic timestamp used to resolve time priority.
package common

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Side is the two-valued tag of an order or a book half.
type Side uint8

const (
	Ask Side = iota
	Bid
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Ask {
		return Bid
	}
	return Ask
}

func (s Side) String() string {
	if s == Ask {
		return "S"
	}
	return "B"
}

// ParseSide maps the wire encoding ("B"/"S") onto a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "B":
		return Bid, nil
	case "S":
		return Ask, nil
	default:
		return 0, ErrInvalidSide
	}
}

var ErrInvalidSide = errors.New("common: invalid side")

// Status is the lifecycle state of an order.
type Status uint8

const (
	Open Status = iota
	Partial
	Cancelled
	Closed
	Completed
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case Partial:
		return "partial"
	case Cancelled:
		return "cancelled"
	case Closed:
		return "closed"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// IsClosed reports whether the status is terminal.
func (s Status) IsClosed() bool {
	return s == Cancelled || s == Closed || s == Completed
}

// Timestamp resolves time priority. The spec calls for a monotonic 128-bit
// nanosecond value; Go has no native 128-bit integer, so Seq (a single
// atomically-incremented counter) carries the ordering guarantee and Nanos
// is carried only for human-readable logging. The Engine stamps each Create
// from its own Clock when it dispatches it; the ingest stage assigns no
// timestamp. Comparing
// Seq alone is sufficient and immune to wall-clock skew (see SPEC_FULL.md
// §9 Q3).
type Timestamp struct {
	Seq   uint64
	Nanos uint64
}

// Less reports whether t sorts strictly before o.
func (t Timestamp) Less(o Timestamp) bool {
	return t.Seq < o.Seq
}

// Clock assigns strictly increasing Timestamps to incoming operations.
// Each Engine holds one Clock and draws from it in dispatch order.
type Clock struct {
	seq uint64
}

// Next returns the next Timestamp in sequence. Safe for concurrent use.
func (c *Clock) Next() Timestamp {
	seq := atomic.AddUint64(&c.seq, 1)
	return Timestamp{Seq: seq, Nanos: uint64(time.Now().UnixNano())}
}

// Order is the mutable record for one resting or incoming limit order.
type Order struct {
	UserID    uint64
	OrderID   uint64
	Symbol    string
	Price     uint64
	Quantity  uint64
	Side      Side
	Timestamp Timestamp
	Filled    uint64
	Status    Status
}

// Remaining returns the unfilled quantity.
func (o *Order) Remaining() uint64 {
	return o.Quantity - o.Filled
}

// IsClosed reports whether the order can no longer participate in matching.
func (o *Order) IsClosed() bool {
	return o.Status.IsClosed()
}

var (
	// ErrNoFill and ErrOverfill indicate a matcher bug: Fill is only ever
	// called with 0 < amount <= Remaining(). Both panic rather than return,
	// per spec.md §7 ("both indicate matcher bugs and panic").
	ErrNoFill   = errors.New("common: fill amount must be positive")
	ErrOverfill = errors.New("common: fill amount exceeds remaining quantity")
)

// Fill applies a trade of the given amount to the order, updating Filled
// and Status. Panics on ErrNoFill/ErrOverfill: these indicate the caller
// (the matcher) computed an impossible exchange quantity.
func (o *Order) Fill(amount uint64) {
	if amount == 0 {
		panic(ErrNoFill)
	}
	if amount > o.Remaining() {
		panic(ErrOverfill)
	}
	o.Filled += amount
	if o.Remaining() == 0 {
		o.Status = Completed
	} else {
		o.Status = Partial
	}
}

// Cancel transitions the order to its cancelled terminal state following
// spec.md §4.D: Open -> Cancelled, Partial -> Closed. Already-closed orders
// are left untouched (the caller is expected not to reach this state, as
// closed orders have already been removed from the book).
func (o *Order) Cancel() {
	switch o.Status {
	case Open:
		o.Status = Cancelled
	case Partial:
		o.Status = Closed
	}
}

// MarshalZerologObject lets an *Order be logged as a structured object via
// zerolog's Object()/EmbedObject() builders, matching the teacher's
// builder-style logging idiom throughout internal/net in the reference
// repo.
func (o *Order) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("order_id", o.OrderID).
		Uint64("user_id", o.UserID).
		Str("symbol", o.Symbol).
		Str("side", o.Side.String()).
		Uint64("price", o.Price).
		Uint64("quantity", o.Quantity).
		Uint64("filled", o.Filled).
		Str("status", o.Status.String())
}
