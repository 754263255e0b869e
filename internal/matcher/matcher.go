// Package matcher implements the stateless crossing algorithm: given a
// Book and one incoming order, it walks the opposite side, executes
// trades, removes exhausted resting orders, and places any residue
// (spec.md §4.D). It never rejects an order; it reports only the trades
// and whether the residue rested.
package matcher

import (
	"errors"

	"limitbook/internal/book"
	"limitbook/internal/common"
)

// These three are non-fatal loop-exit signals: the crossing loop stops
// iterating on any of them and never surfaces them past this package
// (spec.md §7: "non-fatal, used by the crossing loop to stop iterating").
var (
	ErrClosed       = errors.New("matcher: one of the orders is already closed")
	ErrConflict     = errors.New("matcher: orders are on the same side")
	ErrIncompatible = errors.New("matcher: prices do not cross")
)

// Matches reports whether a and b may trade: both open, opposite sides,
// and the bid's price is at least the ask's price.
func Matches(a, b *common.Order) error {
	if a.IsClosed() || b.IsClosed() {
		return ErrClosed
	}
	if a.Side == b.Side {
		return ErrConflict
	}
	bid, ask := a, b
	if ask.Side == common.Bid {
		bid, ask = b, a
	}
	if bid.Price < ask.Price {
		return ErrIncompatible
	}
	return nil
}

// Trade executes maker against taker: exchanged = min(remaining), at the
// maker's limit price. Requires Matches(maker, taker).
func Trade(maker, taker *common.Order) (common.Trade, error) {
	if err := Matches(maker, taker); err != nil {
		return common.Trade{}, err
	}
	exchanged := min(maker.Remaining(), taker.Remaining())
	price := maker.Price
	maker.Fill(exchanged)
	taker.Fill(exchanged)
	return common.Trade{
		TakerOrderID: taker.OrderID,
		MakerOrderID: maker.OrderID,
		TakerUserID:  taker.UserID,
		MakerUserID:  maker.UserID,
		Amount:       exchanged,
		Price:        price,
	}, nil
}

// Result carries what the Engine needs to know about one Create
// operation: every trade executed, and whether residual quantity ended
// up resting in the book.
type Result struct {
	Trades []common.Trade
	Rested bool
}

// Match runs the crossing loop for incoming against b, per spec.md
// §4.D's algorithm. incoming must not yet be in the book.
func Match(b *book.Book, incoming *common.Order) Result {
	var trades []common.Trade

	for !incoming.IsClosed() {
		maker, ok := b.Peek(incoming.Side.Opposite())
		if !ok {
			break
		}
		if err := Matches(maker, incoming); err != nil {
			break
		}
		trade, err := Trade(maker, incoming)
		if err != nil {
			// Matches was just checked successfully; Trade cannot fail here.
			break
		}
		trades = append(trades, trade)

		if maker.IsClosed() {
			// maker became Completed; remove it from the book. Peek
			// returned the priority head, so popping that side now
			// removes exactly this order (spec.md §9: take the id,
			// do the work, then re-enter the container).
			b.Pop(maker.Side)
		}
	}

	rested := false
	if !incoming.IsClosed() {
		// Place cannot fail here: incoming.OrderID is fresh and
		// incoming.Price > 0 is an Engine-level precondition checked
		// before Match is ever called.
		_ = b.Place(incoming)
		rested = true
	}

	return Result{Trades: trades, Rested: rested}
}
