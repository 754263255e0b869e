// Package book implements the price-time-priority order book: a pair of
// side books plus the order index that mediates between them. The Book
// is the sole point of contact for both structures (spec.md §9's
// "intrusive cross-indexing" note) — no caller reaches into a sideBook
// or the index directly.
package book

import (
	"errors"

	"limitbook/internal/common"
)

var (
	ErrDuplicateOrderID = errors.New("book: order id already resting")
	ErrInvalidPrice     = errors.New("book: price must be strictly positive")
)

// TopOfBook carries the limit prices of the two priority heads, each
// independently optional.
type TopOfBook struct {
	AskPrice uint64
	AskOK    bool
	BidPrice uint64
	BidOK    bool
}

// Book is the composition of two side books and the order index that
// backs them, per spec.md §3/§4.C.
type Book struct {
	asks      *sideBook
	bids      *sideBook
	idx       orderIndex
	askVolume uint64
	bidVolume uint64
}

// New returns an empty Book.
func New() *Book {
	return &Book{
		asks: newSideBook(common.Ask),
		bids: newSideBook(common.Bid),
		idx:  newOrderIndex(),
	}
}

func (b *Book) sideBookFor(side common.Side) *sideBook {
	if side == common.Ask {
		return b.asks
	}
	return b.bids
}

// Place inserts a new resting order. Preconditions (spec.md §4.C):
// order.OrderID is not already in the index; order.Price > 0. No events
// are produced; this is a pure book-keeping mutation, I4 crossing is the
// Matcher's responsibility.
func (b *Book) Place(o *common.Order) error {
	if o.Price == 0 {
		return ErrInvalidPrice
	}
	if _, exists := b.idx.get(o.OrderID); exists {
		return ErrDuplicateOrderID
	}
	b.idx.insert(o)
	b.sideBookFor(o.Side).push(o.Price, o.OrderID)
	b.adjustVolume(o.Side, o.Remaining(), true)
	return nil
}

// Cancel removes id from the book if present, transitioning its status
// per spec.md §4.D (Open -> Cancelled, Partial -> Closed), and returns
// it. Returns (nil, false) if id is absent — a no-op.
func (b *Book) Cancel(id uint64) (*common.Order, bool) {
	o, ok := b.idx.get(id)
	if !ok {
		return nil, false
	}
	b.sideBookFor(o.Side).removeSpecific(o.Price, id)
	b.idx.remove(id)
	b.adjustVolume(o.Side, o.Remaining(), false)
	o.Cancel()
	return o, true
}

// Peek returns the order resting at the priority head of side, or false
// if that side is empty. The returned pointer is shared with the index;
// callers must not retain it across a subsequent mutating call on the
// Book (spec.md §9's reference-lifetime note) without re-fetching.
func (b *Book) Peek(side common.Side) (*common.Order, bool) {
	id, ok := b.sideBookFor(side).top()
	if !ok {
		return nil, false
	}
	return b.idx.get(id)
}

// Pop removes and returns the priority-head order of side.
func (b *Book) Pop(side common.Side) (*common.Order, bool) {
	id, ok := b.sideBookFor(side).popTop()
	if !ok {
		return nil, false
	}
	o, _ := b.idx.get(id)
	b.idx.remove(id)
	b.adjustVolume(side, o.Remaining(), false)
	return o, true
}

// TopOfBook reports the limit prices of the two heads.
func (b *Book) TopOfBook() TopOfBook {
	var t TopOfBook
	if id, ok := b.asks.top(); ok {
		o, _ := b.idx.get(id)
		t.AskPrice, t.AskOK = o.Price, true
	}
	if id, ok := b.bids.top(); ok {
		o, _ := b.idx.get(id)
		t.BidPrice, t.BidOK = o.Price, true
	}
	return t
}

// Len returns the total resting order count per side.
func (b *Book) Len() (askCount, bidCount int) {
	return b.asks.len(), b.bids.len()
}

// Volume returns the sum of remaining quantity per side. It is summed
// over the index at call time, so fills the matcher applies in place to
// resting orders are reflected.
func (b *Book) Volume() (askVolume, bidVolume uint64) {
	for _, o := range b.idx.byID {
		if o.Side == common.Ask {
			askVolume += o.Remaining()
		} else {
			bidVolume += o.Remaining()
		}
	}
	return askVolume, bidVolume
}

// Flush drops all state; the Book returns to its initial empty state.
func (b *Book) Flush() {
	b.asks = newSideBook(common.Ask)
	b.bids = newSideBook(common.Bid)
	b.idx.clear()
	b.askVolume = 0
	b.bidVolume = 0
}

// IterIDs exposes priority-ordered ids of a side for tests that assert
// FIFO ordering (P6) without reaching into sideBook internals.
func (b *Book) IterIDs(side common.Side) []uint64 {
	var ids []uint64
	b.sideBookFor(side).iter(func(id uint64) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

func (b *Book) adjustVolume(side common.Side, amount uint64, add bool) {
	vol := &b.askVolume
	if side == common.Bid {
		vol = &b.bidVolume
	}
	if add {
		*vol += amount
	} else {
		*vol -= amount
	}
}
