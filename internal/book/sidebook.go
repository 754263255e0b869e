package book

import (
	"github.com/tidwall/btree"

	"limitbook/internal/common"
)

// sideBook is a price-indexed map of FIFO queues for one side of the
// book, backed by the same ordered-btree-of-levels design the teacher
// uses for its OrderBook.PriceLevels (internal/engine/orderbook.go in the
// reference repo): top/popTop are O(log L) in the number of distinct
// price levels L, and removeSpecific is O(log L + K) for a level holding
// K orders, matching spec.md §4.A exactly.
type sideBook struct {
	side   common.Side
	levels *btree.BTreeG[*priceLevel]
	count  int
}

func newSideBook(side common.Side) *sideBook {
	var less func(a, b *priceLevel) bool
	if side == common.Ask {
		// Ascending: the top of the ask side is the smallest key.
		less = func(a, b *priceLevel) bool { return a.price < b.price }
	} else {
		// Descending: the top of the bid side is the largest key.
		less = func(a, b *priceLevel) bool { return a.price > b.price }
	}
	return &sideBook{side: side, levels: btree.NewBTreeG(less)}
}

// top returns the order id at the priority head for this side.
func (sb *sideBook) top() (uint64, bool) {
	lvl, ok := sb.levels.Min()
	if !ok {
		return 0, false
	}
	return lvl.orders[0], true
}

// push appends id to the FIFO at price, creating the level if absent.
func (sb *sideBook) push(price, id uint64) {
	if lvl, ok := sb.levels.GetMut(&priceLevel{price: price}); ok {
		lvl.orders = append(lvl.orders, id)
	} else {
		sb.levels.Set(&priceLevel{price: price, orders: []uint64{id}})
	}
	sb.count++
}

// removeSpecific removes id from its level at price, deleting the level
// if it becomes empty (invariant I3: no dangling levels).
func (sb *sideBook) removeSpecific(price, id uint64) bool {
	lvl, ok := sb.levels.GetMut(&priceLevel{price: price})
	if !ok {
		return false
	}
	for i, oid := range lvl.orders {
		if oid != id {
			continue
		}
		lvl.orders = append(lvl.orders[:i], lvl.orders[i+1:]...)
		if len(lvl.orders) == 0 {
			sb.levels.Delete(&priceLevel{price: price})
		}
		sb.count--
		return true
	}
	return false
}

// popTop removes and returns the head id of the top level, deleting the
// level if it empties.
func (sb *sideBook) popTop() (uint64, bool) {
	lvl, ok := sb.levels.Min()
	if !ok {
		return 0, false
	}
	id := lvl.orders[0]
	lvl.orders = lvl.orders[1:]
	if len(lvl.orders) == 0 {
		sb.levels.Delete(lvl)
	}
	sb.count--
	return id, true
}

// iter yields ids in priority order: ascending price for Ask, descending
// for Bid, FIFO within a level. Stops early if yield returns false.
func (sb *sideBook) iter(yield func(id uint64) bool) {
	sb.levels.Scan(func(lvl *priceLevel) bool {
		for _, id := range lvl.orders {
			if !yield(id) {
				return false
			}
		}
		return true
	})
}

// len reports the number of resting orders on this side.
func (sb *sideBook) len() int {
	return sb.count
}
