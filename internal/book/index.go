package book

import "limitbook/internal/common"

// orderIndex is the authoritative mapping from order id to order record.
// Side books hold only ids; all contents live here (spec.md §4.B).
type orderIndex struct {
	byID map[uint64]*common.Order
}

func newOrderIndex() orderIndex {
	return orderIndex{byID: make(map[uint64]*common.Order)}
}

func (idx *orderIndex) insert(o *common.Order) {
	idx.byID[o.OrderID] = o
}

func (idx *orderIndex) get(id uint64) (*common.Order, bool) {
	o, ok := idx.byID[id]
	return o, ok
}

func (idx *orderIndex) remove(id uint64) {
	delete(idx.byID, id)
}

func (idx *orderIndex) clear() {
	idx.byID = make(map[uint64]*common.Order)
}

func (idx *orderIndex) len() int {
	return len(idx.byID)
}
