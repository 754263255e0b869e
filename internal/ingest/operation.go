package ingest

import "limitbook/internal/common"

// Kind tags an Operation.
type Kind uint8

const (
	Create Kind = iota
	Cancel
	Flush
)

// Operation is the parsed form of one input record (spec.md §6). Only
// the fields relevant to Kind are populated.
type Operation struct {
	Kind        Kind
	UserID      uint64
	UserOrderID uint64
	Symbol      string
	Price       uint64
	Quantity    uint64
	Side        common.Side
}
