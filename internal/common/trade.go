package common

import "github.com/rs/zerolog"

// Trade records one execution produced by the matcher: taker against
// maker, amount at the maker's resting price. UserIDs are carried
// separately from the order records so a Trade remains meaningful after
// the maker order has been removed from the book.
type Trade struct {
	TakerOrderID uint64
	MakerOrderID uint64
	TakerUserID  uint64
	MakerUserID  uint64
	Amount       uint64
	Price        uint64
}

// MarshalZerologObject logs a Trade as a structured object.
func (t Trade) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("taker_order_id", t.TakerOrderID).
		Uint64("maker_order_id", t.MakerOrderID).
		Uint64("taker_user_id", t.TakerUserID).
		Uint64("maker_user_id", t.MakerUserID).
		Uint64("amount", t.Amount).
		Uint64("price", t.Price)
}
