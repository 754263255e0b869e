package book

// priceLevel is the FIFO of order ids resting at one price on one side.
// The head of orders is the earliest-arrived id still resting at this
// price; push appends to the tail, pop/remove take from wherever the
// order sits.
type priceLevel struct {
	price  uint64
	orders []uint64
}
