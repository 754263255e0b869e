// Package engine is the single owner of the order book: it dispatches
// typed operations into the book and matcher, and emits events on a
// one-way output channel (spec.md §4.E). The dispatch-by-message-type
// shape is adapted from the teacher's Server.handleMessage in
// internal/net/server.go, minus the TCP session plumbing.
package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"limitbook/internal/book"
	"limitbook/internal/common"
	"limitbook/internal/events"
	"limitbook/internal/ingest"
	"limitbook/internal/matcher"
)

var (
	// ErrMarketUnsupported is logged and reported as a Reject event when a
	// Create operation carries price == 0; this core only speaks limit
	// orders (spec.md §1 Non-goals). Dispatch does not return it.
	ErrMarketUnsupported = errors.New("engine: market orders are not supported")
	// ErrInboundOrder marks an Operation with an unrecognized Kind. The
	// ingest package never constructs one of these; this is a defensive
	// backstop, not a reachable path.
	ErrInboundOrder = errors.New("engine: malformed inbound operation")
	// ErrReporting is returned when the event sink is gone (the writer
	// stage exited or the context was cancelled) mid-send. It is fatal to
	// the Engine: spec.md §4.E says the Engine does not retry.
	ErrReporting = errors.New("engine: unable to deliver event")
)

// Engine owns exactly one Book — this system is single-symbol per
// spec.md's Non-goals, so there is no AssetType-keyed map of books the
// way the teacher's draft Engine.Books is.
type Engine struct {
	Book  *book.Book
	clock common.Clock
	out   chan<- events.Event
	log   zerolog.Logger
}

func New(out chan<- events.Event, log zerolog.Logger) *Engine {
	return &Engine{
		Book: book.New(),
		out:  out,
		log:  log,
	}
}

// Dispatch routes one operation to its handler. A non-nil error is
// always ErrReporting or the defensive ErrInboundOrder — both terminal
// to the caller's processing loop.
func (e *Engine) Dispatch(ctx context.Context, op ingest.Operation) error {
	switch op.Kind {
	case ingest.Create:
		return e.create(ctx, op)
	case ingest.Cancel:
		return e.cancel(ctx, op)
	case ingest.Flush:
		e.flush()
		return nil
	default:
		e.log.Error().Uint8("kind", uint8(op.Kind)).Msg("unrecognized operation kind")
		return ErrInboundOrder
	}
}

func (e *Engine) create(ctx context.Context, op ingest.Operation) error {
	if op.Price == 0 {
		e.log.Warn().
			Uint64("user_id", op.UserID).
			Uint64("user_order_id", op.UserOrderID).
			Err(ErrMarketUnsupported).
			Msg("rejecting create")
		return e.emit(ctx, events.Reject{UserID: op.UserID, UserOrderID: op.UserOrderID})
	}

	order := &common.Order{
		UserID:    op.UserID,
		OrderID:   op.UserOrderID,
		Symbol:    op.Symbol,
		Price:     op.Price,
		Quantity:  op.Quantity,
		Side:      op.Side,
		Timestamp: e.clock.Next(),
		Status:    common.Open,
	}

	result := matcher.Match(e.Book, order)
	for _, trade := range result.Trades {
		e.log.Info().
			Object("trade", trade).
			Str("trade_id", uuid.NewString()).
			Str("symbol", op.Symbol).
			Msg("trade executed")
	}

	// Per SPEC_FULL.md §9 Q1: every Create the Matcher attempts to match
	// is accepted, including a full fill that leaves nothing to rest.
	// Reject is reserved for operations refused before matching, above.
	if err := e.emit(ctx, events.Accept{UserID: op.UserID, UserOrderID: op.UserOrderID}); err != nil {
		return err
	}

	if result.Rested {
		return e.emit(ctx, e.bookTop())
	}
	return nil
}

func (e *Engine) cancel(ctx context.Context, op ingest.Operation) error {
	order, ok := e.Book.Cancel(op.UserOrderID)
	if !ok {
		return nil
	}
	return e.emit(ctx, events.Accept{UserID: order.UserID, UserOrderID: order.OrderID})
}

func (e *Engine) flush() {
	e.Book.Flush()
}

// bookTop picks the side to report per SPEC_FULL.md §9 Q2: the bid side
// whenever it is present (I4 guarantees it is the lower price whenever
// both sides rest simultaneously), otherwise whichever side is present,
// otherwise the neutral placeholder.
func (e *Engine) bookTop() events.BookTop {
	top := e.Book.TopOfBook()
	askVol, bidVol := e.Book.Volume()

	switch {
	case top.BidOK:
		return events.BookTop{Side: "B", Price: top.BidPrice, Quantity: bidVol}
	case top.AskOK:
		return events.BookTop{Side: "S", Price: top.AskPrice, Quantity: askVol}
	default:
		return events.EmptyBookTop()
	}
}

func (e *Engine) emit(ctx context.Context, ev events.Event) error {
	select {
	case e.out <- ev:
		return nil
	case <-ctx.Done():
		return ErrReporting
	}
}
