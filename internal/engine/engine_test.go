package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limitbook/internal/common"
	"limitbook/internal/events"
	"limitbook/internal/ingest"
)

func newTestEngine(t *testing.T) (*Engine, chan events.Event) {
	t.Helper()
	ch := make(chan events.Event, 16)
	return New(ch, zerolog.Nop()), ch
}

// TestScenarioBookRestNoCross is spec.md §8 scenario 1.
func TestScenarioBookRestNoCross(t *testing.T) {
	e, ch := newTestEngine(t)
	ctx := context.Background()

	op1 := ingest.Operation{Kind: ingest.Create, UserID: 1, Symbol: "IBM", Price: 10, Quantity: 100, Side: common.Bid, UserOrderID: 1}
	require.NoError(t, e.Dispatch(ctx, op1))
	assert.Equal(t, events.Accept{UserID: 1, UserOrderID: 1}, <-ch)
	assert.Equal(t, events.BookTop{Side: "B", Price: 10, Quantity: 100}, <-ch)

	op2 := ingest.Operation{Kind: ingest.Create, UserID: 1, Symbol: "IBM", Price: 12, Quantity: 100, Side: common.Ask, UserOrderID: 2}
	require.NoError(t, e.Dispatch(ctx, op2))
	assert.Equal(t, events.Accept{UserID: 1, UserOrderID: 2}, <-ch)
	assert.Equal(t, events.BookTop{Side: "B", Price: 10, Quantity: 100}, <-ch)
}

// TestScenarioFullFillSuppressesBookTop is spec.md §8 scenario 3: the
// crossing order fully fills and nothing rests, so no BookTop is emitted
// (Q1: the full fill is still an Accept).
func TestScenarioFullFillSuppressesBookTop(t *testing.T) {
	e, ch := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Dispatch(ctx, ingest.Operation{Kind: ingest.Create, UserID: 1, Symbol: "IBM", Price: 10, Quantity: 100, Side: common.Bid, UserOrderID: 1}))
	<-ch // accept
	<-ch // book top

	require.NoError(t, e.Dispatch(ctx, ingest.Operation{Kind: ingest.Create, UserID: 2, Symbol: "IBM", Price: 10, Quantity: 40, Side: common.Ask, UserOrderID: 2}))
	assert.Equal(t, events.Accept{UserID: 2, UserOrderID: 2}, <-ch)

	select {
	case ev := <-ch:
		t.Fatalf("expected no further event, got %#v", ev)
	default:
	}

	askCount, bidCount := e.Book.Len()
	assert.Zero(t, askCount)
	assert.Equal(t, 1, bidCount)
}

// TestScenarioCancelExistingAndMissing is spec.md §8 scenario 4.
func TestScenarioCancelExistingAndMissing(t *testing.T) {
	e, ch := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Dispatch(ctx, ingest.Operation{Kind: ingest.Create, UserID: 1, Symbol: "IBM", Price: 10, Quantity: 60, Side: common.Bid, UserOrderID: 1}))
	<-ch
	<-ch

	require.NoError(t, e.Dispatch(ctx, ingest.Operation{Kind: ingest.Cancel, UserID: 1, UserOrderID: 1}))
	assert.Equal(t, events.Accept{UserID: 1, UserOrderID: 1}, <-ch)

	require.NoError(t, e.Dispatch(ctx, ingest.Operation{Kind: ingest.Cancel, UserID: 9, UserOrderID: 9}))
	select {
	case ev := <-ch:
		t.Fatalf("expected no event for unknown cancel, got %#v", ev)
	default:
	}
}

// TestScenarioFlushEmptiesBook is spec.md §8 scenario 5.
func TestScenarioFlushEmptiesBook(t *testing.T) {
	e, ch := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Dispatch(ctx, ingest.Operation{Kind: ingest.Create, UserID: 1, Symbol: "IBM", Price: 10, Quantity: 60, Side: common.Bid, UserOrderID: 1}))
	<-ch
	<-ch

	require.NoError(t, e.Dispatch(ctx, ingest.Operation{Kind: ingest.Flush}))
	select {
	case ev := <-ch:
		t.Fatalf("expected no event from flush, got %#v", ev)
	default:
	}

	top := e.Book.TopOfBook()
	assert.False(t, top.AskOK)
	assert.False(t, top.BidOK)
}

func TestMarketOrderIsRejected(t *testing.T) {
	e, ch := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Dispatch(ctx, ingest.Operation{Kind: ingest.Create, UserID: 1, Symbol: "IBM", Price: 0, Quantity: 10, Side: common.Bid, UserOrderID: 1}))
	assert.Equal(t, events.Reject{UserID: 1, UserOrderID: 1}, <-ch)

	askCount, bidCount := e.Book.Len()
	assert.Zero(t, askCount)
	assert.Zero(t, bidCount)
}

func TestReportingErrorOnCancelledContext(t *testing.T) {
	// Unbuffered with nothing reading: the send case in emit can never
	// proceed, so cancelling ctx first guarantees the ctx.Done() branch
	// of the select is the only one ready.
	ch := make(chan events.Event)
	e := New(ch, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Dispatch(ctx, ingest.Operation{Kind: ingest.Create, UserID: 1, Symbol: "IBM", Price: 10, Quantity: 10, Side: common.Bid, UserOrderID: 1})
	assert.ErrorIs(t, err, ErrReporting)
}
