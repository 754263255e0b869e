// Package pipeline wires the three cooperating stages spec.md §5
// describes: a reader, a single-threaded engine, and a writer, connected
// by channels and supervised together. The supervision idiom (a shared
// tomb.Tomb, goroutines that select on <-t.Dying()/ctx.Done() to unwind
// cleanly) is carried over from the teacher's Server.Run and WorkerPool
// in internal/net/server.go and internal/worker.go, collapsed from an
// N-worker TCP connection pool down to the fixed three-stage pipeline
// this spec mandates — there is exactly one producer and one engine, so
// a pool has no work to distribute.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"

	"limitbook/internal/engine"
	"limitbook/internal/events"
	"limitbook/internal/ingest"
)

const opsBufferSize = 256

// Pipeline owns the reader, the engine and the writer for one run.
type Pipeline struct {
	reader   *ingest.Reader
	writer   *events.Writer
	engine   *engine.Engine
	opsCh    chan ingest.Operation
	eventsCh chan events.Event
	log      zerolog.Logger
}

func New(r io.Reader, w io.Writer, log zerolog.Logger) *Pipeline {
	eventsCh := make(chan events.Event, opsBufferSize)
	return &Pipeline{
		reader:   ingest.NewReader(r),
		writer:   events.NewWriter(w),
		engine:   engine.New(eventsCh, log),
		opsCh:    make(chan ingest.Operation, opsBufferSize),
		eventsCh: eventsCh,
		log:      log,
	}
}

// Run drains the reader to completion or until ctx is cancelled,
// returning the first error any stage reported (nil on a clean drain).
func (p *Pipeline) Run(ctx context.Context) error {
	t, ctx := tomb.WithContext(ctx)

	t.Go(func() error { return p.readLoop(ctx) })
	t.Go(func() error { return p.engineLoop(ctx) })
	t.Go(func() error { return p.writeLoop(ctx) })

	return t.Wait()
}

// readLoop scans operations and forwards them to the engine. A
// malformed known-tag line (*ingest.LineError) is logged and skipped —
// terminal for that operation only, per spec.md §7. Any other error is a
// genuine scanner-level failure: Scan will keep returning false, so it is
// propagated and ends the pipeline rather than busy-looping. EOF closes
// opsCh, draining the engine.
func (p *Pipeline) readLoop(ctx context.Context) error {
	defer close(p.opsCh)
	for {
		op, ok, err := p.reader.Next()
		if err != nil {
			var lineErr *ingest.LineError
			if errors.As(err, &lineErr) {
				p.log.Warn().Err(err).Msg("dropping malformed operation")
				continue
			}
			return fmt.Errorf("pipeline: reader failed: %w", err)
		}
		if !ok {
			return nil
		}
		select {
		case p.opsCh <- op:
		case <-ctx.Done():
			return nil
		}
	}
}

// engineLoop is the Engine's single logical thread: operations are
// applied in the exact order they arrive, one at a time, per spec.md §5.
func (p *Pipeline) engineLoop(ctx context.Context) error {
	defer close(p.eventsCh)
	for {
		select {
		case <-ctx.Done():
			return nil
		case op, ok := <-p.opsCh:
			if !ok {
				return nil
			}
			if err := p.engine.Dispatch(ctx, op); err != nil {
				return err
			}
		}
	}
}

// writeLoop drains events to the output sink in arrival order.
func (p *Pipeline) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-p.eventsCh:
			if !ok {
				return nil
			}
			if err := p.writer.Write(ev); err != nil {
				return err
			}
		}
	}
}
