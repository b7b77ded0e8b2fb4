// Package ingest drives trace loading: it runs an external parser against a
// trace.Builder on a worker goroutine, reports incremental progress, honors
// cancellation, and publishes the finished trace with a single atomic
// pointer swap.
//
// The published trace is immutable, so readers never take a lock and a load
// in flight never disturbs them: until the swap happens, the previously
// published trace (if any) stays active and queryable. A cancelled or failed
// load simply drops its half-built state.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/evholm/wavescope/errs"
	"github.com/evholm/wavescope/trace"
)

// Source is the ingestion input contract: an external, format-specific
// parser that feeds a declaration pass and a temporally ordered event stream
// into the builder. The core is agnostic to the original file encoding.
//
// Read must return promptly after ctx is cancelled; the progress sink may be
// updated as often as the source likes (it is cheap).
type Source interface {
	// Name identifies the source for logging and error reports, typically
	// a file path.
	Name() string

	// Read declares the hierarchy and appends all transitions. Builder
	// errors must be propagated unchanged so the loader can classify them.
	Read(ctx context.Context, b *trace.Builder, p *Progress) error
}

// Progress exposes incremental load counters. All methods are safe to call
// concurrently with the load; a UI samples them to render a loading
// indicator.
type Progress struct {
	bytes   atomic.Uint64
	records atomic.Uint64
	total   atomic.Uint64
}

// AddBytes accumulates consumed input bytes.
func (p *Progress) AddBytes(n uint64) { p.bytes.Add(n) }

// AddRecords accumulates consumed records (transitions, declarations).
func (p *Progress) AddRecords(n uint64) { p.records.Add(n) }

// SetTotalBytes records the total input size when known, letting the caller
// render a percentage instead of a spinner.
func (p *Progress) SetTotalBytes(n uint64) { p.total.Store(n) }

// Bytes returns the bytes consumed so far.
func (p *Progress) Bytes() uint64 { return p.bytes.Load() }

// Records returns the records consumed so far.
func (p *Progress) Records() uint64 { return p.records.Load() }

// TotalBytes returns the total input size, 0 when unknown.
func (p *Progress) TotalBytes() uint64 { return p.total.Load() }

// Result is delivered on the channel returned by LoadAsync.
type Result struct {
	Trace *trace.Trace
	Err   error
}

// Loader owns the published trace pointer. The zero value is not usable;
// create one with NewLoader.
type Loader struct {
	current  atomic.Pointer[trace.Trace]
	progress atomic.Pointer[Progress]
	log      *slog.Logger
}

// NewLoader creates a loader. A nil logger uses slog.Default.
func NewLoader(log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}

	return &Loader{log: log}
}

// Current returns the published trace, nil before the first successful load.
// The returned trace stays valid even after a later load replaces it.
func (l *Loader) Current() *trace.Trace {
	return l.current.Load()
}

// Progress returns the counters of the load in flight, nil when idle.
func (l *Loader) Progress() *Progress {
	return l.progress.Load()
}

// Unload atomically drops the published trace.
func (l *Loader) Unload() {
	l.current.Store(nil)
}

// Load ingests a source synchronously and publishes the result on success.
//
// On any failure, malformed input and cancellation alike, the previously
// published trace remains active and queryable; nothing of the failed load
// survives. Cancellation surfaces as errs.ErrCancelled.
func (l *Loader) Load(ctx context.Context, src Source) (*trace.Trace, error) {
	p := &Progress{}
	l.progress.Store(p)
	defer l.progress.Store(nil)

	start := time.Now()
	l.log.Info("trace load started", "source", src.Name())

	b := trace.NewBuilder()
	if err := src.Read(ctx, b, p); err != nil {
		return nil, l.classify(src, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, l.classify(src, err)
	}

	tr, err := b.Build()
	if err != nil {
		return nil, l.classify(src, err)
	}

	l.current.Store(tr)
	l.log.Info("trace load finished",
		"source", src.Name(),
		"signals", tr.Hierarchy().SignalCount(),
		"records", p.Records(),
		"elapsed", time.Since(start))

	return tr, nil
}

// LoadAsync runs Load on a worker goroutine so the interactive thread never
// blocks, delivering the outcome on the returned channel.
func (l *Loader) LoadAsync(ctx context.Context, src Source) <-chan Result {
	done := make(chan Result, 1)
	go func() {
		tr, err := l.Load(ctx, src)
		done <- Result{Trace: tr, Err: err}
	}()

	return done
}

// classify wraps errors once per failing load, distinguishing cancellation
// (normal termination) from malformed input for logging.
func (l *Loader) classify(src Source, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, errs.ErrCancelled) {
		l.log.Info("trace load cancelled", "source", src.Name())

		return fmt.Errorf("%w: %s", errs.ErrCancelled, src.Name())
	}

	l.log.Error("trace load failed", "source", src.Name(), "error", err)

	return fmt.Errorf("load %s: %w", src.Name(), err)
}
