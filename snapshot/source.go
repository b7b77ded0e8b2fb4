package snapshot

import (
	"context"
	"os"

	"github.com/evholm/wavescope/ingest"
	"github.com/evholm/wavescope/trace"
)

// Source adapts a snapshot file to the ingest pipeline, so cached traces
// load through the same loader, progress reporting and cancellation path as
// freshly parsed captures.
type Source struct {
	// Path is the snapshot file to restore.
	Path string
}

var _ ingest.Source = (*Source)(nil)

func (s *Source) Name() string { return s.Path }

// Read restores the snapshot into b. Cancellation is checked between
// signals; a partially replayed builder is discarded by the loader.
func (s *Source) Read(ctx context.Context, b *trace.Builder, p *ingest.Progress) error {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return err
	}
	p.SetTotalBytes(uint64(len(data)))
	p.AddBytes(uint64(len(data)))

	return decodeInto(data, b, func(count uint64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.AddRecords(count)

		return nil
	})
}
