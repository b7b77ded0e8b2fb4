// Package snapshot persists a built trace as a compact binary cache and
// restores it without re-parsing the original capture.
//
// A snapshot is a header, a fixed-size signal index, and three payload
// sections (hierarchy, timestamps, values). Timestamps are delta-encoded
// uvarints per signal, values are packed per the signal's kind, and each
// payload section is independently compressed with a selectable codec.
// Restoring replays the recorded declarations and transitions through a
// trace.Builder, so a decoded snapshot satisfies exactly the invariants a
// freshly ingested trace does.
package snapshot

import (
	"github.com/evholm/wavescope/compress"
	"github.com/evholm/wavescope/format"
	"github.com/evholm/wavescope/internal/options"
)

type config struct {
	compression format.CompressionType
	bigEndian   bool
}

// Option configures snapshot writing.
type Option = options.Option[*config]

func defaultConfig() *config {
	return &config{compression: format.CompressionZstd}
}

// WithCompression selects the codec applied to the payload sections. The
// default is zstd; CompressionNone stores payloads verbatim.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// WithBigEndian writes fixed-width fields big-endian. Readers detect the
// byte order from the header flags, so this only matters for producing
// snapshots a big-endian consumer can mmap directly.
func WithBigEndian() Option {
	return options.NoError(func(c *config) {
		c.bigEndian = true
	})
}
