// Package compress provides the pluggable payload codecs used by the trace
// snapshot format. Timestamp columns are delta-encoded and compress
// extremely well; value columns are packed bit patterns that still gain a
// useful ratio from fast codecs.
package compress

import (
	"fmt"

	"github.com/evholm/wavescope/format"
)

// Codec combines compression and decompression for one algorithm.
//
// Implementations are stateless values (internal buffers are pooled) and
// safe for concurrent use. Compressed output is always newly allocated and
// owned by the caller; input slices are never modified.
type Codec interface {
	// Compress compresses data. An empty input yields a nil output.
	Compress(data []byte) ([]byte, error)

	// Decompress reverses Compress. It validates the stream and returns an
	// error on corrupt or foreign data.
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for a compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
