package compress

// ZstdCompressor provides Zstandard compression, the best ratio of the
// built-in codecs and the default for snapshot timestamp payloads, whose
// delta-encoded varints compress 5:1 or better.
//
// Two implementations back this type: a cgo binding (valyala/gozstd) when
// cgo is available, and a pure-Go fallback (klauspost/compress/zstd)
// otherwise. The compressed streams are interchangeable.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
