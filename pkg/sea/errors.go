// ABOUTME: Sentinel errors for the container-level format, per spec.md §7
// ABOUTME: Chunk-level errors are re-exported from internal/chunkcodec where the names match
package sea

import (
	"errors"

	"github.com/seacodec/sea-go/internal/chunkcodec"
)

var (
	// ErrBadMagic is returned when the first four header bytes aren't "SEAC".
	ErrBadMagic = errors.New("sea: bad magic, expected \"SEAC\"")

	// ErrUnsupportedVersion is returned when the header version isn't 1.
	ErrUnsupportedVersion = errors.New("sea: unsupported header version")

	// ErrBadMetadata is returned when the metadata blob isn't valid UTF-8
	// or violates the key=value invariants of spec.md §3.
	ErrBadMetadata = errors.New("sea: malformed metadata blob")

	// ErrParamOutOfRange is re-exported from internal/chunkcodec: an
	// invalid channels, frames_per_chunk, sf_bits, residual_bits, or
	// chunk_size.
	ErrParamOutOfRange = chunkcodec.ErrParamOutOfRange

	// ErrTruncated is re-exported from internal/chunkcodec: the byte
	// stream ends before the header, metadata, or a declared chunk
	// finishes parsing.
	ErrTruncated = chunkcodec.ErrTruncated

	// ErrBadReserved is re-exported from internal/chunkcodec: a chunk's
	// reserved byte wasn't 0x5A.
	ErrBadReserved = chunkcodec.ErrBadReserved

	// ErrBadChunkType is re-exported from internal/chunkcodec: a chunk's
	// type byte wasn't CBR or VBR.
	ErrBadChunkType = chunkcodec.ErrBadChunkType

	// ErrEncodeOverflow is re-exported from internal/chunkcodec: the
	// encoder could not fit a chunk's payload within chunk_size at the
	// requested bit widths.
	ErrEncodeOverflow = chunkcodec.ErrEncodeOverflow
)
