// ABOUTME: Sentinel errors for chunk-level parse and encode failures
// ABOUTME: Named after the error taxonomy in spec.md §7
package chunkcodec

import "errors"

var (
	// ErrBadReserved is returned when a chunk's reserved byte isn't 0x5A.
	ErrBadReserved = errors.New("chunkcodec: reserved byte is not 0x5A")

	// ErrBadChunkType is returned when a chunk's type byte isn't CBR or VBR.
	ErrBadChunkType = errors.New("chunkcodec: chunk type must be 0x01 (CBR) or 0x02 (VBR)")

	// ErrTruncated is returned when the chunk buffer ends before a field
	// finishes decoding.
	ErrTruncated = errors.New("chunkcodec: chunk truncated")

	// ErrParamOutOfRange is returned for an invalid sf_bits, rb, sf_frames,
	// or channel count.
	ErrParamOutOfRange = errors.New("chunkcodec: parameter out of range")

	// ErrEncodeOverflow is returned when a chunk cannot fit its encoded
	// payload within chunk_size at the requested bit widths.
	ErrEncodeOverflow = errors.New("chunkcodec: encoded payload exceeds chunk_size")
)
