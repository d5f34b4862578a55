// ABOUTME: Container-level decode: header/metadata parse plus chunk iteration
// ABOUTME: Implements spec.md §4.6's decode half, plus a streaming Decoder for total_frames==0
package sea

import (
	"io"

	"github.com/seacodec/sea-go/internal/chunkcodec"
	"github.com/seacodec/sea-go/internal/dqt"
	"github.com/seacodec/sea-go/internal/lms"
)

// Result is everything Decode recovers from a complete SEA file.
type Result struct {
	SampleRate uint32
	Channels   uint8
	Frames     uint32
	Samples    []int16
	Metadata   string
}

// Decode parses a complete in-memory SEA file, per spec.md §6. Decoding
// is fail-fast: on the first invalid chunk it returns the error together
// with whatever samples were already produced.
func Decode(data []byte) (Result, error) {
	hdr, off, err := ParseHeader(data)
	if err != nil {
		return Result{}, err
	}
	if uint64(off)+uint64(hdr.MetadataSize) > uint64(len(data)) {
		return Result{}, ErrTruncated
	}
	metadata := string(data[off : off+int(hdr.MetadataSize)])
	off += int(hdr.MetadataSize)

	nch := int(hdr.Channels)
	cache := dqt.NewCache()
	states := make([]lms.State, nch)

	var samples []int16
	framesDecoded := 0
	streaming := hdr.TotalFrames == 0

	for {
		if !streaming && framesDecoded >= int(hdr.TotalFrames) {
			break
		}
		if off+int(hdr.ChunkSize) > len(data) {
			if streaming {
				break
			}
			return Result{SampleRate: hdr.SampleRate, Channels: hdr.Channels, Frames: uint32(framesDecoded), Samples: samples, Metadata: metadata}, ErrTruncated
		}

		chunkBytes := data[off : off+int(hdr.ChunkSize)]
		if streaming && isZeroChunkHeader(chunkBytes, nch) {
			break
		}

		framesInChunk := int(hdr.FramesPerChunk)
		if !streaming {
			remaining := int(hdr.TotalFrames) - framesDecoded
			if remaining < framesInChunk {
				framesInChunk = remaining
			}
		}

		decoded, newStates, err := chunkcodec.Decode(chunkBytes, nch, framesInChunk, states, cache)
		if err != nil {
			return Result{SampleRate: hdr.SampleRate, Channels: hdr.Channels, Frames: uint32(framesDecoded), Samples: samples, Metadata: metadata}, err
		}
		samples = append(samples, decoded...)
		states = newStates
		framesDecoded += framesInChunk
		off += int(hdr.ChunkSize)
	}

	return Result{
		SampleRate: hdr.SampleRate,
		Channels:   hdr.Channels,
		Frames:     uint32(framesDecoded),
		Samples:    samples,
		Metadata:   metadata,
	}, nil
}

// isZeroChunkHeader reports whether a chunk's fixed fields and
// per-channel LMS state are all zero, the streaming EOF sentinel.
func isZeroChunkHeader(chunk []byte, channels int) bool {
	n := chunkcodec.FixedHeaderSize + chunkcodec.LMSStateSize*channels
	if n > len(chunk) {
		n = len(chunk)
	}
	for _, v := range chunk[:n] {
		if v != 0 {
			return false
		}
	}
	return true
}

// Decoder streams a SEA file chunk by chunk, for sources where
// total_frames==0 and the caller doesn't have the whole file buffered
// yet. Next returns io.EOF once the stream ends, either because the
// reader is exhausted or an all-zero chunk header sentinel was seen.
type Decoder struct {
	Header   Header
	Metadata string

	r              io.Reader
	cache          *dqt.Cache
	states         []lms.State
	channels       int
	framesPerChunk int
	totalFrames    int
	framesDecoded  int
	streaming      bool
	done           bool
}

// NewDecoder reads and validates the header and metadata blob from r,
// leaving r positioned at the first chunk.
func NewDecoder(r io.Reader) (*Decoder, error) {
	fixed := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, ErrTruncated
	}
	hdr, _, err := ParseHeader(fixed)
	if err != nil {
		return nil, err
	}

	metaBuf := make([]byte, hdr.MetadataSize)
	if hdr.MetadataSize > 0 {
		if _, err := io.ReadFull(r, metaBuf); err != nil {
			return nil, ErrTruncated
		}
	}

	nch := int(hdr.Channels)
	return &Decoder{
		Header:         hdr,
		Metadata:       string(metaBuf),
		r:              r,
		cache:          dqt.NewCache(),
		states:         make([]lms.State, nch),
		channels:       nch,
		framesPerChunk: int(hdr.FramesPerChunk),
		totalFrames:    int(hdr.TotalFrames),
		streaming:      hdr.TotalFrames == 0,
	}, nil
}

// Next decodes and returns the next chunk's interleaved samples. It
// returns io.EOF when the stream is exhausted: the total_frames budget
// is met, the reader runs dry, or (streaming mode only) an all-zero
// chunk header is read.
func (d *Decoder) Next() ([]int16, error) {
	if d.done {
		return nil, io.EOF
	}
	if !d.streaming && d.framesDecoded >= d.totalFrames {
		d.done = true
		return nil, io.EOF
	}

	chunkBytes := make([]byte, d.Header.ChunkSize)
	n, err := io.ReadFull(d.r, chunkBytes)
	if err != nil {
		d.done = true
		if n == 0 && (err == io.EOF || err == io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, ErrTruncated
	}

	if d.streaming && isZeroChunkHeader(chunkBytes, d.channels) {
		d.done = true
		return nil, io.EOF
	}

	framesInChunk := d.framesPerChunk
	if !d.streaming {
		remaining := d.totalFrames - d.framesDecoded
		if remaining < framesInChunk {
			framesInChunk = remaining
		}
	}

	decoded, newStates, err := chunkcodec.Decode(chunkBytes, d.channels, framesInChunk, d.states, d.cache)
	if err != nil {
		d.done = true
		return nil, err
	}
	d.states = newStates
	d.framesDecoded += framesInChunk
	return decoded, nil
}
