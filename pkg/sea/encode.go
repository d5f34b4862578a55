// ABOUTME: Container-level encode: header + metadata + chunk iteration
// ABOUTME: Implements spec.md §4.6's encode half
package sea

import (
	"github.com/seacodec/sea-go/internal/chunkcodec"
	"github.com/seacodec/sea-go/internal/dqt"
	"github.com/seacodec/sea-go/internal/lms"
)

// maxResidualWidth returns the widest residual code Encode may emit for
// the given params, used to size chunk_size so no chunk can overflow.
func maxResidualWidth(p EncodeParams) uint8 {
	if p.Mode == VBR {
		w := p.ResidualBits + 2
		if w > 8 {
			w = 8
		}
		return w
	}
	return p.ResidualBits
}

// chunkSizeFor computes the minimum chunk_size that can hold
// FramesPerChunk frames at params' widest possible residual width.
func chunkSizeFor(p EncodeParams, channels int) int {
	cp := p.toChunkParams()
	sfItems := cp.NumSlots(int(p.FramesPerChunk)) * channels

	sfBytes := (sfItems*int(p.ScaleFactorBits) + 7) / 8
	vbrBytes := 0
	if p.Mode == VBR {
		vbrBytes = (sfItems*2 + 7) / 8
	}
	residualBytes := (int(p.FramesPerChunk) * channels * int(maxResidualWidth(p)) + 7) / 8

	return chunkcodec.FixedHeaderSize + chunkcodec.LMSStateSize*channels + sfBytes + vbrBytes + residualBytes
}

// Encode builds a complete SEA file from interleaved int16 samples, per
// spec.md §6. metadata is a pre-formatted key=value\n blob (see
// EncodeMetadata); pass "" for none.
func Encode(samples []int16, sampleRate uint32, channels uint8, params EncodeParams, metadata string) ([]byte, error) {
	if channels == 0 {
		return nil, ErrParamOutOfRange
	}
	if params.FramesPerChunk == 0 {
		return nil, ErrParamOutOfRange
	}
	cp := params.toChunkParams()
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	nch := int(channels)
	if len(samples)%nch != 0 {
		return nil, ErrParamOutOfRange
	}
	totalFrames := len(samples) / nch

	if _, err := ParseMetadata(metadata); err != nil {
		return nil, err
	}

	chunkSize := chunkSizeFor(params, nch)
	if chunkSize > 0xFFFF {
		return nil, ErrParamOutOfRange
	}

	hdr := Header{
		Channels:       channels,
		ChunkSize:      uint16(chunkSize),
		FramesPerChunk: params.FramesPerChunk,
		SampleRate:     sampleRate,
		TotalFrames:    uint32(totalFrames),
		MetadataSize:   uint32(len(metadata)),
	}

	out := make([]byte, 0, HeaderSize+len(metadata)+chunkSize*((totalFrames+int(params.FramesPerChunk)-1)/int(params.FramesPerChunk)+1))
	out = append(out, hdr.Encode()...)
	out = append(out, metadata...)

	cache := dqt.NewCache()
	states := make([]lms.State, nch)
	bias := params.vbrBias()

	framesPerChunk := int(params.FramesPerChunk)
	for start := 0; start < totalFrames; start += framesPerChunk {
		framesInChunk := framesPerChunk
		if start+framesInChunk > totalFrames {
			framesInChunk = totalFrames - start
		}
		chunkSamples := samples[start*nch : (start+framesInChunk)*nch]

		res, err := chunkcodec.Encode(chunkSamples, nch, framesInChunk, states, cp, bias, cache, chunkSize)
		if err != nil {
			return nil, err
		}
		out = append(out, res.Bytes...)
		states = res.EndStates
	}

	return out, nil
}
