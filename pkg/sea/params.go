// ABOUTME: Public encoder parameters and the quality-tier convenience constructor
// ABOUTME: Mode aliases internal/chunkcodec.Type so callers never import the internal package
package sea

import "github.com/seacodec/sea-go/internal/chunkcodec"

// Mode selects constant or variable residual-bit width per chunk.
type Mode = chunkcodec.Type

const (
	// CBR: every residual in a chunk is ResidualBits wide.
	CBR = chunkcodec.CBR
	// VBR: residual width varies per scale-factor slot; VBRTargetBps sets
	// the cost penalty per residual bit (see vbrBias).
	VBR = chunkcodec.VBR
)

// EncodeParams configures one Encode call, per spec.md §6.
//
// VBRTargetBps is used in VBR mode only: the rate selector charges
// 4/VBRTargetBps per residual bit. The file's average bits/sample is not
// steered to this value; every chunk is padded to a chunk_size sized for
// residuals of ResidualBits+2 (capped at 8) bits.
type EncodeParams struct {
	Mode              Mode
	ResidualBits      uint8   // 1..8
	ScaleFactorBits   uint8   // 1..15
	FramesPerChunk    uint16  // frames encoded per chunk
	ScaleFactorFrames uint8   // stride: one scale factor per N frames
	VBRTargetBps      float32 // VBR only; sets the per-bit width penalty
}

// ParamsForQuality returns the reference encoder's quality-tier mapping
// from spec.md §4.5: quality 1→rb=1 … 8→rb=8, sf_bits 4 for rb≤4 and 5-6
// for higher rb. FramesPerChunk is set to 5120 and ScaleFactorFrames to 20.
func ParamsForQuality(quality int, mode Mode) EncodeParams {
	if quality < 1 {
		quality = 1
	}
	if quality > 8 {
		quality = 8
	}
	rb := uint8(quality)

	var sfBits uint8
	switch {
	case rb <= 4:
		sfBits = 4
	case rb <= 6:
		sfBits = 5
	default:
		sfBits = 6
	}

	return EncodeParams{
		Mode:              mode,
		ResidualBits:      rb,
		ScaleFactorBits:   sfBits,
		FramesPerChunk:    5120,
		ScaleFactorFrames: 20,
	}
}

func (p EncodeParams) toChunkParams() chunkcodec.Params {
	return chunkcodec.Params{
		Mode:              p.Mode,
		ScaleFactorBits:   p.ScaleFactorBits,
		ResidualBits:      p.ResidualBits,
		ScaleFactorFrames: p.ScaleFactorFrames,
	}
}

// vbrBias converts a target bits-per-sample into the rateselect cost
// weight: higher targets tolerate wider residuals more readily, so the
// per-extra-bit penalty shrinks as the target rises.
func (p EncodeParams) vbrBias() float64 {
	if p.Mode != VBR || p.VBRTargetBps <= 0 {
		return 0
	}
	return 4.0 / float64(p.VBRTargetBps)
}
