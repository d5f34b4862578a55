// ABOUTME: Trial-quantization rate selector: chooses scale factor/width per slot
// ABOUTME: Implements spec.md §4.5, grounded on goqoa's brute-force scaleFactor search
package chunkcodec

import (
	"github.com/seacodec/sea-go/internal/dqt"
	"github.com/seacodec/sea-go/internal/lms"
)

// SlotChoice is the winning candidate for one (scale-factor slot, channel)
// pair: the scale factor and (VBR) length code to pack, the residual
// codes chosen for every frame in the slot, and the LMS state after
// committing those codes.
type SlotChoice struct {
	ScaleFactor uint32
	LengthCode  uint32 // only meaningful in VBR; always 0 in CBR
	Width       uint8
	Codes       []uint32
	EndState    lms.State
	SumSqErr    int64
}

// selectSlot brute-forces every candidate scale factor (and, in VBR,
// every residual-width delta), scoring each by simulating the full
// predict/quantize/update loop over targets from a scratch copy of
// startState, and returns the lowest-cost choice. Ties prefer the
// smaller scale-factor index, then the smaller length code.
func selectSlot(startState lms.State, cache *dqt.Cache, params Params, vbrBias float64, targets []int16) (SlotChoice, error) {
	numScales := 1 << params.ScaleFactorBits

	var best SlotChoice
	bestCost := int64(-1)
	haveBest := false

	tryCandidate := func(sf uint32, lengthCode uint32, width uint8) error {
		table, err := cache.Get(params.ScaleFactorBits, width)
		if err != nil {
			return err
		}
		row := table.Rows[sf]

		scratch := startState
		codes := make([]uint32, len(targets))
		var sumSq int64
		for i, target := range targets {
			predicted := scratch.Predict()

			bestQ := 0
			bestErr := int64(1) << 62
			for q, val := range row {
				diff := int64(predicted) + int64(val) - int64(target)
				if diff < 0 {
					diff = -diff
				}
				if diff < bestErr {
					bestErr = diff
					bestQ = q
				}
			}

			dequantized := row[bestQ]
			reconstructed := lms.ClampInt16(predicted + dequantized)
			reconErr := int64(target) - int64(reconstructed)
			sumSq += reconErr * reconErr
			codes[i] = uint32(bestQ)
			scratch.Update(int32(reconstructed), dequantized)
		}

		cost := sumSq
		if params.Mode == VBR && vbrBias > 0 {
			cost += int64(vbrBias * float64(width) * float64(len(targets)))
		}

		if !haveBest || cost < bestCost {
			haveBest = true
			bestCost = cost
			best = SlotChoice{
				ScaleFactor: sf,
				LengthCode:  lengthCode,
				Width:       width,
				Codes:       codes,
				EndState:    scratch,
				SumSqErr:    sumSq,
			}
		}
		return nil
	}

	if params.Mode == CBR {
		for sf := 0; sf < numScales; sf++ {
			if err := tryCandidate(uint32(sf), 0, params.ResidualBits); err != nil {
				return SlotChoice{}, err
			}
		}
		return best, nil
	}

	for sf := 0; sf < numScales; sf++ {
		for lengthCode := uint32(0); lengthCode < 4; lengthCode++ {
			width := residualWidth(params.ResidualBits, lengthCode)
			if width < 1 || width > 8 {
				continue
			}
			if err := tryCandidate(uint32(sf), lengthCode, width); err != nil {
				return SlotChoice{}, err
			}
		}
	}
	return best, nil
}
