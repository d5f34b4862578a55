// ABOUTME: Builds scale-factor and dequantization tables from (sb, rb)
// ABOUTME: All arithmetic is float32 to match the golden vectors bit-for-bit
package dqt

import (
	"fmt"
	"math"
	"sync"
)

// idealPow is IDEAL_POW from spec.md §4.2, indexed by residual_bits-1.
var idealPow = [8]float32{12.0, 11.65, 11.20, 10.58, 9.64, 8.75, 7.66, 6.63}

// Table holds the dequantization tables for one (scale_factor_bits,
// residual_bits) pair.
//
// ScaleFactors has 2^sb entries. Rows has 2^sb entries, each 2^rb wide;
// Rows[s][q] is the signed dequantized residual for scale-factor index s
// and residual code q.
type Table struct {
	ScaleFactorBits uint8
	ResidualBits    uint8
	ScaleFactors    []int32
	Rows            [][]int32
}

// Build constructs a Table for the given bit widths. sb must be in
// [1,15], rb in [1,8].
func Build(sb, rb uint8) (*Table, error) {
	if sb < 1 || sb > 15 {
		return nil, fmt.Errorf("dqt: scale_factor_bits %d out of range [1,15]", sb)
	}
	if rb < 1 || rb > 8 {
		return nil, fmt.Errorf("dqt: residual_bits %d out of range [1,8]", rb)
	}

	numScales := 1 << sb
	powerFactor := idealPow[rb-1] / float32(sb)

	scaleFactors := make([]int32, numScales)
	for i := 0; i < numScales; i++ {
		scaleFactors[i] = int32(pow32(float32(i+1), powerFactor))
	}

	base := buildBaseLevels(rb)
	rows := make([][]int32, numScales)
	for s := 0; s < numScales; s++ {
		row := make([]int32, 1<<rb)
		sf := float32(scaleFactors[s])
		for q, b := range base {
			val := int32(roundHalfAwayFromZero(sf * b))
			row[2*q] = val
			row[2*q+1] = -val
		}
		rows[s] = row
	}

	return &Table{
		ScaleFactorBits: sb,
		ResidualBits:    rb,
		ScaleFactors:    scaleFactors,
		Rows:            rows,
	}, nil
}

// buildBaseLevels returns base[0..2^(rb-1)) per spec.md §4.2 step 4.
func buildBaseLevels(rb uint8) []float32 {
	half := 1 << (rb - 1)
	base := make([]float32, half)

	switch {
	case rb == 1:
		base[0] = 2.0
	case rb == 2:
		base[0] = 1.115
		base[1] = 4.0
	default:
		shifted := 1 << rb
		end := float32(shifted - 1)
		base[0] = 0.75
		step := floor32((end - 0.75) / float32(half-1))
		for i := 1; i < half-1; i++ {
			base[i] = 0.5 + float32(i)*step
		}
		base[half-1] = end
	}
	return base
}

// pow32 computes x**y, rounding the double-precision result to float32 —
// Go has no native float32 Pow, so this is the idiomatic stand-in used
// when porting single-precision C table generators.
func pow32(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

func floor32(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// roundHalfAwayFromZero rounds x to the nearest integer, ties away from
// zero, in float32 precision.
func roundHalfAwayFromZero(x float32) float32 {
	if x >= 0 {
		return floor32(x + 0.5)
	}
	return -floor32(-x + 0.5)
}

// Cache memoizes Tables by (scale_factor_bits, residual_bits). It is
// owned by a single encoder or decoder instance — there is no package-
// level shared state.
type Cache struct {
	mu     sync.Mutex
	tables map[cacheKey]*Table
}

type cacheKey struct {
	sb, rb uint8
}

// NewCache returns an empty, ready-to-use Cache.
func NewCache() *Cache {
	return &Cache{tables: make(map[cacheKey]*Table)}
}

// Get returns the Table for (sb, rb), building and memoizing it on first
// use.
func (c *Cache) Get(sb, rb uint8) (*Table, error) {
	key := cacheKey{sb, rb}

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.tables[key]; ok {
		return t, nil
	}
	t, err := Build(sb, rb)
	if err != nil {
		return nil, err
	}
	c.tables[key] = t
	return t, nil
}
