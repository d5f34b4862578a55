// ABOUTME: Dequantization table construction shared by encoder and decoder
// ABOUTME: Bit-exact float32 table generation, memoized by (sb, rb)
// Package dqt builds the scale-factor and dequantization tables that map
// (scale_factor_bits, residual_bits) pairs to a signed integer residual
// lookup, per spec.md §4.2.
//
// All generation uses IEEE-754 float32 arithmetic and round-half-away-
// from-zero for the final rounding step; this must reproduce identical
// bytes on every platform; see table_test.go for golden vectors.
package dqt
