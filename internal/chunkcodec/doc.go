// ABOUTME: Encodes and decodes one fixed-size SEA chunk
// ABOUTME: Shares the LMS predictor and DQT tables with the rate selector
// Package chunkcodec implements spec.md §§4.4-4.5: parsing and building a
// chunk's LMS header, packed scale factors, optional VBR residual-length
// codes, and packed residuals, plus the trial-quantization rate selector
// that picks per-slot scale factors (and, in VBR, residual widths).
//
// The package is purely synchronous and holds no state of its own beyond
// what callers pass in: LMS state flows in and out explicitly so a
// caller (pkg/sea's container) owns the single source of truth across
// chunk boundaries.
package chunkcodec
