// ABOUTME: Four-tap sign-LMS predictor, one instance per audio channel
// ABOUTME: Ported from the same sign-sign-LMS filter used by QOA
// Package lms implements the predictor from spec.md §4.3: a four-tap
// linear predictor whose weights are updated every sample using only the
// sign of the corresponding history entry and the magnitude of the
// dequantized residual.
package lms
