// ABOUTME: Fixed-width MSB-first bit packing for the SEA chunk format
// ABOUTME: Provides Writer/Reader pairs plus one-shot Pack/Unpack helpers
// Package bitio packs and unpacks fixed-width (1-8 bit) integer fields into
// a byte stream, most-significant-bit first within each byte.
//
// Within a byte, bit 7 is written first and bit 0 last. Across bytes,
// fields are written left to right. A final partially-filled byte is
// zero-padded on the low end. This ordering is part of the SEA wire
// format and must not change: golden vectors in bitio_test.go pin it.
package bitio
