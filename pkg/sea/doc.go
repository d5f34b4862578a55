// ABOUTME: Public SEA codec API: container encode/decode, params, metadata
// ABOUTME: Wraps internal/chunkcodec, internal/lms, internal/dqt per spec.md §6
// Package sea implements the SEA (Simple Embedded Audio Codec) file format:
// a header, a `key=value` metadata blob, and a sequence of fixed-size
// chunks, each independently bitpacked by internal/chunkcodec.
//
//	data, err := sea.Encode(samples, 44100, 1, sea.ParamsForQuality(4, sea.CBR), "")
//	result, err := sea.Decode(data)
//
// Encode and Decode are synchronous and hold no state beyond one call;
// Decoder exposes chunk-at-a-time streaming for callers reading from a
// live source that hasn't finished arriving yet.
package sea
