package chunkcodec

import (
	"testing"

	"github.com/seacodec/sea-go/internal/dqt"
	"github.com/seacodec/sea-go/internal/lms"
)

func zeroStates(channels int) []lms.State {
	return make([]lms.State, channels)
}

func squareWave(frames, channels int, amplitude int16, period int) []int16 {
	samples := make([]int16, frames*channels)
	for f := 0; f < frames; f++ {
		v := amplitude
		if (f/period)%2 == 1 {
			v = -amplitude
		}
		for c := 0; c < channels; c++ {
			samples[f*channels+c] = v
		}
	}
	return samples
}

func TestEncodeDecodeRoundTripCBRSilence(t *testing.T) {
	const channels, frames = 2, 64
	samples := make([]int16, frames*channels)
	params := Params{Mode: CBR, ScaleFactorBits: 4, ResidualBits: 4, ScaleFactorFrames: 16}
	cache := dqt.NewCache()

	res, err := Encode(samples, channels, frames, zeroStates(channels), params, 0, cache, 512)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, _, err := Decode(res.Bytes, channels, frames, zeroStates(channels), cache)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, s := range decoded {
		if s != 0 {
			t.Fatalf("sample %d: want silence, got %d", i, s)
		}
	}
}

func TestEncodeDecodeRoundTripCBRSquareWave(t *testing.T) {
	const channels, frames = 1, 128
	samples := squareWave(frames, channels, 10000, 17)
	params := Params{Mode: CBR, ScaleFactorBits: 5, ResidualBits: 6, ScaleFactorFrames: 32}
	cache := dqt.NewCache()

	res, err := Encode(samples, channels, frames, zeroStates(channels), params, 0, cache, 4096)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, _, err := Decode(res.Bytes, channels, frames, zeroStates(channels), cache)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != len(samples) {
		t.Fatalf("length mismatch: got %d want %d", len(decoded), len(samples))
	}

	var sumSq int64
	for i := range samples {
		diff := int64(samples[i]) - int64(decoded[i])
		sumSq += diff * diff
	}
	mean := float64(sumSq) / float64(len(samples))
	if mean > 4_000_000 {
		t.Fatalf("reconstruction error too large: mean sq err %f", mean)
	}
}

func TestEncodeDecodeRoundTripVBR(t *testing.T) {
	const channels, frames = 2, 96
	samples := squareWave(frames, channels, 5000, 9)
	params := Params{Mode: VBR, ScaleFactorBits: 4, ResidualBits: 5, ScaleFactorFrames: 24}
	cache := dqt.NewCache()

	res, err := Encode(samples, channels, frames, zeroStates(channels), params, 1.0, cache, 4096)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, endStates, err := Decode(res.Bytes, channels, frames, zeroStates(channels), cache)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != len(samples) {
		t.Fatalf("length mismatch: got %d want %d", len(decoded), len(samples))
	}
	for c := 0; c < channels; c++ {
		if endStates[c] != res.EndStates[c] {
			t.Fatalf("channel %d: decode end state %+v != encode end state %+v", c, endStates[c], res.EndStates[c])
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	const channels, frames = 1, 80
	samples := squareWave(frames, channels, 8000, 13)
	params := Params{Mode: VBR, ScaleFactorBits: 4, ResidualBits: 4, ScaleFactorFrames: 20}
	cache := dqt.NewCache()

	a, err := Encode(samples, channels, frames, zeroStates(channels), params, 0.5, cache, 2048)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(samples, channels, frames, zeroStates(channels), params, 0.5, cache, 2048)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(a.Bytes) != len(b.Bytes) {
		t.Fatalf("length differs between runs")
	}
	for i := range a.Bytes {
		if a.Bytes[i] != b.Bytes[i] {
			t.Fatalf("byte %d differs between deterministic runs: %d vs %d", i, a.Bytes[i], b.Bytes[i])
		}
	}
}

func TestEncodeOverflowTooSmallChunk(t *testing.T) {
	const channels, frames = 2, 256
	samples := squareWave(frames, channels, 12000, 5)
	params := Params{Mode: CBR, ScaleFactorBits: 5, ResidualBits: 8, ScaleFactorFrames: 16}
	cache := dqt.NewCache()

	_, err := Encode(samples, channels, frames, zeroStates(channels), params, 0, cache, 8)
	if err != ErrEncodeOverflow {
		t.Fatalf("want ErrEncodeOverflow, got %v", err)
	}
}

func TestDecodeRejectsBadReserved(t *testing.T) {
	const channels, frames = 1, 16
	params := Params{Mode: CBR, ScaleFactorBits: 4, ResidualBits: 4, ScaleFactorFrames: 16}
	cache := dqt.NewCache()

	res, err := Encode(make([]int16, frames*channels), channels, frames, zeroStates(channels), params, 0, cache, 256)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	res.Bytes[3] = 0x00

	if _, _, err := Decode(res.Bytes, channels, frames, zeroStates(channels), cache); err != ErrBadReserved {
		t.Fatalf("want ErrBadReserved, got %v", err)
	}
}

func TestDecodeRejectsBadChunkType(t *testing.T) {
	const channels, frames = 1, 16
	params := Params{Mode: CBR, ScaleFactorBits: 4, ResidualBits: 4, ScaleFactorFrames: 16}
	cache := dqt.NewCache()

	res, err := Encode(make([]int16, frames*channels), channels, frames, zeroStates(channels), params, 0, cache, 256)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	res.Bytes[0] = 0x03

	if _, _, err := Decode(res.Bytes, channels, frames, zeroStates(channels), cache); err != ErrBadChunkType {
		t.Fatalf("want ErrBadChunkType, got %v", err)
	}
}

func TestEncodeDecodeCarriesStateAcrossChunks(t *testing.T) {
	const channels, frames = 1, 32
	params := Params{Mode: CBR, ScaleFactorBits: 4, ResidualBits: 5, ScaleFactorFrames: 16}
	cache := dqt.NewCache()

	chunk1 := squareWave(frames, channels, 6000, 7)
	chunk2 := squareWave(frames, channels, 6000, 11)

	encState := zeroStates(channels)
	res1, err := Encode(chunk1, channels, frames, encState, params, 0, cache, 512)
	if err != nil {
		t.Fatalf("Encode chunk1: %v", err)
	}
	res2, err := Encode(chunk2, channels, frames, res1.EndStates, params, 0, cache, 512)
	if err != nil {
		t.Fatalf("Encode chunk2: %v", err)
	}

	decState := zeroStates(channels)
	_, decState, err = Decode(res1.Bytes, channels, frames, decState, cache)
	if err != nil {
		t.Fatalf("Decode chunk1: %v", err)
	}
	decoded2, _, err := Decode(res2.Bytes, channels, frames, decState, cache)
	if err != nil {
		t.Fatalf("Decode chunk2: %v", err)
	}
	if len(decoded2) != len(chunk2) {
		t.Fatalf("length mismatch on chunk2")
	}
}
