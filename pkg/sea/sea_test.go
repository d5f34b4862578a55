package sea

import (
	"bytes"
	"io"
	"math"
	"math/rand"
	"testing"
)

func psnr(original, decoded []int16) float64 {
	var sumSq float64
	for i := range original {
		diff := float64(original[i]) - float64(decoded[i])
		sumSq += diff * diff
	}
	mse := sumSq / float64(len(original))
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10((32767.0*32767.0)/mse)
}

func squareWave(frames int, amplitude int16, freqHz, sampleRate int) []int16 {
	samples := make([]int16, frames)
	period := sampleRate / freqHz
	for i := 0; i < frames; i++ {
		if (i/period)%2 == 0 {
			samples[i] = amplitude
		} else {
			samples[i] = -amplitude
		}
	}
	return samples
}

func whiteNoise(frames, channels int, seed int64) []int16 {
	r := rand.New(rand.NewSource(seed))
	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = int16(r.Intn(65536) - 32768)
	}
	return samples
}

func TestEncodeDecodeSilence(t *testing.T) {
	samples := make([]int16, 44100)
	params := EncodeParams{Mode: CBR, ResidualBits: 3, ScaleFactorBits: 4, FramesPerChunk: 5120, ScaleFactorFrames: 20}

	data, err := Encode(samples, 44100, 1, params, "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(data) >= len(samples)*2 {
		t.Fatalf("expected compression: got %d bytes for %d samples", len(data), len(samples)*2)
	}

	result, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if int(result.Frames) != len(samples) {
		t.Fatalf("frame count: got %d want %d", result.Frames, len(samples))
	}
	for i, s := range result.Samples {
		if s != 0 {
			t.Fatalf("sample %d: want silence, got %d", i, s)
		}
	}
}

func TestEncodeDecodeSquareWavePSNR(t *testing.T) {
	samples := squareWave(44100, 20000, 1000, 44100)
	params := EncodeParams{Mode: CBR, ResidualBits: 4, ScaleFactorBits: 4, FramesPerChunk: 5120, ScaleFactorFrames: 20}

	data, err := Encode(samples, 44100, 1, params, "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	result, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := psnr(samples, result.Samples)
	if got < 40 {
		t.Fatalf("PSNR too low: got %f dB, want >= 40", got)
	}
}

func TestEncodeDecodeWhiteNoiseStereoRoundTrip(t *testing.T) {
	frames := 44100 * 2
	samples := whiteNoise(frames, 2, 42)
	params := EncodeParams{Mode: CBR, ResidualBits: 6, ScaleFactorBits: 5, FramesPerChunk: 5120, ScaleFactorFrames: 20}

	data, err := Encode(samples, 44100, 2, params, "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	result, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := psnr(samples, result.Samples)
	if got < 50 {
		t.Fatalf("PSNR too low: got %f dB, want >= 50", got)
	}

	reEncoded, err := Encode(result.Samples, 44100, 2, params, "")
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}
	if !bytes.Equal(data, reEncoded) {
		t.Fatalf("re-encode of decoded PCM is not byte-identical")
	}
}

func TestDecodeRejectsBadReservedInFirstChunk(t *testing.T) {
	samples := make([]int16, 1024)
	params := EncodeParams{Mode: CBR, ResidualBits: 4, ScaleFactorBits: 4, FramesPerChunk: 1024, ScaleFactorFrames: 16}

	data, err := Encode(samples, 44100, 1, params, "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data[HeaderSize+3] = 0x00

	if _, err := Decode(data); err != ErrBadReserved {
		t.Fatalf("want ErrBadReserved, got %v", err)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	samples := make([]int16, 1024)
	params := EncodeParams{Mode: CBR, ResidualBits: 4, ScaleFactorBits: 4, FramesPerChunk: 1024, ScaleFactorFrames: 16}

	data, err := Encode(samples, 44100, 1, params, "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data[0] = 'X'

	if _, err := Decode(data); err != ErrBadMagic {
		t.Fatalf("want ErrBadMagic, got %v", err)
	}
}

func TestVBRTargetBpsSineRoundTrip(t *testing.T) {
	frames := 44100 * 2
	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = int16(20000 * math.Sin(2*math.Pi*1000*float64(i)/44100))
	}
	params := EncodeParams{
		Mode:              VBR,
		ResidualBits:      4,
		ScaleFactorBits:   4,
		FramesPerChunk:    5120,
		ScaleFactorFrames: 20,
		VBRTargetBps:      4.0,
	}

	data, err := Encode(samples, 44100, 1, params, "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	result, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	bps := float64(len(data)-HeaderSize) * 8 / float64(frames)
	if bps < 3.7 || bps > 4.3 {
		t.Fatalf("bits per sample out of range: got %f, want 4.0±0.3", bps)
	}

	got := psnr(samples, result.Samples)
	if got < 45 {
		t.Fatalf("PSNR too low: got %f dB, want >= 45", got)
	}
}

func TestStreamingDecoderEOFByTotalFramesZero(t *testing.T) {
	samples := squareWave(44100, 15000, 440, 44100)
	params := EncodeParams{Mode: CBR, ResidualBits: 4, ScaleFactorBits: 4, FramesPerChunk: 5120, ScaleFactorFrames: 20}

	data, err := Encode(samples, 44100, 1, params, "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Rewrite total_frames to 0 to simulate a stream whose length wasn't
	// known up front; the chunk sequence itself is unchanged.
	data[14], data[15], data[16], data[17] = 0, 0, 0, 0

	dec, err := NewDecoder(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	var total int
	for {
		chunkSamples, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		total += len(chunkSamples)
	}
	if total != len(samples) {
		t.Fatalf("streamed frame count: got %d want %d", total, len(samples))
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	fields := map[string]string{"Encoder": "sea-go-test", "Title": "square wave"}
	blob, err := EncodeMetadata(fields)
	if err != nil {
		t.Fatalf("EncodeMetadata: %v", err)
	}

	samples := make([]int16, 256)
	params := EncodeParams{Mode: CBR, ResidualBits: 3, ScaleFactorBits: 4, FramesPerChunk: 256, ScaleFactorFrames: 16}
	data, err := Encode(samples, 44100, 1, params, blob)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	result, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	parsed, err := ParseMetadata(result.Metadata)
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	if parsed["encoder"] != "sea-go-test" {
		t.Fatalf("metadata key lookup is not case-insensitive: got %q", parsed["encoder"])
	}
}

func TestParamsForQuality(t *testing.T) {
	for q := 1; q <= 8; q++ {
		p := ParamsForQuality(q, CBR)
		if p.ResidualBits != uint8(q) {
			t.Fatalf("quality %d: residual_bits = %d, want %d", q, p.ResidualBits, q)
		}
		if err := p.toChunkParams().Validate(); err != nil {
			t.Fatalf("quality %d produced invalid params: %v", q, err)
		}
	}
}
