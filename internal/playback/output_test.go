// ABOUTME: Audio output interface tests
// ABOUTME: Verifies Output interface implementation and volume scaling
package playback

import "testing"

func TestOtoImplementsOutput(t *testing.T) {
	var _ Output = (*Oto)(nil)
}

func TestNewOto(t *testing.T) {
	out := NewOto()
	if out == nil {
		t.Fatal("NewOto returned nil")
	}
}

func TestApplyVolumeFullScale(t *testing.T) {
	samples := []int16{32767, -32768, 0, 1000}
	out := applyVolume(samples, 100)
	for i, s := range samples {
		if out[i] != s {
			t.Errorf("volume 100 should be a no-op: got %d, want %d", out[i], s)
		}
	}
}

func TestApplyVolumeHalf(t *testing.T) {
	out := applyVolume([]int16{1000, -1000}, 50)
	if out[0] != 500 || out[1] != -500 {
		t.Errorf("expected half volume to halve samples, got %v", out)
	}
}

func TestApplyVolumeMute(t *testing.T) {
	out := applyVolume([]int16{32767, -32768}, 0)
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("expected volume 0 to silence output, got %v", out)
	}
}
