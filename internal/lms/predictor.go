// ABOUTME: Predictor state, prediction, and sign-based weight update
// ABOUTME: All arithmetic is at least 32-bit signed per spec.md §4.3
package lms

// Taps is the number of history/weight entries the predictor tracks.
const Taps = 4

// State is one channel's predictor state: four history samples (oldest
// first, newest at index Taps-1) and four weights. Computation uses
// int32 intermediates; only the wire/header encoding narrows to int16.
type State struct {
	History [Taps]int32
	Weights [Taps]int32
}

// Predict returns the next predicted sample from the current state.
func (s *State) Predict() int32 {
	var sum int64
	for i := 0; i < Taps; i++ {
		sum += int64(s.Weights[i]) * int64(s.History[i])
	}
	return int32(sum >> 13)
}

// Update adjusts the weights from the sign of each history entry and the
// magnitude of the dequantized residual, then slides reconstructed into
// the history.
func (s *State) Update(reconstructed, dequantized int32) {
	delta := dequantized >> 4
	for i := 0; i < Taps; i++ {
		if s.History[i] < 0 {
			s.Weights[i] -= delta
		} else {
			s.Weights[i] += delta
		}
	}
	for i := 0; i < Taps-1; i++ {
		s.History[i] = s.History[i+1]
	}
	s.History[Taps-1] = reconstructed
}

// Clone returns an independent copy, used by the rate selector to trial
// candidates without mutating the committed channel state.
func (s *State) Clone() State {
	return *s
}

// EncodeWire narrows the state to the 8 int16 values (4 history, 4
// weights) stored in a chunk header.
func (s *State) EncodeWire() (history, weights [Taps]int16) {
	for i := 0; i < Taps; i++ {
		history[i] = int16(s.History[i])
		weights[i] = int16(s.Weights[i])
	}
	return
}

// DecodeWire overwrites the state from the 8 int16 values read out of a
// chunk header.
func (s *State) DecodeWire(history, weights [Taps]int16) {
	for i := 0; i < Taps; i++ {
		s.History[i] = int32(history[i])
		s.Weights[i] = int32(weights[i])
	}
}

// ClampInt16 clamps x to the signed 16-bit range, per spec.md §4.4.
func ClampInt16(x int32) int16 {
	if x < -32768 {
		return -32768
	}
	if x > 32767 {
		return 32767
	}
	return int16(x)
}
