// ABOUTME: Golden-vector and wire round-trip tests for the LMS predictor
// ABOUTME: Vectors are plain integer arithmetic, reproducible by hand
package lms

import "testing"

func TestPredictUpdateGolden(t *testing.T) {
	s := &State{Weights: [Taps]int32{0, 0, -8192, 16384}}

	type step struct {
		wantPredict          int32
		reconstructed, deq   int32
		wantHistory, wantWts [Taps]int32
	}
	steps := []step{
		{0, 100, 250, [4]int32{0, 0, 0, 100}, [4]int32{15, 15, -8177, 16399}},
		{200, -50, -80, [4]int32{0, 0, 100, -50}, [4]int32{10, 10, -8182, 16394}},
		{-200, 30, 64, [4]int32{0, 100, -50, 30}, [4]int32{14, 14, -8178, 16390}},
	}

	for i, st := range steps {
		got := s.Predict()
		if got != st.wantPredict {
			t.Fatalf("step %d: Predict() = %d, want %d", i, got, st.wantPredict)
		}
		s.Update(st.reconstructed, st.deq)
		if s.History != st.wantHistory {
			t.Fatalf("step %d: history = %v, want %v", i, s.History, st.wantHistory)
		}
		if s.Weights != st.wantWts {
			t.Fatalf("step %d: weights = %v, want %v", i, s.Weights, st.wantWts)
		}
	}
}

func TestWireRoundTrip(t *testing.T) {
	s := &State{
		History: [Taps]int32{-1, 2, -3, 4},
		Weights: [Taps]int32{100, -200, 300, -400},
	}
	h, w := s.EncodeWire()

	var restored State
	restored.DecodeWire(h, w)
	if restored != *s {
		t.Fatalf("round trip mismatch: got %+v, want %+v", restored, *s)
	}
}

func TestClampInt16(t *testing.T) {
	cases := []struct {
		in   int32
		want int16
	}{
		{0, 0},
		{32767, 32767},
		{32768, 32767},
		{100000, 32767},
		{-32768, -32768},
		{-32769, -32768},
		{-100000, -32768},
	}
	for _, c := range cases {
		if got := ClampInt16(c.in); got != c.want {
			t.Errorf("ClampInt16(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := State{History: [Taps]int32{1, 2, 3, 4}, Weights: [Taps]int32{5, 6, 7, 8}}
	clone := s.Clone()
	clone.History[0] = 99
	if s.History[0] == 99 {
		t.Error("mutating the clone affected the original")
	}
}

func TestZeroStateStaysZero(t *testing.T) {
	// Silence is a fixed point: predicting and updating on an
	// all-zero stream must never leave the zero state.
	s := &State{}
	for i := 0; i < 100; i++ {
		p := s.Predict()
		if p != 0 {
			t.Fatalf("iteration %d: predict() = %d, want 0", i, p)
		}
		s.Update(0, 0)
	}
	if *s != (State{}) {
		t.Fatalf("state drifted from zero: %+v", s)
	}
}
