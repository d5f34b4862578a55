// ABOUTME: Golden-vector tests pinning DQT construction bit-for-bit
// ABOUTME: Covers the three (sb,rb) pairs spec.md §8 calls out by name
package dqt

import "testing"

func TestBuildGolden_4_3(t *testing.T) {
	tab, err := Build(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	wantSF := []int32{1, 6, 21, 48, 90, 150, 232, 337, 469, 630, 823, 1051, 1315, 1618, 1963, 2352}
	assertInt32Slice(t, "scale_factors", tab.ScaleFactors, wantSF)

	wantRow0 := []int32{1, -1, 3, -3, 5, -5, 7, -7}
	assertInt32Slice(t, "row0", tab.Rows[0], wantRow0)

	wantRowLast := []int32{1764, -1764, 5880, -5880, 10584, -10584, 16464, -16464}
	assertInt32Slice(t, "rowLast", tab.Rows[len(tab.Rows)-1], wantRowLast)

	assertAbsSum(t, tab, 327648)
}

func TestBuildGolden_4_5(t *testing.T) {
	tab, err := Build(4, 5)
	if err != nil {
		t.Fatal(err)
	}
	wantSF := []int32{1, 5, 14, 28, 48, 75, 108, 150, 199, 257, 323, 398, 483, 578, 682, 797}
	assertInt32Slice(t, "scale_factors", tab.ScaleFactors, wantSF)

	wantRow0 := []int32{1, -1, 3, -3, 5, -5, 7, -7, 9, -9, 11, -11, 13, -13, 15, -15,
		17, -17, 19, -19, 21, -21, 23, -23, 25, -25, 27, -27, 29, -29, 31, -31}
	assertInt32Slice(t, "row0", tab.Rows[0], wantRow0)

	assertAbsSum(t, tab, 2062752)
}

func TestBuildGolden_6_8(t *testing.T) {
	tab, err := Build(6, 8)
	if err != nil {
		t.Fatal(err)
	}
	wantSF := []int32{1, 2, 3, 4, 5, 7, 8, 9, 11, 12, 14, 15, 17, 18, 19, 21, 22, 24, 25, 27,
		28, 30, 31, 33, 35, 36, 38, 39, 41, 42, 44, 46, 47, 49, 50, 52, 54, 55, 57, 58, 60, 62,
		63, 65, 67, 68, 70, 72, 73, 75, 77, 78, 80, 82, 83, 85, 87, 88, 90, 92, 93, 95, 97, 99}
	assertInt32Slice(t, "scale_factors", tab.ScaleFactors, wantSF)

	if len(tab.Rows) != 64 {
		t.Fatalf("expected 64 rows, got %d", len(tab.Rows))
	}
	for _, row := range tab.Rows {
		if len(row) != 256 {
			t.Fatalf("expected 256-wide rows, got %d", len(row))
		}
	}

	assertAbsSum(t, tab, 98908044)
}

func TestBuildRejectsOutOfRange(t *testing.T) {
	if _, err := Build(0, 3); err == nil {
		t.Error("expected error for sb=0")
	}
	if _, err := Build(16, 3); err == nil {
		t.Error("expected error for sb=16")
	}
	if _, err := Build(4, 0); err == nil {
		t.Error("expected error for rb=0")
	}
	if _, err := Build(4, 9); err == nil {
		t.Error("expected error for rb=9")
	}
}

func TestRowSignSymmetry(t *testing.T) {
	tab, err := Build(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for s, row := range tab.Rows {
		for q := 0; q < len(row)/2; q++ {
			if row[2*q] != -row[2*q+1] {
				t.Fatalf("row %d: code %d (%d) and %d (%d) are not sign-symmetric", s, 2*q, row[2*q], 2*q+1, row[2*q+1])
			}
		}
	}
}

func TestCacheMemoizesSameInstance(t *testing.T) {
	c := NewCache()
	a, err := c.Get(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Get(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected Cache.Get to return the same *Table on repeated calls")
	}
}

func assertInt32Slice(t *testing.T, name string, got, want []int32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s[%d] = %d, want %d", name, i, got[i], want[i])
		}
	}
}

func assertAbsSum(t *testing.T, tab *Table, want int64) {
	t.Helper()
	var sum int64
	for _, row := range tab.Rows {
		for _, v := range row {
			if v < 0 {
				sum -= int64(v)
			} else {
				sum += int64(v)
			}
		}
	}
	if sum != want {
		t.Fatalf("abs-sum of all dqt entries = %d, want %d", sum, want)
	}
}
