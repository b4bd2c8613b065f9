package twiddle

import "testing"

func TestSpread(t *testing.T) {
	cases := []struct {
		in, want uint32
	}{
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 5},
		{0xF, 0x55},
		{0xFF, 0x5555},
		{0xFFFF, 0x55555555},
	}
	for _, c := range cases {
		if got := Spread(c.in); got != c.want {
			t.Errorf("Spread(%#x) = %#x, want %#x", c.in, got, c.want)
		}
	}
}

func TestInterleaveKnownValues(t *testing.T) {
	cases := []struct {
		x, y, want uint32
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 2},
		{1, 1, 3},
		{0, 2, 4},
		{2, 0, 8},
		{3, 3, 15},
	}
	for _, c := range cases {
		if got := Interleave(c.x, c.y); got != c.want {
			t.Errorf("Interleave(%d, %d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestInterleaveIsBijectionOverSquare(t *testing.T) {
	for _, n := range []uint32{1, 2, 8, 32, 256} {
		seen := make([]bool, n*n)
		for y := uint32(0); y < n; y++ {
			for x := uint32(0); x < n; x++ {
				idx := Interleave(x, y)
				if idx >= n*n {
					t.Fatalf("n=%d: Interleave(%d, %d) = %d out of range", n, x, y, idx)
				}
				if seen[idx] {
					t.Fatalf("n=%d: Interleave(%d, %d) = %d already produced", n, x, y, idx)
				}
				seen[idx] = true
			}
		}
		for i, ok := range seen {
			if !ok {
				t.Fatalf("n=%d: index %d never produced", n, i)
			}
		}
	}
}
