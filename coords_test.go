package simcore

import "testing"

func TestFloorDivMod_Negative(t *testing.T) {
	cases := []struct {
		a, b, wantQ, wantR int
	}{
		{0, 64, 0, 0},
		{63, 64, 0, 63},
		{64, 64, 1, 0},
		{-1, 64, -1, 63},
		{-64, 64, -1, 0},
		{-65, 64, -2, 63},
	}
	for _, c := range cases {
		q, r := floorDivMod(c.a, c.b)
		if q != c.wantQ || r != c.wantR {
			t.Errorf("floorDivMod(%d,%d) = (%d,%d), want (%d,%d)", c.a, c.b, q, r, c.wantQ, c.wantR)
		}
		if r < 0 || r >= c.b {
			t.Errorf("floorDivMod(%d,%d) remainder %d out of [0,%d)", c.a, c.b, r, c.b)
		}
	}
}

func TestWorldToChunk_NegativeCoordinates(t *testing.T) {
	cc, lx, ly := worldToChunk(-1, -1, 64)
	if cc.X != -1 || cc.Y != -1 {
		t.Fatalf("expected chunk (-1,-1), got (%d,%d)", cc.X, cc.Y)
	}
	if lx != 63 || ly != 63 {
		t.Fatalf("expected local (63,63), got (%d,%d)", lx, ly)
	}
}

func TestChebyshevDist(t *testing.T) {
	a := ChunkCoord{X: 0, Y: 0}
	b := ChunkCoord{X: 3, Y: -5}
	if d := chebyshevDist(a, b); d != 5 {
		t.Fatalf("expected 5, got %d", d)
	}
}
