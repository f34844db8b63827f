package simcore

import "math"

// Offset is a relative (dx, dy) displacement in world pixels.
type Offset struct{ Dx, Dy int }

// Neighbors8 lists the 8 neighbor offsets in NW, N, NE, W, E, SW, S, SE
// order, matching the glossary's canonical order. World y grows upward
// (down is dy=-1), so the north row is dy=+1.
var Neighbors8 = [8]Offset{
	{-1, 1}, {0, 1}, {1, 1},
	{-1, 0} /*    */, {1, 0},
	{-1, -1}, {0, -1}, {1, -1},
}

// Neighbors4 lists the 4 orthogonal neighbor offsets in S, E, N, W order.
var Neighbors4 = [4]Offset{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
}

// Neighbor8Pixels gathers the 8-neighborhood of (wx, wy). Missing chunks
// contribute no entry (callers must treat absence as "unknown", not air).
func Neighbor8Pixels(m *ChunkManager, wx, wy int) []struct {
	Offset
	Pixel Pixel
} {
	out := make([]struct {
		Offset
		Pixel Pixel
	}, 0, 8)
	for _, off := range Neighbors8 {
		if p, ok := m.GetPixel(wx+off.Dx, wy+off.Dy); ok {
			out = append(out, struct {
				Offset
				Pixel Pixel
			}{off, p})
		}
	}
	return out
}

// Neighbor4Pixels gathers the 4-connected neighborhood, S/E/N/W order.
func Neighbor4Pixels(m *ChunkManager, wx, wy int) []struct {
	Offset
	Pixel Pixel
} {
	out := make([]struct {
		Offset
		Pixel Pixel
	}, 0, 4)
	for _, off := range Neighbors4 {
		if p, ok := m.GetPixel(wx+off.Dx, wy+off.Dy); ok {
			out = append(out, struct {
				Offset
				Pixel Pixel
			}{off, p})
		}
	}
	return out
}

// RadialPixels gathers every loaded pixel within Euclidean radius r of
// (wx, wy), inclusive of the center.
func RadialPixels(m *ChunkManager, wx, wy int, radius float64) []struct {
	Offset
	Pixel Pixel
} {
	r := int(math.Ceil(radius))
	out := make([]struct {
		Offset
		Pixel Pixel
	}, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if math.Hypot(float64(dx), float64(dy)) > radius {
				continue
			}
			if p, ok := m.GetPixel(wx+dx, wy+dy); ok {
				out = append(out, struct {
					Offset
					Pixel Pixel
				}{Offset{dx, dy}, p})
			}
		}
	}
	return out
}
