package simcore

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// IsSolidAt reports whether the pixel at (wx, wy) blocks entity collision.
// Out-of-bounds (unloaded chunk) returns true, so falling chunks and
// physics bodies never wander into unloaded space (§4.10).
func IsSolidAt(m *ChunkManager, reg *Registry, wx, wy int) bool {
	p, ok := m.GetPixel(wx, wy)
	if !ok {
		return true
	}
	return reg.IsSolidClass(p.Material)
}

// RectCollides samples the 4 corners and 4 edge midpoints of a rectangle
// centered at (cx, cy) with half-extents (hw, hh), shrunk by a 0.5-pixel
// tolerance, and reports whether any sample is solid.
func RectCollides(m *ChunkManager, reg *Registry, cx, cy, hw, hh float64) bool {
	hw -= 0.5
	hh -= 0.5
	if hw < 0 {
		hw = 0
	}
	if hh < 0 {
		hh = 0
	}
	samples := [8][2]float64{
		{cx - hw, cy - hh}, {cx + hw, cy - hh}, {cx - hw, cy + hh}, {cx + hw, cy + hh},
		{cx, cy - hh}, {cx, cy + hh}, {cx - hw, cy}, {cx + hw, cy},
	}
	for _, s := range samples {
		if IsSolidAt(m, reg, int(s[0]), int(s[1])) {
			return true
		}
	}
	return false
}

// CircleCollides samples the center plus 8 points around the circle at
// 45-degree increments.
func CircleCollides(m *ChunkManager, reg *Registry, cx, cy, radius float64) bool {
	if IsSolidAt(m, reg, int(cx), int(cy)) {
		return true
	}
	for i := 0; i < 8; i++ {
		angle := float64(i) * (math.Pi / 4)
		sx := cx + radius*math.Cos(angle)
		sy := cy + radius*math.Sin(angle)
		if IsSolidAt(m, reg, int(sx), int(sy)) {
			return true
		}
	}
	return false
}

// Grounded samples 3 points just below a body's feet: center, and a
// quarter-width to either side.
func Grounded(m *ChunkManager, reg *Registry, cx, cy, w, h float64) bool {
	footY := cy - h/2 - 1.5
	for _, sx := range []float64{cx - w/4, cx, cx + w/4} {
		if IsSolidAt(m, reg, int(sx), int(footY)) {
			return true
		}
	}
	return false
}

// RaycastHit is the result of a successful raycast.
type RaycastHit struct {
	X, Y     int
	Material MaterialId
}

// Raycast walks a Bresenham line from `from` in direction `dir` (need not
// be normalized) for up to maxDistance pixels, and returns the first
// non-air pixel hit.
func Raycast(m *ChunkManager, from mgl32.Vec2, dir mgl32.Vec2, maxDistance float64) (RaycastHit, bool) {
	return raycastFrom(m, from, dir, 0, maxDistance, nil)
}

// RaycastFiltered behaves like Raycast but starts `radiusOffset` pixels
// along the direction and only reports a hit whose material class equals
// allowed.
func RaycastFiltered(m *ChunkManager, reg *Registry, from mgl32.Vec2, dir mgl32.Vec2, radiusOffset, maxDistance float64, allowed MaterialClass) (RaycastHit, bool) {
	filter := func(id MaterialId) bool {
		d, ok := reg.Get(id)
		return ok && d.Class == allowed
	}
	return raycastFrom(m, from, dir, radiusOffset, maxDistance, filter)
}

func raycastFrom(m *ChunkManager, from, dir mgl32.Vec2, radiusOffset, maxDistance float64, filter func(MaterialId) bool) (RaycastHit, bool) {
	if dir.Len() == 0 {
		return RaycastHit{}, false
	}
	d := dir.Normalize()
	start := from.Add(d.Mul(float32(radiusOffset)))
	end := from.Add(d.Mul(float32(maxDistance)))

	x0, y0 := int(start.X()), int(start.Y())
	x1, y1 := int(end.X()), int(end.Y())

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		p, ok := m.GetPixel(x, y)
		if ok && !p.IsEmpty() {
			if filter == nil || filter(p.Material) {
				return RaycastHit{X: x, Y: y, Material: p.Material}, true
			}
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return RaycastHit{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
