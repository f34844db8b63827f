package simcore

// dirtyRect is the minimal local bounding rectangle of pixels mutated
// since the last clear. MinX > MaxX marks "nothing dirty yet".
type dirtyRect struct {
	MinX, MinY, MaxX, MaxY int
}

func emptyDirtyRect() dirtyRect {
	return dirtyRect{MinX: 1 << 30, MinY: 1 << 30, MaxX: -(1 << 30), MaxY: -(1 << 30)}
}

func (r dirtyRect) isEmpty() bool { return r.MinX > r.MaxX }

func (r *dirtyRect) expand(x, y int) {
	if x < r.MinX {
		r.MinX = x
	}
	if y < r.MinY {
		r.MinY = y
	}
	if x > r.MaxX {
		r.MaxX = x
	}
	if y > r.MaxY {
		r.MaxY = y
	}
}

// Chunk is a fixed-size pixel array plus the three coarse scalar fields
// (temperature, pressure, electrical potential) that span an 8x8 block of
// pixels each. Coordinates (Cx, Cy) are in chunk space.
type Chunk struct {
	Cx, Cy int
	size   int
	coarse int

	pixels []Pixel // size*size, row-major

	temperature []float64 // (size/coarse)^2
	pressure    []float64
	potential   []float64

	dirty     bool
	dirtyRect dirtyRect

	active bool
}

func NewChunk(cx, cy, size, coarseCellSize int, ambientTemp float64) *Chunk {
	coarseN := size / coarseCellSize
	c := &Chunk{
		Cx: cx, Cy: cy,
		size:      size,
		coarse:    coarseCellSize,
		pixels:    make([]Pixel, size*size),
		temperature: make([]float64, coarseN*coarseN),
		pressure:    make([]float64, coarseN*coarseN),
		potential:   make([]float64, coarseN*coarseN),
		dirtyRect:   emptyDirtyRect(),
	}
	for i := range c.temperature {
		c.temperature[i] = ambientTemp
		c.pressure[i] = 1.0
	}
	return c
}

func (c *Chunk) Size() int { return c.size }

func (c *Chunk) Coord() ChunkCoord { return ChunkCoord{X: c.Cx, Y: c.Cy} }

func (c *Chunk) inBounds(lx, ly int) bool {
	return lx >= 0 && lx < c.size && ly >= 0 && ly < c.size
}

func (c *Chunk) index(lx, ly int) int { return ly*c.size + lx }

func (c *Chunk) GetPixel(lx, ly int) Pixel {
	if !c.inBounds(lx, ly) {
		return EmptyPixel()
	}
	return c.pixels[c.index(lx, ly)]
}

// SetPixel writes a full pixel record and expands the dirty rect. Out-of-
// bounds writes are silently ignored, matching the "no panics" policy.
func (c *Chunk) SetPixel(lx, ly int, p Pixel) {
	if !c.inBounds(lx, ly) {
		return
	}
	c.pixels[c.index(lx, ly)] = p
	c.markDirty(lx, ly)
}

// SetMaterial writes a pixel with the given material and zeroed flags.
func (c *Chunk) SetMaterial(lx, ly int, id MaterialId) {
	c.SetPixel(lx, ly, Pixel{Material: id})
}

// Swap exchanges two cells and marks both dirty. Used by CA moves.
func (c *Chunk) Swap(lx1, ly1, lx2, ly2 int) {
	if !c.inBounds(lx1, ly1) || !c.inBounds(lx2, ly2) {
		return
	}
	i1, i2 := c.index(lx1, ly1), c.index(lx2, ly2)
	c.pixels[i1], c.pixels[i2] = c.pixels[i2], c.pixels[i1]
	c.markDirty(lx1, ly1)
	c.markDirty(lx2, ly2)
}

func (c *Chunk) markDirty(lx, ly int) {
	c.dirty = true
	c.dirtyRect.expand(lx, ly)
}

func (c *Chunk) ClearUpdateFlags() {
	for i := range c.pixels {
		c.pixels[i].Flags = c.pixels[i].Flags.Clear(FlagUpdatedThisFrame)
	}
}

func (c *Chunk) ClearDirtyRect() {
	c.dirty = false
	c.dirtyRect = emptyDirtyRect()
}

func (c *Chunk) IsDirty() bool { return c.dirty }

func (c *Chunk) DirtyRect() (minX, minY, maxX, maxY int, ok bool) {
	if c.dirtyRect.isEmpty() {
		return 0, 0, 0, 0, false
	}
	return c.dirtyRect.MinX, c.dirtyRect.MinY, c.dirtyRect.MaxX, c.dirtyRect.MaxY, true
}

func (c *Chunk) coarseIndex(lx, ly int) int {
	cx, cy := lx/c.coarse, ly/c.coarse
	n := c.size / c.coarse
	return cy*n + cx
}

func (c *Chunk) Temperature(lx, ly int) float64 {
	if !c.inBounds(lx, ly) {
		return 0
	}
	return c.temperature[c.coarseIndex(lx, ly)]
}

func (c *Chunk) SetTemperature(lx, ly int, v float64) {
	if !c.inBounds(lx, ly) {
		return
	}
	c.temperature[c.coarseIndex(lx, ly)] = v
}

func (c *Chunk) Potential(lx, ly int) float64 {
	if !c.inBounds(lx, ly) {
		return 0
	}
	return c.potential[c.coarseIndex(lx, ly)]
}

func (c *Chunk) SetPotential(lx, ly int, v float64) {
	if !c.inBounds(lx, ly) {
		return
	}
	c.potential[c.coarseIndex(lx, ly)] = v
}

func (c *Chunk) Pressure(lx, ly int) float64 {
	if !c.inBounds(lx, ly) {
		return 1.0
	}
	return c.pressure[c.coarseIndex(lx, ly)]
}

func (c *Chunk) coarseSide() int { return c.size / c.coarse }

func (c *Chunk) SetActive(active bool) { c.active = active }
func (c *Chunk) IsActive() bool        { return c.active }
