package simcore

// ChunkManager owns the sparse chunk map and the active-chunk list. All
// world<->chunk coordinate math and chunk lifetime lives here; World
// delegates to it rather than touching the map directly.
type ChunkManager struct {
	chunks map[ChunkCoord]*Chunk
	active map[ChunkCoord]bool

	size        int
	coarseSize  int
	ambientTemp float64

	logger Logger
}

func NewChunkManager(cfg *Config, logger Logger) *ChunkManager {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &ChunkManager{
		chunks:      make(map[ChunkCoord]*Chunk),
		active:      make(map[ChunkCoord]bool),
		size:        cfg.ChunkSize,
		coarseSize:  cfg.CoarseCellSize,
		ambientTemp: cfg.TemperatureAmbient,
		logger:      logger,
	}
}

func (m *ChunkManager) worldToChunk(wx, wy int) (ChunkCoord, int, int) {
	return worldToChunk(wx, wy, m.size)
}

func (m *ChunkManager) HasChunk(cc ChunkCoord) bool {
	_, ok := m.chunks[cc]
	return ok
}

func (m *ChunkManager) Chunk(cc ChunkCoord) (*Chunk, bool) {
	c, ok := m.chunks[cc]
	return c, ok
}

// InsertChunk stores a pre-built chunk, overwriting any chunk already at
// that coordinate.
func (m *ChunkManager) InsertChunk(c *Chunk) {
	m.chunks[c.Coord()] = c
}

// GenerateChunk creates and stores a fresh, empty chunk at cc if one does
// not already exist, and returns it either way.
func (m *ChunkManager) GenerateChunk(cc ChunkCoord) *Chunk {
	if c, ok := m.chunks[cc]; ok {
		return c
	}
	c := NewChunk(cc.X, cc.Y, m.size, m.coarseSize, m.ambientTemp)
	m.chunks[cc] = c
	m.logger.Debugf("chunk created at %v", cc)
	return c
}

func (m *ChunkManager) ClearAllChunks() {
	m.chunks = make(map[ChunkCoord]*Chunk)
	m.active = make(map[ChunkCoord]bool)
}

// EnsureChunksForArea pre-allocates every chunk overlapping the given
// world-space rectangle, so later writes there are never silently dropped.
func (m *ChunkManager) EnsureChunksForArea(minX, minY, maxX, maxY int) {
	ccMin, _, _ := m.worldToChunk(minX, minY)
	ccMax, _, _ := m.worldToChunk(maxX, maxY)
	for cy := ccMin.Y; cy <= ccMax.Y; cy++ {
		for cx := ccMin.X; cx <= ccMax.X; cx++ {
			m.GenerateChunk(ChunkCoord{X: cx, Y: cy})
		}
	}
}

func (m *ChunkManager) GetPixel(wx, wy int) (Pixel, bool) {
	cc, lx, ly := m.worldToChunk(wx, wy)
	c, ok := m.chunks[cc]
	if !ok {
		return Pixel{}, false
	}
	return c.GetPixel(lx, ly), true
}

// SetPixel writes through to the owning chunk. A missing chunk is a no-op,
// per §7 ("missing chunk on write: silent no-op unless pre-allocated").
func (m *ChunkManager) SetPixel(wx, wy int, p Pixel) {
	cc, lx, ly := m.worldToChunk(wx, wy)
	c, ok := m.chunks[cc]
	if !ok {
		return
	}
	c.SetPixel(lx, ly, p)
}

func (m *ChunkManager) SetMaterial(wx, wy int, id MaterialId) {
	m.SetPixel(wx, wy, Pixel{Material: id})
}

// RefreshActiveSet drops active chunks outside Chebyshev radius R of the
// anchor and activates any loaded chunk inside it. Mirrors the streaming
// anchor/radius policy's "should-be-loaded set" shape, but synchronous and
// over an already-loaded sparse map rather than disk-backed regions.
func (m *ChunkManager) RefreshActiveSet(anchor ChunkCoord, radius int) {
	shouldBeActive := make(map[ChunkCoord]bool)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			cc := ChunkCoord{X: anchor.X + dx, Y: anchor.Y + dy}
			if _, loaded := m.chunks[cc]; loaded {
				shouldBeActive[cc] = true
			}
		}
	}

	for cc := range m.active {
		if !shouldBeActive[cc] {
			delete(m.active, cc)
			if c, ok := m.chunks[cc]; ok {
				c.SetActive(false)
			}
		}
	}
	for cc := range shouldBeActive {
		if !m.active[cc] {
			m.active[cc] = true
			m.chunks[cc].SetActive(true)
		}
	}
}

// EvictDistantChunks drops (and stops simulating) every chunk outside
// Chebyshev radius R of the anchor entirely, freeing their memory. Distinct
// from RefreshActiveSet, which only toggles the active flag on chunks that
// remain loaded.
func (m *ChunkManager) EvictDistantChunks(anchor ChunkCoord, radius int) {
	for cc := range m.chunks {
		if chebyshevDist(cc, anchor) > radius {
			delete(m.chunks, cc)
			delete(m.active, cc)
			m.logger.Debugf("chunk evicted at %v", cc)
		}
	}
}

func (m *ChunkManager) ActiveChunks() []*Chunk {
	out := make([]*Chunk, 0, len(m.active))
	for cc := range m.active {
		out = append(out, m.chunks[cc])
	}
	return out
}

func (m *ChunkManager) ActiveCount() int { return len(m.active) }
func (m *ChunkManager) LoadedCount() int { return len(m.chunks) }

// Neighbor returns the chunk adjacent to cc in one of the 8 directions
// (dx, dy each in {-1,0,1}), used to route cross-chunk CA moves and
// electrical propagation through a single normalization point (per §9,
// "a single coordinate-normalization function...avoids seam bugs by
// construction").
func (m *ChunkManager) Neighbor(cc ChunkCoord, dx, dy int) (*Chunk, bool) {
	c, ok := m.chunks[ChunkCoord{X: cc.X + dx, Y: cc.Y + dy}]
	return c, ok
}

// NeedsCAUpdate is true when the chunk or any of its 8 neighbors is dirty
// or simulation-active — the heuristic the core may use to skip truly
// quiescent regions (§4.2).
func (m *ChunkManager) NeedsCAUpdate(c *Chunk) bool {
	if c.IsActive() || c.IsDirty() {
		return true
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if n, ok := m.Neighbor(c.Coord(), dx, dy); ok && (n.IsActive() || n.IsDirty()) {
				return true
			}
		}
	}
	return false
}

// ResolveGlobal converts world coordinates (wx, wy), in whichever chunk
// they fall, into (chunk, lx, ly); ok is false if that chunk isn't loaded. CA and electrical passes use this
// for every cross-chunk neighbor access instead of hand-checking bounds.
func (m *ChunkManager) ResolveGlobal(wx, wy int) (c *Chunk, lx, ly int, ok bool) {
	cc, lx, ly := m.worldToChunk(wx, wy)
	c, ok = m.chunks[cc]
	return c, lx, ly, ok
}
