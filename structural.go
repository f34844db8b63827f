package simcore

import "github.com/go-gl/mathgl/mgl32"

// StructuralSystem owns the pending-check queue: world coordinates
// scheduled by removals (mining, explosions, reaction outputs) that need
// an anchor re-check. Duplicates collapse because the queue is set-valued.
type StructuralSystem struct {
	pending map[[2]int]struct{}
	logger  Logger
}

func NewStructuralSystem(logger Logger) *StructuralSystem {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &StructuralSystem{pending: make(map[[2]int]struct{}), logger: logger}
}

// ScheduleCheck queues a structural re-check at (wx, wy). Called whenever
// the world mutates a pixel that was a structural solid.
func (s *StructuralSystem) ScheduleCheck(wx, wy int) {
	s.pending[[2]int{wx, wy}] = struct{}{}
}

// Drain runs one structural pass: for each scheduled position, flood-fill
// any structural-solid 4-neighbor and convert the resulting region if it
// is unanchored. Falling chunk creation is delegated to the caller's
// onFallingChunk callback, since the falling-chunk lifecycle lives
// alongside the ECS, not here. grid (as of the previous
// tick's FallingChunk stage) is consulted so a scheduled position that
// already overlaps a falling chunk in flight is skipped rather than
// flood-filled: that ground is either already air or about to be
// overwritten when the chunk settles, so re-checking its anchoring now is
// wasted work at best and a misclassification at worst. grid may be nil.
func (s *StructuralSystem) Drain(m *ChunkManager, reg *Registry, cfg *Config, debrisMaterial MaterialId, grid *SpatialHashGrid, onFallingChunk func(pixels map[[2]int]MaterialId)) {
	scheduled := s.pending
	s.pending = make(map[[2]int]struct{})

	visited := make(map[[2]int]bool)
	for pos := range scheduled {
		if grid != nil && overlapsFallingChunk(grid, pos[0], pos[1]) {
			continue
		}
		for _, off := range Neighbors4 {
			nx, ny := pos[0]+off.Dx, pos[1]+off.Dy
			if visited[[2]int{nx, ny}] {
				continue
			}
			p, ok := m.GetPixel(nx, ny)
			if !ok || p.IsEmpty() || !reg.IsStructural(p.Material) {
				continue
			}
			region, anchored, capped := floodFillStructural(m, reg, nx, ny, cfg.StructuralFloodCap, visited)
			if capped {
				// exceeds the radius cap: treated as anchored, conservative (§7).
				s.logger.Debugf("structural flood-fill at (%d,%d) exceeded cap %d, treating as anchored", nx, ny, cfg.StructuralFloodCap)
				continue
			}
			if anchored {
				continue
			}
			convertRegion(m, cfg, debrisMaterial, region, onFallingChunk)
		}
	}
}

func overlapsFallingChunk(grid *SpatialHashGrid, wx, wy int) bool {
	aabb := AABBComponent{Min: mgl32.Vec2{float32(wx), float32(wy)}, Max: mgl32.Vec2{float32(wx) + 1, float32(wy) + 1}}
	return len(grid.QueryAABB(aabb)) > 0
}

// floodFillStructural walks 4-connected structural-solid pixels from
// (startX, startY), stopping at a Chebyshev distance cap from the origin.
// Cells already in `visited` (from an earlier fill in the same Drain call)
// are skipped, implementing "the first to detach a region removes its
// pixels, so subsequent fills see the smaller residual" (§4.9).
func floodFillStructural(m *ChunkManager, reg *Registry, startX, startY, cap int, visited map[[2]int]bool) (region [][2]int, anchored bool, capExceeded bool) {
	type queued struct{ x, y int }
	queue := []queued{{startX, startY}}
	seen := map[[2]int]bool{{startX, startY}: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if chebyshevDistPixels(cur.x, cur.y, startX, startY) > cap {
			return nil, false, true
		}

		region = append(region, [2]int{cur.x, cur.y})
		visited[[2]int{cur.x, cur.y}] = true

		p, ok := m.GetPixel(cur.x, cur.y)
		if ok && reg.IsBedrock(p.Material) {
			anchored = true
		}

		for _, off := range Neighbors4 {
			nx, ny := cur.x+off.Dx, cur.y+off.Dy
			key := [2]int{nx, ny}
			if seen[key] {
				continue
			}
			np, ok := m.GetPixel(nx, ny)
			if !ok || np.IsEmpty() || !reg.IsStructural(np.Material) {
				continue
			}
			seen[key] = true
			queue = append(queue, queued{nx, ny})
		}
	}
	return region, anchored, false
}

func convertRegion(m *ChunkManager, cfg *Config, debrisMaterial MaterialId, region [][2]int, onFallingChunk func(map[[2]int]MaterialId)) {
	if len(region) == 0 {
		return
	}
	if len(region) < cfg.StructuralSmallDebrisPixels {
		for _, pos := range region {
			m.SetMaterial(pos[0], pos[1], debrisMaterial)
		}
		return
	}

	pixels := make(map[[2]int]MaterialId, len(region))
	for _, pos := range region {
		p, ok := m.GetPixel(pos[0], pos[1])
		if !ok {
			continue
		}
		pixels[pos] = p.Material
		m.SetMaterial(pos[0], pos[1], AirId)
	}
	onFallingChunk(pixels)
}
