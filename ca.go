package simcore

// UpdateCellularAutomata runs one CA pass over every active chunk: bottom-up
// rows, alternating horizontal sweep direction per row, dispatching each
// non-empty not-yet-updated pixel by its material's behavioral class.
func UpdateCellularAutomata(m *ChunkManager, reg *Registry, rng Rng, stats *SimStats) {
	for _, c := range m.ActiveChunks() {
		updateChunkCA(m, reg, rng, stats, c)
	}
}

func updateChunkCA(m *ChunkManager, reg *Registry, rng Rng, stats *SimStats, c *Chunk) {
	size := c.Size()
	ox, oy := chunkOrigin(c.Coord(), size)

	for ly := 0; ly < size; ly++ {
		leftToRight := ly%2 == 0
		for i := 0; i < size; i++ {
			lx := i
			if !leftToRight {
				lx = size - 1 - i
			}

			p := c.GetPixel(lx, ly)
			if p.IsEmpty() || p.Flags.Has(FlagUpdatedThisFrame) {
				continue
			}
			def, ok := reg.Get(p.Material)
			if !ok {
				continue
			}

			wx, wy := ox+lx, oy+ly
			switch def.Class {
			case ClassSolid:
				// no motion
			case ClassPowder:
				updatePowder(m, reg, rng, stats, wx, wy, def)
			case ClassLiquid:
				updateLiquid(m, reg, rng, stats, wx, wy, def)
			case ClassGas:
				updateGas(m, reg, rng, stats, wx, wy, def)
			}
		}
	}
}

// tryMove attempts to move the pixel at (wx,wy) to (tx,ty). A move succeeds
// if the target is empty, or occupied by a material of strictly lower
// density (in which case the occupant rises into the vacated cell — a
// swap). On success the moved pixel's updated-this-frame flag is set and
// true is returned.
func tryMove(m *ChunkManager, reg *Registry, stats *SimStats, wx, wy, tx, ty int, movingDensity float64) bool {
	srcC, slx, sly, ok := m.ResolveGlobal(wx, wy)
	if !ok {
		return false
	}
	dstC, dlx, dly, ok := m.ResolveGlobal(tx, ty)
	if !ok {
		return false
	}

	target := dstC.GetPixel(dlx, dly)
	if !target.IsEmpty() {
		targetDef, ok := reg.Get(target.Material)
		if !ok || targetDef.Density >= movingDensity {
			return false
		}
	}

	moving := srcC.GetPixel(slx, sly)
	if srcC == dstC {
		srcC.Swap(slx, sly, dlx, dly)
	} else {
		dstC.SetPixel(dlx, dly, moving)
		srcC.SetPixel(slx, sly, target)
	}
	moved := dstC.GetPixel(dlx, dly)
	moved.Flags = moved.Flags.Set(FlagUpdatedThisFrame)
	dstC.SetPixel(dlx, dly, moved)
	if stats != nil {
		stats.PixelsUpdated++
	}
	return true
}

func updatePowder(m *ChunkManager, reg *Registry, rng Rng, stats *SimStats, wx, wy int, def MaterialDef) {
	if tryMove(m, reg, stats, wx, wy, wx, wy-1, def.Density) {
		return
	}
	order := [2]int{-1, 1}
	if rng.Intn(2) == 1 {
		order[0], order[1] = 1, -1
	}
	for _, dx := range order {
		if tryMove(m, reg, stats, wx, wy, wx+dx, wy-1, def.Density) {
			return
		}
	}
}

func updateLiquid(m *ChunkManager, reg *Registry, rng Rng, stats *SimStats, wx, wy int, def MaterialDef) {
	if tryMove(m, reg, stats, wx, wy, wx, wy-1, def.Density) {
		return
	}
	order := [2]int{-1, 1}
	if rng.Intn(2) == 1 {
		order[0], order[1] = 1, -1
	}
	for _, dx := range order {
		if tryMove(m, reg, stats, wx, wy, wx+dx, wy-1, def.Density) {
			return
		}
	}
	if rng.Float64() > def.Viscosity {
		for _, dx := range order {
			if tryMove(m, reg, stats, wx, wy, wx+dx, wy, def.Density) {
				return
			}
		}
	}
}

func updateGas(m *ChunkManager, reg *Registry, rng Rng, stats *SimStats, wx, wy int, def MaterialDef) {
	if tryMove(m, reg, stats, wx, wy, wx, wy+1, def.Density) {
		return
	}
	order := [2]int{-1, 1}
	if rng.Intn(2) == 1 {
		order[0], order[1] = 1, -1
	}
	for _, dx := range order {
		if tryMove(m, reg, stats, wx, wy, wx+dx, wy+1, def.Density) {
			return
		}
	}
	for _, dx := range order {
		if tryMove(m, reg, stats, wx, wy, wx+dx, wy, def.Density) {
			return
		}
	}
}
