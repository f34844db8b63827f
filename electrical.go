package simcore

// electricalQueueItem is one pending propagation source: a coarse-cell
// location identified by any pixel inside it. The potential to spread is
// read from that cell when the item is dequeued.
type electricalQueueItem struct {
	wx, wy int
}

// UpdateElectrical runs the per-tick electrical pass: discharge/deplete,
// emit from sources, bounded-depth propagation, resistive heating, spark
// drift, and thunder detonation, in that order (§4.8). logger may be nil.
func UpdateElectrical(m *ChunkManager, reg *Registry, rng Rng, cfg *Config, stats *SimStats, logger Logger) {
	if logger == nil {
		logger = NewNopLogger()
	}
	for _, c := range m.ActiveChunks() {
		dischargeAndDeplete(c, reg)
	}

	queue := make([]electricalQueueItem, 0, cfg.ElectricalQueueCap)
	for _, c := range m.ActiveChunks() {
		emitFromSources(c, reg, cfg, &queue, stats, logger)
	}

	propagate(m, reg, cfg, queue, logger)

	for _, c := range m.ActiveChunks() {
		applyResistiveHeating(c, reg, cfg)
	}

	for _, c := range m.ActiveChunks() {
		updateSparkDrift(m, reg, rng, c, stats)
	}

	for _, c := range m.ActiveChunks() {
		detonateThunder(m, reg, c, cfg, stats)
	}
}

func dischargeAndDeplete(c *Chunk, reg *Registry) {
	size := c.Size()
	coarse := c.coarse
	for cy := 0; cy*coarse < size; cy++ {
		for cx := 0; cx*coarse < size; cx++ {
			lx, ly := cx*coarse, cy*coarse
			if c.Potential(lx, ly) <= 0 {
				continue
			}
			decay := sampleDecay(c, reg, lx, ly, coarse)
			if decay < 0.01 {
				decay = 0.01
			}
			v := c.Potential(lx, ly) - decay
			if v < 0 {
				v = 0
			}
			c.SetPotential(lx, ly, v)
			if v == 0 {
				clearPoweredInCell(c, lx, ly, coarse)
			}
		}
	}
}

func sampleDecay(c *Chunk, reg *Registry, lx, ly, coarse int) float64 {
	for dy := 0; dy < coarse; dy++ {
		for dx := 0; dx < coarse; dx++ {
			p := c.GetPixel(lx+dx, ly+dy)
			if p.IsEmpty() {
				continue
			}
			if def, ok := reg.Get(p.Material); ok {
				return def.PowerDecay
			}
		}
	}
	return 0.01
}

func clearPoweredInCell(c *Chunk, lx, ly, coarse int) {
	for dy := 0; dy < coarse; dy++ {
		for dx := 0; dx < coarse; dx++ {
			p := c.GetPixel(lx+dx, ly+dy)
			if p.Flags.Has(FlagPowered) {
				p.Flags = p.Flags.Clear(FlagPowered)
				c.SetPixel(lx+dx, ly+dy, p)
			}
		}
	}
}

func emitFromSources(c *Chunk, reg *Registry, cfg *Config, queue *[]electricalQueueItem, stats *SimStats, logger Logger) {
	size := c.Size()
	ox, oy := chunkOrigin(c.Coord(), size)
	emitted := 0
	for ly := 0; ly < size && emitted < cfg.ElectricalEmitCap; ly++ {
		for lx := 0; lx < size && emitted < cfg.ElectricalEmitCap; lx++ {
			p := c.GetPixel(lx, ly)
			if !p.Flags.Has(FlagSparkSource) {
				continue
			}
			def, ok := reg.Get(p.Material)
			if !ok || def.PowerGeneration <= 0 {
				continue
			}
			v := c.Potential(lx, ly) + def.PowerGeneration
			if v > 100 {
				v = 100
			}
			c.SetPotential(lx, ly, v)
			p.Flags = p.Flags.Set(FlagPowered)
			c.SetPixel(lx, ly, p)
			setPoweredInCell(c, reg, lx, ly, c.coarse)

			if len(*queue) < cfg.ElectricalQueueCap {
				*queue = append(*queue, electricalQueueItem{wx: ox + lx, wy: oy + ly})
			} else {
				logger.Debugf("electrical queue cap %d reached, dropping source emission at (%d,%d)", cfg.ElectricalQueueCap, ox+lx, oy+ly)
			}
			emitted++
			if stats != nil {
				stats.ElectricalSparks++
			}
		}
	}
}

// propagate drains the FIFO queue up to MaxDepthPerFrame dequeues; waves
// that don't finish spreading this tick pick up again next tick because
// new sources are re-queued each call (§4.8, §8: "after k ticks the wave
// has reached at most k*d cells"). Potential lives on the coarse grid, so
// each hop steps a full coarse cell rather than one pixel — stepping by a
// single pixel would almost always land back inside the same cell (whose
// potential already equals the source's) and the wave would never cross a
// cell boundary.
func propagate(m *ChunkManager, reg *Registry, cfg *Config, queue []electricalQueueItem, logger Logger) {
	coarse := cfg.CoarseCellSize
	depth := 0
	for depth < cfg.ElectricalMaxDepthPerFrame && len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		depth++

		c, lx, ly, ok := m.ResolveGlobal(item.wx, item.wy)
		if !ok {
			continue
		}
		srcPotential := c.Potential(lx, ly)
		if srcPotential <= 0 {
			continue
		}

		for _, off := range Neighbors8 {
			nwx, nwy := item.wx+off.Dx*coarse, item.wy+off.Dy*coarse
			nc, nlx, nly, ok := m.ResolveGlobal(nwx, nwy)
			if !ok {
				continue
			}
			def, found := cellConductor(nc, reg, nlx, nly, coarse)
			if !found {
				continue
			}
			neighborPotential := nc.Potential(nlx, nly)
			if srcPotential <= neighborPotential {
				continue
			}
			transfer := (srcPotential - neighborPotential) * def.ElectricalConductivity * 0.5
			if transfer <= 0.01 {
				continue
			}
			newPotential := neighborPotential + transfer
			nc.SetPotential(nlx, nly, newPotential)
			setPoweredInCell(nc, reg, nlx, nly, coarse)

			if len(queue) < cfg.ElectricalQueueCap {
				queue = append(queue, electricalQueueItem{wx: nwx, wy: nwy})
			} else {
				logger.Debugf("electrical queue cap %d reached, dropping propagation hop at (%d,%d)", cfg.ElectricalQueueCap, nwx, nwy)
			}
		}
	}
}

// cellConductor reports the def of the first conductive material found in
// the coarse cell containing (lx, ly), the same representative-sample
// pattern sampleDecay and sampleResistance use.
func cellConductor(c *Chunk, reg *Registry, lx, ly, coarse int) (MaterialDef, bool) {
	ox, oy := (lx/coarse)*coarse, (ly/coarse)*coarse
	for dy := 0; dy < coarse; dy++ {
		for dx := 0; dx < coarse; dx++ {
			p := c.GetPixel(ox+dx, oy+dy)
			if p.IsEmpty() {
				continue
			}
			if def, ok := reg.Get(p.Material); ok && def.Conductive {
				return def, true
			}
		}
	}
	return MaterialDef{}, false
}

// setPoweredInCell flags every conductive pixel in the coarse cell
// containing (lx, ly) as powered, mirroring clearPoweredInCell.
func setPoweredInCell(c *Chunk, reg *Registry, lx, ly, coarse int) {
	ox, oy := (lx/coarse)*coarse, (ly/coarse)*coarse
	for dy := 0; dy < coarse; dy++ {
		for dx := 0; dx < coarse; dx++ {
			p := c.GetPixel(ox+dx, oy+dy)
			if p.IsEmpty() || p.Flags.Has(FlagPowered) {
				continue
			}
			def, ok := reg.Get(p.Material)
			if !ok || !def.Conductive {
				continue
			}
			p.Flags = p.Flags.Set(FlagPowered)
			c.SetPixel(ox+dx, oy+dy, p)
		}
	}
}

func applyResistiveHeating(c *Chunk, reg *Registry, cfg *Config) {
	size := c.Size()
	coarse := c.coarse
	for cy := 0; cy*coarse < size; cy++ {
		for cx := 0; cx*coarse < size; cx++ {
			lx, ly := cx*coarse, cy*coarse
			potential := c.Potential(lx, ly)
			if potential <= 0 {
				continue
			}
			resistance := sampleResistance(c, reg, lx, ly, coarse)
			AddHeatAtPixel(c, lx, ly, potential*resistance*0.1, cfg.TemperatureMax)
		}
	}
}

func sampleResistance(c *Chunk, reg *Registry, lx, ly, coarse int) float64 {
	for dy := 0; dy < coarse; dy++ {
		for dx := 0; dx < coarse; dx++ {
			p := c.GetPixel(lx+dx, ly+dy)
			if p.IsEmpty() {
				continue
			}
			if def, ok := reg.Get(p.Material); ok {
				return def.ElectricalResistance
			}
		}
	}
	return 0
}

// updateSparkDrift steps each spark pixel toward its highest-potential
// powered-conductor neighbor, or lets it drift like a gas if none exists.
func updateSparkDrift(m *ChunkManager, reg *Registry, rng Rng, c *Chunk, stats *SimStats) {
	size := c.Size()
	ox, oy := chunkOrigin(c.Coord(), size)
	for ly := 0; ly < size; ly++ {
		for lx := 0; lx < size; lx++ {
			p := c.GetPixel(lx, ly)
			if p.IsEmpty() || p.Flags.Has(FlagUpdatedThisFrame) {
				continue
			}
			def, ok := reg.Get(p.Material)
			if !ok || def.Class != ClassGas || !isSparkMaterial(def) {
				continue
			}
			wx, wy := ox+lx, oy+ly

			bestOff, bestPotential, found := bestConductorNeighbor(m, reg, wx, wy)
			if found {
				nc, nlx, nly, ok := m.ResolveGlobal(wx+bestOff.Dx, wy+bestOff.Dy)
				if ok {
					nc.SetPotential(nlx, nly, bestPotential+10)
					np := nc.GetPixel(nlx, nly)
					np.Flags = np.Flags.Set(FlagPowered)
					nc.SetPixel(nlx, nly, np)
					c.SetMaterial(lx, ly, AirId)
					if stats != nil {
						stats.ElectricalSparks++
					}
					continue
				}
			}
			updateGas(m, reg, rng, stats, wx, wy, def)
		}
	}
}

func isSparkMaterial(def MaterialDef) bool {
	return def.Name == "spark"
}

func bestConductorNeighbor(m *ChunkManager, reg *Registry, wx, wy int) (Offset, float64, bool) {
	best := Offset{}
	bestPotential := -1.0
	found := false
	for _, off := range Neighbors8 {
		c, lx, ly, ok := m.ResolveGlobal(wx+off.Dx, wy+off.Dy)
		if !ok {
			continue
		}
		p := c.GetPixel(lx, ly)
		if p.IsEmpty() || !p.Flags.Has(FlagPowered) {
			continue
		}
		def, ok := reg.Get(p.Material)
		if !ok || !def.Conductive {
			continue
		}
		potential := c.Potential(lx, ly)
		if potential > bestPotential {
			bestPotential = potential
			best = off
			found = true
		}
	}
	return best, bestPotential, found
}

// detonateThunder destroys every non-conductive, non-air 8-neighbor of a
// powered thunder pixel, heats its own cell by 500C, and consumes itself.
func detonateThunder(m *ChunkManager, reg *Registry, c *Chunk, cfg *Config, stats *SimStats) {
	size := c.Size()
	ox, oy := chunkOrigin(c.Coord(), size)
	for ly := 0; ly < size; ly++ {
		for lx := 0; lx < size; lx++ {
			p := c.GetPixel(lx, ly)
			if p.IsEmpty() {
				continue
			}
			def, ok := reg.Get(p.Material)
			if !ok || def.Name != "thunder" {
				continue
			}
			if !p.Flags.Has(FlagPowered) && c.Potential(lx, ly) <= 0 {
				continue
			}
			wx, wy := ox+lx, oy+ly

			for _, off := range Neighbors8 {
				nc, nlx, nly, ok := m.ResolveGlobal(wx+off.Dx, wy+off.Dy)
				if !ok {
					continue
				}
				np := nc.GetPixel(nlx, nly)
				if np.IsEmpty() {
					continue
				}
				ndef, ok := reg.Get(np.Material)
				if !ok {
					continue
				}
				if ndef.Conductive || ndef.Name == "thunder" || ndef.Name == "laser" {
					continue
				}
				nc.SetMaterial(nlx, nly, AirId)
			}

			AddHeatAtPixel(c, lx, ly, 500, cfg.TemperatureMax)
			c.SetMaterial(lx, ly, AirId)
		}
	}
}
