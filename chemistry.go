package simcore

// UpdateChemistry runs the fire-update, ignition-check, and burning-update
// passes over every active chunk, in that order, once per tick.
func UpdateChemistry(m *ChunkManager, reg *Registry, rng Rng, cfg *Config, stats *SimStats, structural *StructuralSystem) {
	for _, c := range m.ActiveChunks() {
		size := c.Size()
		ox, oy := chunkOrigin(c.Coord(), size)
		for ly := 0; ly < size; ly++ {
			for lx := 0; lx < size; lx++ {
				p := c.GetPixel(lx, ly)
				if p.IsEmpty() {
					continue
				}
				def, ok := reg.Get(p.Material)
				if !ok {
					continue
				}
				wx, wy := ox+lx, oy+ly

				if def.IsFire {
					updateFirePixel(m, reg, rng, cfg, c, lx, ly, wx, wy, def, stats)
					continue
				}
				if def.Flammable && def.IgnitionPoint != nil {
					checkIgnition(m, reg, c, lx, ly, wx, wy, def)
				}
				if p.Flags.Has(FlagBurning) {
					updateBurning(m, reg, rng, cfg, c, lx, ly, wx, wy, def, stats, structural)
				}
			}
		}
	}
}

func updateFirePixel(m *ChunkManager, reg *Registry, rng Rng, cfg *Config, c *Chunk, lx, ly, wx, wy int, def MaterialDef, stats *SimStats) {
	AddHeatAtPixel(c, lx, ly, cfg.FireHeatPerTick, cfg.TemperatureMax)
	updateGas(m, reg, rng, stats, wx, wy, def)

	if rng.Float64() < cfg.FireToSmokeChance {
		// re-resolve: the gas step above may have moved this pixel.
		if fc, flx, fly, ok := m.ResolveGlobal(wx, wy); ok {
			p := fc.GetPixel(flx, fly)
			if p.Material == def.Id {
				fc.SetMaterial(flx, fly, def.SmokeId)
			}
		}
	}
}

func checkIgnition(m *ChunkManager, reg *Registry, c *Chunk, lx, ly, wx, wy int, def MaterialDef) {
	temp := c.Temperature(lx, ly)
	if temp < *def.IgnitionPoint {
		return
	}
	p := c.GetPixel(lx, ly)
	p.Flags = p.Flags.Set(FlagBurning)
	c.SetPixel(lx, ly, p)

	fireId, ok := reg.FireId()
	if !ok {
		return
	}
	for _, off := range Neighbors4 {
		nc, nlx, nly, ok := m.ResolveGlobal(wx+off.Dx, wy+off.Dy)
		if !ok {
			continue
		}
		if nc.GetPixel(nlx, nly).IsEmpty() {
			nc.SetMaterial(nlx, nly, fireId)
			return
		}
	}
}

func updateBurning(m *ChunkManager, reg *Registry, rng Rng, cfg *Config, c *Chunk, lx, ly, wx, wy int, def MaterialDef, stats *SimStats, structural *StructuralSystem) {
	if rng.Float64() >= def.BurnRate {
		return
	}
	if def.Structural && !reg.IsStructural(def.BurnsTo) {
		structural.ScheduleCheck(wx, wy)
	}
	c.SetMaterial(lx, ly, def.BurnsTo) // BurnsTo == AirId ("no burns_to") disappears, per §4.6
	AddHeatAtPixel(c, lx, ly, cfg.BurnHeatPerTick, cfg.TemperatureMax)
}
