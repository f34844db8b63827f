package simcore

// UpdateStateChanges checks every non-empty pixel in each active chunk
// against its material's melting/boiling/freezing thresholds. Exactly one
// transition fires per pixel per tick; boiling is checked before melting
// so a pixel hot enough to do both still boils (§4.5: "ties prefer higher-
// phase energy").
func UpdateStateChanges(m *ChunkManager, reg *Registry, structural *StructuralSystem) {
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
				temp := c.Temperature(lx, ly)

				var target MaterialId
				fired := false
				switch {
				case def.BoilingPoint != nil && temp >= *def.BoilingPoint:
					target, fired = def.BoilsTo, true
				case def.MeltingPoint != nil && temp >= *def.MeltingPoint:
					target, fired = def.MeltsTo, true
				case def.FreezingPoint != nil && temp <= *def.FreezingPoint:
					target, fired = def.FreezesTo, true
				}
				if !fired || target == AirId {
					// a zero (unset) transition target means the threshold does
					// not apply: the pixel keeps its material.
					continue
				}
				targetDef, ok := reg.Get(target)
				if !ok {
					// undefined transition target: pixel retains its current material (§7).
					continue
				}
				if def.Structural && !targetDef.Structural {
					structural.ScheduleCheck(ox+lx, oy+ly)
				}
				flags := p.Flags
				if !targetDef.Flammable {
					flags = flags.Clear(FlagBurning)
				}
				c.SetPixel(lx, ly, Pixel{Material: target, Flags: flags})
			}
		}
	}
}
