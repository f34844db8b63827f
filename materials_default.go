package simcore

// ptr is a tiny helper for the optional float64 threshold fields on
// MaterialDef; named for what it does rather than for this file.
func ptr(v float64) *float64 { return &v }

// DefaultMaterials registers the baseline material set the reaction
// catalogue and example scenarios assume. Returns a name->id map so
// callers (and SeedDefaultReactions) can refer to materials symbolically
// instead of by raw numeric id, matching §3's "handlers reference
// materials by symbolic constants".
func DefaultMaterials(reg *Registry) (map[string]MaterialId, error) {
	ids := make(map[string]MaterialId)
	register := func(def MaterialDef) error {
		id, err := reg.Register(def)
		if err != nil {
			return err
		}
		ids[def.Name] = id
		return nil
	}

	if err := register(MaterialDef{Name: "bedrock", Class: ClassSolid, Density: 1000, Structural: true, Bedrock: true}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "stone", Class: ClassSolid, Density: 260, Structural: true, MeltingPoint: ptr(1200)}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "sand", Class: ClassPowder, Density: 160}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "dirt", Class: ClassPowder, Density: 140}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "ash", Class: ClassPowder, Density: 40}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "salt", Class: ClassPowder, Density: 150}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "gunpowder", Class: ClassPowder, Density: 100, Flammable: true, BurnRate: 0.5, IgnitionPoint: ptr(250)}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "c4", Class: ClassSolid, Density: 180, Structural: false}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "bomb", Class: ClassSolid, Density: 200}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "nitro", Class: ClassLiquid, Density: 150, Viscosity: 0.2}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "fertilizer", Class: ClassPowder, Density: 90}); err != nil {
		return nil, err
	}

	if err := register(MaterialDef{Name: "water", Class: ClassLiquid, Density: 100, Viscosity: 0.1, FreezingPoint: ptr(0), BoilingPoint: ptr(100)}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "seawater", Class: ClassLiquid, Density: 103, Viscosity: 0.1, FreezingPoint: ptr(-2)}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "lava", Class: ClassLiquid, Density: 300, Viscosity: 0.6, FreezingPoint: ptr(700)}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "magma", Class: ClassLiquid, Density: 320, Viscosity: 0.7, FreezingPoint: ptr(800)}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "mercury", Class: ClassLiquid, Density: 1350, Viscosity: 0.05, Conductive: true, ElectricalConductivity: 0.9}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "acid", Class: ClassLiquid, Density: 110, Viscosity: 0.15}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "soapy_water", Class: ClassLiquid, Density: 99, Viscosity: 0.1}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "ice", Class: ClassSolid, Density: 92, MeltingPoint: ptr(0)}); err != nil {
		return nil, err
	}

	if err := register(MaterialDef{Name: "steam", Class: ClassGas, Density: 5}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "smoke", Class: ClassGas, Density: 4}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "poison_gas", Class: ClassGas, Density: 6}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "bubble", Class: ClassGas, Density: 3}); err != nil {
		return nil, err
	}

	smokeId := ids["smoke"]
	if err := register(MaterialDef{Name: "fire", Class: ClassGas, Density: 2, IsFire: true, SmokeId: smokeId}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "spark", Class: ClassGas, Density: 1, Conductive: false}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "thunder", Class: ClassGas, Density: 1}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "laser", Class: ClassGas, Density: 1}); err != nil {
		return nil, err
	}

	if err := register(MaterialDef{Name: "wood", Class: ClassSolid, Density: 70, Structural: true, Flammable: true, IgnitionPoint: ptr(300), BurnRate: 0.02}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "plant", Class: ClassSolid, Density: 50, Flammable: true, IgnitionPoint: ptr(250), BurnRate: 0.02}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "flesh", Class: ClassSolid, Density: 90}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "bone", Class: ClassSolid, Density: 150, Structural: true}); err != nil {
		return nil, err
	}

	if err := register(MaterialDef{Name: "wire", Class: ClassSolid, Density: 400, Structural: true, Conductive: true, ElectricalConductivity: 0.5, ElectricalResistance: 0.3}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "battery", Class: ClassSolid, Density: 400, Structural: true, Conductive: true, ElectricalConductivity: 0.5, PowerGeneration: 10, PowerDecay: 0.5}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "metal", Class: ClassSolid, Density: 500, Structural: true, Conductive: true, ElectricalConductivity: 0.4, ElectricalResistance: 0.2, MeltingPoint: ptr(1500)}); err != nil {
		return nil, err
	}
	if err := register(MaterialDef{Name: "glass", Class: ClassSolid, Density: 250, Structural: true, MeltingPoint: ptr(1400)}); err != nil {
		return nil, err
	}

	for _, ore := range []string{"ore_iron", "ore_copper", "ore_gold"} {
		if err := register(MaterialDef{Name: ore, Class: ClassSolid, Density: 450, Structural: true}); err != nil {
			return nil, err
		}
	}
	for _, ingot := range []string{"ingot_iron", "ingot_copper", "ingot_gold"} {
		if err := register(MaterialDef{Name: ingot, Class: ClassSolid, Density: 500, Structural: true, Conductive: true, ElectricalConductivity: 0.4}); err != nil {
			return nil, err
		}
	}

	return ids, nil
}
