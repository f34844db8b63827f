package simcore

// SeedDefaultReactions populates rr with the sandbox's baseline chemistry
// table, grouped by the categories named in the reaction catalogue shape
// (§4.7): phase quenches, corrosion, smelting, combustion, detonation,
// decomposition/growth, gas reactions, electrical reactions, and erosion.
// ids must come from DefaultMaterials (or a superset registering the same
// names) so every reference below resolves.
func SeedDefaultReactions(reg *Registry, rr *ReactionRegistry, ids map[string]MaterialId) error {
	id := func(name string) MaterialId { return ids[name] }
	cat := func(name string) *MaterialId { v := ids[name]; return &v }

	add := func(r Reaction) error { return rr.Add(reg, r) }

	reactions := []Reaction{
		// --- Phase quenches ---
		{InputA: id("water"), InputB: id("lava"), OutputA: id("steam"), OutputB: id("stone"), Probability: 0.3, EnergyReleased: -100},
		{InputA: id("ice"), InputB: id("lava"), OutputA: id("water"), OutputB: id("stone"), Probability: 0.3, EnergyReleased: -80},
		{InputA: id("magma"), InputB: id("water"), OutputA: id("lava"), OutputB: id("steam"), Probability: 0.25, EnergyReleased: -60},
		{InputA: id("seawater"), InputB: id("fire"), OutputA: id("steam"), OutputB: id("salt"), Probability: 0.3, EnergyReleased: -50, MinTemp: ptr(100)},

		// --- Corrosion ---
		{InputA: id("acid"), InputB: id("stone"), OutputA: id("acid"), OutputB: AirId, Probability: 0.1},
		{InputA: id("acid"), InputB: id("metal"), OutputA: AirId, OutputB: id("poison_gas"), Probability: 0.1},
		{InputA: id("acid"), InputB: id("ingot_iron"), OutputA: AirId, OutputB: id("poison_gas"), Probability: 0.1},
		{InputA: id("acid"), InputB: id("bone"), OutputA: AirId, OutputB: AirId, Probability: 0.1},
		{InputA: id("acid"), InputB: id("wood"), OutputA: id("acid"), OutputB: AirId, Probability: 0.08},

		// --- Smelting ---
		{InputA: id("ore_iron"), InputB: id("fire"), OutputA: id("ingot_iron"), OutputB: id("smoke"), Probability: 0.05, MinTemp: ptr(800)},
		{InputA: id("ore_copper"), InputB: id("fire"), OutputA: id("ingot_copper"), OutputB: id("smoke"), Probability: 0.05, MinTemp: ptr(700)},
		{InputA: id("ore_gold"), InputB: id("fire"), OutputA: id("ingot_gold"), OutputB: id("smoke"), Probability: 0.05, MinTemp: ptr(600)},
		{InputA: id("sand"), InputB: id("fire"), OutputA: id("glass"), OutputB: id("smoke"), Probability: 0.03, MinTemp: ptr(1700)},

		// --- Combustion ---
		{InputA: id("spark"), InputB: id("wood"), OutputA: AirId, OutputB: id("fire"), Probability: 0.5},
		{InputA: id("spark"), InputB: id("gunpowder"), OutputA: AirId, OutputB: id("fire"), Probability: 0.8},
		{InputA: id("spark"), InputB: id("plant"), OutputA: AirId, OutputB: id("fire"), Probability: 0.5},
		{InputA: id("gunpowder"), InputB: id("fire"), OutputA: id("smoke"), OutputB: id("smoke"), Probability: 0.6, EnergyReleased: 400},

		// --- Detonation ---
		{InputA: id("c4"), InputB: id("spark"), OutputA: id("smoke"), OutputB: AirId, Probability: 0.9, EnergyReleased: 1000},
		{InputA: id("c4"), InputB: id("fire"), OutputA: id("smoke"), OutputB: id("fire"), Probability: 0.6, EnergyReleased: 1000, MinTemp: ptr(400)},
		{InputA: id("bomb"), InputB: id("fire"), OutputA: id("smoke"), OutputB: id("fire"), Probability: 0.5, EnergyReleased: 1200},
		{InputA: id("nitro"), InputB: id("nitro"), OutputA: id("smoke"), OutputB: AirId, Probability: 0.2, EnergyReleased: 1500, MinPressure: ptr(2)},

		// --- Decomposition & growth ---
		{InputA: id("flesh"), InputB: id("water"), OutputA: id("poison_gas"), OutputB: id("poison_gas"), Probability: 0.01},
		{InputA: id("plant"), InputB: id("water"), OutputA: id("plant"), OutputB: id("plant"), Probability: 0.005, EnergyReleased: -2, MinLight: ptr(0.3)},
		{InputA: id("plant"), InputB: id("fertilizer"), OutputA: id("plant"), OutputB: id("dirt"), Probability: 0.05},
		{InputA: id("ash"), InputB: id("water"), OutputA: id("fertilizer"), OutputB: AirId, Probability: 0.05},

		// --- Gases ---
		{InputA: id("poison_gas"), InputB: id("water"), OutputA: id("acid"), OutputB: AirId, Probability: 0.02},
		{InputA: id("steam"), InputB: id("stone"), OutputA: id("water"), OutputB: id("stone"), Probability: 0.05, EnergyReleased: 10, MaxTemp: ptr(50)},

		// --- Electrical ---
		{InputA: id("thunder"), InputB: id("dirt"), OutputA: AirId, OutputB: AirId, Probability: 1.0, EnergyReleased: 500},
		{InputA: id("thunder"), InputB: id("wood"), OutputA: AirId, OutputB: AirId, Probability: 1.0, EnergyReleased: 500},
		{InputA: id("thunder"), InputB: id("water"), OutputA: AirId, OutputB: id("steam"), Probability: 1.0, EnergyReleased: 500},
		{InputA: id("mercury"), InputB: id("fire"), OutputA: id("poison_gas"), OutputB: id("fire"), Probability: 0.1, MinTemp: ptr(357)},
		{InputA: id("soapy_water"), InputB: AirId, OutputA: id("soapy_water"), OutputB: id("bubble"), Probability: 0.01, MinPressure: ptr(1.2)},
		{InputA: id("bubble"), InputB: id("fire"), OutputA: AirId, OutputB: id("fire"), Probability: 0.9},
		{InputA: id("bubble"), InputB: id("stone"), OutputA: AirId, OutputB: id("stone"), Probability: 0.9},
		{InputA: id("bubble"), InputB: id("metal"), OutputA: AirId, OutputB: id("metal"), Probability: 0.9},
		{InputA: id("bubble"), InputB: id("glass"), OutputA: AirId, OutputB: id("glass"), Probability: 0.9},

		// --- Erosion ---
		{InputA: id("salt"), InputB: id("water"), OutputA: id("seawater"), OutputB: AirId, Probability: 0.1},
		{InputA: id("dirt"), InputB: id("water"), OutputA: id("sand"), OutputB: id("water"), Probability: 0.002},

		// --- Catalyzed example: spark only detonates nitro in the presence of metal casing ---
		{InputA: id("nitro"), InputB: id("spark"), OutputA: id("smoke"), OutputB: AirId, Probability: 0.9, EnergyReleased: 1500, Catalyst: cat("metal")},
	}

	for _, r := range reactions {
		if err := add(r); err != nil {
			return err
		}
	}
	return nil
}
