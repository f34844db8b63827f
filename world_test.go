package simcore

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countMaterial scans an inclusive world-space rectangle and counts pixels
// of the given material.
func countMaterial(w *World, minX, minY, maxX, maxY int, id MaterialId) int {
	n := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if m, ok := w.GetMaterial(x, y); ok && m == id {
				n++
			}
		}
	}
	return n
}

func TestWorld_SandPileCollapsesOntoBedrockFloor(t *testing.T) {
	cfg := NewDefaultConfig()
	reg := NewRegistry()
	bedrock, err := reg.Register(MaterialDef{Name: "bedrock", Class: ClassSolid, Bedrock: true, Structural: true})
	require.NoError(t, err)
	sand, err := reg.Register(MaterialDef{Name: "sand", Class: ClassPowder, Density: 160})
	require.NoError(t, err)
	rr := NewReactionRegistry()

	w := NewWorld(cfg, reg, rr, sand, nil)
	w.EnsureChunksForArea(-20, -5, 40, 30)
	w.SetAnchors([]ChunkCoord{{X: 0, Y: 0}})

	for x := 0; x < 20; x++ {
		w.SetPixel(x, 0, bedrock)
	}
	for x := 0; x < 10; x++ {
		w.SetPixel(x, 20, sand)
	}

	stats := &SimStats{}
	rng := fixedRng{n: 0}
	for i := 0; i < 60; i++ {
		w.Step(1.0/60.0, stats, rng, false)
	}

	total := countMaterial(w, -20, 1, 40, 25, sand)
	assert.Equal(t, 10, total, "sand is conserved, it only ever relocates")
	assert.Zero(t, countMaterial(w, -20, -5, 40, 0, sand), "no sand pixel should end up at or below the bedrock floor")
}

func TestWorld_WaterAndLavaQuenchIntoSteamAndStone(t *testing.T) {
	cfg := NewDefaultConfig()
	reg := NewRegistry()
	water, err := reg.Register(MaterialDef{Name: "water", Class: ClassLiquid, Density: 100})
	require.NoError(t, err)
	lava, err := reg.Register(MaterialDef{Name: "lava", Class: ClassLiquid, Density: 300})
	require.NoError(t, err)
	steam, err := reg.Register(MaterialDef{Name: "steam", Class: ClassGas, Density: 1})
	require.NoError(t, err)
	stone, err := reg.Register(MaterialDef{Name: "stone", Class: ClassSolid, Density: 260})
	require.NoError(t, err)

	rr := NewReactionRegistry()
	require.NoError(t, rr.Add(reg, Reaction{
		InputA: water, InputB: lava,
		OutputA: steam, OutputB: stone,
		Probability:    1.0,
		EnergyReleased: -100,
	}))

	w := NewWorld(cfg, reg, rr, stone, nil)
	w.EnsureChunksForArea(-5, -5, 10, 15)
	w.SetAnchors([]ChunkCoord{{X: 0, Y: 0}})

	w.SetPixel(0, 5, water)
	w.SetPixel(0, 4, lava)

	rng := NewRng(42)
	stats := &SimStats{}

	converted := false
	var lavaTempAfter float64
	for i := 0; i < 30 && !converted; i++ {
		w.Step(1.0/60.0, stats, rng, false)
		if m, ok := w.GetMaterial(0, 4); ok && m == stone {
			converted = true
			lavaTempAfter, _ = w.GetTemperatureAtPixel(0, 4)
		}
	}

	require.True(t, converted, "the water/lava pair should react into stone/steam within 30 steps")
	assert.Less(t, lavaTempAfter, cfg.TemperatureAmbient-50, "the reaction site should have cooled by at least 50C from the -100C energy release")
}

func TestWorld_UnanchoredPillarSegmentBecomesFallingChunkAndSettles(t *testing.T) {
	cfg := NewDefaultConfig()
	reg := NewRegistry()
	bedrock, err := reg.Register(MaterialDef{Name: "bedrock", Class: ClassSolid, Bedrock: true, Structural: true})
	require.NoError(t, err)
	stone, err := reg.Register(MaterialDef{Name: "stone", Class: ClassSolid, Structural: true})
	require.NoError(t, err)
	debris, err := reg.Register(MaterialDef{Name: "rubble", Class: ClassPowder, Density: 150})
	require.NoError(t, err)
	rr := NewReactionRegistry()

	w := NewWorld(cfg, reg, rr, debris, nil)
	w.EnsureChunksForArea(-10, -10, 20, 60)
	w.SetAnchors([]ChunkCoord{{X: 0, Y: 0}})

	for x := 0; x < 5; x++ {
		w.SetPixel(x, 0, bedrock)
	}
	for x := 0; x < 3; x++ {
		for y := 1; y <= 50; y++ {
			w.SetPixel(x, y, stone)
		}
	}

	rng := fixedRng{n: 0}
	stats := &SimStats{}

	// Mine out the base of the pillar; each removal is a structural solid
	// being overwritten, so it auto-schedules a re-check.
	for x := 0; x < 3; x++ {
		for y := 1; y <= 3; y++ {
			w.SetPixel(x, y, AirId)
		}
	}

	w.Step(1.0/60.0, stats, rng, false)

	require.Equal(t, 1, w.FallingChunkCount(), "the unanchored upper segment should detach as a single falling chunk")

	var pixelCount int
	w.RenderFallingChunks(func(id string, center mgl32.Vec2, pixels map[Offset]MaterialId) {
		pixelCount = len(pixels)
	})
	assert.InDelta(t, 141, pixelCount, 20, "the detached segment is roughly 3 wide by 47 tall")

	for i := 0; i < 500 && w.FallingChunkCount() > 0; i++ {
		w.Step(1.0/60.0, stats, rng, false)
	}
	assert.Zero(t, w.FallingChunkCount(), "the falling segment should have settled back onto the remaining stub")
}

func TestWorld_BatteryEnergizesConnectedWirePath(t *testing.T) {
	cfg := NewDefaultConfig()
	reg := NewRegistry()
	battery, err := reg.Register(MaterialDef{
		Name: "battery", Class: ClassSolid,
		Conductive: true, ElectricalConductivity: 1, PowerGeneration: 10,
	})
	require.NoError(t, err)
	wire, err := reg.Register(MaterialDef{
		Name: "wire", Class: ClassSolid,
		Conductive: true, ElectricalConductivity: 0.5, ElectricalResistance: 0.1,
	})
	require.NoError(t, err)
	rr := NewReactionRegistry()

	w := NewWorld(cfg, reg, rr, wire, nil)
	w.EnsureChunksForArea(-5, -5, 20, 5)
	w.SetAnchors([]ChunkCoord{{X: 0, Y: 0}})

	w.SetPixelFull(0, 0, Pixel{Material: battery, Flags: FlagSparkSource})
	for x := 1; x <= 10; x++ {
		w.SetPixel(x, 0, wire)
	}

	rng := fixedRng{n: 0}
	stats := &SimStats{}
	for i := 0; i < 10; i++ {
		w.Step(1.0/60.0, stats, rng, false)
	}

	for x := 1; x <= 10; x++ {
		potential, ok := w.PotentialAtPixel(x, 0)
		require.True(t, ok)
		assert.Greater(t, potential, 0.0, "wire pixel at x=%d should carry nonzero potential", x)

		px, ok := w.GetPixel(x, 0)
		require.True(t, ok)
		assert.True(t, px.Flags.Has(FlagPowered), "wire pixel at x=%d should be flagged powered", x)
	}
}

func TestWorld_FireConsumesMajorityOfWoodBlock(t *testing.T) {
	cfg := NewDefaultConfig()
	reg := NewRegistry()
	smoke, err := reg.Register(MaterialDef{Name: "smoke", Class: ClassGas, Density: 1})
	require.NoError(t, err)
	fire, err := reg.Register(MaterialDef{Name: "fire", Class: ClassGas, Density: 1, IsFire: true, SmokeId: smoke})
	require.NoError(t, err)
	wood, err := reg.Register(MaterialDef{
		Name: "wood", Class: ClassSolid, Density: 70,
		Flammable: true, IgnitionPoint: ptr(300), BurnRate: 0.02,
	})
	require.NoError(t, err)
	rr := NewReactionRegistry()

	w := NewWorld(cfg, reg, rr, wood, nil)
	w.EnsureChunksForArea(-5, -5, 20, 20)
	w.SetAnchors([]ChunkCoord{{X: 0, Y: 0}})

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			w.SetPixel(x, y, wood)
		}
	}
	w.SetPixel(5, 5, fire)

	rng := NewRng(7)
	stats := &SimStats{}
	for i := 0; i < 500; i++ {
		w.Step(1.0/60.0, stats, rng, false)
	}

	remainingWood := countMaterial(w, 0, 0, 9, 9, wood)
	smokeSeen := countMaterial(w, -5, -5, 20, 20, smoke)

	assert.Less(t, remainingWood, 50, "at least half the wood block should have burned away within 500 steps")
	assert.Greater(t, smokeSeen, 0, "some fire pixels should have decayed to smoke")
}

func TestWorld_ThunderDestroysNonConductiveNeighbors(t *testing.T) {
	cfg := NewDefaultConfig()
	reg := NewRegistry()
	thunder, err := reg.Register(MaterialDef{Name: "thunder", Class: ClassGas, Conductive: false})
	require.NoError(t, err)
	dirt, err := reg.Register(MaterialDef{Name: "dirt", Class: ClassSolid, Conductive: false})
	require.NoError(t, err)
	rr := NewReactionRegistry()

	w := NewWorld(cfg, reg, rr, dirt, nil)
	w.EnsureChunksForArea(-5, -5, 15, 15)
	w.SetAnchors([]ChunkCoord{{X: 0, Y: 0}})

	w.SetPixel(5, 5, thunder)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			// Dirt on every side, not just the four checked below, so the
			// thunder pixel (a gas) has no empty cell to drift into during
			// the cellular-automata stage that runs before it detonates.
			w.SetPixel(5+dx, 5+dy, dirt)
		}
	}
	w.SetPotentialAtPixel(5, 5, 50)

	tempBefore, ok := w.GetTemperatureAtPixel(5, 5)
	require.True(t, ok)

	rng := fixedRng{n: 0}
	stats := &SimStats{}
	w.Step(1.0/60.0, stats, rng, false)

	for _, p := range [][2]int{{4, 5}, {6, 5}, {5, 4}, {5, 6}} {
		m, ok := w.GetMaterial(p[0], p[1])
		require.True(t, ok)
		assert.Equal(t, AirId, m, "dirt at (%d,%d) should have been destroyed by the detonation", p[0], p[1])
	}

	m, ok := w.GetMaterial(5, 5)
	require.True(t, ok)
	assert.Equal(t, AirId, m, "the thunder pixel consumes itself on detonation")

	tempAfter, ok := w.GetTemperatureAtPixel(5, 5)
	require.True(t, ok)
	assert.GreaterOrEqual(t, tempAfter-tempBefore, 500.0, "detonation should add at least 500C at its own cell")
}
