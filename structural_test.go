package simcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChunkManager(t *testing.T) (*ChunkManager, *Registry, MaterialId, MaterialId, MaterialId) {
	t.Helper()
	cfg := NewDefaultConfig()
	m := NewChunkManager(cfg, nil)
	m.EnsureChunksForArea(-4, -4, 200, 200)

	reg := NewRegistry()
	stone, err := reg.Register(MaterialDef{Name: "stone", Class: ClassSolid, Structural: true})
	require.NoError(t, err)
	bedrock, err := reg.Register(MaterialDef{Name: "bedrock", Class: ClassSolid, Structural: true, Bedrock: true})
	require.NoError(t, err)
	sand, err := reg.Register(MaterialDef{Name: "sand", Class: ClassPowder})
	require.NoError(t, err)
	return m, reg, stone, bedrock, sand
}

func TestStructural_SmallUnanchoredRegionConvertsToDebris(t *testing.T) {
	m, reg, stone, _, sand := newTestChunkManager(t)
	cfg := NewDefaultConfig()

	// A small floating stone blob, nowhere near bedrock.
	positions := [][2]int{{10, 10}, {11, 10}, {10, 11}}
	for _, p := range positions {
		m.SetMaterial(p[0], p[1], stone)
	}

	sys := NewStructuralSystem(nil)
	sys.ScheduleCheck(10, 10)

	var fellCount int
	sys.Drain(m, reg, cfg, sand, nil, func(pixels map[[2]int]MaterialId) { fellCount = len(pixels) })

	assert.Zero(t, fellCount, "a 3-pixel region is below the small-debris threshold and should not fall")
	for _, p := range positions {
		px, ok := m.GetPixel(p[0], p[1])
		require.True(t, ok)
		assert.Equal(t, sand, px.Material)
	}
}

func TestStructural_BedrockAnchoredRegionIsUntouched(t *testing.T) {
	m, reg, stone, bedrock, sand := newTestChunkManager(t)
	cfg := NewDefaultConfig()

	m.SetMaterial(0, 0, bedrock)
	m.SetMaterial(0, 1, stone)
	m.SetMaterial(0, 2, stone)

	sys := NewStructuralSystem(nil)
	sys.ScheduleCheck(0, 2)

	called := false
	sys.Drain(m, reg, cfg, sand, nil, func(pixels map[[2]int]MaterialId) { called = true })

	assert.False(t, called)
	px, _ := m.GetPixel(0, 2)
	assert.Equal(t, stone, px.Material)
}

func TestStructural_LargeUnanchoredRegionBecomesFallingChunk(t *testing.T) {
	m, reg, stone, _, sand := newTestChunkManager(t)
	cfg := NewDefaultConfig()
	cfg.StructuralSmallDebrisPixels = 3 // shrink the threshold so a small test fixture exercises the "large" path

	positions := [][2]int{{20, 20}, {21, 20}, {20, 21}, {21, 21}}
	for _, p := range positions {
		m.SetMaterial(p[0], p[1], stone)
	}

	sys := NewStructuralSystem(nil)
	sys.ScheduleCheck(20, 20)

	var captured map[[2]int]MaterialId
	sys.Drain(m, reg, cfg, sand, nil, func(pixels map[[2]int]MaterialId) { captured = pixels })

	require.NotNil(t, captured)
	assert.Len(t, captured, len(positions))
	for _, p := range positions {
		px, ok := m.GetPixel(p[0], p[1])
		require.True(t, ok)
		assert.True(t, px.IsEmpty(), "converted region should clear to air in the static grid")
	}
}

func TestStructural_FloodCapExceededTreatedAsAnchored(t *testing.T) {
	m, reg, stone, _, sand := newTestChunkManager(t)
	cfg := NewDefaultConfig()
	cfg.StructuralFloodCap = 2

	for x := 0; x < 20; x++ {
		m.SetMaterial(x, 0, stone)
	}

	sys := NewStructuralSystem(nil)
	sys.ScheduleCheck(0, 0)

	called := false
	sys.Drain(m, reg, cfg, sand, nil, func(pixels map[[2]int]MaterialId) { called = true })

	assert.False(t, called, "a region exceeding the flood cap must be treated as anchored")
}
