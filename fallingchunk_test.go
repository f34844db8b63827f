package simcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallingChunkEntity_OffsetsAreCentroidRelative(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()

	pixels := map[[2]int]MaterialId{
		{10, 10}: 1,
		{11, 10}: 1,
		{10, 11}: 1,
		{11, 11}: 1,
	}
	NewFallingChunkEntity(cmd, pixels)
	app.FlushCommands()

	count := 0
	MakeQuery2[FallingChunkComponent, KinematicComponent](cmd).Map(func(eid EntityId, fc *FallingChunkComponent, kc *KinematicComponent) bool {
		count++
		assert.NotEmpty(t, fc.Id)
		assert.Len(t, fc.Pixels, 4)
		assert.InDelta(t, 10.5, kc.Center.X(), 1.0)
		assert.InDelta(t, 10.5, kc.Center.Y(), 1.0)
		for off := range fc.Pixels {
			reconstructedX := int(kc.Center.X()) + off.Dx
			reconstructedY := int(kc.Center.Y()) + off.Dy
			_, ok := pixels[[2]int{reconstructedX, reconstructedY}]
			assert.True(t, ok, "offset must map back to one of the original world positions")
		}
		return true
	})
	assert.Equal(t, 1, count)
}

func TestUpdateFallingChunks_SettlesOnSolidGround(t *testing.T) {
	cfg := NewDefaultConfig()
	m := NewChunkManager(cfg, nil)
	m.EnsureChunksForArea(-10, -10, 200, 200)

	reg := NewRegistry()
	bedrock, _ := reg.Register(MaterialDef{Name: "bedrock", Class: ClassSolid, Bedrock: true, Structural: true})
	stone, _ := reg.Register(MaterialDef{Name: "stone", Class: ClassSolid, Structural: true})

	for x := 0; x < 5; x++ {
		m.SetMaterial(x, 0, bedrock)
	}

	app := NewApp()
	cmd := app.Commands()
	NewFallingChunkEntity(cmd, map[[2]int]MaterialId{{2, 5}: stone})
	app.FlushCommands()

	stats := &SimStats{}
	for i := 0; i < 200 && FallingChunkCount(cmd) > 0; i++ {
		UpdateFallingChunks(cmd, m, reg, cfg, 1.0/60.0, stats)
		app.FlushCommands()
	}

	require.Zero(t, FallingChunkCount(cmd), "the chunk should have settled onto bedrock")
	px, ok := m.GetPixel(2, 1)
	require.True(t, ok)
	assert.Equal(t, stone, px.Material)
}
