package simcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRng struct {
	f64 float64
	n   int
}

func (r fixedRng) Float64() float64 { return r.f64 }
func (r fixedRng) Intn(int) int     { return r.n }

func TestTryMove_SwapsWithLowerDensityOccupant(t *testing.T) {
	cfg := NewDefaultConfig()
	m := NewChunkManager(cfg, nil)
	m.EnsureChunksForArea(0, 0, 64, 64)

	reg := NewRegistry()
	heavy, _ := reg.Register(MaterialDef{Name: "heavy", Class: ClassPowder, Density: 200})
	light, _ := reg.Register(MaterialDef{Name: "light", Class: ClassGas, Density: 1})

	m.SetMaterial(5, 5, heavy)
	m.SetMaterial(5, 4, light)

	ok := tryMove(m, reg, nil, 5, 5, 5, 4, 200)
	require.True(t, ok)

	below, _ := m.GetPixel(5, 5)
	above, _ := m.GetPixel(5, 4)
	assert.Equal(t, light, below.Material)
	assert.Equal(t, heavy, above.Material)
}

func TestTryMove_FailsAgainstHigherOrEqualDensity(t *testing.T) {
	cfg := NewDefaultConfig()
	m := NewChunkManager(cfg, nil)
	m.EnsureChunksForArea(0, 0, 64, 64)

	reg := NewRegistry()
	sand, _ := reg.Register(MaterialDef{Name: "sand", Class: ClassPowder, Density: 160})
	stone, _ := reg.Register(MaterialDef{Name: "stone", Class: ClassSolid, Density: 260})

	m.SetMaterial(5, 5, sand)
	m.SetMaterial(5, 4, stone)

	ok := tryMove(m, reg, nil, 5, 5, 5, 4, 160)
	assert.False(t, ok)
}

func TestUpdatePowder_FallsStraightDownIntoAir(t *testing.T) {
	cfg := NewDefaultConfig()
	m := NewChunkManager(cfg, nil)
	m.EnsureChunksForArea(0, 0, 64, 64)

	reg := NewRegistry()
	sand, _ := reg.Register(MaterialDef{Name: "sand", Class: ClassPowder, Density: 160})
	m.SetMaterial(10, 20, sand)

	updatePowder(m, reg, fixedRng{n: 0}, nil, 10, 20, MaterialDef{Id: sand, Density: 160})

	px, _ := m.GetPixel(10, 19)
	assert.Equal(t, sand, px.Material)
	assert.True(t, px.Flags.Has(FlagUpdatedThisFrame))

	old, _ := m.GetPixel(10, 20)
	assert.True(t, old.IsEmpty())
}

func TestUpdateChunkCA_StackedPowderCascadesInASinglePass(t *testing.T) {
	cfg := NewDefaultConfig()
	m := NewChunkManager(cfg, nil)
	m.EnsureChunksForArea(0, 0, 64, 64)
	m.RefreshActiveSet(ChunkCoord{}, 2)

	reg := NewRegistry()
	sand, _ := reg.Register(MaterialDef{Name: "sand", Class: ClassPowder, Density: 160})

	// A column of three powder pixels stacked over empty space. Bottom-up
	// row iteration must let each pixel fall into the cell just vacated by
	// the one below it in the same pass: every pixel in the stack should
	// shift down by one row. Top-down iteration would block the two upper
	// pixels against their not-yet-moved neighbor below, leaving only the
	// bottom pixel free to fall.
	c, _ := m.Chunk(ChunkCoord{})
	c.SetPixel(10, 10, Pixel{Material: sand})
	c.SetPixel(10, 11, Pixel{Material: sand})
	c.SetPixel(10, 12, Pixel{Material: sand})

	UpdateCellularAutomata(m, reg, fixedRng{n: 0}, nil)

	for ly := 9; ly <= 11; ly++ {
		px := c.GetPixel(10, ly)
		assert.Equal(t, sand, px.Material, "sand should have shifted down into row %d in the same pass", ly)
	}
	px := c.GetPixel(10, 12)
	assert.True(t, px.IsEmpty(), "the top of the stack should have emptied out as the whole column shifted down")
}

func TestUpdateChunkCA_SkipsAlreadyUpdatedPixel(t *testing.T) {
	cfg := NewDefaultConfig()
	m := NewChunkManager(cfg, nil)
	m.EnsureChunksForArea(0, 0, 64, 64)
	m.RefreshActiveSet(ChunkCoord{}, 2)

	reg := NewRegistry()
	sand, _ := reg.Register(MaterialDef{Name: "sand", Class: ClassPowder, Density: 160})

	c, _ := m.Chunk(ChunkCoord{})
	c.SetPixel(10, 10, Pixel{Material: sand, Flags: FlagUpdatedThisFrame})

	UpdateCellularAutomata(m, reg, fixedRng{n: 0}, nil)

	px := c.GetPixel(10, 10)
	assert.Equal(t, sand, px.Material, "a pixel already flagged updated-this-frame must not move again")
}
