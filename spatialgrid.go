package simcore

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABBComponent is a falling chunk's broad-phase bounding box in world
// pixel space, kept current each frame from its KinematicComponent and
// pixel-offset extents.
type AABBComponent struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

// SpatialHashGrid is a cell-hashed AABB index used for falling-chunk
// broad-phase queries: does chunk A's bounding box overlap chunk B's, or
// any static query rect, without testing every pair. Adapted from the 3D
// version down to two axes; falling chunks never move off the XY plane.
type SpatialHashGrid struct {
	cellSize float32
	cells    map[uint64][]EntityId
}

func NewSpatialHashGrid(cellSize float32) *SpatialHashGrid {
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]EntityId),
	}
}

func (grid *SpatialHashGrid) Clear() {
	clear(grid.cells)
}

func (grid *SpatialHashGrid) Insert(id EntityId, aabb AABBComponent) {
	minX, maxX := grid.getCellIndex(aabb.Min.X()), grid.getCellIndex(aabb.Max.X())
	minY, maxY := grid.getCellIndex(aabb.Min.Y()), grid.getCellIndex(aabb.Max.Y())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			key := grid.hashKey(x, y)
			grid.cells[key] = append(grid.cells[key], id)
		}
	}
}

func (grid *SpatialHashGrid) QueryAABB(aabb AABBComponent) []EntityId {
	minX, maxX := grid.getCellIndex(aabb.Min.X()), grid.getCellIndex(aabb.Max.X())
	minY, maxY := grid.getCellIndex(aabb.Min.Y()), grid.getCellIndex(aabb.Max.Y())

	unique := make(map[EntityId]struct{})
	var results []EntityId

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			key := grid.hashKey(x, y)
			for _, id := range grid.cells[key] {
				if _, ok := unique[id]; !ok {
					unique[id] = struct{}{}
					results = append(results, id)
				}
			}
		}
	}
	return results
}

func (grid *SpatialHashGrid) getCellIndex(pos float32) int {
	return int(math.Floor(float64(pos / grid.cellSize)))
}

func (grid *SpatialHashGrid) hashKey(x, y int) uint64 {
	const p1 = 73856093
	const p2 = 19349663
	return uint64(x*p1 ^ y*p2)
}

// UpdateSpatialGrid rebuilds the grid from every falling chunk's current
// AABB. Run at the start of the FallingChunk stage; the grid it builds is
// queried by the next tick's structural Drain. Falling-chunk collision
// itself probes IsSolidAt and does not use the grid.
func UpdateSpatialGrid(cmd *Commands, grid *SpatialHashGrid) {
	grid.Clear()
	MakeQuery2[FallingChunkComponent, KinematicComponent](cmd).Map(func(id EntityId, fc *FallingChunkComponent, kc *KinematicComponent) bool {
		minDx, minDy, maxDx, maxDy := 0, 0, 0, 0
		for off := range fc.Pixels {
			if off.Dx < minDx {
				minDx = off.Dx
			}
			if off.Dx > maxDx {
				maxDx = off.Dx
			}
			if off.Dy < minDy {
				minDy = off.Dy
			}
			if off.Dy > maxDy {
				maxDy = off.Dy
			}
		}
		aabb := AABBComponent{
			Min: mgl32.Vec2{kc.Center.X() + float32(minDx), kc.Center.Y() + float32(minDy)},
			Max: mgl32.Vec2{kc.Center.X() + float32(maxDx), kc.Center.Y() + float32(maxDy)},
		}
		grid.Insert(id, aabb)
		return true
	})
}
