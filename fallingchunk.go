package simcore

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// FallingChunkComponent is the detached-debris payload: pixels stored as
// offsets from a rounded centroid, so translating the chunk is just moving
// the centroid (§4.10 — "store pixels as offsets...do not rotate").
type FallingChunkComponent struct {
	Id     string
	Pixels map[Offset]MaterialId
}

// KinematicComponent is the chunk's linear motion state. No rotation and
// no angular velocity: falling chunks are explicitly non-rotating per the
// spec's Non-goals.
type KinematicComponent struct {
	Center   mgl32.Vec2
	Velocity float32 // vertical, pixels/sec; positive is up
	Settled  bool
}

// NewFallingChunkEntity computes the centroid of the given (world pos,
// material) set, converts positions to centroid-relative offsets, and
// queues the entity for creation. Mirrors the teacher's AssetId minting
// (mod_assets.go) for giving long-lived engine objects a real id instead
// of a bare counter.
func NewFallingChunkEntity(cmd *Commands, pixels map[[2]int]MaterialId) {
	if len(pixels) == 0 {
		return
	}
	var sumX, sumY float64
	for pos := range pixels {
		sumX += float64(pos[0])
		sumY += float64(pos[1])
	}
	n := float64(len(pixels))
	cx := int(math.Round(sumX / n))
	cy := int(math.Round(sumY / n))

	offsets := make(map[Offset]MaterialId, len(pixels))
	for pos, mat := range pixels {
		offsets[Offset{Dx: pos[0] - cx, Dy: pos[1] - cy}] = mat
	}

	cmd.AddEntity(
		FallingChunkComponent{Id: uuid.NewString(), Pixels: offsets},
		KinematicComponent{Center: mgl32.Vec2{float32(cx), float32(cy)}},
	)
}

// UpdateFallingChunks steps every falling-chunk entity: integrate gravity,
// step downward pixel-by-pixel while every offset's target cell is
// non-solid, and settle when motion stops below the settle threshold.
// Runs synchronously inside World.Step — never on its own goroutine, since
// §5 forbids concurrent chunk-map mutation within a step.
func UpdateFallingChunks(cmd *Commands, m *ChunkManager, reg *Registry, cfg *Config, dt float64, stats *SimStats) {
	var toSettle []EntityId

	MakeQuery2[FallingChunkComponent, KinematicComponent](cmd).Map(func(eid EntityId, fc *FallingChunkComponent, kc *KinematicComponent) bool {
		kc.Velocity += cfg.Gravity * float32(dt)
		if kc.Velocity < cfg.TerminalVelocity {
			kc.Velocity = cfg.TerminalVelocity
		}

		dy := float64(kc.Velocity) * dt
		steps := int(math.Ceil(math.Abs(dy)))
		if dy > 0 {
			steps = 0 // upward motion never occurs (gravity only pulls down); guards div/ceil sign
		}

		moved := 0
		for i := 0; i < steps; i++ {
			if !canStepDown(m, reg, fc, kc.Center) {
				kc.Velocity = 0
				break
			}
			kc.Center = kc.Center.Sub(mgl32.Vec2{0, 1})
			moved++
		}

		if moved == 0 && math.Abs(float64(kc.Velocity)) < float64(-cfg.SettleVelocity) {
			kc.Settled = true
			toSettle = append(toSettle, eid)
		}
		return true
	})

	for _, eid := range toSettle {
		settleFallingChunk(cmd, m, eid)
		if stats != nil {
			stats.FallingChunksAlive--
		}
	}
}

func canStepDown(m *ChunkManager, reg *Registry, fc *FallingChunkComponent, center mgl32.Vec2) bool {
	cx, cy := int(center.X()), int(center.Y())
	for off := range fc.Pixels {
		if IsSolidAt(m, reg, cx+off.Dx, cy+off.Dy-1) {
			return false
		}
	}
	return true
}

// settleFallingChunk writes every stored pixel back to the static world at
// its current centroid-relative position and destroys the entity. Writes
// into missing chunks are dropped (§7); the chunk is destroyed regardless,
// to avoid an infinite fall.
func settleFallingChunk(cmd *Commands, m *ChunkManager, eid EntityId) {
	for _, comp := range cmd.GetAllComponents(eid) {
		fc, ok := comp.(FallingChunkComponent)
		if !ok {
			continue
		}
		kc := findKinematic(cmd, eid)
		if kc == nil {
			continue
		}
		cx, cy := int(kc.Center.X()), int(kc.Center.Y())
		for off, mat := range fc.Pixels {
			m.SetMaterial(cx+off.Dx, cy+off.Dy, mat)
		}
	}
	cmd.RemoveEntity(eid)
}

func findKinematic(cmd *Commands, eid EntityId) *KinematicComponent {
	for _, comp := range cmd.GetAllComponents(eid) {
		if kc, ok := comp.(KinematicComponent); ok {
			return &kc
		}
	}
	return nil
}

func FallingChunkCount(cmd *Commands) int {
	count := 0
	MakeQuery1[FallingChunkComponent](cmd).Map(func(eid EntityId, fc *FallingChunkComponent) bool {
		count++
		return true
	})
	return count
}
