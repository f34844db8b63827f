package simcore

import "github.com/go-gl/mathgl/mgl32"

// World is the engine's public façade: every collaborator (CLI, scripting,
// networking, AI) drives the simulation through this type alone, never by
// reaching into ChunkManager, Registry, or the ECS directly.
type World struct {
	cfg        *Config
	chunks     *ChunkManager
	materials  *Registry
	reactions  *ReactionRegistry
	structural *StructuralSystem
	temp       *TemperatureSimulator
	grid       *SpatialHashGrid
	app        *App

	debrisMaterial MaterialId
	logger         Logger

	// set fresh by Step, read by the systems installed into app's stages.
	rng     Rng
	stats   *SimStats
	dt      float64
	paused  bool
	anchors []ChunkCoord
}

// NewWorld wires every sub-system together behind the App schedule. reg and
// rr should already be populated (DefaultMaterials/SeedDefaultReactions, or
// a caller's own catalogue); debrisMaterial is the material small unanchored
// regions crumble into (§4.9) — passed explicitly so the choice is a fixed,
// reproducible parameter rather than guessed at conversion time.
func NewWorld(cfg *Config, reg *Registry, rr *ReactionRegistry, debrisMaterial MaterialId, logger Logger) *World {
	if logger == nil {
		logger = NewNopLogger()
	}
	w := &World{
		cfg:            cfg,
		chunks:         NewChunkManager(cfg, logger),
		materials:      reg,
		reactions:      rr,
		structural:     NewStructuralSystem(logger),
		temp:           NewTemperatureSimulator(cfg),
		grid:           NewSpatialHashGrid(float32(cfg.ChunkSize)),
		debrisMaterial: debrisMaterial,
		logger:         logger,
	}
	w.app = NewApp()
	w.app.UseModules(worldModule{w: w})
	return w
}

type worldModule struct{ w *World }

func (m worldModule) Install(app *App, cmd *Commands) {
	w := m.w
	app.UseSystem(System(func(cmd *Commands) {
		UpdateStateChanges(w.chunks, w.materials, w.structural)
	}).InStage(Chemistry))

	app.UseSystem(System(func(cmd *Commands) {
		UpdateChemistry(w.chunks, w.materials, w.rng, w.cfg, w.stats, w.structural)
	}).InStage(Chemistry))

	app.UseSystem(System(func(cmd *Commands) {
		UpdateReactions(w.chunks, w.materials, w.reactions, w.rng, w.cfg, w.stats, w.structural)
	}).InStage(Reaction))

	app.UseSystem(System(func(cmd *Commands) {
		UpdateCellularAutomata(w.chunks, w.materials, w.rng, w.stats)
	}).InStage(CellularAutomata))

	app.UseSystem(System(func(cmd *Commands) {
		w.temp.Step(w.chunks)
	}).InStage(Temperature))

	app.UseSystem(System(func(cmd *Commands) {
		UpdateElectrical(w.chunks, w.materials, w.rng, w.cfg, w.stats, w.logger)
	}).InStage(Electrical))

	app.UseSystem(System(func(cmd *Commands) {
		w.structural.Drain(w.chunks, w.materials, w.cfg, w.debrisMaterial, w.grid, func(pixels map[[2]int]MaterialId) {
			NewFallingChunkEntity(cmd, pixels)
			if w.stats != nil {
				w.stats.FallingChunksAlive++
			}
		})
	}).InStage(Structural))

	app.UseSystem(System(func(cmd *Commands) {
		UpdateSpatialGrid(cmd, w.grid)
	}).InStage(FallingChunk))

	app.UseSystem(System(func(cmd *Commands) {
		if w.paused {
			return
		}
		UpdateFallingChunks(cmd, w.chunks, w.materials, w.cfg, w.dt, w.stats)
	}).InStage(FallingChunk))

	app.UseSystem(System(func(cmd *Commands) {
		for _, c := range w.chunks.ActiveChunks() {
			c.ClearUpdateFlags()
			c.ClearDirtyRect()
		}
	}).InStage(Cleanup))
}

// Step advances the simulation by one tick (§2's 10-step data flow). The
// anchor list drives the active-chunk refresh; stats accumulates per-tick
// counters (nil is allowed — callers that don't care pass nil).
func (w *World) Step(dt float64, stats *SimStats, rng Rng, paused bool) {
	if stats != nil {
		stats.reset()
	}
	w.dt, w.stats, w.rng, w.paused = dt, stats, rng, paused

	for _, a := range w.anchors {
		w.chunks.RefreshActiveSet(a, w.cfg.ActiveRadius)
	}

	if paused {
		return
	}
	w.app.StepOnce()

	if stats != nil {
		stats.ChunksActive = w.chunks.ActiveCount()
		stats.ChunksLoaded = w.chunks.LoadedCount()
		stats.FallingChunksAlive = FallingChunkCount(w.app.Commands())
	}
}

// SetAnchors replaces the set of points RefreshActiveSet is run against
// each step (typically one per player/camera).
func (w *World) SetAnchors(anchors []ChunkCoord) { w.anchors = anchors }

// --- Query surface ---

func (w *World) GetPixel(wx, wy int) (Pixel, bool) { return w.chunks.GetPixel(wx, wy) }

func (w *World) GetMaterial(wx, wy int) (MaterialId, bool) {
	p, ok := w.chunks.GetPixel(wx, wy)
	if !ok {
		return 0, false
	}
	return p.Material, true
}

func (w *World) GetTemperatureAtPixel(wx, wy int) (float64, bool) {
	c, lx, ly, ok := w.chunks.ResolveGlobal(wx, wy)
	if !ok {
		return 0, false
	}
	return c.Temperature(lx, ly), true
}

func (w *World) PotentialAtPixel(wx, wy int) (float64, bool) {
	c, lx, ly, ok := w.chunks.ResolveGlobal(wx, wy)
	if !ok {
		return 0, false
	}
	return c.Potential(lx, ly), true
}

// SetPotentialAtPixel injects electrical potential directly at (wx, wy),
// for scripted or scenario-driven charge sources that bypass the normal
// spark-source emission path.
func (w *World) SetPotentialAtPixel(wx, wy int, v float64) {
	c, lx, ly, ok := w.chunks.ResolveGlobal(wx, wy)
	if !ok {
		return
	}
	c.SetPotential(lx, ly, v)
}

func (w *World) IsSolidAt(wx, wy int) bool { return IsSolidAt(w.chunks, w.materials, wx, wy) }

func (w *World) Raycast(from, dir mgl32.Vec2, maxDistance float64) (RaycastHit, bool) {
	return Raycast(w.chunks, from, dir, maxDistance)
}

func (w *World) RaycastFiltered(from, dir mgl32.Vec2, radiusOffset, maxDistance float64, allowed MaterialClass) (RaycastHit, bool) {
	return RaycastFiltered(w.chunks, w.materials, from, dir, radiusOffset, maxDistance, allowed)
}

func (w *World) RectCollides(cx, cy, hw, hh float64) bool {
	return RectCollides(w.chunks, w.materials, cx, cy, hw, hh)
}

func (w *World) CircleCollides(cx, cy, radius float64) bool {
	return CircleCollides(w.chunks, w.materials, cx, cy, radius)
}

func (w *World) Grounded(cx, cy, width, height float64) bool {
	return Grounded(w.chunks, w.materials, cx, cy, width, height)
}

// --- Mutation surface ---

// SetPixel writes a material at (wx, wy) and, if the pixel it replaced was
// a structural solid, schedules a structural check there — the "mining"
// trigger in §4.9's scheduling rule.
func (w *World) SetPixel(wx, wy int, id MaterialId) {
	w.scheduleIfStructuralLoss(wx, wy)
	w.chunks.SetMaterial(wx, wy, id)
}

func (w *World) SetPixelFull(wx, wy int, p Pixel) {
	w.scheduleIfStructuralLoss(wx, wy)
	w.chunks.SetPixel(wx, wy, p)
}

func (w *World) scheduleIfStructuralLoss(wx, wy int) {
	if p, ok := w.chunks.GetPixel(wx, wy); ok && w.materials.IsStructural(p.Material) {
		w.structural.ScheduleCheck(wx, wy)
	}
}

// SpawnCircularBrush sets every pixel within radius of (wx, wy) to id,
// using the same sample test as CircleCollides but exhaustively over the
// bounding box rather than 8 ray samples, since a brush must fill solidly.
// This is the "explosion" trigger in §4.9's scheduling rule.
func (w *World) SpawnCircularBrush(wx, wy int, id MaterialId, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			w.SetPixel(wx+dx, wy+dy, id)
		}
	}
}

func (w *World) ClearAllChunks() { w.chunks.ClearAllChunks() }

func (w *World) EnsureChunksForArea(minX, minY, maxX, maxY int) {
	w.chunks.EnsureChunksForArea(minX, minY, maxX, maxY)
}

func (w *World) GenerateChunk(cx, cy int) *Chunk {
	return w.chunks.GenerateChunk(ChunkCoord{X: cx, Y: cy})
}

func (w *World) EvictDistantChunks(anchor ChunkCoord) {
	w.chunks.EvictDistantChunks(anchor, w.cfg.ActiveRadius)
}

func (w *World) InsertChunk(c *Chunk) { w.chunks.InsertChunk(c) }

// --- Structural & falling-chunk surface ---

// ScheduleCheck queues a structural anchor re-check at (wx, wy); drained
// automatically during the next Step's Structural stage.
func (w *World) ScheduleCheck(wx, wy int) { w.structural.ScheduleCheck(wx, wy) }

func (w *World) FallingChunkCount() int { return FallingChunkCount(w.app.Commands()) }

// RenderFallingChunks calls fn once per live falling chunk with its
// current centroid and offset-material map, for a host's draw pass.
func (w *World) RenderFallingChunks(fn func(id string, center mgl32.Vec2, pixels map[Offset]MaterialId)) {
	MakeQuery2[FallingChunkComponent, KinematicComponent](w.app.Commands()).Map(func(eid EntityId, fc *FallingChunkComponent, kc *KinematicComponent) bool {
		fn(fc.Id, kc.Center, fc.Pixels)
		return true
	})
}

// --- Material registry surface ---

func (w *World) Materials() *Registry { return w.materials }

func (w *World) Reactions() *ReactionRegistry { return w.reactions }

func (w *World) Config() *Config { return w.cfg }
