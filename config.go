package simcore

// Config holds the simulation's tunable constants. The engine never loads
// these from a file — like the teacher's own constructor-with-literal-
// defaults structs, callers get a sane baseline from NewDefaultConfig and
// override fields on the returned value. TemperatureHz,
// BurnConsumeBaseRate and ElectricalResistiveHeat are carried for callers
// but are not read by any pass.
type Config struct {
	// Chunk & coarse-field geometry
	ChunkSize      int // pixels per chunk side
	CoarseCellSize int // pixels per coarse temperature/pressure/potential cell
	ActiveRadius   int // Chebyshev radius, in chunks, kept "active" around an anchor

	// Temperature
	TemperatureHz         float64 // nominal diffusion rate; TemperatureSimulator throttles by step count (every other step), not by this value
	TemperatureDiffusionA float64 // von Neumann neighbor-averaging coefficient
	TemperatureMax        float64 // hard cap, degrees C
	TemperatureAmbient    float64

	// Chemistry
	FireHeatPerTick      float64 // degrees C added to a fire pixel's own coarse cell each tick
	FireToSmokeChance    float64 // per-tick probability a fire pixel becomes smoke
	BurnHeatPerTick      float64 // degrees C added while a material burns
	BurnConsumeBaseRate  float64 // not read: burning pixels convert with their material's MaterialDef.BurnRate

	// Electrical propagation
	ElectricalMaxDepthPerFrame int
	ElectricalQueueCap         int
	ElectricalEmitCap          int // max sources emitted per chunk per frame
	ElectricalResistiveHeat    float64 // not read: resistive heating uses a fixed factor of 0.1

	// Structural integrity
	StructuralFloodCap          int // Chebyshev radius cap on one flood-fill probe
	StructuralSmallDebrisPixels int // regions smaller than this crumble to powder; regions this size or larger fall as one chunk

	// Falling-chunk kinematics
	Gravity         float32 // pixels/s^2, negative is down
	TerminalVelocity float32
	SettleVelocity   float32 // speed below which a falling chunk is considered at rest
}

func NewDefaultConfig() *Config {
	return &Config{
		ChunkSize:      64,
		CoarseCellSize: 8,
		ActiveRadius:   6,

		TemperatureHz:         30,
		TemperatureDiffusionA: 0.1,
		TemperatureMax:        3000,
		TemperatureAmbient:    20,

		FireHeatPerTick:     50,
		FireToSmokeChance:   0.02,
		BurnHeatPerTick:     20,
		BurnConsumeBaseRate: 0.05,

		ElectricalMaxDepthPerFrame: 128,
		ElectricalQueueCap:         256,
		ElectricalEmitCap:          100,
		ElectricalResistiveHeat:    5,

		StructuralFloodCap:          64,
		StructuralSmallDebrisPixels: 50,

		Gravity:          -300,
		TerminalVelocity: -500,
		SettleVelocity:   -5,
	}
}
