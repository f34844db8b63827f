package simcore

// MaterialId is a process-wide, stable identifier for a material. Id 0 is
// reserved for air; handlers address materials by symbolic constant, never
// a raw literal.
type MaterialId uint16

const AirId MaterialId = 0

// MaterialClass is the behavior family the cellular-automaton updater
// dispatches on. The set is closed and tiny, so a small switch replaces
// what the original implementation expressed as a runtime type tag.
type MaterialClass uint8

const (
	ClassSolid MaterialClass = iota
	ClassPowder
	ClassLiquid
	ClassGas
)

// MaterialDef is the full behavioral definition of one material: density
// and thermal data for the CA and temperature passes, transition targets
// for the state-change system, and conductive/generative properties for
// the electrical system. Zero values mean "no threshold"/"does not apply"
// except where documented.
type MaterialDef struct {
	Id   MaterialId
	Name string
	Class MaterialClass

	Density  float64
	Hardness float64 // meaningful for Solid only
	Friction float64
	Viscosity float64 // meaningful for Liquid only, governs horizontal spread probability

	MeltingPoint   *float64
	BoilingPoint   *float64
	FreezingPoint  *float64
	IgnitionPoint  *float64
	HeatConductivity float64

	MeltsTo  MaterialId
	BoilsTo  MaterialId
	FreezesTo MaterialId
	BurnsTo   MaterialId

	Flammable bool
	BurnRate  float64 // per-tick probability a burning pixel of this material converts

	Structural bool // participates in flood-fill anchoring
	Bedrock    bool // indestructible structural anchor; see Registry.IsBedrock

	IsFire  bool // behaves as a gas that pulses heat and randomly decays to SmokeId
	SmokeId MaterialId

	Conductive            bool
	ElectricalConductivity float64
	ElectricalResistance   float64
	PowerGeneration        float64 // added to coarse potential per tick if spark-source
	PowerDecay             float64 // subtracted from coarse potential per tick while > 0

	BaseColor [3]uint8
}

// Registry is the process-wide material table. Ids are minted by Register
// and are stable for the lifetime of the registry; lookups never panic,
// matching the core's "no panics on bad data" policy (§7) — an unknown id
// simply yields (MaterialDef{}, false).
type Registry struct {
	byId map[MaterialId]MaterialDef
	byName map[string]MaterialId
	nextId MaterialId
	fireId MaterialId
	hasFire bool
}

func NewRegistry() *Registry {
	r := &Registry{
		byId:   make(map[MaterialId]MaterialDef),
		byName: make(map[string]MaterialId),
		nextId: 1, // 0 is air
	}
	r.byId[AirId] = MaterialDef{Id: AirId, Name: "air", Class: ClassGas, Density: 0}
	r.byName["air"] = AirId
	return r
}

// Register assigns the next free id to def and stores it. Returns an error
// if a material with the same name already exists, so reaction/material
// authoring mistakes surface at construction time rather than at runtime
// (§7: "the registry should reject at construction time").
func (r *Registry) Register(def MaterialDef) (MaterialId, error) {
	if def.Name == "" {
		return 0, errInvalidMaterial("material must have a name")
	}
	if _, exists := r.byName[def.Name]; exists {
		return 0, errInvalidMaterial("material %q already registered", def.Name)
	}
	id := r.nextId
	r.nextId++
	def.Id = id
	r.byId[id] = def
	r.byName[def.Name] = id
	if def.IsFire && !r.hasFire {
		r.fireId = id
		r.hasFire = true
	}
	return id, nil
}

// FireId returns the registered material flagged IsFire, if any. The
// ignition check uses this to know what to place in an adjacent empty
// cell; it is not specific to the ignited material.
func (r *Registry) FireId() (MaterialId, bool) {
	return r.fireId, r.hasFire
}

func (r *Registry) Get(id MaterialId) (MaterialDef, bool) {
	d, ok := r.byId[id]
	return d, ok
}

func (r *Registry) ByName(name string) (MaterialId, bool) {
	id, ok := r.byName[name]
	return id, ok
}

func (r *Registry) All() []MaterialDef {
	out := make([]MaterialDef, 0, len(r.byId))
	for _, d := range r.byId {
		out = append(out, d)
	}
	return out
}

func (r *Registry) IsStructural(id MaterialId) bool {
	d, ok := r.byId[id]
	return ok && d.Structural
}

func (r *Registry) IsSolidClass(id MaterialId) bool {
	d, ok := r.byId[id]
	return ok && d.Class == ClassSolid
}

func (r *Registry) IsBedrock(id MaterialId) bool {
	d, ok := r.byId[id]
	return ok && d.Bedrock
}
