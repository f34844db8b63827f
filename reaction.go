package simcore

import "math"

// Reaction is one row of the reaction table: a material pair plus optional
// condition predicates and probabilistic outputs. InputA/InputB are stored
// in authoring order; UpdateReactions swaps outputs if the pixel pair is
// encountered in the opposite order (§4.7).
type Reaction struct {
	InputA, InputB   MaterialId
	MinTemp, MaxTemp *float64
	MinLight         *float64
	MinPressure      *float64
	Catalyst         *MaterialId
	OutputA, OutputB MaterialId
	Probability      float64
	EnergyReleased   float64 // signed; added to both sites' coarse temperature on application
}

func pairKey(a, b MaterialId) (MaterialId, MaterialId) {
	if a <= b {
		return a, b
	}
	return b, a
}

// ReactionRegistry indexes reactions by their unordered material pair, so
// lookup is O(1) to find the bucket plus O(k) to scan the few reactions
// sharing that pair.
type ReactionRegistry struct {
	byPair map[[2]MaterialId][]Reaction
}

func NewReactionRegistry() *ReactionRegistry {
	return &ReactionRegistry{byPair: make(map[[2]MaterialId][]Reaction)}
}

// Add validates that both inputs and outputs (and the catalyst, if any)
// are registered materials, then stores the reaction. Per §7, bad material
// references are rejected at construction time, not at match time.
func (rr *ReactionRegistry) Add(reg *Registry, r Reaction) error {
	for _, id := range []MaterialId{r.InputA, r.InputB, r.OutputA, r.OutputB} {
		if _, ok := reg.Get(id); !ok {
			return errInvalidReaction("material id %d is not registered", id)
		}
	}
	if r.Catalyst != nil {
		if _, ok := reg.Get(*r.Catalyst); !ok {
			return errInvalidReaction("catalyst material id %d is not registered", *r.Catalyst)
		}
	}
	var key [2]MaterialId
	key[0], key[1] = pairKey(r.InputA, r.InputB)
	rr.byPair[key] = append(rr.byPair[key], r)
	return nil
}

// Find returns the first reaction whose inputs are {a, b} and whose
// optional predicates are all satisfied, plus whether a and b need
// swapping relative to the stored InputA/InputB order (so UpdateReactions
// knows which output goes to which site).
func (rr *ReactionRegistry) Find(a, b MaterialId, temp, light, pressure float64, neighbors map[MaterialId]struct{}) (Reaction, bool, bool) {
	var key [2]MaterialId
	key[0], key[1] = pairKey(a, b)
	candidates := rr.byPair[key]
	for _, r := range candidates {
		if !conditionsMet(r, temp, light, pressure, neighbors) {
			continue
		}
		swapped := r.InputA != a
		return r, swapped, true
	}
	return Reaction{}, false, false
}

func conditionsMet(r Reaction, temp, light, pressure float64, neighbors map[MaterialId]struct{}) bool {
	if r.MinTemp != nil && temp < *r.MinTemp {
		return false
	}
	if r.MaxTemp != nil && temp > *r.MaxTemp {
		return false
	}
	if r.MinLight != nil && light < *r.MinLight {
		return false
	}
	if r.MinPressure != nil && pressure < *r.MinPressure {
		return false
	}
	if r.Catalyst != nil {
		if _, present := neighbors[*r.Catalyst]; !present {
			return false
		}
	}
	return true
}

// UpdateReactions scans every active chunk's non-empty pixels against
// their 4-connected neighbors and applies at most one reaction per pixel
// pair per tick.
func UpdateReactions(m *ChunkManager, reg *Registry, rr *ReactionRegistry, rng Rng, cfg *Config, stats *SimStats, structural *StructuralSystem) {
	for _, c := range m.ActiveChunks() {
		size := c.Size()
		ox, oy := chunkOrigin(c.Coord(), size)
		reacted := make(map[[2]int]bool)

		for ly := 0; ly < size; ly++ {
			for lx := 0; lx < size; lx++ {
				p := c.GetPixel(lx, ly)
				if p.IsEmpty() {
					continue
				}
				wx, wy := ox+lx, oy+ly

				for _, off := range Neighbors4 {
					nwx, nwy := wx+off.Dx, wy+off.Dy
					nc, nlx, nly, ok := m.ResolveGlobal(nwx, nwy)
					if !ok {
						continue
					}
					np := nc.GetPixel(nlx, nly)
					if np.IsEmpty() {
						continue
					}

					pairId := orderedPairId(wx, wy, nwx, nwy)
					if reacted[pairId] {
						continue
					}

					temp := c.Temperature(lx, ly)
					neighborSet := pixelNeighborSet(m, wx, wy)
					// No light field exists yet anywhere in the engine; pass a
					// sentinel that never fails a MinLight gate rather than a
					// concrete 0, which would make every light-gated reaction
					// permanently unreachable.
					r, swapped, found := rr.Find(p.Material, np.Material, temp, math.Inf(1), c.Pressure(lx, ly), neighborSet)
					if !found {
						continue
					}
					if rng.Float64() >= r.Probability {
						continue
					}

					outA, outB := r.OutputA, r.OutputB
					if swapped {
						outA, outB = outB, outA
					}
					if reg.IsStructural(p.Material) && !reg.IsStructural(outA) {
						structural.ScheduleCheck(wx, wy)
					}
					if reg.IsStructural(np.Material) && !reg.IsStructural(outB) {
						structural.ScheduleCheck(nwx, nwy)
					}
					c.SetMaterial(lx, ly, outA)
					nc.SetMaterial(nlx, nly, outB)
					AddHeatAtPixel(c, lx, ly, r.EnergyReleased, cfg.TemperatureMax)
					AddHeatAtPixel(nc, nlx, nly, r.EnergyReleased, cfg.TemperatureMax)

					reacted[pairId] = true
					if stats != nil {
						stats.ReactionsApplied++
					}
				}
			}
		}
	}
}

func orderedPairId(ax, ay, bx, by int) [2]int {
	// Encodes an unordered pair of world positions into a stable key so a
	// pixel pair is not reacted twice in the same tick regardless of which
	// side is visited first.
	a := ax*1_000_003 + ay
	b := bx*1_000_003 + by
	if a <= b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

func pixelNeighborSet(m *ChunkManager, wx, wy int) map[MaterialId]struct{} {
	set := make(map[MaterialId]struct{}, 8)
	for _, off := range Neighbors8 {
		if p, ok := m.GetPixel(wx+off.Dx, wy+off.Dy); ok && !p.IsEmpty() {
			set[p.Material] = struct{}{}
		}
	}
	return set
}
