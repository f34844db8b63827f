// Command sunaba-sim drives the simulation core headlessly: no rendering,
// no input, just flags and a step loop. Useful for scenario replay and for
// exercising the engine end to end without a client.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/sunaba/simcore"
)

func main() {
	seed := flag.Int64("seed", 1, "RNG seed")
	steps := flag.Int("steps", 600, "number of simulation steps to run")
	dt := flag.Float64("dt", 1.0/60.0, "fixed step size in seconds")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := simcore.NewDefaultLogger("sunaba-sim", *debug)

	cfg := simcore.NewDefaultConfig()
	reg := simcore.NewRegistry()
	ids, err := simcore.DefaultMaterials(reg)
	if err != nil {
		log.Fatalf("registering materials: %v", err)
	}

	rr := simcore.NewReactionRegistry()
	if err := simcore.SeedDefaultReactions(reg, rr, ids); err != nil {
		log.Fatalf("seeding reactions: %v", err)
	}

	sandId, ok := reg.ByName("sand")
	if !ok {
		log.Fatal("default materials missing \"sand\"")
	}

	world := simcore.NewWorld(cfg, reg, rr, sandId, logger)
	world.EnsureChunksForArea(-128, -128, 128, 128)
	world.SetAnchors([]simcore.ChunkCoord{{X: 0, Y: 0}})

	rng := simcore.NewRng(*seed)
	stats := &simcore.SimStats{}

	for i := 0; i < *steps; i++ {
		world.Step(*dt, stats, rng, false)
	}

	fmt.Printf("ran %d steps: %d chunks loaded, %d active, %d falling chunks, %d pixels updated last step\n",
		*steps, stats.ChunksLoaded, stats.ChunksActive, stats.FallingChunksAlive, stats.PixelsUpdated)
}
