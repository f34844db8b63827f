package simcore

// TemperatureSimulator diffuses heat over each chunk's 8x8 coarse field.
// Throttled to run every other simulation step (30 Hz at a 60 Hz step
// rate) via its own counter, independent of any host frame timer.
type TemperatureSimulator struct {
	cfg     *Config
	counter int
}

func NewTemperatureSimulator(cfg *Config) *TemperatureSimulator {
	return &TemperatureSimulator{cfg: cfg}
}

func (t *TemperatureSimulator) Step(m *ChunkManager) {
	t.counter++
	if t.counter%2 != 0 {
		return
	}
	for _, c := range m.ActiveChunks() {
		diffuseChunk(c, t.cfg.TemperatureDiffusionA, t.cfg.TemperatureMax)
	}
}

// diffuseChunk computes each coarse cell's new value as the old value plus
// alpha times the difference between it and the mean of its von-Neumann
// neighbors, clamped to the in-chunk 8x8 area (no cross-chunk diffusion,
// per §4.4 and the boundary law in §8).
func diffuseChunk(c *Chunk, alpha, max float64) {
	n := c.coarseSide()
	next := make([]float64, n*n)
	copy(next, c.temperature)

	for cy := 0; cy < n; cy++ {
		for cx := 0; cx < n; cx++ {
			idx := cy*n + cx
			cur := c.temperature[idx]

			sum, count := 0.0, 0
			for _, off := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
				nx, ny := cx+off[0], cy+off[1]
				if nx < 0 || nx >= n || ny < 0 || ny >= n {
					continue
				}
				sum += c.temperature[ny*n+nx]
				count++
			}
			if count == 0 {
				continue
			}
			mean := sum / float64(count)
			v := cur + alpha*(mean-cur)
			if v > max {
				v = max
			}
			next[idx] = v
		}
	}
	c.temperature = next
}

// AddHeatAtPixel is the sanctioned way to add heat outside the diffusion
// pass: it maps the pixel to its coarse cell and writes the new value, so
// every pixel in that cell observes the same scalar afterward.
func AddHeatAtPixel(c *Chunk, lx, ly int, degrees, max float64) {
	v := c.Temperature(lx, ly) + degrees
	if v > max {
		v = max
	}
	c.SetTemperature(lx, ly, v)
}

func TemperatureAtPixel(c *Chunk, lx, ly int) float64 {
	return c.Temperature(lx, ly)
}
