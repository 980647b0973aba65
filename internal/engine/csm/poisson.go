package csm

import (
	"math/rand/v2"
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/penumbra/pkg/math"
)

// DefaultPoissonRadius is the minimum separation between two samples on the
// unit square. It yields roughly twenty points inside the inscribed circle.
const DefaultPoissonRadius float32 = 0.15

// poissonAttempts is the number of candidates tried around a spawn point
// before it is retired.
const poissonAttempts = 30

// Sampler generates Poisson-disk offsets for soft shadow filtering.
type Sampler struct {
	rng    *rand.Rand
	Radius float32
}

// NewSampler creates a sampler. The same non-zero seed always yields the same
// sequence of sample sets; zero draws a random seed.
func NewSampler(seed uint64) *Sampler {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Sampler{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Radius: DefaultPoissonRadius,
	}
}

// Generate returns up to count offsets inside the unit disk, nearest to the
// centre first, scaled so the last one sits exactly on the unit circle.
// count is clamped to MaxPoissonSamples. Fewer points are returned when the
// distribution does not contain enough of them.
func (s *Sampler) Generate(count int) []math.Vec2 {
	if count <= 0 {
		return nil
	}
	if count > MaxPoissonSamples {
		count = MaxPoissonSamples
	}
	disk, _ := selectDisk(s.throw(), count)
	return disk
}

// throw runs dart throwing over the unit square and returns every accepted point.
func (s *Sampler) throw() []math.Vec2 {
	radius := s.Radius
	cellSize := radius / math32.Sqrt2
	cols := int(math32.Ceil(1 / cellSize))

	// grid holds point index + 1, zero meaning empty
	grid := make([]int, cols*cols)
	cellOf := func(p math.Vec2) (int, int) {
		return int(p.X / cellSize), int(p.Y / cellSize)
	}

	valid := func(c math.Vec2, points []math.Vec2) bool {
		if c.X < 0 || c.X >= 1 || c.Y < 0 || c.Y >= 1 {
			return false
		}
		cx, cy := cellOf(c)
		for x := max(0, cx-2); x <= min(cx+2, cols-1); x++ {
			for y := max(0, cy-2); y <= min(cy+2, cols-1); y++ {
				idx := grid[x*cols+y] - 1
				if idx >= 0 && c.Distance(points[idx]) < radius {
					return false
				}
			}
		}
		return true
	}

	place := func(p math.Vec2, points []math.Vec2) []math.Vec2 {
		points = append(points, p)
		cx, cy := cellOf(p)
		grid[cx*cols+cy] = len(points)
		return points
	}

	// A random first point avoids a visible pixel edge that a centred seed produces.
	points := place(math.Vec2{X: s.rng.Float32(), Y: s.rng.Float32()}, nil)
	spawns := []math.Vec2{{X: 0.5, Y: 0.5}}

	for len(spawns) > 0 {
		i := s.rng.IntN(len(spawns))
		centre := spawns[i]

		accepted := false
		for range poissonAttempts {
			angle := s.rng.Float32() * 2 * math32.Pi
			sin, cos := math32.Sincos(angle)
			dist := radius + s.rng.Float32()*radius
			candidate := centre.Add(math.Vec2{X: sin, Y: cos}.Scale(dist))
			if valid(candidate, points) {
				points = place(candidate, points)
				spawns = append(spawns, candidate)
				accepted = true
				break
			}
		}

		if !accepted {
			spawns = append(spawns[:i], spawns[i+1:]...)
		}
	}

	return points
}

// selectDisk keeps the points inside the circle inscribed in the unit square,
// re-centres them, takes the count closest and normalises them onto the unit
// disk. It also returns the applied scale.
func selectDisk(points []math.Vec2, count int) ([]math.Vec2, float32) {
	centre := math.Vec2{X: 0.5, Y: 0.5}

	type candidate struct {
		p   math.Vec2
		len float32
	}
	inside := make([]candidate, 0, len(points))
	for _, p := range points {
		c := p.Sub(centre)
		if l := c.Length(); l < 0.5 {
			inside = append(inside, candidate{p: c, len: l})
		}
	}
	if len(inside) == 0 {
		return nil, 1
	}

	sort.SliceStable(inside, func(a, b int) bool { return inside[a].len < inside[b].len })

	n := min(count, len(inside))
	scale := float32(1)
	if far := inside[n-1].len; far > 0 {
		scale = 1 / far
	}

	out := make([]math.Vec2, n)
	for i := range out {
		out[i] = inside[i].p.Scale(scale)
	}
	return out, scale
}
