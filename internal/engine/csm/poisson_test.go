package csm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/penumbra/pkg/math"
)

func TestSamplerGenerate(t *testing.T) {
	s := NewSampler(42)
	samples := s.Generate(MaxPoissonSamples)

	require.NotEmpty(t, samples)
	assert.LessOrEqual(t, len(samples), MaxPoissonSamples)

	for i, p := range samples {
		assert.LessOrEqual(t, p.Length(), float32(1)+1e-5, "sample %d outside unit disk", i)
		if i > 0 {
			assert.GreaterOrEqual(t, p.Length(), samples[i-1].Length(), "samples not sorted at %d", i)
		}
	}
	assert.InDelta(t, 1, samples[len(samples)-1].Length(), 1e-5, "farthest sample should sit on the unit circle")
}

func TestSamplerEveryCount(t *testing.T) {
	s := NewSampler(99)
	for n := 1; n <= MaxPoissonSamples; n++ {
		// Regenerating with the same count stays disk normalised
		for round := 0; round < 2; round++ {
			samples := s.Generate(n)
			require.NotEmpty(t, samples, "count %d round %d", n, round)
			assert.LessOrEqual(t, len(samples), n, "count %d round %d", n, round)

			var farthest float32
			for _, p := range samples {
				assert.LessOrEqual(t, p.Length(), float32(1)+1e-5, "count %d round %d", n, round)
				farthest = max(farthest, p.Length())
			}
			assert.InDelta(t, 1, farthest, 1e-5, "count %d round %d", n, round)
		}
	}
}

func TestSamplerCountClamp(t *testing.T) {
	s := NewSampler(7)

	assert.Nil(t, s.Generate(0))
	assert.Nil(t, s.Generate(-3))
	assert.LessOrEqual(t, len(s.Generate(100)), MaxPoissonSamples)

	few := s.Generate(4)
	assert.LessOrEqual(t, len(few), 4)
	assert.NotEmpty(t, few)
}

func TestSamplerDeterministic(t *testing.T) {
	a := NewSampler(1234).Generate(MaxPoissonSamples)
	b := NewSampler(1234).Generate(MaxPoissonSamples)
	assert.Equal(t, a, b)
}

func TestSamplerSeparation(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 99, 2024} {
		s := NewSampler(seed)
		raw := s.throw()
		require.NotEmpty(t, raw)

		for i := range raw {
			for j := i + 1; j < len(raw); j++ {
				assert.GreaterOrEqual(t, raw[i].Distance(raw[j]), s.Radius-1e-6,
					"seed %d: points %d and %d too close", seed, i, j)
			}
		}

		disk, scale := selectDisk(raw, MaxPoissonSamples)
		for i := range disk {
			for j := i + 1; j < len(disk); j++ {
				assert.GreaterOrEqual(t, disk[i].Distance(disk[j]), s.Radius*scale-1e-4,
					"seed %d: scaled points %d and %d too close", seed, i, j)
			}
		}
	}
}

func TestSelectDisk(t *testing.T) {
	points := []math.Vec2{
		{X: 0.9, Y: 0.5},  // 0.4 from centre
		{X: 0.5, Y: 0.7},  // 0.2
		{X: 0.0, Y: 0.0},  // outside the inscribed circle
		{X: 0.5, Y: 0.55}, // 0.05
	}

	disk, scale := selectDisk(points, 2)
	require.Len(t, disk, 2)
	assert.InDelta(t, 5, scale, 1e-4)
	assert.InDelta(t, 0.25, disk[0].Y, 1e-5)
	assert.InDelta(t, 1, disk[1].Y, 1e-5)

	all, _ := selectDisk(points, 16)
	assert.Len(t, all, 3)

	none, scale := selectDisk([]math.Vec2{{X: 0, Y: 0}}, 4)
	assert.Empty(t, none)
	assert.Equal(t, float32(1), scale)
}
