// Package lighting holds the scene lights and uploads them to the shading pass.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/penumbra/pkg/math"
)

// Sun is a directional light. Direction points from the scene towards the
// light and doubles as the shadow caster direction.
type Sun struct {
	Direction math.Vec3
	Ambient   [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Enabled   bool
}

// DefaultSun returns a white sun high in the sky.
func DefaultSun() Sun {
	return Sun{
		Direction: SunDirection(45, 60),
		Ambient:   [3]float32{0.1, 0.1, 0.1},
		Diffuse:   [3]float32{1, 1, 1},
		Specular:  [3]float32{0.5, 0.5, 0.5},
		Enabled:   true,
	}
}

// SunDirection converts azimuth/elevation angles in degrees to a light direction vector.
// Azimuth is rotation around the Y axis, elevation is the angle above the horizon.
// Returns a normalized direction vector pointing towards the sun.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	sinAz, cosAz := math32.Sincos(math.Radians(azimuth))
	sinEl, cosEl := math32.Sincos(math.Radians(elevation))

	return math.Vec3{
		X: cosEl * sinAz,
		Y: sinEl,
		Z: cosEl * cosAz,
	}
}

// Angles is the inverse of SunDirection. The direction does not need to be normalized.
func Angles(dir math.Vec3) (azimuth, elevation float32) {
	d := dir.Normalize()
	elevation = math32.Asin(math32.Max(-1, math32.Min(1, d.Y))) * 180 / math32.Pi
	azimuth = math32.Atan2(d.X, d.Z) * 180 / math32.Pi
	if azimuth < 0 {
		azimuth += 360
	}
	return azimuth, elevation
}

// Rotate moves the sun by the given angle deltas in degrees. Elevation is
// clamped so the sun never goes below the horizon or exactly overhead.
func (s *Sun) Rotate(dAzimuth, dElevation float32) {
	az, el := Angles(s.Direction)
	az = math32.Mod(az+dAzimuth+360, 360)
	el = math32.Max(1, math32.Min(89, el+dElevation))
	s.Direction = SunDirection(az, el)
}
