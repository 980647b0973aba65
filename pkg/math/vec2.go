package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector, used for sample offsets on the unit disk.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2         { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2         { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2    { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Length() float32         { return math32.Hypot(v.X, v.Y) }
func (v Vec2) Distance(o Vec2) float32 { return v.Sub(o).Length() }
