// Package editor is a keyboard-driven property editor. Properties are
// listed in order, one is selected at a time and adjusted in steps.
package editor

import (
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// Kind is the value type of a property.
type Kind int

const (
	Toggle Kind = iota
	Float
	Int
)

// CoarseMultiplier scales the step when the coarse modifier is held.
const CoarseMultiplier = 10

// Property is one editable value. Toggle properties read and write 0 or 1.
type Property struct {
	Name  string
	Kind  Kind
	Step  float32
	Min   float32
	Max   float32
	Get   func() float32
	Set   func(float32) error

	// Format renders the value for display. Optional.
	Format func(float32) string
}

// String renders "Name: value".
func (p Property) String() string {
	return p.Name + ": " + p.display()
}

func (p Property) display() string {
	v := p.Get()
	if p.Format != nil {
		return p.Format(v)
	}
	switch p.Kind {
	case Toggle:
		if v != 0 {
			return "on"
		}
		return "off"
	case Int:
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(float64(v), 'g', 4, 32)
}

// BoolProperty wraps a boolean getter and setter.
func BoolProperty(name string, get func() bool, set func(bool)) Property {
	return Property{
		Name: name,
		Kind: Toggle,
		Get: func() float32 {
			if get() {
				return 1
			}
			return 0
		},
		Set: func(v float32) error {
			set(v != 0)
			return nil
		},
	}
}

// FloatProperty wraps a float32 getter and setter clamped to [lo, hi].
func FloatProperty(name string, step, lo, hi float32, get func() float32, set func(float32)) Property {
	return Property{
		Name: name,
		Kind: Float,
		Step: step,
		Min:  lo,
		Max:  hi,
		Get:  get,
		Set: func(v float32) error {
			set(v)
			return nil
		},
	}
}

// IntProperty wraps an int getter and a setter that may fail.
func IntProperty(name string, lo, hi int, get func() int, set func(int) error) Property {
	return Property{
		Name: name,
		Kind: Int,
		Step: 1,
		Min:  float32(lo),
		Max:  float32(hi),
		Get:  func() float32 { return float32(get()) },
		Set:  func(v float32) error { return set(int(math32.Round(v))) },
	}
}

// Editor holds the property list and the selection cursor.
type Editor struct {
	props  []Property
	cursor int
	log    *zap.Logger
}

// New creates an editor over props. A nil logger discards output.
func New(log *zap.Logger, props ...Property) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{props: props, log: log}
}

// Add appends properties to the list.
func (e *Editor) Add(props ...Property) {
	e.props = append(e.props, props...)
}

// Properties returns the property list in display order.
func (e *Editor) Properties() []Property {
	return e.props
}

// Selected returns the current property and false when the list is empty.
func (e *Editor) Selected() (Property, bool) {
	if len(e.props) == 0 {
		return Property{}, false
	}
	return e.props[e.cursor], true
}

// Cursor returns the index of the selected property.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Lines renders every property as "Name: value" in display order.
func (e *Editor) Lines() []string {
	lines := make([]string, len(e.props))
	for i, p := range e.props {
		lines[i] = p.String()
	}
	return lines
}

// Next moves the cursor down, wrapping around.
func (e *Editor) Next() {
	if len(e.props) > 0 {
		e.cursor = (e.cursor + 1) % len(e.props)
	}
}

// Prev moves the cursor up, wrapping around.
func (e *Editor) Prev() {
	if len(e.props) > 0 {
		e.cursor = (e.cursor - 1 + len(e.props)) % len(e.props)
	}
}

// Adjust steps the selected property by dir (+1 or -1). Toggles flip
// regardless of dir. coarse multiplies the step by CoarseMultiplier.
func (e *Editor) Adjust(dir int, coarse bool) error {
	p, ok := e.Selected()
	if !ok {
		return nil
	}

	var next float32
	switch p.Kind {
	case Toggle:
		if p.Get() == 0 {
			next = 1
		}
	default:
		step := p.Step
		if coarse {
			step *= CoarseMultiplier
		}
		next = p.Get() + float32(dir)*step
		if p.Min < p.Max {
			next = math32.Max(p.Min, math32.Min(p.Max, next))
		}
	}

	if err := p.Set(next); err != nil {
		e.log.Warn("property change rejected", zap.String("property", p.Name), zap.Error(err))
		return fmt.Errorf("setting %s: %w", p.Name, err)
	}
	e.log.Debug("property changed", zap.String("property", p.Name), zap.String("value", p.display()))
	return nil
}

// Status describes the selection, e.g. "[3/12] Cascades: 4".
func (e *Editor) Status() string {
	p, ok := e.Selected()
	if !ok {
		return ""
	}
	return fmt.Sprintf("[%d/%d] %s", e.cursor+1, len(e.props), p)
}
