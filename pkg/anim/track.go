// Package anim defines the keyframe tracks and clips handed to a playback
// runtime, plus helpers to sample them.
package anim

import (
	"errors"
	"fmt"
)

// Track validation errors.
var (
	ErrTimesDecreasing = errors.New("keyframe times decrease")
	ErrValueCount      = errors.New("value count does not match key count")
	ErrCurveCount      = errors.New("curve count does not match key count")
)

// Kind is the value type a track animates.
type Kind int

// Track kinds.
const (
	KindVector     Kind = iota // 3 components
	KindQuaternion             // 4 components, X Y Z W
	KindNumber                 // 1 component
)

// Components returns the number of values per keyframe.
func (k Kind) Components() int {
	switch k {
	case KindVector:
		return 3
	case KindQuaternion:
		return 4
	default:
		return 1
	}
}

func (k Kind) String() string {
	switch k {
	case KindVector:
		return "vector"
	case KindQuaternion:
		return "quaternion"
	case KindNumber:
		return "number"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Track is a named channel of keyframes. Values holds Kind.Components()
// floats per key. Curves, when present, hold CurveStride easing curves per
// key; a key's curves shape the segment that ends at that key.
type Track struct {
	Target      string
	Kind        Kind
	Times       []float64
	Values      []float64
	Curves      []Curve
	CurveStride int
}

// NewTrack creates a track without easing curves.
func NewTrack(target string, kind Kind, times, values []float64) Track {
	return Track{Target: target, Kind: kind, Times: times, Values: values}
}

// WithCurves returns a copy of t carrying stride curves per key.
func (t Track) WithCurves(stride int, curves []Curve) Track {
	t.CurveStride = stride
	t.Curves = curves
	return t
}

// KeyCount returns the number of keyframes.
func (t *Track) KeyCount() int {
	return len(t.Times)
}

// Validate checks the cardinality and ordering invariants.
func (t *Track) Validate() error {
	n := len(t.Times)
	if len(t.Values) != n*t.Kind.Components() {
		return fmt.Errorf("%s: %w: %d values for %d keys of %s", t.Target, ErrValueCount, len(t.Values), n, t.Kind)
	}
	if len(t.Curves) != n*t.CurveStride {
		return fmt.Errorf("%s: %w: %d curves for %d keys, stride %d", t.Target, ErrCurveCount, len(t.Curves), n, t.CurveStride)
	}
	for i := 1; i < n; i++ {
		if t.Times[i] < t.Times[i-1] {
			return fmt.Errorf("%s: %w at key %d", t.Target, ErrTimesDecreasing, i)
		}
	}
	return nil
}

// Key returns the values of key i.
func (t *Track) Key(i int) []float64 {
	c := t.Kind.Components()
	return t.Values[i*c : (i+1)*c]
}

// KeyCurves returns the curves of key i, or nil when the track has none.
func (t *Track) KeyCurves(i int) []Curve {
	if t.CurveStride == 0 {
		return nil
	}
	return t.Curves[i*t.CurveStride : (i+1)*t.CurveStride]
}

// Duration returns the time of the last key.
func (t *Track) Duration() float64 {
	if len(t.Times) == 0 {
		return 0
	}
	return t.Times[len(t.Times)-1]
}
