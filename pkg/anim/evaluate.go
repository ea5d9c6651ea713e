package anim

import (
	"github.com/Faultbox/vmd-vrm/pkg/math"
)

// Evaluate samples the track at time at with linear interpolation (slerp
// for quaternions) and writes Kind.Components() values into dst, which is
// grown if needed and returned. Times before the first or after the last
// key clamp to that key.
func (t *Track) Evaluate(at float64, dst []float64) []float64 {
	return t.evaluate(at, dst, false)
}

// EvaluateBezier samples the track like Evaluate but shapes each segment
// with the easing curves of the segment's end key. Vector tracks ease each
// axis with its own curve; quaternion tracks use one curve for the slerp
// fraction. Tracks without curves fall back to linear.
func (t *Track) EvaluateBezier(at float64, dst []float64) []float64 {
	return t.evaluate(at, dst, true)
}

func (t *Track) evaluate(at float64, dst []float64, eased bool) []float64 {
	c := t.Kind.Components()
	if cap(dst) < c {
		dst = make([]float64, c)
	}
	dst = dst[:c]

	if len(t.Times) == 0 {
		if t.Kind == KindQuaternion {
			dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, 1
		} else {
			clear(dst)
		}
		return dst
	}

	// Find surrounding keyframes (times are sorted)
	var prev, next int
	for i := range t.Times {
		if t.Times[i] > at {
			next = i
			break
		}
		prev = i
		next = i
	}

	// Before the first key or at/after the last one
	if prev == next {
		copy(dst, t.Key(next))
		return dst
	}

	t0, t1 := t.Times[prev], t.Times[next]
	frac := 0.0
	if t1 != t0 {
		frac = (at - t0) / (t1 - t0)
	}

	var curves []Curve
	if eased {
		curves = t.KeyCurves(next)
	}
	ease := func(axis int) float64 {
		if axis < len(curves) {
			return curves[axis].Ease(frac)
		}
		return frac
	}

	a, b := t.Key(prev), t.Key(next)
	switch t.Kind {
	case KindQuaternion:
		q0 := math.Quat{X: a[0], Y: a[1], Z: a[2], W: a[3]}
		q1 := math.Quat{X: b[0], Y: b[1], Z: b[2], W: b[3]}
		q := q0.Slerp(q1, ease(0))
		dst[0], dst[1], dst[2], dst[3] = q.X, q.Y, q.Z, q.W
	default:
		for i := 0; i < c; i++ {
			f := ease(i)
			dst[i] = a[i] + f*(b[i]-a[i])
		}
	}
	return dst
}
