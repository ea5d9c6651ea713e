package anim

// Curve is a cubic Bezier easing curve from (0,0) to (1,1) with control
// points (X1,Y1) and (X2,Y2), all in [0, 1].
type Curve struct {
	X1, Y1 float64
	X2, Y2 float64
}

// LinearCurve leaves the interpolation fraction unchanged.
var LinearCurve = Curve{X1: 0, Y1: 0, X2: 1, Y2: 1}

// IsLinear reports whether the curve is the identity easing.
func (c Curve) IsLinear() bool {
	return c.X1 == c.Y1 && c.X2 == c.Y2
}

// Ease maps a segment fraction x in [0, 1] to the eased fraction.
// The curve's parameter for x is found by bisection; X is monotonic
// because both control X values lie in [0, 1].
func (c Curve) Ease(x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	case c.IsLinear():
		return x
	}

	lo, hi := 0.0, 1.0
	t := x
	for i := 0; i < 32; i++ {
		bx := bezier(c.X1, c.X2, t)
		if bx == x {
			break
		}
		if bx < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return bezier(c.Y1, c.Y2, t)
}

// bezier evaluates one axis of the curve at parameter t.
func bezier(p1, p2, t float64) float64 {
	s := 1 - t
	return 3*s*s*t*p1 + 3*s*t*t*p2 + t*t*t
}
