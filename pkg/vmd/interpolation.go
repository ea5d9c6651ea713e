package vmd

import "fmt"

// Bezier holds the two control points of a cubic easing curve running from
// (0,0) to (1,1). All values are normalized to [0, 1].
type Bezier struct {
	X1, Y1 float64 // time1, value1
	X2, Y2 float64 // time2, value2
}

// LinearBezier is the curve MMD writes for unedited keyframes.
var LinearBezier = Bezier{X1: 20.0 / 127, Y1: 20.0 / 127, X2: 107.0 / 127, Y2: 107.0 / 127}

// Interpolation is the decoded curve set of one motion keyframe. Each curve
// shapes the segment that ends at this keyframe.
type Interpolation struct {
	X, Y, Z  Bezier
	Rotation Bezier
}

// Position returns the per-axis position curves in X, Y, Z order.
func (ip Interpolation) Position() [3]Bezier {
	return [3]Bezier{ip.X, ip.Y, ip.Z}
}

// DecodeInterpolation expands a 64-byte interpolation block.
//
// The block holds four interleaved channels (X, Y, Z, rotation). Channel c
// reads its control scalars at offsets c, c+8, c+4, c+12 for time1, value1,
// time2, value2; the remaining 48 bytes repeat that data and are ignored.
func DecodeInterpolation(block []byte) (Interpolation, error) {
	if len(block) != InterpolationSize {
		return Interpolation{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInterpolationLength, len(block), InterpolationSize)
	}
	return Interpolation{
		X:        decodeChannel(block, 0),
		Y:        decodeChannel(block, 1),
		Z:        decodeChannel(block, 2),
		Rotation: decodeChannel(block, 3),
	}, nil
}

func decodeChannel(block []byte, c int) Bezier {
	return Bezier{
		X1: float64(block[c+0]) / 127,
		Y1: float64(block[c+8]) / 127,
		X2: float64(block[c+4]) / 127,
		Y2: float64(block[c+12]) / 127,
	}
}

// EncodeInterpolation packs curves into a 64-byte block that
// DecodeInterpolation reads back. Rows 1-3 repeat row 0 shifted left.
func EncodeInterpolation(ip Interpolation) []byte {
	block := make([]byte, InterpolationSize)
	curves := [4]Bezier{ip.X, ip.Y, ip.Z, ip.Rotation}
	// Row r of the 4x16 layout is the first row shifted left by r bytes.
	var row [16]byte
	for c, b := range curves {
		row[c+0] = quantize(b.X1)
		row[c+4] = quantize(b.X2)
		row[c+8] = quantize(b.Y1)
		row[c+12] = quantize(b.Y2)
	}
	for r := 0; r < 4; r++ {
		copy(block[r*16:], row[r:])
	}
	return block
}

func quantize(v float64) byte {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 127
	}
	return byte(v*127 + 0.5)
}
