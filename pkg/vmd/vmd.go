// Package vmd holds the decoded contents of a VMD (Vocaloid Motion Data)
// recording: bone motion samples, facial morph samples and camera samples.
//
// Byte-level decoding of .vmd files happens upstream; this package accepts
// the decoder's output, validates it field by field, and prepares it for
// retargeting.
package vmd

import (
	"errors"
	"fmt"

	"github.com/Faultbox/vmd-vrm/pkg/math"
)

// Magic is the format marker of VMD files written by MikuMikuDance 7+.
const Magic = "Vocaloid Motion Data 0002"

// FrameRate is the VMD timeline rate in frames per second.
const FrameRate = 30.0

// Block sizes of the packed interpolation parameters.
const (
	InterpolationSize       = 64
	CameraInterpolationSize = 24
)

// Record validation errors.
var (
	ErrMissingField        = errors.New("missing field")
	ErrFieldType           = errors.New("wrong field type")
	ErrFieldRange          = errors.New("field out of range")
	ErrInterpolationLength = errors.New("interpolation block has wrong length")
)

// FieldError reports which field of a decoded record failed validation.
type FieldError struct {
	Path string // e.g. "motions[3].rotation"
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("vmd: %s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// CoordinateSystem is the handedness tag carried in the metadata.
type CoordinateSystem string

// Handedness tags.
const (
	LeftHanded  CoordinateSystem = "left"
	RightHanded CoordinateSystem = "right"
)

// Metadata describes a recording. Counts are what the file header declared;
// the sample slices in Data are authoritative.
type Metadata struct {
	Magic            string
	Name             string
	CoordinateSystem CoordinateSystem
	MotionCount      int
	MorphCount       int
	CameraCount      int
}

// Motion is one keyframe of one bone.
type Motion struct {
	BoneName      string
	Frame         uint32
	Position      math.Vec3
	Rotation      math.Quat
	Interpolation []byte // 64 bytes, see DecodeInterpolation
}

// Time returns the keyframe time in seconds.
func (m Motion) Time() float64 {
	return FrameTime(m.Frame)
}

// Morph is one keyframe of one facial morph. Weight is in [0, 100].
type Morph struct {
	MorphName string
	Frame     uint32
	Weight    float64
}

// Time returns the keyframe time in seconds.
func (m Morph) Time() float64 {
	return FrameTime(m.Frame)
}

// Camera is one camera keyframe. Cameras have no humanoid counterpart and
// are passed through untouched.
type Camera struct {
	Frame         uint32
	Distance      float64
	Position      math.Vec3
	Rotation      math.Vec3 // Euler angles, radians
	Interpolation []byte    // 24 bytes
	FOV           float64   // degrees
	Perspective   bool
}

// Data is a complete decoded recording.
type Data struct {
	Metadata Metadata
	Motions  []Motion
	Morphs   []Morph
	Cameras  []Camera
}

// CountsMatch reports whether the declared counts agree with the sample slices.
func (d *Data) CountsMatch() bool {
	return d.Metadata.MotionCount == len(d.Motions) &&
		d.Metadata.MorphCount == len(d.Morphs) &&
		d.Metadata.CameraCount == len(d.Cameras)
}

// FrameTime converts a frame index to seconds.
func FrameTime(frame uint32) float64 {
	return float64(frame) / FrameRate
}
