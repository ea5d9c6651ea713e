package retarget

import (
	"fmt"

	"github.com/Faultbox/vmd-vrm/pkg/anim"
	"github.com/Faultbox/vmd-vrm/pkg/humanoid"
	"github.com/Faultbox/vmd-vrm/pkg/math"
	"github.com/Faultbox/vmd-vrm/pkg/vmd"
)

// UnitScale converts MMD length units to meters.
const UnitScale = 0.08

// Track target suffixes for bone channels.
const (
	PositionSuffix = ".position"
	RotationSuffix = ".rotation"
)

// forward is the avatar's forward axis; shoulder and arm corrections
// rotate about it.
var forward = math.Vec3{X: 0, Y: 0, Z: -1}

// restPoseCorrections turn the MMD A-stance of the shoulders and upper arms
// into the VRM T-pose. No other bone is corrected.
var restPoseCorrections = map[humanoid.BoneName]math.Quat{
	humanoid.LeftShoulder:  math.QuatFromAxisAngle(forward, math.Radians(-5)),
	humanoid.RightShoulder: math.QuatFromAxisAngle(forward, math.Radians(5)),
	humanoid.LeftUpperArm:  math.QuatFromAxisAngle(forward, math.Radians(-35)),
	humanoid.RightUpperArm: math.QuatFromAxisAngle(forward, math.Radians(35)),
}

// RestPoseCorrection returns the fixed rotation applied to a humanoid bone.
func RestPoseCorrection(bone humanoid.BoneName) (math.Quat, bool) {
	q, ok := restPoseCorrections[bone]
	return q, ok
}

// ConvertPosition maps an MMD position to an avatar local position: X and Z
// flip, the result is scaled to meters and offset from the bind pose.
func ConvertPosition(p, bind math.Vec3) math.Vec3 {
	return p.FlipXZ().Scale(UnitScale).Add(bind)
}

// ConvertRotation maps an MMD rotation to the avatar frame by negating Y
// and W, then right-multiplies the bone's rest pose correction, if any.
func ConvertRotation(r math.Quat, correction *math.Quat) math.Quat {
	q := math.Quat{X: r.X, Y: -r.Y, Z: r.Z, W: -r.W}
	if correction != nil {
		q = q.Mul(*correction)
	}
	return q
}

// DecodeError reports a motion sample whose interpolation block is corrupt.
// It aborts the conversion of that bone's group.
type DecodeError struct {
	Bone  string
	Frame uint32
	Index int // position within the sorted group
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("retarget: bone %q frame %d (sample %d): %v", e.Bone, e.Frame, e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// BoneTracks converts one bone's sorted motion group into a position and a
// rotation track. Position tracks carry three easing curves per key (X, Y,
// Z) and rotation tracks one.
func BoneTracks(group vmd.MotionGroup, target Resolved, bind math.Vec3) ([]anim.Track, error) {
	var correction *math.Quat
	if target.Humanoid {
		if q, ok := restPoseCorrections[target.Bone]; ok {
			correction = &q
		}
	}

	n := len(group.Motions)
	times := make([]float64, 0, n)
	positions := make([]float64, 0, n*3)
	rotations := make([]float64, 0, n*4)
	positionCurves := make([]anim.Curve, 0, n*3)
	rotationCurves := make([]anim.Curve, 0, n)

	for i, m := range group.Motions {
		ip, err := vmd.DecodeInterpolation(m.Interpolation)
		if err != nil {
			return nil, &DecodeError{Bone: group.Name, Frame: m.Frame, Index: i, Err: err}
		}

		times = append(times, m.Time())

		p := ConvertPosition(m.Position, bind)
		positions = append(positions, p.X, p.Y, p.Z)

		q := ConvertRotation(m.Rotation, correction)
		rotations = append(rotations, q.X, q.Y, q.Z, q.W)

		for _, b := range ip.Position() {
			positionCurves = append(positionCurves, curve(b))
		}
		rotationCurves = append(rotationCurves, curve(ip.Rotation))
	}

	// Both tracks share the key times but must not alias the slice.
	rotTimes := make([]float64, len(times))
	copy(rotTimes, times)

	return []anim.Track{
		anim.NewTrack(target.Node.ID+PositionSuffix, anim.KindVector, times, positions).
			WithCurves(3, positionCurves),
		anim.NewTrack(target.Node.ID+RotationSuffix, anim.KindQuaternion, rotTimes, rotations).
			WithCurves(1, rotationCurves),
	}, nil
}

func curve(b vmd.Bezier) anim.Curve {
	return anim.Curve{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2}
}
