package retarget

import (
	"errors"
	gomath "math"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/vmd-vrm/pkg/anim"
	"github.com/Faultbox/vmd-vrm/pkg/humanoid"
	"github.com/Faultbox/vmd-vrm/pkg/math"
	"github.com/Faultbox/vmd-vrm/pkg/vmd"
)

func near(a, b float64) bool {
	return gomath.Abs(a-b) < 1e-9
}

func linearBlock() []byte {
	return vmd.EncodeInterpolation(vmd.Interpolation{
		X: vmd.LinearBezier, Y: vmd.LinearBezier, Z: vmd.LinearBezier, Rotation: vmd.LinearBezier,
	})
}

func motion(bone string, frame uint32) vmd.Motion {
	return vmd.Motion{
		BoneName:      bone,
		Frame:         frame,
		Rotation:      math.QuatIdentity(),
		Interpolation: linearBlock(),
	}
}

func TestResolveBone(t *testing.T) {
	skel := newFakeSkeleton().
		withBone(humanoid.Head, "head", math.Vec3{}).
		withNode("センター", math.Vec3{})

	tests := []struct {
		name     string
		legacy   string
		wantNode string
		humanoid bool
		resolved bool
	}{
		{"humanoid mapping", humanoid.PMDHead, "head", true, true},
		{"raw node name", humanoid.PMDCenter, "node-センター", false, true},
		{"mapped but not rigged", humanoid.PMDLeftToes, "", false, false},
		{"unknown", "謎ボーン", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			switch r := ResolveBone(skel, tt.legacy).(type) {
			case Resolved:
				if !tt.resolved {
					t.Fatalf("expected unresolved, got %+v", r)
				}
				if r.Node.ID != tt.wantNode || r.Humanoid != tt.humanoid {
					t.Errorf("got %+v, want node %s humanoid=%v", r, tt.wantNode, tt.humanoid)
				}
			case Unresolved:
				if tt.resolved {
					t.Fatalf("expected resolved, got %+v", r)
				}
				if r.Name != tt.legacy {
					t.Errorf("unresolved name = %q, want %q", r.Name, tt.legacy)
				}
			}
		})
	}
}

func TestResolveBoneRiggedFallback(t *testing.T) {
	// Mapped bone missing from the humanoid but present under its PMD name.
	skel := newFakeSkeleton().withNode(humanoid.PMDUpperBody2, math.Vec3{})
	r, ok := ResolveBone(skel, humanoid.PMDUpperBody2).(Resolved)
	if !ok {
		t.Fatal("expected raw-name fallback to resolve")
	}
	if r.Humanoid {
		t.Error("raw-name resolution must not be marked humanoid")
	}
}

func TestResolveBoneUnriggedWithoutNode(t *testing.T) {
	skel := newFakeSkeleton().withBone(humanoid.Hips, "hips", math.Vec3{})
	if _, ok := ResolveBone(skel, humanoid.PMDUpperBody2).(Unresolved); !ok {
		t.Error("unrigged bone without a same-named node should be unresolved")
	}
}

func TestConvertFallbackSkipsCorrection(t *testing.T) {
	skel := newFakeSkeleton().withNode(humanoid.PMDLeftArm, math.Vec3{})
	d := &vmd.Data{Motions: []vmd.Motion{motion(humanoid.PMDLeftArm, 0)}}

	clip, err := Convert(d, skel)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	rot, ok := clip.Track("node-" + humanoid.PMDLeftArm + RotationSuffix)
	if !ok {
		t.Fatalf("expected rotation track on raw node, got %d tracks", len(clip.Tracks))
	}
	want := ConvertRotation(math.QuatIdentity(), nil)
	got := rot.Key(0)
	if !near(got[0], want.X) || !near(got[1], want.Y) || !near(got[2], want.Z) || !near(got[3], want.W) {
		t.Errorf("rotation = %v, want uncorrected %v", got, want)
	}
}

func TestConvertPosition(t *testing.T) {
	got := ConvertPosition(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{})
	want := math.Vec3{X: -0.08, Y: 0.16, Z: -0.24}
	if !near(got.X, want.X) || !near(got.Y, want.Y) || !near(got.Z, want.Z) {
		t.Errorf("ConvertPosition() = %v, want %v", got, want)
	}

	bind := math.Vec3{X: 0.1, Y: 0.9, Z: -0.05}
	got = ConvertPosition(math.Vec3{}, bind)
	if got != bind {
		t.Errorf("zero offset should land on bind pose, got %v", got)
	}
}

func TestConvertRotation(t *testing.T) {
	got := ConvertRotation(math.Quat{X: 0, Y: 0, Z: 0, W: 1}, nil)
	if got.X != 0 || got.Y != 0 || got.Z != 0 || got.W != -1 {
		t.Errorf("ConvertRotation(identity) = %v, want (0,0,0,-1)", got)
	}

	got = ConvertRotation(math.Quat{X: 0.1, Y: 0.2, Z: 0.3, W: 0.4}, nil)
	if got != (math.Quat{X: 0.1, Y: -0.2, Z: 0.3, W: -0.4}) {
		t.Errorf("ConvertRotation() = %v, want Y and W negated", got)
	}
}

func TestConvertRotationCorrection(t *testing.T) {
	q, ok := RestPoseCorrection(humanoid.LeftUpperArm)
	if !ok {
		t.Fatal("expected a correction for the left upper arm")
	}
	got := ConvertRotation(math.QuatIdentity(), &q)
	want := math.Quat{W: -1}.Mul(q)
	if got != want {
		t.Errorf("corrected rotation = %v, want %v", got, want)
	}

	// -35 degrees about (0,0,-1): z = -sin(-17.5deg) * 1
	if !near(q.Z, gomath.Sin(17.5*gomath.Pi/180)) || !near(q.W, gomath.Cos(17.5*gomath.Pi/180)) {
		t.Errorf("unexpected correction quaternion %v", q)
	}
}

func TestRestPoseCorrections(t *testing.T) {
	tests := []struct {
		bone humanoid.BoneName
		deg  float64
	}{
		{humanoid.LeftShoulder, -5},
		{humanoid.RightShoulder, 5},
		{humanoid.LeftUpperArm, -35},
		{humanoid.RightUpperArm, 35},
	}
	for _, tt := range tests {
		q, ok := RestPoseCorrection(tt.bone)
		if !ok {
			t.Errorf("%s: missing correction", tt.bone)
			continue
		}
		want := math.QuatFromAxisAngle(math.Vec3{Z: -1}, math.Radians(tt.deg))
		if q != want {
			t.Errorf("%s: correction = %v, want %v", tt.bone, q, want)
		}
	}

	for _, bone := range []humanoid.BoneName{humanoid.LeftUpperLeg, humanoid.LeftLowerArm, humanoid.Hips, humanoid.Head} {
		if _, ok := RestPoseCorrection(bone); ok {
			t.Errorf("%s: unexpected correction", bone)
		}
	}
}

func TestExpressionWeight(t *testing.T) {
	if got := ExpressionWeight(100, 50); got != 0.5 {
		t.Errorf("ExpressionWeight(100, 50) = %v, want 0.5", got)
	}
	if got := ExpressionWeight(50, 100); got != 0.5 {
		t.Errorf("ExpressionWeight(50, 100) = %v, want 0.5", got)
	}
	if got := ExpressionWeight(100, 0); got != 0 {
		t.Errorf("ExpressionWeight(100, 0) = %v, want 0", got)
	}
}

func TestConvertSingleSample(t *testing.T) {
	skel := newFakeSkeleton().withBone(humanoid.Head, "head", math.Vec3{})
	d := &vmd.Data{Motions: []vmd.Motion{motion(humanoid.PMDHead, 0)}}

	clip, err := Convert(d, skel)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if len(clip.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(clip.Tracks))
	}

	pos, rot := clip.Tracks[0], clip.Tracks[1]
	if pos.Target != "head.position" || pos.Kind != anim.KindVector {
		t.Errorf("unexpected position track %s (%s)", pos.Target, pos.Kind)
	}
	if rot.Target != "head.rotation" || rot.Kind != anim.KindQuaternion {
		t.Errorf("unexpected rotation track %s (%s)", rot.Target, rot.Kind)
	}
	for _, tr := range clip.Tracks {
		if len(tr.Times) != 1 || tr.Times[0] != 0 {
			t.Errorf("%s: times = %v, want [0]", tr.Target, tr.Times)
		}
		if err := tr.Validate(); err != nil {
			t.Errorf("%s: %v", tr.Target, err)
		}
	}
	if rot.Values[3] != -1 {
		t.Errorf("rotation W = %v, want -1", rot.Values[3])
	}
	if clip.Duration != anim.UnspecifiedDuration {
		t.Errorf("expected unspecified duration, got %v", clip.Duration)
	}
	if !strings.HasPrefix(clip.Name, "uuid-") {
		t.Errorf("expected generated clip name, got %q", clip.Name)
	}
}

func TestConvertGeneratedClipName(t *testing.T) {
	skel := newFakeSkeleton().withBone(humanoid.Head, "head", math.Vec3{})
	d := &vmd.Data{Motions: []vmd.Motion{motion(humanoid.PMDHead, 0)}}
	conv := NewConverter(Options{})

	first, err := conv.Convert(d, skel)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	second, err := conv.Convert(d, skel)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	for _, name := range []string{first.Clip.Name, second.Clip.Name} {
		if !strings.HasPrefix(name, "uuid-") || len(name) <= len("uuid-") {
			t.Errorf("expected uuid- prefixed name, got %q", name)
		}
	}
	if first.Clip.Name == second.Clip.Name {
		t.Errorf("generated names should differ, both %q", first.Clip.Name)
	}

	named, err := NewConverter(Options{ClipName: "walk"}).Convert(d, skel)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if named.Clip.Name != "walk" {
		t.Errorf("expected caller name walk, got %q", named.Clip.Name)
	}
}

func TestConvertTimesAndBindPose(t *testing.T) {
	bind := math.Vec3{X: 0, Y: 1, Z: 0}
	skel := newFakeSkeleton().withBone(humanoid.Hips, "hips", bind)

	m1 := motion(humanoid.PMDLowerBody, 45)
	m1.Position = math.Vec3{X: 10}
	m0 := motion(humanoid.PMDLowerBody, 0)
	d := &vmd.Data{Motions: []vmd.Motion{m1, m0}}

	res, err := NewConverter(Options{ClipName: "walk"}).Convert(d, skel)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if res.Clip.Name != "walk" {
		t.Errorf("clip name = %q, want walk", res.Clip.Name)
	}

	pos, ok := res.Clip.Track("hips.position")
	if !ok {
		t.Fatal("missing hips.position track")
	}
	if pos.Times[0] != 0 || pos.Times[1] != 45.0/30.0 {
		t.Errorf("times = %v, want [0 1.5]", pos.Times)
	}
	if got := pos.Key(0); got[0] != 0 || got[1] != 1 || got[2] != 0 {
		t.Errorf("frame 0 position = %v, want bind pose", got)
	}
	if got := pos.Key(1); !near(got[0], -0.8) || got[1] != 1 {
		t.Errorf("frame 45 position = %v, want (-0.8, 1, 0)", got)
	}
	if len(pos.Curves) != 6 || pos.CurveStride != 3 {
		t.Errorf("expected 3 curves per key, got %d curves stride %d", len(pos.Curves), pos.CurveStride)
	}

	rot, _ := res.Clip.Track("hips.rotation")
	if len(rot.Curves) != 2 || rot.CurveStride != 1 {
		t.Errorf("expected 1 curve per key, got %d curves stride %d", len(rot.Curves), rot.CurveStride)
	}
	if &rot.Times[0] == &pos.Times[0] {
		t.Error("position and rotation tracks share a times slice")
	}
}

func TestConvertCurvesPreserved(t *testing.T) {
	block := make([]byte, vmd.InterpolationSize)
	for i := range block {
		block[i] = 127
	}
	skel := newFakeSkeleton().withBone(humanoid.Neck, "neck", math.Vec3{})
	m := motion(humanoid.PMDNeck, 3)
	m.Interpolation = block

	clip, err := Convert(&vmd.Data{Motions: []vmd.Motion{m}}, skel)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	for _, tr := range clip.Tracks {
		for _, c := range tr.Curves {
			if c != (anim.Curve{X1: 1, Y1: 1, X2: 1, Y2: 1}) {
				t.Errorf("%s: curve %+v, want all 1.0", tr.Target, c)
			}
		}
	}
}

func TestConvertUnknownBone(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	skel := newFakeSkeleton().withBone(humanoid.Head, "head", math.Vec3{})
	d := &vmd.Data{Motions: []vmd.Motion{
		motion("謎ボーン", 0),
		motion("謎ボーン", 1),
		motion(humanoid.PMDHead, 0),
	}}

	res, err := NewConverter(Options{Logger: zap.New(core)}).Convert(d, skel)
	if err != nil {
		t.Fatalf("unknown bone should not be fatal: %v", err)
	}
	for _, tr := range res.Clip.Tracks {
		if strings.Contains(tr.Target, "謎ボーン") {
			t.Errorf("unexpected track %s for unknown bone", tr.Target)
		}
	}
	if len(res.Clip.Tracks) != 2 {
		t.Errorf("expected 2 tracks, got %d", len(res.Clip.Tracks))
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Kind != WarnBoneNotFound || res.Warnings[0].Samples != 2 {
		t.Errorf("unexpected warnings %+v", res.Warnings)
	}

	entries := logs.FilterField(zap.String("bone", "謎ボーン")).All()
	if len(entries) != 1 {
		t.Errorf("expected 1 warning log for the unknown bone, got %d", len(entries))
	}
}

func TestConvertExpressions(t *testing.T) {
	skel := newFakeSkeleton().
		withBlendShape("blink", "Blink.weight", 100).
		withBlendShape("眉上", "BrowUp.weight", 50)

	d := &vmd.Data{Morphs: []vmd.Morph{
		{MorphName: humanoid.PMDMorphBlink, Frame: 30, Weight: 100},
		{MorphName: humanoid.PMDMorphBlink, Frame: 0, Weight: 50},
		{MorphName: "眉上", Frame: 6, Weight: 100},
		{MorphName: humanoid.PMDMorphA, Frame: 0, Weight: 10},
	}}

	res, err := NewConverter(Options{}).Convert(d, skel)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if len(res.Clip.Tracks) != 2 {
		t.Fatalf("expected 2 expression tracks, got %d", len(res.Clip.Tracks))
	}

	blink := res.Clip.Tracks[0]
	if blink.Target != "Blink.weight" || blink.Kind != anim.KindNumber {
		t.Errorf("unexpected blink track %s (%s)", blink.Target, blink.Kind)
	}
	if blink.Times[0] != 0 || blink.Times[1] != 1 {
		t.Errorf("blink times = %v, want [0 1]", blink.Times)
	}
	if blink.Values[0] != 0.5 || blink.Values[1] != 1 {
		t.Errorf("blink values = %v, want [0.5 1]", blink.Values)
	}

	// Unmapped morph falls back to its own name.
	brow := res.Clip.Tracks[1]
	if brow.Target != "BrowUp.weight" || brow.Values[0] != 0.5 {
		t.Errorf("unexpected fallback track %+v", brow)
	}

	if len(res.Warnings) != 1 || res.Warnings[0].Kind != WarnBlendShapeNotFound || res.Warnings[0].Name != humanoid.PMDMorphA {
		t.Errorf("unexpected warnings %+v", res.Warnings)
	}
}

func TestConvertBlendShapeWithoutTrackName(t *testing.T) {
	skel := newFakeSkeleton().withBlendShape("joy", "", 100)
	d := &vmd.Data{Morphs: []vmd.Morph{{MorphName: humanoid.PMDMorphJoy, Weight: 100}}}

	res, err := NewConverter(Options{}).Convert(d, skel)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if len(res.Clip.Tracks) != 0 || len(res.Warnings) != 1 {
		t.Errorf("expected the group to be dropped with a warning, got %d tracks %d warnings",
			len(res.Clip.Tracks), len(res.Warnings))
	}
}

func TestConvertMalformedInterpolation(t *testing.T) {
	skel := newFakeSkeleton().
		withBone(humanoid.Head, "head", math.Vec3{}).
		withBone(humanoid.Neck, "neck", math.Vec3{})

	bad := motion(humanoid.PMDHead, 0)
	bad.Interpolation = bad.Interpolation[:24]
	alsoBad := motion(humanoid.PMDNeck, 7)
	alsoBad.Interpolation = nil

	d := &vmd.Data{Motions: []vmd.Motion{bad, alsoBad}}
	res, err := NewConverter(Options{}).Convert(d, skel)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if res != nil {
		t.Error("expected no result on decode error")
	}
	if !errors.Is(err, vmd.ErrInterpolationLength) {
		t.Errorf("expected ErrInterpolationLength, got %v", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.Bone != humanoid.PMDHead {
		t.Errorf("expected DecodeError for %s, got %v", humanoid.PMDHead, err)
	}
	if !strings.Contains(err.Error(), humanoid.PMDNeck) {
		t.Errorf("expected both failing bones reported, got %v", err)
	}
}

func TestConvertEmpty(t *testing.T) {
	res, err := NewConverter(Options{ClipName: "empty"}).Convert(&vmd.Data{}, newFakeSkeleton())
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if len(res.Clip.Tracks) != 0 || len(res.Warnings) != 0 {
		t.Errorf("expected empty clip, got %d tracks %d warnings", len(res.Clip.Tracks), len(res.Warnings))
	}
}

func TestConvertCamerasPassThrough(t *testing.T) {
	cams := []vmd.Camera{{Frame: 3, Distance: -40, FOV: 30}}
	res, err := NewConverter(Options{}).Convert(&vmd.Data{Cameras: cams}, newFakeSkeleton())
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if len(res.Cameras) != 1 || res.Cameras[0].Distance != -40 {
		t.Errorf("cameras not passed through: %+v", res.Cameras)
	}
}

func TestConvertParallelDeterministic(t *testing.T) {
	skel := newFakeSkeleton()
	var motions []vmd.Motion
	for _, m := range humanoid.BoneMappings() {
		skel.withBone(m.Bone, string(m.Bone), math.Vec3{})
		for f := uint32(0); f < 5; f++ {
			motions = append(motions, motion(m.Legacy, 4-f))
		}
	}
	motions = append(motions, motion("謎ボーン", 0))
	skel.withBlendShape("a", "A.weight", 100)
	d := &vmd.Data{
		Motions: motions,
		Morphs:  []vmd.Morph{{MorphName: humanoid.PMDMorphA, Frame: 2, Weight: 20}},
	}

	seq, err := NewConverter(Options{ClipName: "x"}).Convert(d, skel)
	if err != nil {
		t.Fatalf("sequential Convert() error: %v", err)
	}

	for run := 0; run < 5; run++ {
		par, err := NewConverter(Options{ClipName: "x", Workers: 8}).Convert(d, skel)
		if err != nil {
			t.Fatalf("parallel Convert() error: %v", err)
		}
		if len(par.Clip.Tracks) != len(seq.Clip.Tracks) {
			t.Fatalf("track count %d, want %d", len(par.Clip.Tracks), len(seq.Clip.Tracks))
		}
		for i := range seq.Clip.Tracks {
			if par.Clip.Tracks[i].Target != seq.Clip.Tracks[i].Target {
				t.Fatalf("run %d: track %d = %s, want %s", run, i, par.Clip.Tracks[i].Target, seq.Clip.Tracks[i].Target)
			}
		}
		if len(par.Warnings) != 1 {
			t.Errorf("expected 1 warning, got %d", len(par.Warnings))
		}
	}

	if n := len(seq.Clip.Tracks); n != 2*len(humanoid.BoneMappings())+1 {
		t.Errorf("expected %d tracks, got %d", 2*len(humanoid.BoneMappings())+1, n)
	}
	if last := seq.Clip.Tracks[len(seq.Clip.Tracks)-1]; last.Target != "A.weight" {
		t.Errorf("expression tracks should follow bone tracks, last is %s", last.Target)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Kind: WarnBoneNotFound, Name: "センター", Samples: 3}
	if got := w.String(); !strings.Contains(got, "bone not found") || !strings.Contains(got, "センター") {
		t.Errorf("unexpected warning text %q", got)
	}
}
