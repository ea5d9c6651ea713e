package retarget

import (
	"github.com/Faultbox/vmd-vrm/pkg/anim"
	"github.com/Faultbox/vmd-vrm/pkg/vmd"
)

// ExpressionWeight scales a VMD morph weight in [0, 100] by the group's
// declared weight scale (100 = full strength) into a blend-shape weight.
func ExpressionWeight(groupScale, sampleWeight float64) float64 {
	return groupScale / 100 * (sampleWeight / 100)
}

// ExpressionTrack converts one morph's sorted group into a scalar track
// bound to the resolved blend-shape group.
func ExpressionTrack(group vmd.MorphGroup, target BlendShapeGroup) anim.Track {
	times := make([]float64, len(group.Morphs))
	values := make([]float64, len(group.Morphs))
	for i, m := range group.Morphs {
		times[i] = m.Time()
		values[i] = ExpressionWeight(target.Weight, m.Weight)
	}
	return anim.NewTrack(target.TrackName, anim.KindNumber, times, values)
}
