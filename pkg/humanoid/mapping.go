package humanoid

import "sort"

// pmdToHuman maps PMD standard bone names onto VRM humanoid bones.
// Bones without a humanoid counterpart (センター, グルーブ, IK targets)
// are absent and must be resolved by node name.
var pmdToHuman = map[string]BoneName{
	PMDLowerBody:  Hips,
	PMDUpperBody:  Spine,
	PMDUpperBody2: Chest,
	PMDNeck:       Neck,
	PMDHead:       Head,
	PMDLeftEye:    LeftEye,
	PMDRightEye:   RightEye,

	PMDLeftLeg:    LeftUpperLeg,
	PMDLeftKnee:   LeftLowerLeg,
	PMDLeftAnkle:  LeftFoot,
	PMDLeftToes:   LeftToes,
	PMDRightLeg:   RightUpperLeg,
	PMDRightKnee:  RightLowerLeg,
	PMDRightAnkle: RightFoot,
	PMDRightToes:  RightToes,

	PMDLeftShoulder:  LeftShoulder,
	PMDLeftArm:       LeftUpperArm,
	PMDLeftElbow:     LeftLowerArm,
	PMDLeftWrist:     LeftHand,
	PMDRightShoulder: RightShoulder,
	PMDRightArm:      RightUpperArm,
	PMDRightElbow:    RightLowerArm,
	PMDRightWrist:    RightHand,

	PMDLeftThumb0:  LeftThumbProximal,
	PMDLeftThumb1:  LeftThumbIntermediate,
	PMDLeftThumb2:  LeftThumbDistal,
	PMDLeftIndex1:  LeftIndexProximal,
	PMDLeftIndex2:  LeftIndexIntermediate,
	PMDLeftIndex3:  LeftIndexDistal,
	PMDLeftMiddle1: LeftMiddleProximal,
	PMDLeftMiddle2: LeftMiddleIntermediate,
	PMDLeftMiddle3: LeftMiddleDistal,
	PMDLeftRing1:   LeftRingProximal,
	PMDLeftRing2:   LeftRingIntermediate,
	PMDLeftRing3:   LeftRingDistal,
	PMDLeftLittle1: LeftLittleProximal,
	PMDLeftLittle2: LeftLittleIntermediate,
	PMDLeftLittle3: LeftLittleDistal,

	PMDRightThumb0:  RightThumbProximal,
	PMDRightThumb1:  RightThumbIntermediate,
	PMDRightThumb2:  RightThumbDistal,
	PMDRightIndex1:  RightIndexProximal,
	PMDRightIndex2:  RightIndexIntermediate,
	PMDRightIndex3:  RightIndexDistal,
	PMDRightMiddle1: RightMiddleProximal,
	PMDRightMiddle2: RightMiddleIntermediate,
	PMDRightMiddle3: RightMiddleDistal,
	PMDRightRing1:   RightRingProximal,
	PMDRightRing2:   RightRingIntermediate,
	PMDRightRing3:   RightRingDistal,
	PMDRightLittle1: RightLittleProximal,
	PMDRightLittle2: RightLittleIntermediate,
	PMDRightLittle3: RightLittleDistal,
}

// morphToBlendShape maps PMD facial morph names onto VRM blend-shape presets.
var morphToBlendShape = map[string]BlendShapeName{
	PMDMorphBlink:  BlendShapeBlink,
	PMDMorphBlinkL: BlendShapeBlinkL,
	PMDMorphBlinkR: BlendShapeBlinkR,
	PMDMorphA:      BlendShapeA,
	PMDMorphI:      BlendShapeI,
	PMDMorphU:      BlendShapeU,
	PMDMorphE:      BlendShapeE,
	PMDMorphO:      BlendShapeO,
	PMDMorphJoy:    BlendShapeJoy,
	PMDMorphAngry:  BlendShapeAngry,
	PMDMorphSorrow: BlendShapeSorrow,
	PMDMorphFun:    BlendShapeFun,
}

// BoneFor returns the humanoid bone a PMD bone name drives.
func BoneFor(legacy string) (BoneName, bool) {
	b, ok := pmdToHuman[legacy]
	return b, ok
}

// BlendShapeFor returns the blend-shape preset a PMD morph name drives.
func BlendShapeFor(legacy string) (BlendShapeName, bool) {
	b, ok := morphToBlendShape[legacy]
	return b, ok
}

// BlendShapeOrName returns the mapped preset, or the legacy name itself so
// that avatars carrying custom groups named after PMD morphs still match.
func BlendShapeOrName(legacy string) string {
	if b, ok := morphToBlendShape[legacy]; ok {
		return string(b)
	}
	return legacy
}

// BoneMapping is one row of the legacy bone table.
type BoneMapping struct {
	Legacy string
	Bone   BoneName
}

// BoneMappings lists the bone table sorted by humanoid bone name.
func BoneMappings() []BoneMapping {
	out := make([]BoneMapping, 0, len(pmdToHuman))
	for legacy, bone := range pmdToHuman {
		out = append(out, BoneMapping{Legacy: legacy, Bone: bone})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bone < out[j].Bone })
	return out
}

// BlendShapeMapping is one row of the legacy morph table.
type BlendShapeMapping struct {
	Legacy     string
	BlendShape BlendShapeName
}

// BlendShapeMappings lists the morph table sorted by preset name.
func BlendShapeMappings() []BlendShapeMapping {
	out := make([]BlendShapeMapping, 0, len(morphToBlendShape))
	for legacy, name := range morphToBlendShape {
		out = append(out, BlendShapeMapping{Legacy: legacy, BlendShape: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BlendShape < out[j].BlendShape })
	return out
}
