// Package humanoid defines the VRM humanoid bone and blend-shape identifiers,
// the PMD standard bone and morph names found in VMD motions, and the static
// tables that map one onto the other.
package humanoid

// BoneName is a VRM humanoid bone identifier.
type BoneName string

// VRM 0.x humanoid bones.
const (
	Hips       BoneName = "hips"
	Spine      BoneName = "spine"
	Chest      BoneName = "chest"
	UpperChest BoneName = "upperChest"
	Neck       BoneName = "neck"
	Head       BoneName = "head"
	LeftEye    BoneName = "leftEye"
	RightEye   BoneName = "rightEye"
	Jaw        BoneName = "jaw"

	LeftUpperLeg  BoneName = "leftUpperLeg"
	LeftLowerLeg  BoneName = "leftLowerLeg"
	LeftFoot      BoneName = "leftFoot"
	LeftToes      BoneName = "leftToes"
	RightUpperLeg BoneName = "rightUpperLeg"
	RightLowerLeg BoneName = "rightLowerLeg"
	RightFoot     BoneName = "rightFoot"
	RightToes     BoneName = "rightToes"

	LeftShoulder  BoneName = "leftShoulder"
	LeftUpperArm  BoneName = "leftUpperArm"
	LeftLowerArm  BoneName = "leftLowerArm"
	LeftHand      BoneName = "leftHand"
	RightShoulder BoneName = "rightShoulder"
	RightUpperArm BoneName = "rightUpperArm"
	RightLowerArm BoneName = "rightLowerArm"
	RightHand     BoneName = "rightHand"

	LeftThumbProximal      BoneName = "leftThumbProximal"
	LeftThumbIntermediate  BoneName = "leftThumbIntermediate"
	LeftThumbDistal        BoneName = "leftThumbDistal"
	LeftIndexProximal      BoneName = "leftIndexProximal"
	LeftIndexIntermediate  BoneName = "leftIndexIntermediate"
	LeftIndexDistal        BoneName = "leftIndexDistal"
	LeftMiddleProximal     BoneName = "leftMiddleProximal"
	LeftMiddleIntermediate BoneName = "leftMiddleIntermediate"
	LeftMiddleDistal       BoneName = "leftMiddleDistal"
	LeftRingProximal       BoneName = "leftRingProximal"
	LeftRingIntermediate   BoneName = "leftRingIntermediate"
	LeftRingDistal         BoneName = "leftRingDistal"
	LeftLittleProximal     BoneName = "leftLittleProximal"
	LeftLittleIntermediate BoneName = "leftLittleIntermediate"
	LeftLittleDistal       BoneName = "leftLittleDistal"

	RightThumbProximal      BoneName = "rightThumbProximal"
	RightThumbIntermediate  BoneName = "rightThumbIntermediate"
	RightThumbDistal        BoneName = "rightThumbDistal"
	RightIndexProximal      BoneName = "rightIndexProximal"
	RightIndexIntermediate  BoneName = "rightIndexIntermediate"
	RightIndexDistal        BoneName = "rightIndexDistal"
	RightMiddleProximal     BoneName = "rightMiddleProximal"
	RightMiddleIntermediate BoneName = "rightMiddleIntermediate"
	RightMiddleDistal       BoneName = "rightMiddleDistal"
	RightRingProximal       BoneName = "rightRingProximal"
	RightRingIntermediate   BoneName = "rightRingIntermediate"
	RightRingDistal         BoneName = "rightRingDistal"
	RightLittleProximal     BoneName = "rightLittleProximal"
	RightLittleIntermediate BoneName = "rightLittleIntermediate"
	RightLittleDistal       BoneName = "rightLittleDistal"
)

// String returns the identifier as written in VRM documents.
func (b BoneName) String() string {
	return string(b)
}

// BlendShapeName is a VRM blend-shape group identifier. Presets are listed
// below; avatars may declare custom groups under any other name.
type BlendShapeName string

// VRM 0.x blend-shape presets.
const (
	BlendShapeNeutral BlendShapeName = "neutral"
	BlendShapeA       BlendShapeName = "a"
	BlendShapeI       BlendShapeName = "i"
	BlendShapeU       BlendShapeName = "u"
	BlendShapeE       BlendShapeName = "e"
	BlendShapeO       BlendShapeName = "o"
	BlendShapeBlink   BlendShapeName = "blink"
	BlendShapeBlinkL  BlendShapeName = "blink_l"
	BlendShapeBlinkR  BlendShapeName = "blink_r"
	BlendShapeJoy     BlendShapeName = "joy"
	BlendShapeAngry   BlendShapeName = "angry"
	BlendShapeSorrow  BlendShapeName = "sorrow"
	BlendShapeFun     BlendShapeName = "fun"
	BlendShapeLookUp  BlendShapeName = "lookup"
	BlendShapeLookDn  BlendShapeName = "lookdown"
	BlendShapeLookL   BlendShapeName = "lookleft"
	BlendShapeLookR   BlendShapeName = "lookright"
)

// String returns the identifier as written in VRM documents.
func (b BlendShapeName) String() string {
	return string(b)
}

// Bones lists every humanoid bone in hierarchy order, torso first.
var Bones = []BoneName{
	Hips, Spine, Chest, UpperChest, Neck, Head, LeftEye, RightEye, Jaw,
	LeftUpperLeg, LeftLowerLeg, LeftFoot, LeftToes,
	RightUpperLeg, RightLowerLeg, RightFoot, RightToes,
	LeftShoulder, LeftUpperArm, LeftLowerArm, LeftHand,
	RightShoulder, RightUpperArm, RightLowerArm, RightHand,
	LeftThumbProximal, LeftThumbIntermediate, LeftThumbDistal,
	LeftIndexProximal, LeftIndexIntermediate, LeftIndexDistal,
	LeftMiddleProximal, LeftMiddleIntermediate, LeftMiddleDistal,
	LeftRingProximal, LeftRingIntermediate, LeftRingDistal,
	LeftLittleProximal, LeftLittleIntermediate, LeftLittleDistal,
	RightThumbProximal, RightThumbIntermediate, RightThumbDistal,
	RightIndexProximal, RightIndexIntermediate, RightIndexDistal,
	RightMiddleProximal, RightMiddleIntermediate, RightMiddleDistal,
	RightRingProximal, RightRingIntermediate, RightRingDistal,
	RightLittleProximal, RightLittleIntermediate, RightLittleDistal,
}

var boneSet = func() map[BoneName]struct{} {
	s := make(map[BoneName]struct{}, len(Bones))
	for _, b := range Bones {
		s[b] = struct{}{}
	}
	return s
}()

// Valid reports whether b is a known humanoid bone.
func (b BoneName) Valid() bool {
	_, ok := boneSet[b]
	return ok
}
