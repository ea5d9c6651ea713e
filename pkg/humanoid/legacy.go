package humanoid

// PMD standard bone names as they appear in VMD motion records.
// Finger joints use full-width digits.
const (
	PMDCenter     = "センター"
	PMDUpperBody  = "上半身"
	PMDUpperBody2 = "上半身2"
	PMDLowerBody  = "下半身"
	PMDNeck       = "首"
	PMDHead       = "頭"
	PMDLeftEye    = "左目"
	PMDRightEye   = "右目"
	PMDBothEyes   = "両目"
	PMDGroove     = "グルーブ"
	PMDWaist      = "腰"

	PMDLeftShoulder  = "左肩"
	PMDLeftArm       = "左腕"
	PMDLeftElbow     = "左ひじ"
	PMDLeftWrist     = "左手首"
	PMDRightShoulder = "右肩"
	PMDRightArm      = "右腕"
	PMDRightElbow    = "右ひじ"
	PMDRightWrist    = "右手首"

	PMDLeftLeg    = "左足"
	PMDLeftKnee   = "左ひざ"
	PMDLeftAnkle  = "左足首"
	PMDLeftToes   = "左つま先"
	PMDLeftLegIK  = "左足ＩＫ"
	PMDLeftToeIK  = "左つま先ＩＫ"
	PMDRightLeg   = "右足"
	PMDRightKnee  = "右ひざ"
	PMDRightAnkle = "右足首"
	PMDRightToes  = "右つま先"
	PMDRightLegIK = "右足ＩＫ"
	PMDRightToeIK = "右つま先ＩＫ"

	PMDLeftThumb0  = "左親指０"
	PMDLeftThumb1  = "左親指１"
	PMDLeftThumb2  = "左親指２"
	PMDLeftIndex1  = "左人指１"
	PMDLeftIndex2  = "左人指２"
	PMDLeftIndex3  = "左人指３"
	PMDLeftMiddle1 = "左中指１"
	PMDLeftMiddle2 = "左中指２"
	PMDLeftMiddle3 = "左中指３"
	PMDLeftRing1   = "左薬指１"
	PMDLeftRing2   = "左薬指２"
	PMDLeftRing3   = "左薬指３"
	PMDLeftLittle1 = "左小指１"
	PMDLeftLittle2 = "左小指２"
	PMDLeftLittle3 = "左小指３"

	PMDRightThumb0  = "右親指０"
	PMDRightThumb1  = "右親指１"
	PMDRightThumb2  = "右親指２"
	PMDRightIndex1  = "右人指１"
	PMDRightIndex2  = "右人指２"
	PMDRightIndex3  = "右人指３"
	PMDRightMiddle1 = "右中指１"
	PMDRightMiddle2 = "右中指２"
	PMDRightMiddle3 = "右中指３"
	PMDRightRing1   = "右薬指１"
	PMDRightRing2   = "右薬指２"
	PMDRightRing3   = "右薬指３"
	PMDRightLittle1 = "右小指１"
	PMDRightLittle2 = "右小指２"
	PMDRightLittle3 = "右小指３"
)

// PMD facial morph names.
const (
	PMDMorphBlink  = "まばたき"
	PMDMorphBlinkL = "ウィンク"
	PMDMorphBlinkR = "ウィンク右"
	PMDMorphA      = "あ"
	PMDMorphI      = "い"
	PMDMorphU      = "う"
	PMDMorphE      = "え"
	PMDMorphO      = "お"
	PMDMorphJoy    = "笑い"
	PMDMorphAngry  = "怒り"
	PMDMorphSorrow = "困る"
	PMDMorphFun    = "にこり"
)
