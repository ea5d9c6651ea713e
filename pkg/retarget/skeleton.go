package retarget

import (
	"github.com/Faultbox/vmd-vrm/pkg/humanoid"
	"github.com/Faultbox/vmd-vrm/pkg/math"
)

// NodeRef identifies a node of the target avatar's scene graph.
type NodeRef struct {
	ID   string // stable identifier used in track targets
	Name string
}

// BlendShapeGroup is a resolved blend-shape group of the target avatar.
type BlendShapeGroup struct {
	TrackName string  // track target the playback runtime binds to
	Weight    float64 // declared weight scale, 100 = full strength
}

// Skeleton is the read-only view of the target avatar the converter needs.
// Implementations must be safe for concurrent reads when Options.Workers > 1.
type Skeleton interface {
	// HumanoidBone resolves a humanoid bone to its node.
	HumanoidBone(bone humanoid.BoneName) (NodeRef, bool)
	// NodeByName resolves any node by its raw scene name.
	NodeByName(name string) (NodeRef, bool)
	// BindPosition returns the node's rest local position.
	BindPosition(node NodeRef) math.Vec3
	// BlendShapeGroup resolves a blend-shape group by identifier.
	BlendShapeGroup(name string) (BlendShapeGroup, bool)
}

// Resolution is the outcome of resolving a legacy bone name: either
// Resolved or Unresolved.
type Resolution interface {
	isResolution()
}

// Resolved is a legacy bone bound to an avatar node. Humanoid is set when
// the binding went through the humanoid table, in which case Bone is valid.
type Resolved struct {
	Node     NodeRef
	Bone     humanoid.BoneName
	Humanoid bool
}

// Unresolved is a legacy bone with no counterpart on the avatar.
type Unresolved struct {
	Name string
}

func (Resolved) isResolution()   {}
func (Unresolved) isResolution() {}

// ResolveBone binds a legacy bone name to an avatar node. The humanoid table
// is tried first, then the raw node name.
//
// A bone that maps to a humanoid bone the avatar does not rig (chest, toes
// and eyes are optional in VRM) is not dropped: it also falls back to a node
// carrying the legacy name, and is only Unresolved when no such node exists.
// Nodes reached this way never receive a rest pose correction.
func ResolveBone(s Skeleton, legacy string) Resolution {
	if bone, ok := humanoid.BoneFor(legacy); ok {
		if node, ok := s.HumanoidBone(bone); ok {
			return Resolved{Node: node, Bone: bone, Humanoid: true}
		}
	}
	if node, ok := s.NodeByName(legacy); ok {
		return Resolved{Node: node}
	}
	return Unresolved{Name: legacy}
}
