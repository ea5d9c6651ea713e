package retarget

import (
	"github.com/Faultbox/vmd-vrm/pkg/humanoid"
	"github.com/Faultbox/vmd-vrm/pkg/math"
)

// fakeSkeleton is an in-memory avatar for tests.
type fakeSkeleton struct {
	bones       map[humanoid.BoneName]NodeRef
	nodes       map[string]NodeRef
	bind        map[string]math.Vec3
	blendShapes map[string]BlendShapeGroup
}

func newFakeSkeleton() *fakeSkeleton {
	return &fakeSkeleton{
		bones:       make(map[humanoid.BoneName]NodeRef),
		nodes:       make(map[string]NodeRef),
		bind:        make(map[string]math.Vec3),
		blendShapes: make(map[string]BlendShapeGroup),
	}
}

func (s *fakeSkeleton) withBone(bone humanoid.BoneName, id string, bind math.Vec3) *fakeSkeleton {
	n := NodeRef{ID: id, Name: id}
	s.bones[bone] = n
	s.nodes[id] = n
	s.bind[id] = bind
	return s
}

func (s *fakeSkeleton) withNode(name string, bind math.Vec3) *fakeSkeleton {
	n := NodeRef{ID: "node-" + name, Name: name}
	s.nodes[name] = n
	s.bind[n.ID] = bind
	return s
}

func (s *fakeSkeleton) withBlendShape(name, track string, weight float64) *fakeSkeleton {
	s.blendShapes[name] = BlendShapeGroup{TrackName: track, Weight: weight}
	return s
}

func (s *fakeSkeleton) HumanoidBone(bone humanoid.BoneName) (NodeRef, bool) {
	n, ok := s.bones[bone]
	return n, ok
}

func (s *fakeSkeleton) NodeByName(name string) (NodeRef, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

func (s *fakeSkeleton) BindPosition(node NodeRef) math.Vec3 {
	return s.bind[node.ID]
}

func (s *fakeSkeleton) BlendShapeGroup(name string) (BlendShapeGroup, bool) {
	g, ok := s.blendShapes[name]
	return g, ok
}
