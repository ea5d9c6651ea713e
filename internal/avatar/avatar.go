// Package avatar loads a static description of a VRM avatar (node bind
// poses, humanoid bone assignments and blend-shape groups) and serves it as
// a retarget.Skeleton.
package avatar

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/vmd-vrm/pkg/humanoid"
	"github.com/Faultbox/vmd-vrm/pkg/math"
	"github.com/Faultbox/vmd-vrm/pkg/retarget"
)

// Description errors.
var (
	ErrDuplicateNode       = errors.New("duplicate node")
	ErrDuplicateHumanoid   = errors.New("humanoid bone assigned twice")
	ErrDuplicateBlendShape = errors.New("duplicate blend shape")
	ErrUnknownHumanoid     = errors.New("unknown humanoid bone")
	ErrEmptyName           = errors.New("empty name")
)

// DefaultBlendShapeWeight is used when a group declares no weight.
const DefaultBlendShapeWeight = 100.0

// File is the on-disk avatar description.
type File struct {
	Name        string           `yaml:"name"`
	Nodes       []NodeFile       `yaml:"nodes"`
	BlendShapes []BlendShapeFile `yaml:"blend_shapes"`
}

// NodeFile describes one scene node.
type NodeFile struct {
	ID       string     `yaml:"id"` // defaults to Name
	Name     string     `yaml:"name"`
	Humanoid string     `yaml:"humanoid"`
	Position [3]float64 `yaml:"position"`
}

// BlendShapeFile describes one blend-shape group.
type BlendShapeFile struct {
	Name   string   `yaml:"name"`
	Track  string   `yaml:"track"` // defaults to "<name>.weight"
	Weight *float64 `yaml:"weight"`
}

// Avatar is an immutable, validated avatar description.
type Avatar struct {
	name        string
	byID        map[string]math.Vec3
	byName      map[string]retarget.NodeRef
	byBone      map[humanoid.BoneName]retarget.NodeRef
	blendShapes map[string]retarget.BlendShapeGroup
}

var _ retarget.Skeleton = (*Avatar)(nil)

// Load reads an avatar description from disk.
func Load(path string) (*Avatar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading avatar: %w", err)
	}
	a, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("avatar %s: %w", path, err)
	}
	return a, nil
}

// Parse decodes and validates an avatar description.
func Parse(data []byte) (*Avatar, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding avatar: %w", err)
	}
	return New(f)
}

// New validates a description and builds its lookup tables.
func New(f File) (*Avatar, error) {
	a := &Avatar{
		name:        f.Name,
		byID:        make(map[string]math.Vec3, len(f.Nodes)),
		byName:      make(map[string]retarget.NodeRef, len(f.Nodes)),
		byBone:      make(map[humanoid.BoneName]retarget.NodeRef),
		blendShapes: make(map[string]retarget.BlendShapeGroup, len(f.BlendShapes)),
	}

	for i, n := range f.Nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("node %d: %w", i, ErrEmptyName)
		}
		id := n.ID
		if id == "" {
			id = n.Name
		}
		if _, dup := a.byID[id]; dup {
			return nil, fmt.Errorf("node %q: %w: id %q", n.Name, ErrDuplicateNode, id)
		}
		if _, dup := a.byName[n.Name]; dup {
			return nil, fmt.Errorf("node %q: %w", n.Name, ErrDuplicateNode)
		}

		ref := retarget.NodeRef{ID: id, Name: n.Name}
		a.byID[id] = math.Vec3{X: n.Position[0], Y: n.Position[1], Z: n.Position[2]}
		a.byName[n.Name] = ref

		if n.Humanoid != "" {
			bone := humanoid.BoneName(n.Humanoid)
			if !bone.Valid() {
				return nil, fmt.Errorf("node %q: %w: %q", n.Name, ErrUnknownHumanoid, n.Humanoid)
			}
			if prev, dup := a.byBone[bone]; dup {
				return nil, fmt.Errorf("node %q: %w: %s already on %q", n.Name, ErrDuplicateHumanoid, bone, prev.Name)
			}
			a.byBone[bone] = ref
		}
	}

	for i, b := range f.BlendShapes {
		if b.Name == "" {
			return nil, fmt.Errorf("blend shape %d: %w", i, ErrEmptyName)
		}
		if _, dup := a.blendShapes[b.Name]; dup {
			return nil, fmt.Errorf("blend shape %q: %w", b.Name, ErrDuplicateBlendShape)
		}
		group := retarget.BlendShapeGroup{TrackName: b.Track, Weight: DefaultBlendShapeWeight}
		if group.TrackName == "" {
			group.TrackName = b.Name + ".weight"
		}
		if b.Weight != nil {
			group.Weight = *b.Weight
		}
		a.blendShapes[b.Name] = group
	}

	return a, nil
}

// Name returns the avatar's display name.
func (a *Avatar) Name() string {
	return a.name
}

// HumanoidBones returns the number of assigned humanoid bones.
func (a *Avatar) HumanoidBones() int {
	return len(a.byBone)
}

// HumanoidBone implements retarget.Skeleton.
func (a *Avatar) HumanoidBone(bone humanoid.BoneName) (retarget.NodeRef, bool) {
	n, ok := a.byBone[bone]
	return n, ok
}

// NodeByName implements retarget.Skeleton.
func (a *Avatar) NodeByName(name string) (retarget.NodeRef, bool) {
	n, ok := a.byName[name]
	return n, ok
}

// BindPosition implements retarget.Skeleton. Unknown nodes sit at the origin.
func (a *Avatar) BindPosition(node retarget.NodeRef) math.Vec3 {
	return a.byID[node.ID]
}

// BlendShapeGroup implements retarget.Skeleton.
func (a *Avatar) BlendShapeGroup(name string) (retarget.BlendShapeGroup, bool) {
	g, ok := a.blendShapes[name]
	return g, ok
}
