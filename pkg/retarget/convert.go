// Package retarget converts VMD motion onto a VRM humanoid avatar.
//
// Conversion is a one-shot transformation from decoded samples and a
// read-only skeleton to an animation clip. Bones and morphs the avatar
// cannot bind are skipped with a warning; a corrupt interpolation block
// fails the whole conversion.
package retarget

import (
	"fmt"
	"sync"

	uuid "github.com/satori/go.uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/vmd-vrm/pkg/anim"
	"github.com/Faultbox/vmd-vrm/pkg/humanoid"
	"github.com/Faultbox/vmd-vrm/pkg/vmd"
)

// WarningKind classifies a recoverable mapping gap.
type WarningKind int

// Warning kinds.
const (
	WarnBoneNotFound WarningKind = iota
	WarnBlendShapeNotFound
)

func (k WarningKind) String() string {
	switch k {
	case WarnBoneNotFound:
		return "bone not found"
	case WarnBlendShapeNotFound:
		return "blend shape not found"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning records a sample group dropped from the clip.
type Warning struct {
	Kind    WarningKind
	Name    string // legacy bone or morph name
	Samples int    // keyframes dropped
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %q (%d keyframes dropped)", w.Kind, w.Name, w.Samples)
}

// Options configures a Converter.
type Options struct {
	// ClipName names the clip; a unique name is generated when empty.
	ClipName string
	// Workers is the number of groups converted in parallel. Values below 2
	// convert sequentially.
	Workers int
	// Logger receives warnings. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Result is the output of a conversion.
type Result struct {
	Clip     *anim.Clip
	Cameras  []vmd.Camera // passed through unchanged
	Warnings []Warning
}

// Converter turns VMD data into clips for one avatar convention.
type Converter struct {
	opts Options
	log  *zap.Logger
}

// NewConverter creates a converter.
func NewConverter(opts Options) *Converter {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{opts: opts, log: log}
}

// groupResult is one arena slot; slots are filled independently and read
// back in index order.
type groupResult struct {
	tracks  []anim.Track
	warning *Warning
	err     error
}

// Convert retargets d onto skel. The returned clip holds bone tracks in the
// order bones first appear in d, followed by expression tracks in the same
// order. Any decode error aborts the conversion; all of them are reported.
func (c *Converter) Convert(d *vmd.Data, skel Skeleton) (*Result, error) {
	motionGroups := vmd.GroupMotions(d.Motions)
	morphGroups := vmd.GroupMorphs(d.Morphs)

	jobs := len(motionGroups) + len(morphGroups)
	arena := make([]groupResult, jobs)

	run := func(i int) {
		if i < len(motionGroups) {
			arena[i] = convertMotionGroup(motionGroups[i], skel)
			return
		}
		arena[i] = convertMorphGroup(morphGroups[i-len(motionGroups)], skel)
	}

	if c.opts.Workers > 1 && jobs > 1 {
		c.runParallel(jobs, run)
	} else {
		for i := 0; i < jobs; i++ {
			run(i)
		}
	}

	var (
		tracks   []anim.Track
		warnings []Warning
		errs     error
	)
	for i := range arena {
		r := &arena[i]
		if r.err != nil {
			errs = multierr.Append(errs, r.err)
			continue
		}
		if r.warning != nil {
			c.logWarning(*r.warning)
			warnings = append(warnings, *r.warning)
			continue
		}
		tracks = append(tracks, r.tracks...)
	}
	if errs != nil {
		return nil, errs
	}

	name := c.opts.ClipName
	if name == "" {
		name = "uuid-" + uuid.NewV4().String()
	}

	clip := anim.NewClip(name, tracks)
	c.log.Debug("motion converted",
		zap.String("clip", name),
		zap.Int("bones", len(motionGroups)),
		zap.Int("morphs", len(morphGroups)),
		zap.Int("tracks", len(tracks)),
		zap.Int("warnings", len(warnings)))

	return &Result{Clip: clip, Cameras: d.Cameras, Warnings: warnings}, nil
}

// runParallel fans job indices out to a fixed pool of workers.
func (c *Converter) runParallel(jobs int, run func(int)) {
	workers := c.opts.Workers
	if workers > jobs {
		workers = jobs
	}

	next := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				run(i)
			}
		}()
	}
	for i := 0; i < jobs; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}

func (c *Converter) logWarning(w Warning) {
	switch w.Kind {
	case WarnBoneNotFound:
		c.log.Warn("bone not found, skipping", zap.String("bone", w.Name), zap.Int("keyframes", w.Samples))
	case WarnBlendShapeNotFound:
		c.log.Warn("blend shape not found, skipping", zap.String("morph", w.Name), zap.Int("keyframes", w.Samples))
	}
}

func convertMotionGroup(g vmd.MotionGroup, skel Skeleton) groupResult {
	switch r := ResolveBone(skel, g.Name).(type) {
	case Resolved:
		tracks, err := BoneTracks(g, r, skel.BindPosition(r.Node))
		return groupResult{tracks: tracks, err: err}
	case Unresolved:
		return groupResult{warning: &Warning{Kind: WarnBoneNotFound, Name: r.Name, Samples: len(g.Motions)}}
	default:
		panic(fmt.Sprintf("retarget: unexpected resolution %T", r))
	}
}

func convertMorphGroup(g vmd.MorphGroup, skel Skeleton) groupResult {
	group, ok := skel.BlendShapeGroup(humanoid.BlendShapeOrName(g.Name))
	if !ok || group.TrackName == "" {
		return groupResult{warning: &Warning{Kind: WarnBlendShapeNotFound, Name: g.Name, Samples: len(g.Morphs)}}
	}
	return groupResult{tracks: []anim.Track{ExpressionTrack(g, group)}}
}

// Convert retargets d onto skel with default options and returns the clip.
func Convert(d *vmd.Data, skel Skeleton) (*anim.Clip, error) {
	res, err := NewConverter(Options{}).Convert(d, skel)
	if err != nil {
		return nil, err
	}
	return res.Clip, nil
}
