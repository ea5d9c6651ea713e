// Package clipfile serializes conversion results as YAML or JSON documents
// for a playback runtime.
package clipfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/vmd-vrm/pkg/anim"
	"github.com/Faultbox/vmd-vrm/pkg/retarget"
	"github.com/Faultbox/vmd-vrm/pkg/vmd"
)

// ErrUnknownFormat is returned for an output format other than yaml or json.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output document encoding.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// ParseFormat validates a format name. Matching is case-insensitive and
// "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatForPath guesses a format from a file extension, falling back to def.
func FormatForPath(path string, def Format) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return def
}

// Document is the serialized form of a conversion result.
type Document struct {
	Name     string   `yaml:"name" json:"name"`
	Duration float64  `yaml:"duration" json:"duration"`
	Tracks   []Track  `yaml:"tracks" json:"tracks"`
	Cameras  []Camera `yaml:"cameras,omitempty" json:"cameras,omitempty"`
	Warnings []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// Track is one serialized animation track. Curves are [x1, y1, x2, y2].
type Track struct {
	Target      string       `yaml:"target" json:"target"`
	Type        string       `yaml:"type" json:"type"`
	Times       []float64    `yaml:"times,flow" json:"times"`
	Values      []float64    `yaml:"values,flow" json:"values"`
	CurveStride int          `yaml:"curve_stride,omitempty" json:"curve_stride,omitempty"`
	Curves      [][4]float64 `yaml:"curves,omitempty,flow" json:"curves,omitempty"`
}

// Camera is a passed-through camera keyframe. Interpolation holds the raw
// 24-byte block as integers, the way record documents carry it.
type Camera struct {
	Frame         uint32     `yaml:"frame" json:"frame"`
	Distance      float64    `yaml:"distance" json:"distance"`
	Position      [3]float64 `yaml:"position,flow" json:"position"`
	Rotation      [3]float64 `yaml:"rotation,flow" json:"rotation"`
	Interpolation []int      `yaml:"interpolation,flow" json:"interpolation"`
	FOV           float64    `yaml:"fov" json:"fov"`
	Perspective   bool       `yaml:"perspective" json:"perspective"`
}

// FromResult builds a document from a conversion result.
func FromResult(res *retarget.Result) *Document {
	doc := FromClip(res.Clip)
	for _, c := range res.Cameras {
		doc.Cameras = append(doc.Cameras, fromCamera(c))
	}
	for _, w := range res.Warnings {
		doc.Warnings = append(doc.Warnings, w.String())
	}
	return doc
}

// FromClip builds a document holding only a clip.
func FromClip(clip *anim.Clip) *Document {
	doc := &Document{
		Name:     clip.Name,
		Duration: clip.Duration,
		Tracks:   make([]Track, 0, len(clip.Tracks)),
	}
	for i := range clip.Tracks {
		t := &clip.Tracks[i]
		tr := Track{
			Target:      t.Target,
			Type:        t.Kind.String(),
			Times:       t.Times,
			Values:      t.Values,
			CurveStride: t.CurveStride,
		}
		for _, c := range t.Curves {
			tr.Curves = append(tr.Curves, [4]float64{c.X1, c.Y1, c.X2, c.Y2})
		}
		doc.Tracks = append(doc.Tracks, tr)
	}
	return doc
}

func fromCamera(c vmd.Camera) Camera {
	interp := make([]int, len(c.Interpolation))
	for i, b := range c.Interpolation {
		interp[i] = int(b)
	}
	return Camera{
		Frame:         c.Frame,
		Distance:      c.Distance,
		Position:      c.Position.Array(),
		Rotation:      c.Rotation.Array(),
		Interpolation: interp,
		FOV:           c.FOV,
		Perspective:   c.Perspective,
	}
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Decode reads a document in the given format.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case JSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s clip: %w", format, err)
	}
	return &doc, nil
}

// WriteFile writes doc to path, creating parent directories as needed.
func WriteFile(path string, doc *Document, format Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, doc, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
