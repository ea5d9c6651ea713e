package vmd

import (
	"fmt"
	gomath "math"
	"strconv"

	"github.com/Faultbox/vmd-vrm/pkg/encoding"
	"github.com/Faultbox/vmd-vrm/pkg/math"
)

// FromObject builds Data from the generic object a VMD decoder emits
// (nested maps, slices, numbers and strings, as produced by JSON or YAML
// decoding). Every field is checked; the first problem is returned as a
// *FieldError and no partial Data is produced.
//
// Expected shape:
//
//	metadata: {magic, name, coordinateSystem, motionCount, morphCount, cameraCount}
//	motions:  [{boneName, frameNum, position[3], rotation[4], interpolation[64]}]
//	morphs:   [{morphName, frameNum, weight}]
//	cameras:  [{frameNum, distance, position[3], rotation[3], interpolation[24], fov, perspective}]
//
// Names may be strings or arrays of raw Shift-JIS bytes.
func FromObject(obj any) (*Data, error) {
	root, err := asMap("", obj)
	if err != nil {
		return nil, err
	}

	d := &Data{}

	meta, err := root.obj("metadata")
	if err != nil {
		return nil, err
	}
	if d.Metadata, err = readMetadata(meta); err != nil {
		return nil, err
	}

	motions, err := root.list("motions")
	if err != nil {
		return nil, err
	}
	d.Motions = make([]Motion, 0, len(motions))
	for i, item := range motions {
		m, err := asMap(index("motions", i), item)
		if err != nil {
			return nil, err
		}
		motion, err := readMotion(m)
		if err != nil {
			return nil, err
		}
		d.Motions = append(d.Motions, motion)
	}

	morphs, err := root.list("morphs")
	if err != nil {
		return nil, err
	}
	d.Morphs = make([]Morph, 0, len(morphs))
	for i, item := range morphs {
		m, err := asMap(index("morphs", i), item)
		if err != nil {
			return nil, err
		}
		morph, err := readMorph(m)
		if err != nil {
			return nil, err
		}
		d.Morphs = append(d.Morphs, morph)
	}

	cameras, err := root.list("cameras")
	if err != nil {
		return nil, err
	}
	d.Cameras = make([]Camera, 0, len(cameras))
	for i, item := range cameras {
		m, err := asMap(index("cameras", i), item)
		if err != nil {
			return nil, err
		}
		camera, err := readCamera(m)
		if err != nil {
			return nil, err
		}
		d.Cameras = append(d.Cameras, camera)
	}

	return d, nil
}

func readMetadata(m object) (Metadata, error) {
	var meta Metadata
	var err error

	if meta.Magic, err = m.str("magic"); err != nil {
		return Metadata{}, err
	}
	if meta.Name, err = m.name("name"); err != nil {
		return Metadata{}, err
	}
	cs, err := m.str("coordinateSystem")
	if err != nil {
		return Metadata{}, err
	}
	switch CoordinateSystem(cs) {
	case LeftHanded, RightHanded:
		meta.CoordinateSystem = CoordinateSystem(cs)
	default:
		return Metadata{}, m.fail("coordinateSystem", fmt.Errorf("%w: %q is not left or right", ErrFieldRange, cs))
	}
	if meta.MotionCount, err = m.count("motionCount"); err != nil {
		return Metadata{}, err
	}
	if meta.MorphCount, err = m.count("morphCount"); err != nil {
		return Metadata{}, err
	}
	if meta.CameraCount, err = m.count("cameraCount"); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

func readMotion(m object) (Motion, error) {
	var motion Motion
	var err error

	if motion.BoneName, err = m.name("boneName"); err != nil {
		return Motion{}, err
	}
	if motion.Frame, err = m.frame("frameNum"); err != nil {
		return Motion{}, err
	}
	pos, err := m.floats("position", 3)
	if err != nil {
		return Motion{}, err
	}
	motion.Position = math.Vec3{X: pos[0], Y: pos[1], Z: pos[2]}
	rot, err := m.floats("rotation", 4)
	if err != nil {
		return Motion{}, err
	}
	motion.Rotation = math.Quat{X: rot[0], Y: rot[1], Z: rot[2], W: rot[3]}
	if motion.Interpolation, err = m.bytes("interpolation", InterpolationSize); err != nil {
		return Motion{}, err
	}
	return motion, nil
}

func readMorph(m object) (Morph, error) {
	var morph Morph
	var err error

	if morph.MorphName, err = m.name("morphName"); err != nil {
		return Morph{}, err
	}
	if morph.Frame, err = m.frame("frameNum"); err != nil {
		return Morph{}, err
	}
	if morph.Weight, err = m.float("weight"); err != nil {
		return Morph{}, err
	}
	if morph.Weight < 0 || morph.Weight > 100 {
		return Morph{}, m.fail("weight", fmt.Errorf("%w: %v not in [0, 100]", ErrFieldRange, morph.Weight))
	}
	return morph, nil
}

func readCamera(m object) (Camera, error) {
	var c Camera
	var err error

	if c.Frame, err = m.frame("frameNum"); err != nil {
		return Camera{}, err
	}
	if c.Distance, err = m.float("distance"); err != nil {
		return Camera{}, err
	}
	pos, err := m.floats("position", 3)
	if err != nil {
		return Camera{}, err
	}
	c.Position = math.Vec3{X: pos[0], Y: pos[1], Z: pos[2]}
	rot, err := m.floats("rotation", 3)
	if err != nil {
		return Camera{}, err
	}
	c.Rotation = math.Vec3{X: rot[0], Y: rot[1], Z: rot[2]}
	if c.Interpolation, err = m.bytes("interpolation", CameraInterpolationSize); err != nil {
		return Camera{}, err
	}
	if c.FOV, err = m.float("fov"); err != nil {
		return Camera{}, err
	}
	if c.Perspective, err = m.flag("perspective"); err != nil {
		return Camera{}, err
	}
	return c, nil
}

// object is a decoded mapping plus its path for error reporting.
type object struct {
	path   string
	fields map[string]any
}

func asMap(path string, v any) (object, error) {
	switch m := v.(type) {
	case map[string]any:
		return object{path: path, fields: m}, nil
	case map[any]any:
		fields := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return object{}, &FieldError{Path: pathOr(path), Err: fmt.Errorf("%w: non-string key %v", ErrFieldType, k)}
			}
			fields[ks] = val
		}
		return object{path: path, fields: fields}, nil
	case nil:
		return object{}, &FieldError{Path: pathOr(path), Err: ErrMissingField}
	default:
		return object{}, &FieldError{Path: pathOr(path), Err: fmt.Errorf("%w: expected object, got %T", ErrFieldType, v)}
	}
}

func (o object) child(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

func (o object) fail(key string, err error) error {
	return &FieldError{Path: o.child(key), Err: err}
}

func (o object) get(key string) (any, error) {
	v, ok := o.fields[key]
	if !ok || v == nil {
		return nil, o.fail(key, ErrMissingField)
	}
	return v, nil
}

func (o object) obj(key string) (object, error) {
	v, err := o.get(key)
	if err != nil {
		return object{}, err
	}
	return asMap(o.child(key), v)
}

func (o object) list(key string) ([]any, error) {
	v, err := o.get(key)
	if err != nil {
		return nil, err
	}
	l, ok := v.([]any)
	if !ok {
		return nil, o.fail(key, fmt.Errorf("%w: expected array, got %T", ErrFieldType, v))
	}
	return l, nil
}

func (o object) str(key string) (string, error) {
	v, err := o.get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", o.fail(key, fmt.Errorf("%w: expected string, got %T", ErrFieldType, v))
	}
	return s, nil
}

// name reads a text field that is either a string or raw Shift-JIS bytes.
func (o object) name(key string) (string, error) {
	v, err := o.get(key)
	if err != nil {
		return "", err
	}
	switch n := v.(type) {
	case string:
		return encoding.NormalizeName(n), nil
	case []any:
		raw, err := o.bytes(key, -1)
		if err != nil {
			return "", err
		}
		return encoding.FixedStringToUTF8(raw), nil
	default:
		return "", o.fail(key, fmt.Errorf("%w: expected string or byte array, got %T", ErrFieldType, v))
	}
}

func (o object) float(key string) (float64, error) {
	v, err := o.get(key)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, o.fail(key, fmt.Errorf("%w: expected number, got %T", ErrFieldType, v))
	}
	if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
		return 0, o.fail(key, fmt.Errorf("%w: %v is not finite", ErrFieldRange, f))
	}
	return f, nil
}

// integer reads a number that must have no fractional part.
func (o object) integer(key string) (int64, error) {
	f, err := o.float(key)
	if err != nil {
		return 0, err
	}
	if f != gomath.Trunc(f) {
		return 0, o.fail(key, fmt.Errorf("%w: %v is not an integer", ErrFieldType, f))
	}
	return int64(f), nil
}

func (o object) frame(key string) (uint32, error) {
	n, err := o.integer(key)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > gomath.MaxUint32 {
		return 0, o.fail(key, fmt.Errorf("%w: frame %d", ErrFieldRange, n))
	}
	return uint32(n), nil
}

func (o object) count(key string) (int, error) {
	n, err := o.integer(key)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > gomath.MaxInt32 {
		return 0, o.fail(key, fmt.Errorf("%w: count %d", ErrFieldRange, n))
	}
	return int(n), nil
}

func (o object) flag(key string) (bool, error) {
	v, err := o.get(key)
	if err != nil {
		return false, err
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return false, o.fail(key, fmt.Errorf("%w: expected bool or number, got %T", ErrFieldType, v))
	}
	return f != 0, nil
}

func (o object) floats(key string, n int) ([]float64, error) {
	l, err := o.list(key)
	if err != nil {
		return nil, err
	}
	if len(l) != n {
		return nil, o.fail(key, fmt.Errorf("%w: got %d elements, want %d", ErrFieldRange, len(l), n))
	}
	out := make([]float64, n)
	for i, v := range l {
		f, ok := toFloat(v)
		if !ok {
			return nil, &FieldError{Path: index(o.child(key), i), Err: fmt.Errorf("%w: expected number, got %T", ErrFieldType, v)}
		}
		if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
			return nil, &FieldError{Path: index(o.child(key), i), Err: fmt.Errorf("%w: %v is not finite", ErrFieldRange, f)}
		}
		out[i] = f
	}
	return out, nil
}

// bytes reads an array of integers in [0, 255]. A negative size accepts any length.
func (o object) bytes(key string, size int) ([]byte, error) {
	l, err := o.list(key)
	if err != nil {
		return nil, err
	}
	if size >= 0 && len(l) != size {
		return nil, o.fail(key, fmt.Errorf("%w: got %d bytes, want %d", ErrInterpolationLength, len(l), size))
	}
	out := make([]byte, len(l))
	for i, v := range l {
		f, ok := toFloat(v)
		if !ok || f != gomath.Trunc(f) {
			return nil, &FieldError{Path: index(o.child(key), i), Err: fmt.Errorf("%w: expected byte, got %v", ErrFieldType, v)}
		}
		if f < 0 || f > 255 {
			return nil, &FieldError{Path: index(o.child(key), i), Err: fmt.Errorf("%w: %v is not a byte", ErrFieldRange, f)}
		}
		out[i] = byte(f)
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func pathOr(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}
