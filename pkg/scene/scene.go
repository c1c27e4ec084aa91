// Package scene loads scene snapshots dumped by the authoring tool.
//
// A snapshot is a read-only view of the host scene at export time: the
// project file path, frame rate, size class, the collections with their
// objects, and the actions referenced by NLA strips. All transforms are in
// the authoring convention (right-handed, Z up).
package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/x3ships/pkg/formats"
	"github.com/Faultbox/x3ships/pkg/math"
)

// ObjectType is the host object kind.
type ObjectType string

const (
	ObjectMesh  ObjectType = "MESH"  // Mesh part
	ObjectEmpty ObjectType = "EMPTY" // Connection marker
)

// Curve data paths used for animation export.
const (
	DataPathLocation      = "location"
	DataPathRotationEuler = "rotation_euler"
)

// Scene is a snapshot of the host scene.
type Scene struct {
	FilePath    string       `yaml:"filepath"` // Saved project file; empty when unsaved
	Class       string       `yaml:"class"`    // Size classifier, e.g. ship_s
	FPS         float64      `yaml:"fps"`      // Frames per second
	Collections []Collection `yaml:"collections"`
	Actions     []Action     `yaml:"actions"`
}

// Collection is a named group of objects.
type Collection struct {
	Name    string   `yaml:"name"`
	Objects []Object `yaml:"objects"`
}

// Object is an exportable scene element.
type Object struct {
	Name       string     `yaml:"name"`
	Type       ObjectType `yaml:"type"`
	HideRender bool       `yaml:"hide_render"`
	Parent     string     `yaml:"parent"`
	Value      float64    `yaml:"value"`

	Location           [3]float32  `yaml:"location"`
	RotationQuaternion *[4]float32 `yaml:"rotation_quaternion"` // W, X, Y, Z; nil = identity
	Scale              *[3]float32 `yaml:"scale"`               // nil = identity
	Dimensions         [3]float32  `yaml:"dimensions"`          // Bounding box size

	Materials []string                   `yaml:"materials"`
	Flags     map[string]map[string]bool `yaml:"flags"` // Property group -> flag -> set

	Animation *AnimationData `yaml:"animation"`
}

// AnimationData holds the NLA tracks of an object.
type AnimationData struct {
	Tracks []Track `yaml:"tracks"`
}

// Track is an NLA track.
type Track struct {
	Name   string  `yaml:"name"`
	Mute   bool    `yaml:"mute"`
	Strips []Strip `yaml:"strips"`
}

// Strip is an NLA strip referencing an action by name.
type Strip struct {
	Name       string  `yaml:"name"`
	Action     string  `yaml:"action"`
	FrameStart float64 `yaml:"frame_start"`
	FrameEnd   float64 `yaml:"frame_end"`
}

// Action is a named set of animation curves.
type Action struct {
	Name    string   `yaml:"name"`
	FCurves []FCurve `yaml:"fcurves"`
}

// FCurve animates one component of a property.
type FCurve struct {
	DataPath  string     `yaml:"data_path"`
	Index     int        `yaml:"index"` // Axis: 0 = X, 1 = Y, 2 = Z
	Keyframes []Keyframe `yaml:"keyframes"`
}

// Keyframe is a single curve sample.
type Keyframe struct {
	Co            [2]float32            `yaml:"co"` // Frame, value
	Interpolation formats.Interpolation `yaml:"interpolation"`
	HandleLeft    [2]float32            `yaml:"handle_left"`
	HandleRight   [2]float32            `yaml:"handle_right"`
}

// Frame returns the keyframe time in frames.
func (k Keyframe) Frame() float32 { return k.Co[0] }

// Value returns the keyframe value.
func (k Keyframe) Value() float32 { return k.Co[1] }

// Load reads a snapshot from a YAML file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes a snapshot from YAML.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return &s, nil
}

// BaseDir returns the project directory, or "" if the project was never saved.
func (s *Scene) BaseDir() string {
	if s.FilePath == "" {
		return ""
	}
	return filepath.Dir(s.FilePath)
}

// ProjectName returns the project display name: the file name without extension.
func (s *Scene) ProjectName() string {
	base := filepath.Base(s.FilePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CollectionsNamed returns, in scene order, every collection whose name
// matches one of names under Unicode case folding.
func (s *Scene) CollectionsNamed(names ...string) []*Collection {
	fold := cases.Fold()
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[fold.String(n)] = true
	}

	var out []*Collection
	for i := range s.Collections {
		if wanted[fold.String(s.Collections[i].Name)] {
			out = append(out, &s.Collections[i])
		}
	}
	return out
}

// GetActionByName returns an action by its name, or nil if not found.
func (s *Scene) GetActionByName(name string) *Action {
	for i := range s.Actions {
		if s.Actions[i].Name == name {
			return &s.Actions[i]
		}
	}
	return nil
}

// HasAnimation reports whether the object has at least one NLA track.
func (o *Object) HasAnimation() bool {
	return o.Animation != nil && len(o.Animation.Tracks) > 0
}

// Position returns the location vector.
func (o *Object) Position() math.Vec3 {
	return math.Vec3FromArray(o.Location)
}

// Orientation returns the rotation quaternion.
func (o *Object) Orientation() math.Quat {
	if o.RotationQuaternion == nil {
		return math.QuatIdentity()
	}
	q := o.RotationQuaternion
	return math.Quat{X: q[1], Y: q[2], Z: q[3], W: q[0]}
}

// ScaleVec returns the object scale.
func (o *Object) ScaleVec() math.Vec3 {
	if o.Scale == nil {
		return math.One
	}
	return math.Vec3FromArray(*o.Scale)
}

// Size returns the bounding box size.
func (o *Object) Size() math.Vec3 {
	return math.Vec3FromArray(o.Dimensions)
}
