// Package formats provides encoders and parsers for engine file formats.
// ANI (packed animation) format: header, descriptor table, keyframe stream.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Faultbox/x3ships/pkg/encoding"
)

// ANI layout constants.
const (
	ANIVersion        = 1
	ANIHeaderSize     = 16
	ANIDescriptorSize = 160
	ANIKeyframeSize   = 128
	ANINameSize       = 64
)

// ANI format errors.
var (
	ErrTruncatedANIData      = errors.New("truncated ANI data")
	ErrUnsupportedANIVersion = errors.New("unsupported ANI version")
	ErrInvalidANIHeader      = errors.New("invalid ANI header")
	ErrKeyframeOutOfRange    = errors.New("keyframe time outside animation duration")
	ErrUnknownInterpolation  = errors.New("unknown interpolation")
)

// Interpolation is the per-axis curve interpolation code stored in keyframes.
type Interpolation uint32

const (
	InterpolationUnknown          Interpolation = 0
	InterpolationConstant         Interpolation = 1
	InterpolationLinear           Interpolation = 2
	InterpolationQuadratic        Interpolation = 3
	InterpolationCubic            Interpolation = 4
	InterpolationBezier           Interpolation = 5
	InterpolationBezierLinearTime Interpolation = 6
	InterpolationTCB              Interpolation = 7
)

var interpolationNames = [...]string{
	InterpolationUnknown:          "UNKNOWN",
	InterpolationConstant:         "CONSTANT",
	InterpolationLinear:           "LINEAR",
	InterpolationQuadratic:        "QUADRATIC",
	InterpolationCubic:            "CUBIC",
	InterpolationBezier:           "BEZIER",
	InterpolationBezierLinearTime: "BEZIER_LINEARTIME",
	InterpolationTCB:              "TCB",
}

// String returns the authoring tool name of the interpolation.
func (i Interpolation) String() string {
	if int(i) < len(interpolationNames) {
		return interpolationNames[i]
	}
	return fmt.Sprintf("Unknown(%d)", uint32(i))
}

// ParseInterpolation resolves an interpolation by name (case-insensitive).
func ParseInterpolation(name string) (Interpolation, error) {
	for code, n := range interpolationNames {
		if strings.EqualFold(n, name) {
			return Interpolation(code), nil
		}
	}
	return InterpolationUnknown, fmt.Errorf("%w: %q", ErrUnknownInterpolation, name)
}

// MarshalText implements encoding.TextMarshaler.
func (i Interpolation) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Interpolation) UnmarshalText(text []byte) error {
	v, err := ParseInterpolation(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// ANIHeader is the 16-byte file header.
type ANIHeader struct {
	Count     uint32 // Number of animations
	KeyOffset uint32 // Byte offset of the keyframe stream (16 + Count*160)
	Version   uint32 // Always 1
	Padding   uint32
}

// ANIHandles holds the bezier handles of one axis.
type ANIHandles struct {
	Out [2]float32 // Outgoing (right) handle: frame, value
	In  [2]float32 // Incoming (left) handle: frame, value
}

// ANIKeyframe is one 128-byte keyframe block covering all three axes.
type ANIKeyframe struct {
	Value         [3]float32       // X, Y, Z in engine axis order
	Interpolation [3]Interpolation // Per-axis interpolation
	Time          float32          // Seconds since animation start
	Handles       [3]ANIHandles    // Per-axis handles
}

// ANIAnimation is one descriptor plus its keyframes.
type ANIAnimation struct {
	Name         string        // Owning node name
	Subname      string        // Track and strip name
	Duration     float32       // Seconds
	LocationKeys []ANIKeyframe // Location keyframes
	RotationKeys []ANIKeyframe // Euler rotation keyframes
}

// ANI represents a packed animation file.
type ANI struct {
	Header     ANIHeader
	Animations []ANIAnimation
}

// aniDescriptor is the on-disk descriptor record.
type aniDescriptor struct {
	Name      [ANINameSize]byte
	Subname   [ANINameSize]byte
	LocKeys   uint32
	RotKeys   uint32
	ScaleKeys uint32 // Scale animation is not supported, always 0
	PreScale  uint32
	PostScale uint32
	Duration  float32
	Reserved  [2]uint32
}

// aniKeyframe is the on-disk keyframe record.
type aniKeyframe struct {
	Value         [3]float32
	Interpolation [3]uint32
	Time          float32
	Handles       [12]float32
	Reserved0     [5]float32
	Reserved1     uint32
	Reserved2     [6]float32
	Reserved3     uint32
}

// NewANI builds a file with a header matching the given animations.
func NewANI(anims []ANIAnimation) *ANI {
	return &ANI{
		Header: ANIHeader{
			Count:     uint32(len(anims)),
			KeyOffset: uint32(ANIHeaderSize + len(anims)*ANIDescriptorSize),
			Version:   ANIVersion,
		},
		Animations: anims,
	}
}

// Size returns the encoded file size in bytes.
func (a *ANI) Size() int {
	size := ANIHeaderSize + len(a.Animations)*ANIDescriptorSize
	for _, anim := range a.Animations {
		size += (len(anim.LocationKeys) + len(anim.RotationKeys)) * ANIKeyframeSize
	}
	return size
}

// Encode writes the file. Descriptors are written for every animation before
// any keyframe; keyframes follow in the same order, location before rotation.
func (a *ANI) Encode(w io.Writer) error {
	if a.Header.Count != uint32(len(a.Animations)) ||
		a.Header.KeyOffset != uint32(ANIHeaderSize+len(a.Animations)*ANIDescriptorSize) {
		return ErrInvalidANIHeader
	}
	if err := binary.Write(w, binary.LittleEndian, &a.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range a.Animations {
		if err := binary.Write(w, binary.LittleEndian, a.Animations[i].descriptor()); err != nil {
			return fmt.Errorf("writing descriptor %d: %w", i, err)
		}
	}

	for i := range a.Animations {
		anim := &a.Animations[i]
		for _, keys := range [][]ANIKeyframe{anim.LocationKeys, anim.RotationKeys} {
			for k := range keys {
				if keys[k].Time < 0 || keys[k].Time > anim.Duration {
					return fmt.Errorf("%s/%s keyframe %d at %gs, duration %gs: %w",
						anim.Name, anim.Subname, k, keys[k].Time, anim.Duration, ErrKeyframeOutOfRange)
				}
				if err := binary.Write(w, binary.LittleEndian, keys[k].record()); err != nil {
					return fmt.Errorf("writing keyframe: %w", err)
				}
			}
		}
	}
	return nil
}

func (anim *ANIAnimation) descriptor() *aniDescriptor {
	desc := &aniDescriptor{
		LocKeys:  uint32(len(anim.LocationKeys)),
		RotKeys:  uint32(len(anim.RotationKeys)),
		Duration: anim.Duration,
	}
	name, _ := encoding.UTF8ToFixedString(anim.Name, ANINameSize)
	subname, _ := encoding.UTF8ToFixedString(anim.Subname, ANINameSize)
	copy(desc.Name[:], name)
	copy(desc.Subname[:], subname)
	return desc
}

func (k *ANIKeyframe) record() *aniKeyframe {
	rec := &aniKeyframe{
		Value: k.Value,
		Time:  k.Time,
	}
	for axis := 0; axis < 3; axis++ {
		rec.Interpolation[axis] = uint32(k.Interpolation[axis])
		h := k.Handles[axis]
		copy(rec.Handles[axis*4:], []float32{h.Out[0], h.Out[1], h.In[0], h.In[1]})
	}
	return rec
}

// ParseANI parses ANI data from a byte slice.
func ParseANI(data []byte) (*ANI, error) {
	if len(data) < ANIHeaderSize {
		return nil, ErrTruncatedANIData
	}

	r := bytes.NewReader(data)
	ani := &ANI{}
	if err := binary.Read(r, binary.LittleEndian, &ani.Header); err != nil {
		return nil, ErrTruncatedANIData
	}

	if ani.Header.Version != ANIVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedANIVersion, ani.Header.Version)
	}
	if uint64(ani.Header.KeyOffset) != ANIHeaderSize+uint64(ani.Header.Count)*ANIDescriptorSize {
		return nil, fmt.Errorf("%w: key offset %d for %d animations", ErrInvalidANIHeader, ani.Header.KeyOffset, ani.Header.Count)
	}
	if uint64(len(data)) < uint64(ani.Header.KeyOffset) {
		return nil, ErrTruncatedANIData
	}

	descs := make([]aniDescriptor, ani.Header.Count)
	if err := binary.Read(r, binary.LittleEndian, descs); err != nil {
		return nil, ErrTruncatedANIData
	}

	ani.Animations = make([]ANIAnimation, len(descs))
	for i, desc := range descs {
		anim := &ani.Animations[i]
		anim.Name = encoding.FixedStringToUTF8(desc.Name[:])
		anim.Subname = encoding.FixedStringToUTF8(desc.Subname[:])
		anim.Duration = desc.Duration

		need := (uint64(desc.LocKeys) + uint64(desc.RotKeys)) * ANIKeyframeSize
		if uint64(r.Len()) < need {
			return nil, fmt.Errorf("animation %d keyframes: %w", i, ErrTruncatedANIData)
		}
		var err error
		if anim.LocationKeys, err = readANIKeyframes(r, desc.LocKeys); err != nil {
			return nil, fmt.Errorf("animation %d location keyframes: %w", i, err)
		}
		if anim.RotationKeys, err = readANIKeyframes(r, desc.RotKeys); err != nil {
			return nil, fmt.Errorf("animation %d rotation keyframes: %w", i, err)
		}
	}

	return ani, nil
}

// readANIKeyframes reads count keyframes.
func readANIKeyframes(r *bytes.Reader, count uint32) ([]ANIKeyframe, error) {
	if count == 0 {
		return nil, nil
	}
	keys := make([]ANIKeyframe, count)
	for i := range keys {
		var rec aniKeyframe
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, ErrTruncatedANIData)
		}

		key := &keys[i]
		key.Value = rec.Value
		key.Time = rec.Time
		for axis := 0; axis < 3; axis++ {
			key.Interpolation[axis] = Interpolation(rec.Interpolation[axis])
			h := rec.Handles[axis*4 : axis*4+4]
			key.Handles[axis] = ANIHandles{
				Out: [2]float32{h[0], h[1]},
				In:  [2]float32{h[2], h[3]},
			}
		}
	}
	return keys, nil
}

// ParseANIFile parses an ANI file from disk.
func ParseANIFile(path string) (*ANI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ANI file: %w", err)
	}
	return ParseANI(data)
}

// ANIFileName returns the animation file name for a project: <PROJECT>_DATA.ani.
func ANIFileName(project string) string {
	return strings.ToUpper(project) + "_DATA.ani"
}

// GetTotalKeyframeCount returns the number of keyframes across all animations.
func (a *ANI) GetTotalKeyframeCount() int {
	total := 0
	for _, anim := range a.Animations {
		total += len(anim.LocationKeys) + len(anim.RotationKeys)
	}
	return total
}
