package connections

import (
	gomath "math"
	"strconv"
	"strings"

	"github.com/Faultbox/x3ships/internal/config"
	"github.com/Faultbox/x3ships/pkg/anim"
	"github.com/Faultbox/x3ships/pkg/scene"
)

// Decimal places kept in the descriptor.
const (
	RoundPosition  = 6
	RoundRotation  = 7
	RoundDimension = 6
)

// Builder assembles the descriptor one connection at a time, in the order
// objects are added.
type Builder struct {
	tags config.TagsConfig
	doc  *Document
}

// NewBuilder starts a descriptor for a project. The fixed space and position
// connections are added first.
func NewBuilder(cfg *config.Config, project, class string) *Builder {
	size := cfg.Export.SizeClasses[class]
	b := &Builder{
		tags: cfg.Tags,
		doc: &Document{
			Component: Component{
				Name:  project,
				Class: class,
				Source: Source{
					Geometry: SourceGeometry(cfg.Export.ExtensionName, size, project),
				},
			},
		},
	}
	b.doc.Component.Connections = append(b.doc.Component.Connections,
		Connection{Name: "space", Tags: class + " ship"},
		Connection{Name: "position", Tags: "position", Value: "1"},
	)
	return b
}

// SourceGeometry returns the engine path of the packed ship data.
func SourceGeometry(extension, size, project string) string {
	return strings.Join([]string{"extensions", extension, "assets", "units", size, project + "_data"}, `\`)
}

// Add appends the connection for obj. records are the object's assembled
// clips and off its resolved static offset.
func (b *Builder) Add(obj *scene.Object, records []anim.Record, off anim.Offset) {
	conn := Connection{
		Name:   obj.Name,
		Tags:   strings.Join(ResolveTags(obj, b.tags), " "),
		Parent: obj.Parent,
	}
	if obj.Value != 0 {
		conn.Value = strconv.FormatFloat(obj.Value, 'f', -1, 64)
	}

	if obj.Type == scene.ObjectMesh {
		conn.Parts = buildParts(obj)
	}

	if obj.HasAnimation() {
		conn.Animations = &Animations{}
		for _, rec := range records {
			conn.Animations.Animation = append(conn.Animations.Animation, Animation{
				Name:  rec.Subname,
				Start: rec.Start,
				End:   rec.End,
			})
		}
	}

	conn.Offset = &Offset{}
	if off.Position != nil {
		conn.Offset.Position = &Vector{
			X: formatFloat(off.Position.X, RoundPosition),
			Y: formatFloat(off.Position.Y, RoundPosition),
			Z: formatFloat(off.Position.Z, RoundPosition),
		}
	}
	if off.Rotation != nil {
		conn.Offset.Quaternion = &Quaternion{
			QX: formatFloat(off.Rotation.X, RoundRotation),
			QY: formatFloat(off.Rotation.Y, RoundRotation),
			QZ: formatFloat(off.Rotation.Z, RoundRotation),
			QW: formatFloat(off.Rotation.W, RoundRotation),
		}
	}

	b.doc.Component.Connections = append(b.doc.Component.Connections, conn)
}

// Document returns the assembled descriptor.
func (b *Builder) Document() *Document {
	return b.doc
}

func buildParts(obj *scene.Object) *Parts {
	lod := LOD{Index: 0}
	for i, mat := range obj.Materials {
		lod.Materials = append(lod.Materials, Material{ID: i + 1, Ref: mat})
	}

	size := obj.Size().SwapYZ()
	return &Parts{
		Part: Part{
			Name: obj.Name,
			LODs: []LOD{lod},
			Size: Size{
				Max: Vector{
					X: formatFloat(size.X, RoundDimension),
					Y: formatFloat(size.Y, RoundDimension),
					Z: formatFloat(size.Z, RoundDimension),
				},
				Center: Vector{X: "0", Y: "0", Z: "0"},
			},
		},
	}
}

// formatFloat rounds v to the given number of decimals and formats it
// without exponent or trailing zeros.
func formatFloat(v float32, decimals int) string {
	scale := gomath.Pow10(decimals)
	r := gomath.Round(float64(v)*scale) / scale
	if r == 0 {
		r = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
