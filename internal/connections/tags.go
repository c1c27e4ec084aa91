package connections

import (
	"slices"
	"sort"

	"github.com/Faultbox/x3ships/internal/config"
	"github.com/Faultbox/x3ships/pkg/scene"
)

// Property groups holding boolean tag flags.
const (
	GroupGeometryTags   = "GeometryTags"
	GroupConnectionTags = "ConnectionTags"
	GroupSymmetry       = "Symmetry"
)

// ResolveTags returns the tags set on obj, in schema order. Mesh parts use
// the geometry tags; markers use the connection tags followed by the
// symmetry tags when the object carries a symmetry group.
func ResolveTags(obj *scene.Object, schema config.TagsConfig) []string {
	var tags []string
	switch obj.Type {
	case scene.ObjectMesh:
		tags = appendSet(tags, obj.Flags[GroupGeometryTags], schema.Geometry)
	case scene.ObjectEmpty:
		tags = appendSet(tags, obj.Flags[GroupConnectionTags], schema.Connection)
		if sym, ok := obj.Flags[GroupSymmetry]; ok {
			tags = appendSet(tags, sym, schema.Symmetry)
		}
	}
	return tags
}

func appendSet(tags []string, flags map[string]bool, names []string) []string {
	for _, name := range names {
		if flags[name] {
			tags = append(tags, name)
		}
	}
	return tags
}

// UnknownFlags returns flags set on obj that no schema entry covers.
func UnknownFlags(obj *scene.Object, schema config.TagsConfig) []string {
	known := map[string][]string{
		GroupGeometryTags:   schema.Geometry,
		GroupConnectionTags: schema.Connection,
		GroupSymmetry:       schema.Symmetry,
	}

	var unknown []string
	for _, group := range []string{GroupGeometryTags, GroupConnectionTags, GroupSymmetry} {
		for flag, set := range obj.Flags[group] {
			if set && !slices.Contains(known[group], flag) {
				unknown = append(unknown, group+"."+flag)
			}
		}
	}
	sort.Strings(unknown)
	return unknown
}
