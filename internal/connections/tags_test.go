package connections

import (
	"reflect"
	"testing"

	"github.com/Faultbox/x3ships/internal/config"
	"github.com/Faultbox/x3ships/pkg/scene"
)

func TestResolveTags(t *testing.T) {
	schema := config.TagsConfig{
		Geometry:   []string{"animation", "part"},
		Connection: []string{"engine", "ship_s"},
		Symmetry:   []string{"symmetry", "symmetry_left"},
	}

	tests := []struct {
		name string
		obj  scene.Object
		want []string
	}{
		{
			name: "mesh uses geometry tags in schema order",
			obj: scene.Object{Type: scene.ObjectMesh, Flags: map[string]map[string]bool{
				GroupGeometryTags:   {"part": true, "animation": true},
				GroupConnectionTags: {"engine": true},
			}},
			want: []string{"animation", "part"},
		},
		{
			name: "empty uses connection tags",
			obj: scene.Object{Type: scene.ObjectEmpty, Flags: map[string]map[string]bool{
				GroupConnectionTags: {"ship_s": true, "engine": false},
			}},
			want: []string{"ship_s"},
		},
		{
			name: "empty with symmetry group",
			obj: scene.Object{Type: scene.ObjectEmpty, Flags: map[string]map[string]bool{
				GroupConnectionTags: {"engine": true},
				GroupSymmetry:       {"symmetry_left": true},
			}},
			want: []string{"engine", "symmetry_left"},
		},
		{
			name: "no flags",
			obj:  scene.Object{Type: scene.ObjectMesh},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTags(&tt.obj, schema)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveTags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnknownFlags(t *testing.T) {
	schema := config.TagsConfig{Geometry: []string{"part"}}
	obj := &scene.Object{Flags: map[string]map[string]bool{
		GroupGeometryTags: {"part": true, "glow": true, "nope": false},
		GroupSymmetry:     {"mirror": true},
	}}

	got := UnknownFlags(obj, schema)
	want := []string{"GeometryTags.glow", "Symmetry.mirror"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnknownFlags() = %v, want %v", got, want)
	}
}
