package exporter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/x3ships/internal/config"
	"github.com/Faultbox/x3ships/internal/connections"
	"github.com/Faultbox/x3ships/pkg/anim"
	"github.com/Faultbox/x3ships/pkg/formats"
	"github.com/Faultbox/x3ships/pkg/scene"
)

const shipSnapshot = `
class: ship_s
fps: 30
collections:
  - name: Connections
    objects:
      - name: con_engine
        type: EMPTY
        parent: body
        location: [1, 2, 3]
        flags:
          ConnectionTags: {engine: true}
      - name: con_hidden
        type: EMPTY
        hide_render: true
        scale: [2, 2, 2]
  - name: Lights
    objects:
      - name: lamp
        type: EMPTY
  - name: PARTS
    objects:
      - name: body
        type: MESH
        dimensions: [10, 20, 30]
        materials: [hull]
        flags:
          GeometryTags: {part: true}
        animation:
          tracks:
            - name: open
              strips:
                - {name: main, action: body_open, frame_start: 10, frame_end: 70}
actions:
  - name: body_open
    fcurves:
      - data_path: location
        index: 0
        keyframes:
          - {co: [10, 1], interpolation: LINEAR}
          - {co: [40, 4], interpolation: LINEAR}
          - {co: [70, 7], interpolation: LINEAR}
      - data_path: location
        index: 1
        keyframes:
          - {co: [10, 100], interpolation: LINEAR}
          - {co: [40, 100], interpolation: LINEAR}
          - {co: [70, 100], interpolation: LINEAR}
      - data_path: location
        index: 2
        keyframes:
          - {co: [10, 200], interpolation: LINEAR}
          - {co: [40, 200], interpolation: LINEAR}
          - {co: [70, 200], interpolation: LINEAR}
`

// loadShip parses snapshot as if it had been saved to dir/my_ship.blend.
func loadShip(t *testing.T, snapshot, dir string) *scene.Scene {
	t.Helper()
	scn, err := scene.Parse([]byte(snapshot))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	scn.FilePath = filepath.Join(dir, "my_ship.blend")
	return scn
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	scn := loadShip(t, shipSnapshot, dir)

	res, err := New(config.Default(), nil).Run(scn)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Connections != 2 || res.Skipped != 1 {
		t.Errorf("connections/skipped = %d/%d, want 2/1", res.Connections, res.Skipped)
	}
	if res.Animations != 1 || res.Keyframes != 3 {
		t.Errorf("animations/keyframes = %d/%d, want 1/3", res.Animations, res.Keyframes)
	}
	wantFiles := []string{
		filepath.Join(dir, "connections.xml"),
		filepath.Join(dir, "my_ship.xml"),
		filepath.Join(dir, "MY_SHIP_DATA.ani"),
	}
	if len(res.Files) != len(wantFiles) {
		t.Fatalf("files = %v, want %v", res.Files, wantFiles)
	}
	for i, want := range wantFiles {
		if res.Files[i] != want {
			t.Errorf("file %d = %q, want %q", i, res.Files[i], want)
		}
	}

	// Both descriptor copies are identical
	a, err := os.ReadFile(wantFiles[0])
	if err != nil {
		t.Fatalf("reading connections.xml: %v", err)
	}
	b, err := os.ReadFile(wantFiles[1])
	if err != nil {
		t.Fatalf("reading my_ship.xml: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("descriptor copies differ")
	}
	xml := string(a)
	for _, want := range []string{
		`<component name="my_ship" class="ship_s">`,
		`<connection name="con_engine" tags="engine" parent="body">`,
		`<position x="1" y="3" z="2"></position>`,
		`<animation name="open_main" start="10" end="70"></animation>`,
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("descriptor missing %s", want)
		}
	}
	for _, unwanted := range []string{"con_hidden", "lamp"} {
		if strings.Contains(xml, unwanted) {
			t.Errorf("descriptor contains %s", unwanted)
		}
	}

	ani, err := formats.ParseANIFile(wantFiles[2])
	if err != nil {
		t.Fatalf("ParseANIFile failed: %v", err)
	}
	if len(ani.Animations) != 1 {
		t.Fatalf("animation count = %d, want 1", len(ani.Animations))
	}
	clip := ani.Animations[0]
	if clip.Name != "body" || clip.Subname != "open_main" {
		t.Errorf("names = %q/%q", clip.Name, clip.Subname)
	}
	if clip.Duration != 2 {
		t.Errorf("duration = %v, want 2", clip.Duration)
	}
	if len(clip.LocationKeys) != 3 || len(clip.RotationKeys) != 0 {
		t.Fatalf("key counts = %d/%d, want 3/0", len(clip.LocationKeys), len(clip.RotationKeys))
	}
	mid := clip.LocationKeys[1]
	if mid.Time != 1 {
		t.Errorf("middle key time = %v, want 1", mid.Time)
	}
	if mid.Value != [3]float32{4, 200, 100} {
		t.Errorf("middle key value = %v, want [4 200 100]", mid.Value)
	}
	if mid.Interpolation[0] != formats.InterpolationLinear {
		t.Errorf("interpolation = %v, want LINEAR", mid.Interpolation[0])
	}
}

func TestRun_OutputDirOverride(t *testing.T) {
	out := filepath.Join(t.TempDir(), "build", "ships")
	cfg := config.Default()
	cfg.Export.OutputDir = out

	res, err := New(cfg, nil).Run(loadShip(t, shipSnapshot, t.TempDir()))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, f := range res.Files {
		if filepath.Dir(f) != out {
			t.Errorf("file %q not written to %q", f, out)
		}
		if _, err := os.Stat(f); err != nil {
			t.Errorf("missing output: %v", err)
		}
	}
}

func TestCollect_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(scn *scene.Scene, cfg *config.Config)
		wantErr error
	}{
		{
			name:    "unsaved project",
			edit:    func(scn *scene.Scene, cfg *config.Config) { scn.FilePath = "" },
			wantErr: ErrProjectNotSaved,
		},
		{
			name:    "zero frame rate",
			edit:    func(scn *scene.Scene, cfg *config.Config) { scn.FPS = 0 },
			wantErr: anim.ErrInvalidFrameRate,
		},
		{
			name: "scale not applied",
			edit: func(scn *scene.Scene, cfg *config.Config) {
				scn.Collections[0].Objects[0].Scale = &[3]float32{1, 1.01, 1}
			},
			wantErr: ErrUnsupportedScale,
		},
		{
			name: "missing axis curve",
			edit: func(scn *scene.Scene, cfg *config.Config) {
				scn.Actions[0].FCurves = scn.Actions[0].FCurves[:2]
			},
			wantErr: anim.ErrMalformedAnimation,
		},
		{
			name: "parent outside export",
			edit: func(scn *scene.Scene, cfg *config.Config) {
				cfg.Export.ValidateParents = true
				scn.Collections[0].Objects[0].Parent = "lamp"
			},
			wantErr: connections.ErrUnknownParent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			scn := loadShip(t, shipSnapshot, dir)
			cfg := config.Default()
			tt.edit(scn, cfg)

			if _, err := New(cfg, nil).Run(scn); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run error = %v, want %v", err, tt.wantErr)
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatalf("ReadDir failed: %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("failed run left %d files behind", len(entries))
			}
		})
	}
}

func TestCollect_FPSOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Export.FPSOverride = 60

	exp, err := New(cfg, nil).Collect(loadShip(t, shipSnapshot, t.TempDir()))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if exp.FPS != 60 {
		t.Errorf("FPS = %v, want 60", exp.FPS)
	}
	if got := exp.ANI.Animations[0].Duration; got != 1 {
		t.Errorf("duration = %v, want 1", got)
	}
}

func TestCollect_OnlyPartsAnimationsPacked(t *testing.T) {
	scn := loadShip(t, shipSnapshot, t.TempDir())
	engine := &scn.Collections[0].Objects[0]
	engine.Animation = &scene.AnimationData{Tracks: []scene.Track{{
		Name:   "pulse",
		Strips: []scene.Strip{{Name: "loop", Action: "body_open", FrameStart: 10, FrameEnd: 70}},
	}}}

	exp, err := New(config.Default(), nil).Collect(scn)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(exp.Records) != 1 || exp.Records[0].Name != "body" {
		t.Errorf("packed records = %+v, want only body", exp.Records)
	}

	conn := exp.Document.Component.Connections[2]
	if conn.Name != "con_engine" || conn.Animations == nil || len(conn.Animations.Animation) != 1 {
		t.Fatalf("con_engine connection = %+v", conn)
	}
	if conn.Offset.Position != nil {
		t.Error("animated location should not carry a static position")
	}
}
