// Package exporter walks a scene snapshot and writes the connection
// descriptor and the packed animation file of a ship.
package exporter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/x3ships/internal/config"
	"github.com/Faultbox/x3ships/internal/connections"
	"github.com/Faultbox/x3ships/pkg/anim"
	"github.com/Faultbox/x3ships/pkg/formats"
	"github.com/Faultbox/x3ships/pkg/math"
	"github.com/Faultbox/x3ships/pkg/scene"
)

// ConnectionsFileName is the fixed name of the descriptor copy read by the
// asset pipeline.
const ConnectionsFileName = "connections.xml"

// Exporter errors.
var (
	ErrProjectNotSaved  = errors.New("project must be saved before export")
	ErrUnsupportedScale = errors.New("object scale must be applied before export")
)

// Exporter converts scene snapshots using one configuration.
type Exporter struct {
	cfg *config.Config
	log *zap.Logger
}

// New creates an exporter. A nil logger discards all output.
func New(cfg *config.Config, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{cfg: cfg, log: log}
}

// Export is the in-memory outcome of a scene traversal.
type Export struct {
	Project   string
	OutputDir string
	FPS       float64
	Document  *connections.Document
	Records   []anim.Record // Animated parts, in file order
	ANI       *formats.ANI
	Objects   int // Exported connections, fixed ones excluded
	Hidden    int // Objects skipped because they are not rendered
}

// Result summarizes a completed run.
type Result struct {
	Files       []string
	Connections int
	Animations  int
	Keyframes   int
	Skipped     int
}

// Collect walks the connections and parts collections of scn in snapshot
// order and builds both artifacts without touching the filesystem.
func (e *Exporter) Collect(scn *scene.Scene) (*Export, error) {
	baseDir := scn.BaseDir()
	if baseDir == "" {
		return nil, ErrProjectNotSaved
	}

	fps := scn.FPS
	if e.cfg.Export.FPSOverride > 0 {
		fps = e.cfg.Export.FPSOverride
	}
	if fps <= 0 {
		return nil, fmt.Errorf("%w: %g", anim.ErrInvalidFrameRate, fps)
	}

	out := &Export{
		Project:   scn.ProjectName(),
		OutputDir: baseDir,
		FPS:       fps,
	}
	if e.cfg.Export.OutputDir != "" {
		out.OutputDir = e.cfg.Export.OutputDir
	}

	if _, ok := e.cfg.Export.SizeClasses[scn.Class]; !ok {
		e.log.Warn("no asset size folder for ship class", zap.String("class", scn.Class))
	}

	b := connections.NewBuilder(e.cfg, out.Project, scn.Class)
	parts := make(map[*scene.Collection]bool)
	for _, c := range scn.CollectionsNamed(e.cfg.Export.PartsCollection) {
		parts[c] = true
	}
	var exported []*scene.Object

	for _, coll := range scn.CollectionsNamed(e.cfg.Export.ConnectionsCollection, e.cfg.Export.PartsCollection) {
		isParts := parts[coll]

		for i := range coll.Objects {
			obj := &coll.Objects[i]
			if obj.HideRender {
				out.Hidden++
				e.log.Debug("skipping hidden object", zap.String("object", obj.Name))
				continue
			}
			if obj.ScaleVec() != math.One {
				return nil, fmt.Errorf("object %q scale %v: %w", obj.Name, obj.ScaleVec(), ErrUnsupportedScale)
			}
			if unknown := connections.UnknownFlags(obj, e.cfg.Tags); len(unknown) > 0 {
				e.log.Debug("ignoring flags outside the tag schema",
					zap.String("object", obj.Name), zap.Strings("flags", unknown))
			}

			records, err := anim.Assemble(obj, scn, e.log)
			if err != nil {
				return nil, err
			}

			b.Add(obj, records, anim.ResolveOffset(obj, records))
			exported = append(exported, obj)
			out.Objects++

			if isParts {
				out.Records = append(out.Records, records...)
			}
		}
	}

	if e.cfg.Export.ValidateParents {
		if err := connections.ValidateParents(exported); err != nil {
			return nil, err
		}
	}

	ani, err := anim.BuildANI(out.Records, fps, e.log)
	if err != nil {
		return nil, err
	}
	out.Document = b.Document()
	out.ANI = ani
	return out, nil
}

// Run collects scn and writes the descriptor twice (connections.xml and
// <project>.xml) plus <PROJECT>_DATA.ani. Both artifacts are encoded in
// memory first, so nothing is written when encoding fails.
func (e *Exporter) Run(scn *scene.Scene) (*Result, error) {
	exp, err := e.Collect(scn)
	if err != nil {
		return nil, err
	}

	var xmlBuf bytes.Buffer
	if err := exp.Document.Encode(&xmlBuf); err != nil {
		return nil, fmt.Errorf("encoding connections: %w", err)
	}
	var aniBuf bytes.Buffer
	aniBuf.Grow(exp.ANI.Size())
	if err := exp.ANI.Encode(&aniBuf); err != nil {
		return nil, fmt.Errorf("encoding animations: %w", err)
	}

	if err := os.MkdirAll(exp.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	outputs := []struct {
		name string
		data []byte
	}{
		{ConnectionsFileName, xmlBuf.Bytes()},
		{exp.Project + ".xml", xmlBuf.Bytes()},
		{formats.ANIFileName(exp.Project), aniBuf.Bytes()},
	}

	res := &Result{
		Connections: exp.Objects,
		Animations:  len(exp.Records),
		Skipped:     exp.Hidden,
	}
	for i := range exp.Records {
		res.Keyframes += exp.Records[i].KeyframeCount()
	}
	for _, o := range outputs {
		path := filepath.Join(exp.OutputDir, o.name)
		if err := writeFile(path, o.data); err != nil {
			return nil, err
		}
		e.log.Info("wrote file", zap.String("path", path), zap.Int("bytes", len(o.data)))
		res.Files = append(res.Files, path)
	}
	return res, nil
}

// writeFile writes data to path and reports close errors.
func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
