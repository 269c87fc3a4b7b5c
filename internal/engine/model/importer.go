package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/objscene/pkg/formats"
)

// ImportModel imports an OBJ file with DefaultImportOptions.
func ImportModel(path string) ([]*Mesh, error) {
	return Import(path, DefaultImportOptions())
}

// Import reads an OBJ file and returns its meshes in file order. Material
// libraries named by mtllib are resolved relative to the file's directory.
// On error no meshes are returned.
func Import(path string, opts ImportOptions) ([]*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f, path, filepath.Dir(path), opts)
}

// Decode imports OBJ text from r. name is used in diagnostics and dir is
// the directory mtllib paths are relative to.
func Decode(r io.Reader, name, dir string, opts ImportOptions) ([]*Mesh, error) {
	imp := newImporter(name, dir, opts)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		imp.line++
		text := scanner.Text()

		err := imp.handleLine(text)
		if err == nil {
			continue
		}

		var perr *formats.ParseError
		if opts.Lenient && errors.As(err, &perr) {
			imp.skipped++
			imp.log.Warn("skipping malformed line",
				zap.Int("line", perr.Line),
				zap.String("text", perr.Text),
				zap.Error(perr.Err))
			continue
		}
		return nil, err
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading model %s: %w", name, err)
	}

	// The segment open at EOF has no usemtl after it to flush it.
	imp.finalize()

	imp.log.Debug("model imported",
		zap.Int("meshes", len(imp.meshes)),
		zap.Int("positions", len(imp.streams.Positions)),
		zap.Int("materials", len(imp.materials)),
		zap.Int("skippedLines", imp.skipped))

	return imp.meshes, nil
}

// segment is the mesh under construction between two material switches.
type segment struct {
	name     string
	material *formats.Material
	dedup    *dedup
	indices  []uint32
}

// importer is the per-call state of one Decode. Nothing in it is shared
// with other imports except opts.Textures, which is synchronized.
type importer struct {
	name string
	dir  string
	opts ImportOptions
	log  *zap.Logger

	streams         formats.OBJStreams
	materials       map[string]*formats.Material
	defaultMaterial *formats.Material

	current     *segment // nil until the first face or usemtl
	pendingName string   // last o/g name not yet claimed by a segment
	meshes      []*Mesh

	line    int
	skipped int
}

func newImporter(name, dir string, opts ImportOptions) *importer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &importer{
		name:            name,
		dir:             dir,
		opts:            opts,
		log:             log.With(zap.String("model", name)),
		materials:       make(map[string]*formats.Material),
		defaultMaterial: formats.DefaultMaterial(),
	}
}

// handleLine dispatches one source line.
func (imp *importer) handleLine(text string) error {
	t, value := formats.SplitOBJLine(text)

	switch t {
	case formats.OBJVertex, formats.OBJTexCoord, formats.OBJNormal:
		if err := imp.streams.Append(t, value); err != nil {
			return imp.parseError(text, err)
		}

	case formats.OBJFace:
		return imp.face(text, value)

	case formats.OBJMtlLib:
		return imp.loadMaterials(value)

	case formats.OBJUseMtl:
		imp.useMaterial(value)

	case formats.OBJObject, formats.OBJGroup:
		imp.pendingName = value
	}
	return nil
}

func (imp *importer) face(text, value string) error {
	corners, err := formats.ParseFace(value, &imp.streams, formats.FaceOptions{Quads: imp.opts.Quads})
	if err != nil {
		return imp.parseError(text, err)
	}

	if imp.current == nil {
		imp.begin(imp.defaultMaterial)
	}
	seg := imp.current
	if seg.name == "" && imp.pendingName != "" {
		seg.name = imp.pendingName
		imp.pendingName = ""
	}
	for _, c := range corners {
		seg.indices = append(seg.indices, seg.dedup.resolve(c))
	}
	return nil
}

// loadMaterials parses every library named on a mtllib line and merges it
// into the material table. A library that cannot be read aborts the import.
func (imp *importer) loadMaterials(value string) error {
	files := strings.Fields(value)
	if len(files) == 0 {
		imp.log.Warn("mtllib without a file name", zap.Int("line", imp.line))
		return nil
	}
	for _, file := range files {
		lib, err := formats.LoadMTL(filepath.Join(imp.dir, file))
		if err != nil {
			return fmt.Errorf("%s:%d: %w", imp.name, imp.line, err)
		}
		for _, w := range lib.Warnings {
			imp.log.Warn("material library", zap.String("library", lib.Path), zap.String("warning", w))
		}
		for name, m := range lib.Materials {
			imp.materials[name] = m
		}
		imp.log.Debug("material library loaded",
			zap.String("library", lib.Path),
			zap.Int("materials", len(lib.Materials)))
	}
	return nil
}

// useMaterial handles usemtl. Unknown names get a default material under
// that name; this never fails the import.
func (imp *importer) useMaterial(name string) {
	mat := imp.resolveMaterial(name)

	switch {
	case imp.current == nil:
		imp.begin(mat)
	case len(imp.current.indices) == 0:
		imp.current.material = mat
	case !imp.opts.GroupByMaterial:
		imp.log.Debug("material switch ignored, grouping disabled",
			zap.Int("line", imp.line),
			zap.String("material", name))
	default:
		imp.finalize()
		imp.begin(mat)
	}
}

func (imp *importer) resolveMaterial(name string) *formats.Material {
	if name == "" {
		return imp.defaultMaterial
	}
	if m, ok := imp.materials[name]; ok {
		return m
	}
	imp.log.Warn("unresolved material, using default",
		zap.Int("line", imp.line),
		zap.String("material", name))

	m := formats.DefaultMaterial()
	m.Name = name
	imp.materials[name] = m
	return m
}

func (imp *importer) begin(mat *formats.Material) {
	imp.current = &segment{
		material: mat,
		dedup:    newDedup(&imp.streams),
	}
}

// finalize turns the open segment into a Mesh. Segments that never
// received a face produce nothing.
func (imp *importer) finalize() {
	seg := imp.current
	imp.current = nil
	if seg == nil || len(seg.indices) == 0 {
		return
	}

	mesh := &Mesh{
		Name:     seg.name,
		Vertices: seg.dedup.vertices,
		Indices:  seg.indices,
		Material: seg.material,
	}
	if mesh.Material.HasNormalMap() {
		if skipped := ComputeTangents(mesh.Vertices, mesh.Indices, imp.opts.Tangents); skipped > 0 {
			imp.log.Debug("degenerate UV triangles skipped for tangents",
				zap.String("mesh", mesh.Name),
				zap.Int("triangles", skipped))
		}
	}
	mesh.Bounds = computeBounds(mesh.Vertices)

	if imp.opts.Textures != nil {
		for _, tm := range mesh.Material.Maps() {
			mesh.Textures = append(mesh.Textures, TextureBinding{
				Slot:   tm.Slot,
				Path:   tm.Path,
				Handle: imp.opts.Textures.Acquire(tm.Path),
			})
		}
	}

	imp.log.Debug("mesh finalized",
		zap.String("mesh", mesh.Name),
		zap.String("material", mesh.Material.Name),
		zap.Int("vertices", seg.dedup.len()),
		zap.Int("indices", len(mesh.Indices)))

	imp.meshes = append(imp.meshes, mesh)
}

func (imp *importer) parseError(text string, err error) error {
	return &formats.ParseError{
		File: imp.name,
		Line: imp.line,
		Text: strings.TrimSpace(text),
		Err:  err,
	}
}
