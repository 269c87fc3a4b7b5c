// objtool is a CLI utility for inspecting OBJ models the way the renderer
// imports them.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/assets"
	"github.com/Faultbox/objscene/internal/config"
	"github.com/Faultbox/objscene/internal/engine/model"
	"github.com/Faultbox/objscene/internal/logger"
	"github.com/Faultbox/objscene/pkg/formats"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	var cmdErr error
	switch command {
	case "info":
		cmdErr = cmdInfo(cfg, args)
	case "meshes", "ls":
		cmdErr = cmdMeshes(cfg, args)
	case "materials", "mtl":
		cmdErr = cmdMaterials(args)
	case "check":
		cmdErr = cmdCheck(cfg, args)
	case "config":
		cmdErr = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(cmdErr))
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - OBJ model import inspector

Usage:
  objtool [flags] <command> [arguments]

Commands:
  info <file.obj>          Show model summary
  meshes <file.obj>        List meshes with material and counts
  materials <file.mtl>     List materials of a library
  check <file.obj>...      Import and validate models
  config [save [path]]     Print or save the effective config

Flags:
  -config <path>      Config file (default ./config.yaml or user config dir)
  -debug              Debug logging
  -log-file <path>    Also log to a rotating file
  -lenient            Skip malformed lines instead of failing
  -no-quads           Reject 4-corner faces
  -single-mesh        Do not split meshes by material
  -tangents <policy>  accumulate or overwrite

Examples:
  objtool info res/models/sponza/sponza.obj
  objtool -single-mesh meshes crypt.obj
  objtool materials res/models/sponza/sponza.mtl`)
}

// importFile imports one model with the configured options.
func importFile(cfg *config.Config, path string, textures *assets.TextureCache) ([]*model.Mesh, error) {
	opts, err := cfg.Import.Options(textures, logger.Named("import"))
	if err != nil {
		return nil, err
	}
	return model.Import(path, opts)
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: objtool info <file.obj>")
	}

	textures := assets.NewTextureCache()
	meshes, err := importFile(cfg, args[0], textures)
	if err != nil {
		return err
	}

	var vertices, triangles, tangentMeshes int
	materials := make(map[*formats.Material]bool)
	for _, m := range meshes {
		vertices += len(m.Vertices)
		triangles += m.TriangleCount()
		materials[m.Material] = true
		if m.Material.HasNormalMap() {
			tangentMeshes++
		}
	}

	fmt.Printf("Model:     %s\n", args[0])
	fmt.Printf("Meshes:    %d (%d with tangents)\n", len(meshes), tangentMeshes)
	fmt.Printf("Materials: %d\n", len(materials))
	fmt.Printf("Textures:  %d\n", textures.Len())
	fmt.Printf("Vertices:  %d\n", vertices)
	fmt.Printf("Triangles: %d\n", triangles)
	if len(meshes) > 0 {
		b := model.ModelBounds(meshes)
		fmt.Printf("Bounds:    %s\n", b)
		fmt.Printf("Size:      %g x %g x %g\n", b.Size().X, b.Size().Y, b.Size().Z)
	}
	return nil
}

func cmdMeshes(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: objtool meshes <file.obj>")
	}

	meshes, err := importFile(cfg, args[0], nil)
	if err != nil {
		return err
	}

	fmt.Printf("%-4s %-24s %-24s %10s %10s\n", "#", "NAME", "MATERIAL", "VERTICES", "TRIANGLES")
	for i, m := range meshes {
		fmt.Printf("%-4d %-24s %-24s %10d %10d\n",
			i, orDash(m.Name), orDash(m.Material.Name), len(m.Vertices), m.TriangleCount())
	}
	return nil
}

func cmdMaterials(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: objtool materials <file.mtl>")
	}

	lib, err := formats.LoadMTL(args[0])
	if err != nil {
		return err
	}
	for _, w := range lib.Warnings {
		logger.Warn("material library", zap.String("library", lib.Path), zap.String("warning", w))
	}

	names := make([]string, 0, len(lib.Materials))
	for name := range lib.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	dir := filepath.Dir(args[0])
	for _, name := range names {
		m := lib.Materials[name]
		fmt.Printf("%s\n", name)
		fmt.Printf("  Kd %.3g %.3g %.3g\n", m.Diffuse.X, m.Diffuse.Y, m.Diffuse.Z)
		for _, tm := range m.Maps() {
			rel, err := filepath.Rel(dir, tm.Path)
			if err != nil {
				rel = tm.Path
			}
			status := ""
			if _, err := os.Stat(tm.Path); err != nil {
				status = " (missing)"
			}
			fmt.Printf("  %-9s %s%s\n", tm.Slot, rel, status)
		}
	}
	fmt.Printf("\n%d materials\n", len(names))
	return nil
}

func cmdCheck(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: objtool check <file.obj>...")
	}

	failed := 0
	for _, path := range args {
		if err := checkModel(cfg, path); err != nil {
			fmt.Printf("FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("ok   %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d models failed", failed, len(args))
	}
	return nil
}

const unitTolerance = 1e-3

func checkModel(cfg *config.Config, path string) error {
	meshes, err := importFile(cfg, path, nil)
	if err != nil {
		return err
	}
	for _, m := range meshes {
		if err := m.Validate(); err != nil {
			return err
		}
		for i, v := range m.Vertices {
			if !v.Tangent.IsFinite() || !v.Bitangent.IsFinite() {
				return fmt.Errorf("mesh %q: vertex %d has a non-finite tangent", m.Name, i)
			}
			// Zero is allowed: only degenerate UV triangles touched the vertex.
			if l := v.Tangent.Length(); l != 0 && (l < 1-unitTolerance || l > 1+unitTolerance) {
				return fmt.Errorf("mesh %q: vertex %d tangent length %g", m.Name, i, l)
			}
		}
	}
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		fmt.Printf("quads:             %v\n", cfg.Import.Quads)
		fmt.Printf("group_by_material: %v\n", cfg.Import.GroupByMaterial)
		fmt.Printf("lenient:           %v\n", cfg.Import.Lenient)
		fmt.Printf("tangents:          %s\n", cfg.Import.Tangents)
		fmt.Printf("log level:         %s\n", cfg.Logging.Level)
		return nil
	}
	if args[0] != "save" {
		return fmt.Errorf("unknown config subcommand %q", args[0])
	}

	var path string
	var err error
	if len(args) > 1 {
		path = args[1]
		err = cfg.SaveTo(path)
	} else {
		path, err = cfg.Save()
	}
	if err != nil {
		return err
	}
	fmt.Printf("Saved config to %s\n", path)
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
