package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/objscene/pkg/math"
)

// TextureSlot identifies which material map a texture path feeds.
type TextureSlot int

const (
	SlotDiffuse TextureSlot = iota
	SlotNormal
	SlotSpecular
	SlotAlpha
)

// String returns a human-readable slot name.
func (s TextureSlot) String() string {
	switch s {
	case SlotDiffuse:
		return "diffuse"
	case SlotNormal:
		return "normal"
	case SlotSpecular:
		return "specular"
	case SlotAlpha:
		return "alpha"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// TextureMap is a resolved texture path bound to a slot.
type TextureMap struct {
	Slot TextureSlot
	Path string
}

// Material is one newmtl record of a material library. Texture paths are
// resolved against the library's directory; an empty path means no texture.
type Material struct {
	Name string

	DiffuseMap  string // map_Kd
	NormalMap   string // map_bump, map_Bump, bump
	SpecularMap string // map_Ks
	AlphaMap    string // map_d

	Ambient  math.Vec3 // Ka
	Diffuse  math.Vec3 // Kd
	Specular math.Vec3 // Ks

	Shininess float32 // Ns
	Dissolve  float32 // d, or 1 - Tr
}

// DefaultMaterial returns the material used for faces with no resolvable
// material: no textures and white colors.
func DefaultMaterial() *Material {
	return newMaterial("")
}

func newMaterial(name string) *Material {
	white := math.Vec3{X: 1, Y: 1, Z: 1}
	return &Material{
		Name:     name,
		Ambient:  white,
		Diffuse:  white,
		Specular: white,
		Dissolve: 1,
	}
}

// HasNormalMap reports whether the material needs tangent-space vectors.
func (m *Material) HasNormalMap() bool {
	return m.NormalMap != ""
}

// Maps returns the material's texture paths in slot order, skipping empty ones.
func (m *Material) Maps() []TextureMap {
	var maps []TextureMap
	for _, tm := range []TextureMap{
		{SlotDiffuse, m.DiffuseMap},
		{SlotNormal, m.NormalMap},
		{SlotSpecular, m.SpecularMap},
		{SlotAlpha, m.AlphaMap},
	} {
		if tm.Path != "" {
			maps = append(maps, tm)
		}
	}
	return maps
}

// MaterialLibrary is a parsed MTL file.
type MaterialLibrary struct {
	Path      string
	Materials map[string]*Material
	// Warnings lists recoverable problems (bad colors, nameless records).
	Warnings []string
}

// LoadMTL opens and parses a material library. Texture paths are resolved
// relative to the library's own directory.
func LoadMTL(path string) (*MaterialLibrary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening material library %s: %w", path, err)
	}
	defer f.Close()

	lib, err := ParseMTL(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("reading material library %s: %w", path, err)
	}
	lib.Path = path
	return lib, nil
}

// ParseMTL parses material library text. dir is the directory texture
// paths are relative to. Only read errors are returned; malformed values
// are recorded as warnings and leave the field at its default.
func ParseMTL(r io.Reader, dir string) (*MaterialLibrary, error) {
	lib := &MaterialLibrary{Materials: make(map[string]*Material)}
	var cur *Material

	flush := func() {
		if cur != nil {
			lib.Materials[cur.Name] = cur
		}
	}
	warn := func(line int, format string, args ...any) {
		lib.Warnings = append(lib.Warnings, fmt.Sprintf("line %d: ", line)+fmt.Sprintf(format, args...))
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	linenum := 0

	for scanner.Scan() {
		linenum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		keyword, value := line, ""
		if i := strings.IndexAny(line, " \t"); i != -1 {
			keyword = line[:i]
			value = strings.TrimSpace(line[i+1:])
		}

		if keyword == "newmtl" {
			flush()
			cur = nil
			if value == "" {
				warn(linenum, "newmtl without a name")
				continue
			}
			cur = newMaterial(value)
			continue
		}
		if cur == nil {
			continue
		}

		switch keyword {
		case "map_Kd":
			cur.DiffuseMap = texturePath(dir, value)
		case "map_Ks":
			cur.SpecularMap = texturePath(dir, value)
		case "map_bump", "map_Bump", "bump":
			cur.NormalMap = texturePath(dir, value)
		case "map_d":
			cur.AlphaMap = texturePath(dir, value)
		case "Ka", "Kd", "Ks":
			f, err := parseFloats(value, 3)
			if err != nil {
				warn(linenum, "%s of %s: %v", keyword, cur.Name, err)
				continue
			}
			c := math.Vec3{X: f[0], Y: f[1], Z: f[2]}
			switch keyword {
			case "Ka":
				cur.Ambient = c
			case "Kd":
				cur.Diffuse = c
			default:
				cur.Specular = c
			}
		case "Ns", "d", "Tr":
			f, err := parseFloats(value, 1)
			if err != nil {
				warn(linenum, "%s of %s: %v", keyword, cur.Name, err)
				continue
			}
			switch keyword {
			case "Ns":
				cur.Shininess = f[0]
			case "d":
				cur.Dissolve = f[0]
			default:
				cur.Dissolve = 1 - f[0]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return lib, nil
}

// mapOptions lists the map_* option flags with their minimum and maximum
// argument counts. Optional trailing arguments are always numeric.
var mapOptions = map[string][2]int{
	"-blendu":  {1, 1},
	"-blendv":  {1, 1},
	"-bm":      {1, 1},
	"-boost":   {1, 1},
	"-cc":      {1, 1},
	"-clamp":   {1, 1},
	"-imfchan": {1, 1},
	"-mm":      {2, 2},
	"-o":       {1, 3},
	"-s":       {1, 3},
	"-t":       {1, 3},
	"-texres":  {1, 1},
	"-type":    {1, 1},
}

// texturePath extracts the file name from a map_* value and resolves it
// against dir. Known option flags (-s 1 1 1, -bm 0.5, ...) and their
// arguments are skipped; the remaining fields are the file name, which may
// contain spaces. Backslash separators from Windows exporters are
// normalized.
func texturePath(dir, value string) string {
	fields := strings.Fields(value)
	i := 0
	for i < len(fields) {
		arity, ok := mapOptions[fields[i]]
		if !ok {
			break
		}
		i += 1 + arity[0]
		for n := arity[0]; n < arity[1] && i < len(fields) && isNumber(fields[i]); n++ {
			i++
		}
	}
	if i >= len(fields) {
		return ""
	}
	name := strings.Join(fields[i:], " ")
	p := filepath.FromSlash(strings.ReplaceAll(name, `\`, "/"))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 32)
	return err == nil
}
