// Package config handles objtool configuration loading and management.
package config

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/assets"
	"github.com/Faultbox/objscene/internal/engine/model"
)

// Config holds all tool settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

// ImportConfig holds model import pipeline settings.
type ImportConfig struct {
	Quads           bool   `yaml:"quads"`             // accept 4-corner faces
	GroupByMaterial bool   `yaml:"group_by_material"` // one mesh per usemtl segment
	Lenient         bool   `yaml:"lenient"`           // skip malformed lines
	Tangents        string `yaml:"tangents"`          // accumulate | overwrite
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Quads:           true,
			GroupByMaterial: true,
			Lenient:         false,
			Tangents:        model.TangentAccumulate.String(),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options converts the import settings into pipeline options. textures and
// log may be nil.
func (c ImportConfig) Options(textures *assets.TextureCache, log *zap.Logger) (model.ImportOptions, error) {
	policy, err := model.ParseTangentPolicy(c.Tangents)
	if err != nil {
		return model.ImportOptions{}, err
	}
	return model.ImportOptions{
		Quads:           c.Quads,
		GroupByMaterial: c.GroupByMaterial,
		Lenient:         c.Lenient,
		Tangents:        policy,
		Textures:        textures,
		Logger:          log,
	}, nil
}
