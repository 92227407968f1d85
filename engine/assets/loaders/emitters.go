package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

// MAX_EMITTERS is the size of the one-byte wire id space.
const MAX_EMITTERS = 256

// SCENE_SCALE converts configuration units into scene units.
const SCENE_SCALE float32 = 10.0

/**
 * @brief One emitter as written in the configuration: a height plus either
 * Cartesian x/y or polar angle (radians)/radius. Unset fields are nil.
 */
type EmitterSpec struct {
	X      *float32 `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y      *float32 `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
	Angle  *float32 `json:"angle,omitempty" yaml:"angle,omitempty" toml:"angle,omitempty"`
	Radius *float32 `json:"radius,omitempty" yaml:"radius,omitempty" toml:"radius,omitempty"`
	Height *float32 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
}

/**
 * @brief Returns the emitter's placement in scene units: X and Y on the floor
 * plane, Z the rod height. Polar specs convert with x = r·cos(a), y = r·sin(a);
 * everything is divided by SCENE_SCALE.
 */
func (s EmitterSpec) Position() (math.Vec3, error) {
	if s.Height == nil {
		return math.Vec3{}, fmt.Errorf("%w: missing height", core.ErrInvalidConfig)
	}
	var x, y float32
	switch {
	case s.X != nil && s.Y != nil:
		x, y = *s.X, *s.Y
	case s.Angle != nil && s.Radius != nil:
		x = *s.Radius * math32.Cos(*s.Angle)
		y = *s.Radius * math32.Sin(*s.Angle)
	default:
		return math.Vec3{}, fmt.Errorf("%w: need x and y, or angle and radius", core.ErrInvalidConfig)
	}
	return math.NewVec3(x/SCENE_SCALE, y/SCENE_SCALE, *s.Height/SCENE_SCALE), nil
}

// emitterFile is the document shape for formats that need a top-level table.
type emitterFile struct {
	Emitters []EmitterSpec `yaml:"emitters" toml:"emitters"`
}

/**
 * @brief Decodes emitter specs. format is a file extension: ".json" (a
 * top-level array), ".yaml"/".yml" (a top-level sequence or an "emitters"
 * key) or ".toml" ([[emitters]] tables).
 */
func ParseEmitters(data []byte, format string) ([]EmitterSpec, error) {
	var specs []EmitterSpec
	switch strings.ToLower(format) {
	case ".json", "":
		if err := json.Unmarshal(data, &specs); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &specs); err != nil {
			var doc emitterFile
			if err2 := yaml.Unmarshal(data, &doc); err2 != nil {
				return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
			}
			specs = doc.Emitters
		}
	case ".toml":
		var doc emitterFile
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
		}
		specs = doc.Emitters
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", core.ErrInvalidConfig, format)
	}
	return specs, nil
}

/**
 * @brief Reads an emitter configuration and returns one placement per
 * emitter, in file order. The index of a placement is the emitter's wire id,
 * so more than 256 emitters is an error.
 */
func LoadEmitters(path string) ([]math.Vec3, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
	}
	specs, err := ParseEmitters(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return EmitterPositions(specs)
}

func EmitterPositions(specs []EmitterSpec) ([]math.Vec3, error) {
	if len(specs) > MAX_EMITTERS {
		return nil, fmt.Errorf("%w: %d configured", core.ErrTooManyEmitters, len(specs))
	}
	positions := make([]math.Vec3, len(specs))
	for i, s := range specs {
		p, err := s.Position()
		if err != nil {
			return nil, fmt.Errorf("emitter %d: %w", i, err)
		}
		positions[i] = p
	}
	return positions, nil
}

type EmitterLoader struct{}

func (el *EmitterLoader) Load(path string, name string) (*metadata.Resource, error) {
	positions, err := LoadEmitters(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     name,
		FullPath: path,
		Type:     metadata.ResourceTypeConfig,
		DataSize: uint64(len(positions) * 12),
		Data:     positions,
	}, nil
}

func (el *EmitterLoader) Unload(*metadata.Resource) error {
	return nil
}
