package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/network"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

const (
	DEFAULT_SETTINGS_FILE = "lumina.toml"
	DEFAULT_EMITTER_FILE  = "default-rods.json"
)

type WindowConfig struct {
	// The application name used in windowing.
	Title string `toml:"title"`
	// Window starting width.
	Width uint32 `toml:"width"`
	// Window starting height.
	Height uint32 `toml:"height"`
	// Multisample count requested for the default framebuffer.
	Samples int `toml:"samples"`
}

type CameraConfig struct {
	Eye    [3]float32 `toml:"eye"`
	Center [3]float32 `toml:"center"`
	Up     [3]float32 `toml:"up"`
	// Vertical field of view in radians.
	Fovy float32 `toml:"fovy"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
}

// InputConfig holds the per-poll camera deltas.
type InputConfig struct {
	MoveStep   float32 `toml:"move_step"`
	RotateStep float32 `toml:"rotate_step"`
}

type NetworkConfig struct {
	// TCP address for the binary update stream.
	Listen string `toml:"listen"`
	// Address of the websocket/health HTTP server. Empty disables it.
	WebSocket string `toml:"websocket"`
}

type AssetsConfig struct {
	Dir string `toml:"dir"`
	// Shader program name, resolved to <dir>/shaders/<name>.{v,f}.glsl.
	Shader string `toml:"shader"`
	// Rod template mesh under <dir>/models.
	RodMesh string `toml:"rod_mesh"`
	// Recompile the shader when its sources change on disk.
	Watch bool `toml:"watch"`
}

/**
 * @brief Everything the simulator reads at startup. Loaded from an optional
 * TOML file; fields missing from the file keep their defaults.
 */
type ApplicationConfig struct {
	LogLevel    core.LogLevel `toml:"log_level"`
	Window      WindowConfig  `toml:"window"`
	Camera      CameraConfig  `toml:"camera"`
	Input       InputConfig   `toml:"input"`
	Network     NetworkConfig `toml:"network"`
	Assets      AssetsConfig  `toml:"assets"`
	ClearColour [4]float32    `toml:"clear_colour"`
	// Emitter configuration file. The command line argument wins over this.
	Emitters string `toml:"emitters"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		LogLevel: core.LOG_LEVEL_INFO,
		Window: WindowConfig{
			Title:   "Light Sculpture Simulator",
			Width:   800,
			Height:  600,
			Samples: 8,
		},
		Camera: CameraConfig{
			Eye:    [3]float32{0, 1, 0},
			Center: [3]float32{0, -2, -2},
			Up:     [3]float32{0, 0, 1},
			Fovy:   math.K_QUARTER_PI,
			Near:   0.1,
			Far:    10,
		},
		Input: InputConfig{
			MoveStep:   0.05,
			RotateStep: math.K_PI / 40,
		},
		Network: NetworkConfig{
			Listen: network.DEFAULT_ADDRESS,
		},
		Assets: AssetsConfig{
			Dir:     "assets",
			Shader:  "everything",
			RodMesh: "cylinder.obj",
			Watch:   true,
		},
		ClearColour: [4]float32{0.9, 0.9, 0.9, 1.0},
		Emitters:    DEFAULT_EMITTER_FILE,
	}
}

/**
 * @brief Reads path over the defaults. A missing file is not an error when
 * optional is set, so the simulator runs without any settings file.
 */
func LoadApplicationConfig(path string, optional bool) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrInvalidConfig, path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("%w: window size %dx%d", core.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: clip planes near=%g far=%g", core.ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= math.K_PI {
		return fmt.Errorf("%w: fovy %g", core.ErrInvalidConfig, c.Camera.Fovy)
	}
	if c.eye().Sub(c.center()).Length() == 0 {
		return fmt.Errorf("%w: camera eye and center coincide", core.ErrInvalidConfig)
	}
	if c.Network.Listen == "" {
		return fmt.Errorf("%w: empty listen address", core.ErrInvalidConfig)
	}
	return nil
}

func (c *ApplicationConfig) eye() math.Vec3 {
	return math.NewVec3(c.Camera.Eye[0], c.Camera.Eye[1], c.Camera.Eye[2])
}

func (c *ApplicationConfig) center() math.Vec3 {
	return math.NewVec3(c.Camera.Center[0], c.Camera.Center[1], c.Camera.Center[2])
}

func (c *ApplicationConfig) up() math.Vec3 {
	return math.NewVec3(c.Camera.Up[0], c.Camera.Up[1], c.Camera.Up[2])
}

func (c *ApplicationConfig) clearColour() metadata.Colour {
	return metadata.NewColour(c.ClearColour[0], c.ClearColour[1], c.ClearColour[2], c.ClearColour[3])
}
