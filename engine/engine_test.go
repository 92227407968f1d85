package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/network"
	"github.com/spaghettifunk/lumina/engine/renderer"
	"github.com/spaghettifunk/lumina/engine/renderer/rendertest"
)

type fakeWindow struct {
	title      string
	width      uint32
	height     uint32
	started    bool
	shutdown   bool
	pumps      int
	swaps      int
	closeAfter int
}

func (w *fakeWindow) Startup(title string, width, height uint32, samples int) error {
	w.title, w.width, w.height, w.started = title, width, height, true
	return nil
}

func (w *fakeWindow) Shutdown() error {
	w.shutdown = true
	return nil
}

func (w *fakeWindow) PumpMessages() { w.pumps++ }
func (w *fakeWindow) SwapBuffers() { w.swaps++ }
func (w *fakeWindow) SetTitle(t string) { w.title = t }

func (w *fakeWindow) ShouldClose() bool {
	return w.closeAfter > 0 && w.swaps >= w.closeAfter
}

func (w *fakeWindow) FramebufferSize() (uint32, uint32) {
	return w.width, w.height
}

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func testConfig(t *testing.T) *ApplicationConfig {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "assets", "shaders", "everything.v.glsl"), "vert")
	writeFile(t, filepath.Join(root, "assets", "shaders", "everything.f.glsl"), "frag")
	writeFile(t, filepath.Join(root, "assets", "models", "cylinder.obj"), triangleOBJ)
	writeFile(t, filepath.Join(root, "rods.json"), `[{"x": 1, "y": 2, "height": 3}, {"angle": 0, "radius": 10, "height": 5}]`)

	config := DefaultApplicationConfig()
	config.Assets.Dir = filepath.Join(root, "assets")
	config.Assets.Watch = false
	config.Emitters = filepath.Join(root, "rods.json")
	config.Network.Listen = "127.0.0.1:0"
	return config
}

func startEngine(t *testing.T, config *ApplicationConfig) (*Engine, *fakeWindow, *rendertest.Backend) {
	t.Helper()
	window := &fakeWindow{}
	backend := rendertest.New()
	e, err := New(config, window, backend)
	require.NoError(t, err)
	t.Cleanup(func() {
		if e.currentStage != EngineStageShuttingDown {
			_ = e.Shutdown()
		}
	})
	require.NoError(t, e.Initialize())
	return e, window, backend
}

func TestEngineInitialize(t *testing.T) {
	e, window, backend := startEngine(t, testConfig(t))

	assert.Equal(t, EngineStageInitialized, e.currentStage)
	assert.True(t, window.started)
	assert.Equal(t, "Light Sculpture Simulator", window.title)
	assert.True(t, backend.Config.Blend)
	assert.True(t, backend.Config.DepthTest)
	assert.Equal(t, 3, e.renderer.Scene().Len())
	assert.Equal(t, 2, e.emitters.Len())
	require.NotNil(t, e.UpdateAddr())

	camera := e.renderer.Scene().Camera
	assert.Equal(t, math.NewVec3(0, 1, 0), camera.Eye)
	assert.Equal(t, math.NewVec3(0, -2, -2), camera.Center)
	assert.Equal(t, math.NewVec3(0, 0, 1), camera.Up)
	assert.InDelta(t, 800.0/600.0, camera.Aspect, 1e-6)

	// polar emitter (angle 0, radius 10, height 5) lands at (1, 0) with height 0.5
	rod := e.renderer.Scene().Objects()[2].(*renderer.Mesh)
	assert.InDelta(t, 1.02, rod.Geometry().Positions[1].X, 1e-5)
	assert.InDelta(t, 0.5, rod.Geometry().Positions[2].Y, 1e-5)

	e.frame()
	assert.Positive(t, backend.Live())

	require.NoError(t, e.Shutdown())
	assert.True(t, backend.ShutDown)
	assert.Zero(t, backend.Live())
	assert.True(t, window.shutdown)
}

func TestEngineInitializeErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, c *ApplicationConfig)
		target error
	}{
		{"bad emitters", func(t *testing.T, c *ApplicationConfig) {
			writeFile(t, c.Emitters, `[{"x": 1}]`)
		}, core.ErrInvalidConfig},
		{"missing emitters", func(t *testing.T, c *ApplicationConfig) {
			c.Emitters = filepath.Join(t.TempDir(), "none.json")
		}, core.ErrInvalidConfig},
		{"bad mesh", func(t *testing.T, c *ApplicationConfig) {
			writeFile(t, filepath.Join(c.Assets.Dir, "models", "cylinder.obj"), "v 0 0\n")
		}, core.ErrInvalidMesh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig(t)
			tt.mutate(t, config)
			window := &fakeWindow{}
			backend := rendertest.New()
			e, err := New(config, window, backend)
			require.NoError(t, err)
			err = e.Initialize()
			assert.ErrorIs(t, err, tt.target)
			require.NoError(t, e.Shutdown())
			assert.True(t, window.shutdown)
		})
	}
}

func TestEngineRunUntilWindowCloses(t *testing.T) {
	e, window, backend := startEngine(t, testConfig(t))
	window.closeAfter = 3

	require.NoError(t, e.Run())
	assert.Equal(t, 3, window.swaps)
	assert.Len(t, backend.Clears, 3)
	// base slab plus two rods per frame
	assert.Len(t, backend.Draws, 9)
}

func TestEngineEscapeStopsRun(t *testing.T) {
	e, window, _ := startEngine(t, testConfig(t))
	window.closeAfter = 100

	core.InputProcessKey(core.KEY_ESCAPE, true)
	require.NoError(t, e.Run())
	assert.Zero(t, window.swaps)
}

func TestEngineCameraKeys(t *testing.T) {
	e, _, _ := startEngine(t, testConfig(t))
	camera := e.renderer.Scene().Camera

	core.InputProcessKey(core.KEY_Q, true)
	e.frame()
	e.frame()
	assert.InDelta(t, 0.10, camera.Transform.Translation.Y, 1e-6)
	core.InputProcessKey(core.KEY_Q, false)

	core.InputProcessKey(core.KEY_W, true)
	e.frame()
	assert.InDelta(t, -0.05, camera.Transform.Translation.Z, 1e-6)
	core.InputProcessKey(core.KEY_W, false)

	core.InputProcessKey(core.KEY_A, true)
	e.frame()
	assert.InDelta(t, -0.05, camera.Transform.Translation.X, 1e-6)
	core.InputProcessKey(core.KEY_A, false)

	core.InputProcessKey(core.KEY_DOWN, true)
	core.InputProcessKey(core.KEY_RIGHT, true)
	e.frame()
	assert.InDelta(t, math.K_PI/40, camera.Transform.Rotation.X, 1e-6)
	assert.InDelta(t, -math.K_PI/40, camera.Transform.Rotation.Y, 1e-6)
	core.InputProcessKey(core.KEY_DOWN, false)
	core.InputProcessKey(core.KEY_RIGHT, false)

	e.frame()
	assert.InDelta(t, math.K_PI/40, camera.Transform.Rotation.X, 1e-6)

	core.InputProcessKey(core.KEY_R, true)
	assert.Equal(t, math.NewTransform(), camera.Transform)
}

func TestEngineResize(t *testing.T) {
	e, _, backend := startEngine(t, testConfig(t))

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.ResizeEvent{Width: 1024, Height: 512}})
	assert.Equal(t, uint32(1024), backend.Width)
	assert.InDelta(t, 2.0, e.renderer.Scene().Camera.Aspect, 1e-6)

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.ResizeEvent{Width: 0, Height: 0}})
	clears := len(backend.Clears)
	e.frame()
	assert.Len(t, backend.Clears, clears)

	core.EventFire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.ResizeEvent{Width: 640, Height: 480}})
	e.frame()
	assert.Len(t, backend.Clears, clears+1)
	w, h := e.GetFramebufferSize()
	assert.Equal(t, uint32(640), w)
	assert.Equal(t, uint32(480), h)
}

func TestEngineLiveUpdate(t *testing.T) {
	config := testConfig(t)
	config.Network.WebSocket = "127.0.0.1:0"
	e, _, _ := startEngine(t, config)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := network.Dial(ctx, e.UpdateAddr().String(), 2)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(1, network.RGB{R: 0, G: 0, B: 255}))
	require.NoError(t, client.Update(false))

	rod := e.renderer.Scene().Objects()[2].(*renderer.Mesh)
	want := math.NewVec4(0, 0, 1, 0.6)
	require.Eventually(t, func() bool {
		e.frame()
		return rod.Geometry().Colours[0] == want
	}, 5*time.Second, 10*time.Millisecond)

	other := e.renderer.Scene().Objects()[1].(*renderer.Mesh)
	assert.NotEqual(t, want, other.Geometry().Colours[0])

	resp, err := http.Get("http://" + e.httpAddr.String() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var snapshot network.StatsSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	assert.Equal(t, 2, snapshot.Emitters)
	assert.GreaterOrEqual(t, snapshot.TotalConnections, int64(1))
}

func TestEngineShaderReload(t *testing.T) {
	config := testConfig(t)
	config.Assets.Watch = true
	e, _, backend := startEngine(t, config)
	first := e.renderer.Program().Handle

	writeFile(t, filepath.Join(config.Assets.Dir, "shaders", "everything.v.glsl"), "vert2")

	require.Eventually(t, func() bool {
		e.frame()
		return e.renderer.Program().Handle != first
	}, 5*time.Second, 20*time.Millisecond)

	program := e.renderer.Program()
	assert.Equal(t, "everything", program.Name)
	// A reload can race the second write of the file; the newest program must carry the new source.
	require.Eventually(t, func() bool {
		e.frame()
		src, ok := backend.Programs[e.renderer.Program().Handle]
		return ok && src.Vertex == "vert2"
	}, 5*time.Second, 20*time.Millisecond)
	_, ok := backend.Programs[first]
	assert.False(t, ok)
}

func TestLoadApplicationConfig(t *testing.T) {
	dir := t.TempDir()

	config, err := LoadApplicationConfig(filepath.Join(dir, "missing.toml"), true)
	require.NoError(t, err)
	assert.Equal(t, DefaultApplicationConfig(), config)

	_, err = LoadApplicationConfig(filepath.Join(dir, "missing.toml"), false)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	path := filepath.Join(dir, "lumina.toml")
	writeFile(t, path, `
log_level = "debug"
emitters = "rods.yaml"
clear_colour = [0.0, 0.0, 0.0, 1.0]

[window]
width = 1280
height = 720

[network]
websocket = "127.0.0.1:8080"

[camera]
fovy = 1.0
`)
	config, err = LoadApplicationConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, core.LOG_LEVEL_DEBUG, config.LogLevel)
	assert.Equal(t, "rods.yaml", config.Emitters)
	assert.Equal(t, uint32(1280), config.Window.Width)
	assert.Equal(t, "Light Sculpture Simulator", config.Window.Title)
	assert.Equal(t, network.DEFAULT_ADDRESS, config.Network.Listen)
	assert.Equal(t, "127.0.0.1:8080", config.Network.WebSocket)
	assert.Equal(t, float32(1.0), config.Camera.Fovy)
	assert.Equal(t, float32(0.1), config.Camera.Near)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, config.ClearColour)
}

func TestLoadApplicationConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "window = ["},
		{"zero width", "[window]\nwidth = 0\n"},
		{"far before near", "[camera]\nnear = 5.0\nfar = 1.0\n"},
		{"eye at center", "[camera]\neye = [0.0, 0.0, 0.0]\ncenter = [0.0, 0.0, 0.0]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lumina.toml")
			writeFile(t, path, tt.data)
			_, err := LoadApplicationConfig(path, true)
			assert.ErrorIs(t, err, core.ErrInvalidConfig)
		})
	}
}
