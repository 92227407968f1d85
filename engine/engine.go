package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/lumina/engine/assets"
	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/network"
	"github.com/spaghettifunk/lumina/engine/renderer"
	"github.com/spaghettifunk/lumina/engine/renderer/components"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Window is the presentation surface the render loop drives.
type Window interface {
	Startup(title string, width, height uint32, samples int) error
	Shutdown() error
	PumpMessages()
	SwapBuffers()
	ShouldClose() bool
	SetTitle(title string)
	FramebufferSize() (uint32, uint32)
}

type Engine struct {
	currentStage Stage
	config       *ApplicationConfig
	isRunning    atomic.Bool
	isSuspended  bool
	window       Window
	backend      renderer.RendererBackend
	renderer     *renderer.Renderer
	assetManager *assets.AssetManager
	width        uint32
	height       uint32
	clock        *core.Clock
	metrics      *core.Metrics
	lastTime     float64

	emitters   *network.EmitterTable
	stats      *network.Stats
	server     *network.Server
	httpServer *http.Server
	httpAddr   net.Addr
	cancel     context.CancelFunc
	workers    sync.WaitGroup
}

func New(config *ApplicationConfig, window Window, backend renderer.RendererBackend) (*Engine, error) {
	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	e := &Engine{
		currentStage: EngineStageUninitialized,
		config:       config,
		window:       window,
		backend:      backend,
		assetManager: am,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		stats:        network.NewStats(),
		width:        config.Window.Width,
		height:       config.Window.Height,
	}
	e.isRunning.Store(true)
	return e, nil
}

/**
 * @brief Opens the window, builds the scene and starts the update servers.
 * Any configuration, mesh or shader problem aborts here, before the first
 * frame is drawn.
 */
func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	core.SetLogLevel(e.config.LogLevel)

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)
	core.EventRegister(core.EVENT_CODE_SHADER_CHANGED, e, e.onShaderChanged)

	wc := e.config.Window
	if err := e.window.Startup(wc.Title, wc.Width, wc.Height, wc.Samples); err != nil {
		return err
	}
	e.width, e.height = e.window.FramebufferSize()

	if err := e.assetManager.Initialize(e.config.Assets.Dir, e.config.Assets.Watch); err != nil {
		return err
	}

	shader, err := e.loadShader()
	if err != nil {
		return err
	}

	camera := components.NewCamera(e.width, e.height)
	cc := e.config.Camera
	camera.LookAt(e.config.eye(), e.config.center(), e.config.up())
	camera.Perspective(cc.Fovy, cc.Near, cc.Far)

	e.renderer = renderer.New(e.backend, camera, e.config.clearColour())
	backendConfig := metadata.BackendConfig{
		Width:     e.width,
		Height:    e.height,
		Blend:     true,
		DepthTest: true,
	}
	if err := e.renderer.Initialize(backendConfig, shader); err != nil {
		return err
	}

	if err := e.buildScene(); err != nil {
		return err
	}

	if err := e.startNetwork(); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) loadShader() (*metadata.ShaderSource, error) {
	res, err := e.assetManager.LoadAsset(e.config.Assets.Shader, metadata.ResourceTypeShader)
	if err != nil {
		return nil, err
	}
	return res.Data.(*metadata.ShaderSource), nil
}

// buildScene adds the base slab and one rod per configured emitter, each rod bound to its emitter's mailbox.
func (e *Engine) buildScene() error {
	res, err := e.assetManager.LoadAsset(e.config.Emitters, metadata.ResourceTypeConfig)
	if err != nil {
		return err
	}
	positions := res.Data.([]math.Vec3)

	mesh, err := e.assetManager.LoadAsset(e.config.Assets.RodMesh, metadata.ResourceTypeMesh)
	if err != nil {
		return err
	}
	template := mesh.Data.(*metadata.Geometry)

	e.emitters, err = network.NewEmitterTable(len(positions))
	if err != nil {
		return err
	}

	scene := e.renderer.Scene()
	scene.Add(renderer.GenBase())
	for id, position := range positions {
		scene.Add(renderer.NewRod(id, template, position, e.emitters.Mailbox(id)))
	}
	core.LogInfo("Scene built: %d emitters from %s", len(positions), e.config.Emitters)
	return nil
}

// startNetwork binds the listeners synchronously so address errors fail startup, then serves in the background.
func (e *Engine) startNetwork() error {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	e.server = network.NewServer(e.config.Network.Listen, e.emitters, e.stats)
	if err := e.server.Listen(); err != nil {
		return err
	}
	e.workers.Add(1)
	go func() {
		defer e.workers.Done()
		if err := e.server.Serve(ctx); err != nil {
			core.LogError("update server stopped: %s", err)
		}
	}()

	if e.config.Network.WebSocket == "" {
		return nil
	}
	ln, err := net.Listen("tcp", e.config.Network.WebSocket)
	if err != nil {
		return err
	}
	e.httpAddr = ln.Addr()
	e.httpServer = network.NewHTTPServer(e.httpAddr.String(), e.emitters, e.stats)
	e.workers.Add(1)
	go func() {
		defer e.workers.Done()
		if err := e.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			core.LogError("websocket server stopped: %s", err)
		}
	}()
	context.AfterFunc(ctx, func() {
		_ = e.httpServer.Close()
	})
	core.LogInfo("WebSocket updates on ws://%s/ws", e.httpAddr)
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed().Seconds()

	for e.isRunning.Load() && !e.window.ShouldClose() {
		e.frame()
	}
	return nil
}

/**
 * @brief One pass of the render loop: pump window events, apply the camera
 * keys, pick up changed assets, draw and present. Every rod consumes its
 * pending colour, if any, inside the scene draw.
 */
func (e *Engine) frame() {
	e.window.PumpMessages()
	if e.isSuspended {
		return
	}

	e.clock.Update()
	currentTime := e.clock.Elapsed().Seconds()
	delta := currentTime - e.lastTime

	e.applyInput()
	e.drainAssetChanges()

	e.renderer.DrawFrame()
	e.window.SwapBuffers()

	if e.metrics.Update(delta) {
		fps, frameTime := e.metrics.Frame()
		core.LogInfo("%.0f FPS (%.2f ms/frame)", fps, frameTime)
		e.window.SetTitle(fmt.Sprintf("%s - %.0f FPS", e.config.Window.Title, fps))
	}

	core.InputUpdate()
	e.lastTime = currentTime
}

// applyInput moves the camera by one step for every held key. Steps are per frame, not per second.
func (e *Engine) applyInput() {
	camera := e.renderer.Scene().Camera
	move := e.config.Input.MoveStep
	turn := e.config.Input.RotateStep

	var delta math.Vec3
	if core.InputIsKeyDown(core.KEY_Q) {
		delta.Y += move
	}
	if core.InputIsKeyDown(core.KEY_E) {
		delta.Y -= move
	}
	if core.InputIsKeyDown(core.KEY_D) {
		delta.X += move
	}
	if core.InputIsKeyDown(core.KEY_A) {
		delta.X -= move
	}
	if core.InputIsKeyDown(core.KEY_W) {
		delta.Z -= move
	}
	if core.InputIsKeyDown(core.KEY_S) {
		delta.Z += move
	}
	if delta != (math.Vec3{}) {
		camera.Translate(delta)
	}

	var rx, ry float32
	if core.InputIsKeyDown(core.KEY_DOWN) {
		rx += turn
	}
	if core.InputIsKeyDown(core.KEY_UP) {
		rx -= turn
	}
	if core.InputIsKeyDown(core.KEY_LEFT) {
		ry += turn
	}
	if core.InputIsKeyDown(core.KEY_RIGHT) {
		ry -= turn
	}
	if rx != 0 || ry != 0 {
		camera.Rotate(rx, ry, 0)
	}
}

func (e *Engine) drainAssetChanges() {
	for {
		select {
		case change := <-e.assetManager.Changes():
			if change.Type == metadata.ResourceTypeShader && change.Name == e.config.Assets.Shader {
				core.EventFire(core.EventContext{
					Type: core.EVENT_CODE_SHADER_CHANGED,
					Data: &core.AssetEvent{Path: change.Path},
				})
			}
		default:
			return
		}
	}
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if e.cancel != nil {
		e.cancel()
	}
	e.workers.Wait()

	if e.renderer != nil {
		if err := e.renderer.Shutdown(); err != nil {
			return err
		}
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if err := core.EventShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	return e.window.Shutdown()
}

// Stop ends the render loop after the current frame. Safe from any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

// UpdateAddr is where the TCP update server listens, once initialized.
func (e *Engine) UpdateAddr() net.Addr {
	if e.server == nil {
		return nil
	}
	return e.server.Addr()
}

func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	switch ke.KeyCode {
	case core.KEY_ESCAPE:
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return true
	case core.KEY_R:
		e.renderer.Scene().Camera.Reset()
		core.LogDebug("camera reset")
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := re.Width
	height := re.Height
	if width == e.width && height == e.height {
		return true
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	e.renderer.OnResize(width, height)
	return true
}

func (e *Engine) onShaderChanged(context core.EventContext) bool {
	shader, err := e.loadShader()
	if err == nil {
		err = e.renderer.ReloadShader(shader)
	}
	if err != nil {
		core.LogError("shader reload failed, keeping the previous program: %s", err)
		return true
	}
	core.LogInfo("shader %q reloaded", shader.Name)
	return true
}
