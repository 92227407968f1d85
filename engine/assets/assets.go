package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/lumina/engine/assets/loaders"
	"github.com/spaghettifunk/lumina/engine/core"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

// Sub-directories of the assets root per resource type.
const (
	SHADERS_DIR = "shaders"
	MODELS_DIR  = "models"
)

// Size of the change queue; further changes are dropped until the render thread drains it.
const changeQueueSize = 16

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetChange reports that an asset file was created or rewritten.
type AssetChange struct {
	Path string
	Type metadata.ResourceType
	// Name is the asset name without directory and stage suffix.
	Name string
}

/**
 * @brief Indexes the assets directory, loads assets through per-type loaders
 * and watches the tree with fsnotify. Changes are queued on Changes() for the
 * render thread, which owns any GPU work a reload needs.
 */
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	watching bool
	changes  chan AssetChange
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan AssetChange, changeQueueSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeMesh, &loaders.ModelLoader{})
	am.registerLoader(metadata.ResourceTypeConfig, &loaders.EmitterLoader{})
	return am, nil
}

// Initialize indexes assetsDir. With watch set, changes below it are reported on Changes().
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	am.root = filepath.Clean(assetsDir)
	if watch {
		am.mutex.Lock()
		am.watching = true
		am.mutex.Unlock()
		go am.start()
	}
	if err := am.addRecursive(am.root, watch); err != nil {
		return err
	}
	core.LogInfo("Asset manager initialized: %d assets under %s (watch=%t)", len(am.assets), am.root, watch)
	return nil
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	watching := am.watching
	am.mutex.Unlock()

	close(am.done)
	if watching {
		<-am.stopped
	}
	return am.fsnotify.Close()
}

// Changes delivers asset change notifications. Never closed.
func (am *AssetManager) Changes() <-chan AssetChange {
	return am.changes
}

// addRecursive indexes every file under name and, when watch is set, watches every directory.
func (am *AssetManager) addRecursive(name string, watch bool) error {
	am.mutex.RLock()
	closed := am.isClosed
	am.mutex.RUnlock()
	if closed {
		return errors.New("asset manager already closed")
	}
	return filepath.Walk(name, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if watch {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		am.indexFile(walkPath)
		return nil
	})
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Path returns where an asset of the given type and name lives under the root.
func (am *AssetManager) Path(name string, resourceType metadata.ResourceType) string {
	switch resourceType {
	case metadata.ResourceTypeShader:
		return filepath.Join(am.root, SHADERS_DIR, name)
	case metadata.ResourceTypeMesh:
		return filepath.Join(am.root, MODELS_DIR, name)
	}
	return name
}

/**
 * @brief Loads an asset with the loader registered for its type. Shaders are
 * named without stage suffix ("everything"), meshes by file name
 * ("cylinder.obj"); configs take a path as is.
 */
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType) (*metadata.Resource, error) {
	loader, ok := am.loaders[resourceType]
	if !ok {
		return nil, fmt.Errorf("no loader registered for asset type: %s", resourceType)
	}
	path := am.Path(name, resourceType)
	res, err := loader.Load(path, name)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, Type: resourceType, LastLoaded: time.Now()}
	am.mutex.Unlock()
	return res, nil
}

func (am *AssetManager) UnloadAsset(res *metadata.Resource) error {
	loader, ok := am.loaders[res.Type]
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %s", res.Type)
	}
	return loader.Unload(res)
}

// Asset returns the index entry for path.
func (am *AssetManager) Asset(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[path]
	return info, ok
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.addRecursive(e.Name, true); err != nil {
						core.LogWarn("watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if info, ok := am.indexFile(e.Name); ok {
					am.notify(info)
				}
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			return
		}
	}
}

func (am *AssetManager) notify(info AssetInfo) {
	change := AssetChange{Path: info.Path, Type: info.Type, Name: assetName(info.Path)}
	select {
	case am.changes <- change:
	default:
		core.LogWarn("asset change queue full, dropping %s", info.Path)
	}
}

// indexFile records a file of a known asset type.
func (am *AssetManager) indexFile(path string) (AssetInfo, bool) {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return AssetInfo{}, false
	}
	info := AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	am.mutex.Lock()
	am.assets[path] = info
	am.mutex.Unlock()
	return info, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

// assetName strips the directory and every extension: shaders/everything.v.glsl -> everything.
func assetName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		return base[:i]
	}
	return base
}

func determineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glsl":
		return metadata.ResourceTypeShader
	case ".obj":
		return metadata.ResourceTypeMesh
	case ".json", ".yaml", ".yml", ".toml":
		return metadata.ResourceTypeConfig
	default:
		return metadata.ResourceTypeNone
	}
}
