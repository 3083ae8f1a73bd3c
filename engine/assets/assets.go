package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/spaghettifunk/stilllife/engine/assets/loaders"
	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

// changeBufferSize bounds how many file changes can queue up between frames.
const changeBufferSize = 64

type AssetInfo struct {
	ID         string
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

/**
 * @brief Indexes the files under the asset root, loads them through the
 * registered loaders and, when watching, reports changes on a channel
 * that the main loop drains.
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
	changes  chan core.AssetEvent
}

func NewAssetManager() *AssetManager {
	am := &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		changes: make(chan core.AssetEvent, changeBufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.ResourceTypeMaterial, &loaders.MaterialLoader{})

	return am
}

/**
 * @brief Indexes every known file under assetsDir. With watch set, the
 * directories are also handed to fsnotify and a goroutine starts posting
 * to Changes(); it never touches the graphics context.
 */
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	am.root = filepath.Clean(assetsDir)
	if err := am.indexRecursive(am.root, false); err != nil {
		return err
	}
	core.LogInfo("indexed %d assets under %s", am.Count(), am.root)

	if !watch {
		return nil
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	am.fsnotify = fsWatch
	if err := am.indexRecursive(am.root, true); err != nil {
		am.fsnotify.Close()
		am.fsnotify = nil
		return err
	}
	go am.start()
	return nil
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	if am.fsnotify == nil {
		return nil
	}
	close(am.done)
	<-am.stopped
	return nil
}

// Changes delivers one event per asset created or written while watching.
func (am *AssetManager) Changes() <-chan core.AssetEvent {
	return am.changes
}

func (am *AssetManager) Root() string {
	return am.root
}

func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

func (am *AssetManager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.Clean(path)]
	return info, ok
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

/**
 * @brief Loads a file through the loader registered for its type. Paths
 * outside the indexed tree are indexed on first use.
 */
func (am *AssetManager) LoadAsset(path string, params interface{}) (*metadata.Resource, error) {
	path = filepath.Clean(path)

	am.mutex.RLock()
	asset, exists := am.assets[path]
	am.mutex.RUnlock()
	if !exists {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s: %w", path, core.ErrAssetNotFound)
		}
		asset = am.handleFileEvent(path)
		if asset.Type == metadata.ResourceTypeNone {
			return nil, fmt.Errorf("no loader for `%s`: %w", path, core.ErrAssetNotFound)
		}
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	resource, err := loader.Load(path, asset.Type, params)
	if err != nil {
		return nil, err
	}
	resource.Type = asset.Type

	am.mutex.Lock()
	asset.LastLoaded = time.Now()
	am.assets[path] = asset
	am.mutex.Unlock()

	return resource, nil
}

func (am *AssetManager) UnloadAsset(resource *metadata.Resource) error {
	loader, ok := am.loaders[resource.Type]
	if !ok {
		return nil
	}
	return loader.Unload(resource)
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.indexRecursive(e.Name, true)
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				info := am.handleFileEvent(e.Name)
				if info.Type != metadata.ResourceTypeNone {
					am.post(core.AssetEvent{Path: info.Path, ID: info.ID})
				}
			}
			// a removed path may have been a directory, stat cannot tell anymore
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// post never blocks the watcher; a full queue drops the event.
func (am *AssetManager) post(event core.AssetEvent) {
	select {
	case am.changes <- event:
	default:
		core.LogWarn("asset change queue full, dropping %s", event.Path)
	}
}

// indexRecursive indexes every file under path and, with watch set, adds
// each directory to the watcher.
func (am *AssetManager) indexRecursive(path string, watch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if watch {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		if !watch {
			am.handleFileEvent(walkPath)
		}
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) AssetInfo {
	path = filepath.Clean(path)
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return AssetInfo{Path: path}
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	info, ok := am.assets[path]
	if !ok {
		info = AssetInfo{
			ID:   uuid.NewString(),
			Path: path,
			Type: assetType,
		}
		am.assets[path] = info
	}
	return info
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".vert", ".frag":
		return metadata.ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return metadata.ResourceTypeImage
	case ".toml":
		return metadata.ResourceTypeMaterial
	default:
		return metadata.ResourceTypeNone
	}
}
