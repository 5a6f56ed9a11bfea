package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/gondola/engine/assets/loaders"
	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/resources"
)

type AssetInfo struct {
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

type AssetManager struct {
	assetsDir string
	assets    map[string]AssetInfo
	loaders   map[resources.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[resources.ResourceType]Loader),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	am.assetsDir = assetsDir

	go am.start()

	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}

	// Register loaders
	am.registerLoader(resources.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(resources.ResourceTypeBitmap, &loaders.BitmapLoader{})
	am.registerLoader(resources.ResourceTypeMesh, &loaders.MeshLoader{})
	am.registerLoader(resources.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})
	am.registerLoader(resources.ResourceTypeSystemFont, &loaders.SystemFontLoader{})
	am.registerLoader(resources.ResourceTypeBinary, &loaders.BinaryLoader{})

	return nil
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return nil
}

// Add starts watching the named file or directory (non-recursively).
func (am *AssetManager) add(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.fsnotify.Add(name)
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

// Remove stops watching the the named file or directory (non-recursively).
func (am *AssetManager) remove(name string) error {
	return am.fsnotify.Remove(name)
}

// RemoveRecursive stops watching the named directory and all sub-directories.
func (am *AssetManager) removeRecursive(name string) error {
	return am.watchRecursive(name, true)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Load an asset using the appropriate loader. The name is the bare asset
// name; the path and extension are derived from the resource type. Shader
// names keep their stage extension, since the stage is part of the name
// ("water.vert", "water.frag").
func (am *AssetManager) LoadAsset(name string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	var path string
	switch resourceType {
	case resources.ResourceTypeBitmap:
		path = filepath.Join(am.assetsDir, "textures", name+".bmp")
	case resources.ResourceTypeMesh:
		path = filepath.Join(am.assetsDir, "models", name+".ply")
	case resources.ResourceTypeShader:
		path = filepath.Join(am.assetsDir, "shaders", name)
	case resources.ResourceTypeBitmapFont:
		path = filepath.Join(am.assetsDir, "fonts", name+".fnt")
	case resources.ResourceTypeSystemFont:
		path = filepath.Join(am.assetsDir, "fonts", name+".fontcfg")
	case resources.ResourceTypeBinary:
		path = filepath.Join(am.assetsDir, name)
	default:
		return nil, fmt.Errorf("no asset path mapping for resource type %d", resourceType)
	}

	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %d", resourceType)
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       resourceType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()

	return loader.Load(path, resourceType, params)
}

func (am *AssetManager) UnloadAsset(asset *resources.Resource, resourceType resources.ResourceType) error {
	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return fmt.Errorf("no loader registered for asset type: %d", resourceType)
	}
	return loader.Unload(asset)
}

func (am *AssetManager) start() {
	for {
		select {

		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name, true)
			}
			// Can't stat a deleted path, so just try to remove it from
			// both the index and the watch list.
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}

		case e := <-am.fsnotify.Errors:
			core.LogError(e.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
// this is probably a very racey process. What if a file is added to a folder before we get the watch added?
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				if err = am.fsnotify.Remove(walkPath); err != nil {
					return err
				}
			} else {
				if err = am.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
		} else {
			am.handleFileEvent(walkPath, false)
		}
		return nil
	})
}

// Index a created or modified file and, when it changed after startup,
// notify listeners so dependent resources can reload.
func (am *AssetManager) handleFileEvent(path string, notify bool) {
	assetType := determineAssetType(path)
	if assetType == resources.ResourceTypeCustom {
		return
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()

	if notify {
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_ASSET_MODIFIED,
			Data: &core.AssetEvent{Path: path},
		})
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func determineAssetType(path string) resources.ResourceType {
	switch filepath.Ext(path) {
	case ".bmp":
		return resources.ResourceTypeBitmap
	case ".ply":
		return resources.ResourceTypeMesh
	case ".vert", ".tesc", ".tese", ".geom", ".frag", ".comp":
		return resources.ResourceTypeShader
	case ".fnt":
		return resources.ResourceTypeBitmapFont
	case ".fontcfg":
		return resources.ResourceTypeSystemFont
	case ".ttf", ".otf":
		return resources.ResourceTypeBinary
	default:
		return resources.ResourceTypeCustom
	}
}
