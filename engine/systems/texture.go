package systems

import (
	"fmt"

	"github.com/spaghettifunk/gondola/engine/assets"
	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
	"github.com/spaghettifunk/gondola/engine/resources"
)

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

type TextureSystem struct {
	Config         *TextureSystemConfig
	DefaultTexture *metadata.DefaultTexture
	// Array of registered textures.
	RegisteredTextures []*metadata.Texture
	// Hashtable for texture lookups.
	RegisteredTextureTable map[string]*metadata.TextureReference
	// sub systems
	assetManager *assets.AssetManager
}

func NewTextureSystem(config *TextureSystemConfig, am *assets.AssetManager) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogFatal(err.Error())
		return nil, err
	}

	ts := &TextureSystem{
		Config:                 config,
		RegisteredTextures:     make([]*metadata.Texture, config.MaxTextureCount),
		RegisteredTextureTable: make(map[string]*metadata.TextureReference),
		DefaultTexture:         metadata.NewDefaultTexture(),
		assetManager:           am,
	}

	// Invalidate all textures in the array.
	for i := uint32(0); i < config.MaxTextureCount; i++ {
		ts.RegisteredTextures[i] = &metadata.Texture{
			ID:         metadata.InvalidID,
			Generation: metadata.InvalidID,
		}
	}

	ts.DefaultTexture.CreateSkeleton()

	return ts, nil
}

// Initialize uploads the default texture. It runs after the renderer is up
// because texture creation talks to the backend.
func (ts *TextureSystem) Initialize() error {
	return renderer.TextureCreate(ts.DefaultTexture.Pixels, ts.DefaultTexture.Texture)
}

func (ts *TextureSystem) Shutdown() error {
	// Destroy all loaded textures.
	for i := uint32(0); i < ts.Config.MaxTextureCount; i++ {
		t := ts.RegisteredTextures[i]
		if t.Generation != metadata.InvalidID {
			renderer.TextureDestroy(t)
		}
	}
	renderer.TextureDestroy(ts.DefaultTexture.Texture)
	return nil
}

/**
 * @brief Attempts to acquire a texture with the given name. If it has not
 * yet been loaded, this triggers it to load from the bitmap asset of the
 * same name. If the texture is found and loaded, its reference counter is
 * incremented.
 */
func (ts *TextureSystem) Acquire(name string, autoRelease bool) (*metadata.Texture, error) {
	// Return default texture, but warn about it since this should be returned via GetDefaultTexture.
	if name == metadata.DEFAULT_TEXTURE_NAME {
		core.LogWarn("TextureSystem.Acquire called for default texture, use GetDefaultTexture instead")
		return ts.DefaultTexture.Texture, nil
	}

	// NOTE: Increments reference count, or creates new entry.
	id, ok := ts.processTextureReference(name, 1, autoRelease)
	if !ok {
		err := fmt.Errorf("func TextureSystem.Acquire failed to obtain an id for texture '%s'", name)
		core.LogError(err.Error())
		return nil, err
	}
	return ts.RegisteredTextures[id], nil
}

func (ts *TextureSystem) Release(name string) {
	// Ignore release requests for the default texture.
	if name == metadata.DEFAULT_TEXTURE_NAME {
		return
	}
	// NOTE: Decrement the reference count.
	id, ok := ts.processTextureReference(name, -1, false)
	if !ok {
		core.LogError("failed to release texture '%s' properly", name)
		return
	}
	core.LogDebug("texture ID `%d` released", id)
}

func (ts *TextureSystem) GetDefaultTexture() *metadata.Texture {
	return ts.DefaultTexture.Texture
}

// processTextureReference adjusts the reference count of the named texture,
// loading it on the first acquire and destroying it when the count of an
// auto-release texture drops to zero.
func (ts *TextureSystem) processTextureReference(name string, referenceDiff int8, autoRelease bool) (uint32, bool) {
	ref, found := ts.RegisteredTextureTable[name]
	if !found {
		ref = &metadata.TextureReference{
			Handle: metadata.InvalidID,
		}
		ts.RegisteredTextureTable[name] = ref
	}

	if ref.ReferenceCount == 0 && referenceDiff < 0 {
		// Releasing something that holds no references cannot go negative.
		core.LogWarn("tried to release texture '%s' which has no references, count stays at 0", name)
		return 0, true
	}

	// If decrementing, this means a release.
	if referenceDiff < 0 {
		ref.ReferenceCount--
		handle := ref.Handle

		// If the count reaches 0 and the reference is set to auto-release,
		// destroy the texture and free its slot.
		if ref.ReferenceCount == 0 && ref.AutoRelease {
			ts.destroyTexture(ts.RegisteredTextures[ref.Handle])

			// Reset the reference.
			ref.Handle = metadata.InvalidID
			ref.AutoRelease = false
		}
		return handle, true
	}

	// Incrementing. Auto-release behaviour can only be set the first time the
	// texture is acquired.
	if ref.ReferenceCount == 0 {
		ref.AutoRelease = autoRelease
	}
	ref.ReferenceCount++

	if ref.Handle == metadata.InvalidID {
		// No texture exists here yet. Find a free slot first.
		for i := uint32(0); i < ts.Config.MaxTextureCount; i++ {
			if ts.RegisteredTextures[i].ID == metadata.InvalidID {
				ref.Handle = i
				break
			}
		}

		// An empty slot was not found, bleat about it and boot out.
		if ref.Handle == metadata.InvalidID {
			core.LogError("texture system cannot hold any more textures, adjust MaxTextureCount")
			ref.ReferenceCount--
			return 0, false
		}

		t := ts.RegisteredTextures[ref.Handle]
		if err := ts.loadTexture(name, t); err != nil {
			core.LogError("failed to load texture '%s': %s", name, err.Error())
			ref.Handle = metadata.InvalidID
			ref.ReferenceCount--
			return 0, false
		}
		t.ID = ref.Handle
	}

	return ref.Handle, true
}

// loadTexture reads the bitmap asset with the given name and uploads it to
// the GPU. Bitmap rows arrive in BGR or BGRA byte order, so the texture is
// flagged for the backend to pick the matching upload format.
func (ts *TextureSystem) loadTexture(name string, texture *metadata.Texture) error {
	res, err := ts.assetManager.LoadAsset(name, resources.ResourceTypeBitmap, nil)
	if err != nil {
		return err
	}
	bitmap, ok := res.Data.(*resources.Bitmap)
	if !ok {
		return fmt.Errorf("asset '%s' did not decode to bitmap data", name)
	}

	currentGeneration := texture.Generation
	texture.Generation = metadata.InvalidID

	texture.Name = name
	texture.Width = bitmap.Width
	texture.Height = bitmap.Height
	texture.ChannelCount = uint8(bitmap.BitsPerPixel / 8)

	texture.Flags = metadata.TextureFlagBits(metadata.TextureFlagSourceBGR)
	texture.Flags |= metadata.TextureFlagBits(metadata.TextureFlagHasMipmaps)
	if texture.ChannelCount == 4 {
		texture.Flags |= metadata.TextureFlagBits(metadata.TextureFlagHasTransparency)
	}

	if err := renderer.TextureCreate(bitmap.Pixels, texture); err != nil {
		return err
	}

	if currentGeneration == metadata.InvalidID {
		texture.Generation = 0
	} else {
		texture.Generation = currentGeneration + 1
	}

	return ts.assetManager.UnloadAsset(res, resources.ResourceTypeBitmap)
}

func (ts *TextureSystem) destroyTexture(texture *metadata.Texture) {
	// Clean up backend resources.
	renderer.TextureDestroy(texture)

	texture.Name = ""
	texture.ID = metadata.InvalidID
	texture.Generation = metadata.InvalidID
	texture.InternalData = nil
}
