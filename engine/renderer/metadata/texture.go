package metadata

const (
	/** @brief The default texture name. */
	DEFAULT_TEXTURE_NAME string = "default"
)

type TextureReference struct {
	ReferenceCount uint64
	Handle         uint32
	AutoRelease    bool
}

type TextureFlag int

const (
	/** @brief Indicates if the texture has transparency. */
	TextureFlagHasTransparency TextureFlag = 0x1
	/** @brief Indicates if the texture can be written (rendered) to. */
	TextureFlagIsWriteable TextureFlag = 0x2
	/** @brief Indicates if mipmaps are generated for the texture. */
	TextureFlagHasMipmaps TextureFlag = 0x4
	/** @brief Indicates the pixel bytes are in BGR/BGRA order, as decoded from bitmap files. */
	TextureFlagSourceBGR TextureFlag = 0x8
)

/** @brief Holds bit flags for textures.. */
type TextureFlagBits uint8

/** @brief Returns true if the given flag is set. */
func (b TextureFlagBits) Has(flag TextureFlag) bool {
	return b&TextureFlagBits(flag) != 0
}

/**
 * @brief Represents a texture.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uint32
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlagBits
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The texture Name. */
	Name string
	/** @brief A pointer to renderer API specific data. */
	InternalData interface{}
}

/** @brief A collection of texture uses */
type TextureUse int

const (
	/** @brief An unknown use. This is default, but should never actually be used. */
	TextureUseUnknown TextureUse = 0x00
	/** @brief The texture is used as a diffuse map. */
	TextureUseMapDiffuse TextureUse = 0x01
	/** @brief The texture is used as a surface displacement map. */
	TextureUseMapDisplacement TextureUse = 0x02
	/** @brief The texture is used as a font atlas. */
	TextureUseMapAtlas TextureUse = 0x03
)

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
	TextureRepeatClampToBorder  TextureRepeat = 0x4
)

type DefaultTexture struct {
	Texture *Texture
	Pixels  []uint8
}

func NewDefaultTexture() *DefaultTexture {
	return &DefaultTexture{
		Texture: &Texture{},
	}
}

// CreateSkeleton fills in a 256x256 blue/white checkerboard pattern. The
// pattern is generated in code to eliminate asset dependencies. The GPU
// upload happens in the texture system once the renderer is up.
func (dt *DefaultTexture) CreateSkeleton() {
	texDimension := uint32(256)
	channels := uint32(4)
	pixelCount := texDimension * texDimension

	pixels := make([]uint8, pixelCount*channels)
	for i := range pixels {
		pixels[i] = 255
	}

	// Zero out red and green on alternating pixels so they come out blue.
	for row := uint32(0); row < texDimension; row++ {
		for col := uint32(0); col < texDimension; col++ {
			index := ((row * texDimension) + col) * channels
			if row%2 == col%2 {
				pixels[index+0] = 0
				pixels[index+1] = 0
			}
		}
	}

	dt.Texture.Name = DEFAULT_TEXTURE_NAME
	dt.Texture.Width = texDimension
	dt.Texture.Height = texDimension
	dt.Texture.ChannelCount = 4
	dt.Texture.Generation = InvalidID
	dt.Texture.Flags = 0
	dt.Pixels = pixels
}

/**
 * @brief A structure which maps a texture, use and
 * other properties.
 */
type TextureMap struct {
	/** @brief A pointer to a Texture. */
	Texture *Texture
	/** @brief The Use of the texture */
	Use TextureUse
	/** @brief Texture filtering mode for minification. */
	FilterMinify TextureFilter
	/** @brief Texture filtering mode for magnification. */
	FilterMagnify TextureFilter
	/** @brief The repeat mode on the U axis (or X, or S) */
	RepeatU TextureRepeat
	/** @brief The repeat mode on the V axis (or Y, or T) */
	RepeatV TextureRepeat
	/** @brief A pointer to internal, render API-specific data. Typically the internal sampler. */
	InternalData interface{}
}
