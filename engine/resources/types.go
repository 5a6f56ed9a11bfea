package resources

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Text resource type. */
	ResourceTypeText ResourceType = iota
	/** @brief Binary resource type. */
	ResourceTypeBinary
	/** @brief Bitmap image resource type. */
	ResourceTypeBitmap
	/** @brief Shader stage source resource type. */
	ResourceTypeShader
	/** @brief Mesh resource type (vertex attributes plus face indices). */
	ResourceTypeMesh
	/** @brief Bitmap font resource type. */
	ResourceTypeBitmapFont
	/** @brief System font resource type. */
	ResourceTypeSystemFont
	/** @brief Custom resource type. Used by loaders outside the core engine. */
	ResourceTypeCustom
)

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The identifier of the loader which handles this resource. */
	LoaderID uint32
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/**
 * @brief Decoded bitmap image data, exactly as stored in the file.
 *
 * Pixel bytes keep the file's channel ordering (BGR for 24 bits per
 * pixel, BGRA for 32) and its bottom-up row order. The renderer picks
 * the matching upload format from BitsPerPixel.
 */
type Bitmap struct {
	/** @brief The image width in pixels. */
	Width uint32
	/** @brief The image height in pixels. */
	Height uint32
	/** @brief Bits per pixel as declared by the file header. 24 and 32 are supported. */
	BitsPerPixel uint16
	/** @brief The size of the header in bytes, as declared by the file. */
	HeaderSize uint32
	/** @brief The raw pixel bytes. */
	Pixels []uint8
}

/**
 * @brief Mesh vertex attributes and face indices, one flat array per
 * attribute. Attributes the source file does not declare are zero filled
 * so every array always covers the full vertex count.
 */
type MeshData struct {
	/** @brief Vertex positions, three floats per vertex. */
	Positions []float32
	/** @brief Vertex normals, three floats per vertex. */
	Normals []float32
	/** @brief Vertex colours, three floats per vertex. */
	Colours []float32
	/** @brief Texture coordinates, two floats per vertex. */
	Texcoords []float32
	/** @brief Face indices. */
	Indices []uint32
	/** @brief The number of vertices described by the attribute arrays. */
	VertexCount uint32
}

/**
 * @brief A single shader stage source loaded from disk. The stage is
 * derived from the file extension by the shader system.
 */
type ShaderSource struct {
	/** @brief The GLSL source text. */
	Source string
}
