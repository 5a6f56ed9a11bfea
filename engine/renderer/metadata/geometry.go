package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
)

/** @brief The name of the default geometry. */
const DefaultGeometryName string = "default"

/** @brief The primitive the index array describes. */
type PrimitiveMode int

const (
	/** @brief Indices describe triangles, three per face. */
	PrimitiveModeTriangles PrimitiveMode = iota
	/** @brief Indices describe tessellation patches. */
	PrimitiveModePatches
)

/** @brief The extents of geometry in local coordinates. */
type Extents3D struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

/**
 * @brief Represents the configuration for a geometry. Each vertex
 * attribute lives in its own flat array and becomes its own buffer
 * on the GPU. Empty attribute arrays are simply not uploaded.
 */
type GeometryConfig struct {
	/** @brief The Name of the geometry. */
	Name string
	/** @brief The primitive mode the Indices describe. */
	PrimitiveMode PrimitiveMode
	/** @brief The number of control points per patch when PrimitiveMode is patches. */
	PatchVertices int32
	/** @brief Vertex positions, three floats per vertex. */
	Positions []float32
	/** @brief Vertex normals, three floats per vertex. */
	Normals []float32
	/** @brief Vertex colours, three floats per vertex. */
	Colours []float32
	/** @brief Texture coordinates, two floats per vertex. */
	Texcoords []float32
	/** @brief The index array. */
	Indices []uint32

	Center     mgl32.Vec3
	MinExtents mgl32.Vec3
	MaxExtents mgl32.Vec3
}

type GeometryReference struct {
	ReferenceCount uint64
	Geometry       *Geometry
	AutoRelease    bool
}

/**
 * @brief Represents actual geometry in the world, uploaded to the GPU.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The internal geometry identifier, used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The geometry name. */
	Name string
	/** @brief The primitive mode the geometry is drawn with. */
	PrimitiveMode PrimitiveMode
	/** @brief The number of control points per patch when PrimitiveMode is patches. */
	PatchVertices int32
	/** @brief The number of indices to draw. */
	IndexCount uint32
	/** @brief The center of the geometry in local coordinates. */
	Center mgl32.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents Extents3D
}
