package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
	"github.com/spaghettifunk/gondola/engine/resources"
)

type GeometrySystemConfig struct {
	/** @brief The maximum number of geometries that can be loaded at once. */
	MaxGeometryCount uint32
}

type GeometrySystem struct {
	Config *GeometrySystemConfig
	// Array of registered geometries.
	RegisteredGeometries []*metadata.GeometryReference
}

func NewGeometrySystem(config *GeometrySystemConfig) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0")
		core.LogFatal(err.Error())
		return nil, err
	}

	gs := &GeometrySystem{
		Config:               config,
		RegisteredGeometries: make([]*metadata.GeometryReference, config.MaxGeometryCount),
	}

	// Invalidate all geometries in the array.
	for i := uint32(0); i < config.MaxGeometryCount; i++ {
		gs.RegisteredGeometries[i] = &metadata.GeometryReference{
			Geometry: &metadata.Geometry{
				ID:         metadata.InvalidID,
				InternalID: metadata.InvalidID,
				Generation: metadata.InvalidIDUint16,
			},
		}
	}

	return gs, nil
}

func (gs *GeometrySystem) Shutdown() error {
	for i := uint32(0); i < gs.Config.MaxGeometryCount; i++ {
		ref := gs.RegisteredGeometries[i]
		if ref.Geometry.ID != metadata.InvalidID {
			gs.destroyGeometry(ref.Geometry)
		}
	}
	return nil
}

/**
 * @brief Acquires an existing geometry by id and increments its
 * reference count.
 */
func (gs *GeometrySystem) AcquireByID(id uint32) (*metadata.Geometry, error) {
	if id == metadata.InvalidID || id >= gs.Config.MaxGeometryCount || gs.RegisteredGeometries[id].Geometry.ID == metadata.InvalidID {
		err := fmt.Errorf("func GeometrySystem.AcquireByID cannot load invalid geometry id %d", id)
		core.LogError(err.Error())
		return nil, err
	}
	gs.RegisteredGeometries[id].ReferenceCount++
	return gs.RegisteredGeometries[id].Geometry, nil
}

/**
 * @brief Registers and acquires a new geometry using the given config.
 * The vertex attributes and indices are uploaded to the GPU here.
 *
 * @param config The geometry configuration.
 * @param autoRelease Indicates if the acquired geometry should be unloaded when its reference count reaches 0.
 * @return A pointer to the acquired geometry or an error if no slot is free or upload fails.
 */
func (gs *GeometrySystem) AcquireFromConfig(config *metadata.GeometryConfig, autoRelease bool) (*metadata.Geometry, error) {
	var geometry *metadata.Geometry
	for i := uint32(0); i < gs.Config.MaxGeometryCount; i++ {
		if gs.RegisteredGeometries[i].Geometry.ID == metadata.InvalidID {
			// Found empty slot.
			gs.RegisteredGeometries[i].AutoRelease = autoRelease
			gs.RegisteredGeometries[i].ReferenceCount = 1
			geometry = gs.RegisteredGeometries[i].Geometry
			geometry.ID = i
			break
		}
	}

	if geometry == nil {
		err := fmt.Errorf("unable to obtain free slot for geometry, adjust MaxGeometryCount to allow more space")
		core.LogError(err.Error())
		return nil, err
	}

	if err := gs.createGeometry(config, geometry); err != nil {
		core.LogError("failed to create geometry '%s': %s", config.Name, err.Error())
		return nil, err
	}

	return geometry, nil
}

// UpdateFromConfig replaces the GPU data of an already acquired geometry
// in place. Used for rebuilt text quads.
func (gs *GeometrySystem) UpdateFromConfig(geometry *metadata.Geometry, config *metadata.GeometryConfig) error {
	if geometry == nil || geometry.ID == metadata.InvalidID {
		return fmt.Errorf("cannot update a geometry that was never acquired")
	}

	geometry.PrimitiveMode = config.PrimitiveMode
	geometry.PatchVertices = config.PatchVertices
	if err := renderer.UpdateGeometry(geometry, config); err != nil {
		return err
	}

	geometry.Center = config.Center
	geometry.Extents.Min = config.MinExtents
	geometry.Extents.Max = config.MaxExtents
	return nil
}

/**
 * @brief Releases a reference to the provided geometry. When the count of
 * an auto-release geometry reaches 0, its GPU resources are freed.
 */
func (gs *GeometrySystem) Release(geometry *metadata.Geometry) {
	if geometry == nil || geometry.ID == metadata.InvalidID {
		core.LogWarn("GeometrySystem.Release cannot release an invalid geometry id, nothing was done")
		return
	}

	ref := gs.RegisteredGeometries[geometry.ID]
	if ref.Geometry.ID != geometry.ID {
		core.LogError("geometry id mismatch, check registration logic as this should never occur")
		return
	}

	if ref.ReferenceCount > 0 {
		ref.ReferenceCount--
	}

	if ref.ReferenceCount < 1 && ref.AutoRelease {
		gs.destroyGeometry(ref.Geometry)
		ref.ReferenceCount = 0
		ref.AutoRelease = false
	}
}

/**
 * @brief Generates configuration for a flat quad grid spanning
 * [rangeMin, rangeMax] on the x and z axes with the given step size.
 * Every vertex sits at height zero with an up normal, so the mesh is a
 * blank canvas for the wave displacement stages.
 *
 * Each quad contributes four indices wound counter-clockwise, top-left
 * first. The indices are drawn as 4-point tessellation patches rather
 * than triangles.
 */
func (gs *GeometrySystem) GenerateGridConfig(rangeMin, rangeMax, stepSize float32, name string) (*metadata.GeometryConfig, error) {
	if stepSize <= 0 {
		return nil, fmt.Errorf("grid step size must be > 0, got %f", stepSize)
	}
	if rangeMax <= rangeMin {
		return nil, fmt.Errorf("grid range max %f must be greater than min %f", rangeMax, rangeMin)
	}

	// Quads in each row/column. The sample count per axis is one more.
	numQuads := int((rangeMax - rangeMin) / stepSize)
	numColumns := numQuads + 1

	positions := make([]float32, 0, numColumns*numColumns*3)
	normals := make([]float32, 0, numColumns*numColumns*3)
	for zi := 0; zi <= numQuads; zi++ {
		z := rangeMin + float32(zi)*stepSize
		for xi := 0; xi <= numQuads; xi++ {
			x := rangeMin + float32(xi)*stepSize
			positions = append(positions, x, 0.0, z)
			normals = append(normals, 0.0, 1.0, 0.0)
		}
	}

	indices := make([]uint32, 0, numQuads*numQuads*4)
	for xi := 0; xi < numQuads; xi++ {
		for zi := 0; zi < numQuads; zi++ {
			// Define indices, in counter clockwise winding order.
			topLeft := uint32(xi*numColumns + zi)
			topRight := uint32(xi*numColumns + zi + 1)
			bottomRight := uint32((xi+1)*numColumns + zi + 1)
			bottomLeft := uint32((xi+1)*numColumns + zi)

			indices = append(indices, topLeft, topRight, bottomRight, bottomLeft)
		}
	}

	config := &metadata.GeometryConfig{
		Name:          name,
		PrimitiveMode: metadata.PrimitiveModePatches,
		PatchVertices: 4,
		Positions:     positions,
		Normals:       normals,
		Indices:       indices,
		Center:        mgl32.Vec3{(rangeMin + rangeMax) * 0.5, 0.0, (rangeMin + rangeMax) * 0.5},
		MinExtents:    mgl32.Vec3{rangeMin, 0.0, rangeMin},
		MaxExtents:    mgl32.Vec3{rangeMax, 0.0, rangeMax},
	}
	if len(config.Name) == 0 {
		config.Name = metadata.DefaultGeometryName
	}

	return config, nil
}

/**
 * @brief Generates configuration from parsed mesh data, computing the
 * center and extents from the vertex positions. The indices describe
 * plain triangles.
 */
func (gs *GeometrySystem) GenerateConfigFromMeshData(name string, data *resources.MeshData) *metadata.GeometryConfig {
	config := &metadata.GeometryConfig{
		Name:          name,
		PrimitiveMode: metadata.PrimitiveModeTriangles,
		Positions:     data.Positions,
		Normals:       data.Normals,
		Colours:       data.Colours,
		Texcoords:     data.Texcoords,
		Indices:       data.Indices,
	}
	if len(config.Name) == 0 {
		config.Name = metadata.DefaultGeometryName
	}

	if len(data.Positions) >= 3 {
		min := mgl32.Vec3{data.Positions[0], data.Positions[1], data.Positions[2]}
		max := min
		for i := 3; i+2 < len(data.Positions); i += 3 {
			for axis := 0; axis < 3; axis++ {
				v := data.Positions[i+axis]
				if v < min[axis] {
					min[axis] = v
				}
				if v > max[axis] {
					max[axis] = v
				}
			}
		}
		config.MinExtents = min
		config.MaxExtents = max
		config.Center = min.Add(max).Mul(0.5)
	}

	return config
}

func (gs *GeometrySystem) createGeometry(config *metadata.GeometryConfig, geometry *metadata.Geometry) error {
	geometry.Name = config.Name
	geometry.PrimitiveMode = config.PrimitiveMode
	geometry.PatchVertices = config.PatchVertices

	// Send the geometry off to the renderer to be uploaded to the GPU.
	if err := renderer.CreateGeometry(geometry, config); err != nil {
		// Invalidate the entry.
		ref := gs.RegisteredGeometries[geometry.ID]
		ref.ReferenceCount = 0
		ref.AutoRelease = false
		geometry.ID = metadata.InvalidID
		geometry.Generation = metadata.InvalidIDUint16
		geometry.InternalID = metadata.InvalidID
		return err
	}

	// Copy over extents, center, etc.
	geometry.Center = config.Center
	geometry.Extents.Min = config.MinExtents
	geometry.Extents.Max = config.MaxExtents
	return nil
}

func (gs *GeometrySystem) destroyGeometry(geometry *metadata.Geometry) {
	renderer.DestroyGeometry(geometry)
	geometry.InternalID = metadata.InvalidID
	geometry.Generation = metadata.InvalidIDUint16
	geometry.ID = metadata.InvalidID
	geometry.Name = ""
}
