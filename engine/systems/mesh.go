package systems

import (
	"fmt"

	"github.com/spaghettifunk/gondola/engine/assets"
	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
	"github.com/spaghettifunk/gondola/engine/resources"
)

type MeshLoaderSystem struct {
	geometrySystem *GeometrySystem
	assetManager   *assets.AssetManager
}

func NewMeshLoaderSystem(gs *GeometrySystem, am *assets.AssetManager) (*MeshLoaderSystem, error) {
	return &MeshLoaderSystem{
		geometrySystem: gs,
		assetManager:   am,
	}, nil
}

func (mls *MeshLoaderSystem) Shutdown() error {
	return nil
}

/**
 * @brief Loads the mesh asset with the given name, uploads its vertex
 * data to the GPU and returns the acquired geometry.
 */
func (mls *MeshLoaderSystem) Load(resourceName string) (*metadata.Geometry, error) {
	res, err := mls.assetManager.LoadAsset(resourceName, resources.ResourceTypeMesh, nil)
	if err != nil {
		core.LogError("failed to load mesh '%s': %s", resourceName, err.Error())
		return nil, err
	}

	data, ok := res.Data.(*resources.MeshData)
	if !ok {
		err := fmt.Errorf("asset '%s' did not load as mesh data", resourceName)
		core.LogError(err.Error())
		return nil, err
	}

	config := mls.geometrySystem.GenerateConfigFromMeshData(resourceName, data)
	geometry, err := mls.geometrySystem.AcquireFromConfig(config, true)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	core.LogDebug("successfully loaded mesh '%s'", resourceName)

	if err := mls.assetManager.UnloadAsset(res, resources.ResourceTypeMesh); err != nil {
		core.LogWarn("failed to unload mesh asset '%s': %s", resourceName, err.Error())
	}

	return geometry, nil
}

func (mls *MeshLoaderSystem) Unload(geometry *metadata.Geometry) {
	mls.geometrySystem.Release(geometry)
}
