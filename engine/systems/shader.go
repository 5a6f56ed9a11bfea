package systems

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/gondola/engine/assets"
	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
	"github.com/spaghettifunk/gondola/engine/resources"
)

/** @brief Configuration for the shader system. */
type ShaderSystemConfig struct {
	/** @brief The maximum number of pipelines held in the system. */
	MaxPipelineCount uint16
}

type ShaderSystem struct {
	// This system's configuration.
	Config *ShaderSystemConfig
	// A lookup table for pipeline name->id.
	Lookup map[string]uint32
	// A collection of created pipelines.
	Pipelines []*metadata.Pipeline
	// sub systems
	assetManager *assets.AssetManager
	// Listener id from Initialize, released on Shutdown.
	assetListener uint32
	// Hook the asset-modified handler dispatches matching pipelines to.
	reload func(pipeline *metadata.Pipeline)
}

func NewShaderSystem(config *ShaderSystemConfig, am *assets.AssetManager) (*ShaderSystem, error) {
	if config.MaxPipelineCount == 0 {
		err := fmt.Errorf("func NewShaderSystem - config.MaxPipelineCount must be > 0")
		core.LogFatal(err.Error())
		return nil, err
	}

	ss := &ShaderSystem{
		Config:       config,
		Pipelines:    make([]*metadata.Pipeline, config.MaxPipelineCount),
		Lookup:       make(map[string]uint32),
		assetManager: am,
	}

	// Invalidate all pipeline ids.
	for i := uint16(0); i < config.MaxPipelineCount; i++ {
		ss.Pipelines[i] = &metadata.Pipeline{
			ID:    metadata.InvalidID,
			State: metadata.SHADER_STATE_NOT_CREATED,
		}
	}

	ss.reload = ss.reloadPipeline

	return ss, nil
}

// Initialize subscribes to asset change notifications so pipelines are
// recompiled when their stage sources change on disk. Must run after the
// event system is up, the constructor is too early for that.
func (ss *ShaderSystem) Initialize() error {
	ss.assetListener = core.EventRegister(core.EVENT_CODE_ASSET_MODIFIED, ss.onAssetModified)
	if ss.assetListener == 0 {
		err := fmt.Errorf("shader system initialized before the event system, hot reload unavailable")
		core.LogError(err.Error())
		return err
	}
	return nil
}

func (ss *ShaderSystem) Shutdown() error {
	if ss.assetListener != 0 {
		core.EventUnregister(core.EVENT_CODE_ASSET_MODIFIED, ss.assetListener)
		ss.assetListener = 0
	}

	// Destroy any pipelines still in existence.
	for i := uint16(0); i < ss.Config.MaxPipelineCount; i++ {
		p := ss.Pipelines[i]
		if p.ID != metadata.InvalidID {
			if err := renderer.PipelineDestroy(p); err != nil {
				core.LogError(err.Error())
			}
			p.ID = metadata.InvalidID
			p.State = metadata.SHADER_STATE_NOT_CREATED
		}
	}
	return nil
}

/**
 * @brief Creates a new pipeline with the given config. The stage sources
 * are loaded from the shader assets named in StageFilenames, compiled and
 * linked into a program by the backend. Compile and link failures surface
 * as ShaderCompileError and LinkError values carrying the driver log.
 */
func (ss *ShaderSystem) CreatePipeline(config *metadata.PipelineConfig) (*metadata.Pipeline, error) {
	if _, exists := ss.Lookup[config.Name]; exists {
		err := fmt.Errorf("a pipeline named '%s' already exists", config.Name)
		core.LogError(err.Error())
		return nil, err
	}
	if len(config.StageFilenames) == 0 {
		err := fmt.Errorf("pipeline '%s' has no stage filenames", config.Name)
		core.LogError(err.Error())
		return nil, err
	}

	id := ss.newPipelineID()
	if id == metadata.InvalidID {
		err := fmt.Errorf("unable to find free slot to create new pipeline, adjust MaxPipelineCount")
		core.LogError(err.Error())
		return nil, err
	}

	pipeline := ss.Pipelines[id]
	pipeline.ID = id
	pipeline.Name = config.Name
	pipeline.State = metadata.SHADER_STATE_NOT_CREATED
	pipeline.CullMode = config.CullMode
	pipeline.DepthTestEnabled = config.DepthTestEnabled
	pipeline.BlendEnabled = config.BlendEnabled
	pipeline.StageFilenames = config.StageFilenames

	stages, err := ss.loadStages(config.StageFilenames)
	if err != nil {
		pipeline.ID = metadata.InvalidID
		return nil, err
	}

	if err := renderer.PipelineCreate(pipeline, stages); err != nil {
		core.LogError("failed to create pipeline '%s': %s", config.Name, err.Error())
		pipeline.ID = metadata.InvalidID
		return nil, err
	}

	// At this point creation is successful, so store the pipeline id in the
	// lookup so it can be found by name later.
	ss.Lookup[config.Name] = id

	return pipeline, nil
}

/**
 * @brief Returns a pointer to the pipeline with the given name. Case sensitive.
 */
func (ss *ShaderSystem) GetPipeline(name string) (*metadata.Pipeline, error) {
	id, ok := ss.Lookup[name]
	if !ok {
		return nil, fmt.Errorf("pipeline with name '%s' not found", name)
	}
	return ss.GetPipelineByID(id)
}

/**
 * @brief Returns a pointer to the pipeline with the given identifier.
 */
func (ss *ShaderSystem) GetPipelineByID(id uint32) (*metadata.Pipeline, error) {
	if id >= uint32(ss.Config.MaxPipelineCount) || ss.Pipelines[id].ID == metadata.InvalidID {
		return nil, fmt.Errorf("pipeline with id '%d' not found", id)
	}
	return ss.Pipelines[id], nil
}

/**
 * @brief Destroys the pipeline with the given name and releases its
 * program handle.
 */
func (ss *ShaderSystem) DestroyPipeline(name string) error {
	id, ok := ss.Lookup[name]
	if !ok {
		return fmt.Errorf("pipeline with name '%s' not found", name)
	}

	pipeline := ss.Pipelines[id]
	if err := renderer.PipelineDestroy(pipeline); err != nil {
		return err
	}

	pipeline.ID = metadata.InvalidID
	pipeline.State = metadata.SHADER_STATE_NOT_CREATED
	pipeline.Name = ""
	delete(ss.Lookup, name)

	return nil
}

func (ss *ShaderSystem) newPipelineID() uint32 {
	for i := uint16(0); i < ss.Config.MaxPipelineCount; i++ {
		if ss.Pipelines[i].ID == metadata.InvalidID {
			return uint32(i)
		}
	}
	return metadata.InvalidID
}

// loadStages reads every stage source from the asset manager. The stage of
// each file is derived from its extension.
func (ss *ShaderSystem) loadStages(filenames []string) ([]*metadata.ShaderStageConfig, error) {
	stages := make([]*metadata.ShaderStageConfig, 0, len(filenames))
	for _, filename := range filenames {
		stage, err := metadata.ShaderStageFromFileName(filename)
		if err != nil {
			core.LogError(err.Error())
			return nil, err
		}

		res, err := ss.assetManager.LoadAsset(filename, resources.ResourceTypeShader, nil)
		if err != nil {
			core.LogError("failed to load shader stage source '%s': %s", filename, err.Error())
			return nil, err
		}
		source, ok := res.Data.(*resources.ShaderSource)
		if !ok {
			return nil, fmt.Errorf("asset '%s' did not load as shader source", filename)
		}

		stages = append(stages, &metadata.ShaderStageConfig{
			Stage:    stage,
			FileName: filename,
			Source:   source.Source,
		})

		if err := ss.assetManager.UnloadAsset(res, resources.ResourceTypeShader); err != nil {
			core.LogWarn("failed to unload shader asset '%s': %s", filename, err.Error())
		}
	}
	return stages, nil
}

// onAssetModified rebuilds every pipeline that was built from the changed
// file. The new program is linked before the old one is destroyed, so a
// source file with errors leaves the last good program in place.
func (ss *ShaderSystem) onAssetModified(context core.EventContext) {
	event, ok := context.Data.(*core.AssetEvent)
	if !ok {
		return
	}
	base := filepath.Base(event.Path)

	for i := uint16(0); i < ss.Config.MaxPipelineCount; i++ {
		pipeline := ss.Pipelines[i]
		if pipeline.ID == metadata.InvalidID {
			continue
		}
		for _, filename := range pipeline.StageFilenames {
			if filename == base {
				ss.reload(pipeline)
				break
			}
		}
	}
}

func (ss *ShaderSystem) reloadPipeline(pipeline *metadata.Pipeline) {
	core.LogInfo("reloading pipeline '%s'", pipeline.Name)

	stages, err := ss.loadStages(pipeline.StageFilenames)
	if err != nil {
		core.LogError("pipeline '%s' reload aborted: %s", pipeline.Name, err.Error())
		return
	}

	rebuilt := &metadata.Pipeline{
		ID:               pipeline.ID,
		Name:             pipeline.Name,
		CullMode:         pipeline.CullMode,
		DepthTestEnabled: pipeline.DepthTestEnabled,
		BlendEnabled:     pipeline.BlendEnabled,
		StageFilenames:   pipeline.StageFilenames,
	}
	if err := renderer.PipelineCreate(rebuilt, stages); err != nil {
		core.LogError("pipeline '%s' reload failed, keeping previous program: %s", pipeline.Name, err.Error())
		return
	}

	if err := renderer.PipelineDestroy(pipeline); err != nil {
		core.LogWarn(err.Error())
	}
	pipeline.InternalData = rebuilt.InternalData
	pipeline.State = rebuilt.State
}
