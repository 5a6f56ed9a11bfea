package systems

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/gondola/engine/assets"
	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

// testShaderSystem builds a shader system over a throwaway assets
// directory. Tests here stay on the frontend side, nothing below the
// backend boundary is reached because every pipeline fails before
// compilation.
func testShaderSystem(t *testing.T, sources map[string]string) *ShaderSystem {
	t.Helper()

	assetsDir := t.TempDir()
	shadersDir := filepath.Join(assetsDir, "shaders")
	require.NoError(t, os.MkdirAll(shadersDir, 0o755))
	for name, source := range sources {
		require.NoError(t, os.WriteFile(filepath.Join(shadersDir, name), []byte(source), 0o644))
	}

	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(assetsDir))
	t.Cleanup(func() { am.Shutdown() })

	ss, err := NewShaderSystem(&ShaderSystemConfig{MaxPipelineCount: 4}, am)
	require.NoError(t, err)
	return ss
}

func TestNewShaderSystemRejectsZeroCount(t *testing.T) {
	_, err := NewShaderSystem(&ShaderSystemConfig{}, nil)
	assert.Error(t, err)
}

func TestCreatePipelineRequiresStageFilenames(t *testing.T) {
	ss := testShaderSystem(t, nil)

	_, err := ss.CreatePipeline(&metadata.PipelineConfig{Name: "empty"})
	assert.Error(t, err)
	assert.Empty(t, ss.Lookup)
}

func TestCreatePipelineRejectsUnknownStageExtension(t *testing.T) {
	ss := testShaderSystem(t, nil)

	_, err := ss.CreatePipeline(&metadata.PipelineConfig{
		Name:           "bad_ext",
		StageFilenames: []string{"water.glsl"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recognized shader stage extension")

	// The failed creation must not leave a registered name or a
	// claimed pipeline slot behind.
	assert.Empty(t, ss.Lookup)
	for _, pipeline := range ss.Pipelines {
		assert.Equal(t, metadata.InvalidID, pipeline.ID)
	}
}

func TestCreatePipelineMissingStageSource(t *testing.T) {
	ss := testShaderSystem(t, map[string]string{
		"present.vert": "#version 410 core\nvoid main() {}\n",
	})

	_, err := ss.CreatePipeline(&metadata.PipelineConfig{
		Name:           "half_there",
		StageFilenames: []string{"present.vert", "missing.frag"},
	})
	require.Error(t, err)

	var ioErr *core.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Contains(t, ioErr.Path, "missing.frag")

	assert.Empty(t, ss.Lookup)
	for _, pipeline := range ss.Pipelines {
		assert.Equal(t, metadata.InvalidID, pipeline.ID)
	}
}

func TestCreatePipelineRejectsDuplicateName(t *testing.T) {
	ss := testShaderSystem(t, nil)

	// Claim the name by hand, creation fails before any compilation so a
	// complete pipeline is never built in this test.
	ss.Lookup["taken"] = 0

	_, err := ss.CreatePipeline(&metadata.PipelineConfig{
		Name:           "taken",
		StageFilenames: []string{"water.vert"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGetPipelineUnknownName(t *testing.T) {
	ss := testShaderSystem(t, nil)

	_, err := ss.GetPipeline("nope")
	assert.Error(t, err)

	_, err = ss.GetPipelineByID(2)
	assert.Error(t, err)
}

// Hot reload rides the event queue: the watcher fires the event from its
// goroutine and the handler runs when the engine thread drains the queue.
// The subscription happens in Initialize, after the event system is up.
func TestAssetModifiedReloadsMatchingPipelines(t *testing.T) {
	require.NoError(t, core.EventSystemInitialize())
	t.Cleanup(func() { _ = core.EventSystemShutdown() })

	ss := testShaderSystem(t, nil)
	require.NoError(t, ss.Initialize())
	t.Cleanup(func() {
		// The seeded slots were never uploaded to the backend, invalidate
		// them so Shutdown has nothing to destroy.
		for _, pipeline := range ss.Pipelines {
			pipeline.ID = metadata.InvalidID
		}
		require.NoError(t, ss.Shutdown())
	})

	seed := func(id uint32, name string, stages ...string) {
		pipeline := ss.Pipelines[id]
		pipeline.ID = id
		pipeline.Name = name
		pipeline.StageFilenames = stages
	}
	seed(0, "water", "water.vert", "water.frag")
	seed(1, "boat", "boat.vert", "boat.frag")

	var reloaded []string
	ss.reload = func(pipeline *metadata.Pipeline) {
		reloaded = append(reloaded, pipeline.Name)
	}

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_ASSET_MODIFIED,
		Data: &core.AssetEvent{Path: "/somewhere/assets/shaders/water.frag"},
	})

	// Nothing happens until the queue drains on the engine thread.
	assert.Empty(t, reloaded)

	core.ProcessEvents()
	assert.Equal(t, []string{"water"}, reloaded)
}

func TestShaderSystemShutdownStopsAssetNotifications(t *testing.T) {
	require.NoError(t, core.EventSystemInitialize())
	t.Cleanup(func() { _ = core.EventSystemShutdown() })

	ss := testShaderSystem(t, nil)
	require.NoError(t, ss.Initialize())

	reloads := 0
	ss.reload = func(pipeline *metadata.Pipeline) { reloads++ }

	require.NoError(t, ss.Shutdown())

	// A pipeline that would match, were the listener still registered.
	ss.Pipelines[0].ID = 0
	ss.Pipelines[0].StageFilenames = []string{"water.vert"}

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_ASSET_MODIFIED,
		Data: &core.AssetEvent{Path: "water.vert"},
	})
	core.ProcessEvents()
	assert.Zero(t, reloads)
}
