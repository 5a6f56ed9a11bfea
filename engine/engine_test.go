package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

// A game error must reach the run loop as a return value so shutdown can
// run in order, not kill the process at the log site.
func TestTickReturnsGameUpdateError(t *testing.T) {
	boom := errors.New("physics exploded")
	e := &Engine{
		gameInstance: &Game{
			FnUpdate: func(deltaTime float64) error { return boom },
		},
	}

	err := e.tick(0.016)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestTickReturnsGameRenderError(t *testing.T) {
	boom := errors.New("no packet for you")
	updates := 0
	e := &Engine{
		gameInstance: &Game{
			FnUpdate: func(deltaTime float64) error {
				updates++
				return nil
			},
			FnRender: func(packet *metadata.RenderPacket, deltaTime float64) error {
				return boom
			},
		},
	}

	// The nil system manager would panic if the draw were reached, the
	// render error has to stop the frame first.
	err := e.tick(0.016)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, updates)
}
