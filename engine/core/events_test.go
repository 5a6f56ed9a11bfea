package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsDispatchInFiredOrder(t *testing.T) {
	require.NoError(t, EventSystemInitialize())
	t.Cleanup(func() { _ = EventSystemShutdown() })

	var got []KeyCode
	id := EventRegister(EVENT_CODE_KEY_PRESSED, func(context EventContext) {
		ke := context.Data.(*KeyEvent)
		got = append(got, ke.KeyCode)
	})
	defer EventUnregister(EVENT_CODE_KEY_PRESSED, id)

	EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED, Data: &KeyEvent{KeyCode: KEY_A}})
	EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED, Data: &KeyEvent{KeyCode: KEY_B}})

	// Nothing is delivered until the engine thread drains the queue.
	assert.Empty(t, got)

	ProcessEvents()
	assert.Equal(t, []KeyCode{KEY_A, KEY_B}, got)

	// Queue is drained; a second call delivers nothing new.
	ProcessEvents()
	assert.Len(t, got, 2)
}

func TestEventUnregisterStopsDelivery(t *testing.T) {
	require.NoError(t, EventSystemInitialize())
	t.Cleanup(func() { _ = EventSystemShutdown() })

	calls := 0
	id := EventRegister(EVENT_CODE_RESIZED, func(context EventContext) {
		calls++
	})

	EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{WindowWidth: 800, WindowHeight: 600}})
	ProcessEvents()
	assert.Equal(t, 1, calls)

	assert.True(t, EventUnregister(EVENT_CODE_RESIZED, id))
	assert.False(t, EventUnregister(EVENT_CODE_RESIZED, id))

	EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{}})
	ProcessEvents()
	assert.Equal(t, 1, calls)
}

func TestEventsWithNoListenersAreDiscarded(t *testing.T) {
	require.NoError(t, EventSystemInitialize())
	t.Cleanup(func() { _ = EventSystemShutdown() })

	EventFire(EventContext{Type: EVENT_CODE_MOUSE_WHEEL, Data: &MouseEvent{Scroll: 1}})
	// Must not panic or wedge the queue.
	ProcessEvents()
}
