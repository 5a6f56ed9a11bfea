package core

import (
	"sync"

	"github.com/spaghettifunk/gondola/engine/containers"
)

type EventCode uint16

// System internal event codes. Application should use codes beyond 255.
const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Mouse button pressed. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04
	// Mouse button released. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Mouse moved. Data is a *MouseEvent.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Mouse wheel scrolled. Data is a *MouseEvent.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07
	// Resized/resolution changed from the OS. Data is a *SystemEvent.
	EVENT_CODE_RESIZED EventCode = 0x08
	// A watched asset file changed on disk. Data is an *AssetEvent.
	EVENT_CODE_ASSET_MODIFIED EventCode = 0x09
	// Change the renderer debug view mode. Data is the mode value.
	EVENT_CODE_SET_RENDER_MODE EventCode = 0x0A

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type AssetEvent struct {
	Path string
}

// FnOnEvent is invoked for every fired event of a registered code.
type FnOnEvent func(context EventContext)

type registeredEvent struct {
	id       uint32
	callback FnOnEvent
}

// Fired events are queued and dispatched in order by ProcessEvents on the
// engine thread, so listeners never run concurrently even when the firing
// side is a watcher goroutine.
type eventSystemState struct {
	mutex      sync.RWMutex
	nextID     uint32
	registered map[EventCode][]*registeredEvent
	queue      *containers.RingQueue[EventContext]
}

const maxQueuedEvents = 1024

var onceEvent sync.Once
var eventState *eventSystemState

func EventSystemInitialize() error {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[EventCode][]*registeredEvent),
			queue:      containers.NewRingQueue[EventContext](maxQueuedEvents),
		}
	})
	return nil
}

func EventSystemShutdown() error {
	if eventState == nil {
		return nil
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()
	eventState.registered = make(map[EventCode][]*registeredEvent)
	return nil
}

// EventRegister subscribes the callback to the given code and returns a
// listener id usable with EventUnregister.
func EventRegister(code EventCode, callback FnOnEvent) uint32 {
	if eventState == nil {
		LogWarn("EventRegister called before the event system was initialized, code %d dropped", code)
		return 0
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()

	eventState.nextID++
	eventState.registered[code] = append(eventState.registered[code], &registeredEvent{
		id:       eventState.nextID,
		callback: callback,
	})
	return eventState.nextID
}

func EventUnregister(code EventCode, id uint32) bool {
	if eventState == nil {
		return false
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()

	listeners := eventState.registered[code]
	for i, l := range listeners {
		if l.id == id {
			eventState.registered[code] = append(listeners[:i], listeners[i+1:]...)
			return true
		}
	}
	return false
}

// EventFire enqueues an event for dispatch on the next ProcessEvents call.
func EventFire(context EventContext) {
	if eventState == nil {
		return
	}
	if err := eventState.queue.Enqueue(context); err != nil {
		LogWarn("event queue full, dropping event of type %d", context.Type)
	}
}

// ProcessEvents drains the queue and dispatches every pending event.
// Must be called from the engine thread once per frame.
func ProcessEvents() {
	if eventState == nil {
		return
	}
	for {
		context, err := eventState.queue.Dequeue()
		if err != nil {
			return
		}
		eventState.mutex.RLock()
		listeners := make([]*registeredEvent, len(eventState.registered[context.Type]))
		copy(listeners, eventState.registered[context.Type])
		eventState.mutex.RUnlock()

		for _, l := range listeners {
			l.callback(context)
		}
	}
}
