package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * data := context.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * data := context.Data.(*KeyEvent)
	 */
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * data := context.Data.(*SystemEvent)
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	// A watched asset was created or written on disk.
	/* Context usage:
	 * data := context.Data.(*AssetEvent)
	 */
	EVENT_CODE_ASSET_CHANGED SystemEventCode = 0x09

	// Something visible changed, the next loop iteration must redraw.
	EVENT_CODE_REDRAW_REQUESTED SystemEventCode = 0x0A

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type AssetEvent struct {
	Path string
	ID   string
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystemState struct {
	registered map[SystemEventCode][]*registeredEvent
}

var eventMutex sync.Mutex
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()

	if eventState != nil {
		return false
	}
	eventState = &eventSystemState{
		registered: make(map[SystemEventCode][]*registeredEvent),
	}
	return true
}

func EventSystemShutdown() error {
	eventMutex.Lock()
	defer eventMutex.Unlock()

	// Listeners own their state, only drop the references.
	eventState = nil
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. A listener
 * can only be registered once per code; a duplicate registration returns false.
 * @param code The event code to listen for.
 * @param listener The listener instance. Can be nil.
 * @param onEvent The callback invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()

	if eventState == nil || code < 0 || code >= MAX_MESSAGE_CODES {
		return false
	}
	for _, e := range eventState.registered[code] {
		if listener != nil && e.listener == listener {
			LogWarn("listener already registered for event code `%d`", code)
			return false
		}
	}
	eventState.registered[code] = append(eventState.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister the listener from the provided code.
 * @returns true if the listener was found and removed; otherwise false.
 */
func EventUnregister(code SystemEventCode, listener interface{}) bool {
	eventMutex.Lock()
	defer eventMutex.Unlock()

	if eventState == nil {
		return false
	}
	events := eventState.registered[code]
	for i, e := range events {
		if e.listener == listener {
			eventState.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * Listeners run on the calling goroutine.
 * @returns true if handled, otherwise false.
 */
func EventFire(context EventContext) bool {
	eventMutex.Lock()
	if eventState == nil {
		eventMutex.Unlock()
		return false
	}
	// copy so callbacks may register or fire events themselves
	events := append([]*registeredEvent(nil), eventState.registered[context.Type]...)
	eventMutex.Unlock()

	for _, e := range events {
		if e.callback(context) {
			return true
		}
	}
	return false
}
