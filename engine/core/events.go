package core

import "sync"

// System internal event codes.
type EventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = iota + 1
	// Keyboard key pressed. Data: *KeyEvent
	EVENT_CODE_KEY_PRESSED
	// Keyboard key released. Data: *KeyEvent
	EVENT_CODE_KEY_RELEASED
	// Framebuffer resized. Data: *ResizeEvent
	EVENT_CODE_RESIZED
	// A shader source changed on disk. Data: *AssetEvent
	EVENT_CODE_SHADER_CHANGED

	MAX_EVENT_CODE
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type ResizeEvent struct {
	Width  uint32
	Height uint32
}

type AssetEvent struct {
	Path string
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// State structure.
type eventSystemState struct {
	registered [MAX_EVENT_CODE][]registeredEvent
}

/**
 * Event system internal state. Events are fired and consumed on the render
 * thread only; the mutex just keeps registration from racing with tests.
 */
var eventMu sync.Mutex
var isInitialized bool = false
var eventState *eventSystemState = nil

func EventInitialize() bool {
	eventMu.Lock()
	defer eventMu.Unlock()
	if isInitialized {
		return false
	}
	eventState = &eventSystemState{}
	isInitialized = true
	return true
}

func EventShutdown() error {
	eventMu.Lock()
	defer eventMu.Unlock()
	eventState = nil
	isInitialized = false
	return nil
}

/**
 * Register to listen for when events are sent with the provided code. A listener
 * can only be registered once per code; a duplicate returns false.
 * @param code The event code to listen for.
 * @param listener A listener instance, used as the registration key. Can be nil.
 * @param onEvent The callback to be invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func EventRegister(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	eventMu.Lock()
	defer eventMu.Unlock()
	if !isInitialized || code <= 0 || code >= MAX_EVENT_CODE {
		return false
	}
	for _, e := range eventState.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	eventState.registered[code] = append(eventState.registered[code], registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code.
 * @returns true if the event is successfully unregistered; otherwise false.
 */
func EventUnregister(code EventCode, listener interface{}) bool {
	eventMu.Lock()
	defer eventMu.Unlock()
	if !isInitialized || code <= 0 || code >= MAX_EVENT_CODE {
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
 * @returns true if handled, otherwise false.
 */
func EventFire(context EventContext) bool {
	eventMu.Lock()
	if !isInitialized || context.Type <= 0 || context.Type >= MAX_EVENT_CODE {
		eventMu.Unlock()
		return false
	}
	events := append([]registeredEvent(nil), eventState.registered[context.Type]...)
	eventMu.Unlock()

	for _, e := range events {
		if e.callback(context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
