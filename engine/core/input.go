package core

import "sync"

// Key code definitions
type KeyCode uint16

const (
	KEY_UNKNOWN KeyCode = 0x00
	KEY_ENTER   KeyCode = 0x0D
	KEY_ESCAPE  KeyCode = 0x1B
	KEY_SPACE   KeyCode = 0x20
	KEY_A       KeyCode = 0x41
	KEY_B       KeyCode = 0x42
	KEY_C       KeyCode = 0x43
	KEY_D       KeyCode = 0x44
	KEY_E       KeyCode = 0x45
	KEY_F       KeyCode = 0x46
	KEY_G       KeyCode = 0x47
	KEY_H       KeyCode = 0x48
	KEY_I       KeyCode = 0x49
	KEY_J       KeyCode = 0x4A
	KEY_K       KeyCode = 0x4B
	KEY_L       KeyCode = 0x4C
	KEY_M       KeyCode = 0x4D
	KEY_N       KeyCode = 0x4E
	KEY_O       KeyCode = 0x4F
	KEY_P       KeyCode = 0x50
	KEY_Q       KeyCode = 0x51
	KEY_R       KeyCode = 0x52
	KEY_S       KeyCode = 0x53
	KEY_T       KeyCode = 0x54
	KEY_U       KeyCode = 0x55
	KEY_V       KeyCode = 0x56
	KEY_W       KeyCode = 0x57
	KEY_X       KeyCode = 0x58
	KEY_Y       KeyCode = 0x59
	KEY_Z       KeyCode = 0x5A

	KEYS_MAX_KEYS KeyCode = 0xFF
)

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS + 1]bool
}

// Input state structure that holds current and previous keyboard states
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
}

var inputMutex sync.Mutex
var inputState *InputState = nil

func InputInitialize() error {
	inputMutex.Lock()
	defer inputMutex.Unlock()

	inputState = &InputState{}
	LogDebug("Input subsystem initialized.")
	return nil
}

func InputShutdown() error {
	inputMutex.Lock()
	defer inputMutex.Unlock()

	inputState = nil
	return nil
}

func InputUpdate(deltaTime float64) error {
	inputMutex.Lock()
	defer inputMutex.Unlock()

	if inputState == nil {
		return nil
	}
	// Copy current states to previous states.
	inputState.KeyboardPrevious = inputState.KeyboardCurrent
	return nil
}

// InputProcessKey records a key transition and fires the matching key event
// when the state actually changed.
func InputProcessKey(key KeyCode, pressed bool) {
	inputMutex.Lock()
	if inputState == nil || key > KEYS_MAX_KEYS {
		inputMutex.Unlock()
		return
	}
	changed := inputState.KeyboardCurrent.Keys[key] != pressed
	inputState.KeyboardCurrent.Keys[key] = pressed
	inputMutex.Unlock()

	if !changed {
		return
	}
	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	EventFire(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key},
	})
}

func InputIsKeyDown(key KeyCode) bool {
	inputMutex.Lock()
	defer inputMutex.Unlock()

	if inputState == nil || key > KEYS_MAX_KEYS {
		return false
	}
	return inputState.KeyboardCurrent.Keys[key]
}

func InputWasKeyDown(key KeyCode) bool {
	inputMutex.Lock()
	defer inputMutex.Unlock()

	if inputState == nil || key > KEYS_MAX_KEYS {
		return false
	}
	return inputState.KeyboardPrevious.Keys[key]
}
