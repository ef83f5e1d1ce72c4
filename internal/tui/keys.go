package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents an action triggered by a key press.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionQuit
	ActionToggleHelp
	ActionOpenSearch
	ActionSearchNext
	ActionSearchPrevious
	ActionRefresh
	ActionOpenEditor
	ActionFocusNext
	ActionFocusPrev
	ActionMoveUp
	ActionMoveDown
	ActionGoToTop
	ActionGoToBottom
	ActionHalfPageDown
	ActionHalfPageUp
	ActionSelect
	ActionToggleFold
	ActionBranchMenu
	ActionBack
	ActionAdjustLeftNarrower
	ActionAdjustLeftWider
)

// KeyHandler handles key input and maintains key buffer.
type KeyHandler struct {
	keyBuffer string
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// Handle processes a key message and returns the action with its count.
func (k *KeyHandler) Handle(msg tea.KeyMsg) (KeyAction, int) {
	key := msg.String()

	// A leading zero is not a count.
	if isNumericKey(key) && (key != "0" || k.keyBuffer != "") {
		if len(k.keyBuffer) < 5 {
			k.keyBuffer += key
		}
		return ActionNone, 0
	}

	count := 1
	if k.keyBuffer != "" {
		if n, err := strconv.Atoi(k.keyBuffer); err == nil && n > 0 {
			count = n
		}
	}
	k.keyBuffer = ""

	return keyToAction(key), count
}

// KeyBuffer returns the current key buffer.
func (k *KeyHandler) KeyBuffer() string {
	return k.keyBuffer
}

// ClearBuffer clears the key buffer.
func (k *KeyHandler) ClearBuffer() {
	k.keyBuffer = ""
}

func keyToAction(key string) KeyAction {
	switch key {
	case "ctrl+c", "q":
		return ActionQuit
	case "?":
		return ActionToggleHelp
	case "/":
		return ActionOpenSearch
	case "n":
		return ActionSearchNext
	case "N":
		return ActionSearchPrevious
	case "r":
		return ActionRefresh
	case "e":
		return ActionOpenEditor
	case "tab":
		return ActionFocusNext
	case "shift+tab":
		return ActionFocusPrev
	case "j", "down":
		return ActionMoveDown
	case "k", "up":
		return ActionMoveUp
	case "g", "home":
		return ActionGoToTop
	case "G", "end":
		return ActionGoToBottom
	case "ctrl+d", "pgdown":
		return ActionHalfPageDown
	case "ctrl+u", "pgup":
		return ActionHalfPageUp
	case "enter":
		return ActionSelect
	case " ":
		return ActionToggleFold
	case "b":
		return ActionBranchMenu
	case "esc":
		return ActionBack
	case "<", "H":
		return ActionAdjustLeftNarrower
	case ">", "L":
		return ActionAdjustLeftWider
	default:
		return ActionNone
	}
}

func isNumericKey(key string) bool {
	return len(key) == 1 && key >= "0" && key <= "9"
}
