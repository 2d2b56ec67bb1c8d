// Package vim implements a minimal modal key interpreter for the chat input
// editor. It is a pure state machine: keys go in, tagged actions come out,
// and the caller applies them to the editor. The controller never touches
// editor state itself, which keeps key-mapping policy testable in isolation.
package vim

// Mode is the current editing mode.
type Mode int

const (
	// ModeNormal interprets keys as commands.
	ModeNormal Mode = iota
	// ModeInsert passes keys through to the editor as text.
	ModeInsert
)

func (m Mode) String() string {
	if m == ModeNormal {
		return "NORMAL"
	}
	return "INSERT"
}

// ActionKind tags the command a normal-mode key resolved to.
type ActionKind int

const (
	// ActionUnhandled means the key mapped to nothing; callers ignore it.
	ActionUnhandled ActionKind = iota
	// ActionInsert enters insert mode at the cursor.
	ActionInsert
	// ActionAppend enters insert mode one position right of the cursor.
	ActionAppend
	// ActionMove moves the cursor in Dir.
	ActionMove
	// ActionDeleteChar deletes the character under the cursor.
	ActionDeleteChar
	// ActionDeleteToEnd deletes from the cursor to end of line.
	ActionDeleteToEnd
	// ActionDeleteWord deletes the word before the cursor.
	ActionDeleteWord
	// ActionUndo undoes the last edit.
	ActionUndo
	// ActionRedo redoes the last undone edit.
	ActionRedo
	// ActionYank pastes the most recent kill.
	ActionYank
	// ActionJoinLines joins the current line with the next.
	ActionJoinLines
	// ActionGotoFirst moves to the first line of the buffer.
	ActionGotoFirst
	// ActionGotoLast moves to the last line of the buffer.
	ActionGotoLast
	// ActionWordForward moves to the start of the next word.
	ActionWordForward
	// ActionWordBackward moves to the start of the previous word.
	ActionWordBackward
	// ActionEscape reports a bare escape; its meaning is the caller's call.
	ActionEscape
)

// Direction qualifies an ActionMove.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirLineStart
	DirLineEnd
)

// Action is the tagged result of interpreting one normal-mode key.
type Action struct {
	Kind ActionKind
	Dir  Direction
}

const escRune = 0x1b

// Controller tracks the mode plus a single pending-prefix flag. Only one
// two-key sequence exists (g then g), so one level of lookahead suffices.
type Controller struct {
	mode     Mode
	pendingG bool
}

// NewController creates a controller. Chat-style hosts usually start in
// insert mode; pass startInInsert=false for classic vim behavior.
func NewController(startInInsert bool) *Controller {
	mode := ModeNormal
	if startInInsert {
		mode = ModeInsert
	}
	return &Controller{mode: mode}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// EnterInsert switches to insert mode.
func (c *Controller) EnterInsert() {
	c.mode = ModeInsert
	c.pendingG = false
}

// EnterNormal switches to normal mode.
func (c *Controller) EnterNormal() {
	c.mode = ModeNormal
	c.pendingG = false
}

// ProcessNormal interprets one normal-mode key and returns the action the
// caller should apply. ctrl marks a control-modified key (the rune is the
// plain letter). Mode switches implied by the action (i, a, Escape) are
// applied to the controller's own state; everything else is left to the
// caller.
func (c *Controller) ProcessNormal(r rune, ctrl bool) Action {
	if c.pendingG {
		c.pendingG = false
		if !ctrl && r == 'g' {
			return Action{Kind: ActionGotoFirst}
		}
		// Both the prefix and this key are discarded.
		return Action{Kind: ActionUnhandled}
	}

	if ctrl {
		switch r {
		case 'r':
			return Action{Kind: ActionRedo}
		case 'w':
			return Action{Kind: ActionDeleteWord}
		}
		return Action{Kind: ActionUnhandled}
	}

	switch r {
	case escRune:
		return Action{Kind: ActionEscape}
	case 'i':
		c.mode = ModeInsert
		return Action{Kind: ActionInsert}
	case 'a':
		c.mode = ModeInsert
		return Action{Kind: ActionAppend}
	case 'h':
		return Action{Kind: ActionMove, Dir: DirLeft}
	case 'l':
		return Action{Kind: ActionMove, Dir: DirRight}
	case 'k':
		return Action{Kind: ActionMove, Dir: DirUp}
	case 'j':
		return Action{Kind: ActionMove, Dir: DirDown}
	case '0':
		return Action{Kind: ActionMove, Dir: DirLineStart}
	case '$':
		return Action{Kind: ActionMove, Dir: DirLineEnd}
	case 'w':
		return Action{Kind: ActionWordForward}
	case 'b':
		return Action{Kind: ActionWordBackward}
	case 'x':
		return Action{Kind: ActionDeleteChar}
	case 'D':
		return Action{Kind: ActionDeleteToEnd}
	case 'u':
		return Action{Kind: ActionUndo}
	case 'p':
		return Action{Kind: ActionYank}
	case 'J':
		return Action{Kind: ActionJoinLines}
	case 'G':
		return Action{Kind: ActionGotoLast}
	case 'g':
		c.pendingG = true
		return Action{Kind: ActionUnhandled}
	default:
		return Action{Kind: ActionUnhandled}
	}
}

// PendingPrefix reports whether a multi-key sequence is in flight; useful
// for status displays.
func (c *Controller) PendingPrefix() bool {
	return c.pendingG
}
