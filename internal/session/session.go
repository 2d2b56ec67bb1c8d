// Package session wires the editing engine together for a host interface.
// A Session owns the editor buffer, the modal key controller, the
// streaming response buffer and the width cache, and routes decoded key
// events to them. It contains no drawing code; the TUI asks the session
// for layout and state and renders the answer.
package session

import (
	"context"

	"github.com/loomline/loomline/internal/editor"
	"github.com/loomline/loomline/internal/stream"
	"github.com/loomline/loomline/internal/vim"
	"github.com/loomline/loomline/pkg/textwidth"
)

// KeyKind identifies a decoded key event.
type KeyKind int

const (
	// KeyRune is a printable character carried in Key.Rune.
	KeyRune KeyKind = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyTab
	KeyEscape
)

// Key is one decoded key event. The host terminal layer translates its
// own key representation into this before calling HandleKey.
type Key struct {
	Kind KeyKind
	Rune rune
	Ctrl bool
	Alt  bool
}

// Session is the single-owner interaction state for one input box plus
// one streaming response. All methods must be called from one goroutine.
type Session struct {
	opts       Options
	ed         *editor.Editor
	vim        *vim.Controller
	stream     *stream.Buffer
	widthCache *textwidth.Cache
	logger     Logger
	metrics    Metrics
}

// New creates a session with the given options.
func New(opts Options) *Session {
	opts.setDefaults()
	s := &Session{
		opts: opts,
		ed: editor.New(editor.Config{
			UndoDepth:        opts.UndoDepth,
			KillRingCapacity: opts.KillRingCapacity,
			HistoryCapacity:  opts.HistorySize,
		}),
		stream:     stream.NewBuffer(),
		widthCache: textwidth.NewCache(),
		logger:     opts.Logger,
		metrics:    opts.Metrics,
	}
	if opts.VimMode {
		s.vim = vim.NewController(!opts.StartInNormal)
	}
	return s
}

// Editor exposes the underlying buffer for rendering.
func (s *Session) Editor() *editor.Editor {
	return s.ed
}

// VimEnabled reports whether modal key handling is active.
func (s *Session) VimEnabled() bool {
	return s.vim != nil
}

// Mode names the current input mode for status display: "insert",
// "normal", or "" when vim mode is off.
func (s *Session) Mode() string {
	if s.vim == nil {
		return ""
	}
	if s.vim.Mode() == vim.ModeNormal {
		return "normal"
	}
	return "insert"
}

// HandleKey routes one decoded key event. It reports whether the session
// consumed the key; an unconsumed key (plain Enter, unknown chords) is
// the host's to interpret.
func (s *Session) HandleKey(ctx context.Context, key Key) bool {
	s.metrics.RecordKeystroke(s.modeLabel())

	if s.vim != nil && s.vim.Mode() == vim.ModeNormal {
		return s.handleNormalKey(ctx, key)
	}
	return s.handleInsertKey(ctx, key)
}

func (s *Session) modeLabel() string {
	if m := s.Mode(); m != "" {
		return m
	}
	return "plain"
}

// handleNormalKey translates a key event into a vim command rune and
// applies the resulting action.
func (s *Session) handleNormalKey(ctx context.Context, key Key) bool {
	var r rune
	switch key.Kind {
	case KeyRune:
		r = key.Rune
	case KeyEscape:
		r = 0x1b
	case KeyLeft:
		r = 'h'
	case KeyRight:
		r = 'l'
	case KeyUp:
		r = 'k'
	case KeyDown:
		r = 'j'
	case KeyHome:
		r = '0'
	case KeyEnd:
		r = '$'
	default:
		return false
	}

	action := s.vim.ProcessNormal(r, key.Ctrl)
	if action.Kind == vim.ActionUnhandled {
		// A pending prefix consumed the key even without an action.
		return s.vim.PendingPrefix() || key.Kind == KeyRune
	}
	s.applyAction(ctx, action)
	return true
}

func (s *Session) applyAction(ctx context.Context, action vim.Action) {
	switch action.Kind {
	case vim.ActionInsert:
		// Mode already switched by the controller.
	case vim.ActionAppend:
		s.ed.MoveRight()
	case vim.ActionMove:
		switch action.Dir {
		case vim.DirLeft:
			s.ed.MoveLeft()
		case vim.DirRight:
			s.ed.MoveRight()
		case vim.DirUp:
			s.ed.MoveUp()
		case vim.DirDown:
			s.ed.MoveDown()
		case vim.DirLineStart:
			s.ed.MoveLineStart()
		case vim.DirLineEnd:
			s.ed.MoveLineEnd()
		}
	case vim.ActionDeleteChar:
		s.ed.DeleteCharForward()
		s.metrics.RecordEdit("delete")
	case vim.ActionDeleteToEnd:
		s.ed.DeleteToLineEnd()
		s.metrics.RecordEdit("kill")
	case vim.ActionDeleteWord:
		s.ed.DeleteWordBackward()
		s.metrics.RecordEdit("kill")
	case vim.ActionUndo:
		s.ed.Undo()
		s.metrics.RecordUndo(false)
	case vim.ActionRedo:
		s.ed.Redo()
		s.metrics.RecordUndo(true)
	case vim.ActionYank:
		s.ed.Yank()
		s.metrics.RecordEdit("yank")
	case vim.ActionJoinLines:
		s.ed.JoinLines()
		s.metrics.RecordEdit("join")
	case vim.ActionGotoFirst:
		s.ed.MoveToStart()
	case vim.ActionGotoLast:
		s.ed.MoveToEnd()
	case vim.ActionWordForward:
		s.ed.MoveWordRight()
	case vim.ActionWordBackward:
		s.ed.MoveWordLeft()
	case vim.ActionEscape:
		// Already in normal mode; nothing to leave.
	}
	s.logger.Debug(ctx, "applied normal-mode action", Field("action", int(action.Kind)))
}

// handleInsertKey applies chat-style bindings: plain editing keys, the
// emacs control chords, and history navigation.
func (s *Session) handleInsertKey(ctx context.Context, key Key) bool {
	if key.Ctrl {
		return s.handleControlChord(ctx, key)
	}

	switch key.Kind {
	case KeyEscape:
		if s.vim != nil {
			s.vim.EnterNormal()
			// Leaving insert steps the cursor back one place within the
			// line, matching modal editor convention.
			if _, col := s.ed.Cursor(); col > 0 {
				s.ed.MoveLeft()
			}
			return true
		}
		return false
	case KeyRune:
		if key.Alt {
			return s.handleAltChord(ctx, key)
		}
		s.insertRune(key.Rune)
		return true
	case KeyEnter:
		if key.Alt {
			// Plain Enter submits; the host owns that. Alt+Enter makes
			// a soft line break.
			s.ed.Newline()
			return true
		}
		return false
	case KeyTab:
		s.ed.InsertChar('\t')
		return true
	case KeyBackspace:
		s.ed.DeleteCharBackward()
		s.metrics.RecordEdit("delete")
		return true
	case KeyDelete:
		s.ed.DeleteCharForward()
		s.metrics.RecordEdit("delete")
		return true
	case KeyLeft:
		s.ed.MoveLeft()
		return true
	case KeyRight:
		s.ed.MoveRight()
		return true
	case KeyUp:
		return s.historyUp()
	case KeyDown:
		return s.historyDown()
	case KeyHome:
		s.ed.MoveLineStart()
		return true
	case KeyEnd:
		s.ed.MoveLineEnd()
		return true
	}
	return false
}

func (s *Session) handleControlChord(ctx context.Context, key Key) bool {
	switch key.Rune {
	case 'a':
		s.ed.MoveLineStart()
	case 'e':
		s.ed.MoveLineEnd()
	case 'k':
		s.ed.DeleteToLineEnd()
		s.metrics.RecordEdit("kill")
	case 'u':
		s.ed.DeleteToLineStart()
		s.metrics.RecordEdit("kill")
	case 'w':
		s.ed.DeleteWordBackward()
		s.metrics.RecordEdit("kill")
	case 'y':
		s.ed.Yank()
		s.metrics.RecordEdit("yank")
	case 'z':
		s.ed.Undo()
		s.metrics.RecordUndo(false)
	case 'p':
		return s.historyUp()
	case 'n':
		return s.historyDown()
	default:
		return false
	}
	s.logger.Debug(ctx, "applied control chord", Field("key", string(key.Rune)))
	return true
}

func (s *Session) handleAltChord(_ context.Context, key Key) bool {
	switch key.Rune {
	case 'y':
		s.ed.YankPop()
		s.metrics.RecordEdit("yank")
	case 'b':
		s.ed.MoveWordLeft()
	case 'f':
		s.ed.MoveWordRight()
	default:
		return false
	}
	return true
}

func (s *Session) historyUp() bool {
	if s.ed.LineCount() > 1 && !s.ed.History().Navigating() {
		// Multi-line drafts reserve the arrow for cursor movement.
		line, _ := s.ed.Cursor()
		if line > 0 {
			s.ed.MoveUp()
			return true
		}
	}
	s.ed.HistoryUp()
	s.metrics.RecordHistoryNav()
	return true
}

func (s *Session) historyDown() bool {
	if s.ed.LineCount() > 1 && !s.ed.History().Navigating() {
		line, _ := s.ed.Cursor()
		if line < s.ed.LineCount()-1 {
			s.ed.MoveDown()
			return true
		}
	}
	s.ed.HistoryDown()
	s.metrics.RecordHistoryNav()
	return true
}

func (s *Session) insertRune(r rune) {
	if r < 0x80 {
		s.ed.InsertChar(byte(r))
	} else {
		s.ed.InsertText(string(r))
	}
	s.metrics.RecordEdit("insert")
}

// HandlePaste inserts pasted text as one undoable unit.
func (s *Session) HandlePaste(ctx context.Context, text string) {
	if text == "" {
		return
	}
	s.ed.InsertText(text)
	s.metrics.RecordEdit("paste")
	s.logger.Debug(ctx, "pasted text", Field("bytes", len(text)))
}

// Submit takes the buffer content, pushes it to history and clears the
// editor. It returns the submitted text, which may be empty.
func (s *Session) Submit(ctx context.Context) string {
	text := s.ed.Submit()
	if text != "" {
		s.metrics.RecordSubmit(len(text))
		s.logger.Info(ctx, "input submitted", Field("bytes", len(text)))
	}
	if s.vim != nil {
		s.vim.EnterInsert()
	}
	return text
}

// HandleChunk appends a piece of the streaming response.
func (s *Session) HandleChunk(_ context.Context, chunk string) {
	s.stream.Append(chunk)
}

// FinishStream marks the streaming response complete.
func (s *Session) FinishStream(ctx context.Context) {
	s.stream.Complete()
	s.logger.Debug(ctx, "stream completed", Field("bytes", len(s.stream.Content())))
}

// ClearStream resets the streaming buffer for the next response.
func (s *Session) ClearStream() {
	s.stream.Clear()
}

// TickAnimation advances the shimmer animation one frame.
func (s *Session) TickAnimation() {
	s.stream.Tick()
}

// Streaming reports whether a response is mid-stream.
func (s *Session) Streaming() bool {
	return s.stream.Content() != "" && !s.stream.Completed()
}

// StreamContent returns the accumulated response text.
func (s *Session) StreamContent() string {
	return s.stream.Content()
}

// StreamLines wraps the streaming response for display with shimmer
// annotations on the live tail.
func (s *Session) StreamLines(width int) []stream.DisplayLine {
	return s.stream.DisplayLines(width)
}

// MeasureWidth returns the visible column width of styled text, cached.
func (s *Session) MeasureWidth(text string) int {
	return s.widthCache.VisibleWidth(text)
}

// WidthCacheStats exposes cache effectiveness counters.
func (s *Session) WidthCacheStats() (hits, misses uint64) {
	return s.widthCache.Stats()
}
