// Package editor implements the multi-line input editor used by the chat
// surface: cursor motion, kill ring, coalescing undo and input history.
//
// The buffer is a slice of UTF-8 lines with a (line, byte offset) cursor. All
// bounds violations are clamped, never surfaced as errors, and horizontal
// motion is grapheme aware: the cursor only ever rests on a UTF-8 lead byte
// or at end of line.
package editor

import "strings"

// Config sizes the editor's internal collections. Zero values select the
// package defaults.
type Config struct {
	UndoDepth        int
	KillRingCapacity int
	HistoryCapacity  int
}

// Editor owns a line buffer plus the undo stack, kill ring and input history
// attached to it. It is strictly single-threaded.
type Editor struct {
	lines   []string
	curLine int
	curCol  int

	undo    *UndoStack
	kill    *KillRing
	history *InputHistory

	// preYank remembers the buffer state right before the last yank so
	// YankPop can swap the yanked text for an older ring entry.
	preYank *Snapshot
}

// New creates an empty editor with one empty line.
func New(cfg Config) *Editor {
	return &Editor{
		lines:   []string{""},
		undo:    NewUndoStack(cfg.UndoDepth),
		kill:    NewKillRing(cfg.KillRingCapacity),
		history: NewInputHistory(cfg.HistoryCapacity),
	}
}

// Text joins the buffer lines with newlines.
func (e *Editor) Text() string {
	return strings.Join(e.lines, "\n")
}

// SetText replaces the buffer content and resets the cursor to the origin.
// The buffer always keeps at least one (possibly empty) line.
func (e *Editor) SetText(s string) {
	e.lines = strings.Split(s, "\n")
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	e.curLine = 0
	e.curCol = 0
	e.endNonKill()
}

// Lines returns a copy of the buffer lines.
func (e *Editor) Lines() []string {
	return append([]string(nil), e.lines...)
}

// LineCount returns the number of buffer lines (always >= 1).
func (e *Editor) LineCount() int {
	return len(e.lines)
}

// Cursor returns the cursor as (line index, byte offset).
func (e *Editor) Cursor() (line, col int) {
	return e.curLine, e.curCol
}

// SetCursor clamps the given position into the buffer and snaps the column
// back onto a UTF-8 lead byte.
func (e *Editor) SetCursor(line, col int) {
	if line < 0 {
		line = 0
	}
	if line >= len(e.lines) {
		line = len(e.lines) - 1
	}
	e.curLine = line
	e.curCol = clampToCharBoundary(e.lines[line], col)
	e.endNonKill()
}

// snapshot deep-copies the buffer and cursor. Stored snapshots never alias
// the live line slice.
func (e *Editor) snapshot() Snapshot {
	return Snapshot{
		Lines:   append([]string(nil), e.lines...),
		CurLine: e.curLine,
		CurCol:  e.curCol,
	}
}

// restore replaces (never merges) the live buffer with a snapshot.
func (e *Editor) restore(s Snapshot) {
	e.lines = append([]string(nil), s.Lines...)
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	e.curLine = s.CurLine
	e.curCol = s.CurCol
	e.clampCursor()
}

func (e *Editor) clampCursor() {
	if e.curLine < 0 {
		e.curLine = 0
	}
	if e.curLine >= len(e.lines) {
		e.curLine = len(e.lines) - 1
	}
	e.curCol = clampToCharBoundary(e.lines[e.curLine], e.curCol)
}

// endNonKill marks any action that ends a kill run and invalidates yank
// rotation.
func (e *Editor) endNonKill() {
	e.kill.BreakAccumulation()
	e.preYank = nil
}

// --- Insertion ---

// InsertChar inserts a single byte at the cursor, snapshotting first when the
// coalescing policy calls for an undo boundary. A newline byte behaves like
// Newline.
func (e *Editor) InsertChar(b byte) {
	if b == '\n' {
		e.Newline()
		return
	}
	if e.undo.ShouldSnapshot(b) {
		e.undo.Push(e.snapshot())
	}
	line := e.lines[e.curLine]
	e.lines[e.curLine] = line[:e.curCol] + string(b) + line[e.curCol:]
	e.curCol++
	e.endNonKill()
}

// InsertText inserts a string at the cursor, splitting lines on embedded
// newlines. Bulk insertions always get their own undo boundary and never
// coalesce with surrounding typing.
func (e *Editor) InsertText(s string) {
	if s == "" {
		return
	}
	e.undo.Push(e.snapshot())
	e.undo.BreakCoalescing()
	e.insertRaw(s)
	e.endNonKill()
}

// insertRaw splices text into the buffer without touching undo state.
func (e *Editor) insertRaw(s string) {
	parts := strings.Split(s, "\n")
	line := e.lines[e.curLine]
	head, tail := line[:e.curCol], line[e.curCol:]
	if len(parts) == 1 {
		e.lines[e.curLine] = head + s + tail
		e.curCol += len(s)
		return
	}
	rebuilt := make([]string, 0, len(e.lines)+len(parts)-1)
	rebuilt = append(rebuilt, e.lines[:e.curLine]...)
	rebuilt = append(rebuilt, head+parts[0])
	rebuilt = append(rebuilt, parts[1:len(parts)-1]...)
	last := parts[len(parts)-1]
	rebuilt = append(rebuilt, last+tail)
	rebuilt = append(rebuilt, e.lines[e.curLine+1:]...)
	e.lines = rebuilt
	e.curLine += len(parts) - 1
	e.curCol = len(last)
}

// Newline splits the current line at the cursor.
func (e *Editor) Newline() {
	e.undo.Push(e.snapshot())
	e.undo.BreakCoalescing()
	line := e.lines[e.curLine]
	head, tail := line[:e.curCol], line[e.curCol:]
	rebuilt := make([]string, 0, len(e.lines)+1)
	rebuilt = append(rebuilt, e.lines[:e.curLine]...)
	rebuilt = append(rebuilt, head, tail)
	rebuilt = append(rebuilt, e.lines[e.curLine+1:]...)
	e.lines = rebuilt
	e.curLine++
	e.curCol = 0
	e.endNonKill()
}

// --- Deletion ---

// DeleteCharBackward removes the grapheme before the cursor, joining with the
// previous line at a line start. No-op at the buffer origin.
func (e *Editor) DeleteCharBackward() {
	if e.curCol == 0 && e.curLine == 0 {
		return
	}
	e.undo.Push(e.snapshot())
	e.undo.BreakCoalescing()
	if e.curCol == 0 {
		prev := e.lines[e.curLine-1]
		e.lines[e.curLine-1] = prev + e.lines[e.curLine]
		e.lines = append(e.lines[:e.curLine], e.lines[e.curLine+1:]...)
		e.curLine--
		e.curCol = len(prev)
	} else {
		line := e.lines[e.curLine]
		start := prevCharStart(line, e.curCol)
		e.lines[e.curLine] = line[:start] + line[e.curCol:]
		e.curCol = start
	}
	e.endNonKill()
}

// DeleteCharForward removes the grapheme under the cursor, joining with the
// next line at end of line. No-op at the buffer end.
func (e *Editor) DeleteCharForward() {
	line := e.lines[e.curLine]
	if e.curCol >= len(line) && e.curLine == len(e.lines)-1 {
		return
	}
	e.undo.Push(e.snapshot())
	e.undo.BreakCoalescing()
	if e.curCol >= len(line) {
		e.lines[e.curLine] = line + e.lines[e.curLine+1]
		e.lines = append(e.lines[:e.curLine+1], e.lines[e.curLine+2:]...)
	} else {
		end := nextCharEnd(line, e.curCol)
		e.lines[e.curLine] = line[:e.curCol] + line[end:]
	}
	e.endNonKill()
}

// --- Cursor motion ---

// MoveLeft steps one grapheme left, wrapping to the end of the previous line.
func (e *Editor) MoveLeft() {
	if e.curCol > 0 {
		e.curCol = prevCharStart(e.lines[e.curLine], e.curCol)
	} else if e.curLine > 0 {
		e.curLine--
		e.curCol = len(e.lines[e.curLine])
	}
	e.motionDone()
}

// MoveRight steps one grapheme right, wrapping to the start of the next line.
func (e *Editor) MoveRight() {
	line := e.lines[e.curLine]
	if e.curCol < len(line) {
		e.curCol = nextCharEnd(line, e.curCol)
	} else if e.curLine < len(e.lines)-1 {
		e.curLine++
		e.curCol = 0
	}
	e.motionDone()
}

// MoveUp moves to the previous line, keeping the byte column where possible.
func (e *Editor) MoveUp() {
	if e.curLine > 0 {
		e.curLine--
		e.curCol = clampToCharBoundary(e.lines[e.curLine], e.curCol)
	}
	e.motionDone()
}

// MoveDown moves to the next line, keeping the byte column where possible.
func (e *Editor) MoveDown() {
	if e.curLine < len(e.lines)-1 {
		e.curLine++
		e.curCol = clampToCharBoundary(e.lines[e.curLine], e.curCol)
	}
	e.motionDone()
}

// MoveLineStart moves to column zero.
func (e *Editor) MoveLineStart() {
	e.curCol = 0
	e.motionDone()
}

// MoveLineEnd moves past the last byte of the current line.
func (e *Editor) MoveLineEnd() {
	e.curCol = len(e.lines[e.curLine])
	e.motionDone()
}

// MoveToStart moves to the very beginning of the buffer.
func (e *Editor) MoveToStart() {
	e.curLine = 0
	e.curCol = 0
	e.motionDone()
}

// MoveToEnd moves past the last byte of the last line.
func (e *Editor) MoveToEnd() {
	e.curLine = len(e.lines) - 1
	e.curCol = len(e.lines[e.curLine])
	e.motionDone()
}

// MoveWordLeft moves to the start of the previous word, first skipping any
// run of whitespace. Word characters are [A-Za-z0-9_]; any other printable
// character forms its own run.
func (e *Editor) MoveWordLeft() {
	if e.curCol == 0 {
		if e.curLine > 0 {
			e.curLine--
			e.curCol = len(e.lines[e.curLine])
		}
		e.motionDone()
		return
	}
	e.curCol = wordLeftBoundary(e.lines[e.curLine], e.curCol)
	e.motionDone()
}

// MoveWordRight moves to the start of the next word.
func (e *Editor) MoveWordRight() {
	line := e.lines[e.curLine]
	if e.curCol >= len(line) {
		if e.curLine < len(e.lines)-1 {
			e.curLine++
			e.curCol = 0
		}
		e.motionDone()
		return
	}
	col := e.curCol
	if isWordByte(line[col]) {
		for col < len(line) && isWordByte(line[col]) {
			col++
		}
	} else if !isSpaceByte(line[col]) {
		for col < len(line) && !isWordByte(line[col]) && !isSpaceByte(line[col]) {
			col++
		}
	}
	for col < len(line) && isSpaceByte(line[col]) {
		col++
	}
	e.curCol = col
	e.motionDone()
}

func (e *Editor) motionDone() {
	e.undo.BreakCoalescing()
	e.endNonKill()
}

// --- Kill operations ---

// DeleteToLineEnd kills from the cursor to end of line; at end of line it
// kills the newline itself and joins with the next line.
func (e *Editor) DeleteToLineEnd() {
	e.preYank = nil
	line := e.lines[e.curLine]
	if e.curCol < len(line) {
		e.undo.Push(e.snapshot())
		e.undo.BreakCoalescing()
		e.kill.Add(line[e.curCol:], false)
		e.lines[e.curLine] = line[:e.curCol]
		return
	}
	if e.curLine < len(e.lines)-1 {
		e.undo.Push(e.snapshot())
		e.undo.BreakCoalescing()
		e.kill.Add("\n", false)
		e.lines[e.curLine] = line + e.lines[e.curLine+1]
		e.lines = append(e.lines[:e.curLine+1], e.lines[e.curLine+2:]...)
	}
}

// DeleteToLineStart kills from the start of the line to the cursor.
func (e *Editor) DeleteToLineStart() {
	if e.curCol == 0 {
		return
	}
	e.preYank = nil
	e.undo.Push(e.snapshot())
	e.undo.BreakCoalescing()
	line := e.lines[e.curLine]
	e.kill.Add(line[:e.curCol], true)
	e.lines[e.curLine] = line[e.curCol:]
	e.curCol = 0
}

// DeleteWordBackward kills from the start of the previous word to the cursor.
func (e *Editor) DeleteWordBackward() {
	if e.curCol == 0 {
		return
	}
	e.preYank = nil
	e.undo.Push(e.snapshot())
	e.undo.BreakCoalescing()
	line := e.lines[e.curLine]
	start := wordLeftBoundary(line, e.curCol)
	e.kill.Add(line[start:e.curCol], true)
	e.lines[e.curLine] = line[:start] + line[e.curCol:]
	e.curCol = start
}

// Yank inserts the most recent kill-ring entry at the cursor.
func (e *Editor) Yank() {
	text, ok := e.kill.Yank()
	if !ok {
		return
	}
	pre := e.snapshot()
	e.InsertText(text)
	e.preYank = &pre
}

// YankPop replaces the text inserted by the previous yank (or yank-pop) with
// the next older ring entry, wrapping to the newest after the oldest. No-op
// unless the previous action was a yank.
func (e *Editor) YankPop() {
	if e.preYank == nil {
		return
	}
	text, ok := e.kill.YankPop()
	if !ok {
		return
	}
	pre := *e.preYank
	e.restore(pre)
	e.insertRaw(text)
	e.kill.BreakAccumulation()
	e.preYank = &pre
}

// --- Undo / redo ---

// Undo restores the most recent snapshot. The replaced live state moves to
// the redo stack.
func (e *Editor) Undo() {
	if s, ok := e.undo.Undo(e.snapshot()); ok {
		e.restore(s)
	}
	e.kill.BreakAccumulation()
	e.preYank = nil
}

// Redo restores the most recently undone state.
func (e *Editor) Redo() {
	if s, ok := e.undo.Redo(e.snapshot()); ok {
		e.restore(s)
	}
	e.kill.BreakAccumulation()
	e.preYank = nil
}

// UndoDepth reports how many undo snapshots are stored.
func (e *Editor) UndoDepth() int {
	return e.undo.Depth()
}

// --- Input history ---

// Submit pushes the current buffer into the input history, clears the buffer
// and returns the submitted text.
func (e *Editor) Submit() string {
	text := e.Text()
	e.history.Push(text)
	e.SetText("")
	e.undo.BreakCoalescing()
	return text
}

// HistoryUp replaces the buffer with the previous history entry, saving the
// current buffer as a draft on first navigation.
func (e *Editor) HistoryUp() {
	if !e.history.Navigating() {
		e.history.SetDraft(e.Text())
	}
	if s, ok := e.history.Prev(); ok {
		e.replaceFromHistory(s)
	}
}

// HistoryDown replaces the buffer with the next history entry; past the
// newest entry it restores the saved draft (or clears the buffer).
func (e *Editor) HistoryDown() {
	if s, ok := e.history.Next(); ok {
		e.replaceFromHistory(s)
	}
}

func (e *Editor) replaceFromHistory(s string) {
	e.lines = strings.Split(s, "\n")
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	e.curLine = len(e.lines) - 1
	e.curCol = len(e.lines[e.curLine])
	e.endNonKill()
	e.undo.BreakCoalescing()
}

// History exposes the input history for hosts that persist or inspect it.
func (e *Editor) History() *InputHistory {
	return e.history
}

// KillRingLen reports the number of kill-ring entries.
func (e *Editor) KillRingLen() int {
	return e.kill.Len()
}

// --- Line joining ---

// JoinLines joins the current line with the following one, separated by a
// single space (vim J semantics). No-op on the last line.
func (e *Editor) JoinLines() {
	if e.curLine >= len(e.lines)-1 {
		return
	}
	e.undo.Push(e.snapshot())
	e.undo.BreakCoalescing()
	cur := e.lines[e.curLine]
	next := strings.TrimLeft(e.lines[e.curLine+1], " \t")
	joined := cur
	if cur != "" && next != "" {
		joined += " "
	}
	e.curCol = len(cur)
	joined += next
	e.lines[e.curLine] = joined
	e.lines = append(e.lines[:e.curLine+1], e.lines[e.curLine+2:]...)
	e.endNonKill()
}

// --- Byte/boundary helpers ---

func isContinuationByte(b byte) bool {
	return b&0xc0 == 0x80
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t'
}

// prevCharStart returns the offset of the lead byte of the character ending
// at col.
func prevCharStart(line string, col int) int {
	col--
	for col > 0 && isContinuationByte(line[col]) {
		col--
	}
	return col
}

// nextCharEnd returns the offset just past the character starting at col.
func nextCharEnd(line string, col int) int {
	col++
	for col < len(line) && isContinuationByte(line[col]) {
		col++
	}
	return col
}

// clampToCharBoundary clamps col into [0, len(line)] and moves it back onto
// a UTF-8 lead byte.
func clampToCharBoundary(line string, col int) int {
	if col < 0 {
		return 0
	}
	if col > len(line) {
		return len(line)
	}
	for col > 0 && col < len(line) && isContinuationByte(line[col]) {
		col--
	}
	return col
}

// wordLeftBoundary returns the offset of the start of the word run before
// col, skipping trailing whitespace first.
func wordLeftBoundary(line string, col int) int {
	for col > 0 && isSpaceByte(line[col-1]) {
		col--
	}
	if col == 0 {
		return 0
	}
	if isWordByte(line[col-1]) {
		for col > 0 && isWordByte(line[col-1]) {
			col--
		}
	} else {
		for col > 0 && !isWordByte(line[col-1]) && !isSpaceByte(line[col-1]) {
			col--
		}
	}
	return col
}
