// Package stream accumulates assistant output as it arrives and prepares it
// for display. While a response is still streaming, the trailing characters
// carry a shimmer annotation the renderer turns into a moving brightness
// wave; once the response completes the annotation disappears and the text
// renders plainly.
package stream

import "github.com/loomline/loomline/pkg/textwidth"

// Level is a display brightness step for one shimmered character.
type Level int

const (
	LevelDim Level = iota
	LevelLow
	LevelNormal
	LevelHigh
	LevelBright
)

// shimmerWindow is how many trailing characters shimmer while streaming.
const shimmerWindow = 8

// frameCount is the number of animation frames before the wave repeats.
const frameCount = 8

// shimmerPattern is one period of the brightness wave. Rotating it by the
// frame index moves the bright crest across the window.
var shimmerPattern = [frameCount]Level{
	LevelDim, LevelLow, LevelNormal, LevelHigh,
	LevelBright, LevelHigh, LevelNormal, LevelLow,
}

// DisplayLine is one wrapped line of streamed text plus its shimmer
// annotation. ShimmerStart is the rune index where the shimmer window
// begins on this line, or -1 when the line has no shimmered runes.
// WindowOffset is the position within the eight-slot window of the first
// shimmered rune on this line, so rune ShimmerStart+k renders at
// Brightness[WindowOffset+k].
type DisplayLine struct {
	Text         string
	ShimmerStart int
	WindowOffset int
	Brightness   [shimmerWindow]Level
}

// Buffer collects streamed text chunks. It is single-owner state; the
// caller drives Append, Tick and Complete from one goroutine.
type Buffer struct {
	content   string
	completed bool
	frame     int
}

// NewBuffer returns an empty streaming buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a chunk of streamed text.
func (b *Buffer) Append(chunk string) {
	if b.completed {
		return
	}
	b.content += chunk
}

// Complete marks the stream finished. Later Append calls are ignored and
// DisplayLines stops emitting shimmer annotations.
func (b *Buffer) Complete() {
	b.completed = true
}

// Completed reports whether the stream has finished.
func (b *Buffer) Completed() bool {
	return b.completed
}

// Content returns the accumulated text.
func (b *Buffer) Content() string {
	return b.content
}

// Tick advances the shimmer animation one frame. The frame freezes once
// the stream completes so redraws stay stable.
func (b *Buffer) Tick() {
	if b.completed {
		return
	}
	b.frame = (b.frame + 1) % frameCount
}

// Frame returns the current animation frame, mainly for tests.
func (b *Buffer) Frame() int {
	return b.frame
}

// Clear resets the buffer for the next response.
func (b *Buffer) Clear() {
	b.content = ""
	b.completed = false
	b.frame = 0
}

// levels returns the brightness wave for the current frame. Position i of
// the window shows pattern[(i+frame) mod 8].
func (b *Buffer) levels() [shimmerWindow]Level {
	var out [shimmerWindow]Level
	for i := range out {
		out[i] = shimmerPattern[(i+b.frame)%frameCount]
	}
	return out
}

// DisplayLines wraps the buffered text to maxWidth and annotates the
// trailing shimmer window. Newlines never count toward the window; the
// last eight visible runes shimmer even when they span wrapped lines.
func (b *Buffer) DisplayLines(maxWidth int) []DisplayLine {
	wrapped := textwidth.WrapTextWithANSI(b.content, maxWidth)
	if wrapped == nil {
		return nil
	}

	out := make([]DisplayLine, len(wrapped))
	for i, line := range wrapped {
		out[i] = DisplayLine{Text: line, ShimmerStart: -1}
	}
	if b.completed || b.content == "" {
		return out
	}

	levels := b.levels()
	// Walk lines back to front handing out shimmer positions until the
	// window is spent. The last rune always sits at window slot 7 so the
	// wave crest stays anchored to the live edge.
	end := shimmerWindow
	for i := len(out) - 1; i >= 0 && end > 0; i-- {
		runes := []rune(out[i].Text)
		n := len(runes)
		if n == 0 {
			continue
		}
		take := end
		if take > n {
			take = n
		}
		out[i].ShimmerStart = n - take
		out[i].WindowOffset = end - take
		out[i].Brightness = levels
		end -= take
	}
	return out
}
