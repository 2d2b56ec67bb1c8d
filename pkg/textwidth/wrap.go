package textwidth

import "strings"

// SliceByColumn returns the substring of text spanning visible columns
// [startCol, endCol). Escape sequences seen before the visible region are
// buffered and emitted once at the point the region begins, so a slice taken
// out of context still carries its active styling. Sequences inside the
// region pass through unchanged. A wide cluster straddling either boundary is
// excluded rather than split.
func SliceByColumn(text string, startCol, endCol int) string {
	if endCol <= startCol {
		return ""
	}
	var out strings.Builder
	var pending strings.Builder
	flushed := false
	col := 0

	for i := 0; i < len(text); {
		if text[i] == esc {
			seq := ClassifySequence([]byte(text[i:]))
			if seq.Kind == SeqIncomplete {
				break
			}
			raw := text[i : i+seq.Length]
			if col < startCol {
				pending.WriteString(raw)
			} else {
				out.WriteString(raw)
			}
			i += seq.Length
			continue
		}

		size, w := nextCluster(text, i)
		if col+w > endCol {
			break
		}
		if col >= startCol {
			if !flushed {
				out.WriteString(pending.String())
				flushed = true
			}
			out.WriteString(text[i : i+size])
		}
		col += w
		i += size
	}
	return out.String()
}

// WrapTextWithANSI greedily wraps styled text to maxWidth columns. Explicit
// newlines always hard-break. The most recent non-reset SGR sequence is
// re-emitted at the start of every continuation line so styling survives the
// wrap; an SGR reset clears it. maxWidth <= 0 yields no lines.
func WrapTextWithANSI(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	activeSGR := ""

	startLine := func() {
		line.Reset()
		lineWidth = 0
		if activeSGR != "" {
			line.WriteString(activeSGR)
		}
	}
	pushLine := func() {
		lines = append(lines, line.String())
		startLine()
	}

	for i := 0; i < len(text); {
		if text[i] == esc {
			seq := ClassifySequence([]byte(text[i:]))
			if seq.Kind == SeqIncomplete {
				break
			}
			raw := text[i : i+seq.Length]
			if isSGR([]byte(raw)) {
				if isSGRReset([]byte(raw)) {
					activeSGR = ""
				} else {
					activeSGR = raw
				}
			}
			line.WriteString(raw)
			i += seq.Length
			continue
		}
		if text[i] == '\n' {
			pushLine()
			i++
			continue
		}

		size, w := nextCluster(text, i)
		if lineWidth+w > maxWidth && lineWidth > 0 {
			pushLine()
		}
		line.WriteString(text[i : i+size])
		lineWidth += w
		i += size
	}
	lines = append(lines, line.String())
	return lines
}
