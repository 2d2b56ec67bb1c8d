package textwidth

import "strings"

// SeqKind identifies the class of an escape sequence found in a byte stream.
type SeqKind int

const (
	// SeqNone means the data does not start with an escape byte.
	SeqNone SeqKind = iota
	// SeqIncomplete means the sequence terminator has not arrived yet. Safe
	// to return for partially streamed data; callers should retry with more
	// bytes.
	SeqIncomplete
	// SeqCSI is a Control Sequence Introducer (ESC '[' ... final byte).
	SeqCSI
	// SeqOSC is an Operating System Command (ESC ']' ... BEL or ESC '\').
	SeqOSC
	// SeqDCS is a Device Control String (ESC 'P' ... BEL or ESC '\').
	SeqDCS
	// SeqAPC is an Application Program Command (ESC '_' ... BEL or ESC '\').
	SeqAPC
	// SeqSS3 is a Single Shift Three sequence (ESC 'O' <byte>), fixed length.
	SeqSS3
	// SeqSingle is any other two-byte ESC+<byte> pair.
	SeqSingle
)

// Sequence describes a classified escape sequence: its kind and the number of
// bytes it occupies, including the leading ESC.
type Sequence struct {
	Kind   SeqKind
	Length int
}

const (
	esc = 0x1b
	bel = 0x07
)

// ClassifySequence inspects data beginning at an escape byte and reports the
// sequence kind and byte length. Data that does not begin with ESC yields
// SeqNone with length zero. A sequence whose terminator is not present in the
// slice yields SeqIncomplete so streaming callers can wait for more input.
func ClassifySequence(data []byte) Sequence {
	if len(data) == 0 || data[0] != esc {
		return Sequence{Kind: SeqNone}
	}
	if len(data) < 2 {
		return Sequence{Kind: SeqIncomplete}
	}

	switch data[1] {
	case '[':
		// CSI terminates at the first byte in 0x40..0x7E.
		for i := 2; i < len(data); i++ {
			if data[i] >= 0x40 && data[i] <= 0x7e {
				return Sequence{Kind: SeqCSI, Length: i + 1}
			}
		}
		return Sequence{Kind: SeqIncomplete}
	case ']', 'P', '_':
		kind := SeqOSC
		switch data[1] {
		case 'P':
			kind = SeqDCS
		case '_':
			kind = SeqAPC
		}
		// String sequences terminate at BEL or the two-byte ST (ESC '\').
		for i := 2; i < len(data); i++ {
			if data[i] == bel {
				return Sequence{Kind: kind, Length: i + 1}
			}
			if data[i] == esc {
				if i+1 >= len(data) {
					return Sequence{Kind: SeqIncomplete}
				}
				if data[i+1] == '\\' {
					return Sequence{Kind: kind, Length: i + 2}
				}
			}
		}
		return Sequence{Kind: SeqIncomplete}
	case 'O':
		if len(data) < 3 {
			return Sequence{Kind: SeqIncomplete}
		}
		return Sequence{Kind: SeqSS3, Length: 3}
	default:
		return Sequence{Kind: SeqSingle, Length: 2}
	}
}

// StripANSI removes every recognized escape sequence from text, leaving only
// printable bytes. An unterminated trailing sequence is dropped entirely.
func StripANSI(text string) string {
	if !strings.ContainsRune(text, rune(esc)) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	data := []byte(text)
	for i := 0; i < len(data); {
		if data[i] == esc {
			seq := ClassifySequence(data[i:])
			switch seq.Kind {
			case SeqIncomplete:
				// Terminator never arrived; discard the remainder.
				return b.String()
			default:
				i += seq.Length
			}
			continue
		}
		b.WriteByte(data[i])
		i++
	}
	return b.String()
}

// isSGR reports whether seq (a complete escape sequence) is a CSI SGR
// ("select graphic rendition") sequence, i.e. ends in 'm'.
func isSGR(seq []byte) bool {
	return len(seq) >= 3 && seq[0] == esc && seq[1] == '[' && seq[len(seq)-1] == 'm'
}

// isSGRReset reports whether seq is an SGR reset: ESC[0m or ESC[m.
func isSGRReset(seq []byte) bool {
	if !isSGR(seq) {
		return false
	}
	body := seq[2 : len(seq)-1]
	return len(body) == 0 || (len(body) == 1 && body[0] == '0')
}
