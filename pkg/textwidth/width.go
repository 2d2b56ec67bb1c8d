package textwidth

// TabWidth is the fixed number of columns a tab occupies. The value is an
// intentional approximation shared with the wrap and slice routines.
const TabWidth = 3

type runeRange struct {
	lo, hi rune
}

// Zero-width code points: combining marks, variation selectors and the
// zero-width/joiner block. These attach to the preceding cluster.
var zeroWidthRanges = []runeRange{
	{0x0300, 0x036f}, // combining diacritical marks
	{0x1ab0, 0x1aff}, // combining diacritical marks extended
	{0x1dc0, 0x1dff}, // combining diacritical marks supplement
	{0x200b, 0x200f}, // zero-width space/joiners, directional marks
	{0x20d0, 0x20ff}, // combining marks for symbols
	{0xfe00, 0xfe0f}, // variation selectors
	{0xfe20, 0xfe2f}, // combining half marks
}

// Emoji code points rendered two columns wide. Approximate block set, not a
// full UTS #51 table.
var emojiRanges = []runeRange{
	{0x2600, 0x26ff},   // miscellaneous symbols
	{0x2700, 0x27bf},   // dingbats
	{0x1f300, 0x1f5ff}, // misc symbols and pictographs
	{0x1f600, 0x1f64f}, // emoticons
	{0x1f680, 0x1f6ff}, // transport and map symbols
	{0x1f900, 0x1f9ff}, // supplemental symbols and pictographs
	{0x1fa70, 0x1faff}, // symbols and pictographs extended-A
}

// East-Asian Wide and Fullwidth code points rendered two columns wide.
var wideRanges = []runeRange{
	{0x1100, 0x115f},   // hangul jamo
	{0x2e80, 0x303e},   // CJK radicals, kana punctuation
	{0x3041, 0x33ff},   // hiragana, katakana, CJK symbols
	{0x3400, 0x4dbf},   // CJK extension A
	{0x4e00, 0x9fff},   // CJK unified ideographs
	{0xa000, 0xa4cf},   // yi syllables
	{0xac00, 0xd7a3},   // hangul syllables
	{0xf900, 0xfaff},   // CJK compatibility ideographs
	{0xfe30, 0xfe4f},   // CJK compatibility forms
	{0xff00, 0xff60},   // fullwidth forms
	{0xffe0, 0xffe6},   // fullwidth signs
	{0x20000, 0x2fffd}, // CJK extension B and beyond
	{0x30000, 0x3fffd}, // CJK extension G
}

const (
	zwj        = 0x200d
	skinToneLo = 0x1f3fb
	skinToneHi = 0x1f3ff
	asciiSpace = 0x20
	asciiTilde = 0x7e
)

func inRanges(r rune, ranges []runeRange) bool {
	for _, rr := range ranges {
		if r >= rr.lo && r <= rr.hi {
			return true
		}
	}
	return false
}

func isZeroWidth(r rune) bool { return inRanges(r, zeroWidthRanges) }
func isEmoji(r rune) bool     { return inRanges(r, emojiRanges) }
func isWide(r rune) bool      { return inRanges(r, wideRanges) }
func isSkinTone(r rune) bool  { return r >= skinToneLo && r <= skinToneHi }

// decodeRune decodes one UTF-8 code point by hand. It returns size 0 for a
// malformed or truncated sequence; callers must then skip exactly one byte so
// the scan always makes forward progress.
func decodeRune(s string, i int) (rune, int) {
	b := s[i]
	switch {
	case b < 0x80:
		return rune(b), 1
	case b&0xe0 == 0xc0:
		if i+1 >= len(s) || s[i+1]&0xc0 != 0x80 {
			return 0, 0
		}
		return rune(b&0x1f)<<6 | rune(s[i+1]&0x3f), 2
	case b&0xf0 == 0xe0:
		if i+2 >= len(s) || s[i+1]&0xc0 != 0x80 || s[i+2]&0xc0 != 0x80 {
			return 0, 0
		}
		return rune(b&0x0f)<<12 | rune(s[i+1]&0x3f)<<6 | rune(s[i+2]&0x3f), 3
	case b&0xf8 == 0xf0:
		if i+3 >= len(s) || s[i+1]&0xc0 != 0x80 || s[i+2]&0xc0 != 0x80 || s[i+3]&0xc0 != 0x80 {
			return 0, 0
		}
		return rune(b&0x07)<<18 | rune(s[i+1]&0x3f)<<12 | rune(s[i+2]&0x3f)<<6 | rune(s[i+3]&0x3f), 4
	default:
		// Stray continuation byte or invalid lead byte.
		return 0, 0
	}
}

// runeWidth returns the column width of a single decoded code point. Cluster
// composition (emoji modifiers, ZWJ links) is handled by nextCluster.
func runeWidth(r rune) int {
	switch {
	case r == '\t':
		return TabWidth
	case r < asciiSpace || r == 0x7f:
		return 0
	case r <= asciiTilde:
		return 1
	case isZeroWidth(r):
		return 0
	case isEmoji(r):
		return 2
	case isWide(r):
		return 2
	default:
		return 1
	}
}

// nextCluster returns the byte length and column width of the display cluster
// starting at s[i]. A cluster is one base code point plus any directly
// attached zero-width marks; an emoji base additionally absorbs skin-tone
// modifiers and ZWJ-linked emoji continuations at zero extra width.
func nextCluster(s string, i int) (size, width int) {
	r, sz := decodeRune(s, i)
	if sz == 0 {
		return 1, 0
	}
	width = runeWidth(r)
	size = sz
	emojiBase := isEmoji(r)

	for i+size < len(s) {
		r2, sz2 := decodeRune(s, i+size)
		if sz2 == 0 {
			break
		}
		if isZeroWidth(r2) && r2 != zwj {
			size += sz2
			continue
		}
		if emojiBase && isSkinTone(r2) {
			size += sz2
			continue
		}
		if emojiBase && r2 == zwj {
			// A ZWJ link joins the following emoji into the same cluster.
			r3, sz3 := decodeRune(s, i+size+sz2)
			if sz3 > 0 && isEmoji(r3) {
				size += sz2 + sz3
				continue
			}
			size += sz2
		}
		break
	}
	return size, width
}

// NextCluster returns the byte length and column width of the display
// cluster starting at text[i]. Renderers use it to walk a string one
// drawable unit at a time. A malformed byte reports size 1, width 0.
func NextCluster(text string, i int) (size, width int) {
	return nextCluster(text, i)
}

// CalculateWidth returns the number of terminal columns the text occupies.
// The input is treated as raw text; escape sequences are not recognized here
// (use VisibleWidth or StripANSI first for styled input). Malformed UTF-8
// bytes are skipped one at a time.
func CalculateWidth(text string) int {
	total := 0
	for i := 0; i < len(text); {
		size, w := nextCluster(text, i)
		total += w
		i += size
	}
	return total
}
