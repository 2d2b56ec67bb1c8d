// Package textwidth measures and manipulates terminal text by visible column
// width rather than byte or rune count.
//
// The package understands ANSI escape sequences (CSI, OSC, DCS, APC, SS3) so
// that styled text can be sliced and word-wrapped without corrupting active
// styling, and it computes column widths with a deliberately small, fixed set
// of Unicode ranges covering East-Asian wide characters, emoji clusters and
// combining marks. Downstream layout math depends on these exact tables, so
// they must not be swapped for a full Unicode width library.
package textwidth
