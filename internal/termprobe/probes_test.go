package termprobe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProbeDetectsTrueColor(t *testing.T) {
	t.Parallel()

	ctx := NewContextWithEnv(map[string]string{
		"TERM":      "xterm-256color",
		"COLORTERM": "truecolor",
	})
	result := Run(ctx)
	require.Equal(t, ColorDepthTrueColor, result.ColorDepth)
	require.Contains(t, FormatSummary(result), "colors: truecolor")
}

func TestProbeFallsBackTo256Color(t *testing.T) {
	t.Parallel()

	ctx := NewContextWithEnv(map[string]string{"TERM": "screen-256color"})
	result := Run(ctx)
	require.Equal(t, ColorDepth256, result.ColorDepth)
}

func TestProbeNoColorWinsOverEverything(t *testing.T) {
	t.Parallel()

	ctx := NewContextWithEnv(map[string]string{
		"TERM":      "xterm-256color",
		"COLORTERM": "truecolor",
		"NO_COLOR":  "",
	})
	result := Run(ctx)
	require.Equal(t, ColorDepthNone, result.ColorDepth)
}

func TestProbeDumbTerminal(t *testing.T) {
	t.Parallel()

	ctx := NewContextWithEnv(map[string]string{"TERM": "dumb"})
	require.Equal(t, ColorDepthNone, Run(ctx).ColorDepth)

	ctx = NewContextWithEnv(map[string]string{"TERM": "xterm"})
	require.Equal(t, ColorDepthBasic, Run(ctx).ColorDepth)
}

func TestProbeMultiplexerAndSSH(t *testing.T) {
	t.Parallel()

	ctx := NewContextWithEnv(map[string]string{
		"TERM":           "tmux-256color",
		"TMUX":           "/tmp/tmux-1000/default,1234,0",
		"SSH_CONNECTION": "10.0.0.1 50000 10.0.0.2 22",
	})
	result := Run(ctx)
	require.Equal(t, "tmux", result.Multiplexer)
	require.True(t, result.SSHSession)

	summary := FormatSummary(result)
	require.Contains(t, summary, "multiplexer: tmux")
	require.Contains(t, summary, "running over ssh")
}

func TestProbeWideAmbiguousOptIn(t *testing.T) {
	t.Parallel()

	ctx := NewContextWithEnv(map[string]string{
		"TERM":                    "xterm-256color",
		"LOOMLINE_WIDE_AMBIGUOUS": "1",
	})
	result := Run(ctx)
	require.True(t, result.WideAmbig)

	ctx = NewContextWithEnv(map[string]string{
		"TERM":                    "xterm-256color",
		"LOOMLINE_WIDE_AMBIGUOUS": "0",
	})
	require.False(t, Run(ctx).WideAmbig)
}

func TestSummaryLinesOrdering(t *testing.T) {
	t.Parallel()

	ctx := NewContextWithEnv(map[string]string{"TERM": "xterm"})
	lines := Run(ctx).SummaryLines()
	require.True(t, strings.HasPrefix(lines[0], "terminal:"))
	require.True(t, strings.HasPrefix(lines[1], "colors:"))
}
