package termprobe

import (
	"fmt"
	"strings"
)

// ColorDepth classifies how many colors the terminal advertises.
type ColorDepth string

const (
	ColorDepthNone      ColorDepth = "monochrome"
	ColorDepthBasic     ColorDepth = "16-color"
	ColorDepth256       ColorDepth = "256-color"
	ColorDepthTrueColor ColorDepth = "truecolor"
)

// Result is the structured outcome of the probe suite.
type Result struct {
	Term        string
	TermProgram string
	ColorDepth  ColorDepth
	ColorForced bool
	Multiplexer string
	WideAmbig   bool
	SSHSession  bool
}

// Run executes every probe against the context.
func Run(ctx *Context) Result {
	return Result{
		Term:        ctx.Env("TERM"),
		TermProgram: ctx.Env("TERM_PROGRAM"),
		ColorDepth:  probeColorDepth(ctx),
		ColorForced: ctx.Env("CLICOLOR_FORCE") != "" && ctx.Env("CLICOLOR_FORCE") != "0",
		Multiplexer: probeMultiplexer(ctx),
		WideAmbig:   probeWideAmbiguous(ctx),
		SSHSession:  ctx.Env("SSH_TTY") != "" || ctx.Env("SSH_CONNECTION") != "",
	}
}

// probeColorDepth reads the conventional color hints. NO_COLOR wins over
// everything, matching the informal standard: presence alone disables
// color.
func probeColorDepth(ctx *Context) ColorDepth {
	if ctx.HasEnv("NO_COLOR") {
		return ColorDepthNone
	}
	switch strings.ToLower(ctx.Env("COLORTERM")) {
	case "truecolor", "24bit":
		return ColorDepthTrueColor
	}
	term := ctx.Env("TERM")
	switch {
	case term == "" || term == "dumb":
		return ColorDepthNone
	case strings.Contains(term, "256color"):
		return ColorDepth256
	default:
		return ColorDepthBasic
	}
}

func probeMultiplexer(ctx *Context) string {
	if ctx.Env("TMUX") != "" {
		return "tmux"
	}
	if ctx.Env("STY") != "" {
		return "screen"
	}
	if ctx.Env("ZELLIJ") != "" {
		return "zellij"
	}
	return ""
}

// probeWideAmbiguous reports whether the user asked for East Asian
// ambiguous characters to render double width.
func probeWideAmbiguous(ctx *Context) bool {
	v := strings.ToLower(ctx.Env("LOOMLINE_WIDE_AMBIGUOUS"))
	return v == "1" || v == "true" || v == "yes"
}

// SummaryLines renders the result as human-readable lines for the launch
// banner and the log.
func (r Result) SummaryLines() []string {
	lines := []string{
		fmt.Sprintf("terminal: %s", valueOr(r.Term, "unknown")),
		fmt.Sprintf("colors: %s", r.ColorDepth),
	}
	if r.TermProgram != "" {
		lines = append(lines, fmt.Sprintf("program: %s", r.TermProgram))
	}
	if r.ColorForced {
		lines = append(lines, "color output forced by CLICOLOR_FORCE")
	}
	if r.Multiplexer != "" {
		lines = append(lines, fmt.Sprintf("multiplexer: %s", r.Multiplexer))
	}
	if r.WideAmbig {
		lines = append(lines, "ambiguous-width characters rendered wide")
	}
	if r.SSHSession {
		lines = append(lines, "running over ssh")
	}
	return lines
}

// FormatSummary joins the summary lines into one printable block.
func FormatSummary(result Result) string {
	return strings.Join(result.SummaryLines(), "\n")
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
