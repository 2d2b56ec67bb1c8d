// Package tui renders the chat interface: a scrollback transcript above a
// multi-line input box. All editing behavior lives in the session; this
// package only translates Bubble Tea key events and draws state.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	glam "github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/loomline/loomline/internal/config"
	"github.com/loomline/loomline/internal/session"
	"github.com/loomline/loomline/internal/stream"
	"github.com/loomline/loomline/pkg/textwidth"
)

type eventMsg struct{ evt Event }
type errMsg struct{ err error }
type animTick struct{}

const animInterval = 80 * time.Millisecond

type transcriptKind int

const (
	itemPlain transcriptKind = iota
	itemUser
	itemAssistantMD
)

type transcriptItem struct {
	kind transcriptKind
	text string // raw content; assistant content is markdown
}

type model struct {
	sess      *session.Session
	responder Responder
	cancel    context.CancelFunc

	vp     viewport.Model
	width  int
	height int
	ready  bool

	glam     *glam.TermRenderer
	glamWrap int

	spin        spinner.Model
	streaming   bool
	tickPending bool

	border      lipgloss.Style
	userStyle   lipgloss.Style
	statusStyle lipgloss.Style
	badgeStyle  lipgloss.Style
	shimmer     shimmerStyles

	items []transcriptItem
}

// shimmerStyles maps the stream brightness levels onto lipgloss styles.
type shimmerStyles struct {
	dim    lipgloss.Style
	normal lipgloss.Style
	bright lipgloss.Style
}

func newModel(sess *session.Session, responder Responder, theme config.Theme, cancel context.CancelFunc) *model {
	vp := viewport.Model{}
	vp.YPosition = 0

	m := model{
		sess:      sess,
		responder: responder,
		cancel:    cancel,
		vp:        vp,
		border: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(theme.Border)),
		userStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.User)).
			PaddingLeft(1).
			PaddingRight(1),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		badgeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Accent)),
		shimmer: shimmerStyles{
			dim:    lipgloss.NewStyle().Faint(true),
			normal: lipgloss.NewStyle(),
			bright: lipgloss.NewStyle().Bold(true),
		},
	}
	sp := spinner.New()
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))
	m.spin = sp
	_ = m.rebuildRenderer(80)
	return &m
}

func waitForEvent(ch <-chan Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return errMsg{fmt.Errorf("responder closed")}
		}
		return eventMsg{evt: evt}
	}
}

func scheduleAnim() tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg { return animTick{} })
}

// rebuildRenderer recreates the Glamour renderer with the given wrap width.
func (m *model) rebuildRenderer(wrap int) error {
	if wrap < 10 {
		wrap = 10
	}
	r, err := glam.NewTermRenderer(
		glam.WithStylePath("dark"), // fixed style to avoid OSC queries
		glam.WithWordWrap(wrap),
	)
	if err != nil {
		return err
	}
	m.glam = r
	return nil
}

// renderTranscript renders all transcript items at the current width.
func (m *model) renderTranscript() string {
	var out strings.Builder
	userWidth := m.vp.Width - 4
	if userWidth < 1 {
		userWidth = 1
	}
	for _, it := range m.items {
		switch it.kind {
		case itemUser:
			block := m.userStyle.Width(userWidth).Render(it.text)
			out.WriteString(block)
			if !strings.HasSuffix(block, "\n") {
				out.WriteString("\n")
			}
		case itemAssistantMD:
			if m.glam == nil {
				out.WriteString(it.text)
			} else if rendered, err := m.glam.Render(it.text); err == nil {
				out.WriteString(rendered)
			} else {
				out.WriteString(it.text)
			}
			if !strings.HasSuffix(out.String(), "\n") {
				out.WriteString("\n")
			}
		default:
			out.WriteString(it.text)
		}
	}
	return out.String()
}

// renderStream renders the in-flight reply with the shimmer wave on its
// trailing characters.
func (m *model) renderStream() string {
	width := m.vp.Width - 2
	if width < 1 {
		width = 1
	}
	lines := m.sess.StreamLines(width)
	if len(lines) == 0 {
		return ""
	}
	var out strings.Builder
	for _, dl := range lines {
		out.WriteString(m.renderStreamLine(dl))
		out.WriteString("\n")
	}
	return out.String()
}

func (m *model) renderStreamLine(dl stream.DisplayLine) string {
	if dl.ShimmerStart < 0 {
		return dl.Text
	}
	runes := []rune(dl.Text)
	var out strings.Builder
	out.WriteString(string(runes[:dl.ShimmerStart]))
	for k, r := range runes[dl.ShimmerStart:] {
		out.WriteString(m.levelStyle(dl.Brightness[dl.WindowOffset+k]).Render(string(r)))
	}
	return out.String()
}

func (m *model) levelStyle(level stream.Level) lipgloss.Style {
	switch level {
	case stream.LevelDim, stream.LevelLow:
		return m.shimmer.dim
	case stream.LevelBright:
		return m.shimmer.bright
	default:
		return m.shimmer.normal
	}
}

// refresh recomposes the viewport from the transcript plus any stream.
func (m *model) refresh() {
	content := m.renderTranscript()
	if s := m.renderStream(); s != "" {
		content += s
	}
	m.vp.SetContent(content)
	m.vp.GotoBottom()
}

// inputHeight is how many rows the input box content currently needs.
func (m *model) inputHeight() int {
	layout := m.sess.InputLayout(m.inputWidth())
	rows := len(layout.Lines)
	if rows < 1 {
		rows = 1
	}
	if rows > 6 {
		rows = 6
	}
	return rows
}

func (m *model) inputWidth() int {
	inner := m.width - 4
	if inner < 1 {
		inner = 1
	}
	return inner
}

// recalcLayout recomputes the viewport size from the terminal size and the
// rows the input box needs.
func (m *model) recalcLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	// Input box border (2) plus status line (1).
	vpH := m.height - m.inputHeight() - 3
	if vpH < 3 {
		vpH = 3
	}
	m.vp.Width = m.width
	m.vp.Height = vpH
	if wrap := m.vp.Width - 2; wrap != m.glamWrap {
		m.glamWrap = wrap
		_ = m.rebuildRenderer(wrap)
	}
}

func (m *model) appendLine(s string) {
	m.items = append(m.items, transcriptItem{kind: itemPlain, text: s})
	m.refresh()
}

func (m *model) appendUserBlock(text string) {
	if n := len(m.items); n > 0 {
		last := m.items[n-1]
		if last.kind == itemPlain && !strings.HasSuffix(last.text, "\n") {
			m.items = append(m.items, transcriptItem{kind: itemPlain, text: "\n"})
		}
	}
	m.items = append(m.items, transcriptItem{kind: itemUser, text: text})
	m.refresh()
}

// renderInput draws the wrapped input buffer with a reverse-video cursor
// cell.
func (m *model) renderInput() string {
	width := m.inputWidth()
	layout := m.sess.InputLayout(width)
	if len(layout.Lines) == 0 {
		layout.Lines = []string{""}
	}

	cursor := lipgloss.NewStyle().Reverse(true)
	var out strings.Builder
	for row, line := range layout.Lines {
		if row > 0 {
			out.WriteString("\n")
		}
		if row != layout.CursorRow {
			out.WriteString(" " + line)
			continue
		}
		before, at, after := splitAtColumn(line, layout.CursorCol)
		if at == "" {
			at = " "
		}
		out.WriteString(" " + before + cursor.Render(at) + after)
	}
	return out.String()
}

// splitAtColumn cuts a row at a display column, returning the text before
// the cursor, the cluster under it, and the rest.
func splitAtColumn(line string, col int) (before, at, after string) {
	c := 0
	i := 0
	for i < len(line) {
		size, w := textwidth.NextCluster(line, i)
		if c >= col {
			return line[:i], line[i : i+size], line[i+size:]
		}
		c += w
		i += size
	}
	return line, "", ""
}

func (m *model) statusLine() string {
	var parts []string
	if mode := m.sess.Mode(); mode != "" {
		parts = append(parts, m.badgeStyle.Render("-- "+strings.ToUpper(mode)+" --"))
	}
	if m.streaming {
		parts = append(parts, m.spin.View()+" "+m.statusStyle.Render("responding"))
	} else {
		parts = append(parts, m.statusStyle.Render("enter to send, alt+enter for newline, ctrl+c to quit"))
	}
	return strings.Join(parts, "  ")
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.responder.Events()), m.spin.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		m.ready = true
		m.refresh()
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg, cmds)

	case eventMsg:
		return m.handleEvent(msg.evt, cmds)

	case animTick:
		m.tickPending = false
		if m.streaming {
			m.sess.TickAnimation()
			m.refresh()
			m.tickPending = true
			cmds = append(cmds, scheduleAnim())
		}
		return m, tea.Batch(cmds...)

	case errMsg:
		m.appendLine(m.statusStyle.Render("[closed] ") + msg.err.Error() + "\n")
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return tea.Quit() })
	}

	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if msg.Type == tea.KeyCtrlC {
		if m.cancel != nil {
			m.cancel()
		}
		m.responder.Close()
		return m, tea.Quit
	}

	if msg.Type == tea.KeyRunes && !msg.Alt {
		for _, r := range msg.Runes {
			m.sess.HandleKey(ctx, session.Key{Kind: session.KeyRune, Rune: r})
		}
		m.recalcLayout()
		return m, tea.Batch(cmds...)
	}

	key, ok := translateKey(msg)
	if ok && m.sess.HandleKey(ctx, key) {
		m.recalcLayout()
		return m, tea.Batch(cmds...)
	}

	if msg.Type == tea.KeyEnter && !msg.Alt {
		prompt := strings.TrimSpace(m.sess.Submit(ctx))
		if prompt != "" {
			m.appendUserBlock(prompt)
			m.responder.Submit(prompt)
		}
		m.recalcLayout()
		return m, tea.Batch(cmds...)
	}

	// Keys nobody claimed (page up/down and friends) scroll the viewport.
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// translateKey converts a Bubble Tea key event into the session's key
// representation.
func translateKey(msg tea.KeyMsg) (session.Key, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return session.Key{}, false
		}
		return session.Key{Kind: session.KeyRune, Rune: msg.Runes[0], Alt: msg.Alt}, true
	case tea.KeySpace:
		return session.Key{Kind: session.KeyRune, Rune: ' ', Alt: msg.Alt}, true
	case tea.KeyEnter:
		return session.Key{Kind: session.KeyEnter, Alt: msg.Alt}, true
	case tea.KeyBackspace:
		return session.Key{Kind: session.KeyBackspace}, true
	case tea.KeyDelete:
		return session.Key{Kind: session.KeyDelete}, true
	case tea.KeyUp:
		return session.Key{Kind: session.KeyUp}, true
	case tea.KeyDown:
		return session.Key{Kind: session.KeyDown}, true
	case tea.KeyLeft:
		return session.Key{Kind: session.KeyLeft}, true
	case tea.KeyRight:
		return session.Key{Kind: session.KeyRight}, true
	case tea.KeyHome:
		return session.Key{Kind: session.KeyHome}, true
	case tea.KeyEnd:
		return session.Key{Kind: session.KeyEnd}, true
	case tea.KeyTab:
		return session.Key{Kind: session.KeyTab}, true
	case tea.KeyEsc:
		return session.Key{Kind: session.KeyEscape}, true
	case tea.KeyCtrlA:
		return ctrlKey('a'), true
	case tea.KeyCtrlE:
		return ctrlKey('e'), true
	case tea.KeyCtrlK:
		return ctrlKey('k'), true
	case tea.KeyCtrlU:
		return ctrlKey('u'), true
	case tea.KeyCtrlW:
		return ctrlKey('w'), true
	case tea.KeyCtrlY:
		return ctrlKey('y'), true
	case tea.KeyCtrlZ:
		return ctrlKey('z'), true
	case tea.KeyCtrlR:
		return ctrlKey('r'), true
	case tea.KeyCtrlP:
		return ctrlKey('p'), true
	case tea.KeyCtrlN:
		return ctrlKey('n'), true
	}
	return session.Key{}, false
}

func ctrlKey(r rune) session.Key {
	return session.Key{Kind: session.KeyRune, Rune: r, Ctrl: true}
}

func (m *model) handleEvent(evt Event, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch evt.Kind {
	case EventChunk:
		m.sess.HandleChunk(ctx, evt.Text)
		if !m.streaming {
			m.streaming = true
		}
		if !m.tickPending {
			m.tickPending = true
			cmds = append(cmds, scheduleAnim())
		}
		m.refresh()
	case EventDone:
		m.sess.FinishStream(ctx)
		final := m.sess.StreamContent()
		m.sess.ClearStream()
		m.streaming = false
		if strings.TrimSpace(final) != "" {
			m.items = append(m.items, transcriptItem{kind: itemAssistantMD, text: final})
		}
		m.refresh()
	case EventStatus:
		m.appendLine(m.statusStyle.Render("[status] ") + evt.Text + "\n")
	case EventError:
		m.appendLine(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Render("[error] ") + evt.Text + "\n")
	}
	return m, tea.Batch(append(cmds, waitForEvent(m.responder.Events()))...)
}

func (m model) View() string {
	if !m.ready {
		return "Initializing…"
	}
	top := m.border.Render(m.vp.View())
	bottom := m.border.Render(m.renderInput())
	return top + "\n" + bottom + "\n" + m.statusLine()
}

// Run launches the Bubble Tea interface. Returns a POSIX-style exit code.
func Run(ctx context.Context, sess *session.Session, responder Responder, theme config.Theme) int {
	// Fix the color profile up front so lipgloss never issues OSC queries
	// that would contaminate stdin.
	lipgloss.SetColorProfile(termenv.TrueColor)
	lipgloss.SetHasDarkBackground(true)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newModel(sess, responder, theme, cancel), tea.WithAltScreen(), tea.WithContext(runCtx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tui error:", err)
		return 1
	}
	return 0
}
