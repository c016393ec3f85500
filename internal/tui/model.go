package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-cmdgui/internal/core/parser"
	"go-cmdgui/internal/core/runner"
	"go-cmdgui/internal/core/schema"
	"go-cmdgui/internal/core/session"
)

const maxOutputLines = 1000

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	descStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(22)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	stderrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("209"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// field is one form row. Booleans use checked, choices use choice (index
// into the choices, -1 for none) and everything else edits input.
type field struct {
	spec    *schema.ArgSpec
	input   textinput.Model
	checked bool
	choice  int
}

func (f *field) editable() bool {
	return f.spec.Type != schema.TypeBoolean && f.spec.Type != schema.TypeChoice
}

type lineMsg struct {
	line runner.Line
}

type finishedMsg struct {
	result *runner.Result
	err    error
}

// Model is the Bubble Tea state of the terminal form.
type Model struct {
	session *session.Session

	fields []*field
	focus  int
	active map[string]string

	preview    string
	previewErr error

	running   bool
	quit      chan struct{}
	lines     <-chan runner.Line
	done      <-chan finishedMsg
	output    []runner.Line
	statusMsg string
	statusOK  bool

	width  int
	height int
}

// New builds the form from the session defaults.
func New(sess *session.Session) *Model {
	defaults := sess.Defaults()

	m := &Model{
		session:   sess,
		quit:      make(chan struct{}),
		active:    sess.DefaultActive(),
		statusMsg: "Ready",
		statusOK:  true,
	}

	for _, spec := range sess.Schema().Args {
		f := &field{spec: spec, choice: -1}
		switch spec.Type {
		case schema.TypeBoolean:
			f.checked = defaults.Bool(spec.Name)
		case schema.TypeChoice:
			for i, c := range spec.Choices {
				if c == spec.Default {
					f.choice = i
				}
			}
		default:
			f.input = textinput.New()
			f.input.Prompt = ""
			f.input.Placeholder = spec.Help
			if spec.Multiple {
				f.input.SetValue(strings.Join(defaults.Strings(spec.Name), ", "))
				if f.input.Placeholder == "" {
					f.input.Placeholder = "comma separated"
				}
			} else {
				f.input.SetValue(defaults.String(spec.Name))
			}
		}
		m.fields = append(m.fields, f)
	}

	m.setFocus(0)
	m.refreshPreview()
	return m
}

// Run starts the terminal UI and blocks until the user quits.
func Run(sess *session.Session) error {
	prog := tea.NewProgram(New(sess), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case lineMsg:
		m.appendOutput(msg.line)
		return m, waitForOutput(m.lines, m.done)

	case finishedMsg:
		m.finish(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			select {
			case <-m.quit:
			default:
				close(m.quit)
			}
			m.session.Stop()
			return m, tea.Quit
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil
		case "ctrl+r":
			return m, m.start()
		case "ctrl+x":
			if m.session.Stop() {
				m.statusMsg = "Stopping…"
			}
			return m, nil
		case "ctrl+l":
			m.output = nil
			return m, nil
		}
		return m, m.handleFieldKey(msg)
	}

	return m, nil
}

func (m *Model) handleFieldKey(msg tea.KeyMsg) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	f := m.fields[m.focus]

	if msg.String() == "enter" && f.spec.Group != "" {
		m.active[f.spec.Group] = f.spec.Name
		m.refreshPreview()
		return nil
	}

	switch f.spec.Type {
	case schema.TypeBoolean:
		if msg.String() == " " {
			f.checked = !f.checked
			m.refreshPreview()
		}
		return nil
	case schema.TypeChoice:
		switch msg.String() {
		case "right", " ":
			f.choice = cycle(f.choice, len(f.spec.Choices), 1)
		case "left":
			f.choice = cycle(f.choice, len(f.spec.Choices), -1)
		default:
			return nil
		}
		m.refreshPreview()
		return nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	m.refreshPreview()
	return cmd
}

// cycle moves through -1 (nothing selected) and the choice indexes.
func cycle(current, n, step int) int {
	next := current + step
	if next >= n {
		return -1
	}
	if next < -1 {
		return n - 1
	}
	return next
}

func (m *Model) setFocus(i int) {
	if len(m.fields) == 0 {
		return
	}
	if i < 0 {
		i = len(m.fields) - 1
	}
	if i >= len(m.fields) {
		i = 0
	}
	for _, f := range m.fields {
		if f.editable() {
			f.input.Blur()
		}
	}
	m.focus = i
	if f := m.fields[i]; f.editable() {
		f.input.Focus()
	}
}

// FormValues returns the current form state in the shape parser.Argv expects.
func (m *Model) FormValues() parser.Values {
	values := make(parser.Values, len(m.fields))
	for _, f := range m.fields {
		switch {
		case f.spec.Type == schema.TypeBoolean:
			values[f.spec.Name] = f.checked
		case f.spec.Type == schema.TypeChoice:
			if f.choice >= 0 {
				values[f.spec.Name] = f.spec.Choices[f.choice]
			} else {
				values[f.spec.Name] = ""
			}
		case f.spec.Multiple:
			var items []string
			for _, part := range strings.Split(f.input.Value(), ",") {
				if part = strings.TrimSpace(part); part != "" {
					items = append(items, part)
				}
			}
			values[f.spec.Name] = items
		default:
			values[f.spec.Name] = f.input.Value()
		}
	}
	return values
}

func (m *Model) refreshPreview() {
	m.preview, m.previewErr = m.session.PreviewForm(m.FormValues(), m.active)
}

func (m *Model) start() tea.Cmd {
	if m.running {
		return nil
	}
	if m.previewErr != nil {
		m.statusMsg = m.previewErr.Error()
		m.statusOK = false
		return nil
	}

	lines := make(chan runner.Line, 64)
	done := make(chan finishedMsg, 1)
	m.lines, m.done = lines, done
	m.running = true
	m.output = nil
	m.statusMsg = "Running " + m.preview
	m.statusOK = true

	form, active, quit := m.FormValues(), copyActive(m.active), m.quit
	go func() {
		// nothing reads lines once the program has quit
		result, err := m.session.RunForm(context.Background(), form, active, func(l runner.Line) {
			select {
			case lines <- l:
			case <-quit:
			}
		})
		done <- finishedMsg{result: result, err: err}
		close(lines)
	}()

	return waitForOutput(lines, done)
}

func waitForOutput(lines <-chan runner.Line, done <-chan finishedMsg) tea.Cmd {
	return func() tea.Msg {
		if line, ok := <-lines; ok {
			return lineMsg{line: line}
		}
		return <-done
	}
}

func (m *Model) appendOutput(line runner.Line) {
	m.output = append(m.output, line)
	if len(m.output) > maxOutputLines {
		m.output = m.output[len(m.output)-maxOutputLines:]
	}
}

func (m *Model) finish(msg finishedMsg) {
	m.running = false
	m.lines, m.done = nil, nil

	switch {
	case msg.err != nil:
		m.statusMsg = "Error: " + msg.err.Error()
		m.statusOK = false
	case msg.result.Cancelled:
		m.statusMsg = "Stopped"
		m.statusOK = false
	default:
		m.statusMsg = fmt.Sprintf("Exited with code %d in %s", msg.result.ExitCode, msg.result.Duration.Round(time.Millisecond))
		m.statusOK = msg.result.ExitCode == 0
	}
}

func (m *Model) Running() bool {
	return m.running
}

func (m *Model) Output() []runner.Line {
	return m.output
}

func (m *Model) Preview() (string, error) {
	return m.preview, m.previewErr
}

func (m *Model) View() string {
	var b strings.Builder
	sch := m.session.Schema()

	b.WriteString(titleStyle.Render(sch.DisplayName()))
	b.WriteByte('\n')
	if sch.Program.Description != "" {
		b.WriteString(descStyle.Render(sch.Program.Description))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	for i, f := range m.fields {
		cursor := "  "
		if i == m.focus {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(m.radio(f))
		b.WriteString(labelStyle.Render(f.spec.Label()))
		b.WriteString(m.widget(f))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if m.previewErr != nil {
		b.WriteString(previewStyle.Render(errStyle.Render(m.previewErr.Error())))
	} else {
		b.WriteString(previewStyle.Render("$ " + m.preview))
	}
	b.WriteByte('\n')

	status := okStyle
	if !m.statusOK {
		status = errStyle
	}
	b.WriteString(status.Render(m.statusMsg))
	b.WriteByte('\n')

	for _, line := range m.visibleOutput() {
		if line.Stream == runner.Stderr {
			b.WriteString(stderrStyle.Render(line.Text))
		} else {
			b.WriteString(line.Text)
		}
		b.WriteByte('\n')
	}

	b.WriteString(helpStyle.Render("tab/↑↓ move • space toggle • ←→ choice • enter pick group member • ctrl+r run • ctrl+x stop • ctrl+l clear • esc quit"))
	return b.String()
}

func (m *Model) radio(f *field) string {
	if f.spec.Group == "" {
		return ""
	}
	if m.active[f.spec.Group] == f.spec.Name {
		return "(•) "
	}
	return mutedStyle.Render("( ) ")
}

func (m *Model) widget(f *field) string {
	switch f.spec.Type {
	case schema.TypeBoolean:
		if f.checked {
			return "[x]"
		}
		return "[ ]"
	case schema.TypeChoice:
		if f.choice < 0 {
			return mutedStyle.Render("‹ none ›")
		}
		return "‹ " + f.spec.Choices[f.choice] + " ›"
	default:
		return f.input.View()
	}
}

func (m *Model) visibleOutput() []runner.Line {
	if m.height == 0 {
		return m.output
	}
	room := m.height - len(m.fields) - 10
	if room < 3 {
		room = 3
	}
	if room >= len(m.output) {
		return m.output
	}
	return m.output[len(m.output)-room:]
}

func copyActive(active map[string]string) map[string]string {
	out := make(map[string]string, len(active))
	for k, v := range active {
		out[k] = v
	}
	return out
}
