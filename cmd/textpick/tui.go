//go:build !gui

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/textpick"
	"github.com/tsawler/textpick/status"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true).
			Padding(0, 1)

	outputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444"))

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true).
			Padding(0, 1)
)

type pane int

const (
	pickerPane pane = iota
	outputPane
)

// stateMsg carries the latest status slot value.
type stateMsg status.State

// doneMsg is sent when an extraction returns.
type doneMsg struct {
	res *textpick.Result
	err error
}

type model struct {
	session *textpick.Session
	state   status.State

	picker  filepicker.Model
	spinner spinner.Model
	bar     progress.Model
	output  viewport.Model
	focus   pane

	cancel   context.CancelFunc
	width    int
	height   int
	quitting bool
}

func newModel(session *textpick.Session, dir string) model {
	fp := filepicker.New()
	fp.CurrentDirectory = dir

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return model{
		session: session,
		state:   session.Reporter().State(),
		picker:  fp,
		spinner: sp,
		bar:     bar,
		output:  viewport.New(80, 16),
		focus:   pickerPane,
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), waitForState(m.session.Reporter().Changes()))
}

// busy covers the gap between a selection and the first state change.
func (m model) busy() bool {
	return m.state.Busy() || m.session.Busy()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			m.quitting = true
			return m, tea.Quit

		case "q":
			if !m.busy() {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case "esc":
			if m.busy() && m.cancel != nil {
				m.cancel()
				return m, nil
			}

		case "x":
			if m.busy() {
				return m, nil
			}
			m.session.Reporter().Reset()
			m.state = m.session.Reporter().State()
			m.output.SetContent("")
			m.focus = pickerPane
			return m, nil

		case "tab":
			if m.focus == pickerPane {
				m.focus = outputPane
			} else {
				m.focus = pickerPane
			}
			return m, nil
		}

		if m.focus == outputPane {
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}

		// The picker is disabled while an extraction runs.
		if m.busy() {
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.output.Width = msg.Width - 2
		m.output.Height = max(msg.Height-8, 3)
		m.bar.Width = min(max(msg.Width-4, 10), 60)

	case stateMsg:
		m.state = status.State(msg)
		if m.state.Phase == status.Succeeded {
			m.output.SetContent(m.state.Text)
			m.output.GotoTop()
		}
		if m.state.Phase == status.Failed {
			m.output.SetContent("")
		}
		return m, waitForState(m.session.Reporter().Changes())

	case doneMsg:
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.state = m.session.Reporter().State()
		if msg.err == nil {
			m.output.SetContent(msg.res.Text)
			m.output.GotoTop()
			m.focus = outputPane
		} else {
			m.output.SetContent("")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok && !m.busy() {
		ctx, cancel := context.WithCancel(context.Background())
		m.cancel = cancel
		// Mark busy right away so keys are ignored until the first
		// state change arrives.
		m.state = status.State{Phase: status.Processing, Label: "Reading file..."}
		return m, tea.Batch(cmd, extract(ctx, m.session, path), m.spinner.Tick)
	}

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("textpick"))
	sb.WriteString("\n")
	sb.WriteString(m.statusLine())
	sb.WriteString("\n\n")

	if m.focus == outputPane {
		sb.WriteString(outputStyle.Render(m.output.View()))
		sb.WriteString("\n")
		sb.WriteString(controlsStyle.Render("↑/↓ PGUP/PGDN: scroll  TAB: pick another file  X: clear  Q: quit"))
		return sb.String()
	}

	if m.busy() {
		sb.WriteString(statusStyle.Render("File selection is disabled while extracting."))
		sb.WriteString("\n")
		sb.WriteString(controlsStyle.Render("ESC: cancel  CTRL+C: quit"))
		return sb.String()
	}

	sb.WriteString(m.picker.View())
	sb.WriteString("\n")
	sb.WriteString(controlsStyle.Render("ENTER: extract  TAB: show text  Q: quit"))
	return sb.String()
}

func (m model) statusLine() string {
	line := status.Render(m.state)

	switch m.state.Phase {
	case status.Processing:
		bar := m.bar.ViewAs(float64(m.state.Percent) / 100)
		return fmt.Sprintf("%s%s\n %s", m.spinner.View(), statusStyle.Render(line), bar)
	case status.Succeeded:
		return successStyle.Render(line)
	case status.Failed:
		return errorStyle.Render(line)
	default:
		return statusStyle.Render(line)
	}
}

// waitForState delivers the next status change.
func waitForState(changes <-chan status.State) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-changes)
	}
}

// extract runs one extraction off the UI goroutine.
func extract(ctx context.Context, session *textpick.Session, path string) tea.Cmd {
	return func() tea.Msg {
		res, err := session.ExtractPath(ctx, path)
		return doneMsg{res: res, err: err}
	}
}
