// Package tui provides a Bubble Tea terminal user interface for the
// album splitter.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nullcipher-labs/mp3-album-splitter/internal/config"
	"github.com/nullcipher-labs/mp3-album-splitter/internal/split"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD166"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateRunning
	StateComplete
	StateError
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	err       error

	runner    *split.Runner
	albumLine string

	// Events carry runner progress from its goroutine into the
	// program; they are drained into logs on each tick.
	events chan split.ProgressEvent
	logs   []split.ProgressEvent

	splitDone   int32
	taggedDone  int32
	totalTracks int32

	// Options
	playlist bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "split_config.txt"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  config.DefaultSettings(),
		events:    make(chan split.ProgressEvent, 64),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// InitDoneMsg is sent when the job file and tracklist are loaded.
	InitDoneMsg struct {
		AlbumLine string
		Runner    *split.Runner
		Err       error
	}

	// RunDoneMsg is sent when the pipeline finishes.
	RunDoneMsg struct {
		Err error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}

		case "enter":
			if m.state == StateInput {
				m.state = StateInitializing
				return m, tea.Batch(m.initializeJob(), m.spinner.Tick)
			}

		case "p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new job
				m.state = StateInput
				m.err = nil
				m.runner = nil
				m.albumLine = ""
				m.logs = nil
				m.splitDone, m.taggedDone, m.totalTracks = 0, 0, 0
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case InitDoneMsg:
		m.drainEvents()
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.runner = msg.Runner
			m.albumLine = msg.AlbumLine
			m.state = StateRunning
			cmds = append(cmds, m.runJob(), m.tickProgress())
		}

	case RunDoneMsg:
		m.drainEvents()
		m.syncProgress()
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		m.drainEvents()
		if m.runner != nil && m.state == StateRunning {
			m.syncProgress()
			progressCmd := m.progress.SetPercent(m.percent())
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) drainEvents() {
	for {
		select {
		case e := <-m.events:
			m.logs = append(m.logs, e)
		default:
			return
		}
	}
}

func (m *Model) syncProgress() {
	if m.runner == nil {
		return
	}
	m.splitDone, m.taggedDone, m.totalTracks = m.runner.GetProgress()
}

// percent spreads the bar across both passes: splitting then tagging.
func (m Model) percent() float64 {
	if m.totalTracks == 0 {
		return 0
	}
	phases := int32(1)
	if m.settings.ModifyTags {
		phases = 2
	}
	return float64(m.splitDone+m.taggedDone) / float64(phases*m.totalTracks)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Album Splitter"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Cut one recording into tagged tracks"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter job file path:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	playlistCheck := "[ ]"
	if m.playlist {
		playlistCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Create playlist (p)\n", playlistCheck))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Reading job and tracklist..."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	if m.albumLine != "" {
		b.WriteString(albumStyle.Render("  " + m.albumLine))
		b.WriteString("\n\n")
	}

	b.WriteString(m.progress.View())
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Split: %d/%d | Tagged: %d/%d",
		m.splitDone, m.totalTracks,
		m.taggedDone, m.totalTracks,
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

// maxVisibleLogs bounds the scrolling log to the most recent entries.
const maxVisibleLogs = 8

func (m Model) renderLogs() string {
	if len(m.logs) == 0 {
		return ""
	}

	start := 0
	if len(m.logs) > maxVisibleLogs {
		start = len(m.logs) - maxVisibleLogs
	}

	var b strings.Builder
	for _, e := range m.logs[start:] {
		b.WriteString("  ")
		b.WriteString(levelStyle(e.Level).Render(e.Message))
		b.WriteString("\n")
	}
	return b.String()
}

func levelStyle(level split.ProgressLevel) lipgloss.Style {
	switch level {
	case split.LevelWarning:
		return warnStyle
	case split.LevelError:
		return errorStyle
	case split.LevelSuccess:
		return successStyle
	case split.LevelVerbose:
		return dimStyle
	default:
		return infoStyle
	}
}

func (m Model) viewComplete() string {
	var b strings.Builder

	b.WriteString(boxStyle.Render(fmt.Sprintf(
		"%s\n\n%s\nTracks: %d",
		successStyle.Render("Done!"),
		m.albumLine,
		m.splitDone,
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s\n\n", m.err.Error()))
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • p: playlist • esc: quit"
	case StateInitializing, StateRunning:
		return "running, please wait"
	case StateComplete, StateError:
		return "r: new job • q: quit"
	}
	return ""
}

// initializeJob loads the job file and builds the runner.
func (m *Model) initializeJob() tea.Cmd {
	return func() tea.Msg {
		jobPath := strings.TrimSpace(m.textInput.Value())
		if jobPath == "" {
			jobPath = "split_config.txt"
		}

		settings := config.DefaultSettings()
		settings.WaitForKeypress = false
		if m.playlist {
			settings.CreatePlaylist = true
		}

		// Events buffer in the channel and surface on the next tick.
		// Sending never blocks the runner; a full buffer drops the event.
		events := m.events
		runner := split.NewRunner(settings, func(e split.ProgressEvent) {
			select {
			case events <- e:
			default:
			}
		})

		if err := runner.Initialize(jobPath); err != nil {
			return InitDoneMsg{Err: err}
		}

		album := runner.Album()
		line := fmt.Sprintf("%s - %s (%d tracks)", album.Artist, album.Name, len(album.Tracks))

		return InitDoneMsg{AlbumLine: line, Runner: runner}
	}
}

// runJob runs the pipeline in the background.
func (m *Model) runJob() tea.Cmd {
	return func() tea.Msg {
		if m.runner == nil {
			return RunDoneMsg{Err: fmt.Errorf("no runner")}
		}
		return RunDoneMsg{Err: m.runner.Run()}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
