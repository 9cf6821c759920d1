// Package tui provides a Bubble Tea terminal user interface for topsters.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/topsters/internal/config"
	"github.com/handiism/topsters/internal/model"
	"github.com/handiism/topsters/internal/pipeline"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1DB954")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateComplete
	StateError
)

var (
	kinds  = []model.ItemKind{model.KindAlbum, model.KindTrack, model.KindArtist}
	ranges = []model.TimeRange{model.RangeShort, model.RangeMedium, model.RangeLong}
)

const (
	minGrid = 2
	maxGrid = 15
	maxLogs = 10
)

var errCancelled = errors.New("cancelled by user")

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// eventBuffer collects progress events from the pipeline goroutine until
// the next tick drains them.
type eventBuffer struct {
	mu     sync.Mutex
	events []pipeline.ProgressEvent
}

func (b *eventBuffer) push(e pipeline.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *eventBuffer) drain() []pipeline.ProgressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	events := b.events
	b.events = nil
	return events
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	editing   bool
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	// Selection
	kind      int
	timeRange int
	grid      int
	verbose   bool

	// Run context
	ctx     context.Context
	cancel  context.CancelFunc
	manager *pipeline.Manager
	events  *eventBuffer

	// Progress
	loaded int32
	total  int32
	files  pipeline.SavedFiles
	items  int

	width  int
	height int
}

// NewModel creates a new TUI model starting from settings.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "~/Pictures/Topsters"
	ti.SetValue(settings.OutputPath)
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB954"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		kind:      indexOf(kinds, model.ItemKind(settings.Kind)),
		timeRange: indexOf(ranges, model.TimeRange(settings.TimeRange)),
		grid:      min(max(settings.GridSize, minGrid), maxGrid),
		ctx:       ctx,
		cancel:    cancel,
		events:    &eventBuffer{},
	}
}

func indexOf[T comparable](values []T, v T) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return 0
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one pipeline progress event.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// DoneMsg is sent when the pipeline finishes and the files are saved.
	DoneMsg struct {
		Files pipeline.SavedFiles
		Items int
		Err   error
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
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.appendLog(msg.Event)

	case DoneMsg:
		if m.state != StateRunning {
			return m, nil
		}
		for _, e := range m.events.drain() {
			m.appendLog(e)
		}
		if m.manager != nil {
			m.loaded, m.total = m.manager.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.files = msg.Files
			m.items = msg.Items
		}

	case TickMsg:
		if m.state == StateRunning {
			for _, e := range m.events.drain() {
				m.appendLog(e)
			}
			if m.manager != nil {
				m.loaded, m.total = m.manager.GetProgress()
			}
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit
	case "enter", "esc":
		m.editing = false
		m.textInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return m, tea.Quit

	case "esc":
		if m.state == StateInput {
			return m, tea.Quit
		}
		if m.state == StateRunning {
			m.cancel()
			m.state = StateError
			m.err = errCancelled
		}

	case "enter":
		if m.state == StateInput {
			return m.start()
		}

	case "o":
		if m.state == StateInput {
			m.editing = true
			cmd := m.textInput.Focus()
			return m, cmd
		}

	case "k":
		if m.state == StateInput {
			m.kind = (m.kind + 1) % len(kinds)
		}

	case "t":
		if m.state == StateInput {
			m.timeRange = (m.timeRange + 1) % len(ranges)
		}

	case "+", "=", "up":
		if m.state == StateInput && m.grid < maxGrid {
			m.grid++
		}

	case "-", "down":
		if m.state == StateInput && m.grid > minGrid {
			m.grid--
		}

	case "v":
		if m.state == StateInput {
			m.verbose = !m.verbose
		}

	case "q":
		if m.state == StateComplete || m.state == StateError {
			return m, tea.Quit
		}

	case "r":
		if m.state == StateComplete || m.state == StateError {
			m.state = StateInput
			m.logs = nil
			m.err = nil
			m.loaded, m.total = 0, 0
			m.files = pipeline.SavedFiles{}
			m.manager = nil
			m.events = &eventBuffer{}
			m.ctx, m.cancel = context.WithCancel(context.Background())
		}
	}

	return m, nil
}

// runSettings returns a copy of the base settings with the selection applied.
func (m Model) runSettings() *config.Settings {
	s := *m.settings
	s.Kind = string(kinds[m.kind])
	s.TimeRange = string(ranges[m.timeRange])
	s.GridSize = m.grid
	if out := strings.TrimSpace(m.textInput.Value()); out != "" {
		s.OutputPath = out
	}
	return &s
}

func (m Model) start() (tea.Model, tea.Cmd) {
	settings := m.runSettings()
	if err := settings.Validate(); err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}
	if settings.AccessToken == "" {
		m.state = StateError
		m.err = fmt.Errorf("no access token: set $%s", config.EnvAccessToken)
		return m, nil
	}

	events := m.events
	m.manager = pipeline.NewManager(settings, events.push)
	m.state = StateRunning
	return m, tea.Batch(runPipeline(m.ctx, m.manager, settings), m.tickProgress(), m.spinner.Tick)
}

func (m *Model) appendLog(e pipeline.ProgressEvent) {
	if e.Level == pipeline.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: e.Message, Level: e.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m Model) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.loaded) / float64(m.total)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// runPipeline builds the collage and saves it in the background.
func runPipeline(ctx context.Context, manager *pipeline.Manager, settings *config.Settings) tea.Cmd {
	return func() tea.Msg {
		result, err := manager.Run(ctx)
		if err != nil {
			return DoneMsg{Err: err}
		}
		files, err := result.Save(ctx, settings.OutputPath, settings.FileBaseName(time.Now()))
		return DoneMsg{Files: files, Items: len(result.Items), Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 Topsters"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Collages of your top albums, tracks and artists"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Collage:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Kind        %s (k)\n", valueStyle.Render(string(kinds[m.kind]))))
	b.WriteString(fmt.Sprintf("  Time range  %s (t)\n", valueStyle.Render(string(ranges[m.timeRange]))))
	b.WriteString(fmt.Sprintf("  Grid        %s (+/-)\n", valueStyle.Render(fmt.Sprintf("%dx%d", m.grid, m.grid))))
	b.WriteString("\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", verboseCheck))
	b.WriteString("\n")

	b.WriteString(subtitleStyle.Render("Output directory (o):"))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Building %dx%d %s collage...", m.grid, m.grid, kinds[m.kind])))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Covers: %d/%d", m.loaded, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	return boxStyle.Render(fmt.Sprintf(
		"✨ Collage Complete!\n\n"+
			"Items: %d\n"+
			"Collage: %s\n"+
			"List: %s",
		m.items,
		m.files.Collage,
		m.files.List,
	))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		if m.editing {
			return "enter: done • esc: done"
		}
		return "enter: start • k: kind • t: range • +/-: grid • o: output • v: verbose • esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new collage • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
