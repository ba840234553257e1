// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model hosting the drawer engine, its list and a detail sheet

// Package tui hosts a drawer in the terminal: mouse drags move it, keys
// step it between positions, and a config panel tunes it live.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"drawerview/config"
	"drawerview/content"
	"drawerview/drawer"
	"drawerview/presentation"
)

// Layout constants for UI dimensions
const (
	containerID     = "terminal"
	statusBarHeight = 1 // Bottom status bar, doubles as the drawer's safe area
	drawerChrome    = 2 // Drawer border plus header row
	sheetHeight     = 8 // Rows of the detail sheet when presented
)

// Navigation and interaction constants
const (
	pageJumpSize          = 10               // Rows to jump on PageUp/PageDown
	wheelScrollRows       = 3                // Rows per mouse wheel notch
	statusMessageDuration = 5 * time.Second  // How long to show transient status messages
	maxHistorySize        = 50               // Maximum undo/redo history items
	frameInterval         = time.Second / 60 // Animation frame pacing
)

// frameMsg drives one animation frame; stale chains are dropped by epoch
type frameMsg struct {
	epoch int
	at    time.Time
}

// configChangedMsg signals that the config file changed on disk
type configChangedMsg struct{}

// hostState is shared by every copy of the model and by the drawer
// observer callbacks, which fire outside of Update's return value.
type hostState struct {
	now          func() time.Time
	statusMsg    string
	statusMsgAge time.Time
	history      *PositionHistory
	leaving      drawer.Position
	restoring    bool
}

func (h *hostState) setStatus(msg string) {
	h.statusMsg = msg
	h.statusMsgAge = h.now()
}

// model holds the TUI state
type model struct {
	// Dependencies
	sharedConfig ConfigProvider
	debugf       func(string, ...interface{})
	copyText     func(string) error
	now          func() time.Time
	changes      <-chan struct{}

	// Configuration
	localConfig *config.DrawerConfig // Local config that params point to (pointer so addresses stay valid)
	paramMgr    *ParamManager
	configPath  string
	showParams  bool

	// Engine
	drawer *drawer.Drawer
	sheet  *presentation.Sheet
	list   *ListRegion
	host   *hostState

	// Animation frames
	frameEpoch     int
	frameScheduled bool
	lastFrame      time.Time

	// Pointer drag in progress
	pointer pointerState

	// Search
	search    textinput.Model
	searching bool

	// UI state
	title      string
	background viewport.Model
	width      int
	height     int
	quitting   bool
}

// Key bindings
type keyMap struct {
	Open      key.Binding
	Close     key.Binding
	Jump      key.Binding
	CursorUp  key.Binding
	CursorDn  key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Left      key.Binding
	Right     key.Binding
	Reset     key.Binding
	Conceal   key.Binding
	Present   key.Binding
	Search    key.Binding
	Copy      key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Tab       key.Binding
	Quit      key.Binding
	Cancel    key.Binding
	Confirm   key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Open: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "open"),
	),
	Close: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "close"),
	),
	Jump: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "jump"),
	),
	CursorUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "row up"),
	),
	CursorDn: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "row down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "decrease param"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "increase param"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset params"),
	),
	Conceal: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "conceal"),
	),
	Present: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "details"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy row"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "params"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear search"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "keep filter"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	paramStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedParamStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	drawerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	drawerHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	sheetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))
)

// Run starts the TUI with injected dependencies and blocks until the user
// quits or ctx is cancelled
func Run(ctx context.Context, opts Options, deps Dependencies) error {
	m := initModel(opts, deps)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, deps Dependencies) model {
	debugf := func(string, ...interface{}) {}
	if deps.Logger != nil {
		debugf = deps.Logger.Debugf
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	copyText := deps.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	items := deps.Items
	if len(items) == 0 {
		items = content.SampleItems(40)
	}

	// Allocate localConfig on heap so parameter pointers remain valid
	cfg := deps.ConfigProvider.Get()
	localConfig := &cfg

	host := &hostState{
		now:     now,
		history: NewPositionHistory(maxHistorySize),
	}
	list := NewListRegion(items)

	drawerCfg, err := localConfig.ToDrawer()
	if err != nil {
		debugf("[TUI] %v", err)
	}

	logger := drawer.LoggerFunc(debugf)
	d := drawer.New(drawerCfg,
		drawer.WithLogger(logger),
		drawer.WithContentSizer(func() float64 {
			return float64(list.Len() + drawerChrome)
		}),
		drawer.WithObserver(&drawer.ObserverFuncs{
			OnWillTransition: func(from, _ drawer.Position) {
				host.leaving = from
			},
			OnDidTransition: func(to drawer.Position) {
				if !host.restoring {
					host.history.Push(host.leaving)
				}
				host.setStatus(fmt.Sprintf("Drawer %s", to))
			},
		}),
	)

	sheet := presentation.NewSheet(sheetConfig(drawerCfg), drawer.WithLogger(logger))
	sheet.OnDismiss(func() {
		host.setStatus("Details dismissed")
	})

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "filter rows"

	title := opts.Title
	if title == "" {
		title = "drawerview"
	}

	m := model{
		sharedConfig: deps.ConfigProvider,
		debugf:       debugf,
		copyText:     copyText,
		now:          now,
		changes:      deps.ConfigChanges,

		localConfig: localConfig,
		paramMgr:    NewParamManager(buildParams(localConfig)),
		configPath:  opts.ConfigPath,

		drawer: d,
		sheet:  sheet,
		list:   list,
		host:   host,

		pointer: pointerState{tracker: NewVelocityTracker(velocityWindow)},

		search:     search,
		title:      title,
		background: viewport.New(0, 0), // Width and height set on first WindowSizeMsg
	}

	return m
}

// sheetConfig derives the detail sheet's configuration from the drawer's
func sheetConfig(cfg drawer.Config) drawer.Config {
	cfg.Positions = []drawer.Position{drawer.Open, drawer.Closed}
	cfg.OpenHeight = drawer.OpenHeightPolicy{Mode: drawer.OpenFixed, Height: sheetHeight}
	cfg.Overlay = drawer.OverlayDisabled
	return cfg
}

// geometry returns the container geometry for the current terminal size
func (m model) geometry() drawer.Geometry {
	return drawer.Geometry{
		Height:         float64(m.height),
		SafeAreaBottom: statusBarHeight,
	}
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return waitForConfigChange(m.changes)
}

// waitForConfigChange waits for the next debounced config file change
func waitForConfigChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}

	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

// scheduleFrame requests the next animation frame for the current epoch
func scheduleFrame(epoch int) tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{epoch: epoch, at: t}
	})
}
