package console

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"siemctl/internal/app/api"
	"siemctl/internal/app/auth"
	"siemctl/internal/app/events"
	"siemctl/internal/app/export"
	"siemctl/internal/app/monitor"
	"siemctl/internal/app/telemetry"
	"siemctl/internal/app/ui/components"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

// focus is the region receiving key presses
type focus int

const (
	focusTable focus = iota
	focusSearch
	focusAgent
	focusSeverity
	focusType
	focusModal
	focusAlert
)

// sentinelMargin is how close to the last row the cursor must be to load more
const sentinelMargin = 3

// Deps are the collaborators of the console
type Deps struct {
	Auth      auth.Auth
	Client    api.Client
	Exporter  export.Exporter
	Telemetry telemetry.Telemetry
	Monitor   monitor.Monitor
}

// Model is the Bubble Tea model of the event console
type Model struct {
	ctx       context.Context
	auth      auth.Auth
	client    api.Client
	exporter  export.Exporter
	telemetry telemetry.Telemetry
	monitor   monitor.Monitor
	view      *events.View
	debounce  time.Duration

	state struct {
		cursor    int
		focus     focus
		picker    int
		searchSeq int
		alert     string
		notice    string
		exporting bool
		stats     monitor.Stats
		ready     bool
	}

	ui struct {
		width       int
		height      int
		keys        KeyMap
		help        help.Model
		search      textinput.Model
		agent       textinput.Model
		table       viewport.Model
		modal       viewport.Model
		spinner     spinner.Model
		blink       *components.Blink
		tickCounter int
		tipOffset   int
	}

	log logger.Logger
}

// NewModel creates the console for the configured events mode
func NewModel(ctx context.Context, cfg *config.Config, deps Deps, log logger.Logger) Model {
	log = log.WithComponent("UI")

	m := Model{
		ctx:       ctx,
		auth:      deps.Auth,
		client:    deps.Client,
		exporter:  deps.Exporter,
		telemetry: deps.Telemetry,
		monitor:   deps.Monitor,
		view:      events.NewView(cfg.Events.Mode, log),
		debounce:  cfg.Events.Debounce,
		log:       log,
	}

	m.ui.keys = DefaultKeyMap()
	m.ui.help = help.New()
	m.ui.search = newInput("поиск: ", "текст или регулярное выражение")
	m.ui.agent = newInput("агент: ", "glob, например web-*")
	m.ui.table = viewport.New(0, 0)
	m.ui.modal = viewport.New(0, 0)
	m.ui.spinner = spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(components.SpinnerStyle))
	m.ui.blink = components.NewBlink()
	m.ui.tipOffset = rand.Intn(len(components.Tips)) //nolint:gosec // not security-critical

	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = 256

	return in
}

// Init starts the first load and the background tickers
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.ui.spinner.Tick, tickCmd(), statsCmd(m.ctx, m.monitor, 0)}

	if cmd := m.start(); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return tea.Batch(cmds...)
}

// Events returns the event state backing the console
func (m Model) Events() *events.View {
	return m.view
}

// start issues the initial load, or asks for login when credentials are gone
func (m Model) start() tea.Cmd {
	if !m.auth.RequireAuth() {
		return logoutCmd
	}

	req, ok := m.view.Start(m.ctx)
	if !ok {
		return nil
	}

	return m.fetch(req)
}

// fetch turns a view request into a command; missing credentials become a logout
func (m Model) fetch(req events.Request) tea.Cmd {
	creds, ok := m.auth.Credentials()
	if !ok {
		m.view.Reset()
		return logoutCmd
	}

	return fetchCmd(m.client, *creds, req)
}

// filterTypes returns the type options of the picker
func (m Model) filterTypes() []string {
	return m.view.Types()
}

// pickerOptions returns the options of the open picker
func (m Model) pickerOptions() []string {
	if m.state.focus == focusType {
		return m.filterTypes()
	}

	return events.Severities
}

// tableHeight is the number of table lines that fit between header and footer
func (m Model) tableHeight() int {
	return max(m.ui.height-components.HeaderLines-components.FooterLines, components.MinTableHeight)
}
