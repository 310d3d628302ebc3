package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"siemctl/internal/app/ui/console"
	"siemctl/internal/app/ui/login"
	"siemctl/internal/app/ui/navigation"
	"siemctl/internal/app/watcher"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

// watchStartedMsg carries the session change stream once the watcher runs
type watchStartedMsg struct {
	changes <-chan watcher.Change
	err     error
}

// sessionMsg reports a session change made outside this process
type sessionMsg watcher.Change

// Model is the root program model: it owns the navigator and the active screen
type Model struct {
	ctx     context.Context
	cfg     *config.Config
	deps    console.Deps
	watcher watcher.Watcher
	nav     navigation.Navigator

	login   login.Model
	console console.Model
	changes <-chan watcher.Change

	size tea.WindowSizeMsg
	log  logger.Logger
}

// NewModel creates the root model, opening the console when credentials are already stored
func NewModel(ctx context.Context, cfg *config.Config, nav navigation.Navigator, deps console.Deps, w watcher.Watcher, log logger.Logger) Model {
	m := Model{
		ctx:     ctx,
		cfg:     cfg,
		deps:    deps,
		watcher: w,
		nav:     nav,
		log:     log.WithComponent("UI"),
	}

	if deps.Auth.IsAuthenticated() {
		nav.SwitchTo(navigation.ViewConsole)
		m.console = console.NewModel(ctx, cfg, deps, log)
	} else {
		nav.SwitchTo(navigation.ViewLogin)
		m.login = login.NewModel(ctx, deps.Auth, log)
	}

	return m
}

// Init starts the session watcher and the active screen
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startWatch(), m.screenInit())
}

// CurrentView returns the active screen
func (m Model) CurrentView() navigation.View {
	return m.nav.CurrentView()
}

// Update handles shell messages and forwards the rest to the active screen
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg

	case login.SuccessMsg:
		return m.showConsole()

	case console.LogoutMsg:
		return m.showLogin()

	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("Session watcher unavailable")
			return m, nil
		}

		m.changes = msg.changes

		return m, m.waitChange()

	case sessionMsg:
		return m.handleSession(msg)
	}

	return m.forward(msg)
}

// View renders the active screen
func (m Model) View() string {
	if m.nav.CurrentView() == navigation.ViewConsole {
		return m.console.View()
	}

	return m.login.View()
}

func (m Model) handleSession(msg sessionMsg) (tea.Model, tea.Cmd) {
	next := m.waitChange()

	switch {
	case !msg.Authenticated && m.nav.CurrentView() == navigation.ViewConsole:
		m.log.Info().Msg("Session ended elsewhere")
		m.console.Events().Reset()

		updated, cmd := m.showLogin()

		return updated, tea.Batch(cmd, next)

	case msg.Authenticated && m.nav.CurrentView() == navigation.ViewLogin:
		m.log.Info().Msg("Session started elsewhere")

		updated, cmd := m.showConsole()

		return updated, tea.Batch(cmd, next)
	}

	return m, next
}

func (m Model) showConsole() (tea.Model, tea.Cmd) {
	if !m.nav.SwitchTo(navigation.ViewConsole) {
		return m, nil
	}

	m.console = console.NewModel(m.ctx, m.cfg, m.deps, m.log)

	return m.resize(m.console.Init())
}

func (m Model) showLogin() (tea.Model, tea.Cmd) {
	m.login = login.NewModel(m.ctx, m.deps.Auth, m.log)

	if !m.nav.SwitchTo(navigation.ViewLogin) {
		return m, nil
	}

	return m.resize(m.login.Init())
}

// resize replays the last window size into a freshly created screen
func (m Model) resize(initCmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.size.Width == 0 {
		return m, initCmd
	}

	updated, cmd := m.forward(m.size)

	return updated, tea.Batch(initCmd, cmd)
}

func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.nav.CurrentView() == navigation.ViewConsole {
		var next tea.Model

		next, cmd = m.console.Update(msg)
		if c, ok := next.(console.Model); ok {
			m.console = c
		}

		return m, cmd
	}

	var next tea.Model

	next, cmd = m.login.Update(msg)
	if l, ok := next.(login.Model); ok {
		m.login = l
	}

	return m, cmd
}

func (m Model) screenInit() tea.Cmd {
	if m.nav.CurrentView() == navigation.ViewConsole {
		return m.console.Init()
	}

	return m.login.Init()
}

func (m Model) startWatch() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	return func() tea.Msg {
		changes, err := m.watcher.Start(m.ctx)
		return watchStartedMsg{changes: changes, err: err}
	}
}

func (m Model) waitChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}

	changes := m.changes

	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}

		return sessionMsg(change)
	}
}
