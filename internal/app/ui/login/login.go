package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"siemctl/internal/app/auth"
	"siemctl/internal/app/ui/components"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

// Form messages
const (
	MissingFieldsText = "Введите имя пользователя и пароль"
	FailedText        = "Неверное имя пользователя или пароль"
	CheckingText      = "Проверка..."
)

const (
	fieldUsername = iota
	fieldPassword
)

// SuccessMsg is emitted once the backend accepted the credentials
type SuccessMsg struct {
	Username string
}

type resultMsg struct {
	username string
	ok       bool
}

// Model is the Bubble Tea model of the login form
type Model struct {
	ctx  context.Context
	auth auth.Auth

	state struct {
		field      int
		submitting bool
		err        string
	}

	ui struct {
		width    int
		height   int
		keys     KeyMap
		help     help.Model
		username textinput.Model
		password textinput.Model
		spinner  spinner.Model
	}

	log logger.Logger
}

// NewModel creates the login form with the username field focused
func NewModel(ctx context.Context, a auth.Auth, log logger.Logger) Model {
	m := Model{
		ctx:  ctx,
		auth: a,
		log:  log.WithComponent("UI"),
	}

	m.ui.keys = DefaultKeyMap()
	m.ui.help = help.New()

	m.ui.username = textinput.New()
	m.ui.username.Prompt = "пользователь: "
	m.ui.username.CharLimit = 128
	m.ui.username.Focus()

	m.ui.password = textinput.New()
	m.ui.password.Prompt = "пароль:       "
	m.ui.password.CharLimit = 128
	m.ui.password.EchoMode = textinput.EchoPassword
	m.ui.password.EchoCharacter = '•'

	m.ui.spinner = spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(components.SpinnerStyle))

	return m
}

// Init starts the cursor blink
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.state.submitting {
			return m, nil
		}

		var cmd tea.Cmd

		m.ui.spinner, cmd = m.ui.spinner.Update(msg)

		return m, cmd

	case resultMsg:
		m.state.submitting = false

		if msg.ok {
			m.log.Info().Str("user", msg.username).Msg("Signed in")
			return m, func() tea.Msg { return SuccessMsg{Username: msg.username} }
		}

		m.state.err = FailedText
		m.ui.password.Reset()

		return m, m.focus(fieldPassword)
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.ui.keys.Quit) {
		return m, tea.Quit
	}

	if m.state.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.ui.keys.Next, m.ui.keys.Prev):
		return m, m.focus(1 - m.state.field)

	case key.Matches(msg, m.ui.keys.Submit):
		if m.state.field == fieldUsername && m.ui.password.Value() == "" {
			return m, m.focus(fieldPassword)
		}

		return m.submit()
	}

	return m.updateInput(msg)
}

func (m *Model) focus(field int) tea.Cmd {
	m.state.field = field

	if field == fieldPassword {
		m.ui.username.Blur()
		return m.ui.password.Focus()
	}

	m.ui.password.Blur()

	return m.ui.username.Focus()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.ui.username.Value())
	password := m.ui.password.Value()

	if username == "" || password == "" {
		m.state.err = MissingFieldsText
		return m, nil
	}

	m.state.err = ""
	m.state.submitting = true

	return m, tea.Batch(m.ui.spinner.Tick, loginCmd(m.ctx, m.auth, username, password))
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.state.field == fieldPassword {
		m.ui.password, cmd = m.ui.password.Update(msg)
	} else {
		m.ui.username, cmd = m.ui.username.Update(msg)
	}

	return m, cmd
}

func loginCmd(ctx context.Context, a auth.Auth, username, password string) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{username: username, ok: a.Login(ctx, username, password)}
	}
}

// View renders the login form centered on screen
func (m Model) View() string {
	lines := []string{
		components.TitleStyle.Render(config.AppName + " · вход в SIEM"),
		"",
		m.ui.username.View(),
		m.ui.password.View(),
		"",
	}

	switch {
	case m.state.submitting:
		lines = append(lines, m.ui.spinner.View()+" "+components.MutedStyle.Render(CheckingText))
	case m.state.err != "":
		lines = append(lines, components.ErrorStyle.Render(m.state.err))
	default:
		lines = append(lines, "")
	}

	lines = append(lines, "", m.ui.help.View(m.ui.keys))

	panel := components.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	if m.ui.width == 0 || m.ui.height == 0 {
		return panel
	}

	return components.Center(m.ui.width, m.ui.height, panel)
}
