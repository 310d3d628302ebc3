package console

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"siemctl/internal/app/errors"
	"siemctl/internal/app/events"
	"siemctl/internal/app/export"
	"siemctl/internal/app/ui/components"
	"siemctl/internal/config"
)

const wheelStep = 3

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.help.Width = msg.Width
		m.state.ready = true

		m.layout()
		m.refreshTable()

		return m, m.maybeLoadMore()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.ui.spinner, cmd = m.ui.spinner.Update(msg)

		return m, cmd

	case tickMsg:
		m.ui.tickCounter++

		if m.view.SentinelVisible() {
			if !m.ui.blink.IsActive() {
				m.ui.blink.Start()
			}

			m.ui.blink.Update()
			m.refreshTable()
		} else if m.ui.blink.IsActive() {
			m.ui.blink.Stop()
		}

		return m, tickCmd()

	case statsMsg:
		if msg.err != nil {
			m.log.Debug().Err(msg.err).Msg("Failed to sample own stats")
		} else {
			m.state.stats = msg.stats
		}

		return m, statsCmd(m.ctx, m.monitor, components.StatsInterval)

	case eventsMsg:
		return m.handleEvents(msg)

	case debounceMsg:
		if msg.seq != m.state.searchSeq {
			return m, nil
		}

		return m, m.applyFilter()

	case exportMsg:
		return m.handleExport(msg)
	}

	return m, nil
}

// handleEvents folds a page response into the view
func (m Model) handleEvents(msg eventsMsg) (tea.Model, tea.Cmd) {
	outcome := m.view.Apply(msg.req, msg.resp, msg.err)

	switch outcome {
	case events.OutcomeStale:
		return m, nil

	case events.OutcomeFailed:
		m.log.Error().Err(msg.err).Int("page", msg.req.Page).Msg("Failed to load events")

		if errors.Is(msg.err, errors.ErrInvalidCredentials) {
			if err := m.auth.Logout(); err != nil {
				m.log.Error().Err(err).Msg("Failed to clear rejected credentials")
			}

			return m, logoutCmd
		}

		m.telemetry.CaptureError(msg.err, "LOADER")
		m.refreshTable()

		return m, nil

	case events.OutcomeNoData:
		m.log.Warn().Int("page", msg.req.Page).Msg("Backend returned no data")
		m.refreshTable()

		return m, nil
	}

	m.clampCursor()
	m.refreshTable()

	return m, m.maybeLoadMore()
}

// handleExport shows where the export went or raises the blocking alert
func (m Model) handleExport(msg exportMsg) (tea.Model, tea.Cmd) {
	m.state.exporting = false

	if msg.err == nil {
		m.state.notice = "Файл сохранён: " + msg.path
		return m, nil
	}

	if errors.Is(msg.err, errors.ErrNotAuthenticated) {
		return m, logoutCmd
	}

	m.state.notice = ""
	m.state.alert = export.AlertMessage(msg.err)
	m.state.focus = focusAlert

	return m, nil
}

// handleKeyPress routes keyboard input by focus
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.ui.keys.ForceQuit) {
		m.log.Warn().Msg("Force quit requested")
		m.view.Reset()

		return m, tea.Quit
	}

	switch m.state.focus {
	case focusAlert:
		if key.Matches(msg, m.ui.keys.Detail, m.ui.keys.Close, m.ui.keys.Toggle) {
			m.state.alert = ""
			m.state.focus = focusTable
		}

		return m, nil

	case focusModal:
		return m.handleModalKey(msg)

	case focusSearch, focusAgent:
		return m.handleInputKey(msg)

	case focusSeverity, focusType:
		return m.handlePickerKey(msg)
	}

	return m.handleTableKey(msg)
}

// handleTableKey processes keys while the table has focus
func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ui.keys.Quit):
		m.view.Reset()
		return m, tea.Quit

	case key.Matches(msg, m.ui.keys.Up):
		return m, m.moveCursor(-1)

	case key.Matches(msg, m.ui.keys.Down):
		return m, m.moveCursor(1)

	case key.Matches(msg, m.ui.keys.PageUp):
		return m, m.moveCursor(-m.ui.table.Height)

	case key.Matches(msg, m.ui.keys.PageDown):
		return m, m.moveCursor(m.ui.table.Height)

	case key.Matches(msg, m.ui.keys.Home):
		return m, m.moveCursor(-len(m.view.Events()))

	case key.Matches(msg, m.ui.keys.End):
		return m, m.moveCursor(len(m.view.Events()))

	case key.Matches(msg, m.ui.keys.Search):
		m.state.focus = focusSearch
		return m, m.ui.search.Focus()

	case key.Matches(msg, m.ui.keys.Agent):
		m.state.focus = focusAgent
		return m, m.ui.agent.Focus()

	case key.Matches(msg, m.ui.keys.Regex):
		return m, m.toggleRegex()

	case key.Matches(msg, m.ui.keys.Severity):
		m.state.focus = focusSeverity
		m.state.picker = 0

		return m, nil

	case key.Matches(msg, m.ui.keys.Type):
		m.state.focus = focusType
		m.state.picker = 0

		return m, nil

	case key.Matches(msg, m.ui.keys.Detail):
		m.openModal(m.state.cursor)
		return m, nil

	case key.Matches(msg, m.ui.keys.PrevPage):
		req, ok := m.view.PrevPage(m.ctx)
		if !ok {
			return m, nil
		}

		m.state.cursor = 0
		m.refreshTable()

		return m, m.fetch(req)

	case key.Matches(msg, m.ui.keys.NextPage):
		req, ok := m.view.NextPage(m.ctx)
		if !ok {
			return m, nil
		}

		m.state.cursor = 0
		m.refreshTable()

		return m, m.fetch(req)

	case key.Matches(msg, m.ui.keys.ExportJSON):
		return m, m.startExport(config.FormatJSON)

	case key.Matches(msg, m.ui.keys.ExportCSV):
		return m, m.startExport(config.FormatCSV)

	case key.Matches(msg, m.ui.keys.Logout):
		if err := m.auth.Logout(); err != nil {
			m.log.Error().Err(err).Msg("Failed to log out")
		}

		m.view.Reset()

		return m, logoutCmd

	case key.Matches(msg, m.ui.keys.Help):
		m.ui.help.ShowAll = !m.ui.help.ShowAll
		m.layout()
		m.refreshTable()

		return m, nil
	}

	return m, nil
}

// handleInputKey edits the search or agent input; changes apply after the debounce
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ui.keys.Regex):
		return m, m.toggleRegex()

	case key.Matches(msg, m.ui.keys.Close, m.ui.keys.Detail):
		m.ui.search.Blur()
		m.ui.agent.Blur()
		m.state.focus = focusTable
		m.state.searchSeq++

		return m, m.applyFilter()
	}

	input := &m.ui.search
	if m.state.focus == focusAgent {
		input = &m.ui.agent
	}

	before := input.Value()

	var cmd tea.Cmd

	*input, cmd = input.Update(msg)

	if input.Value() == before {
		return m, cmd
	}

	m.state.searchSeq++

	return m, tea.Batch(cmd, debounceCmd(m.debounce, m.state.searchSeq))
}

// handlePickerKey moves through and toggles severity or type checkboxes
func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.pickerOptions()

	switch {
	case key.Matches(msg, m.ui.keys.Up):
		if m.state.picker > 0 {
			m.state.picker--
		}

	case key.Matches(msg, m.ui.keys.Down):
		if m.state.picker < len(options)-1 {
			m.state.picker++
		}

	case key.Matches(msg, m.ui.keys.Toggle):
		if m.state.picker >= len(options) {
			return m, nil
		}

		f := m.view.Filter()
		if m.state.focus == focusType {
			f.ToggleType(options[m.state.picker])
		} else {
			f.ToggleSeverity(options[m.state.picker])
		}

		m.view.SetFilter(f)
		m.clampCursor()
		m.refreshTable()

		return m, m.maybeLoadMore()

	case key.Matches(msg, m.ui.keys.Close, m.ui.keys.Detail, m.ui.keys.Quit, m.ui.keys.Severity, m.ui.keys.Type):
		m.state.focus = focusTable
	}

	return m, nil
}

// handleMouse selects rows, scrolls and closes the modal on outside clicks
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.state.focus {
	case focusAlert:
		return m, nil

	case focusModal:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.insideModal(msg.X, msg.Y) {
			m.closeModal()
			return m, nil
		}

		var cmd tea.Cmd

		m.ui.modal, cmd = m.ui.modal.Update(msg)

		return m, cmd
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m, m.moveCursor(-wheelStep)

	case tea.MouseButtonWheelDown:
		return m, m.moveCursor(wheelStep)

	case tea.MouseButtonLeft:
		row := msg.Y - components.HeaderLines + m.ui.table.YOffset
		if msg.Y < components.HeaderLines || row >= len(m.view.Events()) {
			return m, nil
		}

		m.state.cursor = row
		m.refreshTable()
		m.openModal(row)
	}

	return m, nil
}

// applyFilter copies the inputs into the filter and re-renders
func (m *Model) applyFilter() tea.Cmd {
	f := m.view.Filter()
	f.Search = m.ui.search.Value()
	f.Agent = m.ui.agent.Value()

	m.view.SetFilter(f)
	m.clampCursor()
	m.refreshTable()

	return m.maybeLoadMore()
}

// toggleRegex flips regex mode, which reloads from the first page
func (m *Model) toggleRegex() tea.Cmd {
	f := m.view.Filter()
	f.Search = m.ui.search.Value()
	m.view.SetFilter(f)

	req, ok := m.view.SetRegex(m.ctx, !f.Regex)

	m.state.cursor = 0
	m.ui.table.SetYOffset(0)
	m.refreshTable()

	if !ok {
		return nil
	}

	return m.fetch(req)
}

// startExport launches an export unless one is already running
func (m *Model) startExport(format string) tea.Cmd {
	if m.state.exporting {
		return nil
	}

	m.state.exporting = true
	m.state.notice = "Экспорт " + format + "..."

	return exportCmd(m.ctx, m.exporter, format)
}

// moveCursor shifts the selection and loads more when the end comes into view
func (m *Model) moveCursor(delta int) tea.Cmd {
	m.state.cursor += delta
	m.clampCursor()
	m.refreshTable()

	return m.maybeLoadMore()
}

func (m *Model) clampCursor() {
	last := len(m.view.Events()) - 1
	m.state.cursor = max(min(m.state.cursor, last), 0)
}

// maybeLoadMore requests the next page when the sentinel row is on screen
func (m Model) maybeLoadMore() tea.Cmd {
	if !m.sentinelInView() {
		return nil
	}

	req, ok := m.view.LoadMore(m.ctx)
	if !ok {
		return nil
	}

	return m.fetch(req)
}

// sentinelInView reports whether the end of the table is visible
func (m Model) sentinelInView() bool {
	if !m.state.ready || m.view.Mode() != config.ModeScroll || !m.view.HasMore() {
		return false
	}

	// an empty filtered table shows the sentinel too, so a filter without matches keeps pulling pages
	rows := len(m.view.Events())
	if rows == 0 {
		return true
	}

	return m.state.cursor >= rows-sentinelMargin || m.ui.table.AtBottom()
}

// layout sizes the table and modal viewports for the terminal
func (m *Model) layout() {
	extra := 0
	if m.ui.help.ShowAll {
		extra = len(m.ui.keys.FullHelp()[0]) - 1
	}

	m.ui.table.Width = m.ui.width
	m.ui.table.Height = max(m.tableHeight()-extra, components.MinTableHeight)

	m.ui.modal.Width = max(m.ui.width-2*components.ModalMarginX-4, 10)
	m.ui.modal.Height = max(m.ui.height-2*components.ModalMarginY-3, 3)

	m.ui.search.Width = max(m.ui.width/2-12, 10)
	m.ui.agent.Width = max(m.ui.width/4-10, 8)
}
