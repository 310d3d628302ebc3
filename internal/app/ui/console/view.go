package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"siemctl/internal/app/events"
	"siemctl/internal/app/monitor"
	"siemctl/internal/app/render"
	"siemctl/internal/app/ui/components"
	"siemctl/internal/config"
)

// fixed columns plus the separating spaces
const fixedColumnsWidth = components.ColWidthIndicator + components.ColWidthTimestamp + components.ColWidthAgent +
	components.ColWidthType + components.ColWidthSeverity + components.ColWidthUser + 5

// View renders the console
func (m Model) View() string {
	if !m.state.ready {
		return render.LoadingText
	}

	switch m.state.focus {
	case focusModal:
		return m.renderModal()
	case focusAlert:
		return m.renderAlert()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderHeader(m.ui.width, m.renderTitle(), render.CountLabel(m.view.Total())),
		m.renderInputs(),
		m.renderSelection(),
		m.renderColumnHeaders(),
		m.ui.table.View(),
		m.renderStatus(),
		components.RenderFooter(m.ui.width, m.renderStats(), m.ui.help.View(m.ui.keys)),
	)
}

func (m Model) renderTitle() string {
	title := components.TitleStyle.Render("события")

	if m.view.Loading() {
		return m.ui.spinner.View() + " " + title
	}

	return title
}

func (m Model) renderInputs() string {
	regex := components.MutedStyle.Render("[ ] regex")
	if m.view.Filter().Regex {
		regex = components.FocusedLabelStyle.Render("[✓] regex")
	}

	line := m.ui.search.View() + "  " + regex + "  " + m.ui.agent.View()

	if err := m.view.FilterErr(); err != nil {
		line += "  " + components.WarningStyle.Render("шаблон не применён")
	}

	return components.Truncate(line, m.ui.width)
}

// renderSelection shows the open picker, or a summary of the selected checkboxes
func (m Model) renderSelection() string {
	f := m.view.Filter()

	switch m.state.focus {
	case focusSeverity:
		return components.Truncate(m.renderPicker("важность", events.Severities, f.HasSeverity), m.ui.width)
	case focusType:
		return components.Truncate(m.renderPicker("тип", m.filterTypes(), f.HasType), m.ui.width)
	}

	severities := "все"
	if len(f.Severities) > 0 {
		severities = strings.Join(f.Severities, ",")
	}

	types := "все"
	if len(f.Types) > 0 {
		types = strings.Join(f.Types, ",")
	}

	summary := fmt.Sprintf("важность: %s  тип: %s", severities, types)

	return components.MutedStyle.Render(components.Truncate(render.Sanitize(summary), m.ui.width))
}

func (m Model) renderPicker(label string, options []string, checked func(string) bool) string {
	var b strings.Builder

	b.WriteString(components.FocusedLabelStyle.Render(label + ":"))

	if len(options) == 0 {
		b.WriteString(" " + components.MutedStyle.Render("нет значений"))
	}

	for i, opt := range options {
		box := "[ ]"
		if checked(opt) {
			box = components.SuccessStyle.Render("[✓]")
		}

		item := box + " " + render.Sanitize(opt)
		if i == m.state.picker {
			item = components.SelectedRowStyle.Render(item)
		}

		b.WriteString("  " + item)
	}

	return b.String()
}

func (m Model) messageWidth() int {
	return max(m.ui.width-fixedColumnsWidth, components.MessageMinWidth)
}

func (m Model) renderColumnHeaders() string {
	cols := []string{
		strings.Repeat(" ", components.ColWidthIndicator),
		components.TruncateAndPad("время", components.ColWidthTimestamp),
		components.TruncateAndPad("агент", components.ColWidthAgent),
		components.TruncateAndPad("тип", components.ColWidthType),
		components.TruncateAndPad("важность", components.ColWidthSeverity),
		components.TruncateAndPad("пользователь", components.ColWidthUser),
		components.TruncateAndPad("сообщение", m.messageWidth()),
	}

	return components.ColumnHeaderStyle.Render(cols[0] + strings.Join(cols[1:], " "))
}

// refreshTable re-renders the rows into the table viewport and keeps the cursor visible
func (m *Model) refreshTable() {
	m.ui.table.SetContent(strings.Join(m.tableLines(), "\n"))

	if m.ui.table.Height <= 0 {
		return
	}

	offset := m.ui.table.YOffset
	if m.state.cursor < offset {
		offset = m.state.cursor
	} else if m.state.cursor >= offset+m.ui.table.Height {
		offset = m.state.cursor - m.ui.table.Height + 1
	}

	m.ui.table.SetYOffset(offset)
}

// tableLines renders the table body: rows plus the sentinel, or a single placeholder
func (m Model) tableLines() []string {
	rowsEvents := m.view.Events()

	switch {
	case m.view.Status() == events.StatusError:
		return []string{components.ErrorStyle.Render(render.ErrorText)}
	case len(rowsEvents) == 0 && (m.view.Status() == events.StatusLoading || m.view.Status() == events.StatusIdle):
		return []string{m.ui.spinner.View() + " " + components.PlaceholderStyle.Render(render.LoadingText)}
	}

	lines := make([]string, 0, len(rowsEvents)+1)

	if len(rowsEvents) == 0 {
		lines = append(lines, components.PlaceholderStyle.Render(render.EmptyText))
	}

	for _, row := range render.Rows(rowsEvents) {
		lines = append(lines, m.renderRow(row, row.Index == m.state.cursor))
	}

	if m.view.SentinelVisible() && m.view.Accumulated() > 0 {
		lines = append(lines, m.ui.blink.Render(components.SentinelStyle)+" "+components.MutedStyle.Render(render.LoadingMoreText))
	}

	return lines
}

func (m Model) renderRow(row render.Row, selected bool) string {
	indicator := "  "
	if selected {
		indicator = "▸ "
	}

	badge := components.TruncateAndPad(render.Sanitize(row.Badge), components.ColWidthSeverity)
	if !selected {
		badge = render.SeverityStyle(row.Severity).UnsetPadding().Render(badge)
	}

	line := indicator +
		components.TruncateAndPad(row.Timestamp, components.ColWidthTimestamp) + " " +
		components.TruncateAndPad(render.Sanitize(row.AgentID), components.ColWidthAgent) + " " +
		components.TruncateAndPad(render.Sanitize(row.Type), components.ColWidthType) + " " +
		badge + " " +
		components.TruncateAndPad(render.Sanitize(row.User), components.ColWidthUser) + " " +
		components.Truncate(render.Sanitize(row.Message), m.messageWidth())

	if selected {
		return components.SelectedRowStyle.Width(m.ui.width).Render(line)
	}

	return components.RowStyle.Render(line)
}

// renderStatus shows pagination or scroll progress, then the latest notice or a tip
func (m Model) renderStatus() string {
	var left string

	if m.view.Mode() == config.ModePaged {
		prev, next := components.MutedStyle.Render("◀"), components.MutedStyle.Render("▶")
		if m.view.PrevEnabled() {
			prev = components.FocusedLabelStyle.Render("◀")
		}

		if m.view.NextEnabled() {
			next = components.FocusedLabelStyle.Render("▶")
		}

		left = fmt.Sprintf("%s %s %s", prev, render.PaginationLabel(m.view.Page(), m.view.PageSize(), m.view.Total()), next)
	} else {
		left = fmt.Sprintf("загружено %d из %d", m.view.Accumulated(), m.view.Total())
	}

	right := components.Tip(m.ui.tickCounter, m.ui.tipOffset)
	if m.state.notice != "" {
		right = components.SuccessStyle.Render(render.Sanitize(m.state.notice))
	}

	gap := max(m.ui.width-lipgloss.Width(left)-lipgloss.Width(right), 2)

	return components.Truncate(left+strings.Repeat(" ", gap)+right, m.ui.width)
}

func (m Model) renderStats() string {
	if m.state.stats == (monitor.Stats{}) {
		return ""
	}

	return m.state.stats.String()
}
