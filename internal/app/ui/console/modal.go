package console

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"siemctl/internal/app/render"
	"siemctl/internal/app/ui/components"
)

// openModal shows the detail view for the filtered event at index
func (m *Model) openModal(index int) {
	e, ok := m.view.Event(index)
	if !ok {
		return
	}

	content, err := render.HighlightJSON(e, render.NewTermPainter())
	if err != nil {
		m.log.Error().Err(err).Int("index", index).Msg("Failed to format event")
		return
	}

	m.ui.modal.SetContent(content)
	m.ui.modal.GotoTop()
	m.state.focus = focusModal
}

// closeModal returns focus to the table
func (m *Model) closeModal() {
	m.state.focus = focusTable
}

// handleModalKey scrolls the detail view or closes it
func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.ui.keys.Close, m.ui.keys.Quit) {
		m.closeModal()
		return m, nil
	}

	var cmd tea.Cmd

	m.ui.modal, cmd = m.ui.modal.Update(msg)

	return m, cmd
}

// modalBox renders the framed detail view
func (m Model) modalBox() string {
	title := components.TitleStyle.Render(fmt.Sprintf("Событие #%d", m.state.cursor+1))
	hint := components.HelpStyle.Render("esc закрыть")
	header := components.PadRight(title, m.ui.modal.Width-lipgloss.Width(hint)) + hint

	return components.ModalStyle.Width(m.ui.modal.Width + 2).Render(header + "\n" + m.ui.modal.View())
}

// insideModal reports whether a cell falls within the centered modal box
func (m Model) insideModal(x, y int) bool {
	box := m.modalBox()
	w, h := lipgloss.Width(box), lipgloss.Height(box)

	left := int(math.Round(float64(m.ui.width-w) * 0.5))
	top := int(math.Round(float64(m.ui.height-h) * 0.5))

	return x >= left && x < left+w && y >= top && y < top+h
}

func (m Model) renderModal() string {
	return components.Center(m.ui.width, m.ui.height, m.modalBox())
}

func (m Model) renderAlert() string {
	body := components.ErrorStyle.Bold(true).Render(render.Sanitize(m.state.alert)) +
		"\n\n" + components.HelpStyle.Render("enter OK")

	return components.Center(m.ui.width, m.ui.height, components.AlertStyle.Render(body))
}
