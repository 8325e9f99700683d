package tui

// errorOverlayModel is drawn under the page until enter or esc.
type errorOverlayModel struct {
	title   string
	message string
}

func (m errorOverlayModel) View() string {
	title := m.title
	if title == "" {
		title = "Ошибка"
	}
	content := errorStyle.Render(title) + "\n\n" + m.message + "\n\n" + helpStyle.Render("enter / esc закрыть")
	return overlayBoxStyle.Render(content)
}
