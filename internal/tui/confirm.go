package tui

import "fmt"

type confirmModel struct {
	resource string
	count    int
}

func (m confirmModel) View() string {
	content := fmt.Sprintf("Очистить очередь \"%s\" (%d)?\n", m.resource, m.count)
	content += "Несинхронизированные изменения будут потеряны.\n\n"
	content += "y да    n нет"
	return overlayBoxStyle.Render(content)
}
