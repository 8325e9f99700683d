package tui

import "strings"

const pageWidth = 72

var uiDivider = strings.Repeat("─", pageWidth)

// renderPage lays out title, an indented body and the hot key line.
func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(title + "\n")
	b.WriteString("  " + uiDivider + "\n\n")

	if strings.TrimSpace(data) == "" {
		b.WriteString("  -\n")
	}
	for _, line := range strings.Split(strings.TrimRight(data, "\n"), "\n") {
		if line == "" && strings.TrimSpace(data) == "" {
			continue
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n  " + uiDivider + "\n")
	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  " + hotKeys + "\n")
	}
	b.WriteString("  ctrl+c: выход")

	return b.String()
}

func valueOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

// fitText cuts v to max runes, marking the cut with "...".
func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
