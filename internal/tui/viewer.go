package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/internal/service"
	"github.com/MKhiriev/go-bizsync/models"
)

type pane int

const (
	paneResources pane = iota
	paneQueue
)

// viewerModel shows one summary row per resource and the queue of the
// selected resource.
type viewerModel struct {
	ctx    context.Context
	sync   service.SyncService
	events <-chan engine.Event

	summaries []engine.Summary
	queue     []models.QueueItem
	resIdx    int
	queueIdx  int
	focus     pane

	loading bool
	syncing bool
	spinner spinner.Model
	status  string

	showConfirm   bool
	confirm       confirmModel
	showError     bool
	errorOverlay  errorOverlayModel
	showBuildInfo bool
	buildInfo     models.AppBuildInfo
}

func newViewerModel(ctx context.Context, sync service.SyncService, events <-chan engine.Event, buildInfo models.AppBuildInfo) viewerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return viewerModel{
		ctx:       ctx,
		sync:      sync,
		events:    events,
		spinner:   s,
		loading:   true,
		buildInfo: buildInfo,
	}
}

func (m viewerModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadSnapshot(), m.cmdWaitForEvent())
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.loading = false
		m.summaries = msg.summaries
		m.queue = msg.queue
		m.clampSelection()
		return m, nil
	case engineEventMsg:
		return m, tea.Batch(m.cmdLoadSnapshot(), m.cmdWaitForEvent())
	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.showErrorOverlay("Ошибка синхронизации", humanizeError(msg.err.Error()))
		} else {
			m.status = "Синхронизация завершена"
		}
		return m, tea.Batch(m.cmdLoadSnapshot(), cmdClearStatus())
	case queueClearedMsg:
		if msg.err != nil {
			m.showErrorOverlay("Ошибка очистки", humanizeError(msg.err.Error()))
			return m, nil
		}
		m.status = fmt.Sprintf("Очередь %s очищена: %d", msg.resource, msg.dropped)
		return m, tea.Batch(m.cmdLoadSnapshot(), cmdClearStatus())
	case copiedMsg:
		m.status = "Скопировано!"
		return m, cmdClearStatus()
	case copyFailedMsg:
		m.showErrorOverlay("Буфер обмена недоступен", msg.err.Error())
		return m, nil
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		if m.syncing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m viewerModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.showError:
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
		}
		return m, nil
	case m.showConfirm:
		switch {
		case key.Matches(msg, keys.yes):
			m.showConfirm = false
			return m, m.cmdClearQueue(m.confirm.resource)
		case key.Matches(msg, keys.no):
			m.showConfirm = false
		}
		return m, nil
	case m.showBuildInfo:
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		m.move(-1)
	case key.Matches(msg, keys.down):
		m.move(1)
	case key.Matches(msg, keys.tab):
		if m.focus == paneResources {
			m.focus = paneQueue
		} else {
			m.focus = paneResources
		}
		m.clampSelection()
	case key.Matches(msg, keys.sync):
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		return m, tea.Batch(m.spinner.Tick, m.cmdSync())
	case key.Matches(msg, keys.clear):
		resource, ok := m.selectedResource()
		if !ok {
			return m, nil
		}
		m.showConfirm = true
		m.confirm = confirmModel{resource: resource, count: len(m.resourceQueue())}
	case key.Matches(msg, keys.copy):
		text, ok := m.selectedLastError()
		if !ok {
			m.status = "У элемента нет ошибки"
			return m, cmdClearStatus()
		}
		return m, cmdCopyToClipboard(text)
	case key.Matches(msg, keys.version):
		m.showBuildInfo = true
	}

	return m, nil
}

func (m *viewerModel) move(delta int) {
	if m.focus == paneResources {
		m.resIdx += delta
		m.queueIdx = 0
	} else {
		m.queueIdx += delta
	}
	m.clampSelection()
}

func (m *viewerModel) clampSelection() {
	m.resIdx = clamp(m.resIdx, len(m.summaries))
	m.queueIdx = clamp(m.queueIdx, len(m.resourceQueue()))
}

func clamp(idx, n int) int {
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func (m viewerModel) selectedResource() (string, bool) {
	if len(m.summaries) == 0 {
		return "", false
	}
	return m.summaries[m.resIdx].Resource, true
}

// resourceQueue returns the queue items of the selected resource.
func (m viewerModel) resourceQueue() []models.QueueItem {
	resource, ok := m.selectedResource()
	if !ok {
		return nil
	}

	var out []models.QueueItem
	for _, item := range m.queue {
		if item.TableName == resource {
			out = append(out, item)
		}
	}
	return out
}

// selectedLastError returns the last error of the selected queue item. With
// the resource pane focused the first failed item of the resource is used.
func (m viewerModel) selectedLastError() (string, bool) {
	items := m.resourceQueue()
	if m.focus == paneQueue {
		if len(items) == 0 {
			return "", false
		}
		item := items[m.queueIdx]
		if item.LastError == nil || *item.LastError == "" {
			return "", false
		}
		return *item.LastError, true
	}

	for _, item := range items {
		if item.LastError != nil && *item.LastError != "" {
			return *item.LastError, true
		}
	}
	return "", false
}

func (m *viewerModel) showErrorOverlay(title, message string) {
	m.showError = true
	m.errorOverlay = errorOverlayModel{title: title, message: message}
}

func (m viewerModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	header := titleStyle.Render("go-bizsync: очередь синхронизации")
	if m.syncing {
		header += "  " + m.spinner.View()
	}

	var b strings.Builder
	if m.loading {
		b.WriteString("Загрузка...\n")
	} else {
		b.WriteString(m.viewResources())
		b.WriteString("\n")
		b.WriteString(m.viewQueue())
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	body := renderPage(header, b.String(),
		helpStyle.Render("↑/↓ выбор  tab панель  s синхр.  c очистить  y копировать ошибку  v версия  q выход"))

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m viewerModel) viewResources() string {
	title := "Ресурсы"
	if m.focus == paneResources {
		title = focusStyle.Render(title)
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	if len(m.summaries) == 0 {
		b.WriteString("  -\n")
		return b.String()
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf("  %-14s %6s %8s %8s %6s %7s", "ресурс", "всего", "ожидает", "удаление", "ошибки", "очередь")) + "\n")
	for i, s := range m.summaries {
		cursor := "  "
		if i == m.resIdx {
			cursor = "> "
		}
		row := fmt.Sprintf("%s%-14s %6d %8d %8d %6d %7d", cursor, s.Resource, s.Items, s.Pending, s.PendingDelete, s.Errors, s.QueueLength)
		switch {
		case s.Errors > 0:
			row = errorStyle.Render(row)
		case s.QueueLength > 0:
			row = pendingStyle.Render(row)
		}
		b.WriteString(row + "\n")
		if s.LastLoadError != "" && i == m.resIdx {
			b.WriteString("    " + helpStyle.Render(humanizeError(s.LastLoadError)) + "\n")
		}
	}
	return b.String()
}

func (m viewerModel) viewQueue() string {
	resource, _ := m.selectedResource()
	title := "Очередь " + resource
	if m.focus == paneQueue {
		title = focusStyle.Render(title)
	}

	var b strings.Builder
	b.WriteString(title + "\n")

	items := m.resourceQueue()
	if len(items) == 0 {
		b.WriteString("  Очередь пуста\n")
		return b.String()
	}

	for i, item := range items {
		cursor := "  "
		if m.focus == paneQueue && i == m.queueIdx {
			cursor = "> "
		}

		target := "-"
		if id, ok := item.Target(); ok {
			target = engine.RecordIDFromWire(id).String()
		}

		row := fmt.Sprintf("%s#%-5d %-6s %-14s %-7s %d", cursor, item.ID, item.Op, target, item.Status, item.Attempts)
		if item.Status == models.QueueStatusError {
			row = errorStyle.Render(row) + "  " + fitText(valueOrDash(item.LastError), 40)
		}
		b.WriteString(row + "\n")
	}
	return b.String()
}

// ─────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────

func (m viewerModel) cmdLoadSnapshot() tea.Cmd {
	ctx := m.ctx
	svc := m.sync
	return func() tea.Msg {
		return snapshotMsg{
			summaries: svc.Summaries(),
			queue:     svc.QueueItems(ctx),
		}
	}
}

func (m viewerModel) cmdWaitForEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return engineEventMsg{event: ev}
	}
}

func (m viewerModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	svc := m.sync
	return func() tea.Msg {
		return syncDoneMsg{err: svc.SyncAll(ctx)}
	}
}

func (m viewerModel) cmdClearQueue(resource string) tea.Cmd {
	ctx := m.ctx
	svc := m.sync
	return func() tea.Msg {
		dropped, err := svc.ClearQueue(ctx, resource)
		return queueClearedMsg{resource: resource, dropped: dropped, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copyFailedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
