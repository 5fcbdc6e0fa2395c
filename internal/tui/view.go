package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dupStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("112"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (a *App) View() string {
	var body string
	switch a.view {
	case viewAppeals:
		body = a.renderAppeals()
	case viewFilters:
		body = a.renderFilters()
	case viewStats:
		body = a.renderStats()
	case viewAudit:
		body = a.renderAudit()
	default:
		body = a.renderQueue()
	}

	out := a.renderTabs() + "\n\n" + body
	if a.modal != modalNone {
		out += "\n\n" + a.renderModal()
	}
	out += "\n\n" + a.renderStatusBar()
	return out
}

func (a *App) renderTabs() string {
	tabs := []struct {
		v     viewState
		label string
	}{
		{viewQueue, "1 Queue"},
		{viewAppeals, "2 Appeals"},
		{viewFilters, "3 Filters"},
		{viewStats, "4 Stats"},
		{viewAudit, "5 Audit"},
	}
	parts := make([]string, 0, len(tabs)+1)
	parts = append(parts, titleStyle.Render("modconsole"))
	for _, t := range tabs {
		if t.v == a.view {
			parts = append(parts, activeTabStyle.Render(t.label))
		} else {
			parts = append(parts, tabStyle.Render(t.label))
		}
	}
	return strings.Join(parts, " ")
}

func (a *App) renderQueue() string {
	if len(a.queue) == 0 {
		return dimStyle.Render("review queue is empty")
	}
	var b strings.Builder
	view := a.reportList.Snapshot()
	fmt.Fprintf(&b, "%d flagged items (status=%s)\n\n", len(view.Reports), view.Filters.Status)
	for i, item := range a.queue {
		prefix := "  "
		if i == a.queueCursor {
			prefix = cursorStyle.Render("> ")
		}
		mark := "[ ]"
		if a.selected[item.ID] {
			mark = selectedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s%s %-10s %-8s %-10s %s", prefix, mark, item.Category, item.Priority, item.Status, truncate(item.Excerpt, 48))
		if orig, ok := a.dups[item.ID]; ok {
			line += dupStyle.Render(fmt.Sprintf("  ~dup of %s", orig))
		}
		if item.ID == a.analyzedID && a.lastAnalysis != nil {
			line += okStyle.Render(fmt.Sprintf("  score %.2f", a.lastAnalysis.Score))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("space select · a approve · x reject · e escalate · b bulk · y analyze · enter detail"))
	return b.String()
}

func (a *App) renderAppeals() string {
	if len(a.appeals) == 0 {
		return dimStyle.Render("no appeals") + "\n\n" + dimStyle.Render("n submit appeal")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d appeals\n\n", len(a.appeals))
	for i, ap := range a.appeals {
		prefix := "  "
		if i == a.appealCursor {
			prefix = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%-12s action=%-10s %-9s %s\n", prefix, ap.ID, ap.ActionID, ap.Status, truncate(ap.Reason, 40))
	}
	b.WriteString("\n" + dimStyle.Render("n submit appeal"))
	return b.String()
}

func (a *App) renderFilters() string {
	if len(a.filterIDs) == 0 {
		return dimStyle.Render("no filter rules") + "\n\n" + dimStyle.Render("n new filter")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d filter rules\n\n", len(a.filterIDs))
	for i, id := range a.filterIDs {
		prefix := "  "
		if i == a.filterCursor {
			prefix = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%-12s %s\n", prefix, id, renderRule(a.filters[id]))
	}
	b.WriteString("\n" + dimStyle.Render("n new filter"))
	return b.String()
}

// renderRule flattens an opaque rule into stable key=value pairs.
func renderRule(rule map[string]any) string {
	keys := make([]string, 0, len(rule))
	for k := range rule {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, rule[k]))
	}
	return truncate(strings.Join(parts, " "), 60)
}

func (a *App) renderStats() string {
	s := a.stats.Snapshot()
	var b strings.Builder
	b.WriteString(titleStyle.Render("moderation statistics") + "\n\n")
	fmt.Fprintf(&b, "  total        %d\n", s.Total)
	fmt.Fprintf(&b, "  pending      %d\n", s.Pending)
	fmt.Fprintf(&b, "  resolved     %d\n", s.Resolved)
	fmt.Fprintf(&b, "  auto-flagged %d\n", s.AutoFlagged)
	if snap := a.ctrl.State().Statistics; snap != nil && snap.StartDate != "" {
		fmt.Fprintf(&b, "\n  range %s .. %s\n", snap.StartDate, snap.EndDate)
	}
	b.WriteString("\n" + dimStyle.Render("r refresh"))
	return b.String()
}

func (a *App) renderAudit() string {
	if a.auditLog == nil {
		return dimStyle.Render("audit log disabled")
	}
	if len(a.auditEntries) == 0 {
		return dimStyle.Render("no recorded decisions yet")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d recorded decisions\n\n", len(a.auditEntries))
	for _, e := range a.auditEntries {
		fmt.Fprintf(&b, "  %s %-12s %-14s %s\n", e.CreatedAt.Format(a.cfg.UI.DateFormat), e.Kind, truncate(e.Subject, 14), truncate(e.Detail, 44))
	}
	return b.String()
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalDetail:
		return modalStyle.Render(a.renderDetailModal())
	case modalBulk:
		return modalStyle.Render(fmt.Sprintf("bulk action on %d items\n\na approve · x reject · e escalate · esc cancel", len(a.selected)))
	case modalAction:
		if len(a.queue) == 0 {
			return ""
		}
		item := a.queue[a.queueCursor]
		return modalStyle.Render(fmt.Sprintf("%s %s\n\n%s\n%s\n\ntab switch · enter apply · esc cancel",
			a.pendingAction, item.ID,
			renderField("reason", a.inputReason, a.inputFocus == 0),
			renderField("notes", a.inputNotes, a.inputFocus == 1)))
	case modalAppeal:
		return modalStyle.Render(fmt.Sprintf("submit appeal\n\n%s\n%s\n\ntab switch · enter submit · esc cancel",
			renderField("action id", a.inputActionID, a.inputFocus == 0),
			renderField("reason", a.inputReason, a.inputFocus == 1)))
	case modalFilter:
		return modalStyle.Render(fmt.Sprintf("new filter rule\n\n%s\n%s\n\ntab switch · enter create · esc cancel",
			renderField("name", a.inputName, a.inputFocus == 0),
			renderField("pattern", a.inputPattern, a.inputFocus == 1)))
	}
	return ""
}

func (a *App) renderDetailModal() string {
	if len(a.queue) == 0 {
		return dimStyle.Render("item left the queue")
	}
	item := a.queue[a.queueCursor]
	detail := a.reportDetail.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "report %s\n\n", item.ID)
	fmt.Fprintf(&b, "content   %s (%s)\n", item.ContentID, item.ContentType)
	fmt.Fprintf(&b, "category  %s\n", item.Category)
	fmt.Fprintf(&b, "priority  %s\n", item.Priority)
	fmt.Fprintf(&b, "reports   %d\n", item.ReportCount)
	fmt.Fprintf(&b, "excerpt   %s\n", truncate(item.Excerpt, 64))
	if detail.Report == nil {
		b.WriteString("\n" + dimStyle.Render("full report detail is not available"))
	}
	return b.String()
}

func renderField(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = cursorStyle.Render("> ")
	}
	return fmt.Sprintf("%s%-10s %s_", marker, label+":", value)
}

func (a *App) renderStatusBar() string {
	left := a.status
	if a.statusErr {
		left = errStyle.Render(left)
	}
	if a.ctrl.AnyBusy() {
		left = a.spin.View() + " " + left
	}
	return statusStyle.Render(left) + "\n" + a.help.View(a.keys)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
