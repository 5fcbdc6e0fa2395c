// Package tui is the terminal front end of the moderation console. It owns
// no moderation state of its own: every screen renders a projection of the
// controller's store, and every key that changes anything goes through a
// dispatcher operation.
package tui

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/campusmedia/modconsole/internal/adapter"
	"github.com/campusmedia/modconsole/internal/audit"
	"github.com/campusmedia/modconsole/internal/config"
	"github.com/campusmedia/modconsole/internal/controller"
	"github.com/campusmedia/modconsole/internal/modapi"
	"github.com/campusmedia/modconsole/internal/service"
)

type viewState string

const (
	viewQueue   viewState = "queue"
	viewAppeals viewState = "appeals"
	viewFilters viewState = "filters"
	viewStats   viewState = "stats"
	viewAudit   viewState = "audit"
)

type modalState string

const (
	modalNone   modalState = ""
	modalAction modalState = "action"
	modalBulk   modalState = "bulk"
	modalDetail modalState = "detail"
	modalAppeal modalState = "appeal"
	modalFilter modalState = "filter"
)

// App ties the views together.
type App struct {
	ctx          context.Context
	ctrl         *controller.Controller
	reportList   *adapter.ReportList
	reportDetail *adapter.ReportDetail
	stats        *adapter.Statistics
	bulk         *adapter.BulkAction
	auditLog     *audit.Log
	notices      *Notices
	cfg          config.Config

	keys keyMap
	help help.Model
	spin spinner.Model

	view          viewState
	width, height int

	queue        []modapi.QueueItem
	dups         service.DuplicateIndex
	appeals      []modapi.Appeal
	filters      map[string]modapi.FilterRule
	filterIDs    []string
	auditEntries []audit.Entry

	queueCursor  int
	appealCursor int
	filterCursor int
	selected     map[string]bool

	status    string
	statusErr bool

	modal         modalState
	pendingAction string
	inputReason   string
	inputNotes    string
	inputActionID string
	inputName     string
	inputPattern  string
	inputFocus    int

	lastAnalysis *modapi.AnalysisResult
	analyzedID   string
}

func New(ctx context.Context, cfg config.Config, ctrl *controller.Controller, auditLog *audit.Log, notices *Notices) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &App{
		ctx:          ctx,
		ctrl:         ctrl,
		reportList:   adapter.NewReportList(ctrl),
		reportDetail: adapter.NewReportDetail(ctrl),
		stats:        adapter.NewStatistics(ctrl),
		bulk:         adapter.NewBulkAction(ctrl),
		auditLog:     auditLog,
		notices:      notices,
		cfg:          cfg,
		keys:         newKeyMap(),
		help:         help.New(),
		spin:         sp,
		view:         viewQueue,
		selected:     make(map[string]bool),
		filters:      map[string]modapi.FilterRule{},
	}
}

// Bubble Tea messages

type syncedMsg struct {
	op  controller.Op
	err error
}

type analysisMsg struct {
	itemID string
	res    *modapi.AnalysisResult
	err    error
}

type auditLoadedMsg struct {
	entries []audit.Entry
	err     error
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.fetchQueueCmd(),
		a.fetchAppealsCmd(),
		a.fetchFiltersCmd(),
		a.fetchStatsCmd(),
		a.spin.Tick,
	}
	if a.notices != nil {
		cmds = append(cmds, a.notices.next())
	}
	if a.auditLog != nil {
		cmds = append(cmds, a.loadAuditCmd())
	}
	return tea.Batch(cmds...)
}

// commands

func (a *App) fetchQueueCmd() tea.Cmd {
	return func() tea.Msg {
		return syncedMsg{controller.OpFetchQueue, a.reportList.Refresh(a.ctx)}
	}
}

func (a *App) fetchAppealsCmd() tea.Cmd {
	return func() tea.Msg {
		return syncedMsg{controller.OpFetchAppeals, a.ctrl.FetchAppeals(a.ctx, modapi.AppealQuery{})}
	}
}

func (a *App) fetchFiltersCmd() tea.Cmd {
	return func() tea.Msg {
		return syncedMsg{controller.OpFetchFilters, a.ctrl.FetchFilters(a.ctx, modapi.FilterQuery{})}
	}
}

func (a *App) fetchStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return syncedMsg{controller.OpFetchStatistics, a.stats.RefreshStats(a.ctx)}
	}
}

func (a *App) takeActionCmd(itemID, action, reason, notes string) tea.Cmd {
	return func() tea.Msg {
		return syncedMsg{controller.OpTakeAction, a.ctrl.TakeAction(a.ctx, itemID, action, reason, notes)}
	}
}

func (a *App) bulkActionCmd(ids []string, action string) tea.Cmd {
	return func() tea.Msg {
		return syncedMsg{controller.OpBulkAction, a.bulk.PerformBulkAction(a.ctx, ids, action)}
	}
}

func (a *App) submitAppealCmd(actionID, reason string) tea.Cmd {
	return func() tea.Msg {
		return syncedMsg{controller.OpSubmitAppeal, a.ctrl.SubmitAppeal(a.ctx, actionID, reason, nil)}
	}
}

func (a *App) createFilterCmd(name, pattern string) tea.Cmd {
	return func() tea.Msg {
		rule := map[string]any{"name": name, "pattern": pattern, "enabled": true}
		return syncedMsg{controller.OpCreateFilter, a.ctrl.CreateFilter(a.ctx, rule)}
	}
}

func (a *App) analyzeCmd(item modapi.QueueItem) tea.Cmd {
	return func() tea.Msg {
		res, err := a.ctrl.AnalyzeContent(a.ctx, item.Excerpt)
		return analysisMsg{itemID: item.ID, res: res, err: err}
	}
}

func (a *App) loadAuditCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := a.auditLog.Recent(a.ctx, 100)
		return auditLoadedMsg{entries: entries, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		return a, nil
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleKey(m)
	case syncedMsg:
		a.syncFromController()
		if m.err != nil && isFetchOp(m.op) {
			a.setError(fmt.Sprintf("%s failed: %v", m.op, m.err))
			return a, nil
		}
		// Mutations refresh the audit trail alongside the store.
		if a.auditLog != nil && isMutatingOp(m.op) && m.err == nil {
			return a, a.loadAuditCmd()
		}
		return a, nil
	case noticeMsg:
		a.status = m.text
		a.statusErr = m.failure
		return a, a.notices.next()
	case analysisMsg:
		if m.err != nil {
			a.setError(fmt.Sprintf("analysis failed: %v", m.err))
			return a, nil
		}
		a.lastAnalysis = m.res
		a.analyzedID = m.itemID
		a.status = fmt.Sprintf("analysis: score %.2f, suggest %s", m.res.Score, m.res.Suggestion)
		a.statusErr = false
		return a, nil
	case auditLoadedMsg:
		if m.err == nil {
			a.auditEntries = m.entries
		}
		return a, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(m)
		return a, cmd
	}
	return a, nil
}

func isFetchOp(op controller.Op) bool {
	switch op {
	case controller.OpFetchQueue, controller.OpFetchAppeals, controller.OpFetchFilters, controller.OpFetchStatistics:
		return true
	}
	return false
}

func isMutatingOp(op controller.Op) bool {
	switch op {
	case controller.OpTakeAction, controller.OpBulkAction, controller.OpSubmitAppeal, controller.OpCreateFilter:
		return true
	}
	return false
}

// syncFromController re-reads the store snapshot into the view caches.
func (a *App) syncFromController() {
	st := a.ctrl.State()
	a.queue = st.Queue
	a.appeals = st.Appeals
	a.filters = st.Filters
	a.dups = service.FindDuplicates(a.queue)

	a.filterIDs = a.filterIDs[:0]
	for id := range a.filters {
		a.filterIDs = append(a.filterIDs, id)
	}
	sort.Strings(a.filterIDs)

	if a.queueCursor >= len(a.queue) {
		a.queueCursor = 0
	}
	if a.appealCursor >= len(a.appeals) {
		a.appealCursor = 0
	}
	if a.filterCursor >= len(a.filterIDs) {
		a.filterCursor = 0
	}
	// Drop selections for items that left the queue.
	present := make(map[string]bool, len(a.queue))
	for _, it := range a.queue {
		present[it.ID] = true
	}
	for id := range a.selected {
		if !present[id] {
			delete(a.selected, id)
		}
	}
}

func (a *App) setError(msg string) {
	a.status = msg
	a.statusErr = true
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "1":
		a.view = viewQueue
	case "2":
		a.view = viewAppeals
	case "3":
		a.view = viewFilters
	case "4":
		a.view = viewStats
	case "5":
		a.view = viewAudit
	case "r":
		return a, a.refreshCurrentView()
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case " ":
		if a.view == viewQueue && len(a.queue) > 0 {
			id := a.queue[a.queueCursor].ID
			if a.selected[id] {
				delete(a.selected, id)
			} else {
				a.selected[id] = true
			}
		}
	case "a", "x", "e":
		if a.view == viewQueue && len(a.queue) > 0 {
			a.modal = modalAction
			a.pendingAction = actionForKey(m.String())
			a.inputReason = ""
			a.inputNotes = ""
			a.inputFocus = 0
		}
	case "b":
		if a.view == viewQueue && len(a.selected) > 0 {
			a.modal = modalBulk
		}
	case "y":
		if a.view == viewQueue && len(a.queue) > 0 {
			item := a.queue[a.queueCursor]
			a.status = "analyzing..."
			a.statusErr = false
			return a, a.analyzeCmd(item)
		}
	case "enter":
		if a.view == viewQueue && len(a.queue) > 0 {
			a.modal = modalDetail
		}
	case "n":
		switch a.view {
		case viewAppeals:
			a.modal = modalAppeal
			a.inputActionID = ""
			a.inputReason = ""
			a.inputFocus = 0
		case viewFilters:
			a.modal = modalFilter
			a.inputName = ""
			a.inputPattern = ""
			a.inputFocus = 0
		}
	}
	return a, nil
}

func actionForKey(k string) string {
	switch k {
	case "a":
		return "approve"
	case "x":
		return "reject"
	default:
		return "escalate"
	}
}

func (a *App) refreshCurrentView() tea.Cmd {
	switch a.view {
	case viewAppeals:
		return a.fetchAppealsCmd()
	case viewFilters:
		return a.fetchFiltersCmd()
	case viewStats:
		return a.fetchStatsCmd()
	case viewAudit:
		if a.auditLog != nil {
			return a.loadAuditCmd()
		}
		return nil
	default:
		return a.fetchQueueCmd()
	}
}

func (a *App) moveCursor(delta int) {
	switch a.view {
	case viewQueue:
		a.queueCursor = clamp(a.queueCursor+delta, len(a.queue))
	case viewAppeals:
		a.appealCursor = clamp(a.appealCursor+delta, len(a.appeals))
	case viewFilters:
		a.filterCursor = clamp(a.filterCursor+delta, len(a.filterIDs))
	}
}

func clamp(v, n int) int {
	if n == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalDetail:
		if m.String() == "esc" || m.String() == "enter" || m.String() == "q" {
			a.modal = modalNone
		}
		return a, nil
	case modalBulk:
		switch m.String() {
		case "esc":
			a.modal = modalNone
		case "a", "x", "e":
			action := actionForKey(m.String())
			ids := a.selectedIDs()
			a.modal = modalNone
			a.selected = make(map[string]bool)
			a.status = fmt.Sprintf("applying %s to %d items...", action, len(ids))
			a.statusErr = false
			return a, a.bulkActionCmd(ids, action)
		}
		return a, nil
	case modalAction:
		return a.handleTwoFieldModal(m, &a.inputReason, &a.inputNotes, func() tea.Cmd {
			if a.inputReason == "" {
				a.setError("a reason is required")
				return nil
			}
			if len(a.queue) == 0 {
				a.modal = modalNone
				return nil
			}
			item := a.queue[a.queueCursor]
			a.modal = modalNone
			return a.takeActionCmd(item.ID, a.pendingAction, a.inputReason, a.inputNotes)
		})
	case modalAppeal:
		return a.handleTwoFieldModal(m, &a.inputActionID, &a.inputReason, func() tea.Cmd {
			if a.inputActionID == "" {
				a.setError("an action id is required")
				return nil
			}
			a.modal = modalNone
			return a.submitAppealCmd(a.inputActionID, a.inputReason)
		})
	case modalFilter:
		return a.handleTwoFieldModal(m, &a.inputName, &a.inputPattern, func() tea.Cmd {
			if a.inputName == "" || a.inputPattern == "" {
				a.setError("name and pattern are required")
				return nil
			}
			a.modal = modalNone
			return a.createFilterCmd(a.inputName, a.inputPattern)
		})
	}
	return a, nil
}

// handleTwoFieldModal implements the shared esc/enter/tab/text handling for
// modals with two text fields.
func (a *App) handleTwoFieldModal(m tea.KeyMsg, first, second *string, submit func() tea.Cmd) (tea.Model, tea.Cmd) {
	field := first
	if a.inputFocus == 1 {
		field = second
	}
	switch m.Type {
	case tea.KeyEsc:
		a.modal = modalNone
	case tea.KeyEnter:
		return a, submit()
	case tea.KeyTab, tea.KeyShiftTab:
		a.inputFocus = 1 - a.inputFocus
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(*field) > 0 {
			*field = (*field)[:len(*field)-1]
		}
	case tea.KeySpace:
		*field += " "
	case tea.KeyRunes:
		*field += string(m.Runes)
	}
	return a, nil
}

func (a *App) selectedIDs() []string {
	ids := make([]string, 0, len(a.selected))
	for _, it := range a.queue {
		if a.selected[it.ID] {
			ids = append(ids, it.ID)
		}
	}
	return ids
}
