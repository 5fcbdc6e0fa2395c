package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/campusmedia/modconsole/internal/config"
	"github.com/campusmedia/modconsole/internal/controller"
	"github.com/campusmedia/modconsole/internal/modapi"
)

type stubService struct {
	queue   []modapi.QueueItem
	appeals []modapi.Appeal
	filters map[string]modapi.FilterRule
	stats   *modapi.StatisticsSnapshot
}

func (s *stubService) GetQueue(_ context.Context, _ modapi.QueueQuery) ([]modapi.QueueItem, error) {
	return s.queue, nil
}

func (s *stubService) Analyze(_ context.Context, _ string) (*modapi.AnalysisResult, error) {
	return &modapi.AnalysisResult{Score: 0.9, Suggestion: "reject"}, nil
}

func (s *stubService) TakeAction(_ context.Context, _ string, _ modapi.ActionRequest) (*modapi.ActionResult, error) {
	return &modapi.ActionResult{}, nil
}

func (s *stubService) BulkAction(_ context.Context, req modapi.BulkActionRequest) ([]modapi.BulkOutcome, error) {
	out := make([]modapi.BulkOutcome, len(req.ItemIDs))
	for i := range out {
		out[i].Success = true
	}
	return out, nil
}

func (s *stubService) GetAppeals(_ context.Context, _ modapi.AppealQuery) ([]modapi.Appeal, error) {
	return s.appeals, nil
}

func (s *stubService) SubmitAppeal(_ context.Context, _ modapi.AppealRequest) (*modapi.AppealResult, error) {
	return &modapi.AppealResult{}, nil
}

func (s *stubService) GetFilters(_ context.Context, _ modapi.FilterQuery) (map[string]modapi.FilterRule, error) {
	return s.filters, nil
}

func (s *stubService) CreateFilter(_ context.Context, rule map[string]any) (modapi.FilterRule, error) {
	return modapi.FilterRule(rule), nil
}

func (s *stubService) GetStatistics(_ context.Context, _ modapi.StatsQuery) (*modapi.StatisticsSnapshot, error) {
	return s.stats, nil
}

func newTestApp(t *testing.T, svc *stubService) *App {
	t.Helper()
	ctx := context.Background()
	ctrl := controller.New(svc, NewNotices(), nil)
	app := New(ctx, config.Config{UI: config.UIConfig{DateFormat: "02/01 15:04"}}, ctrl, nil, NewNotices())
	// Seed the store the way Init's fetch commands would.
	require.NoError(t, ctrl.FetchQueue(ctx, modapi.QueueQuery{}))
	app.syncFromController()
	return app
}

func press(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewSwitching(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, &stubService{})

	tests := []struct {
		press string
		want  viewState
	}{
		{"2", viewAppeals},
		{"3", viewFilters},
		{"4", viewStats},
		{"5", viewAudit},
		{"1", viewQueue},
	}
	for _, tt := range tests {
		model, _ := app.Update(press(tt.press))
		app = model.(*App)
		require.Equal(t, tt.want, app.view, "key %q", tt.press)
	}
}

func TestQueueSelectionToggle(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, &stubService{queue: []modapi.QueueItem{{ID: "q1"}, {ID: "q2"}}})

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = model.(*App)
	require.True(t, app.selected["q1"])

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = model.(*App)
	require.False(t, app.selected["q1"])
}

func TestBulkModalRequiresSelection(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, &stubService{queue: []modapi.QueueItem{{ID: "q1"}}})

	model, _ := app.Update(press("b"))
	app = model.(*App)
	require.Equal(t, modalNone, app.modal)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = model.(*App)
	model, _ = app.Update(press("b"))
	app = model.(*App)
	require.Equal(t, modalBulk, app.modal)
}

func TestBulkModalFiresActionAndClearsSelection(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, &stubService{queue: []modapi.QueueItem{{ID: "q1"}, {ID: "q2"}}})

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeySpace})
	app = model.(*App)
	model, _ = app.Update(press("b"))
	app = model.(*App)

	model, cmd := app.Update(press("x"))
	app = model.(*App)
	require.Equal(t, modalNone, app.modal)
	require.Empty(t, app.selected)
	require.NotNil(t, cmd)

	msg := cmd()
	synced, ok := msg.(syncedMsg)
	require.True(t, ok)
	require.Equal(t, controller.OpBulkAction, synced.op)
	require.NoError(t, synced.err)
}

func TestActionModalRequiresReason(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, &stubService{queue: []modapi.QueueItem{{ID: "q1"}}})

	model, _ := app.Update(press("a"))
	app = model.(*App)
	require.Equal(t, modalAction, app.modal)
	require.Equal(t, "approve", app.pendingAction)

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	require.Nil(t, cmd)
	require.Equal(t, modalAction, app.modal)
	require.True(t, app.statusErr)
}

func TestActionModalTypingAndSubmit(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, &stubService{queue: []modapi.QueueItem{{ID: "q1"}}})

	model, _ := app.Update(press("x"))
	app = model.(*App)

	for _, r := range "spam" {
		model, _ = app.Update(press(string(r)))
		app = model.(*App)
	}
	require.Equal(t, "spam", app.inputReason)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	model, _ = app.Update(press("z"))
	app = model.(*App)
	require.Equal(t, "z", app.inputNotes)

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	require.Equal(t, modalNone, app.modal)
	require.NotNil(t, cmd)
	synced, ok := cmd().(syncedMsg)
	require.True(t, ok)
	require.Equal(t, controller.OpTakeAction, synced.op)
	require.NoError(t, synced.err)
}

func TestSyncedMsgRecomputesDuplicates(t *testing.T) {
	t.Parallel()
	svc := &stubService{queue: []modapi.QueueItem{
		{ID: "q1", Excerpt: "free followers now"},
		{ID: "q2", Excerpt: "free followers now"},
	}}
	app := newTestApp(t, svc)

	require.Equal(t, "q1", app.dups["q2"])
}

func TestNoticeUpdatesStatusAndRearms(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, &stubService{})

	model, cmd := app.Update(noticeMsg{text: "Applied approve to q1"})
	app = model.(*App)
	require.Equal(t, "Applied approve to q1", app.status)
	require.False(t, app.statusErr)
	require.NotNil(t, cmd, "listener must re-arm")

	model, _ = app.Update(noticeMsg{text: "Bulk reject failed", failure: true})
	app = model.(*App)
	require.True(t, app.statusErr)
}

func TestCursorStaysInBounds(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, &stubService{queue: []modapi.QueueItem{{ID: "q1"}, {ID: "q2"}}})

	model, _ := app.Update(press("k"))
	app = model.(*App)
	require.Equal(t, 0, app.queueCursor)

	for i := 0; i < 5; i++ {
		model, _ = app.Update(press("j"))
		app = model.(*App)
	}
	require.Equal(t, 1, app.queueCursor)
}

func TestDetailModalShowsSentinel(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, &stubService{queue: []modapi.QueueItem{{ID: "q1", Excerpt: "hi"}}})

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	require.Equal(t, modalDetail, app.modal)
	require.Contains(t, app.View(), "not available")

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	require.Equal(t, modalNone, app.modal)
}

func TestViewRendersWithoutState(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, &stubService{})

	for _, v := range []viewState{viewQueue, viewAppeals, viewFilters, viewStats, viewAudit} {
		app.view = v
		require.NotEmpty(t, app.View())
	}
}
