package adapter

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusmedia/modconsole/internal/controller"
	"github.com/campusmedia/modconsole/internal/modapi"
)

// stubService returns fixed payloads and records bulk requests.
type stubService struct {
	mu       sync.Mutex
	queue    []modapi.QueueItem
	stats    *modapi.StatisticsSnapshot
	bulkReqs []modapi.BulkActionRequest
}

func (s *stubService) GetQueue(_ context.Context, _ modapi.QueueQuery) ([]modapi.QueueItem, error) {
	return s.queue, nil
}

func (s *stubService) Analyze(_ context.Context, _ string) (*modapi.AnalysisResult, error) {
	return &modapi.AnalysisResult{}, nil
}

func (s *stubService) TakeAction(_ context.Context, _ string, _ modapi.ActionRequest) (*modapi.ActionResult, error) {
	return &modapi.ActionResult{}, nil
}

func (s *stubService) BulkAction(_ context.Context, req modapi.BulkActionRequest) ([]modapi.BulkOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bulkReqs = append(s.bulkReqs, req)
	out := make([]modapi.BulkOutcome, len(req.ItemIDs))
	for i := range out {
		out[i].Success = true
	}
	return out, nil
}

func (s *stubService) GetAppeals(_ context.Context, _ modapi.AppealQuery) ([]modapi.Appeal, error) {
	return nil, nil
}

func (s *stubService) SubmitAppeal(_ context.Context, _ modapi.AppealRequest) (*modapi.AppealResult, error) {
	return &modapi.AppealResult{}, nil
}

func (s *stubService) GetFilters(_ context.Context, _ modapi.FilterQuery) (map[string]modapi.FilterRule, error) {
	return map[string]modapi.FilterRule{}, nil
}

func (s *stubService) CreateFilter(_ context.Context, rule map[string]any) (modapi.FilterRule, error) {
	return modapi.FilterRule(rule), nil
}

func (s *stubService) GetStatistics(_ context.Context, _ modapi.StatsQuery) (*modapi.StatisticsSnapshot, error) {
	return s.stats, nil
}

func TestReportListDefaultsAndSentinels(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &stubService{queue: []modapi.QueueItem{{ID: "q1", Status: "pending"}}}
	c := controller.New(svc, nil, nil)
	a := NewReportList(c)

	require.NoError(t, c.FetchQueue(ctx, modapi.QueueQuery{Status: "pending"}))

	v := a.Snapshot()
	require.Len(t, v.Reports, 1)
	require.Equal(t, "pending", v.Filters.Status)
	require.Equal(t, "all", v.Filters.ContentType, "unset upstream field falls back to default")
	require.Equal(t, "all", v.Filters.Category)
	require.Equal(t, "recent", v.Filters.TimeRange)
	require.False(t, v.Pagination.HasMore, "pagination is a fixed sentinel")
	require.False(t, v.Loading)
}

func TestReportListNoOpsHaveNoObservableEffect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &stubService{queue: []modapi.QueueItem{{ID: "q1"}}}
	c := controller.New(svc, nil, nil)
	a := NewReportList(c)
	require.NoError(t, a.Refresh(ctx))

	before := a.Snapshot()
	a.ApplyFilters(ReportFilters{Status: "resolved"})
	a.ClearFilters()
	a.LoadMore()
	after := a.Snapshot()

	require.Equal(t, before.Reports, after.Reports)
	require.Equal(t, before.Filters, after.Filters)
	require.Equal(t, before.Pagination, after.Pagination)
}

func TestReportDetailIsAnExplicitSentinel(t *testing.T) {
	t.Parallel()

	c := controller.New(&stubService{}, nil, nil)
	a := NewReportDetail(c)

	v := a.Snapshot()
	require.Nil(t, v.Report)
	require.False(t, v.Loading)
	a.Refresh() // accepted, no effect
	require.Nil(t, a.Snapshot().Report)
}

func TestStatisticsZeroedBeforeFirstFetch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &stubService{stats: &modapi.StatisticsSnapshot{Total: 7, Pending: 2, Resolved: 4, AutoFlagged: 1}}
	c := controller.New(svc, nil, nil)
	a := NewStatistics(c)

	require.Equal(t, StatisticsSummary{}, a.Snapshot())

	require.NoError(t, a.RefreshStats(ctx))
	require.Equal(t, StatisticsSummary{Total: 7, Pending: 2, Resolved: 4, AutoFlagged: 1}, a.Snapshot())
}

func TestBulkActionUsesFixedReason(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &stubService{}
	c := controller.New(svc, nil, nil)
	a := NewBulkAction(c)

	require.NoError(t, a.PerformBulkAction(ctx, []string{"a", "b"}, "reject"))
	require.False(t, a.IsProcessing())

	svc.mu.Lock()
	defer svc.mu.Unlock()
	require.Len(t, svc.bulkReqs, 1)
	require.Equal(t, "bulk_action", svc.bulkReqs[0].Reason)
	require.Equal(t, "reject", svc.bulkReqs[0].Action)
}
