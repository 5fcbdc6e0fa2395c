// Package adapter exposes narrow, consumer-specific views over the
// moderation controller. Each adapter is a pure projection: it renames
// fields, fills defaults, and represents capabilities the dispatcher does
// not provide as explicit sentinels and no-ops, never as silent failures.
package adapter

import (
	"context"

	"github.com/campusmedia/modconsole/internal/controller"
	"github.com/campusmedia/modconsole/internal/modapi"
)

// ReportFilters are the listing view's filter fields. Fields the upstream
// query leaves unset fall back to "all" ("recent" for the time range).
type ReportFilters struct {
	Status      string
	ContentType string
	Category    string
	TimeRange   string
}

// Pagination is a sentinel: paging through the queue is not implemented, so
// HasMore is always false.
type Pagination struct {
	HasMore bool
}

// ReportListView is the snapshot handed to the report listing.
type ReportListView struct {
	Reports    []modapi.QueueItem
	Loading    bool
	Error      string
	Filters    ReportFilters
	Pagination Pagination
}

// ReportList adapts the controller for the report listing screen.
type ReportList struct {
	c *controller.Controller
}

func NewReportList(c *controller.Controller) *ReportList { return &ReportList{c: c} }

func (a *ReportList) Snapshot() ReportListView {
	st := a.c.State()
	q := a.c.LastQueueQuery()
	return ReportListView{
		Reports:    st.Queue,
		Loading:    a.c.Status(controller.OpFetchQueue).Busy,
		Error:      a.c.LastError(),
		Filters:    filtersFromQuery(q),
		Pagination: Pagination{HasMore: false},
	}
}

func filtersFromQuery(q modapi.QueueQuery) ReportFilters {
	f := ReportFilters{
		Status:      q.Status,
		ContentType: "all",
		Category:    q.Category,
		TimeRange:   "recent",
	}
	if f.Status == "" {
		f.Status = "all"
	}
	if f.Category == "" {
		f.Category = "all"
	}
	return f
}

// Refresh re-fetches the default queue view.
func (a *ReportList) Refresh(ctx context.Context) error {
	return a.c.FetchQueue(ctx, modapi.QueueQuery{})
}

// LoadMore is a no-op: pagination is not implemented.
func (a *ReportList) LoadMore() {}

// ApplyFilters is accepted but has no observable effect: local filter
// application is not implemented.
func (a *ReportList) ApplyFilters(ReportFilters) {}

// ClearFilters is a no-op for the same reason as ApplyFilters.
func (a *ReportList) ClearFilters() {}

// ReportDetailView is the snapshot handed to the detail screen. Report is
// always nil: detail retrieval is not implemented.
type ReportDetailView struct {
	Report  *modapi.QueueItem
	Loading bool
	Error   string
}

// ReportDetail adapts the controller for the (unimplemented) detail screen.
type ReportDetail struct {
	c *controller.Controller
}

func NewReportDetail(c *controller.Controller) *ReportDetail { return &ReportDetail{c: c} }

func (a *ReportDetail) Snapshot() ReportDetailView {
	return ReportDetailView{
		Report:  nil,
		Loading: a.c.AnyBusy(),
		Error:   a.c.LastError(),
	}
}

// Refresh is a no-op: there is no detail endpoint to call.
func (a *ReportDetail) Refresh() {}

// StatisticsSummary is the zero-safe shape the statistics widget consumes.
type StatisticsSummary struct {
	Total       int
	Pending     int
	Resolved    int
	AutoFlagged int
}

// Statistics adapts the controller for the statistics widget.
type Statistics struct {
	c *controller.Controller
}

func NewStatistics(c *controller.Controller) *Statistics { return &Statistics{c: c} }

// Snapshot returns the zeroed shape until a fetch has succeeded.
func (a *Statistics) Snapshot() StatisticsSummary {
	snap := a.c.State().Statistics
	if snap == nil {
		return StatisticsSummary{}
	}
	return StatisticsSummary{
		Total:       snap.Total,
		Pending:     snap.Pending,
		Resolved:    snap.Resolved,
		AutoFlagged: snap.AutoFlagged,
	}
}

// RefreshStats fetches statistics with no range, relying on the backend's
// default window.
func (a *Statistics) RefreshStats(ctx context.Context) error {
	return a.c.FetchStatistics(ctx, "", "")
}

// bulkActionReason is the fixed reason recorded for adapter-triggered bulk
// actions.
const bulkActionReason = "bulk_action"

// BulkAction adapts the controller for the bulk-action trigger.
type BulkAction struct {
	c *controller.Controller
}

func NewBulkAction(c *controller.Controller) *BulkAction { return &BulkAction{c: c} }

func (a *BulkAction) PerformBulkAction(ctx context.Context, ids []string, action string) error {
	return a.c.BulkAction(ctx, ids, action, bulkActionReason)
}

func (a *BulkAction) IsProcessing() bool {
	return a.c.Status(controller.OpBulkAction).Busy
}
