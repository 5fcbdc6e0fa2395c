// Package controller holds the moderation console's client-side state: the
// review queue, appeals, filter rules and statistics, plus the dispatcher
// that mutates them through the remote moderation service.
//
// Collections are only ever replaced wholesale from a successful fetch and
// are left untouched when a fetch fails. Mutations never patch local state
// from their own response; a successful mutation re-fetches the affected
// collection (always the default, unfiltered view). Failures settle into the
// operation's status record and a user notification; they never escape as
// anything other than an ordinary error return.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusmedia/modconsole/internal/modapi"
)

var (
	ErrContentRequired = errors.New("content is required")
	ErrItemRequired    = errors.New("item id and action are required")
	ErrNoItems         = errors.New("no items selected")
	ErrActionRequired  = errors.New("action id is required")
	ErrFilterRequired  = errors.New("filter data is required")
)

// Notifier receives fire-and-forget user feedback. Implementations must not
// block; the controller never reads anything back.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Auditor records locally what this console asked the backend to do.
type Auditor interface {
	Record(ctx context.Context, kind, subject, detail string)
}

// State is a point-in-time snapshot of the store.
type State struct {
	Queue      []modapi.QueueItem
	Appeals    []modapi.Appeal
	Filters    map[string]modapi.FilterRule
	Statistics *modapi.StatisticsSnapshot
}

// Controller is the moderation state controller.
type Controller struct {
	svc     modapi.Service
	notify  Notifier
	auditor Auditor

	mu             sync.Mutex
	state          State
	status         map[Op]OpStatus
	lastErr        string
	lastQueueQuery modapi.QueueQuery
}

func New(svc modapi.Service, notify Notifier, auditor Auditor) *Controller {
	return &Controller{
		svc:     svc,
		notify:  notify,
		auditor: auditor,
		state: State{
			Queue:   []modapi.QueueItem{},
			Appeals: []modapi.Appeal{},
			Filters: map[string]modapi.FilterRule{},
		},
		status: make(map[Op]OpStatus),
	}
}

// State returns a snapshot. Slices and the filter map are copied so callers
// can hold one across later dispatches.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := State{
		Queue:      append([]modapi.QueueItem(nil), c.state.Queue...),
		Appeals:    append([]modapi.Appeal(nil), c.state.Appeals...),
		Filters:    make(map[string]modapi.FilterRule, len(c.state.Filters)),
		Statistics: c.state.Statistics,
	}
	for k, v := range c.state.Filters {
		snap.Filters[k] = v
	}
	return snap
}

// LastQueueQuery returns the options used by the most recent queue fetch.
// The refresher deliberately does not use this; it exists so the listing
// adapter can project the active filters.
func (c *Controller) LastQueueQuery() modapi.QueueQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastQueueQuery
}

func (c *Controller) begin(op Op) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status[op] = OpStatus{
		Op:        op,
		Busy:      true,
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}

func (c *Controller) settle(op Op, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.status[op]
	st.Busy = false
	st.Err = err
	st.SettledAt = time.Now()
	c.status[op] = st
	if err != nil {
		c.lastErr = err.Error()
	} else {
		c.lastErr = ""
	}
}

func (c *Controller) notifySuccess(msg string) {
	if c.notify != nil {
		c.notify.Success(msg)
	}
}

func (c *Controller) notifyFailure(msg string) {
	if c.notify != nil {
		c.notify.Failure(msg)
	}
}

func (c *Controller) audit(ctx context.Context, kind, subject, detail string) {
	if c.auditor != nil {
		c.auditor.Record(ctx, kind, subject, detail)
	}
}

// FetchQueue replaces the queue snapshot. On failure the queue keeps its
// previous value.
func (c *Controller) FetchQueue(ctx context.Context, q modapi.QueueQuery) error {
	c.begin(OpFetchQueue)
	items, err := c.svc.GetQueue(ctx, q)
	if err != nil {
		c.settle(OpFetchQueue, err)
		return err
	}
	c.mu.Lock()
	c.state.Queue = items
	c.lastQueueQuery = q
	c.mu.Unlock()
	c.settle(OpFetchQueue, nil)
	return nil
}

// AnalyzeContent asks the backend for an automated assessment. It writes no
// store state.
func (c *Controller) AnalyzeContent(ctx context.Context, content string) (*modapi.AnalysisResult, error) {
	if content == "" {
		return nil, ErrContentRequired
	}
	c.begin(OpAnalyze)
	res, err := c.svc.Analyze(ctx, content)
	c.settle(OpAnalyze, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// TakeAction applies one action to one queue item, then re-fetches the queue.
func (c *Controller) TakeAction(ctx context.Context, itemID, action, reason, notes string) error {
	if itemID == "" || action == "" {
		return ErrItemRequired
	}
	c.begin(OpTakeAction)
	_, err := c.svc.TakeAction(ctx, itemID, modapi.ActionRequest{Action: action, Reason: reason, Notes: notes})
	c.settle(OpTakeAction, err)
	if err != nil {
		c.notifyFailure(fmt.Sprintf("Action failed: %v", err))
		return err
	}
	c.notifySuccess(fmt.Sprintf("Applied %s to %s", action, itemID))
	c.audit(ctx, "action", itemID, fmt.Sprintf("%s: %s", action, reason))
	// Refresh-after-write: the queue is re-fetched with default options
	// rather than patched from the response. The refresh settles its own
	// status record; its outcome does not change this call's.
	_ = c.FetchQueue(ctx, modapi.QueueQuery{})
	return nil
}

// BulkAction applies one action to many items. Only the per-item success
// count survives; a response that is not a list counts as zero successes
// without failing the call.
func (c *Controller) BulkAction(ctx context.Context, itemIDs []string, action, reason string) error {
	if len(itemIDs) == 0 {
		return ErrNoItems
	}
	c.begin(OpBulkAction)
	outcomes, err := c.svc.BulkAction(ctx, modapi.BulkActionRequest{ItemIDs: itemIDs, Action: action, Reason: reason})
	c.settle(OpBulkAction, err)
	if err != nil {
		c.notifyFailure(fmt.Sprintf("Bulk action failed: %v", err))
		return err
	}
	succeeded := 0
	for _, o := range outcomes {
		if o.Success {
			succeeded++
		}
	}
	c.notifySuccess(fmt.Sprintf("Bulk %s: %d/%d succeeded", action, succeeded, len(itemIDs)))
	c.audit(ctx, "bulk_action", action, fmt.Sprintf("%d/%d succeeded: %s", succeeded, len(itemIDs), reason))
	_ = c.FetchQueue(ctx, modapi.QueueQuery{})
	return nil
}

// FetchAppeals replaces the appeals snapshot.
func (c *Controller) FetchAppeals(ctx context.Context, q modapi.AppealQuery) error {
	c.begin(OpFetchAppeals)
	appeals, err := c.svc.GetAppeals(ctx, q)
	if err != nil {
		c.settle(OpFetchAppeals, err)
		return err
	}
	c.mu.Lock()
	c.state.Appeals = appeals
	c.mu.Unlock()
	c.settle(OpFetchAppeals, nil)
	return nil
}

// SubmitAppeal files an appeal against a prior action. The failure notice
// prefers the server-supplied message when there is one.
func (c *Controller) SubmitAppeal(ctx context.Context, actionID, reason string, evidence []string) error {
	if actionID == "" {
		return ErrActionRequired
	}
	c.begin(OpSubmitAppeal)
	_, err := c.svc.SubmitAppeal(ctx, modapi.AppealRequest{ActionID: actionID, Reason: reason, Evidence: evidence})
	c.settle(OpSubmitAppeal, err)
	if err != nil {
		msg := fmt.Sprintf("Appeal failed: %v", err)
		var apiErr *modapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = "Appeal failed: " + apiErr.Message
		}
		c.notifyFailure(msg)
		return err
	}
	c.notifySuccess("Appeal submitted")
	c.audit(ctx, "appeal", actionID, reason)
	return nil
}

// FetchFilters replaces the filter rule snapshot.
func (c *Controller) FetchFilters(ctx context.Context, q modapi.FilterQuery) error {
	c.begin(OpFetchFilters)
	rules, err := c.svc.GetFilters(ctx, q)
	if err != nil {
		c.settle(OpFetchFilters, err)
		return err
	}
	c.mu.Lock()
	c.state.Filters = rules
	c.mu.Unlock()
	c.settle(OpFetchFilters, nil)
	return nil
}

// CreateFilter creates a rule, then re-fetches the rule list.
func (c *Controller) CreateFilter(ctx context.Context, rule map[string]any) error {
	if len(rule) == 0 {
		return ErrFilterRequired
	}
	c.begin(OpCreateFilter)
	_, err := c.svc.CreateFilter(ctx, rule)
	c.settle(OpCreateFilter, err)
	if err != nil {
		c.notifyFailure(fmt.Sprintf("Filter creation failed: %v", err))
		return err
	}
	c.notifySuccess("Filter created")
	c.audit(ctx, "filter", fmt.Sprintf("%v", rule["name"]), "created")
	_ = c.FetchFilters(ctx, modapi.FilterQuery{})
	return nil
}

// FetchStatistics replaces the statistics snapshot. Both range ends are
// optional; the backend falls back to its default range.
func (c *Controller) FetchStatistics(ctx context.Context, startDate, endDate string) error {
	c.begin(OpFetchStatistics)
	snap, err := c.svc.GetStatistics(ctx, modapi.StatsQuery{StartDate: startDate, EndDate: endDate})
	if err != nil {
		c.settle(OpFetchStatistics, err)
		return err
	}
	c.mu.Lock()
	c.state.Statistics = snap
	c.mu.Unlock()
	c.settle(OpFetchStatistics, nil)
	return nil
}
