package modapi

import "time"

// QueueItem is one piece of flagged content awaiting review. Items are
// created and mutated server-side; the console only ever replaces whole
// snapshots of the queue.
type QueueItem struct {
	ID          string    `json:"id"`
	ContentID   string    `json:"content_id"`
	ContentType string    `json:"content_type"`
	Excerpt     string    `json:"excerpt"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	ReportCount int       `json:"report_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Appeal is a user's contest of a prior moderation action.
type Appeal struct {
	ID        string    `json:"id"`
	ActionID  string    `json:"action_id"`
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason"`
	Evidence  []string  `json:"evidence"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FilterRule is a backend-configured content rule. Its attributes are owned
// by the backend and passed through opaquely.
type FilterRule map[string]any

// StatisticsSnapshot holds aggregate moderation counts for a date range.
type StatisticsSnapshot struct {
	Total       int    `json:"total"`
	Pending     int    `json:"pending"`
	Resolved    int    `json:"resolved"`
	AutoFlagged int    `json:"auto_flagged"`
	Escalated   int    `json:"escalated"`
	Appealed    int    `json:"appealed"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// AnalysisResult is the backend's automated assessment of a piece of content.
type AnalysisResult struct {
	Score      float64  `json:"score"`
	Flags      []string `json:"flags"`
	Suggestion string   `json:"suggestion"`
}

// ActionRequest applies one action to a single queue item.
type ActionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
	Notes  string `json:"notes,omitempty"`
}

// ActionResult acknowledges a single applied action.
type ActionResult struct {
	ItemID string `json:"item_id"`
	Status string `json:"status"`
}

// BulkActionRequest applies one action to many queue items.
type BulkActionRequest struct {
	ItemIDs []string `json:"item_ids"`
	Action  string   `json:"action"`
	Reason  string   `json:"reason"`
}

// BulkOutcome is the per-item result of a bulk action.
type BulkOutcome struct {
	ItemID  string `json:"item_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AppealRequest submits an appeal against a prior action.
type AppealRequest struct {
	ActionID string   `json:"action_id"`
	Reason   string   `json:"reason"`
	Evidence []string `json:"evidence,omitempty"`
}

// AppealResult acknowledges a submitted appeal.
type AppealResult struct {
	AppealID string `json:"appeal_id"`
	Status   string `json:"status"`
}
