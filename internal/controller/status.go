package controller

import "time"

// Op identifies one dispatcher operation.
type Op string

const (
	OpFetchQueue      Op = "fetch_queue"
	OpAnalyze         Op = "analyze"
	OpTakeAction      Op = "take_action"
	OpBulkAction      Op = "bulk_action"
	OpFetchAppeals    Op = "fetch_appeals"
	OpSubmitAppeal    Op = "submit_appeal"
	OpFetchFilters    Op = "fetch_filters"
	OpCreateFilter    Op = "create_filter"
	OpFetchStatistics Op = "fetch_statistics"
)

// OpStatus is the per-operation status record. Each operation owns exactly
// one record; a concurrent run of a different operation cannot overwrite it.
type OpStatus struct {
	Op        Op
	Busy      bool
	Err       error
	RunID     string
	StartedAt time.Time
	SettledAt time.Time
}

// Status returns the record for one operation. The zero record means the
// operation has never run.
func (c *Controller) Status(op Op) OpStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status[op]
}

// AnyBusy reports whether any operation is outstanding. This is a derived
// read over the per-operation records, not a shared flag the operations
// write to.
func (c *Controller) AnyBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, st := range c.status {
		if st.Busy {
			return true
		}
	}
	return false
}

// LastError returns the message of the most recently settled failure, or ""
// when the most recent settle succeeded. Last-to-settle wins across
// concurrent operations; per-operation truth stays in Status.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
