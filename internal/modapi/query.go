package modapi

import (
	"net/url"

	"github.com/google/go-querystring/query"
)

// Query option structs. Every field is optional; zero values are omitted from
// the encoded query, so an empty struct produces the backend's default view.

// QueueQuery filters the review queue.
type QueueQuery struct {
	Status    string `url:"status,omitempty"`
	Page      int    `url:"page,omitempty"`
	Limit     int    `url:"limit,omitempty"`
	Category  string `url:"category,omitempty"`
	Priority  string `url:"priority,omitempty"`
	StartDate string `url:"start_date,omitempty"`
	EndDate   string `url:"end_date,omitempty"`
}

// AppealQuery filters the appeal list.
type AppealQuery struct {
	Status string `url:"status,omitempty"`
	Page   int    `url:"page,omitempty"`
	Limit  int    `url:"limit,omitempty"`
}

// FilterQuery filters the rule list.
type FilterQuery struct {
	Type    string `url:"type,omitempty"`
	Enabled string `url:"enabled,omitempty"`
}

// StatsQuery bounds the statistics range. Both ends optional; the backend
// applies its default range when absent.
type StatsQuery struct {
	StartDate string `url:"start_date,omitempty"`
	EndDate   string `url:"end_date,omitempty"`
}

func encodeQuery(opts any) url.Values {
	if opts == nil {
		return url.Values{}
	}
	vals, err := query.Values(opts)
	if err != nil {
		return url.Values{}
	}
	return vals
}
