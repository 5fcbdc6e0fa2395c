package service

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/campusmedia/modconsole/internal/modapi"
)

// Near-duplicate detection over the review queue. Reported content often
// arrives several times with trivial edits (added whitespace, a swapped word),
// and reviewing each copy separately wastes moderator time. Two stages:
// exact match on the normalized excerpt, then an edit-distance ratio over
// the raw excerpts.

const dupSimilarityThreshold = 0.85

// DuplicateIndex maps a queue item id to the id of the earlier item it
// duplicates. Items with no earlier near-match are absent.
type DuplicateIndex map[string]string

// FindDuplicates scans the queue in order and marks each item that closely
// matches an earlier one. Empty excerpts never match anything.
func FindDuplicates(items []modapi.QueueItem) DuplicateIndex {
	idx := make(DuplicateIndex)
	for i := 1; i < len(items); i++ {
		if items[i].Excerpt == "" {
			continue
		}
		for j := 0; j < i; j++ {
			if items[j].Excerpt == "" {
				continue
			}
			if _, isDup := idx[items[j].ID]; isDup {
				continue
			}
			if matchExcerpts(items[j].Excerpt, items[i].Excerpt) {
				idx[items[i].ID] = items[j].ID
				break
			}
		}
	}
	return idx
}

func matchExcerpts(a, b string) bool {
	na, nb := normalizeExcerpt(a), normalizeExcerpt(b)
	if na == nb {
		return true
	}
	return similarity(na, nb) >= dupSimilarityThreshold
}

func normalizeExcerpt(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
