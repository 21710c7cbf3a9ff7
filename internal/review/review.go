package review

import (
	"strings"
	"time"

	"docboard/internal/model"
)

// Package review computes review-status classification and dashboard
// aggregates over a document snapshot. Everything here is pure: results
// depend only on the inputs and the supplied clock value.

// Tab selects which review bucket a listing shows.
type Tab string

const (
	TabAll      Tab = "all"
	TabUpcoming Tab = "upcoming"
	TabOverdue  Tab = "overdue"
)

// upcomingWindowMonths is the look-ahead used for the "upcoming" bucket.
const upcomingWindowMonths = 3

// IsUpcoming reports whether the document's next review falls within the
// next three calendar months of now, exclusive of now itself and inclusive
// of the window's upper bound. The window uses calendar-month arithmetic:
// month-end overflow normalizes forward (Mar 31 + 3 months lands on Jul 1).
func IsUpcoming(d model.Document, now time.Time) bool {
	limit := now.AddDate(0, upcomingWindowMonths, 0)
	return d.NextReview.After(now) && !d.NextReview.After(limit)
}

// IsOverdue reports whether the document needs attention: its next review
// date has passed, or its status was manually set to Overdue. The two
// signals are independent and either alone suffices.
func IsOverdue(d model.Document, now time.Time) bool {
	return d.NextReview.Before(now) || d.Status == model.StatusOverdue
}

// ComputeStats aggregates dashboard counters over the full document set.
// Counts are taken over the unfiltered snapshot and are order-independent.
func ComputeStats(docs []model.Document, now time.Time) model.DashboardStats {
	var stats model.DashboardStats
	for _, d := range docs {
		switch d.Type {
		case model.TypePolicy:
			stats.TotalPolicies++
		case model.TypeSOP:
			stats.TotalSOPs++
		}
		if IsUpcoming(d, now) {
			stats.UpcomingReviews++
		}
		if IsOverdue(d, now) {
			stats.OverdueReviews++
		}
	}
	return stats
}

// ClassifyTab filters documents down to the requested bucket. Any tab value
// other than "upcoming" or "overdue" returns the input unfiltered.
func ClassifyTab(docs []model.Document, tab Tab, now time.Time) []model.Document {
	var keep func(model.Document) bool
	switch tab {
	case TabUpcoming:
		keep = func(d model.Document) bool { return IsUpcoming(d, now) }
	case TabOverdue:
		keep = func(d model.Document) bool { return IsOverdue(d, now) }
	default:
		return docs
	}

	out := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// FilterAll is the sentinel accepted by Filter's type and department
// arguments to disable that criterion. An empty string works the same way.
const FilterAll = "all"

// Filter narrows documents by a case-insensitive substring query against
// name or description, an exact type, and an exact department. Criteria
// compose conjunctively; each is skipped when empty or set to FilterAll.
// Filtering happens before tab classification.
func Filter(docs []model.Document, query, docType, departmentID string) []model.Document {
	query = strings.ToLower(strings.TrimSpace(query))
	typeActive := docType != "" && docType != FilterAll
	deptActive := departmentID != "" && departmentID != FilterAll

	out := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if query != "" &&
			!strings.Contains(strings.ToLower(d.Name), query) &&
			!strings.Contains(strings.ToLower(d.Description), query) {
			continue
		}
		if typeActive && string(d.Type) != docType {
			continue
		}
		if deptActive && d.DepartmentID != departmentID {
			continue
		}
		out = append(out, d)
	}
	return out
}
