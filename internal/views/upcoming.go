// Package views computes filtered, sorted, merged projections over rows
// already fetched from the store. Nothing here is persisted; every function
// is pure apart from the countdown ticker.
package views

import (
	"sort"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

const (
	upcomingTaskLimit = 5
	upcomingCompLimit = 3
)

// dayOf truncates a timestamp to midnight in its own location. All
// upcoming/past decisions compare calendar days, not instants.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpcomingTasks selects uncompleted tasks due within windowDays of today,
// inclusive on both ends, first 5 by ascending due date.
func UpcomingTasks(tasks []domain.Task, today time.Time, windowDays int) []domain.Task {
	start := dayOf(today)
	end := start.AddDate(0, 0, windowDays)

	var out []domain.Task
	for _, t := range tasks {
		if t.Status == domain.StatusCompleted || !t.DueDate.Valid {
			continue
		}
		due := dayOf(t.DueDate.Time)
		if due.Before(start) || due.After(end) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Time.Before(out[j].DueDate.Time)
	})
	if len(out) > upcomingTaskLimit {
		out = out[:upcomingTaskLimit]
	}
	return out
}

// UpcomingCompetitions selects competitions starting today or later, first 3
// by ascending start date. Undated competitions never qualify.
func UpcomingCompetitions(comps []domain.Competition, today time.Time) []domain.Competition {
	start := dayOf(today)

	var out []domain.Competition
	for _, c := range comps {
		if !c.StartDate.Valid || dayOf(c.StartDate.Time).Before(start) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Time.Before(out[j].StartDate.Time)
	})
	if len(out) > upcomingCompLimit {
		out = out[:upcomingCompLimit]
	}
	return out
}

// PartitionCompetitions splits competitions into upcoming (starting today or
// later) and past, comparing at day granularity. Undated competitions appear
// in neither list.
func PartitionCompetitions(comps []domain.Competition, now time.Time) (upcoming, past []domain.Competition) {
	midnight := dayOf(now)
	for _, c := range comps {
		if !c.StartDate.Valid {
			continue
		}
		if dayOf(c.StartDate.Time).Before(midnight) {
			past = append(past, c)
		} else {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, past
}
