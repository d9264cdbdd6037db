package views

import (
	"fmt"
	"sort"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

// Event source types.
const (
	EventTask        = "task"
	EventCompetition = "competition"
)

// Event is one calendar entry, merged from either a task or a competition.
// Keys are "task-{id}" / "comp-{id}" so the two id spaces never collide.
type Event struct {
	Key      string
	Title    string
	Date     time.Time
	End      *time.Time
	Type     string
	Status   string
	Priority string
	Tag      string
	Category string
}

// MergeEvents unions dated tasks and competitions into one event list.
// Undated rows are skipped: an event without a day has no place on a
// calendar.
func MergeEvents(tasks []domain.Task, comps []domain.Competition) []Event {
	var events []Event
	for _, t := range tasks {
		if !t.DueDate.Valid {
			continue
		}
		events = append(events, Event{
			Key:      fmt.Sprintf("task-%d", t.ID),
			Title:    t.Title,
			Date:     t.DueDate.Time,
			Type:     EventTask,
			Status:   t.Status,
			Priority: t.Priority,
			Tag:      t.Tag,
		})
	}
	for _, c := range comps {
		if !c.StartDate.Valid {
			continue
		}
		e := Event{
			Key:      fmt.Sprintf("comp-%d", c.ID),
			Title:    c.Name,
			Date:     c.StartDate.Time,
			Type:     EventCompetition,
			Category: c.Category,
		}
		if c.EndDate.Valid {
			end := c.EndDate.Time
			e.End = &end
		}
		events = append(events, e)
	}
	return events
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// EventsOn returns the events whose date falls on the given day.
func EventsOn(events []Event, day time.Time) []Event {
	var out []Event
	for _, e := range events {
		if SameDay(e.Date, day) {
			out = append(out, e)
		}
	}
	return out
}

// DayKey formats a timestamp as its calendar day, the grouping key used by
// GroupByDay.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// GroupByDay indexes events by calendar day for per-day agenda lookup.
// Events within a day keep list order; the days themselves are map keys.
func GroupByDay(events []Event) map[string][]Event {
	grouped := make(map[string][]Event)
	for _, e := range events {
		key := DayKey(e.Date)
		grouped[key] = append(grouped[key], e)
	}
	for _, day := range grouped {
		sort.SliceStable(day, func(i, j int) bool { return day[i].Date.Before(day[j].Date) })
	}
	return grouped
}
