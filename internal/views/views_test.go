package views

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

func due(y int, m time.Month, d int) sql.NullTime {
	return sql.NullTime{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func TestUpcomingTasks(t *testing.T) {
	today := time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: 1, Title: "soon", Status: domain.StatusPending, DueDate: due(2024, time.January, 3)},
		{ID: 2, Title: "far", Status: domain.StatusPending, DueDate: due(2024, time.January, 10)},
		{ID: 3, Title: "done", Status: domain.StatusCompleted, DueDate: due(2024, time.January, 3)},
	}

	got := UpcomingTasks(tasks, today, 7)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only the pending task due Jan 3, got %+v", got)
	}

	t.Run("window is inclusive on both ends", func(t *testing.T) {
		tasks := []domain.Task{
			{ID: 1, Status: domain.StatusPending, DueDate: due(2024, time.January, 1)},
			{ID: 2, Status: domain.StatusPending, DueDate: due(2024, time.January, 8)},
			{ID: 3, Status: domain.StatusPending, DueDate: due(2023, time.December, 31)},
			{ID: 4, Status: domain.StatusPending, DueDate: due(2024, time.January, 9)},
		}
		got := UpcomingTasks(tasks, today, 7)
		if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
			t.Errorf("expected tasks on the window edges only, got %+v", got)
		}
	})

	t.Run("truncated to five by ascending due date", func(t *testing.T) {
		var tasks []domain.Task
		for i := 7; i >= 1; i-- {
			tasks = append(tasks, domain.Task{
				ID: int64(i), Status: domain.StatusPending, DueDate: due(2024, time.January, i),
			})
		}
		got := UpcomingTasks(tasks, today, 7)
		if len(got) != 5 {
			t.Fatalf("expected 5 tasks, got %d", len(got))
		}
		for i, task := range got {
			if task.ID != int64(i+1) {
				t.Errorf("expected ascending due dates, got %+v", got)
			}
		}
	})

	t.Run("undated tasks never qualify", func(t *testing.T) {
		got := UpcomingTasks([]domain.Task{{ID: 1, Status: domain.StatusPending}}, today, 7)
		if len(got) != 0 {
			t.Errorf("expected no tasks, got %+v", got)
		}
	})
}

func TestUpcomingCompetitions(t *testing.T) {
	today := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	comps := []domain.Competition{
		{ID: 1, Name: "past", StartDate: due(2023, time.December, 1)},
		{ID: 2, Name: "fourth", StartDate: due(2024, time.May, 1)},
		{ID: 3, Name: "first", StartDate: due(2024, time.February, 1)},
		{ID: 4, Name: "second", StartDate: due(2024, time.March, 1)},
		{ID: 5, Name: "third", StartDate: due(2024, time.April, 1)},
		{ID: 6, Name: "undated"},
	}

	got := UpcomingCompetitions(comps, today)
	if len(got) != 3 {
		t.Fatalf("expected 3 competitions, got %d", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 4 || got[2].ID != 5 {
		t.Errorf("expected the three nearest upcoming, got %+v", got)
	}
}

func TestPartitionCompetitions(t *testing.T) {
	// 09:00 on Jan 2: a competition earlier the same day still counts as
	// upcoming because the comparison truncates to midnight.
	now := time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)
	comps := []domain.Competition{
		{ID: 1, StartDate: sql.NullTime{Time: time.Date(2024, time.January, 2, 7, 0, 0, 0, time.UTC), Valid: true}},
		{ID: 2, StartDate: due(2024, time.January, 1)},
		{ID: 3, StartDate: due(2024, time.February, 1)},
		{ID: 4},
	}

	upcoming, past := PartitionCompetitions(comps, now)
	if len(upcoming) != 2 || upcoming[0].ID != 1 || upcoming[1].ID != 3 {
		t.Errorf("unexpected upcoming partition %+v", upcoming)
	}
	if len(past) != 1 || past[0].ID != 2 {
		t.Errorf("unexpected past partition %+v", past)
	}
}

func TestMergeEvents(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Title: "essay", Status: domain.StatusPending, Priority: domain.PriorityHigh,
			Tag: "school", DueDate: due(2024, time.January, 5)},
		{ID: 2, Title: "undated"},
	}
	end := due(2024, time.January, 6)
	comps := []domain.Competition{
		{ID: 1, Name: "CTF finals", Category: "CTF", StartDate: due(2024, time.January, 5), EndDate: end},
		{ID: 2, Name: "undated"},
	}

	events := MergeEvents(tasks, comps)
	if len(events) != 2 {
		t.Fatalf("expected 2 events (undated rows skipped), got %d", len(events))
	}
	if events[0].Key != "task-1" || events[0].Type != EventTask || events[0].Priority != domain.PriorityHigh {
		t.Errorf("unexpected task event %+v", events[0])
	}
	if events[1].Key != "comp-1" || events[1].Type != EventCompetition || events[1].End == nil {
		t.Errorf("unexpected competition event %+v", events[1])
	}

	t.Run("per-day lookup", func(t *testing.T) {
		day := time.Date(2024, time.January, 5, 23, 59, 0, 0, time.UTC)
		onDay := EventsOn(events, day)
		if len(onDay) != 2 {
			t.Errorf("expected both events on Jan 5, got %+v", onDay)
		}
		empty := EventsOn(events, time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC))
		if len(empty) != 0 {
			t.Errorf("expected no events on Jan 6, got %+v", empty)
		}
	})

	t.Run("group by day", func(t *testing.T) {
		grouped := GroupByDay(events)
		if len(grouped) != 1 {
			t.Fatalf("expected one day, got %d", len(grouped))
		}
		if len(grouped["2024-01-05"]) != 2 {
			t.Errorf("expected both events under 2024-01-05, got %+v", grouped)
		}
	})
}

func TestRemaining(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("breaks the distance into units", func(t *testing.T) {
		target := now.Add(90061000 * time.Millisecond) // 1d 1h 1m 1s
		got := Remaining(target, now)
		want := Countdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("sub-second remainders floor away", func(t *testing.T) {
		target := now.Add(1999 * time.Millisecond)
		if got := Remaining(target, now); got != (Countdown{Seconds: 1}) {
			t.Errorf("expected 1s, got %+v", got)
		}
	})

	t.Run("started events report zero", func(t *testing.T) {
		target := now.Add(-1000 * time.Millisecond)
		if got := Remaining(target, now); got != (Countdown{}) {
			t.Errorf("expected all zeros, got %+v", got)
		}
	})
}

func TestTickStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan Countdown, 1)

	done := make(chan struct{})
	go func() {
		Tick(ctx, time.Now().Add(time.Hour), func(c Countdown) {
			select {
			case calls <- c:
			default:
			}
		})
		close(done)
	}()

	// The first recomputation is immediate.
	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("expected an immediate countdown callback")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not stop after cancellation")
	}
}
