package binding

import (
	"errors"
	"testing"
)

type taskFilter struct {
	Tag    string
	Status string
}

func TestBindingFetchesOnFirstUse(t *testing.T) {
	calls := 0
	b := New("test", func(struct{}) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	})

	if !b.Loading() {
		t.Error("new binding should be loading")
	}
	rows := b.Rows()
	if len(rows) != 2 {
		t.Errorf("expected 2 rows, got %v", rows)
	}
	if b.Loading() {
		t.Error("binding should not be loading after resolve")
	}

	b.Rows()
	b.Rows()
	if calls != 1 {
		t.Errorf("expected a single fetch for repeated reads, got %d", calls)
	}
}

func TestBindingRefetchesOnParamChange(t *testing.T) {
	var seen []taskFilter
	b := New("tasks", func(f taskFilter) ([]int, error) {
		seen = append(seen, f)
		return []int{len(seen)}, nil
	})

	b.Rows()
	b.SetParams(taskFilter{Tag: "school"})
	if !b.Loading() {
		t.Error("param change should mark the binding loading")
	}
	b.Rows()

	// Same params again: no refetch.
	b.SetParams(taskFilter{Tag: "school"})
	if b.Loading() {
		t.Error("identical params should not mark the binding loading")
	}
	b.Rows()

	if len(seen) != 2 {
		t.Fatalf("expected 2 fetches, got %d", len(seen))
	}
	if seen[1] != (taskFilter{Tag: "school"}) {
		t.Errorf("expected the new params to reach the fetch, got %+v", seen[1])
	}
}

func TestBindingKeepsPriorRowsOnFailure(t *testing.T) {
	fail := false
	b := New("flaky", func(struct{}) ([]string, error) {
		if fail {
			return nil, errors.New("disk on fire")
		}
		return []string{"ok"}, nil
	})

	if rows := b.Rows(); len(rows) != 1 {
		t.Fatalf("expected initial rows, got %v", rows)
	}

	fail = true
	b.Invalidate()
	rows := b.Rows()
	if len(rows) != 1 || rows[0] != "ok" {
		t.Errorf("expected prior rows to survive a failing fetch, got %v", rows)
	}
	if b.Loading() {
		t.Error("a failed fetch still resolves the loading flag")
	}
}

func TestBindingEmptyUntilFirstSuccess(t *testing.T) {
	b := New("alwaysfails", func(struct{}) ([]int, error) {
		return nil, errors.New("nope")
	})
	if rows := b.Rows(); len(rows) != 0 {
		t.Errorf("expected empty rows when no fetch ever succeeded, got %v", rows)
	}
}

func TestBindingInvalidateRefetches(t *testing.T) {
	calls := 0
	b := New("counter", func(struct{}) ([]int, error) {
		calls++
		return []int{calls}, nil
	})

	b.Rows()
	b.Invalidate()
	rows := b.Rows()
	if calls != 2 || rows[0] != 2 {
		t.Errorf("expected a refetch after invalidate, calls=%d rows=%v", calls, rows)
	}
}
