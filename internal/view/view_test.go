package view

import (
	"testing"
	"time"

	"jrnl/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func taskDue(id int64, due *time.Time) model.Item {
	return model.Item{ID: id, Title: "task", Status: model.StatusTodo, DueDate: due}
}

func TestClassifyDue(t *testing.T) {
	today := date(2025, time.September, 24) // a Wednesday

	tests := []struct {
		name string
		due  *time.Time
		want Bucket
	}{
		{"no due date", nil, BucketNoDueDate},
		{"yesterday", ptr(date(2025, time.September, 23)), BucketOverdue},
		{"long overdue", ptr(date(2024, time.January, 1)), BucketOverdue},
		{"today", ptr(date(2025, time.September, 24)), BucketDueToday},
		{"tomorrow", ptr(date(2025, time.September, 25)), BucketDueTomorrow},
		{"friday this week", ptr(date(2025, time.September, 26)), BucketThisWeek},
		{"sunday boundary", ptr(date(2025, time.September, 28)), BucketThisWeek},
		{"monday next week", ptr(date(2025, time.September, 29)), BucketThisMonth},
		{"end of month", ptr(date(2025, time.September, 30)), BucketThisMonth},
		{"next month", ptr(date(2025, time.October, 1)), BucketFuture},
		{"next year", ptr(date(2026, time.March, 1)), BucketFuture},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it := taskDue(1, tc.due)
			if got := ClassifyDue(it, today); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

// Late in the month the week window crosses the month boundary; the
// week check still wins for days inside it.
func TestClassifyDueWeekSpansMonthEnd(t *testing.T) {
	today := date(2025, time.September, 29) // Monday; Sunday is Oct 5

	it := taskDue(1, ptr(date(2025, time.October, 3)))
	if got := ClassifyDue(it, today); got != BucketThisWeek {
		t.Errorf("got %q, want %q", got, BucketThisWeek)
	}

	it = taskDue(2, ptr(date(2025, time.October, 6)))
	if got := ClassifyDue(it, today); got != BucketFuture {
		t.Errorf("got %q, want %q", got, BucketFuture)
	}
}

func TestClassifyByDueBucket(t *testing.T) {
	today := date(2025, time.September, 24)
	roots := []model.Item{
		taskDue(1, nil),
		taskDue(2, ptr(date(2025, time.September, 20))),
		taskDue(3, ptr(date(2025, time.September, 24))),
		taskDue(4, ptr(date(2025, time.September, 24))),
	}

	buckets := ClassifyByDueBucket(roots, today)
	if got := len(buckets[BucketNoDueDate]); got != 1 {
		t.Errorf("NoDueDate: got %d, want 1", got)
	}
	if got := len(buckets[BucketOverdue]); got != 1 {
		t.Errorf("Overdue: got %d, want 1", got)
	}
	if got := len(buckets[BucketDueToday]); got != 2 {
		t.Errorf("DueToday: got %d, want 2", got)
	}
}

func TestBucketDisplayOrder(t *testing.T) {
	if len(BucketDisplayOrder) != 7 {
		t.Fatalf("display order length: got %d, want 7", len(BucketDisplayOrder))
	}
	if BucketDisplayOrder[0] != BucketFuture {
		t.Errorf("first bucket: got %q, want %q", BucketDisplayOrder[0], BucketFuture)
	}
	if BucketDisplayOrder[len(BucketDisplayOrder)-1] != BucketNoDueDate {
		t.Errorf("last bucket: got %q, want %q",
			BucketDisplayOrder[len(BucketDisplayOrder)-1], BucketNoDueDate)
	}
}

func TestClassifyByStatusSorting(t *testing.T) {
	roots := []model.Item{
		{ID: 5, Status: model.StatusTodo, DueDate: nil},
		{ID: 3, Status: model.StatusTodo, DueDate: ptr(date(2025, time.October, 1))},
		{ID: 4, Status: model.StatusTodo, DueDate: ptr(date(2025, time.September, 1))},
		{ID: 1, Status: model.StatusTodo, DueDate: ptr(date(2025, time.October, 1))},
		{ID: 2, Status: model.StatusDoing, DueDate: nil},
	}

	groups := ClassifyByStatus(roots)

	todo := groups[model.StatusTodo]
	wantOrder := []int64{4, 1, 3, 5} // due asc, id breaks the tie, nil due last
	if len(todo) != len(wantOrder) {
		t.Fatalf("todo group: got %d items, want %d", len(todo), len(wantOrder))
	}
	for i, want := range wantOrder {
		if todo[i].ID != want {
			t.Errorf("todo[%d]: got id %d, want %d", i, todo[i].ID, want)
		}
	}

	if got := len(groups[model.StatusDoing]); got != 1 {
		t.Errorf("doing group: got %d, want 1", got)
	}
}

func TestGroupByCreationDate(t *testing.T) {
	items := []model.Item{
		{ID: 1, CreationDate: date(2025, time.September, 20)},
		{ID: 2, CreationDate: date(2025, time.September, 18)},
		{ID: 3, CreationDate: date(2025, time.September, 20)},
	}

	groups := GroupByCreationDate(items)
	if len(groups) != 2 {
		t.Fatalf("groups: got %d, want 2", len(groups))
	}
	if !groups[0].Date.Equal(date(2025, time.September, 18)) {
		t.Errorf("first group date: got %v", groups[0].Date)
	}
	if len(groups[1].Items) != 2 || groups[1].Items[0].ID != 1 {
		t.Errorf("second group: got %+v", groups[1].Items)
	}
}

func TestGroupByCompletionDateSkipsOpen(t *testing.T) {
	items := []model.Item{
		{ID: 1, Status: model.StatusDone, CompletionDate: ptr(date(2025, time.September, 20))},
		{ID: 2, Status: model.StatusTodo},
	}

	groups := GroupByCompletionDate(items)
	if len(groups) != 1 || len(groups[0].Items) != 1 || groups[0].Items[0].ID != 1 {
		t.Errorf("groups: got %+v", groups)
	}
}

func ptr(t time.Time) *time.Time { return &t }
