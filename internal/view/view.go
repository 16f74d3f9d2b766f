// Package view classifies root tasks into due-date buckets and
// status groups for display. All functions are pure over item slices
// the caller loaded once.
package view

import (
	"sort"
	"time"

	"jrnl/internal/dates"
	"jrnl/internal/model"
)

// Bucket is a due-date classification for root tasks.
type Bucket string

const (
	BucketOverdue     Bucket = "Overdue"
	BucketDueToday    Bucket = "Due Today"
	BucketDueTomorrow Bucket = "Due Tomorrow"
	BucketThisWeek    Bucket = "This Week"
	BucketThisMonth   Bucket = "This Month"
	BucketFuture      Bucket = "Future"
	BucketNoDueDate   Bucket = "No Due Date"
)

// BucketDisplayOrder is the presentation order of due buckets: the
// reverse of classification precedence, furthest-out first.
var BucketDisplayOrder = []Bucket{
	BucketFuture,
	BucketThisMonth,
	BucketThisWeek,
	BucketDueTomorrow,
	BucketDueToday,
	BucketOverdue,
	BucketNoDueDate,
}

// ClassifyDue places a single task into its due bucket relative to
// today. Checks run in precedence order and the first match wins, so
// a date on the week boundary lands in This Week even though the
// month range also covers it.
func ClassifyDue(it model.Item, today time.Time) Bucket {
	today = dates.Normalize(today)
	if it.DueDate == nil {
		return BucketNoDueDate
	}
	due := dates.Normalize(*it.DueDate)
	switch {
	case due.Before(today):
		return BucketOverdue
	case due.Equal(today):
		return BucketDueToday
	case due.Equal(today.AddDate(0, 0, 1)):
		return BucketDueTomorrow
	case !due.After(dates.EndOfWeek(today)):
		return BucketThisWeek
	case !due.After(dates.EndOfMonth(today)):
		return BucketThisMonth
	default:
		return BucketFuture
	}
}

// ClassifyByDueBucket groups root tasks into due buckets. Callers
// pass the eligible roots (open root tasks); completed roots and
// their subtrees never reach this function.
func ClassifyByDueBucket(roots []model.Item, today time.Time) map[Bucket][]model.Item {
	buckets := make(map[Bucket][]model.Item)
	for _, it := range roots {
		b := ClassifyDue(it, today)
		buckets[b] = append(buckets[b], it)
	}
	return buckets
}

// StatusDisplayOrder is the presentation order for status groups.
var StatusDisplayOrder = []model.Status{
	model.StatusTodo,
	model.StatusDoing,
	model.StatusWaiting,
	model.StatusDone,
}

// ClassifyByStatus groups items by status, each group sorted by due
// date ascending then id ascending. Items without a due date sort
// after dated ones within a group.
func ClassifyByStatus(roots []model.Item) map[model.Status][]model.Item {
	groups := make(map[model.Status][]model.Item)
	for _, it := range roots {
		groups[it.Status] = append(groups[it.Status], it)
	}
	for st := range groups {
		g := groups[st]
		sort.SliceStable(g, func(i, j int) bool {
			di, dj := g[i].DueDate, g[j].DueDate
			switch {
			case di == nil && dj == nil:
				return g[i].ID < g[j].ID
			case di == nil:
				return false
			case dj == nil:
				return true
			case di.Equal(*dj):
				return g[i].ID < g[j].ID
			default:
				return di.Before(*dj)
			}
		})
	}
	return groups
}

// DayGroup is a run of items sharing one calendar date.
type DayGroup struct {
	Date  time.Time
	Items []model.Item
}

// GroupByCreationDate batches items by creation date, days ascending,
// preserving the incoming order within a day.
func GroupByCreationDate(items []model.Item) []DayGroup {
	return groupByDate(items, func(it model.Item) *time.Time {
		d := it.CreationDate
		return &d
	})
}

// GroupByCompletionDate batches completed items by completion date,
// days ascending. Items without a completion date are skipped.
func GroupByCompletionDate(items []model.Item) []DayGroup {
	return groupByDate(items, func(it model.Item) *time.Time {
		return it.CompletionDate
	})
}

func groupByDate(items []model.Item, key func(model.Item) *time.Time) []DayGroup {
	byDay := make(map[time.Time][]model.Item)
	for _, it := range items {
		k := key(it)
		if k == nil {
			continue
		}
		day := dates.Normalize(*k)
		byDay[day] = append(byDay[day], it)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		groups = append(groups, DayGroup{Date: day, Items: byDay[day]})
	}
	return groups
}
