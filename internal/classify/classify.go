// Package classify partitions a snapshot of tasks into the three board
// buckets (today, overdue, upcoming) based on the current instant. It is
// pure: no I/O, no mutation of inputs, deterministic for a given now.
package classify

import (
	"fmt"
	"time"

	"taskplanner/internal/model"
)

// OverdueTask is an overdue task annotated with how many whole days have
// elapsed since its window closed.
type OverdueTask struct {
	model.Task
	OverdueDays int `json:"overdueDays"`
}

// Groups holds one classification pass over a user's tasks. Each input task
// appears in exactly one bucket, in its original relative order.
type Groups struct {
	Today    []model.Task  `json:"todayTasks"`
	Overdue  []OverdueTask `json:"overdueTasks"`
	Upcoming []model.Task  `json:"upcomingTasks"`
}

// ParseError reports a single record whose scheduling window could not be
// interpreted. The record is skipped, not fatal to the batch.
type ParseError struct {
	TaskID string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("task %s: unparseable %s: %v", e.TaskID, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Partition classifies tasks against now. Rules, in evaluation order:
//
//  1. endTime < now (strict): overdue, with overdueDays = whole days since
//     endTime, truncated. A task one second past its end is overdue by 0 days.
//  2. startTime falls on the same calendar day as now, in now's location:
//     today. Overdue wins over today, so a task that started today but
//     already ended is overdue.
//  3. everything else: upcoming. This includes a still-open window that
//     started on a past day - it is neither overdue nor started today.
//
// The evaluation order is a contract, not an accident: a window spanning
// yesterday through tomorrow is upcoming.
//
// Records whose window fails to parse are skipped and reported in the
// returned slice; callers should surface the count for diagnosability.
func Partition(now time.Time, tasks []model.Task) (Groups, []error) {
	groups := Groups{
		Today:    []model.Task{},
		Overdue:  []OverdueTask{},
		Upcoming: []model.Task{},
	}
	var skipped []error

	for _, task := range tasks {
		start, err := ParseInstant(task.StartTime)
		if err != nil {
			skipped = append(skipped, &ParseError{TaskID: task.ID, Field: "startTime", Err: err})
			continue
		}
		end, err := ParseInstant(task.EndTime)
		if err != nil {
			skipped = append(skipped, &ParseError{TaskID: task.ID, Field: "endTime", Err: err})
			continue
		}

		switch {
		case end.Before(now):
			groups.Overdue = append(groups.Overdue, OverdueTask{
				Task:        task,
				OverdueDays: overdueDays(now, end),
			})
		case sameDay(start, now, now.Location()):
			groups.Today = append(groups.Today, task)
		default:
			groups.Upcoming = append(groups.Upcoming, task)
		}
	}

	return groups, skipped
}

// ParseInstant reads one end of a scheduling window. Windows are exchanged
// as RFC 3339 text.
func ParseInstant(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// overdueDays truncates the elapsed time since end to whole days.
func overdueDays(now, end time.Time) int {
	return int(now.Sub(end) / (24 * time.Hour))
}

// sameDay reports whether a and b fall on the same calendar day in loc,
// comparing both normalized to midnight.
func sameDay(a, b time.Time, loc *time.Location) bool {
	return midnight(a, loc).Equal(midnight(b, loc))
}

func midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
