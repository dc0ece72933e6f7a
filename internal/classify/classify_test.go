package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskplanner/internal/model"
)

func window(id, start, end string) model.Task {
	return model.Task{
		ID:        id,
		Title:     "task " + id,
		StartTime: start,
		EndTime:   end,
		TimeSlot:  start + SlotSeparator + end,
	}
}

func TestPartitionScenario(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		window("a", "2024-06-10T08:00:00Z", "2024-06-10T09:00:00Z"),
		window("b", "2024-06-10T14:00:00Z", "2024-06-10T15:00:00Z"),
		window("c", "2024-06-12T10:00:00Z", "2024-06-12T11:00:00Z"),
	}

	groups, skipped := Partition(now, tasks)
	require.Empty(t, skipped)

	require.Len(t, groups.Overdue, 1)
	assert.Equal(t, "a", groups.Overdue[0].ID)
	assert.Equal(t, 0, groups.Overdue[0].OverdueDays)

	require.Len(t, groups.Today, 1)
	assert.Equal(t, "b", groups.Today[0].ID)

	require.Len(t, groups.Upcoming, 1)
	assert.Equal(t, "c", groups.Upcoming[0].ID)
}

func TestPartitionOverdueBoundary(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	// endTime exactly now: strict < means not overdue; started today.
	exact := window("exact", "2024-06-10T11:00:00Z", "2024-06-10T12:00:00Z")
	// One millisecond before now: overdue by zero whole days.
	justPast := window("just-past", "2024-06-10T10:00:00Z", "2024-06-10T11:59:59.999Z")

	groups, skipped := Partition(now, []model.Task{exact, justPast})
	require.Empty(t, skipped)

	require.Len(t, groups.Today, 1)
	assert.Equal(t, "exact", groups.Today[0].ID)

	require.Len(t, groups.Overdue, 1)
	assert.Equal(t, "just-past", groups.Overdue[0].ID)
	assert.Equal(t, 0, groups.Overdue[0].OverdueDays)
}

func TestPartitionOverdueDaysTruncate(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	// 49 hours past the end: two whole days, never rounded up.
	task := window("old", "2024-06-08T10:00:00Z", "2024-06-08T11:00:00Z")

	groups, _ := Partition(now, []model.Task{task})
	require.Len(t, groups.Overdue, 1)
	assert.Equal(t, 2, groups.Overdue[0].OverdueDays)
}

func TestPartitionOverdueWinsOverToday(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	// Started today but the window already closed: overdue, not today.
	task := window("ended", "2024-06-10T08:00:00Z", "2024-06-10T09:00:00Z")

	groups, _ := Partition(now, []model.Task{task})
	assert.Empty(t, groups.Today)
	require.Len(t, groups.Overdue, 1)
	assert.Equal(t, "ended", groups.Overdue[0].ID)
}

func TestPartitionSpanningWindowIsUpcoming(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	// Still open, but started yesterday: not overdue and not today.
	task := window("span", "2024-06-09T08:00:00Z", "2024-06-11T18:00:00Z")

	groups, skipped := Partition(now, []model.Task{task})
	require.Empty(t, skipped)
	assert.Empty(t, groups.Overdue)
	assert.Empty(t, groups.Today)
	require.Len(t, groups.Upcoming, 1)
	assert.Equal(t, "span", groups.Upcoming[0].ID)
}

func TestPartitionIsCompleteAndExclusive(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		window("t1", "2024-06-10T13:00:00Z", "2024-06-10T14:00:00Z"),
		window("t2", "2024-06-01T09:00:00Z", "2024-06-01T10:00:00Z"),
		window("t3", "2024-06-20T09:00:00Z", "2024-06-20T10:00:00Z"),
		window("t4", "2024-06-10T06:00:00Z", "2024-06-10T07:00:00Z"),
		window("t5", "2024-06-09T06:00:00Z", "2024-06-11T07:00:00Z"),
	}

	groups, skipped := Partition(now, tasks)
	require.Empty(t, skipped)

	seen := map[string]int{}
	for _, task := range groups.Today {
		seen[task.ID]++
	}
	for _, task := range groups.Overdue {
		seen[task.ID]++
	}
	for _, task := range groups.Upcoming {
		seen[task.ID]++
	}

	assert.Len(t, seen, len(tasks))
	for _, task := range tasks {
		assert.Equal(t, 1, seen[task.ID], "task %s must land in exactly one bucket", task.ID)
	}
}

func TestPartitionStableOrder(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		window("o1", "2024-06-08T09:00:00Z", "2024-06-08T10:00:00Z"),
		window("u1", "2024-06-20T09:00:00Z", "2024-06-20T10:00:00Z"),
		window("o2", "2024-06-09T09:00:00Z", "2024-06-09T10:00:00Z"),
		window("u2", "2024-06-21T09:00:00Z", "2024-06-21T10:00:00Z"),
	}

	groups, _ := Partition(now, tasks)
	require.Len(t, groups.Overdue, 2)
	assert.Equal(t, "o1", groups.Overdue[0].ID)
	assert.Equal(t, "o2", groups.Overdue[1].ID)
	require.Len(t, groups.Upcoming, 2)
	assert.Equal(t, "u1", groups.Upcoming[0].ID)
	assert.Equal(t, "u2", groups.Upcoming[1].ID)
}

func TestPartitionIdempotent(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		window("a", "2024-06-10T08:00:00Z", "2024-06-10T09:00:00Z"),
		window("b", "2024-06-10T14:00:00Z", "2024-06-10T15:00:00Z"),
		window("c", "2024-06-12T10:00:00Z", "2024-06-12T11:00:00Z"),
	}

	first, _ := Partition(now, tasks)
	second, _ := Partition(now, tasks)
	assert.Equal(t, first, second)
}

func TestPartitionSkipsUnparseableRecords(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	good := window("good", "2024-06-10T14:00:00Z", "2024-06-10T15:00:00Z")
	badEnd := window("bad-end", "2024-06-10T14:00:00Z", "not-a-time")
	badStart := window("bad-start", "", "2024-06-10T15:00:00Z")

	groups, skipped := Partition(now, []model.Task{badEnd, good, badStart})

	require.Len(t, groups.Today, 1)
	assert.Equal(t, "good", groups.Today[0].ID)
	assert.Empty(t, groups.Overdue)
	assert.Empty(t, groups.Upcoming)

	require.Len(t, skipped, 2)
	var pe *ParseError
	require.ErrorAs(t, skipped[0], &pe)
	assert.Equal(t, "bad-end", pe.TaskID)
	assert.Equal(t, "endTime", pe.Field)
	require.ErrorAs(t, skipped[1], &pe)
	assert.Equal(t, "bad-start", pe.TaskID)
	assert.Equal(t, "startTime", pe.Field)
}

func TestPartitionLocalDayEquality(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 23:30 local on June 10. In UTC that is already June 11; the calendar
	// comparison must happen in now's zone.
	now := time.Date(2024, 6, 10, 23, 30, 0, 0, loc)
	task := window("late", "2024-06-11T02:45:00Z", "2024-06-11T03:45:00Z") // 22:45 local, June 10

	groups, _ := Partition(now, []model.Task{task})
	require.Len(t, groups.Today, 1)
	assert.Equal(t, "late", groups.Today[0].ID)
}
