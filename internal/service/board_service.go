package service

import (
	"context"
	"log"
	"sync"
	"time"

	"taskplanner/internal/classify"
	"taskplanner/internal/model"
)

// BoardService holds the most recent classified snapshot per owner. Reads
// refresh the snapshot from durable state; mutations that the UI reflects
// immediately (toggle, delete) run in two phases: the speculative transition
// is applied to the cached snapshot first, then the durable write is
// attempted, and on failure the speculative state is discarded and replaced
// by a fresh fetch. Speculative and durable state never diverge silently.
type BoardService struct {
	tasks *TaskService
	clock func() time.Time

	mu     sync.Mutex
	boards map[string]classify.Groups
}

func NewBoardService(tasks *TaskService) *BoardService {
	return &BoardService{
		tasks:  tasks,
		clock:  time.Now,
		boards: make(map[string]classify.Groups),
	}
}

// Refresh re-fetches the owner's tasks, re-classifies them and replaces the
// previous snapshot.
func (b *BoardService) Refresh(ctx context.Context, userID string) (classify.Groups, error) {
	groups, err := b.tasks.Board(ctx, userID, b.clock())
	if err != nil {
		return classify.Groups{}, err
	}

	b.mu.Lock()
	b.boards[userID] = groups
	b.mu.Unlock()

	return cloneGroups(groups), nil
}

// Snapshot returns the cached board for the owner, fetching one if none is
// cached yet.
func (b *BoardService) Snapshot(ctx context.Context, userID string) (classify.Groups, error) {
	b.mu.Lock()
	groups, ok := b.boards[userID]
	b.mu.Unlock()
	if ok {
		return cloneGroups(groups), nil
	}
	return b.Refresh(ctx, userID)
}

// RefreshAll re-runs classification for every owner with a cached board.
// Safe to run concurrently with reads and mutations.
func (b *BoardService) RefreshAll(ctx context.Context) {
	b.mu.Lock()
	owners := make([]string, 0, len(b.boards))
	for userID := range b.boards {
		owners = append(owners, userID)
	}
	b.mu.Unlock()

	for _, userID := range owners {
		if _, err := b.Refresh(ctx, userID); err != nil {
			log.Printf("refresh board %s: %v", userID, err)
		}
	}
}

// ToggleComplete flips the completed flag optimistically in the cached
// snapshot, then makes the durable write. On failure the cache entry is
// dropped and refreshed from the database.
func (b *BoardService) ToggleComplete(ctx context.Context, userID, taskID string, completed bool) (*model.Task, error) {
	b.mu.Lock()
	if groups, ok := b.boards[userID]; ok {
		setCompleted(&groups, taskID, completed)
		b.boards[userID] = groups
	}
	b.mu.Unlock()

	task, err := b.tasks.SetCompleted(ctx, userID, taskID, completed)
	if err != nil {
		b.discard(ctx, userID)
		return nil, err
	}
	return task, nil
}

// Remove deletes the task optimistically from the cached snapshot, then
// performs the durable delete with the same compensation on failure.
func (b *BoardService) Remove(ctx context.Context, userID, taskID string) error {
	b.mu.Lock()
	if groups, ok := b.boards[userID]; ok {
		removeTask(&groups, taskID)
		b.boards[userID] = groups
	}
	b.mu.Unlock()

	if err := b.tasks.Delete(ctx, userID, taskID); err != nil {
		b.discard(ctx, userID)
		return err
	}
	return nil
}

// discard drops the speculative snapshot and re-converges with durable state.
func (b *BoardService) discard(ctx context.Context, userID string) {
	b.mu.Lock()
	delete(b.boards, userID)
	b.mu.Unlock()

	if _, err := b.Refresh(ctx, userID); err != nil {
		log.Printf("refetch board %s: %v", userID, err)
	}
}

func setCompleted(groups *classify.Groups, taskID string, completed bool) {
	for i := range groups.Today {
		if groups.Today[i].ID == taskID {
			groups.Today[i].Completed = completed
		}
	}
	for i := range groups.Overdue {
		if groups.Overdue[i].ID == taskID {
			groups.Overdue[i].Completed = completed
		}
	}
	for i := range groups.Upcoming {
		if groups.Upcoming[i].ID == taskID {
			groups.Upcoming[i].Completed = completed
		}
	}
}

func removeTask(groups *classify.Groups, taskID string) {
	groups.Today = filterTasks(groups.Today, taskID)
	groups.Upcoming = filterTasks(groups.Upcoming, taskID)

	kept := groups.Overdue[:0:0]
	for _, task := range groups.Overdue {
		if task.ID != taskID {
			kept = append(kept, task)
		}
	}
	groups.Overdue = kept
}

func filterTasks(tasks []model.Task, taskID string) []model.Task {
	kept := tasks[:0:0]
	for _, task := range tasks {
		if task.ID != taskID {
			kept = append(kept, task)
		}
	}
	return kept
}

// cloneGroups copies the bucket slices so callers can marshal the result
// while later mutations rewrite the cached copy.
func cloneGroups(groups classify.Groups) classify.Groups {
	return classify.Groups{
		Today:    append([]model.Task{}, groups.Today...),
		Overdue:  append([]classify.OverdueTask{}, groups.Overdue...),
		Upcoming: append([]model.Task{}, groups.Upcoming...),
	}
}
