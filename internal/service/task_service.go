package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskplanner/internal/classify"
	"taskplanner/internal/model"
	"taskplanner/internal/repository"
)

// renewFallbackDuration is used when a renewed task's stored window cannot be
// parsed to recover its original length.
const renewFallbackDuration = time.Hour

// TaskInput carries the user-editable fields of a task. TimeSlot is the raw
// "<start> - <end>" window string as exchanged with clients.
type TaskInput struct {
	Title       string
	TimeSlot    string
	Category    string
	Priority    string
	Description string
}

// TaskService wraps task-related business logic: input validation, the
// create/update/toggle/renew/delete contract and snapshot classification.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// validate enforces the shared create/update rules: every field present, the
// window parseable, and start strictly before end.
func (s *TaskService) validate(input TaskInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return model.NewValidationError("title", "is required")
	}
	if strings.TrimSpace(input.TimeSlot) == "" {
		return model.NewValidationError("timeSlot", "is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return model.NewValidationError("category", "is required")
	}
	if strings.TrimSpace(input.Priority) == "" {
		return model.NewValidationError("priority", "is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return model.NewValidationError("description", "is required")
	}

	rawStart, rawEnd, ok := classify.SplitSlot(input.TimeSlot)
	if !ok {
		return model.NewValidationError("timeSlot", `expected "<start> - <end>"`)
	}
	start, err := classify.ParseInstant(rawStart)
	if err != nil {
		return model.NewValidationError("timeSlot", "start is not a valid timestamp")
	}
	end, err := classify.ParseInstant(rawEnd)
	if err != nil {
		return model.NewValidationError("timeSlot", "end is not a valid timestamp")
	}
	if !start.Before(end) {
		return model.NewValidationError("timeSlot", "start must be before end")
	}
	return nil
}

// Create validates the input and persists a new task for the owner. New
// tasks always start incomplete, with their color derived from the category.
func (s *TaskService) Create(ctx context.Context, userID string, input TaskInput) (*model.Task, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	rawStart, rawEnd, _ := classify.SplitSlot(input.TimeSlot)
	task := model.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		TimeSlot:    input.TimeSlot,
		StartTime:   rawStart,
		EndTime:     rawEnd,
		Completed:   false,
		Color:       model.ColorFor(input.Category),
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, userID, taskID)
}

// Update applies the same validation as Create but leaves Completed alone.
// Color is not recomputed when the category changes; a task keeps the color
// it was created with.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, input TaskInput) (*model.Task, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	rawStart, rawEnd, _ := classify.SplitSlot(input.TimeSlot)
	task.Title = input.Title
	task.Description = input.Description
	task.Category = input.Category
	task.Priority = input.Priority
	task.TimeSlot = input.TimeSlot
	task.StartTime = rawStart
	task.EndTime = rawEnd

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// SetCompleted sets the completed flag unconditionally. Nothing prevents
// completing a future task or un-completing an overdue one.
func (s *TaskService) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	task.Completed = completed
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Renew reinstates an overdue task into the current day: the window keeps its
// original duration but is re-anchored at now, and the completed flag is
// reset. An unparseable stored window falls back to a one-hour duration.
func (s *TaskService) Renew(ctx context.Context, userID, taskID string, now time.Time) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	duration := renewFallbackDuration
	if start, err := classify.ParseInstant(task.StartTime); err == nil {
		if end, err := classify.ParseInstant(task.EndTime); err == nil && end.After(start) {
			duration = end.Sub(start)
		}
	}

	start := now
	end := now.Add(duration)
	task.StartTime = start.Format(time.RFC3339)
	task.EndTime = end.Format(time.RFC3339)
	task.TimeSlot = classify.JoinSlot(start, end)
	task.Completed = false

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	return s.taskRepo.Delete(ctx, userID, taskID)
}

// Board fetches the owner's snapshot and classifies it against now. Records
// skipped for unparseable windows are logged so the drop stays observable.
func (s *TaskService) Board(ctx context.Context, userID string, now time.Time) (classify.Groups, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return classify.Groups{}, err
	}

	groups, skipped := classify.Partition(now, tasks)
	for _, err := range skipped {
		log.Printf("board %s: %v", userID, err)
	}
	return groups, nil
}
