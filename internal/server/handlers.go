package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskplanner/internal/classify"
	"taskplanner/internal/model"
	"taskplanner/internal/service"
)

// TaskHandler exposes the planner operations over HTTP.
type TaskHandler struct {
	Tasks  *service.TaskService
	Boards *service.BoardService
}

type taskRequest struct {
	Title       string `json:"title"`
	TimeSlot    string `json:"timeSlot"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

func (r taskRequest) input() service.TaskInput {
	return service.TaskInput{
		Title:       r.Title,
		TimeSlot:    r.TimeSlot,
		Category:    r.Category,
		Priority:    r.Priority,
		Description: r.Description,
	}
}

type taskResponse struct {
	model.Task
	TimeSlotLabel string `json:"timeSlotLabel,omitempty"`
}

func newTaskResponse(task *model.Task) taskResponse {
	return taskResponse{
		Task:          *task,
		TimeSlotLabel: classify.FormatTimeSlot(time.Now(), task.TimeSlot),
	}
}

// ListTasks returns the owner's board: today, overdue and upcoming buckets.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	groups, err := h.Boards.Refresh(c.Request.Context(), ownerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), ownerID(c), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.Tasks.Get(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req taskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), ownerID(c), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

// CompleteTask sets the completed flag to exactly the supplied value.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	var req struct {
		Completed *bool `json:"completed"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Completed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completed status is required and must be a boolean"})
		return
	}

	task, err := h.Boards.ToggleComplete(c.Request.Context(), ownerID(c), c.Param("id"), *req.Completed)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

// RenewTask moves an overdue task back into today's bucket.
func (h *TaskHandler) RenewTask(c *gin.Context) {
	owner := ownerID(c)
	task, err := h.Tasks.Renew(c.Request.Context(), owner, c.Param("id"), time.Now())
	if err != nil {
		writeError(c, err)
		return
	}
	// Keep the cached board in step with the rescheduled window.
	if _, err := h.Boards.Refresh(c.Request.Context(), owner); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.Boards.Remove(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// writeError maps the service error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	if ve, ok := model.IsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
		return
	}
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
