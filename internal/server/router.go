package server

import (
	"github.com/gin-gonic/gin"

	"taskplanner/internal/service"
)

// SetupRouter wires the task API behind the bearer-token identity layer.
func SetupRouter(jwtSecret []byte, tasks *service.TaskService, boards *service.BoardService) *gin.Engine {
	r := gin.Default()

	h := &TaskHandler{Tasks: tasks, Boards: boards}

	api := r.Group("/api", AuthMiddleware(jwtSecret))
	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.PATCH("/tasks/:id/complete", h.CompleteTask)
	api.POST("/tasks/:id/renew", h.RenewTask)

	return r
}
