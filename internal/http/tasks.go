package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dailyword/internal/tasks"
)

// TasksController handles background task endpoints.
type TasksController struct {
	queue TaskQueue
}

// NewTasksController creates a new TasksController.
func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

// ImportRequest names the bulk verse source to import.
type ImportRequest struct {
	Path string `json:"path" binding:"required"`
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == "not_found" {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": status,
	})
}

// ImportVerses enqueues a bulk verse import.
// POST /api/verses/import
func (tc *TasksController) ImportVerses(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "path is required")
		return
	}

	taskID, err := tc.queue.Enqueue(tasks.ImportVersesTask{Path: req.Path})
	if err != nil {
		respondInternalError(c, err, "enqueue import")
		return
	}

	respondAccepted(c, "import enqueued", gin.H{"task_id": taskID})
}
