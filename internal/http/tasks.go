package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/libraryhub/internal/tasks"
)

// TasksController handles task queue and scheduler endpoints.
type TasksController struct {
	queue     TaskQueue
	reminders ReminderRunner
}

func NewTasksController(queue TaskQueue, reminders ReminderRunner) *TasksController {
	return &TasksController{queue: queue, reminders: reminders}
}

type runTaskRequest struct {
	Type          string `json:"type" binding:"required"`
	DraftID       string `json:"draft_id,omitempty"`
	RetentionDays int    `json:"retention_days,omitempty"`
}

// RunTask handles POST /api/tasks
func (tc *TasksController) RunTask(c *gin.Context) {
	if tc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	var req runTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "task type is required")
		return
	}

	taskType := req.Type
	var task backlite.Task
	switch taskType {
	case "enrich_draft":
		task = tasks.EnrichDraftTask{DraftID: req.DraftID}
	case "catalog_drafts":
		task = tasks.CatalogDraftsTask{UserID: GetUserID(c)}
	case "prune_activity":
		task = tasks.PruneActivityTask{RetentionDays: req.RetentionDays}
	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	ids, err := tc.queue.Enqueue(task)
	if err != nil {
		respondInternalError(c, err, "enqueue task")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": ids[0],
		"type":    taskType,
		"message": "task enqueued",
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	if tc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	taskID := c.Param("id")
	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunReminders handles POST /api/reminders/run
func (tc *TasksController) RunReminders(c *gin.Context) {
	if tc.reminders == nil {
		respondError(c, http.StatusServiceUnavailable, "reminders are disabled")
		return
	}
	sent, err := tc.reminders.RunNow(c.Request.Context())
	if err != nil {
		respondResourceError(c, err, "run reminders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent, "next_run": tc.reminders.NextRun()})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
