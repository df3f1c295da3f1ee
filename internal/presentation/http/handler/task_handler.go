package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/application/service"
	"github.com/stitchline/tailorflow-api/internal/presentation/http/dto/response"
)

// TaskHandler handles staff task HTTP requests
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Mine handles listing the authenticated user's tasks
func (h *TaskHandler) Mine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	openOnly := c.Query("open") == "true"

	tasks, err := h.taskService.MyTasks(c.Request.Context(), *userID, openOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tasks retrieved successfully", tasks)
}

// ForOrder handles listing the tasks created for an order
func (h *TaskHandler) ForOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	tasks, err := h.taskService.TasksForOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tasks retrieved successfully", tasks)
}

// Complete handles marking a task as done
func (h *TaskHandler) Complete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.Complete(c.Request.Context(), taskID, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Task completed successfully", task)
}
