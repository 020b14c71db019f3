package handler

import (
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	boards *service.BoardService
}

func NewTaskHandler(boards *service.BoardService) *TaskHandler {
	return &TaskHandler{boards: boards}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	ColumnID    string     `json:"columnId" binding:"required"`
	Description *string    `json:"description"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	Tags        []string   `json:"tags"`
}

type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	ColumnID    *uuid.UUID         `json:"columnId"`
	AssigneeID  service.OptionalID `json:"assigneeId"`
	Tags        *[]string          `json:"tags"`
}

type MoveTaskRequest struct {
	ColumnID string `json:"columnId" binding:"required"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and column ID are required"})
		return
	}
	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	task, err := h.boards.CreateTask(c.Request.Context(), service.CreateTaskInput{
		Title:       req.Title,
		ColumnID:    columnID,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.boards.UpdateTask(c.Request.Context(), taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.ColumnID,
		Assignee:    req.AssigneeID,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) Move(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Column ID is required"})
		return
	}
	columnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	task, err := h.boards.MoveTask(c.Request.Context(), taskID, columnID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.boards.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
