package devserver

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nibzard/taskboard/internal/task"
)

const msgTaskNotFound = "Task not found"

// taskResponse mirrors task.Task but always carries the optional fields,
// as null when unset.
type taskResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   *string       `json:"description"`
	Category      task.Category `json:"category"`
	EstimatedTime *int          `json:"estimated_time"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func toResponse(t task.Task) taskResponse {
	resp := taskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Category:      t.Category,
		EstimatedTime: t.EstimatedTime,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.Description != "" {
		d := t.Description
		resp.Description = &d
	}
	return resp
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleCreate(c *gin.Context) {
	var in task.CreateInput
	if err := bindBody(c, &in); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	if fields := task.ValidateCreate(in); fields != nil {
		detail(c, http.StatusUnprocessableEntity, fieldDetail(fields))
		return
	}

	category := s.categorizer.Categorize(in.Title, in.Description)
	created := s.repo.create(in, category)
	s.logger.Info("task created", "task_id", created.ID, "category", category)
	c.JSON(http.StatusCreated, toResponse(created))
}

func (s *Server) handleList(c *gin.Context) {
	tasks := s.repo.list()
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGet(c *gin.Context) {
	t, ok := s.repo.get(c.Param("id"))
	if !ok {
		detail(c, http.StatusNotFound, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, toResponse(t))
}

func (s *Server) handleUpdate(c *gin.Context) {
	id := c.Param("id")
	var in task.UpdateInput
	if err := bindBody(c, &in); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	if fields := task.ValidateUpdate(in); fields != nil {
		detail(c, http.StatusUnprocessableEntity, fieldDetail(fields))
		return
	}

	updated, ok := s.repo.update(id, in)
	if !ok {
		detail(c, http.StatusNotFound, msgTaskNotFound)
		return
	}
	s.logger.Info("task updated", "task_id", id)
	c.JSON(http.StatusOK, toResponse(updated))
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	if !s.repo.delete(id) {
		detail(c, http.StatusNotFound, msgTaskNotFound)
		return
	}
	s.logger.Info("task deleted", "task_id", id)
	c.Status(http.StatusNoContent)
}

// bindBody decodes a JSON body. An empty body decodes as an empty object.
func bindBody(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func fieldDetail(fields task.FieldErrors) string {
	msgs := make([]string, 0, len(fields))
	for _, name := range fields.Fields() {
		msgs = append(msgs, fields[name])
	}
	return strings.Join(msgs, "; ")
}

func detail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": message})
}
