package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTaskHandler_Create_InvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewTaskHandler(nil)
	r.POST("/api/tasks", handler.Create)

	req, _ := http.NewRequest("POST", "/api/tasks", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_Create_MissingRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewTaskHandler(nil)
	r.POST("/api/tasks", handler.Create)

	req, _ := http.NewRequest("POST", "/api/tasks", strings.NewReader(`{"client_name":"Иван"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_List_InvalidAssignedTo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewTaskHandler(nil)
	r.GET("/api/admin/tasks", handler.List)

	req, _ := http.NewRequest("GET", "/api/admin/tasks?assigned_to=not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
