package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// LoginRequest represents the request to authenticate a portal user
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to exchange a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateEmployeeRequest represents the request to register an employee account
type CreateEmployeeRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
}

// UpdateEmployeeRequest represents the request to update an employee profile
type UpdateEmployeeRequest struct {
	FullName *string `json:"full_name"`
	Position *string `json:"position"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

// EstimateRequest represents a project configuration submitted for estimation.
// Features accepts an array of ids, an id->bool object or a legacy
// comma-separated string.
type EstimateRequest struct {
	WebsiteType string          `json:"website_type" binding:"required"`
	Complexity  string          `json:"complexity" binding:"required"`
	Features    json.RawMessage `json:"features"`
	SupportPlan string          `json:"support_plan"`
}

// CreateTaskRequest represents an incoming project request from a client
type CreateTaskRequest struct {
	ClientName  string          `json:"client_name" binding:"required"`
	ClientEmail string          `json:"client_email" binding:"required"`
	ClientPhone string          `json:"client_phone"`
	Description string          `json:"description"`
	WebsiteType string          `json:"website_type" binding:"required"`
	Complexity  string          `json:"complexity" binding:"required"`
	Features    json.RawMessage `json:"features"`
	SupportPlan string          `json:"support_plan"`
}

// UpdateTaskRequest represents the request to update a task configuration
type UpdateTaskRequest struct {
	ClientName  string          `json:"client_name" binding:"required"`
	ClientEmail string          `json:"client_email" binding:"required"`
	ClientPhone string          `json:"client_phone"`
	Description string          `json:"description"`
	WebsiteType string          `json:"website_type" binding:"required"`
	Complexity  string          `json:"complexity" binding:"required"`
	Features    json.RawMessage `json:"features"`
	SupportPlan string          `json:"support_plan"`
}

// UpdateTaskStatusRequest represents the request to change a task status
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignTaskRequest represents the request to assign a task to an employee
type AssignTaskRequest struct {
	EmployeeID *uuid.UUID `json:"employee_id"`
}

// AttachMediaRequest represents the request to attach an uploaded file to a task
type AttachMediaRequest struct {
	MediaID uuid.UUID `json:"media_id" binding:"required"`
}

// CreateScheduleRequest represents the request to book a consultation call
type CreateScheduleRequest struct {
	ClientName  string     `json:"client_name" binding:"required"`
	ClientPhone string     `json:"client_phone" binding:"required"`
	ClientEmail string     `json:"client_email"`
	TaskID      *uuid.UUID `json:"task_id"`
	ScheduledAt string     `json:"scheduled_at" binding:"required"`
	Notes       string     `json:"notes"`
}

// UpdateScheduleRequest represents the request to update a scheduled call
type UpdateScheduleRequest struct {
	ScheduledAt *string `json:"scheduled_at"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}
