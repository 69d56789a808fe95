package dto

import (
	"github.com/sitecraft/agency-backend/internal/estimator"
	"github.com/sitecraft/agency-backend/internal/models"
	"github.com/sitecraft/agency-backend/internal/payout"
)

// AuthResponse represents the result of a login or token refresh
type AuthResponse struct {
	User         *models.User `json:"user,omitempty"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// EstimateResponse represents a calculated project estimate
type EstimateResponse struct {
	TotalPrice   float64 `json:"total_price"`
	TotalDays    int     `json:"total_days"`
	DeliveryDate string  `json:"delivery_date"`
}

// NewEstimateResponse creates an EstimateResponse from an engine estimate
func NewEstimateResponse(est estimator.Estimate) *EstimateResponse {
	return &EstimateResponse{
		TotalPrice:   est.TotalPrice,
		TotalDays:    est.TotalDays,
		DeliveryDate: estimator.FormatDeliveryDate(est.DeliveryDate),
	}
}

// CatalogResponse represents the pricing catalog exposed to the public form
type CatalogResponse struct {
	WebsiteTypes []estimator.WebsiteType `json:"website_types"`
	Complexities []estimator.Complexity  `json:"complexity_levels"`
	Features     []estimator.Feature     `json:"features"`
	SupportPlans []estimator.SupportPlan `json:"support_plans"`
}

// TaskResponse represents a task together with its estimate
type TaskResponse struct {
	*models.Task
	Estimate *EstimateResponse `json:"estimate"`
}

// NewTaskResponse creates a TaskResponse from a stored task
func NewTaskResponse(task *models.Task) *TaskResponse {
	return &TaskResponse{
		Task: task,
		Estimate: &EstimateResponse{
			TotalPrice:   task.Budget,
			TotalDays:    task.EstimatedTimeline,
			DeliveryDate: task.EstimatedDelivery,
		},
	}
}

// PaginatedTasksResponse represents a paginated task list
type PaginatedTasksResponse struct {
	Tasks  []models.Task `json:"tasks"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// EmployeePayoutResponse represents an employee profile with payout details
type EmployeePayoutResponse struct {
	Employee       *models.User   `json:"employee"`
	ProjectDetails []models.Task  `json:"project_details"`
	PayoutDetails  *payout.Result `json:"payout_details"`
}

// NewEmployeePayoutResponse creates an EmployeePayoutResponse from components
func NewEmployeePayoutResponse(employee *models.User, tasks []models.Task, details *payout.Result) *EmployeePayoutResponse {
	return &EmployeePayoutResponse{
		Employee:       employee,
		ProjectDetails: tasks,
		PayoutDetails:  details,
	}
}
