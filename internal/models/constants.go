package models

// TaskStatus константы статусов заявок
const (
	TaskStatusReceived   = "received"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusRejected   = "rejected"
)

// CallStatus константы статусов звонков
const (
	CallStatusPending   = "pending"
	CallStatusConfirmed = "confirmed"
	CallStatusDone      = "done"
	CallStatusCancelled = "cancelled"
)

// Role константы ролей пользователей
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// ValidTaskStatuses список валидных статусов заявок
var ValidTaskStatuses = map[string]struct{}{
	TaskStatusReceived:   {},
	TaskStatusInProgress: {},
	TaskStatusCompleted:  {},
	TaskStatusRejected:   {},
}

// ValidCallStatuses список валидных статусов звонков
var ValidCallStatuses = map[string]struct{}{
	CallStatusPending:   {},
	CallStatusConfirmed: {},
	CallStatusDone:      {},
	CallStatusCancelled: {},
}

// ValidRoles список валидных ролей
var ValidRoles = map[string]struct{}{
	RoleAdmin:    {},
	RoleEmployee: {},
}
