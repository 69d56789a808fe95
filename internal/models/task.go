package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Task — заявка клиента на разработку сайта. Поля сметы (budget,
// estimated_timeline, estimated_delivery) производные: пересчитываются
// из конфигурации движком расчёта и сохраняются на запись для отдачи
// клиенту, источником истины остаётся конфигурация.
type Task struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ClientName  string    `db:"client_name" json:"client_name"`
	ClientEmail string    `db:"client_email" json:"client_email"`
	ClientPhone *string   `db:"client_phone" json:"client_phone,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`

	// Конфигурация проекта. Features хранится как сырой JSON: в старых
	// записях встречаются массив, объект и строка с запятыми.
	WebsiteType string          `db:"website_type" json:"website_type"`
	Complexity  string          `db:"complexity" json:"complexity"`
	Features    json.RawMessage `db:"features" json:"features"`
	SupportPlan string          `db:"support_plan" json:"support_plan"`

	Budget            float64 `db:"budget" json:"budget"`
	EstimatedTimeline int     `db:"estimated_timeline" json:"estimated_timeline"`
	EstimatedDelivery string  `db:"estimated_delivery" json:"estimated_delivery"`

	Status     string     `db:"status" json:"status"`
	AssignedTo *uuid.UUID `db:"assigned_to" json:"assigned_to,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Attachments []TaskAttachment `json:"attachments,omitempty"`
}

// TaskAttachment описывает файл, прикреплённый к заявке (бриф, макет).
type TaskAttachment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TaskID    uuid.UUID `db:"task_id" json:"task_id"`
	MediaID   uuid.UUID `db:"media_id" json:"media_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Media *MediaFile `json:"media,omitempty"`
}
