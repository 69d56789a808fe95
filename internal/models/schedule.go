package models

import (
	"time"

	"github.com/google/uuid"
)

// CallSchedule — запись на консультационный звонок с клиентом.
type CallSchedule struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	ClientName  string     `db:"client_name" json:"client_name"`
	ClientPhone string     `db:"client_phone" json:"client_phone"`
	ClientEmail *string    `db:"client_email" json:"client_email,omitempty"`
	TaskID      *uuid.UUID `db:"task_id" json:"task_id,omitempty"`
	ScheduledAt time.Time  `db:"scheduled_at" json:"scheduled_at"`
	Status      string     `db:"status" json:"status"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
