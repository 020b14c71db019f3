package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// A task belongs to exactly one column at any time; moving it reassigns
// ColumnID, never copies.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ColumnID    uuid.UUID  `json:"columnId" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description *string    `json:"description"`
	AssigneeID  *uuid.UUID `json:"assigneeId" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Column   *Column `json:"column,omitempty" gorm:"foreignKey:ColumnID"`
	Assignee *User   `json:"assignee" gorm:"foreignKey:AssigneeID"`
	Tags     []Tag   `json:"tags" gorm:"many2many:task_tags"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
