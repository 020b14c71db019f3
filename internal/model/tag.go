package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag names are globally unique; tags are shared across tasks via
// find-or-create.
type Tag struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"uniqueIndex;not null"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
