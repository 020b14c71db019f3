package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is the column's position within its board. New columns append at
// max+1; the value is stored as sort_order because "order" is reserved in SQL.
type Column struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BoardID uuid.UUID `json:"boardId" gorm:"type:uuid;not null;index"`
	Title   string    `json:"title" gorm:"not null"`
	Order   int       `json:"order" gorm:"column:sort_order;not null"`

	Board *Board `json:"board,omitempty" gorm:"foreignKey:BoardID"`
	Tasks []Task `json:"tasks" gorm:"foreignKey:ColumnID"`
}

func (c *Column) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
