package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Document is one row of the generic document table.
type Document struct {
	Collection string            `gorm:"type:text;primaryKey"`
	ID         string            `gorm:"type:text;primaryKey"`
	Data       datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
