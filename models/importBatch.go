package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportBatch records one spreadsheet import. It is written in the same
// transaction as the imported rows, so it only exists for imports that committed.
type ImportBatch struct {
	Id        string         `json:"id" gorm:"primaryKey;size:36"`
	FileName  string         `json:"file_name" gorm:"size:255;not null;default:''"`
	Rows      int            `json:"rows" gorm:"column:row_count"`
	Headers   datatypes.JSON `json:"headers"`
	Unmatched datatypes.JSON `json:"unmatched"` // headers that map to no field
	Actor     string         `json:"actor" gorm:"size:64;not null;default:''"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}

func (batch *ImportBatch) BeforeCreate(tx *gorm.DB) (err error) {
	if batch.Id == "" {
		batch.Id = uuid.NewString()
	}
	return
}
