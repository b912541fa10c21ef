package models

import "time"

// IdempotencyKey stores the outcome of the first submission of a form.
type IdempotencyKey struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Key              string     `json:"key" gorm:"column:idem_key;size:128;uniqueIndex"` // hidden form field or header value
	RequestHash      string     `json:"request_hash" gorm:"size:64"`                     // sha256 of method|path|user
	Method           string     `json:"method" gorm:"size:10"`
	Path             string     `json:"path" gorm:"size:255"`
	UserID           string     `json:"user_id" gorm:"size:128"`
	ResponseStatus   int        `json:"response_status"` // 0 => not completed yet
	ResponseLocation string     `json:"response_location" gorm:"size:255"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}
