package domain

import "time"

// Goal is a free-form training target. Goals have no relationship to
// exercises; they are created on form submit and deleted by id.
type Goal struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"index;size:36;not null" json:"userId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
