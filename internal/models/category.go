package models

import "time"

// Category groups articles. Articles hold a non-owning reference to it,
// so deleting an article never touches its category.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
