package models

import "time"

type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty" gorm:"size:50"`
	Color       *string   `json:"color,omitempty" gorm:"size:7"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
