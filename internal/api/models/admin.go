package models

import "time"

type Admin struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string     `json:"username" gorm:"size:100;uniqueIndex;not null"`
	Email     string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"column:password_hash;size:255;not null"`
	Role      string     `json:"role" gorm:"size:50;default:admin"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}
