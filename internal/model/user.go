package model

import "time"

type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email     string `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Username  string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	FirstName string `gorm:"type:varchar(150)" json:"first_name"`
	LastName  string `gorm:"type:varchar(150)" json:"last_name"`
	// bcrypt hash, never serialized
	Password  string `gorm:"type:varchar(100);not null" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "users" }
