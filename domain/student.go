package domain

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"column:email;unique;not null" json:"email"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Year      string         `gorm:"column:year" json:"year"`
	Major     string         `gorm:"column:major" json:"major"`
	Interests string         `gorm:"column:interests" json:"interests"` // comma-separated vocabulary tags
	Password  string         `gorm:"column:password;not null" json:"-"`
	Role      string         `gorm:"column:role;default:student" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Student) TableName() string {
	return "students"
}
