package domain

import "time"

type Club struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Tags        string    `gorm:"column:tags" json:"tags"`                 // comma-separated vocabulary tags
	MeetingTime string    `gorm:"column:meeting_time" json:"meeting_time"` // e.g. "Tue 18:00"
	Location    string    `gorm:"column:location" json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Club) TableName() string {
	return "clubs"
}
