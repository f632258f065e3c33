package domain

import (
	"time"

	"gorm.io/datatypes"
)

// FeedbackEvent is the append-only log of student reactions to clubs.
type FeedbackEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	StudentID uint              `gorm:"column:student_id;not null;index" json:"student_id"`
	ClubID    uint              `gorm:"column:club_id;not null" json:"club_id"`
	EventType string            `gorm:"column:event_type;not null" json:"event_type"`
	Reward    float64           `gorm:"column:reward;not null" json:"reward"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (FeedbackEvent) TableName() string {
	return "feedback_events"
}

type ClubRecommendation struct {
	ClubID      uint    `json:"club_id"`
	Name        string  `json:"name"`
	Tags        string  `json:"tags"`
	MeetingTime string  `json:"meeting_time"`
	Score       float64 `json:"score"`
}
