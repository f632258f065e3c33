package domain

import "time"

// Session is the server-side record of an issued login token.
type Session struct {
	StudentID string    `json:"student_id"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

type StudentProfile struct {
	Student       Student `json:"student"`
	FeedbackCount int64   `json:"feedback_count"`
}
