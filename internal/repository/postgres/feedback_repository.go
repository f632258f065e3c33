package postgres

import (
	"context"
	"fmt"

	"campusMatching/business/bandit"
	"campusMatching/business/student"
	"campusMatching/domain"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

var (
	_ bandit.FeedbackRepository = (*FeedbackRepository)(nil)
	_ student.FeedbackCounter   = (*FeedbackRepository)(nil)
)

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

// ---- Events ----

func (r *FeedbackRepository) SaveEvent(ctx context.Context, event *domain.FeedbackEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to save feedback event: %w", err)
	}

	return nil
}

// FindAll returns the whole log in insertion order.
func (r *FeedbackRepository) FindAll(ctx context.Context) ([]domain.FeedbackEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.FeedbackEvent
	if err := r.DB.WithContext(ctx).Order("id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to query feedback_events: %w", err)
	}

	return events, nil
}

func (r *FeedbackRepository) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&domain.FeedbackEvent{}).
		Where("student_id = ?", studentID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback events: %w", err)
	}
	return n, nil
}
