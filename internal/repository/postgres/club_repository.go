package postgres

import (
	"context"
	"errors"
	"fmt"

	"campusMatching/business/bandit"
	"campusMatching/business/club"
	"campusMatching/domain"

	"gorm.io/gorm"
)

type ClubRepository struct {
	DB *gorm.DB
}

var (
	_ bandit.ClubRepository = (*ClubRepository)(nil)
	_ club.ClubRepository   = (*ClubRepository)(nil)
)

func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{DB: db}
}

func (r *ClubRepository) Create(ctx context.Context, club *domain.Club) error {
	if err := r.DB.WithContext(ctx).Create(club).Error; err != nil {
		return fmt.Errorf("failed to create club: %w", err)
	}
	return nil
}

// FindAll returns the catalog in id order; candidate order decides score ties.
func (r *ClubRepository) FindAll(ctx context.Context) ([]domain.Club, error) {
	var clubs []domain.Club

	if err := r.DB.WithContext(ctx).Order("id").Find(&clubs).Error; err != nil {
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}

	return clubs, nil
}

func (r *ClubRepository) FindByID(ctx context.Context, id uint) (domain.Club, error) {
	var club domain.Club

	err := r.DB.WithContext(ctx).First(&club, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Club{}, fmt.Errorf("club %d: %w", id, domain.ErrNotFound)
		}
		return domain.Club{}, err
	}

	return club, nil
}
