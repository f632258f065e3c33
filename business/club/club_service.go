package club

import (
	"context"

	"campusMatching/domain"
)

type ClubRepository interface {
	FindAll(ctx context.Context) ([]domain.Club, error)
	FindByID(ctx context.Context, id uint) (domain.Club, error)
}

type clubService struct {
	clubRepo ClubRepository
}

func NewClubService(clubRepo ClubRepository) *clubService {
	return &clubService{
		clubRepo: clubRepo,
	}
}

func (s *clubService) GetAllClubs(ctx context.Context) ([]domain.Club, error) {
	return s.clubRepo.FindAll(ctx)
}

func (s *clubService) GetClubByID(ctx context.Context, id uint) (domain.Club, error) {
	return s.clubRepo.FindByID(ctx, id)
}
