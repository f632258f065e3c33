package bandit

import (
	"context"
	"fmt"

	"campusMatching/domain"
	"campusMatching/pkg/logger"
)

// loadCandidates returns the clubs a student may be shown. A non-empty query
// keeps only clubs sharing at least one word with it.
func (s *BanditService) loadCandidates(
	ctx context.Context,
	studentID uint,
	query string,
) ([]domain.Club, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	clubs, err := s.clubRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clubs: %w", err)
	}

	queryTokens := ParseTokens(query)

	out := make([]domain.Club, 0, len(clubs))
	for _, club := range clubs {
		if len(queryTokens) > 0 && !matchesQuery(club, queryTokens) {
			continue
		}

		if s.eligChecker != nil {
			ok, err := s.eligChecker.IsEligible(ctx, studentID, club.ID)
			if err != nil {
				logger.Warn("eligibility check failed",
					"student_id", studentID,
					"club_id", club.ID,
					"error", err,
				)
				continue
			}
			if !ok {
				continue
			}
		}

		out = append(out, club)
	}

	return out, nil
}

func matchesQuery(club domain.Club, queryTokens map[string]struct{}) bool {
	for _, field := range []string{club.Name, club.Description, club.Tags} {
		for tok := range ParseTokens(field) {
			if _, ok := queryTokens[tok]; ok {
				return true
			}
		}
	}
	return false
}
