package bandit

import (
	"context"
	"fmt"

	"campusMatching/domain"
	"campusMatching/pkg/logger"
)

// DebugRecommend returns the score components of the top clubs.
func (s *BanditService) DebugRecommend(
	ctx context.Context,
	studentID uint,
	limit int,
) ([]domain.DebugRecommendation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	limit = s.cfg.clampLimit(limit)

	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}

	candidates, err := s.loadCandidates(ctx, studentID, "")
	if err != nil {
		return nil, err
	}

	logger.Debug("bandit_debug_recommend",
		"trace_id", TraceIDFromContext(ctx),
		"student_id", studentID,
		"limit", limit,
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	ranked, err := s.model.Rank(student, candidates, limit)
	if err != nil {
		return nil, fmt.Errorf("rank clubs: %w", err)
	}

	out := make([]domain.DebugRecommendation, 0, len(ranked))
	for _, r := range ranked {
		phi := s.model.Encoder().Encode(student, r.Club)
		mean, uncertainty, err := s.model.Components(phi)
		if err != nil {
			return nil, fmt.Errorf("score components for club %d: %w", r.Club.ID, err)
		}

		out = append(out, domain.DebugRecommendation{
			ClubID:            r.Club.ID,
			Name:              r.Club.Name,
			BanditMean:        mean,
			BanditUncertainty: uncertainty,
			BanditUCB:         r.Score,
			Features:          phi,
		})
	}

	return out, nil
}
