package bandit

import "context"

// EligibilityChecker decides if a club may be recommended to a student
// (inactive clubs, membership caps, already joined).
type EligibilityChecker interface {
	IsEligible(ctx context.Context, studentID uint, clubID uint) (bool, error)
}

// NoopEligibilityChecker allows every club.
type NoopEligibilityChecker struct{}

func (NoopEligibilityChecker) IsEligible(ctx context.Context, studentID uint, clubID uint) (bool, error) {
	return true, nil
}
