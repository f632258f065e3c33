package bandit

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid bandit config")
	ErrDimensionMismatch = errors.New("feature vector dimension mismatch")
	ErrSingularModel     = errors.New("design matrix is not positive definite")
	ErrIllConditioned    = errors.New("design matrix is ill-conditioned")
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrInvalidReward     = errors.New("reward must be a finite number")
)
