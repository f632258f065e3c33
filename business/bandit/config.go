package bandit

import "fmt"

type Config struct {
	Alpha  float64
	Lambda float64

	// limits for Recommend / DebugRecommend
	DefaultLimit int
	MaxLimit     int

	// rewards per feedback event type
	RewardLike    float64
	RewardDislike float64
	RewardJoin    float64
}

const (
	defaultLimit         = 5
	defaultMaxLimit      = 50
	defaultRewardLike    = 1.0
	defaultRewardDislike = 0.0
	defaultRewardJoin    = 1.0
)

func DefaultConfig() Config {
	return Config{
		Alpha:  defaultAlpha,
		Lambda: defaultLambda,

		DefaultLimit: defaultLimit,
		MaxLimit:     defaultMaxLimit,

		RewardLike:    defaultRewardLike,
		RewardDislike: defaultRewardDislike,
		RewardJoin:    defaultRewardJoin,
	}
}

func (cfg Config) Validate() error {
	if cfg.Alpha < 0 {
		return fmt.Errorf("%w: alpha must be >= 0", ErrInvalidConfig)
	}
	if cfg.Lambda <= 0 {
		return fmt.Errorf("%w: lambda must be > 0", ErrInvalidConfig)
	}
	if cfg.DefaultLimit <= 0 || cfg.MaxLimit < cfg.DefaultLimit {
		return fmt.Errorf("%w: limits default=%d max=%d", ErrInvalidConfig, cfg.DefaultLimit, cfg.MaxLimit)
	}
	for _, r := range []float64{cfg.RewardLike, cfg.RewardDislike, cfg.RewardJoin} {
		if !finite(r) {
			return fmt.Errorf("%w: rewards must be finite", ErrInvalidConfig)
		}
	}
	return nil
}

// clampLimit maps a requested page size into [1, MaxLimit].
func (cfg Config) clampLimit(limit int) int {
	if limit <= 0 {
		return cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		return cfg.MaxLimit
	}
	return limit
}
