package bandit

import "fmt"

const (
	EventLike    = "like"
	EventDislike = "dislike"
	EventJoin    = "join"
)

// RewardForEvent turns a feedback event type into a numeric reward.
func (cfg Config) RewardForEvent(eventType string) (float64, error) {
	switch eventType {
	case EventLike:
		return cfg.RewardLike, nil
	case EventDislike:
		return cfg.RewardDislike, nil
	case EventJoin:
		return cfg.RewardJoin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}
}
