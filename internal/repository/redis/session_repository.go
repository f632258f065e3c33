package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campusMatching/domain"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// SessionRepository keeps one active login per student. A new login
// replaces the previous token.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

func sessionKey(studentID string) string {
	return fmt.Sprintf("session:student:%s", studentID)
}

func lookupKey(token string) string {
	return fmt.Sprintf("session:lookup:%s", token)
}

func (r *SessionRepository) StoreToken(ctx context.Context, data domain.Session, ttl time.Duration) error {
	if prev, err := r.GetSession(ctx, data.StudentID); err == nil {
		r.client.Del(ctx, lookupKey(prev.Token))
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKey(data.StudentID), jsonData, ttl)
	// reverse lookup token -> student id for quick validation
	pipe.Set(ctx, lookupKey(data.Token), data.StudentID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetSession(ctx context.Context, studentID string) (*domain.Session, error) {
	val, err := r.client.Get(ctx, sessionKey(studentID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var data domain.Session
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &data, nil
}

// ValidateToken returns the student id the token was issued to.
func (r *SessionRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	studentID, err := r.client.Get(ctx, lookupKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return studentID, nil
}

func (r *SessionRepository) DeleteToken(ctx context.Context, studentID, token string) error {
	if err := r.client.Del(ctx, sessionKey(studentID), lookupKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
