package bandit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"campusMatching/domain"
	"campusMatching/pkg/logger"

	"gorm.io/datatypes"
)

// ---- context helpers ----

// buildBaseContext is stored alongside every feedback event.
func buildBaseContext(ctx context.Context, now time.Time) map[string]any {
	base := map[string]any{
		"event_time": now.Format(time.RFC3339),
		"dow":        now.Weekday().String(),
		"hour":       now.Hour(),
	}
	if tid := TraceIDFromContext(ctx); tid != "" {
		base["trace_id"] = tid
	}
	return base
}

// mergeContext merges multiple maps into a new one, later maps win.
func mergeContext(maps ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// ---- Repository interfaces ----

type StudentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Student, error)
}

type ClubRepository interface {
	FindAll(ctx context.Context) ([]domain.Club, error)
	FindByID(ctx context.Context, id uint) (domain.Club, error)
}

type FeedbackRepository interface {
	SaveEvent(ctx context.Context, event *domain.FeedbackEvent) error
	FindAll(ctx context.Context) ([]domain.FeedbackEvent, error)
}

// ---- Usecase / Service ----

// BanditService owns the process-wide model. Every read or write of the
// model happens under mu. logMu orders feedback writes against replays so
// each logged event lands in the model exactly once; lock logMu before mu.
type BanditService struct {
	studentRepo  StudentRepository
	clubRepo     ClubRepository
	feedbackRepo FeedbackRepository
	eligChecker  EligibilityChecker
	cfg          Config

	logMu sync.Mutex
	mu    sync.Mutex
	model *LinUCB
}

func NewBanditService(
	studentRepo StudentRepository,
	clubRepo ClubRepository,
	feedbackRepo FeedbackRepository,
	eligChecker EligibilityChecker,
	cfg Config,
) (*BanditService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model, err := NewLinUCB(defaultEncoder, LinUCBConfig{
		Dim:    defaultEncoder.Dim(),
		Alpha:  cfg.Alpha,
		Lambda: cfg.Lambda,
	})
	if err != nil {
		return nil, err
	}

	if eligChecker == nil {
		eligChecker = NoopEligibilityChecker{}
	}

	return &BanditService{
		studentRepo:  studentRepo,
		clubRepo:     clubRepo,
		feedbackRepo: feedbackRepo,
		eligChecker:  eligChecker,
		cfg:          cfg,
		model:        model,
	}, nil
}

// ---- Feedback / learning ----

// LogFeedback records a student's reaction to a club and folds its reward
// into the model. The event is persisted before the model changes so a
// replay of the log reproduces the model.
func (s *BanditService) LogFeedback(
	ctx context.Context,
	event domain.FeedbackEvent,
) (domain.FeedbackEvent, error) {
	if err := ctx.Err(); err != nil {
		return domain.FeedbackEvent{}, fmt.Errorf("context error: %w", err)
	}
	if event.EventType == "" {
		return domain.FeedbackEvent{}, fmt.Errorf("%w: event_type is required", ErrUnknownEventType)
	}

	reward, err := s.cfg.RewardForEvent(event.EventType)
	if err != nil {
		return domain.FeedbackEvent{}, err
	}

	student, err := s.studentRepo.FindByID(ctx, event.StudentID)
	if err != nil {
		return domain.FeedbackEvent{}, fmt.Errorf("load student: %w", err)
	}
	club, err := s.clubRepo.FindByID(ctx, event.ClubID)
	if err != nil {
		return domain.FeedbackEvent{}, fmt.Errorf("load club: %w", err)
	}

	now := time.Now()
	clientCtx := map[string]any{}
	for k, v := range event.Context {
		clientCtx[k] = v
	}
	event.Context = datatypes.JSONMap(mergeContext(clientCtx, buildBaseContext(ctx, now)))
	event.Reward = reward
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}

	s.logMu.Lock()
	if err := s.feedbackRepo.SaveEvent(ctx, &event); err != nil {
		s.logMu.Unlock()
		return domain.FeedbackEvent{}, fmt.Errorf("failed to save feedback event: %w", err)
	}

	s.mu.Lock()
	err = s.model.Update(student, club, reward)
	updates := s.model.Updates()
	s.mu.Unlock()
	s.logMu.Unlock()
	if err != nil {
		return domain.FeedbackEvent{}, fmt.Errorf("update model: %w", err)
	}

	logger.Debug("bandit_feedback",
		"trace_id", TraceIDFromContext(ctx),
		"student_id", event.StudentID,
		"club_id", event.ClubID,
		"event_type", event.EventType,
		"reward", reward,
		"updates", updates,
	)

	BanditFeedbackEventsTotal.WithLabelValues(event.EventType).Inc()
	BanditModelUpdates.Set(float64(updates))

	return event, nil
}

// ---- Recommendation / serving ----

// Recommend ranks the eligible clubs for a student by UCB score.
func (s *BanditService) Recommend(
	ctx context.Context,
	studentID uint,
	limit int,
	query string,
) ([]domain.ClubRecommendation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	limit = s.cfg.clampLimit(limit)

	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}

	candidates, err := s.loadCandidates(ctx, studentID, query)
	if err != nil {
		return nil, err
	}

	logger.Debug("bandit_recommend",
		"trace_id", TraceIDFromContext(ctx),
		"student_id", studentID,
		"limit", limit,
		"candidate_count", len(candidates),
	)

	s.mu.Lock()
	ranked, err := s.model.Rank(student, candidates, limit)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("rank clubs: %w", err)
	}

	out := make([]domain.ClubRecommendation, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, toRecommendation(r.Club, r.Score))
	}
	return out, nil
}

// Best returns the single highest scoring club; ok is false when the
// student has no eligible candidates.
func (s *BanditService) Best(
	ctx context.Context,
	studentID uint,
) (domain.ClubRecommendation, bool, error) {

	if err := ctx.Err(); err != nil {
		return domain.ClubRecommendation{}, false, fmt.Errorf("context error: %w", err)
	}

	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return domain.ClubRecommendation{}, false, fmt.Errorf("load student: %w", err)
	}

	candidates, err := s.loadCandidates(ctx, studentID, "")
	if err != nil {
		return domain.ClubRecommendation{}, false, err
	}

	s.mu.Lock()
	club, score, ok, err := s.model.SelectBest(student, candidates)
	s.mu.Unlock()
	if err != nil {
		return domain.ClubRecommendation{}, false, fmt.Errorf("select club: %w", err)
	}
	if !ok {
		return domain.ClubRecommendation{}, false, nil
	}

	return toRecommendation(club, score), true, nil
}

// ---- Admin ----

// ResetModel drops everything the model has learned. The feedback log is
// left untouched, so the reset only lasts until the next ReplayFeedback
// (including the one BANDIT_REPLAY_ON_START runs at boot).
func (s *BanditService) ResetModel(ctx context.Context) {
	s.logMu.Lock()
	s.mu.Lock()
	s.model.Reset()
	s.mu.Unlock()
	s.logMu.Unlock()

	BanditModelUpdates.Set(0)
	logger.Info("bandit model reset", "trace_id", TraceIDFromContext(ctx))
}

func (s *BanditService) Stats() domain.BanditModelStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.BanditModelStats{
		Dim:     s.model.Dim(),
		Alpha:   s.model.Alpha(),
		Lambda:  s.model.Lambda(),
		Updates: s.model.Updates(),
		Tags:    s.model.Encoder().Vocabulary().Tags(),
	}
}

// ReplayFeedback resets the model and re-applies the whole feedback log.
// Events whose student or club no longer exists are skipped. Feedback
// logged while a replay runs waits for it to finish.
func (s *BanditService) ReplayFeedback(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	s.logMu.Lock()
	defer s.logMu.Unlock()

	events, err := s.feedbackRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load feedback events: %w", err)
	}

	students := map[uint]*domain.Student{}
	clubs := map[uint]*domain.Club{}
	phis := make([][]float64, 0, len(events))
	rewards := make([]float64, 0, len(events))

	for _, ev := range events {
		st, ok := students[ev.StudentID]
		if !ok {
			st = s.lookupStudent(ctx, ev.StudentID)
			students[ev.StudentID] = st
		}
		cl, ok := clubs[ev.ClubID]
		if !ok {
			cl = s.lookupClub(ctx, ev.ClubID)
			clubs[ev.ClubID] = cl
		}
		if st == nil || cl == nil {
			logger.Warn("skipping feedback event", "event_id", ev.ID, "student_id", ev.StudentID, "club_id", ev.ClubID)
			continue
		}
		phis = append(phis, s.model.Encoder().Encode(*st, *cl))
		rewards = append(rewards, ev.Reward)
	}

	s.mu.Lock()
	s.model.Reset()
	for i, phi := range phis {
		if err := s.model.UpdateVector(phi, rewards[i]); err != nil {
			s.mu.Unlock()
			return i, fmt.Errorf("replay event %d: %w", i, err)
		}
	}
	updates := s.model.Updates()
	s.mu.Unlock()

	BanditModelUpdates.Set(float64(updates))
	logger.Info("bandit feedback replayed", "events", len(events), "applied", updates)

	return updates, nil
}

func (s *BanditService) lookupStudent(ctx context.Context, id uint) *domain.Student {
	st, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("load student for replay", "student_id", id, "error", err)
		}
		return nil
	}
	return &st
}

func (s *BanditService) lookupClub(ctx context.Context, id uint) *domain.Club {
	cl, err := s.clubRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("load club for replay", "club_id", id, "error", err)
		}
		return nil
	}
	return &cl
}

func toRecommendation(club domain.Club, score float64) domain.ClubRecommendation {
	return domain.ClubRecommendation{
		ClubID:      club.ID,
		Name:        club.Name,
		Tags:        club.Tags,
		MeetingTime: club.MeetingTime,
		Score:       score,
	}
}
