package bandit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"campusMatching/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStudentRepo struct {
	students map[uint]domain.Student
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id uint) (domain.Student, error) {
	st, ok := f.students[id]
	if !ok {
		return domain.Student{}, fmt.Errorf("student %d: %w", id, domain.ErrNotFound)
	}
	return st, nil
}

type fakeClubRepo struct {
	clubs []domain.Club
	err   error
}

func (f *fakeClubRepo) FindAll(ctx context.Context) ([]domain.Club, error) {
	return f.clubs, f.err
}

func (f *fakeClubRepo) FindByID(ctx context.Context, id uint) (domain.Club, error) {
	for _, c := range f.clubs {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Club{}, fmt.Errorf("club %d: %w", id, domain.ErrNotFound)
}

type fakeFeedbackRepo struct {
	mu        sync.Mutex
	events    []domain.FeedbackEvent
	saveErr   error
	afterSave func()
}

func (f *fakeFeedbackRepo) SaveEvent(ctx context.Context, event *domain.FeedbackEvent) error {
	f.mu.Lock()
	if f.saveErr != nil {
		f.mu.Unlock()
		return f.saveErr
	}
	event.ID = uint(len(f.events) + 1)
	f.events = append(f.events, *event)
	hook := f.afterSave
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

func (f *fakeFeedbackRepo) FindAll(ctx context.Context) ([]domain.FeedbackEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.FeedbackEvent(nil), f.events...), nil
}

func (f *fakeFeedbackRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type denyClubs map[uint]bool

func (d denyClubs) IsEligible(ctx context.Context, studentID, clubID uint) (bool, error) {
	if clubID == 0 {
		return false, errors.New("boom")
	}
	return !d[clubID], nil
}

type fixture struct {
	svc      *BanditService
	clubs    *fakeClubRepo
	feedback *fakeFeedbackRepo
}

func newFixture(t *testing.T, elig EligibilityChecker) fixture {
	t.Helper()

	students := &fakeStudentRepo{students: map[uint]domain.Student{1: alice()}}
	clubs := &fakeClubRepo{clubs: catalog()}
	feedback := &fakeFeedbackRepo{}

	svc, err := NewBanditService(students, clubs, feedback, elig, DefaultConfig())
	require.NoError(t, err)
	return fixture{svc: svc, clubs: clubs, feedback: feedback}
}

func TestNewBanditServiceValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lambda = 0

	_, err := NewBanditService(&fakeStudentRepo{}, &fakeClubRepo{}, &fakeFeedbackRepo{}, nil, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRecommend(t *testing.T) {
	f := newFixture(t, nil)

	recs, err := f.svc.Recommend(context.Background(), 1, 3, "")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}

	// zero limit falls back to the default
	recs, err = f.svc.Recommend(context.Background(), 1, 0, "")
	require.NoError(t, err)
	assert.Len(t, recs, 5)
}

func TestRecommendKeywordFilter(t *testing.T) {
	f := newFixture(t, nil)

	recs, err := f.svc.Recommend(context.Background(), 1, 10, "jazz soccer")
	require.NoError(t, err)

	ids := []uint{}
	for _, r := range recs {
		ids = append(ids, r.ClubID)
	}
	assert.ElementsMatch(t, []uint{3, 4}, ids)

	recs, err = f.svc.Recommend(context.Background(), 1, 10, "underwater basket weaving")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendEligibility(t *testing.T) {
	f := newFixture(t, denyClubs{1: true, 2: true})
	f.clubs.clubs = append(f.clubs.clubs, domain.Club{ID: 0, Name: "broken"})

	recs, err := f.svc.Recommend(context.Background(), 1, 10, "")
	require.NoError(t, err)
	for _, r := range recs {
		assert.NotContains(t, []uint{0, 1, 2}, r.ClubID)
	}
	assert.Len(t, recs, 3)
}

func TestRecommendErrors(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Recommend(context.Background(), 42, 5, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.clubs.err = errors.New("db down")
	_, err = f.svc.Recommend(context.Background(), 1, 5, "")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.svc.Recommend(ctx, 1, 5, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBest(t *testing.T) {
	f := newFixture(t, nil)

	rec, ok, err := f.svc.Best(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)

	recs, err := f.svc.Recommend(context.Background(), 1, 1, "")
	require.NoError(t, err)
	assert.Equal(t, recs[0], rec)

	f.clubs.clubs = nil
	_, ok, err = f.svc.Best(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogFeedbackUpdatesModel(t *testing.T) {
	f := newFixture(t, nil)
	ctx := WithTraceID(context.Background(), "trace-1")

	saved, err := f.svc.LogFeedback(ctx, domain.FeedbackEvent{
		StudentID: 1,
		ClubID:    1,
		EventType: EventLike,
		Context:   map[string]any{"source": "home"},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), saved.ID)
	assert.Equal(t, 1.0, saved.Reward)
	assert.Equal(t, "home", saved.Context["source"])
	assert.Equal(t, "trace-1", saved.Context["trace_id"])
	assert.False(t, saved.CreatedAt.IsZero())
	require.Len(t, f.feedback.events, 1)

	assert.Equal(t, 1, f.svc.Stats().Updates)
}

func TestLogFeedbackRewards(t *testing.T) {
	f := newFixture(t, nil)

	for ev, want := range map[string]float64{EventLike: 1, EventDislike: 0, EventJoin: 1} {
		saved, err := f.svc.LogFeedback(context.Background(), domain.FeedbackEvent{StudentID: 1, ClubID: 2, EventType: ev})
		require.NoError(t, err)
		assert.Equal(t, want, saved.Reward, ev)
	}
	assert.Equal(t, 3, f.svc.Stats().Updates)
}

func TestLogFeedbackRejects(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 1, ClubID: 1, EventType: "click"})
	assert.ErrorIs(t, err, ErrUnknownEventType)

	_, err = f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 1, ClubID: 1})
	assert.ErrorIs(t, err, ErrUnknownEventType)

	_, err = f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 9, ClubID: 1, EventType: EventLike})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 1, ClubID: 99, EventType: EventLike})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.feedback.saveErr = errors.New("db down")
	_, err = f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 1, ClubID: 1, EventType: EventLike})
	assert.Error(t, err)

	assert.Empty(t, f.feedback.events)
	assert.Equal(t, 0, f.svc.Stats().Updates)
}

func TestResetAndStats(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	before, err := f.svc.Recommend(ctx, 1, 5, "")
	require.NoError(t, err)

	_, err = f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 1, ClubID: 4, EventType: EventDislike})
	require.NoError(t, err)

	f.svc.ResetModel(ctx)
	stats := f.svc.Stats()
	assert.Equal(t, 0, stats.Updates)
	assert.Equal(t, 38, stats.Dim)
	assert.Equal(t, 1.0, stats.Alpha)
	assert.Equal(t, 1.0, stats.Lambda)
	assert.Len(t, stats.Tags, 10)

	after, err := f.svc.Recommend(ctx, 1, 5, "")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReplayFeedback(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for _, id := range []uint{1, 2, 4} {
		_, err := f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 1, ClubID: id, EventType: EventLike})
		require.NoError(t, err)
	}
	live, err := f.svc.Recommend(ctx, 1, 5, "")
	require.NoError(t, err)

	// an event for a club that has since been removed
	f.feedback.events = append(f.feedback.events, domain.FeedbackEvent{ID: 9, StudentID: 1, ClubID: 77, Reward: 1})

	f.svc.ResetModel(ctx)
	applied, err := f.svc.ReplayFeedback(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	replayed, err := f.svc.Recommend(ctx, 1, 5, "")
	require.NoError(t, err)
	require.Len(t, replayed, len(live))
	for i := range live {
		assert.Equal(t, live[i].ClubID, replayed[i].ClubID)
		assert.InDelta(t, live[i].Score, replayed[i].Score, 1e-9)
	}
}

func TestReplayDuringFeedbackCountsEventOnce(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	replayDone := make(chan error, 1)
	f.feedback.afterSave = func() {
		go func() {
			_, err := f.svc.ReplayFeedback(ctx)
			replayDone <- err
		}()
	}

	_, err := f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 1, ClubID: 1, EventType: EventLike})
	require.NoError(t, err)
	require.NoError(t, <-replayDone)

	assert.Equal(t, 1, f.feedback.count())
	assert.Equal(t, 1, f.svc.Stats().Updates)
}

func TestConcurrentFeedbackAndReplay(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(club uint) {
			defer wg.Done()
			_, err := f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 1, ClubID: club, EventType: EventJoin})
			assert.NoError(t, err)
		}(uint(i%5 + 1))
		go func() {
			defer wg.Done()
			_, err := f.svc.ReplayFeedback(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, f.feedback.count())
	assert.Equal(t, 20, f.svc.Stats().Updates)
}

func TestResetLastsUntilReplay(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for _, id := range []uint{1, 2} {
		_, err := f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 1, ClubID: id, EventType: EventLike})
		require.NoError(t, err)
	}

	f.svc.ResetModel(ctx)
	assert.Equal(t, 0, f.svc.Stats().Updates)
	assert.Equal(t, 2, f.feedback.count())

	applied, err := f.svc.ReplayFeedback(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, 2, f.svc.Stats().Updates)
}

func TestDebugRecommend(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.LogFeedback(ctx, domain.FeedbackEvent{StudentID: 1, ClubID: 1, EventType: EventJoin})
	require.NoError(t, err)

	debug, err := f.svc.DebugRecommend(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, debug, 3)
	for _, d := range debug {
		assert.Len(t, d.Features, 38)
		assert.InDelta(t, d.BanditMean+1.0*d.BanditUncertainty, d.BanditUCB, 1e-9)
		assert.GreaterOrEqual(t, d.BanditUncertainty, 0.0)
	}
}

func TestRewardForEvent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RewardDislike = -0.5

	r, err := cfg.RewardForEvent(EventDislike)
	require.NoError(t, err)
	assert.Equal(t, -0.5, r)

	_, err = cfg.RewardForEvent("impression")
	assert.ErrorIs(t, err, ErrUnknownEventType)
}

func TestConfigValidateAndClamp(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.clampLimit(0))
	assert.Equal(t, 5, cfg.clampLimit(-3))
	assert.Equal(t, 7, cfg.clampLimit(7))
	assert.Equal(t, 50, cfg.clampLimit(500))

	bad := cfg
	bad.MaxLimit = 1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = cfg
	bad.Alpha = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}
