package bandit

import (
	"math"
	"testing"

	"campusMatching/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newModel(t *testing.T, alpha, lambda float64) *LinUCB {
	t.Helper()
	m, err := NewLinUCB(nil, LinUCBConfig{Dim: 38, Alpha: alpha, Lambda: lambda})
	require.NoError(t, err)
	return m
}

func catalog() []domain.Club {
	return []domain.Club{
		{ID: 1, Name: "AI & Robotics Lab Club", Tags: "academic_stem_tech", MeetingTime: "Tue 18:00"},
		{ID: 2, Name: "Startup & Entrepreneurship Circle", Tags: "business_career,academic_stem_tech", MeetingTime: "Thu 19:00"},
		{ID: 3, Name: "Campus Jazz Band", Tags: "creative_arts", MeetingTime: "Wed 19:30"},
		{ID: 4, Name: "Recreational Soccer Club", Tags: "sports", MeetingTime: "Mon 17:00"},
		{ID: 5, Name: "Board Games & Tabletop Society", Tags: "gaming,creative_arts", MeetingTime: "Fri 19:00"},
	}
}

func biasOnly() []float64 {
	phi := make([]float64, 38)
	phi[37] = 1
	return phi
}

func TestNewLinUCBValidation(t *testing.T) {
	cases := map[string]LinUCBConfig{
		"wrong dim":       {Dim: 10, Alpha: 1, Lambda: 1},
		"negative alpha":  {Dim: 38, Alpha: -0.1, Lambda: 1},
		"zero lambda":     {Dim: 38, Alpha: 1, Lambda: 0},
		"negative lambda": {Dim: 38, Alpha: 1, Lambda: -1},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewLinUCB(nil, cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	m, err := NewLinUCB(nil, DefaultLinUCBConfig())
	require.NoError(t, err)
	assert.Equal(t, 38, m.Dim())
	assert.Equal(t, 1.0, m.Alpha())
	assert.Equal(t, 1.0, m.Lambda())
}

func TestResetRestoresPrior(t *testing.T) {
	m := newModel(t, 1, 2.5)
	require.NoError(t, m.Update(alice(), roboticsClub(), 1))
	require.Equal(t, 1, m.Updates())

	m.Reset()
	snap := m.Snapshot()
	assert.Equal(t, 0, snap.Updates)
	for i := range 38 {
		for j := range 38 {
			want := 0.0
			if i == j {
				want = 2.5
			}
			assert.Equal(t, want, snap.A[i][j])
		}
		assert.Equal(t, 0.0, snap.B[i])
	}
}

func TestScoreFreshModel(t *testing.T) {
	m := newModel(t, 1, 1)

	s, err := m.Score(make([]float64, 38))
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)

	// θ̂ = 0, so the score is α·||φ||/sqrt(λ)
	s, err = m.Score(biasOnly())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-12)

	m = newModel(t, 3, 4)
	s, err = m.Score(biasOnly())
	require.NoError(t, err)
	assert.InDelta(t, 1.5, s, 1e-12)

	m = newModel(t, 0, 1)
	s, err = m.Score(BuildFeatureVector(alice(), roboticsClub()))
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)
}

func TestUpdateAddsOuterProduct(t *testing.T) {
	m := newModel(t, 1, 1)
	phi := BuildFeatureVector(alice(), roboticsClub())

	require.NoError(t, m.UpdateVector(phi, 0.5))
	snap := m.Snapshot()

	for i := range 38 {
		for j := range 38 {
			want := phi[i] * phi[j]
			if i == j {
				want++
			}
			assert.InDelta(t, want, snap.A[i][j], 1e-12)
			assert.Equal(t, snap.A[i][j], snap.A[j][i])
		}
		assert.InDelta(t, 0.5*phi[i], snap.B[i], 1e-12)
	}
	assert.Equal(t, 1, snap.Updates)
}

func TestUpdateDoesNotAliasInput(t *testing.T) {
	m := newModel(t, 1, 1)
	phi := biasOnly()
	require.NoError(t, m.UpdateVector(phi, 1))

	phi[37] = 100
	snap := m.Snapshot()
	assert.Equal(t, 2.0, snap.A[37][37])
	assert.Equal(t, 1.0, snap.B[37])

	snap.A[0][0] = 42
	assert.Equal(t, 1.0, m.Snapshot().A[0][0])
}

func TestScoreMatchesExplicitInverse(t *testing.T) {
	m := newModel(t, 0.7, 1.3)
	clubs := catalog()
	for i, c := range clubs {
		require.NoError(t, m.Update(alice(), c, float64(i%2)))
	}

	snap := m.Snapshot()
	a := mat.NewDense(38, 38, nil)
	for i := range 38 {
		for j := range 38 {
			a.Set(i, j, snap.A[i][j])
		}
	}
	var inv mat.Dense
	require.NoError(t, inv.Inverse(a))
	b := mat.NewVecDense(38, snap.B)

	var theta mat.VecDense
	theta.MulVec(&inv, b)

	for _, c := range clubs {
		phi := mat.NewVecDense(38, BuildFeatureVector(alice(), c))
		var aInvPhi mat.VecDense
		aInvPhi.MulVec(&inv, phi)
		want := mat.Dot(phi, &theta) + 0.7*math.Sqrt(mat.Dot(phi, &aInvPhi))

		got, err := m.Score(phi.RawVector().Data)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9)

		mean, unc, err := m.Components(phi.RawVector().Data)
		require.NoError(t, err)
		assert.InDelta(t, got, mean+0.7*unc, 1e-12)
	}
}

func TestUncertaintyShrinksWithUpdates(t *testing.T) {
	m := newModel(t, 1, 1)
	phi := BuildFeatureVector(alice(), roboticsClub())

	_, before, err := m.Components(phi)
	require.NoError(t, err)
	for range 5 {
		require.NoError(t, m.UpdateVector(phi, 1))
	}
	_, after, err := m.Components(phi)
	require.NoError(t, err)

	assert.Less(t, after, before)
}

func TestDimensionMismatch(t *testing.T) {
	m := newModel(t, 1, 1)
	short := make([]float64, 5)

	_, err := m.Score(short)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, _, err = m.Components(short)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	err = m.UpdateVector(short, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Equal(t, 0, m.Updates())
}

func TestUpdateRejectsNonFiniteReward(t *testing.T) {
	m := newModel(t, 1, 1)

	assert.ErrorIs(t, m.UpdateVector(biasOnly(), math.NaN()), ErrInvalidReward)
	assert.ErrorIs(t, m.UpdateVector(biasOnly(), math.Inf(1)), ErrInvalidReward)
	assert.Equal(t, 0, m.Updates())
}

func TestSingularModel(t *testing.T) {
	m := &LinUCB{encoder: DefaultEncoder(), dim: 38, alpha: 1, lambda: 0}
	m.Reset()

	_, err := m.Score(biasOnly())
	assert.ErrorIs(t, err, ErrSingularModel)

	_, _, _, err = m.SelectBest(alice(), catalog())
	assert.ErrorIs(t, err, ErrSingularModel)

	_, err = m.Rank(alice(), catalog(), 3)
	assert.ErrorIs(t, err, ErrSingularModel)
}

func TestSelectBestEmpty(t *testing.T) {
	m := newModel(t, 1, 1)

	_, _, ok, err := m.SelectBest(alice(), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelectBestTieKeepsFirst(t *testing.T) {
	m := newModel(t, 1, 1)
	a := roboticsClub()
	b := roboticsClub()
	b.ID = 99

	best, _, ok, err := m.SelectBest(alice(), []domain.Club{a, b})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint(1), best.ID)
}

func TestSelectBestMatchesRankHead(t *testing.T) {
	m := newModel(t, 1, 1)
	for _, c := range catalog()[:3] {
		require.NoError(t, m.Update(alice(), c, 1))
	}

	best, score, ok, err := m.SelectBest(alice(), catalog())
	require.NoError(t, err)
	require.True(t, ok)

	ranked, err := m.Rank(alice(), catalog(), 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, ranked[0].Club.ID, best.ID)
	assert.Equal(t, ranked[0].Score, score)
}

func TestRank(t *testing.T) {
	m := newModel(t, 1, 1)
	clubs := catalog()

	empty, err := m.Rank(alice(), clubs, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	empty, err = m.Rank(alice(), nil, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	all, err := m.Rank(alice(), clubs, 100)
	require.NoError(t, err)
	require.Len(t, all, len(clubs))
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Score, all[i].Score)
	}

	top, err := m.Rank(alice(), clubs, 2)
	require.NoError(t, err)
	assert.Equal(t, all[:2], top)
}

func TestRankStableOnTies(t *testing.T) {
	m := newModel(t, 1, 1)
	c := roboticsClub()
	dupes := []domain.Club{c, c, c}
	dupes[1].ID, dupes[2].ID = 2, 3

	ranked, err := m.Rank(alice(), dupes, 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, []uint{1, 2, 3}, []uint{ranked[0].Club.ID, ranked[1].Club.ID, ranked[2].Club.ID})
}

func TestLearnsPreferredClub(t *testing.T) {
	m := newModel(t, 1, 1)
	robotics := catalog()[0]
	soccer := catalog()[3]

	for range 20 {
		require.NoError(t, m.Update(alice(), robotics, 1))
		require.NoError(t, m.Update(alice(), soccer, 0))
	}

	meanR, _, err := m.Components(BuildFeatureVector(alice(), robotics))
	require.NoError(t, err)
	meanS, _, err := m.Components(BuildFeatureVector(alice(), soccer))
	require.NoError(t, err)
	assert.Greater(t, meanR, meanS)

	greedy := newModel(t, 0, 1)
	for range 20 {
		require.NoError(t, greedy.Update(alice(), robotics, 1))
		require.NoError(t, greedy.Update(alice(), soccer, 0))
	}
	best, _, ok, err := greedy.SelectBest(alice(), []domain.Club{soccer, robotics})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, robotics.ID, best.ID)
}

func TestSelectUpdateLoop(t *testing.T) {
	m := newModel(t, 1, 1)
	student := alice()
	clubs := catalog()

	rewarded := 0
	for range 50 {
		best, score, ok, err := m.SelectBest(student, clubs)
		require.NoError(t, err)
		require.True(t, ok)
		require.False(t, math.IsNaN(score))

		reward := 0.0
		if ParseTags(student.Interests).IntersectionLen(ParseTags(best.Tags)) > 0 {
			reward = 1
			rewarded++
		}
		require.NoError(t, m.Update(student, best, reward))
	}

	assert.Equal(t, 50, m.Updates())
	assert.Greater(t, rewarded, 25)
}

func TestZeroVectorScoreIgnoresAlpha(t *testing.T) {
	for _, alpha := range []float64{0, 0.5, 1, 10} {
		m := newModel(t, alpha, 1)
		require.NoError(t, m.Update(alice(), roboticsClub(), 1))

		s, err := m.Score(make([]float64, 38))
		require.NoError(t, err)
		assert.Equal(t, 0.0, s, "alpha=%v", alpha)
	}
}

func TestSharedTagClubWinsAfterTraining(t *testing.T) {
	m := newModel(t, 1, 1)
	student := domain.Student{Year: "junior", Interests: "sports"}
	shared := domain.Club{ID: 1, Tags: "sports", MeetingTime: "Mon 17:00"}
	other := domain.Club{ID: 2, Tags: "faith", MeetingTime: "Sun 16:00"}
	clubs := []domain.Club{shared, other}

	for range 50 {
		best, _, ok, err := m.SelectBest(student, clubs)
		require.NoError(t, err)
		require.True(t, ok)

		reward := 0.0
		if ParseTags(student.Interests).IntersectionLen(ParseTags(best.Tags)) > 0 {
			reward = 1
		}
		require.NoError(t, m.Update(student, best, reward))
	}

	sShared, err := m.Score(BuildFeatureVector(student, shared))
	require.NoError(t, err)
	sOther, err := m.Score(BuildFeatureVector(student, other))
	require.NoError(t, err)
	assert.Greater(t, sShared, sOther)
}
