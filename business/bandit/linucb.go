package bandit

import (
	"fmt"
	"sort"

	"campusMatching/domain"

	"gonum.org/v1/gonum/mat"
)

const (
	defaultAlpha  = 1.0
	defaultLambda = 1.0
)

type LinUCBConfig struct {
	// Dim must equal the encoder output width.
	Dim int
	// Alpha weights the exploration bonus (>= 0).
	Alpha float64
	// Lambda is the ridge prior strength (> 0), applied on construction and Reset.
	Lambda float64
}

// DefaultLinUCBConfig matches the default encoder.
func DefaultLinUCBConfig() LinUCBConfig {
	return LinUCBConfig{
		Dim:    defaultEncoder.Dim(),
		Alpha:  defaultAlpha,
		Lambda: defaultLambda,
	}
}

// LinUCB is a single shared linear UCB model over (student, club) features.
//
//	A <- A + φφᵀ,  b <- b + rφ
//	score(φ) = φᵀθ̂ + α·sqrt(φᵀA⁻¹φ),  θ̂ = A⁻¹b
//
// LinUCB does no locking; callers mixing reads and updates from several
// goroutines must serialize access.
type LinUCB struct {
	encoder *Encoder
	dim     int
	alpha   float64
	lambda  float64

	a       *mat.SymDense
	b       *mat.VecDense
	updates int
}

// ScoredClub is a candidate with its UCB score.
type ScoredClub struct {
	Club  domain.Club
	Score float64
}

// ModelSnapshot is a dense copy of the model parameters.
type ModelSnapshot struct {
	A       [][]float64
	B       []float64
	Updates int
}

func NewLinUCB(encoder *Encoder, cfg LinUCBConfig) (*LinUCB, error) {
	if encoder == nil {
		encoder = defaultEncoder
	}
	if cfg.Dim != encoder.Dim() {
		return nil, fmt.Errorf("%w: dim %d, encoder produces %d", ErrInvalidConfig, cfg.Dim, encoder.Dim())
	}
	if cfg.Alpha < 0 {
		return nil, fmt.Errorf("%w: alpha must be >= 0, got %g", ErrInvalidConfig, cfg.Alpha)
	}
	if cfg.Lambda <= 0 {
		return nil, fmt.Errorf("%w: lambda must be > 0, got %g", ErrInvalidConfig, cfg.Lambda)
	}

	l := &LinUCB{
		encoder: encoder,
		dim:     cfg.Dim,
		alpha:   cfg.Alpha,
		lambda:  cfg.Lambda,
	}
	l.Reset()
	return l, nil
}

// Reset discards all learned history: A = λI, b = 0.
func (l *LinUCB) Reset() {
	l.a = ridgePrior(l.dim, l.lambda)
	l.b = mat.NewVecDense(l.dim, nil)
	l.updates = 0
}

func (l *LinUCB) Dim() int {
	return l.dim
}

func (l *LinUCB) Alpha() float64 {
	return l.alpha
}

func (l *LinUCB) Lambda() float64 {
	return l.lambda
}

// Updates counts UpdateVector calls since the last Reset.
func (l *LinUCB) Updates() int {
	return l.updates
}

func (l *LinUCB) Encoder() *Encoder {
	return l.encoder
}

// Score returns the upper confidence bound for one feature vector.
func (l *LinUCB) Score(phi []float64) (float64, error) {
	if err := l.checkDim(phi); err != nil {
		return 0, err
	}
	p, err := newPosterior(l.a, l.b, l.alpha)
	if err != nil {
		return 0, err
	}
	return p.score(toVec(phi))
}

// Components splits the score of phi into its mean and uncertainty terms.
func (l *LinUCB) Components(phi []float64) (mean, uncertainty float64, err error) {
	if err := l.checkDim(phi); err != nil {
		return 0, 0, err
	}
	p, err := newPosterior(l.a, l.b, l.alpha)
	if err != nil {
		return 0, 0, err
	}
	return p.components(toVec(phi))
}

// SelectBest returns the highest scoring club. Ties keep the first candidate.
// ok is false when clubs is empty.
func (l *LinUCB) SelectBest(student domain.Student, clubs []domain.Club) (best domain.Club, bestScore float64, ok bool, err error) {
	if len(clubs) == 0 {
		return domain.Club{}, 0, false, nil
	}

	p, err := newPosterior(l.a, l.b, l.alpha)
	if err != nil {
		return domain.Club{}, 0, false, err
	}

	for _, club := range clubs {
		s, err := p.score(toVec(l.encoder.Encode(student, club)))
		if err != nil {
			return domain.Club{}, 0, false, fmt.Errorf("score club %d: %w", club.ID, err)
		}
		if !ok || s > bestScore {
			best, bestScore, ok = club, s, true
		}
	}

	return best, bestScore, true, nil
}

// Rank scores every candidate and returns at most topK, best first.
// Equal scores keep their input order; duplicates are not removed.
func (l *LinUCB) Rank(student domain.Student, clubs []domain.Club, topK int) ([]ScoredClub, error) {
	if len(clubs) == 0 || topK <= 0 {
		return []ScoredClub{}, nil
	}

	p, err := newPosterior(l.a, l.b, l.alpha)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredClub, 0, len(clubs))
	for _, club := range clubs {
		s, err := p.score(toVec(l.encoder.Encode(student, club)))
		if err != nil {
			return nil, fmt.Errorf("score club %d: %w", club.ID, err)
		}
		scored = append(scored, ScoredClub{Club: club, Score: s})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

// Update folds one observed reward for (student, club) into the model.
func (l *LinUCB) Update(student domain.Student, club domain.Club, reward float64) error {
	return l.UpdateVector(l.encoder.Encode(student, club), reward)
}

// UpdateVector applies A <- A + φφᵀ and b <- b + reward·φ.
func (l *LinUCB) UpdateVector(phi []float64, reward float64) error {
	if err := l.checkDim(phi); err != nil {
		return err
	}
	if !finite(reward) {
		return fmt.Errorf("%w: %v", ErrInvalidReward, reward)
	}

	x := toVec(phi)
	l.a.SymRankOne(l.a, 1, x)
	l.b.AddScaledVec(l.b, reward, x)
	l.updates++
	return nil
}

// Snapshot copies A and b out of the model.
func (l *LinUCB) Snapshot() ModelSnapshot {
	snap := ModelSnapshot{
		A:       make([][]float64, l.dim),
		B:       make([]float64, l.dim),
		Updates: l.updates,
	}
	for i := range l.dim {
		snap.A[i] = make([]float64, l.dim)
		for j := range l.dim {
			snap.A[i][j] = l.a.At(i, j)
		}
		snap.B[i] = l.b.AtVec(i)
	}
	return snap
}

func (l *LinUCB) checkDim(phi []float64) error {
	if len(phi) != l.dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(phi), l.dim)
	}
	return nil
}
