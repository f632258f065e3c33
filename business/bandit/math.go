package bandit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// posterior is the ridge solution of one (A, b) snapshot. It holds the
// Cholesky factor of A so several feature vectors can be scored against a
// single factorization. A is never inverted explicitly.
type posterior struct {
	chol  mat.Cholesky
	theta mat.VecDense
	alpha float64
}

func newPosterior(a *mat.SymDense, b *mat.VecDense, alpha float64) (*posterior, error) {
	p := &posterior{alpha: alpha}
	if ok := p.chol.Factorize(a); !ok {
		return nil, ErrSingularModel
	}
	if err := solve(&p.chol, &p.theta, b); err != nil {
		return nil, fmt.Errorf("solve theta: %w", err)
	}
	return p, nil
}

// components returns mean = φᵀθ̂ and uncertainty = sqrt(φᵀA⁻¹φ).
func (p *posterior) components(phi *mat.VecDense) (float64, float64, error) {
	mean := mat.Dot(phi, &p.theta)

	var aInvPhi mat.VecDense
	if err := solve(&p.chol, &aInvPhi, phi); err != nil {
		return 0, 0, fmt.Errorf("solve variance: %w", err)
	}
	// rounding can push a zero variance slightly negative
	variance := math.Max(mat.Dot(phi, &aInvPhi), 0)
	uncertainty := math.Sqrt(variance)

	if !finite(mean) || !finite(uncertainty) {
		return 0, 0, ErrIllConditioned
	}
	return mean, uncertainty, nil
}

// ucb = mean + alpha * uncertainty
func (p *posterior) score(phi *mat.VecDense) (float64, error) {
	mean, uncertainty, err := p.components(phi)
	if err != nil {
		return 0, err
	}
	s := mean + p.alpha*uncertainty
	if !finite(s) {
		return 0, ErrIllConditioned
	}
	return s, nil
}

func solve(chol *mat.Cholesky, dst *mat.VecDense, rhs mat.Vector) error {
	err := chol.SolveVecTo(dst, rhs)
	if err == nil {
		return nil
	}
	var cond mat.Condition
	if errors.As(err, &cond) {
		return fmt.Errorf("%w: condition number %.3g", ErrIllConditioned, float64(cond))
	}
	return err
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ridgePrior returns λI.
func ridgePrior(dim int, lambda float64) *mat.SymDense {
	a := mat.NewSymDense(dim, nil)
	for i := range dim {
		a.SetSym(i, i, lambda)
	}
	return a
}

// toVec copies x so the model never aliases caller memory.
func toVec(x []float64) *mat.VecDense {
	data := make([]float64, len(x))
	copy(data, x)
	return mat.NewVecDense(len(data), data)
}
