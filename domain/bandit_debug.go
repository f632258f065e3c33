package domain

type DebugRecommendation struct {
	ClubID            uint      `json:"club_id"`
	Name              string    `json:"name"`
	BanditMean        float64   `json:"bandit_mean"`        // θᵀφ
	BanditUncertainty float64   `json:"bandit_uncertainty"` // sqrt(φᵀA⁻¹φ)
	BanditUCB         float64   `json:"bandit_ucb"`         // mean + α·uncertainty
	Features          []float64 `json:"features"`
}
