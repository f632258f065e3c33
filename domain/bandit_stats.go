package domain

// BanditModelStats describes the live in-memory model.
type BanditModelStats struct {
	Dim     int      `json:"dim"`
	Alpha   float64  `json:"alpha"`
	Lambda  float64  `json:"lambda"`
	Updates int      `json:"updates"`
	Tags    []string `json:"tags"`
}
