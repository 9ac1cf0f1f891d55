package clickmodel

import "github.com/clickexp/clickexp/internal"

// GCTR predicts every click with one global click-through rate
type GCTR struct {
	CTR *Param `json:"ctr"`
}

// NewGCTR creates an untrained GCTR
func NewGCTR() *GCTR {
	return &GCTR{CTR: NewParam()}
}

func (m *GCTR) Name() string { return "GCTR" }

func (m *GCTR) Train(sessions []*internal.SearchSession) {
	for _, s := range sessions {
		for _, r := range s.WebResults {
			m.CTR.AddBool(r.Click)
		}
	}
}

func (m *GCTR) FullClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	for i := range probs {
		probs[i] = m.CTR.Value()
	}
	return probs
}

func (m *GCTR) ConditionalClickProbs(s *internal.SearchSession) []float64 {
	return conditionalIndependent(s, m.FullClickProbs(s))
}

func (m *GCTR) PredictRelevance(query, resultID string) float64 {
	return m.CTR.Value()
}

// RCTR predicts clicks with a click-through rate per rank
type RCTR struct {
	CTR RankParams `json:"ctr"`
}

// NewRCTR creates an untrained RCTR
func NewRCTR() *RCTR {
	return &RCTR{CTR: make(RankParams)}
}

func (m *RCTR) Name() string { return "RCTR" }

func (m *RCTR) Train(sessions []*internal.SearchSession) {
	for _, s := range sessions {
		for rank, r := range s.WebResults {
			m.CTR.Get(rank).AddBool(r.Click)
		}
	}
}

func (m *RCTR) FullClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	for rank := range probs {
		probs[rank] = m.CTR.Value(rank)
	}
	return probs
}

func (m *RCTR) ConditionalClickProbs(s *internal.SearchSession) []float64 {
	return conditionalIndependent(s, m.FullClickProbs(s))
}

// PredictRelevance returns the mean rank CTR; the model has no per-result state.
func (m *RCTR) PredictRelevance(query, resultID string) float64 {
	if len(m.CTR) == 0 {
		return NewParam().Value()
	}
	var sum float64
	for _, p := range m.CTR {
		sum += p.Value()
	}
	return sum / float64(len(m.CTR))
}

// DCTR predicts clicks with a click-through rate per (query, result)
type DCTR struct {
	CTR QueryDocParams `json:"ctr"`
}

// NewDCTR creates an untrained DCTR
func NewDCTR() *DCTR {
	return &DCTR{CTR: make(QueryDocParams)}
}

func (m *DCTR) Name() string { return "DCTR" }

func (m *DCTR) Train(sessions []*internal.SearchSession) {
	for _, s := range sessions {
		for _, r := range s.WebResults {
			m.CTR.Get(s.Query, r.ID).AddBool(r.Click)
		}
	}
}

func (m *DCTR) FullClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	for i, r := range s.WebResults {
		probs[i] = m.CTR.Value(s.Query, r.ID)
	}
	return probs
}

func (m *DCTR) ConditionalClickProbs(s *internal.SearchSession) []float64 {
	return conditionalIndependent(s, m.FullClickProbs(s))
}

func (m *DCTR) PredictRelevance(query, resultID string) float64 {
	return m.CTR.Value(query, resultID)
}
