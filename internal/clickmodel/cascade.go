package clickmodel

import "github.com/clickexp/clickexp/internal"

// CM is the cascade model: results are examined top-down until the first
// click, and a result is clicked with its attractiveness.
type CM struct {
	Attractiveness QueryDocParams `json:"attractiveness"`
}

// NewCM creates an untrained CM
func NewCM() *CM {
	return &CM{Attractiveness: make(QueryDocParams)}
}

func (m *CM) Name() string { return "CM" }

func (m *CM) Train(sessions []*internal.SearchSession) {
	for _, s := range sessions {
		last := s.FirstClick()
		if last < 0 {
			last = len(s.WebResults) - 1
		}
		for rank := 0; rank <= last; rank++ {
			r := s.WebResults[rank]
			m.Attractiveness.Get(s.Query, r.ID).AddBool(r.Click)
		}
	}
}

func (m *CM) FullClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	exam := 1.0
	for i, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		probs[i] = exam * attr
		exam *= 1 - attr
	}
	return probs
}

// ConditionalClickProbs gives ranks below the first click probability 1,
// the cascade assumption says nothing about them.
func (m *CM) ConditionalClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	first := s.FirstClick()
	for i, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		switch {
		case first < 0 || i < first:
			probs[i] = 1 - attr
		case i == first:
			probs[i] = attr
		default:
			probs[i] = 1
		}
	}
	return probs
}

func (m *CM) PredictRelevance(query, resultID string) float64 {
	return m.Attractiveness.Value(query, resultID)
}

// DCM is the dependent click model: after a click at rank r the user
// continues with probability Continuation(r).
type DCM struct {
	Attractiveness QueryDocParams `json:"attractiveness"`
	Continuation   RankParams     `json:"continuation"`
}

// NewDCM creates an untrained DCM
func NewDCM() *DCM {
	return &DCM{
		Attractiveness: make(QueryDocParams),
		Continuation:   make(RankParams),
	}
}

func (m *DCM) Name() string { return "DCM" }

func (m *DCM) Train(sessions []*internal.SearchSession) {
	for _, s := range sessions {
		last := s.LastClick()
		examined := last
		if examined < 0 {
			examined = len(s.WebResults) - 1
		}
		for rank := 0; rank <= examined; rank++ {
			r := s.WebResults[rank]
			m.Attractiveness.Get(s.Query, r.ID).AddBool(r.Click)
			if r.Click {
				m.Continuation.Get(rank).AddBool(rank != last)
			}
		}
	}
}

func (m *DCM) FullClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	exam := 1.0
	for i, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		probs[i] = exam * attr
		exam = exam*(1-attr) + exam*attr*m.Continuation.Value(i)
	}
	return probs
}

func (m *DCM) ConditionalClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	exam := 1.0
	for i, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		click := exam * attr
		if r.Click {
			probs[i] = click
			exam = m.Continuation.Value(i)
		} else {
			probs[i] = 1 - click
			exam = posteriorExam(exam, attr)
		}
	}
	return probs
}

func (m *DCM) PredictRelevance(query, resultID string) float64 {
	return m.Attractiveness.Value(query, resultID)
}

// SDBN is the simplified dynamic Bayesian network model: a clicked result
// satisfies the user with Satisfaction(q, d), otherwise examination
// continues with certainty.
type SDBN struct {
	Attractiveness QueryDocParams `json:"attractiveness"`
	Satisfaction   QueryDocParams `json:"satisfaction"`
}

// NewSDBN creates an untrained SDBN
func NewSDBN() *SDBN {
	return &SDBN{
		Attractiveness: make(QueryDocParams),
		Satisfaction:   make(QueryDocParams),
	}
}

func (m *SDBN) Name() string { return "SDBN" }

func (m *SDBN) Train(sessions []*internal.SearchSession) {
	for _, s := range sessions {
		last := s.LastClick()
		examined := last
		if examined < 0 {
			examined = len(s.WebResults) - 1
		}
		for rank := 0; rank <= examined; rank++ {
			r := s.WebResults[rank]
			m.Attractiveness.Get(s.Query, r.ID).AddBool(r.Click)
			if r.Click {
				m.Satisfaction.Get(s.Query, r.ID).AddBool(rank == last)
			}
		}
	}
}

func (m *SDBN) FullClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	exam := 1.0
	for i, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		sat := m.Satisfaction.Value(s.Query, r.ID)
		probs[i] = exam * attr
		exam *= 1 - attr*sat
	}
	return probs
}

func (m *SDBN) ConditionalClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	exam := 1.0
	for i, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		click := exam * attr
		if r.Click {
			probs[i] = click
			exam = 1 - m.Satisfaction.Value(s.Query, r.ID)
		} else {
			probs[i] = 1 - click
			exam = posteriorExam(exam, attr)
		}
	}
	return probs
}

func (m *SDBN) PredictRelevance(query, resultID string) float64 {
	return m.Attractiveness.Value(query, resultID) * m.Satisfaction.Value(query, resultID)
}

// posteriorExam returns P(E_{r+1}=1 | no click at r) for cascade models in
// which an unclicked result never stops the user.
func posteriorExam(exam, attr float64) float64 {
	denom := 1 - exam*attr
	if denom <= 0 {
		return 0
	}
	return exam * (1 - attr) / denom
}
