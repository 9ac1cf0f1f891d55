package clickmodel

import "github.com/clickexp/clickexp/internal"

// emTrainer runs a fixed number of expectation-maximisation passes
type emTrainer struct {
	iterations  int
	onIteration func(int)
}

func (t *emTrainer) Iterations() int { return t.iterations }

func (t *emTrainer) OnIteration(fn func(iteration int)) { t.onIteration = fn }

func (t *emTrainer) run(pass func()) {
	for i := 0; i < t.iterations; i++ {
		pass()
		if t.onIteration != nil {
			t.onIteration(i)
		}
	}
}

// posteriors returns P(A=1 | C=c) and P(E=1 | C=c) for a result clicked iff
// it is both attractive and examined.
func posteriors(click bool, attr, exam float64) (float64, float64) {
	if click {
		return 1, 1
	}
	denom := 1 - attr*exam
	if denom <= 0 {
		return 0, 0
	}
	return attr * (1 - exam) / denom, exam * (1 - attr) / denom
}

// PBM is the position-based model: a result is clicked when it is examined,
// with probability Examination(rank), and attractive.
type PBM struct {
	emTrainer      `json:"-"`
	Attractiveness QueryDocParams `json:"attractiveness"`
	Examination    RankParams     `json:"examination"`
}

// NewPBM creates an untrained PBM trained with the given number of EM passes
func NewPBM(iterations int) *PBM {
	return &PBM{
		emTrainer:      emTrainer{iterations: iterations},
		Attractiveness: make(QueryDocParams),
		Examination:    make(RankParams),
	}
}

func (m *PBM) Name() string { return "PBM" }

func (m *PBM) Train(sessions []*internal.SearchSession) {
	m.run(func() {
		attrs := make(QueryDocParams)
		exams := make(RankParams)
		for _, s := range sessions {
			for rank, r := range s.WebResults {
				pa, pe := posteriors(r.Click, m.Attractiveness.Value(s.Query, r.ID), m.Examination.Value(rank))
				attrs.Get(s.Query, r.ID).Add(pa)
				exams.Get(rank).Add(pe)
			}
		}
		m.Attractiveness, m.Examination = attrs, exams
	})
}

func (m *PBM) FullClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	for rank, r := range s.WebResults {
		probs[rank] = m.Attractiveness.Value(s.Query, r.ID) * m.Examination.Value(rank)
	}
	return probs
}

func (m *PBM) ConditionalClickProbs(s *internal.SearchSession) []float64 {
	return conditionalIndependent(s, m.FullClickProbs(s))
}

func (m *PBM) PredictRelevance(query, resultID string) float64 {
	return m.Attractiveness.Value(query, resultID)
}

// UBM is the user browsing model: examination depends on the rank and on
// the rank of the previous click (-1 when there was none).
type UBM struct {
	emTrainer      `json:"-"`
	Attractiveness QueryDocParams     `json:"attractiveness"`
	Examination    map[int]RankParams `json:"examination"`
}

// NewUBM creates an untrained UBM trained with the given number of EM passes
func NewUBM(iterations int) *UBM {
	return &UBM{
		emTrainer:      emTrainer{iterations: iterations},
		Attractiveness: make(QueryDocParams),
		Examination:    make(map[int]RankParams),
	}
}

func (m *UBM) Name() string { return "UBM" }

func (m *UBM) exam(rank, prev int) float64 {
	return m.Examination[rank].Value(prev)
}

func (m *UBM) Train(sessions []*internal.SearchSession) {
	m.run(func() {
		attrs := make(QueryDocParams)
		exams := make(map[int]RankParams)
		for _, s := range sessions {
			prev := -1
			for rank, r := range s.WebResults {
				pa, pe := posteriors(r.Click, m.Attractiveness.Value(s.Query, r.ID), m.exam(rank, prev))
				attrs.Get(s.Query, r.ID).Add(pa)
				if exams[rank] == nil {
					exams[rank] = make(RankParams)
				}
				exams[rank].Get(prev).Add(pe)
				if r.Click {
					prev = rank
				}
			}
		}
		m.Attractiveness, m.Examination = attrs, exams
	})
}

// FullClickProbs marginalises over the unobserved rank of the previous click.
func (m *UBM) FullClickProbs(s *internal.SearchSession) []float64 {
	n := len(s.WebResults)
	probs := make([]float64, n)
	// prevDist[j+1] = P(most recent click above the current rank is at j)
	prevDist := make([]float64, n+1)
	prevDist[0] = 1
	for rank, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		var click float64
		for j := -1; j < rank; j++ {
			p := prevDist[j+1]
			if p == 0 {
				continue
			}
			c := attr * m.exam(rank, j)
			click += p * c
			prevDist[j+1] = p * (1 - c)
		}
		prevDist[rank+1] = click
		probs[rank] = click
	}
	return probs
}

func (m *UBM) ConditionalClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	prev := -1
	for rank, r := range s.WebResults {
		click := m.Attractiveness.Value(s.Query, r.ID) * m.exam(rank, prev)
		if r.Click {
			probs[rank] = click
			prev = rank
		} else {
			probs[rank] = 1 - click
		}
	}
	return probs
}

func (m *UBM) PredictRelevance(query, resultID string) float64 {
	return m.Attractiveness.Value(query, resultID)
}
