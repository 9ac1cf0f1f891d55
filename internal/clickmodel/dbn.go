package clickmodel

import "github.com/clickexp/clickexp/internal"

// tailExam handles the ranks from..n-1 that follow the last click. Given
// P(E_from=1) = p0 and continuation cont after every skipped result, it
// returns P(E_r=1 | no clicks at from..n-1) for each rank r >= from and the
// probability of those skips given E_from=1.
func tailExam(attrs []float64, from int, p0, cont float64) ([]float64, float64) {
	n := len(attrs)
	exam := make([]float64, n)
	if from >= n {
		return exam, 1
	}

	// skip[r] = P(no clicks at r..n-1 | E_r=1)
	skip := make([]float64, n+1)
	skip[n] = 1
	for r := n - 1; r >= from; r-- {
		skip[r] = (1 - attrs[r]) * (1 - cont + cont*skip[r+1])
	}

	total := p0*skip[from] + 1 - p0
	if total <= 0 {
		return exam, skip[from]
	}
	joint := p0
	for r := from; r < n; r++ {
		exam[r] = joint * skip[r] / total
		joint *= (1 - attrs[r]) * cont
	}
	return exam, skip[from]
}

// addTail accounts attractiveness and skip continuation of the ranks after
// the last click
func addTail(s *internal.SearchSession, from int, exam, attrs []float64, attr QueryDocParams, cont *Param) {
	n := len(s.WebResults)
	for r := from; r < n; r++ {
		attr.Get(s.Query, s.WebResults[r].ID).Add(attrs[r] * (1 - exam[r]))
		if r+1 < n && exam[r] > 0 {
			cont.AddWeighted(exam[r+1]/exam[r], exam[r])
		}
	}
}

func attrValues(params QueryDocParams, s *internal.SearchSession) []float64 {
	attrs := make([]float64, len(s.WebResults))
	for i, r := range s.WebResults {
		attrs[i] = params.Value(s.Query, r.ID)
	}
	return attrs
}

// DBN is the dynamic Bayesian network model: an examined result is clicked
// with Attractiveness(q, d), a click satisfies the user with
// Satisfaction(q, d), and an unsatisfied user examines the next result with
// probability Continuation.
type DBN struct {
	emTrainer      `json:"-"`
	Attractiveness QueryDocParams `json:"attractiveness"`
	Satisfaction   QueryDocParams `json:"satisfaction"`
	Continuation   *Param         `json:"continuation"`
}

// NewDBN creates an untrained DBN trained with the given number of EM passes
func NewDBN(iterations int) *DBN {
	return &DBN{
		emTrainer:      emTrainer{iterations: iterations},
		Attractiveness: make(QueryDocParams),
		Satisfaction:   make(QueryDocParams),
		Continuation:   NewParam(),
	}
}

func (m *DBN) Name() string { return "DBN" }

func (m *DBN) Train(sessions []*internal.SearchSession) {
	m.run(func() {
		attr := make(QueryDocParams)
		sat := make(QueryDocParams)
		cont := NewParam()
		gamma := m.Continuation.Value()

		for _, s := range sessions {
			attrs := attrValues(m.Attractiveness, s)
			last := s.LastClick()

			// every rank up to the last click was examined
			for rank := 0; rank < last; rank++ {
				r := s.WebResults[rank]
				attr.Get(s.Query, r.ID).AddBool(r.Click)
				if r.Click {
					sat.Get(s.Query, r.ID).Add(0)
				}
				cont.Add(1)
			}

			p0 := 1.0
			if last >= 0 {
				p0 = gamma * (1 - m.Satisfaction.Value(s.Query, s.WebResults[last].ID))
			}
			exam, skip := tailExam(attrs, last+1, p0, gamma)

			if last >= 0 {
				r := s.WebResults[last]
				sigma := m.Satisfaction.Value(s.Query, r.ID)
				attr.Get(s.Query, r.ID).Add(1)

				// P(S=1 | no clicks below the last one)
				pSat := sigma / (sigma + (1-sigma)*(1-gamma+gamma*skip))
				sat.Get(s.Query, r.ID).Add(pSat)
				if last+1 < len(s.WebResults) {
					cont.AddWeighted(gamma*skip/(1-gamma+gamma*skip), 1-pSat)
				}
			}

			addTail(s, last+1, exam, attrs, attr, cont)
		}

		m.Attractiveness, m.Satisfaction, m.Continuation = attr, sat, cont
	})
}

func (m *DBN) FullClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	gamma := m.Continuation.Value()
	exam := 1.0
	for i, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		probs[i] = exam * attr
		exam *= gamma * (1 - attr*m.Satisfaction.Value(s.Query, r.ID))
	}
	return probs
}

func (m *DBN) ConditionalClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	gamma := m.Continuation.Value()
	exam := 1.0
	for i, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		click := exam * attr
		if r.Click {
			probs[i] = click
			exam = gamma * (1 - m.Satisfaction.Value(s.Query, r.ID))
		} else {
			probs[i] = 1 - click
			exam = gamma * posteriorExam(exam, attr)
		}
	}
	return probs
}

func (m *DBN) PredictRelevance(query, resultID string) float64 {
	return m.Attractiveness.Value(query, resultID) * m.Satisfaction.Value(query, resultID)
}

// CCM is the click chain model: after a skip the user continues with Tau1;
// after a click with Tau2 when the result is not relevant and Tau3 when it
// is, relevance being Attractiveness(q, d).
type CCM struct {
	emTrainer      `json:"-"`
	Attractiveness QueryDocParams `json:"attractiveness"`
	Tau1           *Param         `json:"tau1"`
	Tau2           *Param         `json:"tau2"`
	Tau3           *Param         `json:"tau3"`
}

// NewCCM creates an untrained CCM trained with the given number of EM passes
func NewCCM(iterations int) *CCM {
	return &CCM{
		emTrainer:      emTrainer{iterations: iterations},
		Attractiveness: make(QueryDocParams),
		Tau1:           NewParam(),
		Tau2:           NewParam(),
		Tau3:           NewParam(),
	}
}

func (m *CCM) Name() string { return "CCM" }

// afterClick returns P(E_{r+1}=1 | C_r=1)
func (m *CCM) afterClick(attr float64) float64 {
	return m.Tau2.Value()*(1-attr) + m.Tau3.Value()*attr
}

// Train estimates attractiveness from clicks alone; the relevance that
// selects Tau2 or Tau3 is treated as latent.
func (m *CCM) Train(sessions []*internal.SearchSession) {
	m.run(func() {
		attr := make(QueryDocParams)
		tau1, tau2, tau3 := NewParam(), NewParam(), NewParam()
		t1, t2, t3 := m.Tau1.Value(), m.Tau2.Value(), m.Tau3.Value()

		for _, s := range sessions {
			attrs := attrValues(m.Attractiveness, s)
			last := s.LastClick()

			for rank := 0; rank < last; rank++ {
				r := s.WebResults[rank]
				attr.Get(s.Query, r.ID).AddBool(r.Click)
				if !r.Click {
					tau1.Add(1)
					continue
				}
				a := attrs[rank]
				if denom := a*t3 + (1-a)*t2; denom > 0 {
					pRel := a * t3 / denom
					tau3.AddWeighted(1, pRel)
					tau2.AddWeighted(1, 1-pRel)
				}
			}

			p0 := 1.0
			if last >= 0 {
				p0 = m.afterClick(attrs[last])
			}
			exam, skip := tailExam(attrs, last+1, p0, t1)

			if last >= 0 {
				a := attrs[last]
				attr.Get(s.Query, s.WebResults[last].ID).Add(1)
				if last+1 < len(s.WebResults) {
					rel := a * (t3*skip + 1 - t3)
					irrel := (1 - a) * (t2*skip + 1 - t2)
					if total := rel + irrel; total > 0 {
						if rel > 0 {
							tau3.AddWeighted(t3*skip/(t3*skip+1-t3), rel/total)
						}
						if irrel > 0 {
							tau2.AddWeighted(t2*skip/(t2*skip+1-t2), irrel/total)
						}
					}
				}
			}

			addTail(s, last+1, exam, attrs, attr, tau1)
		}

		m.Attractiveness, m.Tau1, m.Tau2, m.Tau3 = attr, tau1, tau2, tau3
	})
}

func (m *CCM) FullClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	tau1 := m.Tau1.Value()
	exam := 1.0
	for i, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		probs[i] = exam * attr
		exam *= (1-attr)*tau1 + attr*m.afterClick(attr)
	}
	return probs
}

func (m *CCM) ConditionalClickProbs(s *internal.SearchSession) []float64 {
	probs := make([]float64, len(s.WebResults))
	tau1 := m.Tau1.Value()
	exam := 1.0
	for i, r := range s.WebResults {
		attr := m.Attractiveness.Value(s.Query, r.ID)
		click := exam * attr
		if r.Click {
			probs[i] = click
			exam = m.afterClick(attr)
		} else {
			probs[i] = 1 - click
			exam = tau1 * posteriorExam(exam, attr)
		}
	}
	return probs
}

func (m *CCM) PredictRelevance(query, resultID string) float64 {
	return m.Attractiveness.Value(query, resultID)
}
