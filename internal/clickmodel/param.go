package clickmodel

// Param is a probability estimated as Numerator/Denominator. New params
// start from the prior 1/2.
type Param struct {
	Numerator   float64 `json:"numerator"`
	Denominator float64 `json:"denominator"`
}

// NewParam creates a param holding the prior
func NewParam() *Param {
	return &Param{Numerator: 1, Denominator: 2}
}

// Value returns the current estimate
func (p *Param) Value() float64 {
	if p == nil || p.Denominator == 0 {
		return 0.5
	}
	return p.Numerator / p.Denominator
}

// Add accounts one observation with weight x in [0, 1]
func (p *Param) Add(x float64) {
	p.Numerator += x
	p.Denominator++
}

// AddWeighted accounts an observation x seen with weight w
func (p *Param) AddWeighted(x, w float64) {
	p.Numerator += x * w
	p.Denominator += w
}

// AddBool accounts one binary observation
func (p *Param) AddBool(observed bool) {
	if observed {
		p.Add(1)
	} else {
		p.Add(0)
	}
}

// QueryDocParams holds one param per (query, result id)
type QueryDocParams map[string]map[string]*Param

// Get returns the param of (query, doc), creating it if needed
func (t QueryDocParams) Get(query, doc string) *Param {
	docs, ok := t[query]
	if !ok {
		docs = make(map[string]*Param)
		t[query] = docs
	}
	p, ok := docs[doc]
	if !ok {
		p = NewParam()
		docs[doc] = p
	}
	return p
}

// Value returns the estimate of (query, doc), the prior when unseen
func (t QueryDocParams) Value(query, doc string) float64 {
	return t[query][doc].Value()
}

// RankParams holds one param per rank
type RankParams map[int]*Param

// Get returns the param of rank, creating it if needed
func (t RankParams) Get(rank int) *Param {
	p, ok := t[rank]
	if !ok {
		p = NewParam()
		t[rank] = p
	}
	return p
}

// Value returns the estimate of rank, the prior when unseen
func (t RankParams) Value(rank int) float64 {
	return t[rank].Value()
}
