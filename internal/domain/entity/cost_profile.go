package entity

// CostProfile is a named set of weighted routing-cost parameters handed
// to the oracle to bias path selection. Built fresh per request and
// never mutated after construction; the weight map is never empty.
type CostProfile struct {
	Label   string
	Weights map[string]float64
}

// CloneWeights returns a copy of the weight map so callers can pass it
// across an API boundary without aliasing the profile.
func (p CostProfile) CloneWeights() map[string]float64 {
	out := make(map[string]float64, len(p.Weights))
	for k, v := range p.Weights {
		out[k] = v
	}

	return out
}
