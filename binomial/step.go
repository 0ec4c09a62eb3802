package binomial

import (
	"fmt"
	"math"

	"github.com/charlerive/optionpricer/option"
)

// MaxSteps caps the lattice size. Both lattices hold (n+1)(n+2)/2 nodes, so
// n = 5000 is already about 200MB.
const MaxSteps = 5000

// Step per-step constants of a Cox-Ross-Rubinstein lattice
type Step struct {
	Dt       float64 `json:"dt"`       // 单步时长（年）
	Up       float64 `json:"up"`       // u = exp(σ√dt)
	Down     float64 `json:"down"`     // d = 1/u
	Growth   float64 `json:"growth"`   // exp((r-q)dt)
	Prob     float64 `json:"prob"`     // 风险中性上涨概率
	Discount float64 `json:"discount"` // exp(-r·dt)

	logUp float64
}

// NewStep derives dt, u, d and the risk-neutral probability for a lattice of
// the given number of steps.
func NewStep(p option.Params, steps int) (Step, error) {
	if err := p.Validate(); err != nil {
		return Step{}, err
	}
	if steps < 1 || steps > MaxSteps {
		return Step{}, fmt.Errorf("%w: steps must be in [1, %d], got %d", option.ErrInvalidParameter, MaxSteps, steps)
	}

	s := Step{Dt: p.Maturity / float64(steps)}
	s.logUp = p.Volatility * math.Sqrt(s.Dt)
	s.Up = math.Exp(s.logUp)
	s.Down = 1 / s.Up
	s.Growth = math.Exp((p.Rate - p.Dividend) * s.Dt)
	s.Discount = math.Exp(-p.Rate * s.Dt)

	for _, v := range []float64{s.Up, s.Down, s.Growth, s.Discount} {
		if math.IsInf(v, 0) || math.IsNaN(v) || v == 0 {
			return Step{}, fmt.Errorf("%w: step factors u=%v d=%v growth=%v discount=%v", option.ErrNumericOverflow, s.Up, s.Down, s.Growth, s.Discount)
		}
	}
	if s.Up == s.Down {
		return Step{}, fmt.Errorf("%w: σ√dt=%v is below float64 resolution, u and d coincide", option.ErrNumericOverflow, s.logUp)
	}

	s.Prob = (s.Growth - s.Down) / (s.Up - s.Down)
	if math.IsNaN(s.Prob) || s.Prob < 0 || s.Prob > 1 {
		return Step{}, fmt.Errorf("%w: p=%v requires d < exp((r-q)dt) < u, got d=%v growth=%v u=%v",
			option.ErrArbitrageViolation, s.Prob, s.Down, s.Growth, s.Up)
	}
	return s, nil
}
