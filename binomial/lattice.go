package binomial

import (
	"fmt"
	"math"
	"runtime"

	"github.com/charlerive/optionpricer/option"
	"github.com/sourcegraph/conc"
)

// levels at least this wide are split across goroutines
const parallelThreshold = 1024

// Nodes number of nodes in a lattice of n steps
func Nodes(steps int) int {
	return (steps + 1) * (steps + 2) / 2
}

// node (j,i) sits after the i rows above it
func index(j, i int) int {
	return i*(i+1)/2 + j
}

// PriceLattice stock price at every node (j,i), i ∈ [0,n], j ∈ [0,i].
// j = 0 is the highest price of step i.
type PriceLattice struct {
	steps int
	nodes []float64
}

// BuildPriceLattice node (j,i) holds spot·u^(i-j)·d^j. Since d = 1/u the price
// is evaluated as spot·exp(σ√dt·(i-2j)) so u^k never overflows on its own and
// the root is spot exactly; a price that is still not finite is an error.
func BuildPriceLattice(spot float64, s Step, steps int) (*PriceLattice, error) {
	if spot <= 0 || steps < 1 || steps > MaxSteps {
		return nil, fmt.Errorf("%w: spot=%v steps=%d", option.ErrInvalidParameter, spot, steps)
	}
	l := &PriceLattice{steps: steps, nodes: make([]float64, Nodes(steps))}
	for i := 0; i <= steps; i++ {
		for j := 0; j <= i; j++ {
			v := spot * math.Exp(s.logUp*float64(i-2*j))
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return nil, fmt.Errorf("%w: stock price at node (%d,%d)", option.ErrNumericOverflow, j, i)
			}
			l.nodes[index(j, i)] = v
		}
	}
	return l, nil
}

func (l *PriceLattice) Steps() int { return l.steps }

func (l *PriceLattice) At(j, i int) float64 {
	return l.nodes[index(j, i)]
}

// ValueLattice discounted option value at every node, same shape as PriceLattice.
type ValueLattice struct {
	steps int
	nodes []float64
}

func (v *ValueLattice) Steps() int { return v.steps }

func (v *ValueLattice) At(j, i int) float64 {
	return v.nodes[index(j, i)]
}

// Root value at (0,0), the option price.
func (v *ValueLattice) Root() float64 {
	return v.nodes[0]
}

// BackwardInduction fills the terminal layer with payoffs and rolls back
// V[j,i] = disc·(p·V[j,i+1] + (1-p)·V[j+1,i+1]). European exercise only.
func BackwardInduction(prices *PriceLattice, strike float64, t option.Type, s Step) (*ValueLattice, error) {
	if t != option.Call && t != option.Put {
		return nil, fmt.Errorf("%w: %d", option.ErrInvalidType, int(t))
	}
	if prices == nil || len(prices.nodes) != Nodes(prices.steps) {
		return nil, fmt.Errorf("%w: empty price lattice", option.ErrInvalidParameter)
	}
	if !(s.Up > s.Down) || !(s.Prob >= 0 && s.Prob <= 1) || !(s.Discount > 0) || math.IsInf(s.Discount, 0) {
		return nil, fmt.Errorf("%w: step u=%v d=%v p=%v discount=%v", option.ErrInvalidParameter, s.Up, s.Down, s.Prob, s.Discount)
	}
	n := prices.steps
	v := &ValueLattice{steps: n, nodes: make([]float64, len(prices.nodes))}

	for j := 0; j <= n; j++ {
		v.nodes[index(j, n)] = option.Payoff(t, prices.At(j, n), strike)
	}

	up, down := s.Discount*s.Prob, s.Discount*(1-s.Prob)
	for i := n - 1; i >= 0; i-- {
		// each step depends on the whole of step i+1
		if i+1 >= parallelThreshold {
			v.rollParallel(i, up, down)
		} else {
			v.roll(i, 0, i+1, up, down)
		}
	}

	if root := v.Root(); math.IsInf(root, 0) || math.IsNaN(root) {
		return nil, fmt.Errorf("%w: option value %v", option.ErrNumericOverflow, root)
	}
	return v, nil
}

// roll computes nodes [from, to) of step i
func (v *ValueLattice) roll(i, from, to int, up, down float64) {
	cur := v.nodes[index(0, i):]
	next := v.nodes[index(0, i+1):]
	for j := from; j < to; j++ {
		cur[j] = up*next[j] + down*next[j+1]
	}
}

func (v *ValueLattice) rollParallel(i int, up, down float64) {
	width := i + 1
	workers := runtime.GOMAXPROCS(0)
	chunk := (width + workers - 1) / workers

	var wg conc.WaitGroup
	for from := 0; from < width; from += chunk {
		from, to := from, from+chunk
		if to > width {
			to = width
		}
		wg.Go(func() {
			v.roll(i, from, to, up, down)
		})
	}
	wg.Wait()
}
