// Package binomial prices European options on a Cox-Ross-Rubinstein lattice.
package binomial

import (
	"github.com/charlerive/optionpricer/option"
)

// Price value of a European option on an n-step lattice. Converges to the
// closed-form price as steps grows.
func Price(p option.Params, t option.Type, steps int) (float64, error) {
	if t != option.Call && t != option.Put {
		return 0, option.ErrInvalidType
	}
	s, err := NewStep(p, steps)
	if err != nil {
		return 0, err
	}
	prices, err := BuildPriceLattice(p.Spot, s, steps)
	if err != nil {
		return 0, err
	}
	values, err := BackwardInduction(prices, p.Strike, t, s)
	if err != nil {
		return 0, err
	}
	return values.Root(), nil
}
