package volatility

import (
	"errors"
	"fmt"
	"math"

	"github.com/charlerive/optionpricer/option"
	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear annualizes daily closes. Data sampled at any other
// frequency must pass its own periods-per-year to EstimateWithPeriods.
const TradingDaysPerYear = 252

var ErrInsufficientHistory = errors.New("insufficient price history")

// Estimate spot and annualized volatility from a series of daily closes,
// oldest first. spot is the last close, volatility is the sample standard
// deviation of log returns scaled by √252.
func Estimate(prices []float64) (spot, vol float64, err error) {
	return EstimateWithPeriods(prices, TradingDaysPerYear)
}

func EstimateWithPeriods(prices []float64, periodsPerYear float64) (spot, vol float64, err error) {
	if !(periodsPerYear > 0) || math.IsInf(periodsPerYear, 0) {
		return 0, 0, fmt.Errorf("%w: periods per year %v", option.ErrInvalidParameter, periodsPerYear)
	}
	returns, err := LogReturns(prices)
	if err != nil {
		return 0, 0, err
	}
	if len(returns) < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 3 prices, got %d", ErrInsufficientHistory, len(prices))
	}
	vol = stat.StdDev(returns, nil) * math.Sqrt(periodsPerYear)
	return prices[len(prices)-1], vol, nil
}

// LogReturns ln(p[i]/p[i-1]) for every consecutive pair
func LogReturns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices, got %d", ErrInsufficientHistory, len(prices))
	}
	for i, p := range prices {
		if !(p > 0) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: price %v at index %d", option.ErrInvalidParameter, p, i)
		}
	}
	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = math.Log(prices[i] / prices[i-1])
	}
	return returns, nil
}
