package volatility

import (
	"math"
	"strings"
	"testing"

	"github.com/charlerive/optionpricer/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var closes = []float64{90.70, 92.90, 92.98, 91.80, 92.66, 92.68, 92.30, 92.77, 92.54, 92.95}

func sampleStdDev(x []float64) float64 {
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	ss := 0.0
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(x)-1))
}

func TestEstimate(t *testing.T) {
	spot, vol, err := Estimate(closes)
	require.NoError(t, err)
	assert.Equal(t, 92.95, spot)

	var returns []float64
	for i := 1; i < len(closes); i++ {
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}
	assert.InDelta(t, sampleStdDev(returns)*math.Sqrt(252), vol, 1e-12)
}

func TestEstimateWithPeriods(t *testing.T) {
	_, daily, err := Estimate(closes)
	require.NoError(t, err)
	_, weekly, err := EstimateWithPeriods(closes, 52)
	require.NoError(t, err)
	assert.InDelta(t, daily*math.Sqrt(52.0/252.0), weekly, 1e-12)

	_, _, err = EstimateWithPeriods(closes, 0)
	assert.ErrorIs(t, err, option.ErrInvalidParameter)
}

func TestEstimate_ConstantGrowthHasNoVolatility(t *testing.T) {
	prices := []float64{100, 101, 102.01, 103.0301}
	_, vol, err := Estimate(prices)
	require.NoError(t, err)
	assert.InDelta(t, 0, vol, 1e-12)
}

func TestEstimate_Errors(t *testing.T) {
	_, _, err := Estimate(nil)
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	_, _, err = Estimate([]float64{100, 101})
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	_, _, err = Estimate([]float64{100, 0, 101})
	assert.ErrorIs(t, err, option.ErrInvalidParameter)

	_, _, err = Estimate([]float64{100, math.NaN(), 101})
	assert.ErrorIs(t, err, option.ErrInvalidParameter)
}

func TestLoadHistory(t *testing.T) {
	in := `date,open,close,volume
2024-01-02,90.1,90.70,1000
2024-01-03,91.0,92.90,1200
2024-01-04,92.5,92.98,900
`
	bars, err := LoadHistory(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, "2024-01-02", bars[0].Date)
	assert.Equal(t, []float64{90.70, 92.90, 92.98}, Closes(bars))
}

func TestLoadHistory_BadNumber(t *testing.T) {
	in := "date,close\n2024-01-02,abc\n"
	_, err := LoadHistory(strings.NewReader(in))
	assert.Error(t, err)
}

func TestLoadHistoryFile_Missing(t *testing.T) {
	_, err := LoadHistoryFile("testdata/does-not-exist.csv")
	assert.Error(t, err)
}

func BenchmarkEstimate(b *testing.B) {
	prices := make([]float64, 252)
	for i := range prices {
		prices[i] = 100 * math.Exp(0.01*math.Sin(float64(i)))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = Estimate(prices)
	}
}
