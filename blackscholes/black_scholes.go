package blackscholes

import (
	"math"

	"github.com/charlerive/optionpricer/option"
	"gonum.org/v1/gonum/stat/distuv"
)

// Price closed-form Black–Scholes–Merton value of a European option with a
// continuous dividend yield.
// see wiki: https://en.wikipedia.org/wiki/Black%E2%80%93Scholes_model
func Price(p option.Params, t option.Type) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if t != option.Call && t != option.Put {
		return 0, option.ErrInvalidType
	}
	return price(p, t), nil
}

func price(p option.Params, t option.Type) float64 {
	volT := p.Volatility * math.Sqrt(p.Maturity)
	if volT == 0 {
		// d1, d2 are undefined; the underlying cannot move before expiry
		return option.DiscountedIntrinsic(p, t)
	}
	d1 := calcD1(p, volT)
	d2 := d1 - volT
	if t == option.Put {
		return p.DiscountedStrike()*Cdf(-d2) - p.DiscountedSpot()*Cdf(-d1)
	}
	return p.DiscountedSpot()*Cdf(d1) - p.DiscountedStrike()*Cdf(d2)
}

func calcD1(p option.Params, volT float64) float64 {
	return (math.Log(p.Spot/p.Strike) + (p.Rate-p.Dividend+p.Volatility*p.Volatility/2)*p.Maturity) / volT
}

// BSM option value and greeks for one parameter set
type BSM struct {
	option.Params
	Type  option.Type `json:"type"`
	D1    float64     `json:"d1"`    // 中间值d1
	D2    float64     `json:"d2"`    // 中间值d2
	Nd1   float64     `json:"nd1"`   // d1处的标准正态密度
	Price float64     `json:"price"` // 期权理论价格
	Delta float64     `json:"delta"` // 希腊值delta, 期权价格对underlying价格的敏感度
	Gamma float64     `json:"gamma"` // 希腊值gamma, delta对underlying价格的敏感度
	Vega  float64     `json:"vega"`  // 希腊值vega, 波动率变动1%的价格变动
	Theta float64     `json:"theta"` // 希腊值theta, 每日时间价值损耗
	Rho   float64     `json:"rho"`   // 希腊值rho, 利率变动1%的价格变动

	degenerate bool
	cdfD1      float64
	cdfD2      float64
}

// NewBS prices the option and fills in its greeks.
func NewBS(p option.Params, t option.Type) (*BSM, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if t != option.Call && t != option.Put {
		return nil, option.ErrInvalidType
	}
	bsm := &BSM{Params: p, Type: t}
	bsm.init()
	return bsm, nil
}

func (bsm *BSM) init() {
	volT := bsm.Volatility * math.Sqrt(bsm.Maturity)
	if volT == 0 {
		bsm.degenerate = true
		// step functions in place of N(d1), N(d2)
		switch diff := option.Parity(bsm.Params); {
		case diff > 0:
			bsm.cdfD1, bsm.cdfD2 = 1, 1
		case diff < 0:
			bsm.cdfD1, bsm.cdfD2 = 0, 0
		default:
			bsm.cdfD1, bsm.cdfD2 = 0.5, 0.5
		}
	} else {
		bsm.D1 = calcD1(bsm.Params, volT)
		bsm.D2 = bsm.D1 - volT
		bsm.Nd1 = Pdf(bsm.D1)
		bsm.cdfD1, bsm.cdfD2 = Cdf(bsm.D1), Cdf(bsm.D2)
	}

	bsm.Price = price(bsm.Params, bsm.Type)
	bsm.calcDelta()
	bsm.calcGamma(volT)
	bsm.calcVega()
	bsm.calcTheta()
	bsm.calcRho()
}

func (bsm *BSM) calcDelta() {
	if bsm.Type == option.Call {
		bsm.Delta = math.Exp(-bsm.Dividend*bsm.Maturity) * bsm.cdfD1
	} else {
		bsm.Delta = math.Exp(-bsm.Dividend*bsm.Maturity) * (bsm.cdfD1 - 1)
	}
}

func (bsm *BSM) calcGamma(volT float64) {
	if bsm.degenerate {
		return
	}
	bsm.Gamma = math.Exp(-bsm.Dividend*bsm.Maturity) * bsm.Nd1 / (bsm.Spot * volT)
}

func (bsm *BSM) calcVega() {
	bsm.Vega = bsm.DiscountedSpot() * math.Sqrt(bsm.Maturity) * bsm.Nd1 / 100
}

func (bsm *BSM) calcTheta() {
	decay := -bsm.DiscountedSpot() * bsm.Nd1 * bsm.Volatility / (2 * math.Sqrt(bsm.Maturity))
	if bsm.Type == option.Call {
		bsm.Theta = (decay - bsm.Rate*bsm.DiscountedStrike()*bsm.cdfD2 + bsm.Dividend*bsm.DiscountedSpot()*bsm.cdfD1) / 365
	} else {
		bsm.Theta = (decay + bsm.Rate*bsm.DiscountedStrike()*(1-bsm.cdfD2) - bsm.Dividend*bsm.DiscountedSpot()*(1-bsm.cdfD1)) / 365
	}
}

func (bsm *BSM) calcRho() {
	if bsm.Type == option.Call {
		bsm.Rho = bsm.Maturity * bsm.DiscountedStrike() * bsm.cdfD2 / 100
	} else {
		bsm.Rho = -bsm.Maturity * bsm.DiscountedStrike() * (1 - bsm.cdfD2) / 100
	}
}

// Cdf cumulative normal distribution function, evaluated through erfc.
func Cdf(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// Pdf standard normal density
func Pdf(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
