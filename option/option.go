package option

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrInvalidType        = errors.New("invalid option type")
	ErrArbitrageViolation = errors.New("risk-neutral probability outside [0,1]")
	ErrNumericOverflow    = errors.New("numeric overflow")
)

// Type option direction, call or put
type Type int

const (
	Call Type = iota
	Put
)

func (t Type) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType accepts "c", "call", "p" and "put" in any case.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "call":
		return Call, nil
	case "p", "put":
		return Put, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Params inputs shared by every pricer. Passed by value, never mutated.
type Params struct {
	Spot       float64 `json:"spot" yaml:"spot"`             // 标的价格
	Strike     float64 `json:"strike" yaml:"strike"`         // 行权价格
	Maturity   float64 `json:"maturity" yaml:"maturity"`     // 到期时间（年）
	Rate       float64 `json:"rate" yaml:"rate"`             // 无风险利率，连续复利
	Volatility float64 `json:"volatility" yaml:"volatility"` // 年化波动率
	Dividend   float64 `json:"dividend" yaml:"dividend"`     // 连续股息率
}

// Validate rejects non-positive spot, strike, maturity and volatility, a
// negative dividend yield, and any NaN or infinite field.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"spot", p.Spot},
		{"strike", p.Strike},
		{"maturity", p.Maturity},
		{"rate", p.Rate},
		{"volatility", p.Volatility},
		{"dividend", p.Dividend},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParameter, f.name)
		}
	}
	switch {
	case p.Spot <= 0:
		return fmt.Errorf("%w: spot must be positive, got %v", ErrInvalidParameter, p.Spot)
	case p.Strike <= 0:
		return fmt.Errorf("%w: strike must be positive, got %v", ErrInvalidParameter, p.Strike)
	case p.Maturity <= 0:
		return fmt.Errorf("%w: maturity must be positive, got %v", ErrInvalidParameter, p.Maturity)
	case p.Volatility <= 0:
		return fmt.Errorf("%w: volatility must be positive, got %v", ErrInvalidParameter, p.Volatility)
	case p.Dividend < 0:
		return fmt.Errorf("%w: dividend must not be negative, got %v", ErrInvalidParameter, p.Dividend)
	}
	return nil
}

// DiscountedSpot S·e^{-qT}
func (p Params) DiscountedSpot() float64 {
	return p.Spot * math.Exp(-p.Dividend*p.Maturity)
}

// DiscountedStrike K·e^{-rT}
func (p Params) DiscountedStrike() float64 {
	return p.Strike * math.Exp(-p.Rate*p.Maturity)
}

// Payoff value at expiry for a terminal stock price s.
func Payoff(t Type, s, strike float64) float64 {
	if t == Put {
		return math.Max(0, strike-s)
	}
	return math.Max(0, s-strike)
}

// DiscountedIntrinsic the price of an option whose underlying cannot move:
// max(0, S·e^{-qT} - K·e^{-rT}) for a call, the reverse for a put.
func DiscountedIntrinsic(p Params, t Type) float64 {
	return Payoff(t, p.DiscountedSpot(), p.DiscountedStrike())
}

// Parity S·e^{-qT} - K·e^{-rT}, the value of call minus put.
func Parity(p Params) float64 {
	return p.DiscountedSpot() - p.DiscountedStrike()
}
