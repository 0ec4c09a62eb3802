// Package report renders pricing results as text tables.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/charlerive/optionpricer/binomial"
	"github.com/charlerive/optionpricer/blackscholes"
	"github.com/charlerive/optionpricer/option"
)

// decimal places shown for prices
const places = 4

const (
	MethodClosedForm = "closed-form"
	MethodLattice    = "lattice"
)

type Quote struct {
	Method string
	Type   option.Type
	Steps  int // 0 for the closed form
	Price  float64
}

// Quotes prices a call and a put with both methods.
func Quotes(p option.Params, steps int) ([]Quote, error) {
	var quotes []Quote
	for _, t := range []option.Type{option.Call, option.Put} {
		cf, err := blackscholes.Price(p, t)
		if err != nil {
			return nil, fmt.Errorf("closed-form %s: %w", t, err)
		}
		lat, err := binomial.Price(p, t, steps)
		if err != nil {
			return nil, fmt.Errorf("lattice %s with %d steps: %w", t, steps, err)
		}
		quotes = append(quotes,
			Quote{Method: MethodClosedForm, Type: t, Price: cf},
			Quote{Method: MethodLattice, Type: t, Steps: steps, Price: lat},
		)
	}
	return quotes, nil
}

func RenderQuotes(w io.Writer, p option.Params, quotes []Quote) {
	fmt.Fprintf(w, "S=%s K=%s T=%s r=%s σ=%s q=%s\n",
		format(p.Spot), format(p.Strike), format(p.Maturity), format(p.Rate), format(p.Volatility), format(p.Dividend))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Method", "Type", "Steps", "Price"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, q := range quotes {
		steps := "-"
		if q.Steps > 0 {
			steps = strconv.Itoa(q.Steps)
		}
		table.Append([]string{q.Method, q.Type.String(), steps, format(q.Price)})
	}
	table.Render()
}

type ConvergenceRow struct {
	Steps      int
	Lattice    float64
	ClosedForm float64
	Error      float64 // lattice - closed form
}

// Convergence lattice price against the closed form for each step count.
func Convergence(p option.Params, t option.Type, steps []int) ([]ConvergenceRow, error) {
	cf, err := blackscholes.Price(p, t)
	if err != nil {
		return nil, err
	}
	rows := make([]ConvergenceRow, 0, len(steps))
	for _, n := range steps {
		lat, err := binomial.Price(p, t, n)
		if err != nil {
			return nil, fmt.Errorf("%d steps: %w", n, err)
		}
		rows = append(rows, ConvergenceRow{Steps: n, Lattice: lat, ClosedForm: cf, Error: lat - cf})
	}
	return rows, nil
}

func RenderConvergence(w io.Writer, t option.Type, rows []ConvergenceRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Steps", "Lattice " + t.String(), "Closed-form", "Error"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range rows {
		table.Append([]string{
			strconv.Itoa(r.Steps),
			format(r.Lattice),
			format(r.ClosedForm),
			decimal.NewFromFloat(r.Error).StringFixed(6),
		})
	}
	table.Render()
}

func format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}
