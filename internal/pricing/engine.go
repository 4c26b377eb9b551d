// Package pricing maps a catalog base price to the customer-facing unit
// price. It does no I/O.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/lawchemical/Draft-Order-App/internal/config"
	"github.com/lawchemical/Draft-Order-App/internal/domain"
)

const (
	// DefaultDivisor converts the catalog's stored grade price to the grade A reference.
	DefaultDivisor = 2.06
	// DefaultCordedSurcharge multiplies the unit price of corded items.
	DefaultCordedSurcharge = 1.10
)

// DefaultUpcharges is the fractional upcharge per grade.
func DefaultUpcharges() map[domain.Grade]float64 {
	return map[domain.Grade]float64{
		domain.GradeA: 0,
		domain.GradeB: 0,
		domain.GradeC: 0.12,
		domain.GradeD: 0.30,
		domain.GradeE: 0.55,
		domain.GradeF: 1.06,
	}
}

type Engine struct {
	divisor   decimal.Decimal
	corded    decimal.Decimal
	upcharges map[domain.Grade]decimal.Decimal
}

func NewEngine(divisor, corded float64, upcharges map[domain.Grade]float64) *Engine {
	if divisor <= 0 {
		divisor = DefaultDivisor
	}
	if corded <= 0 {
		corded = DefaultCordedSurcharge
	}
	if upcharges == nil {
		upcharges = DefaultUpcharges()
	}
	e := &Engine{
		divisor:   decimal.NewFromFloat(divisor),
		corded:    decimal.NewFromFloat(corded),
		upcharges: make(map[domain.Grade]decimal.Decimal, len(upcharges)),
	}
	for g, u := range upcharges {
		e.upcharges[domain.NormalizeGrade(string(g))] = decimal.NewFromFloat(u)
	}
	return e
}

// FromConfig builds an engine from env configuration.
func FromConfig(cfg config.Pricing) *Engine {
	var table map[domain.Grade]float64
	if len(cfg.Upcharges) > 0 {
		table = make(map[domain.Grade]float64, len(cfg.Upcharges))
		for g, u := range cfg.Upcharges {
			table[domain.Grade(g)] = u
		}
	}
	return NewEngine(cfg.Divisor, cfg.Corded, table)
}

// UnitPrice normalizes base to grade A, applies the grade upcharge and the
// corded surcharge, then rounds half away from zero to cents.
func (e *Engine) UnitPrice(base decimal.Decimal, grade domain.Grade, corded bool) decimal.Decimal {
	p := base.Div(e.divisor).Mul(decimal.NewFromInt(1).Add(e.upcharges[grade]))
	if corded {
		p = p.Mul(e.corded)
	}
	return p.Round(2)
}
