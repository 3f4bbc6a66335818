package domain

import "github.com/shopspring/decimal"

// Plan interest rates, annual. Contributions are monthly (rate / 12).
var (
	basicRate   = decimal.NewFromFloat(0.01)
	studentRate = decimal.NewFromFloat(0.03)
	premiumRate = decimal.NewFromFloat(0.05)

	twelve = decimal.NewFromInt(12)
)

// Calculator updates time deposit balances with accrued interest.
type Calculator struct{}

// NewCalculator creates a new Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// UpdateBalances walks deposits once, in the order given, and mutates each
// balance in place.
//
// A single interest accumulator runs across the whole slice: each deposit's
// own monthly contribution is added to it, and the deposit then receives the
// entire accumulated interest so far, not just its own share. Deposits later
// in the slice therefore absorb interest contributed by earlier ones, so the
// caller's ordering is part of the result. This cross-deposit accumulation
// is intentional and must not be "fixed" to per-deposit interest.
//
// Balances are rounded to 2 decimal places (half away from zero) once per
// deposit, after the accumulator is applied. Contributions themselves are
// never rounded.
func (c *Calculator) UpdateBalances(deposits []*TimeDeposit) {
	interest := decimal.Zero
	for _, td := range deposits {
		interest = interest.Add(c.contribution(td))
		td.Balance = td.Balance.Add(interest).Round(2)
	}
}

// contribution returns the monthly interest a single deposit adds to the
// accumulator, based on its plan type, age in days, and pre-update balance.
// Unknown plan types and deposits outside their plan's day window
// contribute zero; neither is an error.
func (c *Calculator) contribution(td *TimeDeposit) decimal.Decimal {
	if td.Days <= 30 {
		return decimal.Zero
	}

	switch td.PlanType {
	case PlanBasic:
		return td.Balance.Mul(basicRate).Div(twelve)
	case PlanStudent:
		if td.Days < 366 {
			return td.Balance.Mul(studentRate).Div(twelve)
		}
	case PlanPremium:
		if td.Days > 45 {
			return td.Balance.Mul(premiumRate).Div(twelve)
		}
	}

	return decimal.Zero
}
