package attendance

import "github.com/shopspring/decimal"

// CellState is the toggleable part of a grid cell.
type CellState struct {
	Present    bool
	Multiplier decimal.Decimal
}

var (
	multHalf    = decimal.NewFromFloat(0.5)
	multOne     = decimal.NewFromInt(1)
	multOneHalf = decimal.NewFromFloat(1.5)
	multDouble  = decimal.NewFromInt(2)
	multTriple  = decimal.NewFromInt(3)
)

var allowedMultipliers = []decimal.Decimal{multHalf, multOne, multOneHalf, multDouble, multTriple}

// ValidMultiplier reports whether m is one of the rates the grid knows.
func ValidMultiplier(m decimal.Decimal) bool {
	for _, a := range allowedMultipliers {
		if m.Equal(a) {
			return true
		}
	}
	return false
}

// NextToggleState reproduces the grid tap cycle:
//
//	unmarked -> present x1.0 -> absent -> x0.5 -> x1.5 -> x2.0 -> x3.0 -> x1.0 -> ...
//
// cur == nil means the cell is unmarked. A multiplier outside the known
// set (left over from an external edit) decays to present x1.0.
func NextToggleState(cur *CellState) CellState {
	if cur == nil {
		return CellState{Present: true, Multiplier: multOne}
	}

	switch {
	case cur.Present && cur.Multiplier.Equal(multOne):
		return CellState{Present: false, Multiplier: multOne}
	case !cur.Present:
		return CellState{Present: true, Multiplier: multHalf}
	case cur.Multiplier.Equal(multHalf):
		return CellState{Present: true, Multiplier: multOneHalf}
	case cur.Multiplier.Equal(multOneHalf):
		return CellState{Present: true, Multiplier: multDouble}
	case cur.Multiplier.Equal(multDouble):
		return CellState{Present: true, Multiplier: multTriple}
	default:
		// x3.0 wraps around; unknown multipliers decay here too
		return CellState{Present: true, Multiplier: multOne}
	}
}
