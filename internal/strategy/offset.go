// Package strategy implements the order construction engine: strike
// offsets, multi-leg strategy builders, position-aware sizing, and order
// splitting. Everything here is pure; no network calls happen until a
// constructed order reaches the batch executor.
package strategy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinel errors for construction-time validation failures. These
// surface to the caller before any network call is attempted.
var (
	ErrInvalidOffset   = errors.New("invalid strike offset")
	ErrInvalidStrategy = errors.New("invalid strategy")
	ErrInvalidSplit    = errors.New("invalid split")
)

// OptionType identifies the option contract kind, using the NSE codes.
type OptionType string

const (
	Call OptionType = "CE"
	Put  OptionType = "PE"
)

// Action is the order side.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// OffsetKind tags a strike offset relative to the at-the-money strike.
type OffsetKind int

const (
	KindATM OffsetKind = iota
	KindITM
	KindOTM
)

// Offset is a pure specification of strike selection relative to the
// underlying's ATM strike. It carries no price until resolved.
type Offset struct {
	Kind  OffsetKind
	Steps int
}

// ATM returns the at-the-money offset.
func ATM() Offset { return Offset{Kind: KindATM} }

// ITM returns an in-the-money offset n strikes deep.
func ITM(n int) Offset { return Offset{Kind: KindITM, Steps: n} }

// OTM returns an out-of-the-money offset n strikes out.
func OTM(n int) Offset { return Offset{Kind: KindOTM, Steps: n} }

// Validate checks the offset's step count. ITM/OTM require n >= 1.
func (o Offset) Validate() error {
	switch o.Kind {
	case KindATM:
		return nil
	case KindITM, KindOTM:
		if o.Steps < 1 {
			return fmt.Errorf("%w: steps must be >= 1, got %d", ErrInvalidOffset, o.Steps)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidOffset, o.Kind)
	}
}

// String renders the offset in the wire token format: ATM, ITM3, OTM6.
func (o Offset) String() string {
	switch o.Kind {
	case KindITM:
		return "ITM" + strconv.Itoa(o.Steps)
	case KindOTM:
		return "OTM" + strconv.Itoa(o.Steps)
	default:
		return "ATM"
	}
}

// ParseOffset parses an offset token (ATM, ITM1-N, OTM1-N). Matching is
// case-insensitive.
func ParseOffset(s string) (Offset, error) {
	token := strings.ToUpper(strings.TrimSpace(s))
	if token == "ATM" {
		return ATM(), nil
	}

	var kind OffsetKind
	switch {
	case strings.HasPrefix(token, "ITM"):
		kind = KindITM
	case strings.HasPrefix(token, "OTM"):
		kind = KindOTM
	default:
		return Offset{}, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}

	n, err := strconv.Atoi(token[3:])
	if err != nil {
		return Offset{}, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}

	o := Offset{Kind: kind, Steps: n}
	if err := o.Validate(); err != nil {
		return Offset{}, err
	}
	return o, nil
}

// ResolveStrike resolves the offset to a concrete strike price given a
// spot price and the underlying's strike interval. ATM is the nearest
// multiple of the interval; ITM moves toward intrinsic value (down for
// calls, up for puts) and OTM the other way.
//
// The venue performs this resolution itself when given the offset token,
// and its strike intervals are authoritative; this local form exists for
// previews, tests, and venues lacking the offset primitive.
func ResolveStrike(spot, interval decimal.Decimal, offset Offset, optionType OptionType) (decimal.Decimal, error) {
	if err := offset.Validate(); err != nil {
		return decimal.Zero, err
	}
	if !interval.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: strike interval must be positive", ErrInvalidOffset)
	}

	atm := spot.Div(interval).Round(0).Mul(interval)

	var direction decimal.Decimal
	switch offset.Kind {
	case KindATM:
		direction = decimal.Zero
	case KindITM:
		if optionType == Call {
			direction = decimal.NewFromInt(-1)
		} else {
			direction = decimal.NewFromInt(1)
		}
	case KindOTM:
		if optionType == Call {
			direction = decimal.NewFromInt(1)
		} else {
			direction = decimal.NewFromInt(-1)
		}
	}

	strike := atm.Add(direction.Mul(decimal.NewFromInt(int64(offset.Steps))).Mul(interval))
	if !strike.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: resolved strike %s is not positive", ErrInvalidOffset, strike)
	}
	return strike, nil
}
