package strategy

import "fmt"

// Leg is one unresolved order intent within a multi-leg strategy. Leg
// order within a strategy is significant only for display; legs are
// logically independent and there is no atomicity across them. Partial
// execution (3 of 4 condor legs filled) is a normal, reportable outcome.
type Leg struct {
	Offset     Offset
	OptionType OptionType
	Action     Action
	Quantity   int
}

func (l Leg) String() string {
	return fmt.Sprintf("%s %s @ %s x%d", l.Action, l.OptionType, l.Offset, l.Quantity)
}

// StraddleLegs builds the two ATM legs of a straddle: CALL and PUT, same
// action, same quantity.
func StraddleLegs(action Action, quantity int) ([]Leg, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidStrategy, quantity)
	}
	if err := validateAction(action); err != nil {
		return nil, err
	}

	return []Leg{
		{Offset: ATM(), OptionType: Call, Action: action, Quantity: quantity},
		{Offset: ATM(), OptionType: Put, Action: action, Quantity: quantity},
	}, nil
}

// StrangleLegs builds the two OTM legs of a strangle at the given offset.
func StrangleLegs(action Action, quantity, offset int) ([]Leg, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidStrategy, quantity)
	}
	if err := validateAction(action); err != nil {
		return nil, err
	}

	o := OTM(offset)
	if err := o.Validate(); err != nil {
		return nil, err
	}

	return []Leg{
		{Offset: o, OptionType: Call, Action: action, Quantity: quantity},
		{Offset: o, OptionType: Put, Action: action, Quantity: quantity},
	}, nil
}

// IronCondorLegs builds the four legs of an iron condor: protective buys
// at OTM(buyOffset), premium sells at OTM(sellOffset). The buy offset
// must be strictly further out than the sell offset; otherwise the
// "protective" leg would sit inside the sold leg and the structure is
// degenerate.
func IronCondorLegs(quantity, sellOffset, buyOffset int) ([]Leg, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidStrategy, quantity)
	}
	if sellOffset < 1 {
		return nil, fmt.Errorf("%w: sell offset must be >= 1, got %d", ErrInvalidStrategy, sellOffset)
	}
	if buyOffset <= sellOffset {
		return nil, fmt.Errorf("%w: buy offset (%d) must be greater than sell offset (%d)",
			ErrInvalidStrategy, buyOffset, sellOffset)
	}

	return []Leg{
		{Offset: OTM(buyOffset), OptionType: Call, Action: Buy, Quantity: quantity},
		{Offset: OTM(buyOffset), OptionType: Put, Action: Buy, Quantity: quantity},
		{Offset: OTM(sellOffset), OptionType: Call, Action: Sell, Quantity: quantity},
		{Offset: OTM(sellOffset), OptionType: Put, Action: Sell, Quantity: quantity},
	}, nil
}

func validateAction(action Action) error {
	if action != Buy && action != Sell {
		return fmt.Errorf("%w: action must be BUY or SELL, got %q", ErrInvalidStrategy, action)
	}
	return nil
}
