package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStraddleLegs(t *testing.T) {
	legs, err := StraddleLegs(Buy, 75)
	require.NoError(t, err)
	require.Len(t, legs, 2)

	assert.Equal(t, Leg{Offset: ATM(), OptionType: Call, Action: Buy, Quantity: 75}, legs[0])
	assert.Equal(t, Leg{Offset: ATM(), OptionType: Put, Action: Buy, Quantity: 75}, legs[1])
}

func TestStraddleLegs_Short(t *testing.T) {
	legs, err := StraddleLegs(Sell, 30)
	require.NoError(t, err)
	require.Len(t, legs, 2)
	for _, leg := range legs {
		assert.Equal(t, Sell, leg.Action)
		assert.Equal(t, ATM(), leg.Offset)
	}
}

func TestStraddleLegs_Invalid(t *testing.T) {
	_, err := StraddleLegs(Buy, 0)
	assert.ErrorIs(t, err, ErrInvalidStrategy)

	_, err = StraddleLegs(Action("HOLD"), 75)
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestStrangleLegs(t *testing.T) {
	legs, err := StrangleLegs(Buy, 75, 3)
	require.NoError(t, err)
	require.Len(t, legs, 2)

	assert.Equal(t, Leg{Offset: OTM(3), OptionType: Call, Action: Buy, Quantity: 75}, legs[0])
	assert.Equal(t, Leg{Offset: OTM(3), OptionType: Put, Action: Buy, Quantity: 75}, legs[1])
}

func TestStrangleLegs_InvalidOffset(t *testing.T) {
	_, err := StrangleLegs(Sell, 75, 0)
	assert.ErrorIs(t, err, ErrInvalidOffset)
}

func TestIronCondorLegs(t *testing.T) {
	legs, err := IronCondorLegs(75, 4, 6)
	require.NoError(t, err)
	require.Len(t, legs, 4)

	assert.Equal(t, Leg{Offset: OTM(6), OptionType: Call, Action: Buy, Quantity: 75}, legs[0])
	assert.Equal(t, Leg{Offset: OTM(6), OptionType: Put, Action: Buy, Quantity: 75}, legs[1])
	assert.Equal(t, Leg{Offset: OTM(4), OptionType: Call, Action: Sell, Quantity: 75}, legs[2])
	assert.Equal(t, Leg{Offset: OTM(4), OptionType: Put, Action: Sell, Quantity: 75}, legs[3])
}

func TestIronCondorLegs_Degenerate(t *testing.T) {
	// Buy offset inside the sell offset leaves the sold legs unprotected.
	_, err := IronCondorLegs(75, 6, 4)
	assert.ErrorIs(t, err, ErrInvalidStrategy)

	// Equal offsets are just as degenerate.
	_, err = IronCondorLegs(75, 4, 4)
	assert.ErrorIs(t, err, ErrInvalidStrategy)

	_, err = IronCondorLegs(75, 0, 2)
	assert.ErrorIs(t, err, ErrInvalidStrategy)

	_, err = IronCondorLegs(0, 4, 6)
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestLegBuilders_Deterministic(t *testing.T) {
	a, err := IronCondorLegs(75, 4, 6)
	require.NoError(t, err)
	b, err := IronCondorLegs(75, 4, 6)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLeg_String(t *testing.T) {
	leg := Leg{Offset: OTM(4), OptionType: Put, Action: Sell, Quantity: 75}
	assert.Equal(t, "SELL PE @ OTM4 x75", leg.String())
}
