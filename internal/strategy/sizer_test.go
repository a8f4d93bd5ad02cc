package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelta(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		target   int
		want     SizedOrder
		wantSkip bool
	}{
		{"flat to long", 0, 10, SizedOrder{Quantity: 10, Action: Buy}, false},
		{"long to flat", 10, 0, SizedOrder{Quantity: 10, Action: Sell}, false},
		{"reverse long to short", 3, -5, SizedOrder{Quantity: 8, Action: Sell}, false},
		{"reverse short to long", -5, 3, SizedOrder{Quantity: 8, Action: Buy}, false},
		{"scale in", 5, 15, SizedOrder{Quantity: 10, Action: Buy}, false},
		{"scale down short", -15, -5, SizedOrder{Quantity: 10, Action: Buy}, false},
		{"already at target", 7, 7, SizedOrder{}, true},
		{"flat at flat", 0, 0, SizedOrder{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Delta(tt.current, tt.target)
			if tt.wantSkip {
				require.False(t, ok, "expected no-op")
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDelta_QuantityMatchesGap(t *testing.T) {
	for current := -20; current <= 20; current += 7 {
		for target := -20; target <= 20; target += 5 {
			got, ok := Delta(current, target)
			if current == target {
				assert.False(t, ok)
				continue
			}
			require.True(t, ok)

			gap := target - current
			if gap < 0 {
				gap = -gap
			}
			assert.Equal(t, gap, got.Quantity)
			if target > current {
				assert.Equal(t, Buy, got.Action)
			} else {
				assert.Equal(t, Sell, got.Action)
			}
		}
	}
}
