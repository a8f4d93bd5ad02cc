package strategy

// SizedOrder is the order the smart-order sizer computed: the quantity
// and side that move the current net position exactly to the target.
type SizedOrder struct {
	Quantity int
	Action   Action
}

// Delta computes the order needed to move from the current net position
// to the target. The second return is false when the positions already
// match: the caller must skip submission entirely rather than send a
// zero-quantity order.
//
// The trader's stated action and quantity are advisory; the computed
// delta is authoritative. A stated SELL that computes to a BUY is the
// trader's mistake to notice, not the sizer's to silently obey.
func Delta(current, target int) (SizedOrder, bool) {
	if current == target {
		return SizedOrder{}, false
	}

	diff := target - current
	if diff > 0 {
		return SizedOrder{Quantity: diff, Action: Buy}, true
	}
	return SizedOrder{Quantity: -diff, Action: Sell}, true
}
