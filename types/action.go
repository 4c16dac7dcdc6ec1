package types

type Action string

const (
	ActionBuyStar Action = "buy_star"
	ActionBuyZero Action = "buy_zero"
	ActionSell    Action = "sell"
)

// IsBuy reports whether the action adds to the position.
func (a Action) IsBuy() bool {
	return a == ActionBuyStar || a == ActionBuyZero
}

// Half labels which phase of a cycle a fill belongs to. The strategy is in
// its first half while the star percentage is positive.
type Half string

const (
	HalfFirst  Half = "first_half"
	HalfSecond Half = "second_half"
)
