package engine

import (
	"testing"

	"infinitebuy/types"

	"github.com/shopspring/decimal"
)

func TestStarSplitPolicyPlanBuys(t *testing.T) {
	bar := newBar(2, "98", "101", "80", "90", "100")
	unit := decimal.RequireFromString("250000")

	tests := []struct {
		name        string
		starPct     string
		wantOrders  int
		wantLimits  []string
		wantAmounts []string
		wantActions []types.Action
	}{
		{
			name:        "first half splits the unit",
			starPct:     "15",
			wantOrders:  2,
			wantLimits:  []string{"85", "100"},
			wantAmounts: []string{"125000", "125000"},
			wantActions: []types.Action{types.ActionBuyStar, types.ActionBuyZero},
		},
		{
			name:        "second half uses the absolute star pct",
			starPct:     "-3",
			wantOrders:  1,
			wantLimits:  []string{"97"},
			wantAmounts: []string{"250000"},
			wantActions: []types.Action{types.ActionBuyStar},
		},
		{
			name:        "zero star pct is second half",
			starPct:     "0",
			wantOrders:  1,
			wantLimits:  []string{"100"},
			wantAmounts: []string{"250000"},
			wantActions: []types.Action{types.ActionBuyStar},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := PlanView{
				UnitAmount: unit,
				StarPct:    decimal.RequireFromString(tt.starPct),
			}
			plans := StarSplitPolicy{}.PlanBuys(bar, view)
			if len(plans) != tt.wantOrders {
				t.Fatalf("PlanBuys() orders = %d, want %d", len(plans), tt.wantOrders)
			}
			for i, plan := range plans {
				if !plan.Limit.Equal(decimal.RequireFromString(tt.wantLimits[i])) {
					t.Errorf("order %d limit = %s, want %s", i, plan.Limit, tt.wantLimits[i])
				}
				if !plan.Amount.Equal(decimal.RequireFromString(tt.wantAmounts[i])) {
					t.Errorf("order %d amount = %s, want %s", i, plan.Amount, tt.wantAmounts[i])
				}
				if plan.Action != tt.wantActions[i] {
					t.Errorf("order %d action = %s, want %s", i, plan.Action, tt.wantActions[i])
				}
			}
		})
	}
}

func TestMultiplierPolicyPlanBuys(t *testing.T) {
	unit := decimal.RequireFromString("50000")

	tests := []struct {
		name       string
		policy     MultiplierPolicy
		bar        types.Bar
		round      int
		avgPrice   string
		wantLimit  string
		wantAmount string
		wantAction types.Action
	}{
		{
			name:       "first round buys one unit at the close",
			policy:     MultiplierPolicy{},
			bar:        newBar(2, "99", "102", "95", "100", "100"),
			round:      0,
			avgPrice:   "0",
			wantLimit:  "100",
			wantAmount: "50000",
			wantAction: types.ActionBuyZero,
		},
		{
			name:       "doubles at or below the average",
			policy:     MultiplierPolicy{},
			bar:        newBar(3, "90", "91", "88", "90", "100"),
			round:      1,
			avgPrice:   "100",
			wantLimit:  "90",
			wantAmount: "100000",
			wantAction: types.ActionBuyZero,
		},
		{
			name:       "single unit above the average",
			policy:     MultiplierPolicy{},
			bar:        newBar(3, "101", "103", "100", "102", "100"),
			round:      1,
			avgPrice:   "100",
			wantLimit:  "102",
			wantAmount: "50000",
			wantAction: types.ActionBuyZero,
		},
		{
			name:       "loc mode prices off the previous close",
			policy:     MultiplierPolicy{UseLOC: true, LOCDiscountPct: decimal.RequireFromString("1")},
			bar:        newBar(3, "95", "98", "92", "94", "100"),
			round:      1,
			avgPrice:   "100",
			wantLimit:  "99",
			wantAmount: "100000",
			wantAction: types.ActionBuyStar,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := PlanView{
				UnitAmount: unit,
				AvgPrice:   decimal.RequireFromString(tt.avgPrice),
				Round:      tt.round,
			}
			plans := tt.policy.PlanBuys(tt.bar, view)
			if len(plans) != 1 {
				t.Fatalf("PlanBuys() orders = %d, want 1", len(plans))
			}
			plan := plans[0]
			if !plan.Limit.Equal(decimal.RequireFromString(tt.wantLimit)) {
				t.Errorf("limit = %s, want %s", plan.Limit, tt.wantLimit)
			}
			if !plan.Amount.Equal(decimal.RequireFromString(tt.wantAmount)) {
				t.Errorf("amount = %s, want %s", plan.Amount, tt.wantAmount)
			}
			if plan.Action != tt.wantAction {
				t.Errorf("action = %s, want %s", plan.Action, tt.wantAction)
			}
		})
	}
}

func TestLocPrice(t *testing.T) {
	got := locPrice(decimal.RequireFromString("100"), decimal.RequireFromString("1"))
	if !got.Equal(decimal.RequireFromString("99")) {
		t.Errorf("locPrice(100, 1) = %s, want 99", got)
	}
	got = locPrice(decimal.RequireFromString("100"), decimal.Zero)
	if !got.Equal(decimal.RequireFromString("100")) {
		t.Errorf("locPrice(100, 0) = %s, want 100", got)
	}
}
