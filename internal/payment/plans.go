package payment

import (
	"glowcheck/internal/models"
)

// Static plan table. Both payment paths and the subscription endpoint read
// from here; plan ids arriving from clients or webhook metadata must
// resolve against it.
var plans = map[string]models.Plan{
	"glow_monthly": {
		ID:           "glow_monthly",
		Name:         "Glow Monthly",
		Amount:       999,
		Currency:     "usd",
		DurationDays: 30,
	},
	"glow_quarterly": {
		ID:           "glow_quarterly",
		Name:         "Glow Quarterly",
		Amount:       2499,
		Currency:     "usd",
		DurationDays: 90,
	},
	"glow_annual": {
		ID:           "glow_annual",
		Name:         "Glow Annual",
		Amount:       7999,
		Currency:     "usd",
		DurationDays: 365,
	},
}

// GetPlan resolves a plan id.
func GetPlan(id string) (models.Plan, bool) {
	p, ok := plans[id]
	return p, ok
}
