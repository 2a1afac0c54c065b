package bonus

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

var planTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func trustedUser(granted string) UserContext {
	return UserContext{UserID: 1, TrustOK: true, KYCOK: true, GrantedToday: d(granted)}
}

func TestPlan(t *testing.T) {
	engine, err := NewEngine(DefaultRules())
	assert.NoError(t, err)

	tests := []struct {
		name          string
		input         PlanInput
		expectedTotal string
		expectedLines int
		expectCapped  bool
	}{
		{
			name: "Percentage rule on earn commit",
			input: PlanInput{
				Event:     TriggerEarnCommit,
				User:      trustedUser("0.00"),
				BaseValue: d("5.00"),
				SourceID:  "task-55",
				Now:       planTime,
			},
			expectedTotal: "0.15",
			expectedLines: 1,
		},
		{
			name: "Percentage rule clamped to max per event",
			input: PlanInput{
				Event:     TriggerEarnCommit,
				User:      trustedUser("0.00"),
				BaseValue: d("100.00"),
				SourceID:  "task-56",
				Now:       planTime,
			},
			expectedTotal: "0.25",
			expectedLines: 1,
		},
		{
			name: "Flat default fires with min clamp",
			input: PlanInput{
				Event:     TriggerDailySubmitOK,
				User:      trustedUser("0.00"),
				BaseValue: d("0.00"),
				SourceID:  "daily-1",
				Now:       planTime,
			},
			expectedTotal: "0.05",
			expectedLines: 1,
		},
		{
			name: "Untrusted user gets no gated lines",
			input: PlanInput{
				Event:     TriggerEarnCommit,
				User:      UserContext{UserID: 1, TrustOK: false, KYCOK: true},
				BaseValue: d("5.00"),
				SourceID:  "task-57",
				Now:       planTime,
			},
			expectedTotal: "0",
			expectedLines: 0,
		},
		{
			name: "Promo has no eligibility gate",
			input: PlanInput{
				Event:     TriggerSystemPromo,
				User:      UserContext{UserID: 1},
				BaseValue: d("0.00"),
				SourceID:  "promo-9",
				Now:       planTime,
			},
			expectedTotal: "0.20",
			expectedLines: 1,
		},
		{
			name: "Cap exhausted returns empty capped plan",
			input: PlanInput{
				Event:     TriggerEarnCommit,
				User:      trustedUser("2.00"),
				BaseValue: d("5.00"),
				DayCap:    dp("2.00"),
				SourceID:  "task-58",
				Now:       planTime,
			},
			expectedTotal: "0",
			expectedLines: 0,
			expectCapped:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := engine.Plan(tt.input)
			assert.True(t, d(tt.expectedTotal).Equal(plan.Total), "total %s != %s", plan.Total, tt.expectedTotal)
			assert.Len(t, plan.Lines, tt.expectedLines)
			assert.Equal(t, tt.expectCapped, plan.Capped)
		})
	}
}

func TestPlanProportionalScaleDown(t *testing.T) {
	// Two rules computing 0.30 and 0.40 against a remaining cap of 0.50
	// must scale to 0.21 and 0.29, never first-rule-wins.
	rules := []Rule{
		{Name: "rule_a", Trigger: TriggerEarnCommit, Kind: KindFixed, FixedAmount: d("0.30")},
		{Name: "rule_b", Trigger: TriggerEarnCommit, Kind: KindFixed, FixedAmount: d("0.40")},
	}
	engine, err := NewEngine(rules)
	assert.NoError(t, err)

	plan := engine.Plan(PlanInput{
		Event:     TriggerEarnCommit,
		User:      trustedUser("0.00"),
		BaseValue: d("1.00"),
		DayCap:    dp("0.50"),
		SourceID:  "task-99",
		Now:       planTime,
	})

	assert.True(t, plan.Capped)
	assert.Len(t, plan.Lines, 2)
	assert.True(t, d("0.21").Equal(plan.Lines[0].Amount), "got %s", plan.Lines[0].Amount)
	assert.True(t, d("0.29").Equal(plan.Lines[1].Amount), "got %s", plan.Lines[1].Amount)
	assert.True(t, d("0.50").Equal(plan.Total), "got %s", plan.Total)
}

func TestPlanScaledLinesRespectOriginalAmounts(t *testing.T) {
	rules := []Rule{
		{Name: "big", Trigger: TriggerEarnCommit, Kind: KindFixed, FixedAmount: d("3.00"), MaxClamp: dp("3.00")},
		{Name: "small", Trigger: TriggerEarnCommit, Kind: KindFixed, FixedAmount: d("1.00")},
	}
	engine, err := NewEngine(rules)
	assert.NoError(t, err)

	plan := engine.Plan(PlanInput{
		Event:     TriggerEarnCommit,
		User:      trustedUser("0.00"),
		BaseValue: d("1.00"),
		DayCap:    dp("2.00"),
		SourceID:  "task-100",
		Now:       planTime,
	})

	assert.True(t, plan.Capped)
	for _, ln := range plan.Lines {
		switch ln.RuleName {
		case "big":
			assert.True(t, ln.Amount.LessThanOrEqual(d("3.00")))
		case "small":
			assert.True(t, ln.Amount.LessThanOrEqual(d("1.00")))
		}
	}
	assert.True(t, d("2.00").Equal(plan.Total), "got %s", plan.Total)
}

func TestLineKeyDeterministic(t *testing.T) {
	k1 := LineKey(1, "task-55", "earn_commit_pct", "2025-06-15")
	k2 := LineKey(1, "task-55", "earn_commit_pct", "2025-06-15")
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 32)

	assert.NotEqual(t, k1, LineKey(2, "task-55", "earn_commit_pct", "2025-06-15"))
	assert.NotEqual(t, k1, LineKey(1, "task-56", "earn_commit_pct", "2025-06-15"))
	assert.NotEqual(t, k1, LineKey(1, "task-55", "daily_flat", "2025-06-15"))
	assert.NotEqual(t, k1, LineKey(1, "task-55", "earn_commit_pct", "2025-06-16"))
}

func TestPlanAttachesKeysAndSource(t *testing.T) {
	engine, err := NewEngine(DefaultRules())
	assert.NoError(t, err)

	plan := engine.Plan(PlanInput{
		Event:     TriggerEarnCommit,
		User:      trustedUser("0.00"),
		BaseValue: d("5.00"),
		SourceID:  "task-55",
		Tags:      []string{"api"},
		Now:       planTime,
	})

	assert.Len(t, plan.Lines, 1)
	line := plan.Lines[0]
	assert.Equal(t, LineKey(1, "task-55", "earn_commit_pct", "2025-06-15"), line.IdempotencyKey)
	assert.Equal(t, "task-55", line.SourceID)
	assert.Equal(t, "2025-06-15", line.Day)
	assert.Contains(t, line.Tags, "api")
	assert.Contains(t, line.Tags, "earn")
}

func TestNewEngineRejectsMalformedRule(t *testing.T) {
	_, err := NewEngine([]Rule{{Name: "bad", Trigger: TriggerEarnCommit, Kind: CalcKind("TIERED")}})
	assert.Error(t, err)

	_, err = NewEngine([]Rule{{Trigger: TriggerEarnCommit, Kind: KindFixed}})
	assert.Error(t, err)
}
