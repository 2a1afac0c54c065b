package risk

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dignilife/walletcore/internal/domain"
)

// Assessor is the external risk-scoring collaborator. The withdrawal flow
// only consumes the decision: challenge means a face token is required,
// block terminates the flow.
type Assessor interface {
	Assess(ctx context.Context, userID int, amount decimal.Decimal, deviceID string) (domain.RiskDecision, error)
}

var smallAmountThreshold = decimal.NewFromInt(100)

// RuleAssessor is the built-in stand-in for the fraud-scoring service.
type RuleAssessor struct{}

func NewRuleAssessor() *RuleAssessor {
	return &RuleAssessor{}
}

func (a *RuleAssessor) Assess(_ context.Context, _ int, amount decimal.Decimal, deviceID string) (domain.RiskDecision, error) {
	if amount.LessThanOrEqual(smallAmountThreshold) {
		return domain.RiskDecision{Action: domain.RiskAllow, Score: 0.98, Reason: "ok_small_amount"}, nil
	}
	if deviceID == "" || deviceID == "-" {
		return domain.RiskDecision{Action: domain.RiskChallenge, Score: 0.40, Reason: "missing_device_fp"}, nil
	}
	return domain.RiskDecision{Action: domain.RiskAllow, Score: 0.80, Reason: "ok_default"}, nil
}
