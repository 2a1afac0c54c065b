package bonus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Trigger string

const (
	TriggerDailySubmitOK Trigger = "DAILY_SUBMIT_OK"
	TriggerEarnCommit    Trigger = "EARN_COMMIT"
	TriggerSystemPromo   Trigger = "SYSTEM_PROMO"
)

type CalcKind string

const (
	// KindFixed grants a constant amount.
	KindFixed CalcKind = "FIXED"
	// KindPct grants a percentage of the base value.
	KindPct CalcKind = "PCT"
	// KindFlatDefault grants a small non-zero constant so triggers without
	// an explicit rule still yield a line.
	KindFlatDefault CalcKind = "FLAT_DEFAULT"
)

// flatDefaultAmount backs KindFlatDefault rules with no fixed amount set.
var flatDefaultAmount = decimal.RequireFromString("0.05")

type Rule struct {
	Name    string
	Trigger Trigger
	Kind    CalcKind

	FixedAmount decimal.Decimal
	Percentage  decimal.Decimal
	MinClamp    *decimal.Decimal
	MaxClamp    *decimal.Decimal

	RequireTrust bool
	RequireKYC   bool
	Tags         []string
}

// compute returns the rounded per-event amount for the rule, clamped to
// [MinClamp, MaxClamp] when set.
func (r Rule) compute(baseValue decimal.Decimal) decimal.Decimal {
	var amt decimal.Decimal
	switch r.Kind {
	case KindFixed:
		amt = r.FixedAmount
	case KindPct:
		amt = baseValue.Mul(r.Percentage)
	case KindFlatDefault:
		amt = flatDefaultAmount
	}

	if r.MinClamp != nil && amt.LessThan(*r.MinClamp) {
		amt = *r.MinClamp
	}
	if r.MaxClamp != nil && amt.GreaterThan(*r.MaxClamp) {
		amt = *r.MaxClamp
	}
	return amt.Round(2)
}

func (r Rule) validate() error {
	switch r.Kind {
	case KindFixed, KindPct, KindFlatDefault:
	default:
		return fmt.Errorf("rule %q: unknown calc kind %q", r.Name, r.Kind)
	}
	if r.Name == "" {
		return fmt.Errorf("rule with trigger %q has no name", r.Trigger)
	}
	return nil
}

type UserContext struct {
	UserID       int
	TrustOK      bool
	KYCOK        bool
	GrantedToday decimal.Decimal
}

type PlanLine struct {
	RuleName       string
	Amount         decimal.Decimal
	IdempotencyKey string
	SourceID       string
	Day            string
	Tags           []string
}

type Plan struct {
	Event       Trigger
	BaseValue   decimal.Decimal
	Lines       []PlanLine
	Total       decimal.Decimal
	Capped      bool
	GeneratedAt time.Time
}

func (p Plan) IsZero() bool {
	return p.Total.LessThanOrEqual(decimal.Zero)
}

type PlanInput struct {
	Event     Trigger
	User      UserContext
	BaseValue decimal.Decimal
	DayCap    *decimal.Decimal
	SourceID  string
	Tags      []string
	Now       time.Time
}

// Engine turns a trigger event plus user state into a set of bonus lines.
// It is pure: no I/O, no clock reads, no randomness. Zero eligible rules and
// cap exhaustion are valid plan states, not errors.
type Engine struct {
	rules []Rule
}

func NewEngine(rules []Rule) (*Engine, error) {
	for _, r := range rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
	}
	return &Engine{rules: rules}, nil
}

// LineKey derives the deterministic idempotency key for one bonus line.
// Re-running an identical plan for the identical source event on the same
// calendar day always yields the same key, so persistence collapses
// duplicate submissions regardless of arrival order.
func LineKey(userID int, sourceID, ruleName, day string) string {
	raw := fmt.Sprintf("%d|%s|%s|%s", userID, sourceID, ruleName, day)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:32]
}

func (e *Engine) Plan(in PlanInput) Plan {
	day := in.Now.UTC().Format("2006-01-02")
	base := in.BaseValue.Round(2)

	sourceID := in.SourceID
	if sourceID == "" {
		sourceID = fmt.Sprintf("%s:%s", in.Event, day)
	}

	empty := Plan{Event: in.Event, BaseValue: base, Total: decimal.Zero, GeneratedAt: in.Now}

	var lines []PlanLine
	for _, r := range e.rules {
		if r.Trigger != in.Event {
			continue
		}
		if r.RequireTrust && !in.User.TrustOK {
			continue
		}
		if r.RequireKYC && !in.User.KYCOK {
			continue
		}
		amt := r.compute(base)
		if amt.LessThanOrEqual(decimal.Zero) {
			continue
		}
		lines = append(lines, PlanLine{
			RuleName: r.Name,
			Amount:   amt,
			SourceID: sourceID,
			Day:      day,
			Tags:     mergeTags(in.Tags, r.Tags),
		})
	}
	if len(lines) == 0 {
		return empty
	}

	subtotal := decimal.Zero
	for _, ln := range lines {
		subtotal = subtotal.Add(ln.Amount)
	}

	capped := false
	if in.DayCap != nil {
		remaining := in.DayCap.Sub(in.User.GrantedToday)
		if remaining.LessThanOrEqual(decimal.Zero) {
			empty.Capped = true
			return empty
		}
		if subtotal.GreaterThan(remaining) {
			// Proportional scale-down, not first-come-first-served:
			// every rule keeps its relative share of the remaining cap.
			factor := remaining.Div(subtotal)
			scaled := lines[:0]
			for _, ln := range lines {
				ln.Amount = ln.Amount.Mul(factor).Round(2)
				if ln.Amount.LessThanOrEqual(decimal.Zero) {
					continue
				}
				scaled = append(scaled, ln)
			}
			lines = scaled
			subtotal = decimal.Zero
			for _, ln := range lines {
				subtotal = subtotal.Add(ln.Amount)
			}
			capped = true
		}
	}

	for i := range lines {
		lines[i].IdempotencyKey = LineKey(in.User.UserID, sourceID, lines[i].RuleName, day)
	}

	return Plan{
		Event:       in.Event,
		BaseValue:   base,
		Lines:       lines,
		Total:       subtotal.Round(2),
		Capped:      capped,
		GeneratedAt: in.Now,
	}
}

func mergeTags(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, t := range append(append([]string{}, a...), b...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// DefaultRules is the production rule set.
func DefaultRules() []Rule {
	d := func(s string) *decimal.Decimal {
		v := decimal.RequireFromString(s)
		return &v
	}
	return []Rule{
		{
			Name:         "daily_flat",
			Trigger:      TriggerDailySubmitOK,
			Kind:         KindFlatDefault,
			MinClamp:     d("0.05"),
			MaxClamp:     d("0.50"),
			RequireTrust: true,
			RequireKYC:   true,
			Tags:         []string{"daily", "flat"},
		},
		{
			Name:         "earn_commit_pct",
			Trigger:      TriggerEarnCommit,
			Kind:         KindPct,
			Percentage:   decimal.RequireFromString("0.03"),
			MaxClamp:     d("0.25"),
			RequireTrust: true,
			RequireKYC:   true,
			Tags:         []string{"earn", "pct"},
		},
		{
			Name:        "promo_fixed",
			Trigger:     TriggerSystemPromo,
			Kind:        KindFixed,
			FixedAmount: decimal.RequireFromString("0.20"),
			MaxClamp:    d("0.20"),
			Tags:        []string{"promo"},
		},
	}
}
