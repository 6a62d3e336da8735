package carbon

import (
	"context"
	"fmt"
	"strings"

	interf "github.com/glkeru/carbon/internal/interfaces"
	model "github.com/glkeru/carbon/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RuleService struct {
	logger *zap.Logger
	db     interf.RuleStorage
}

func NewRuleService(logger *zap.Logger, db interf.RuleStorage) *RuleService {
	return &RuleService{logger, db}
}

// Сохранить правило начисления (админ)
func (r *RuleService) SaveRule(ctx context.Context, caller model.Identity, rule model.EarnRule) (model.EarnRule, error) {
	if err := requireAdmin(caller); err != nil {
		return rule, err
	}
	rule.Activity = strings.TrimSpace(rule.Activity)
	if rule.Activity == "" {
		return rule, fmt.Errorf("activity is required: %w", model.ErrValidation)
	}
	perUnit, err := decimal.NewFromString(rule.CreditsPerUnit)
	if err != nil || !perUnit.IsPositive() {
		return rule, fmt.Errorf("creditsPerUnit %q must be a positive decimal: %w", rule.CreditsPerUnit, model.ErrValidation)
	}
	rule.CreditsPerUnit = perUnit.String()
	if rule.Name == "" {
		rule.Name = rule.Activity
	}

	rule, err = r.db.SaveRule(ctx, rule)
	if err != nil {
		return rule, err
	}
	r.logger.Info("Rule saved",
		zap.String("caller", caller.UserID),
		zap.String("activity", rule.Activity),
		zap.String("creditsPerUnit", rule.CreditsPerUnit),
		zap.Bool("active", rule.Active),
	)
	return rule, nil
}

// Все правила (админ)
func (r *RuleService) ListRules(ctx context.Context, caller model.Identity) ([]model.EarnRule, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	rules, err := r.db.GetAllRules(ctx)
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []model.EarnRule{}
	}
	return rules, nil
}

func (r *RuleService) GetRule(ctx context.Context, caller model.Identity, activity string) (model.EarnRule, error) {
	if err := requireAdmin(caller); err != nil {
		return model.EarnRule{}, err
	}
	return r.db.GetRule(ctx, activity)
}

// Price - кредиты за units единиц активности по активному правилу
func (r *RuleService) Price(ctx context.Context, activity string, units decimal.Decimal) (decimal.Decimal, error) {
	if !units.IsPositive() {
		return decimal.Zero, fmt.Errorf("units must be positive: %w", model.ErrValidation)
	}
	rule, err := r.db.GetRule(ctx, activity)
	if err != nil {
		return decimal.Zero, err
	}
	if !rule.Active {
		return decimal.Zero, fmt.Errorf("rule %s is inactive: %w", activity, model.ErrNotFound)
	}
	credits, err := rule.Credits(units)
	if err != nil {
		return decimal.Zero, err
	}
	if !credits.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s units of %s give no credits: %w", units, activity, model.ErrInvalidAmount)
	}
	return credits, nil
}
