package carbon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	model "github.com/glkeru/carbon/internal/models"
	"go.uber.org/zap"
)

// Начисление за эко-активность (сообщение из kafka)
func (s *CarbonService) Earn(ctx context.Context, rules *RuleService, eventJson string) (res model.AdjustmentResult, err error) {
	event := model.ActivityEvent{}
	err = json.Unmarshal([]byte(eventJson), &event)
	if err != nil {
		return res, fmt.Errorf("invalid activity event: %w", model.ErrValidation)
	}
	if event.EventID == "" || event.UserID == "" || event.Activity == "" {
		return res, fmt.Errorf("invalid activity event: eventId, userId and activity are required: %w", model.ErrValidation)
	}

	credits, err := rules.Price(ctx, event.Activity, event.Units)
	if err != nil {
		return res, err
	}

	adj := model.Adjustment{
		UserID:      event.UserID,
		Amount:      credits,
		Type:        model.EARN,
		Reason:      "activity:" + event.Activity,
		Description: fmt.Sprintf("%s x %s", event.Activity, event.Units),
		Metadata: map[string]any{
			"source":  "kafka",
			"eventId": event.EventID,
			"units":   event.Units.String(),
		},
	}
	res, err = s.ApplyAdjustment(ctx, model.SystemIdentity("kafka"), adj)
	// повторная доставка события
	if errors.Is(err, model.ErrDuplicate) {
		s.logger.Info("Earning already applied", zap.String("event", event.EventID), zap.String("user", event.UserID))
		return model.AdjustmentResult{UserID: event.UserID}, nil
	}
	return res, err
}

// Списание (сообщение из rabbitmq), возвращает подтверждение для отправителя
func (s *CarbonService) Spend(ctx context.Context, spendJson string) (confirm model.SpendConfirm, err error) {
	spend := model.SpendRequest{}
	err = json.Unmarshal([]byte(spendJson), &spend)
	if err != nil {
		err = fmt.Errorf("invalid spend: %w", model.ErrValidation)
		return model.SpendConfirm{Error: err.Error()}, err
	}
	confirm.SpendID = spend.SpendID

	if spend.SpendID == "" || spend.UserID == "" {
		err = fmt.Errorf("invalid spend: spendId and userId are required: %w", model.ErrValidation)
		confirm.Error = err.Error()
		return confirm, err
	}
	if !spend.Amount.IsPositive() {
		err = fmt.Errorf("spend amount must be positive: %w", model.ErrInvalidAmount)
		confirm.Error = err.Error()
		return confirm, err
	}
	reason := strings.TrimSpace(spend.Reason)
	if reason == "" {
		reason = "spend"
	}

	adj := model.Adjustment{
		UserID:      spend.UserID,
		Amount:      spend.Amount.Neg(),
		Type:        model.SPEND,
		Reason:      reason,
		Description: "Spend " + spend.SpendID,
		Metadata: map[string]any{
			"source":  "rabbitmq",
			"spendId": spend.SpendID,
		},
	}
	_, err = s.ApplyAdjustment(ctx, model.SystemIdentity("rabbitmq"), adj)
	// повторная доставка: списание уже проведено, подтверждаем еще раз
	if errors.Is(err, model.ErrDuplicate) {
		s.logger.Info("Spend already applied", zap.String("spend", spend.SpendID), zap.String("user", spend.UserID))
		err = nil
	}
	if err != nil {
		confirm.Error = err.Error()
		return confirm, err
	}
	confirm.Success = true
	return confirm, nil
}
