package carbon

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Правило начисления кредитов за эко-активность
type EarnRule struct {
	ID             uuid.UUID `bson:"id" json:"id"`
	Activity       string    `bson:"activity" json:"activity"`
	Name           string    `bson:"name" json:"name"`
	CreditsPerUnit string    `bson:"creditsPerUnit" json:"creditsPerUnit"` // decimal строкой
	Active         bool      `bson:"active" json:"active"`
}

// Credits - кредиты за units единиц активности
func (r EarnRule) Credits(units decimal.Decimal) (decimal.Decimal, error) {
	perUnit, err := decimal.NewFromString(r.CreditsPerUnit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rule %s: credits per unit: %w", r.Activity, ErrValidation)
	}
	return perUnit.Mul(units).Round(4), nil
}

// Событие эко-активности (kafka)
type ActivityEvent struct {
	EventID  string          `json:"eventId"`
	UserID   string          `json:"userId"`
	Activity string          `json:"activity"`
	Units    decimal.Decimal `json:"units"`
}

// Запрос на списание (rabbitmq)
type SpendRequest struct {
	SpendID string          `json:"spendId"`
	UserID  string          `json:"userId"`
	Amount  decimal.Decimal `json:"amount"`
	Reason  string          `json:"reason"`
}

// Подтверждение списания
type SpendConfirm struct {
	SpendID string `json:"spendId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
