package carbon

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Тип транзакции
type TxType string

const (
	EARN       TxType = "EARN"
	SPEND      TxType = "SPEND"
	BONUS      TxType = "BONUS"
	ADJUSTMENT TxType = "ADJUSTMENT"
)

func (t TxType) Valid() bool {
	switch t {
	case EARN, SPEND, BONUS, ADJUSTMENT:
		return true
	}
	return false
}

// ParseTxType - пустая строка означает "без фильтра"
func ParseTxType(s string) (TxType, error) {
	if s == "" {
		return "", nil
	}
	t := TxType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q: %w", s, ErrValidation)
	}
	return t, nil
}

// Роли пользователей
const (
	RoleAdmin  = "ADMIN"
	RoleUser   = "USER"
	RoleSystem = "SYSTEM"
)

// Счет кредитов пользователя
type CreditAccount struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"userId"`
	Balance     decimal.Decimal `json:"balance"`
	TotalEarned decimal.Decimal `json:"totalEarned"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	Version     int64           `json:"version"` // растет на 1 при каждом изменении
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Apply - применить изменение баланса к счету.
// Счет не меняется, если баланс уходит в минус.
func (a CreditAccount) Apply(amount decimal.Decimal) (CreditAccount, error) {
	if amount.IsZero() {
		return a, ErrInvalidAmount
	}
	balance := a.Balance.Add(amount)
	if balance.IsNegative() {
		return a, fmt.Errorf("balance %s, amount %s: %w", a.Balance, amount, ErrInsufficientBalance)
	}
	a.Balance = balance
	if amount.IsPositive() {
		a.TotalEarned = a.TotalEarned.Add(amount)
	} else {
		a.TotalSpent = a.TotalSpent.Add(amount.Neg())
	}
	return a, nil
}

// Reconciled - balance == totalEarned - totalSpent
func (a CreditAccount) Reconciled() bool {
	return a.Balance.Equal(a.TotalEarned.Sub(a.TotalSpent))
}

// Транзакция
type Transaction struct {
	ID              int64           `json:"id"`
	CreditAccountID uuid.UUID       `json:"creditAccountId"`
	UserID          string          `json:"userId"`
	Type            TxType          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason"`
	Description     string          `json:"description"`
	Metadata        map[string]any  `json:"metadata,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UserName        string          `json:"userName,omitempty"`  // из users, только для админки
	UserEmail       string          `json:"userEmail,omitempty"` // из users, только для админки
}

// Запрос на изменение баланса
type Adjustment struct {
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TxType          `json:"type,omitempty"`
	Reason      string          `json:"reason"`
	Description string          `json:"description,omitempty"`
	Metadata    map[string]any  `json:"-"`
}

// Результат изменения баланса
type AdjustmentResult struct {
	UserID      string          `json:"userId"`
	Balance     decimal.Decimal `json:"balance"`
	TotalEarned decimal.Decimal `json:"totalEarned"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	Version     int64           `json:"-"`
	Transaction Transaction     `json:"transaction"`
}

// Фильтр для списка транзакций
type TxFilter struct {
	UserID string
	Type   TxType
	Limit  int
}

const (
	DefaultTxLimit = 50
	MaxTxLimit     = 100
)

// Статистика по всем счетам
type Stats struct {
	TotalCredits      decimal.Decimal `json:"totalCredits"`
	TotalUsers        int64           `json:"totalUsers"`
	TotalEarned       decimal.Decimal `json:"totalEarned"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	TotalOffset       decimal.Decimal `json:"totalOffset"`
	AvgCreditsPerUser decimal.Decimal `json:"avgCreditsPerUser"`
}

// NewStats - рассчитать производные показатели из сумм по счетам.
// TotalOffset совпадает с TotalSpent: 1 кредит = 1 кг CO2.
func NewStats(totalCredits decimal.Decimal, totalUsers int64, totalEarned, totalSpent decimal.Decimal) Stats {
	avg := decimal.Zero
	if totalUsers > 0 {
		avg = totalCredits.DivRound(decimal.NewFromInt(totalUsers), 4)
	}
	return Stats{
		TotalCredits:      totalCredits,
		TotalUsers:        totalUsers,
		TotalEarned:       totalEarned,
		TotalSpent:        totalSpent,
		TotalOffset:       totalSpent,
		AvgCreditsPerUser: avg,
	}
}

// Сводка по пользователю для админки
type UserSummary struct {
	UserID            string          `json:"userId"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Balance           decimal.Decimal `json:"balance"`
	TotalEarned       decimal.Decimal `json:"totalEarned"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	LastTransactionAt *time.Time      `json:"lastTransactionAt"`
}

// Баланс пользователя. Version - версия счета, по ней кэш отбрасывает устаревшие записи
type Balance struct {
	UserID      string          `json:"userId"`
	Balance     decimal.Decimal `json:"balance"`
	TotalEarned decimal.Decimal `json:"totalEarned"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	Version     int64           `json:"-"`
}

// Пользователь (таблица users основного приложения)
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Identity - аутентифицированный вызывающий, передается в каждый вызов сервиса
type Identity struct {
	UserID string
	Role   string
	Name   string
	Email  string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i Identity) IsSystem() bool {
	return i.Role == RoleSystem
}

// DisplayName - имя для описаний транзакций
func (i Identity) DisplayName() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.Email != "":
		return i.Email
	}
	return i.UserID
}

// SystemIdentity - вызовы из фоновых задач
func SystemIdentity(source string) Identity {
	return Identity{UserID: "system:" + source, Role: RoleSystem, Name: source}
}
