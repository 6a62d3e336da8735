package carbon

import (
	"context"

	model "github.com/glkeru/carbon/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=./../services/mock_carbon_test.go -package=carbon . LedgerStorage,UserDirectory,CacheStorage,RuleStorage

type LedgerStorage interface {
	ApplyAdjustment(ctx context.Context, adj model.Adjustment) (model.AdjustmentResult, error)
	GetAccount(ctx context.Context, user string) (model.CreditAccount, error)
	ListTransactions(ctx context.Context, filter model.TxFilter) ([]model.Transaction, error)
	Totals(ctx context.Context) (credits decimal.Decimal, users int64, earned decimal.Decimal, spent decimal.Decimal, err error)
	ListUserSummaries(ctx context.Context) ([]model.UserSummary, error)
}

type UserDirectory interface {
	GetUser(ctx context.Context, user string) (model.User, error)
}

type CacheStorage interface {
	GetBalance(ctx context.Context, user string) (model.Balance, error)
	SetBalance(ctx context.Context, balance model.Balance) error
	InvalidateBalance(ctx context.Context, user string) error
}

type RuleStorage interface {
	GetAllRules(ctx context.Context) ([]model.EarnRule, error)
	GetRule(ctx context.Context, activity string) (model.EarnRule, error)
	SaveRule(ctx context.Context, rule model.EarnRule) (model.EarnRule, error)
}
