package carbon

import (
	"context"

	model "github.com/glkeru/carbon/internal/models"
)

//go:generate mockgen -destination=./../api/rest/mock_services_test.go -package=carbon . CarbonCredits,RuleCatalog
//go:generate mockgen -destination=./../api/grpc/mock_services_test.go -package=grpc . CarbonCredits

// Операции над кредитами, которые доступны через API
type CarbonCredits interface {
	ApplyAdjustment(ctx context.Context, caller model.Identity, adj model.Adjustment) (model.AdjustmentResult, error)
	ComputeStats(ctx context.Context, caller model.Identity) (model.Stats, error)
	ListTransactions(ctx context.Context, caller model.Identity, filter model.TxFilter) ([]model.Transaction, error)
	ListOwnTransactions(ctx context.Context, caller model.Identity, filter model.TxFilter) ([]model.Transaction, error)
	ListUserSummaries(ctx context.Context, caller model.Identity) ([]model.UserSummary, error)
	GetBalance(ctx context.Context, caller model.Identity, user string) (model.Balance, error)
}

// Правила начисления
type RuleCatalog interface {
	SaveRule(ctx context.Context, caller model.Identity, rule model.EarnRule) (model.EarnRule, error)
	ListRules(ctx context.Context, caller model.Identity) ([]model.EarnRule, error)
	GetRule(ctx context.Context, caller model.Identity, activity string) (model.EarnRule, error)
}
