package carbon

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	interf "github.com/glkeru/carbon/internal/interfaces"
	model "github.com/glkeru/carbon/internal/models"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// количество знаков после запятой у суммы
const amountPlaces = 4

// NUMERIC(20,4): не больше 16 знаков в целой части
var amountBound = decimal.New(1, 16)

type CarbonService struct {
	logger        *zap.Logger
	db            interf.LedgerStorage
	users         interf.UserDirectory
	cache         interf.CacheStorage
	maxAdjustment decimal.Decimal
	tracer        trace.Tracer
}

// NewCarbonService - cache может быть nil, maxAdjustment = 0 - без ограничения
func NewCarbonService(logger *zap.Logger, db interf.LedgerStorage, users interf.UserDirectory, cache interf.CacheStorage, maxAdjustment decimal.Decimal) *CarbonService {
	return &CarbonService{
		logger:        logger,
		db:            db,
		users:         users,
		cache:         cache,
		maxAdjustment: maxAdjustment,
		tracer:        otel.Tracer("carbon"),
	}
}

func requireAdmin(caller model.Identity) error {
	if caller.UserID == "" {
		return model.ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return fmt.Errorf("%s is not an administrator: %w", caller.UserID, model.ErrForbidden)
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Ручное изменение баланса (админ) или начисление/списание из фоновых задач
func (s *CarbonService) ApplyAdjustment(ctx context.Context, caller model.Identity, adj model.Adjustment) (res model.AdjustmentResult, err error) {
	ctx, span := s.tracer.Start(ctx, "ApplyAdjustment",
		trace.WithAttributes(attribute.String("user", adj.UserID), attribute.String("amount", adj.Amount.String())))
	defer func() { endSpan(span, err) }()

	defer func() {
		if err != nil {
			s.logger.Warn("Adjustment rejected",
				zap.String("service", "ApplyAdjustment"),
				zap.String("caller", caller.UserID),
				zap.String("user", adj.UserID),
				zap.String("amount", adj.Amount.String()),
				zap.String("reason", adj.Reason),
				zap.Error(err),
			)
		}
	}()

	if caller.UserID == "" {
		return res, model.ErrUnauthorized
	}
	if !caller.IsAdmin() && !caller.IsSystem() {
		return res, fmt.Errorf("%s is not an administrator: %w", caller.UserID, model.ErrForbidden)
	}

	adj, err = s.validateAdjustment(adj)
	if err != nil {
		return res, err
	}

	// пользователь должен существовать
	user, err := s.users.GetUser(ctx, adj.UserID)
	if err != nil {
		return res, err
	}

	if adj.Description == "" {
		adj.Description = "Manual adjustment by " + caller.DisplayName()
	}
	metadata := make(map[string]any, len(adj.Metadata)+4)
	for k, v := range adj.Metadata {
		metadata[k] = v
	}
	metadata["performedBy"] = caller.UserID
	if caller.Email != "" {
		metadata["performedByEmail"] = caller.Email
	}
	// source задают только фоновые задачи, по нему проверяются повторы
	if caller.IsAdmin() {
		metadata["source"] = "admin"
	}
	metadata["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	adj.Metadata = metadata

	res, err = s.db.ApplyAdjustment(ctx, adj)
	if err != nil {
		return res, err
	}
	res.Transaction.UserName = user.Name
	res.Transaction.UserEmail = user.Email

	// после коммита в кэш пишется новая версия баланса
	s.cacheAdjusted(ctx, res)

	s.logger.Info("Adjustment applied",
		zap.String("caller", caller.UserID),
		zap.String("user", adj.UserID),
		zap.String("type", string(adj.Type)),
		zap.String("amount", adj.Amount.String()),
		zap.String("balance", res.Balance.String()),
		zap.Int64("transaction", res.Transaction.ID),
	)
	return res, nil
}

// проверка и значения по умолчанию
func (s *CarbonService) validateAdjustment(adj model.Adjustment) (model.Adjustment, error) {
	adj.UserID = strings.TrimSpace(adj.UserID)
	if adj.UserID == "" {
		return adj, fmt.Errorf("userId is required: %w", model.ErrValidation)
	}
	if adj.Amount.IsZero() {
		return adj, fmt.Errorf("amount must be non-zero: %w", model.ErrInvalidAmount)
	}
	if !adj.Amount.Equal(adj.Amount.Round(amountPlaces)) {
		return adj, fmt.Errorf("amount %s has more than %d decimal places: %w", adj.Amount, amountPlaces, model.ErrInvalidAmount)
	}
	if adj.Amount.Abs().GreaterThanOrEqual(amountBound) {
		return adj, fmt.Errorf("amount %s is out of range: %w", adj.Amount, model.ErrInvalidAmount)
	}
	if s.maxAdjustment.IsPositive() && adj.Amount.Abs().GreaterThan(s.maxAdjustment) {
		return adj, fmt.Errorf("amount %s exceeds limit %s: %w", adj.Amount, s.maxAdjustment, model.ErrInvalidAmount)
	}
	adj.Reason = strings.TrimSpace(adj.Reason)
	if adj.Reason == "" {
		return adj, fmt.Errorf("reason is required: %w", model.ErrValidation)
	}
	adj.Description = strings.TrimSpace(adj.Description)

	// тип по знаку суммы
	if adj.Type == "" {
		if adj.Amount.IsPositive() {
			adj.Type = model.BONUS
		} else {
			adj.Type = model.SPEND
		}
	}
	switch adj.Type {
	case model.EARN, model.BONUS:
		if !adj.Amount.IsPositive() {
			return adj, fmt.Errorf("%s requires a positive amount: %w", adj.Type, model.ErrInvalidAmount)
		}
	case model.SPEND:
		if !adj.Amount.IsNegative() {
			return adj, fmt.Errorf("%s requires a negative amount: %w", adj.Type, model.ErrInvalidAmount)
		}
	case model.ADJUSTMENT:
	default:
		return adj, fmt.Errorf("unknown transaction type %q: %w", adj.Type, model.ErrValidation)
	}
	return adj, nil
}

// Статистика по всем счетам
func (s *CarbonService) ComputeStats(ctx context.Context, caller model.Identity) (stats model.Stats, err error) {
	ctx, span := s.tracer.Start(ctx, "ComputeStats")
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(caller); err != nil {
		return stats, err
	}
	credits, users, earned, spent, err := s.db.Totals(ctx)
	if err != nil {
		return stats, err
	}
	return model.NewStats(credits, users, earned, spent), nil
}

// ParseLimit - пустая строка означает лимит по умолчанию
func ParseLimit(s string) (int, error) {
	if s == "" {
		return model.DefaultTxLimit, nil
	}
	limit, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("limit %q is not a number: %w", s, model.ErrValidation)
	}
	return limit, nil
}

func normalizeFilter(filter model.TxFilter) (model.TxFilter, error) {
	if filter.Limit <= 0 {
		return filter, fmt.Errorf("limit must be positive: %w", model.ErrValidation)
	}
	if filter.Limit > model.MaxTxLimit {
		filter.Limit = model.MaxTxLimit
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return filter, fmt.Errorf("unknown transaction type %q: %w", filter.Type, model.ErrValidation)
	}
	return filter, nil
}

// Транзакции всех пользователей (админ)
func (s *CarbonService) ListTransactions(ctx context.Context, caller model.Identity, filter model.TxFilter) (tnxs []model.Transaction, err error) {
	ctx, span := s.tracer.Start(ctx, "ListTransactions")
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(caller); err != nil {
		return nil, err
	}
	filter, err = normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.db.ListTransactions(ctx, filter)
}

// Транзакции текущего пользователя
func (s *CarbonService) ListOwnTransactions(ctx context.Context, caller model.Identity, filter model.TxFilter) (tnxs []model.Transaction, err error) {
	ctx, span := s.tracer.Start(ctx, "ListOwnTransactions")
	defer func() { endSpan(span, err) }()

	if caller.UserID == "" {
		return nil, model.ErrUnauthorized
	}
	filter.UserID = caller.UserID
	filter, err = normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	tnxs, err = s.db.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}
	// пользователю не показываем данные профиля
	for i := range tnxs {
		tnxs[i].UserName = ""
		tnxs[i].UserEmail = ""
	}
	return tnxs, nil
}

// Сводка по пользователям (админ)
func (s *CarbonService) ListUserSummaries(ctx context.Context, caller model.Identity) (summaries []model.UserSummary, err error) {
	ctx, span := s.tracer.Start(ctx, "ListUserSummaries")
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(caller); err != nil {
		return nil, err
	}
	summaries, err = s.db.ListUserSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []model.UserSummary{}
	}
	return summaries, nil
}

// Баланс: свой - любому пользователю, чужой - только админу
func (s *CarbonService) GetBalance(ctx context.Context, caller model.Identity, user string) (balance model.Balance, err error) {
	ctx, span := s.tracer.Start(ctx, "GetBalance", trace.WithAttributes(attribute.String("user", user)))
	defer func() { endSpan(span, err) }()

	if caller.UserID == "" {
		return balance, model.ErrUnauthorized
	}
	if user == "" {
		user = caller.UserID
	}
	if user != caller.UserID && !caller.IsAdmin() && !caller.IsSystem() {
		return balance, fmt.Errorf("balance of %s: %w", user, model.ErrForbidden)
	}

	// cache
	if s.cache != nil {
		balance, err = s.cache.GetBalance(ctx, user)
		if err == nil {
			return balance, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Get cached balance", zap.String("user", user), zap.Error(err))
		}
	}

	// database
	account, err := s.db.GetAccount(ctx, user)
	switch {
	case errors.Is(err, model.ErrNotFound):
		// счета еще нет - нулевой баланс
		balance = model.Balance{UserID: user, Balance: decimal.Zero, TotalEarned: decimal.Zero, TotalSpent: decimal.Zero}
		return balance, nil
	case err != nil:
		return balance, err
	}
	balance = model.Balance{
		UserID:      account.UserID,
		Balance:     account.Balance,
		TotalEarned: account.TotalEarned,
		TotalSpent:  account.TotalSpent,
		Version:     account.Version,
	}
	// кэш не примет этот баланс, если изменение уже записало более новую версию
	if s.cache != nil {
		if errCache := s.cache.SetBalance(ctx, balance); errCache != nil {
			s.logger.Error("Set cached balance", zap.String("user", user), zap.Error(errCache))
		}
	}
	return balance, nil
}

// записать баланс после изменения, при ошибке - удалить устаревший
func (s *CarbonService) cacheAdjusted(ctx context.Context, res model.AdjustmentResult) {
	if s.cache == nil {
		return
	}
	err := s.cache.SetBalance(ctx, model.Balance{
		UserID:      res.UserID,
		Balance:     res.Balance,
		TotalEarned: res.TotalEarned,
		TotalSpent:  res.TotalSpent,
		Version:     res.Version,
	})
	if err == nil {
		return
	}
	s.logger.Error("Set cached balance", zap.String("user", res.UserID), zap.Error(err))
	if err = s.cache.InvalidateBalance(ctx, res.UserID); err != nil {
		s.logger.Error("Invalidate balance", zap.String("user", res.UserID), zap.Error(err))
	}
}
