package carbon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	model "github.com/glkeru/carbon/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgNumericOverflow     = "22003"
)

var accountColumns = []string{"id", "user_id", "balance", "total_earned", "total_spent", "version", "created_at", "updated_at"}

type CarbonDB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewCarbonDB(ctx context.Context, logger *zap.Logger, dsn string) (db *CarbonDB, err error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return &CarbonDB{pool, logger}, nil
}

func (p *CarbonDB) Close() {
	p.pool.Close()
}

func (p *CarbonDB) logSQL(msg string, err error, sql string, args []any) {
	p.logger.Error(msg,
		zap.Error(err),
		zap.String("query", sql),
		zap.Any("args", args),
	)
}

// Изменение баланса: создать счет при необходимости, заблокировать строку,
// проверить баланс, обновить счет и добавить транзакцию - все в одной транзакции БД
func (p *CarbonDB) ApplyAdjustment(ctx context.Context, adj model.Adjustment) (res model.AdjustmentResult, err error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return res, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// счет создается при первом изменении
	sql, args, err := sq.Insert("credit_accounts").
		Columns("id", "user_id").
		Values(uuid.New(), adj.UserID).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return res, err
	}
	if _, err = tx.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			err = fmt.Errorf("%s: %w", adj.UserID, model.ErrUserNotFound)
			return res, err
		}
		p.logSQL("Create account error", err, sql, args)
		return res, fmt.Errorf("create account: %w", err)
	}

	// блокируем строку счета
	sql, args, err = sq.Select(accountColumns...).
		From("credit_accounts").
		Where(sq.Eq{"user_id": adj.UserID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return res, err
	}
	account, err := scanAccount(tx.QueryRow(ctx, sql, args...))
	if err != nil {
		p.logSQL("Lock account error", err, sql, args)
		return res, fmt.Errorf("lock account: %w", err)
	}

	updated, err := account.Apply(adj.Amount)
	if err != nil {
		return res, err
	}

	// обновляем баланс
	sql, args, err = sq.Update("credit_accounts").
		Set("balance", updated.Balance).
		Set("total_earned", updated.TotalEarned).
		Set("total_spent", updated.TotalSpent).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": account.ID}).
		Suffix("RETURNING version, updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return res, err
	}
	if err = tx.QueryRow(ctx, sql, args...).Scan(&updated.Version, &updated.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgCheckViolation:
				err = fmt.Errorf("%s: %w", pgErr.ConstraintName, model.ErrInsufficientBalance)
				return res, err
			case pgNumericOverflow:
				err = fmt.Errorf("balance %s, amount %s out of range: %w", account.Balance, adj.Amount, model.ErrInvalidAmount)
				return res, err
			}
		}
		p.logSQL("Update balance error", err, sql, args)
		return res, fmt.Errorf("update balance: %w", err)
	}

	// добавляем транзакцию
	if adj.Metadata == nil {
		adj.Metadata = map[string]any{}
	}
	metadata, err := json.Marshal(adj.Metadata)
	if err != nil {
		return res, fmt.Errorf("metadata: %w", err)
	}
	tnx := model.Transaction{
		CreditAccountID: account.ID,
		UserID:          adj.UserID,
		Type:            adj.Type,
		Amount:          adj.Amount,
		Reason:          adj.Reason,
		Description:     adj.Description,
		Metadata:        adj.Metadata,
	}
	sql, args, err = sq.Insert("credit_transactions").
		Columns("credit_account_id", "user_id", "type", "amount", "reason", "description", "metadata").
		Values(tnx.CreditAccountID, tnx.UserID, string(tnx.Type), tnx.Amount, tnx.Reason, tnx.Description, metadata).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return res, err
	}
	if err = tx.QueryRow(ctx, sql, args...).Scan(&tnx.ID, &tnx.CreatedAt); err != nil {
		// повтор того же spendId/eventId - изменение уже проведено
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			err = fmt.Errorf("%s: %w", pgErr.ConstraintName, model.ErrDuplicate)
			return res, err
		}
		p.logSQL("Insert transaction error", err, sql, args)
		return res, fmt.Errorf("insert transaction: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return res, fmt.Errorf("commit: %w", err)
	}

	return model.AdjustmentResult{
		UserID:      updated.UserID,
		Balance:     updated.Balance,
		TotalEarned: updated.TotalEarned,
		TotalSpent:  updated.TotalSpent,
		Version:     updated.Version,
		Transaction: tnx,
	}, nil
}

// Получить счет пользователя
func (p *CarbonDB) GetAccount(ctx context.Context, user string) (model.CreditAccount, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return model.CreditAccount{}, err
	}
	defer conn.Release()

	sql, args, err := sq.Select(accountColumns...).
		From("credit_accounts").
		Where(sq.Eq{"user_id": user}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.CreditAccount{}, err
	}
	account, err := scanAccount(conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CreditAccount{}, fmt.Errorf("account %w", model.ErrNotFound)
		}
		p.logSQL("Get account error", err, sql, args)
		return model.CreditAccount{}, err
	}
	return account, nil
}

// Получить транзакции, новые первыми
func (p *CarbonDB) ListTransactions(ctx context.Context, filter model.TxFilter) ([]model.Transaction, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	query := sq.Select("t.id", "t.credit_account_id", "t.user_id", "t.type", "t.amount", "t.reason",
		"t.description", "t.metadata", "t.created_at", "u.name", "u.email").
		From("credit_transactions t").
		LeftJoin("users u ON u.id = t.user_id").
		OrderBy("t.created_at DESC", "t.id DESC").
		Limit(uint64(filter.Limit)).
		PlaceholderFormat(sq.Dollar)
	if filter.UserID != "" {
		query = query.Where(sq.Eq{"t.user_id": filter.UserID})
	}
	if filter.Type != "" {
		query = query.Where(sq.Eq{"t.type": string(filter.Type)})
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		p.logSQL("List transactions error", err, sql, args)
		return nil, err
	}
	defer rows.Close()

	tnxs := make([]model.Transaction, 0, filter.Limit)
	for rows.Next() {
		var tnx model.Transaction
		var typeTnx string
		var metadata []byte
		var name, email pgtype.Text
		err = rows.Scan(&tnx.ID, &tnx.CreditAccountID, &tnx.UserID, &typeTnx, &tnx.Amount, &tnx.Reason,
			&tnx.Description, &metadata, &tnx.CreatedAt, &name, &email)
		if err != nil {
			return nil, err
		}
		tnx.Type = model.TxType(typeTnx)
		if len(metadata) > 0 {
			if err = json.Unmarshal(metadata, &tnx.Metadata); err != nil {
				return nil, fmt.Errorf("transaction %d metadata: %w", tnx.ID, err)
			}
		}
		tnx.UserName = name.String
		tnx.UserEmail = email.String
		tnxs = append(tnxs, tnx)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tnxs, nil
}

// Суммы по всем счетам
func (p *CarbonDB) Totals(ctx context.Context) (credits decimal.Decimal, users int64, earned decimal.Decimal, spent decimal.Decimal, err error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return
	}
	defer conn.Release()

	sql, args, err := sq.Select("COALESCE(SUM(balance), 0)", "COUNT(*)",
		"COALESCE(SUM(total_earned), 0)", "COALESCE(SUM(total_spent), 0)").
		From("credit_accounts").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return
	}
	err = conn.QueryRow(ctx, sql, args...).Scan(&credits, &users, &earned, &spent)
	if err != nil {
		p.logSQL("Totals error", err, sql, args)
	}
	return
}

// Сводка по пользователям, по убыванию баланса
func (p *CarbonDB) ListUserSummaries(ctx context.Context) ([]model.UserSummary, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("a.user_id", "u.name", "u.email", "a.balance", "a.total_earned",
		"a.total_spent", "MAX(t.created_at)").
		From("credit_accounts a").
		LeftJoin("users u ON u.id = a.user_id").
		LeftJoin("credit_transactions t ON t.credit_account_id = a.id").
		GroupBy("a.id", "u.name", "u.email").
		OrderBy("a.balance DESC", "a.user_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		p.logSQL("List users error", err, sql, args)
		return nil, err
	}
	defer rows.Close()

	var summaries []model.UserSummary
	for rows.Next() {
		var s model.UserSummary
		var name, email pgtype.Text
		var last pgtype.Timestamptz
		err = rows.Scan(&s.UserID, &name, &email, &s.Balance, &s.TotalEarned, &s.TotalSpent, &last)
		if err != nil {
			return nil, err
		}
		s.Name = name.String
		s.Email = email.String
		if last.Status == pgtype.Present {
			t := last.Time
			s.LastTransactionAt = &t
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (account model.CreditAccount, err error) {
	err = row.Scan(&account.ID, &account.UserID, &account.Balance, &account.TotalEarned,
		&account.TotalSpent, &account.Version, &account.CreatedAt, &account.UpdatedAt)
	return account, err
}
