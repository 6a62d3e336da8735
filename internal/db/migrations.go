package carbon

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Migrations - схема БД, каждое выражение идемпотентно.
// Таблица users принадлежит основному приложению, здесь создается только для локального запуска и тестов.
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id    TEXT PRIMARY KEY,
			name  TEXT,
			email TEXT,
			role  TEXT NOT NULL DEFAULT 'USER'
		)`,
		`CREATE TABLE IF NOT EXISTS credit_accounts (
			id           UUID          PRIMARY KEY,
			user_id      TEXT          NOT NULL UNIQUE REFERENCES users(id),
			balance      NUMERIC(20,4) NOT NULL DEFAULT 0 CHECK (balance >= 0),
			total_earned NUMERIC(20,4) NOT NULL DEFAULT 0 CHECK (total_earned >= 0),
			total_spent  NUMERIC(20,4) NOT NULL DEFAULT 0 CHECK (total_spent >= 0),
			created_at   TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			CONSTRAINT credit_accounts_reconciled CHECK (balance = total_earned - total_spent)
		)`,
		`CREATE TABLE IF NOT EXISTS credit_transactions (
			id                BIGSERIAL     PRIMARY KEY,
			credit_account_id UUID          NOT NULL REFERENCES credit_accounts(id),
			user_id           TEXT          NOT NULL,
			type              TEXT          NOT NULL CHECK (type IN ('EARN', 'SPEND', 'BONUS', 'ADJUSTMENT')),
			amount            NUMERIC(20,4) NOT NULL CHECK (amount <> 0),
			reason            TEXT          NOT NULL,
			description       TEXT          NOT NULL DEFAULT '',
			metadata          JSONB         NOT NULL DEFAULT '{}',
			created_at        TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_credit_transactions_created
			ON credit_transactions(created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_credit_transactions_user
			ON credit_transactions(user_id, created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_credit_transactions_type
			ON credit_transactions(type, created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_credit_transactions_account
			ON credit_transactions(credit_account_id)`,
		// версия счета для кэша баланса
		`ALTER TABLE credit_accounts ADD COLUMN IF NOT EXISTS version BIGINT NOT NULL DEFAULT 0`,
		// одно списание на spendId и одно начисление на eventId
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_credit_transactions_spend
			ON credit_transactions ((metadata->>'spendId'))
			WHERE metadata->>'source' = 'rabbitmq'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_credit_transactions_event
			ON credit_transactions ((metadata->>'eventId'))
			WHERE metadata->>'source' = 'kafka'`,
		// журнал только на добавление
		`CREATE OR REPLACE FUNCTION credit_transactions_append_only() RETURNS trigger AS $$
		BEGIN
			RAISE EXCEPTION 'credit_transactions is append-only';
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS credit_transactions_append_only ON credit_transactions`,
		`CREATE TRIGGER credit_transactions_append_only
			BEFORE UPDATE OR DELETE ON credit_transactions
			FOR EACH ROW EXECUTE FUNCTION credit_transactions_append_only()`,
	}
}

// Migrate - применить схему
func (p *CarbonDB) Migrate(ctx context.Context) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	for i, stmt := range Migrations() {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			p.logger.Error("Migration error", zap.Int("step", i), zap.Error(err))
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	p.logger.Info("migrations completed", zap.Int("steps", len(Migrations())))
	return nil
}
