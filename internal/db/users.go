package carbon

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	model "github.com/glkeru/carbon/internal/models"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5"
)

// Получить пользователя основного приложения
func (p *CarbonDB) GetUser(ctx context.Context, user string) (model.User, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return model.User{}, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("id", "name", "email", "role").
		From("users").
		Where(sq.Eq{"id": user}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var u model.User
	var name, email pgtype.Text
	err = conn.QueryRow(ctx, sql, args...).Scan(&u.ID, &name, &email, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, fmt.Errorf("%s: %w", user, model.ErrUserNotFound)
		}
		p.logSQL("Get user error", err, sql, args)
		return model.User{}, err
	}
	u.Name = name.String
	u.Email = email.String
	return u, nil
}
