package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cybercentry/waitlist-service/internal/models"
)

// InsertSignup вставляет новую запись списка ожидания и возвращает её ID.
// Нарушение уникальности email переводится в ErrEmailExists; уникальность
// обеспечивает индекс базы, а не приложение, поэтому гонка двух одинаковых
// email разрешается атомарно на стороне PostgreSQL.
func (s *Storage) InsertSignup(ctx context.Context, signup models.Signup) (string, error) {
	const op = "storage.InsertSignup"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	db, err := s.Conn()
	if err != nil {
		return "", err
	}

	query := `INSERT INTO signups (email, fid, display_name, plan)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	err = db.QueryRowContext(ctx, query,
		signup.Email, signup.Fid, signup.DisplayName, signup.Plan).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}
