package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user := &domain.User{}
	var displayName, location sql.NullString
	query := `SELECT id, email, display_name, location, created_at FROM profiles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &displayName, &location, &user.CreatedAt,
	)
	if err != nil {
		return nil, classifyError(err)
	}
	user.DisplayName = displayName.String
	user.Location = location.String
	return user, nil
}
