package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"toolshed-backend/internal/domain"
	"toolshed-backend/internal/repository"
)

// The tool catalog is owned by another part of the platform; this
// repository only reads the fields the lifecycle engine needs.
type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) repository.ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tool, error) {
	tool := &domain.Tool{}
	var brand, category, condition sql.NullString
	query := `SELECT id, owner_id, name, brand, category, condition, is_lendable, created_at
	          FROM tools WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tool.ID, &tool.OwnerID, &tool.Name, &brand, &category, &condition, &tool.IsLendable, &tool.CreatedAt,
	)
	if err != nil {
		return nil, classifyError(err)
	}
	tool.Brand = brand.String
	tool.Category = category.String
	tool.Condition = condition.String
	return tool, nil
}
