package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"toolshed-backend/internal/repository"
)

// Friendships are managed by the relationship side of the platform; the
// engine only asks whether an accepted link exists.
type friendshipRepository struct {
	db *sql.DB
}

func NewFriendshipRepository(db *sql.DB) repository.FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (
	              SELECT 1 FROM friendships
	              WHERE status = 'accepted'
	                AND ((user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1))
	          )`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userA, userB).Scan(&exists); err != nil {
		return false, classifyError(err)
	}
	return exists, nil
}
