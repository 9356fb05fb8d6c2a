package repositories

import (
	"context"
	"fmt"
	"userconnections/src/domain"
	"userconnections/src/domain/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FollowRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{pool: pool}
}

// Upsert garante uma única aresta para o par ordenado (follower_id, following_id).
// A aresta não tem conteúdo mutável; no conflito o SET é um no-op de propósito,
// só para o RETURNING devolver a linha sobrevivente (DO NOTHING não devolve nada).
func (r *FollowRepository) Upsert(ctx context.Context, followerID int64, followingID int64) (entities.Follow, error) {
	query := `
		INSERT INTO
			follows (follower_id, following_id)
		VALUES
			($1, $2)
		ON CONFLICT (follower_id, following_id) DO UPDATE SET
			follower_id = excluded.follower_id
		RETURNING
			id, follower_id, following_id, created_at`

	var follow entities.Follow
	err := r.pool.QueryRow(ctx, query, followerID, followingID).Scan(
		&follow.ID,
		&follow.FollowerID,
		&follow.FollowingID,
		&follow.CreatedAt,
	)
	if err != nil {
		return entities.Follow{}, fmt.Errorf("FollowRepository.Upsert - upsert failed for (%d -> %d) (%v): %w", followerID, followingID, err, domain.ErrPersistenceFailure)
	}

	return follow, nil
}
