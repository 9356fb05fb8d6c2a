package repositories

import (
	"context"
	"fmt"
	"userconnections/src/domain"
	"userconnections/src/domain/entities"
	"userconnections/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ConnectionQueryRepository struct {
	pool *pgxpool.Pool
}

func NewConnectionQueryRepository(pool *pgxpool.Pool) *ConnectionQueryRepository {
	return &ConnectionQueryRepository{pool: pool}
}

// GetConnections monta a projeção do usuário com as conexões agregadas em
// uma única query: a linha do sujeito mais os usernames de quem o segue
// (arestas onde ele é o alvo) e de quem ele segue (arestas onde é a origem).
func (cqr *ConnectionQueryRepository) GetConnections(ctx context.Context, platform entities.Platform, platformUserID string) (domain.ConnectionsView, error) {
	query := `
		WITH subject AS (
			SELECT
				id, username, updated_at
			FROM
				users
			WHERE
				platform = $1 AND platform_user_id = $2
		),
		follower_names AS (
			SELECT
				COALESCE(ARRAY_AGG(u.username ORDER BY u.username), '{}'::text[]) AS names
			FROM
				follows f
			JOIN
				subject s ON f.following_id = s.id
			JOIN
				users u ON u.id = f.follower_id
		),
		following_names AS (
			SELECT
				COALESCE(ARRAY_AGG(u.username ORDER BY u.username), '{}'::text[]) AS names
			FROM
				follows f
			JOIN
				subject s ON f.follower_id = s.id
			JOIN
				users u ON u.id = f.following_id
		)
		SELECT
			s.id, s.username, s.updated_at, fr.names, fg.names
		FROM
			subject s, follower_names fr, following_names fg`

	var view domain.ConnectionsView
	err := cqr.pool.QueryRow(ctx, query, string(platform), platformUserID).Scan(
		&view.UserID,
		&view.Username,
		&view.LastUpdated,
		&view.Followers,
		&view.Following,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return domain.ConnectionsView{}, fmt.Errorf("ConnectionQueryRepository.GetConnections - no user for (%s, %s): %w", platform, platformUserID, domain.ErrUserNotFound)
		}

		return domain.ConnectionsView{}, fmt.Errorf("ConnectionQueryRepository.GetConnections - query failed (%v): %w", err, domain.ErrPersistenceFailure)
	}

	return view, nil
}
